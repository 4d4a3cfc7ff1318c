package database

import (
	"encoding/binary"

	"github.com/ardanlabs/minichain/foundation/blockchain/digest"
	"github.com/ardanlabs/minichain/foundation/blockchain/merkle"
)

// blockVersion is the header version currently produced.
const blockVersion = 256

// HeaderLength is the exact size of the serialized block header.
const HeaderLength = 80

// =============================================================================

// BlockHeader represents the fixed layout record each block is identified
// by. The wire format is 80 bytes: version(4 LE), previous hash(32),
// merkle root(32), timestamp(4 LE), bits(4), nonce(4 LE).
type BlockHeader struct {
	Version       int32       `json:"version"`
	PrevBlockHash digest.Hash `json:"prev_block_hash"`
	MerkleRoot    digest.Hash `json:"merkle_root"`
	Timestamp     Timestamp   `json:"timestamp"`
	Bits          Bits        `json:"bits"`
	Nonce         uint32      `json:"nonce"`
}

// ToBytes returns the canonical 80 byte encoding of the header.
func (bh BlockHeader) ToBytes() [HeaderLength]byte {
	var data [HeaderLength]byte

	binary.LittleEndian.PutUint32(data[0:4], uint32(bh.Version))
	copy(data[4:36], bh.PrevBlockHash[:])
	copy(data[36:68], bh.MerkleRoot[:])

	ts := bh.Timestamp.ToBytes()
	copy(data[68:72], ts[:])

	bits := bh.Bits.ToBytes()
	copy(data[72:76], bits[:])

	binary.LittleEndian.PutUint32(data[76:80], bh.Nonce)

	return data
}

// ParseBlockHeader reconstructs a header from its 80 byte encoding. The
// round trip is bit exact.
func ParseBlockHeader(data [HeaderLength]byte) BlockHeader {
	var bh BlockHeader

	bh.Version = int32(binary.LittleEndian.Uint32(data[0:4]))
	copy(bh.PrevBlockHash[:], data[4:36])
	copy(bh.MerkleRoot[:], data[36:68])
	bh.Timestamp = Timestamp(binary.LittleEndian.Uint32(data[68:72]))
	bh.Bits = ParseBits([4]byte(data[72:76]))
	bh.Nonce = binary.LittleEndian.Uint32(data[76:80])

	return bh
}

// Hash returns the block identity: the double sha256 digest of the
// serialized header.
func (bh BlockHeader) Hash() digest.Hash {
	data := bh.ToBytes()
	return digest.DoubleSum(data[:])
}

// Equals reports header equality purely via the identity hash.
func (bh BlockHeader) Equals(other BlockHeader) bool {
	return bh.Hash() == other.Hash()
}

// =============================================================================

// Block represents a group of transactions batched together under one
// header. Blocks are constructed once and never mutated.
type Block struct {
	Header BlockHeader
	Trans  []Tx
}

// NewBlock constructs a block over the specified transactions. The merkle
// root is computed here; the header carries a zero compact target and the
// provided nonce. Callers wanting wall clock time pass Now().
func NewBlock(prevBlockHash digest.Hash, trans []Tx, timestamp Timestamp, nonce uint32) (Block, error) {
	tree, err := merkle.NewTree(trans)
	if err != nil {
		return Block{}, err
	}

	b := Block{
		Header: BlockHeader{
			Version:       blockVersion,
			PrevBlockHash: prevBlockHash,
			MerkleRoot:    tree.RootHash(),
			Timestamp:     timestamp,
			Bits:          NewBits(0, 0),
			Nonce:         nonce,
		},
		Trans: trans,
	}

	return b, nil
}

// GenesisBlock constructs the first block of a chain. Its previous hash
// is the zero hash, meaning no predecessor.
func GenesisBlock(trans []Tx, timestamp Timestamp, nonce uint32) (Block, error) {
	return NewBlock(digest.ZeroHash, trans, timestamp, nonce)
}

// Hash returns the unique hash for the block, taken from the header.
func (b Block) Hash() digest.Hash {
	return b.Header.Hash()
}

// Equals reports block equality via the header hash only. Two blocks with
// different transaction payloads but equal header hashes are equal by
// definition; the identity model trusts the collision resistance of the
// underlying digest.
func (b Block) Equals(other Block) bool {
	return b.Hash() == other.Hash()
}

// MerkleTree rebuilds the merkle tree over the block's transactions for
// proof generation.
func (b Block) MerkleTree() (*merkle.Tree[Tx], error) {
	return merkle.NewTree(b.Trans)
}

// Transactions returns a copy of the block's transaction list.
func (b Block) Transactions() []Tx {
	trans := make([]Tx, len(b.Trans))
	copy(trans, b.Trans)
	return trans
}
