package database

import (
	"fmt"

	"github.com/ardanlabs/minichain/foundation/blockchain/digest"
)

// Blockchain maintains an ordered, append-only sequence of blocks. The
// chain is owned by a single writer; serialize Append calls per instance.
type Blockchain struct {
	blocks []Block
}

// NewBlockchain constructs an empty chain.
func NewBlockchain() *Blockchain {
	return &Blockchain{}
}

// Append constructs a new block over the transactions and adds it to the
// chain: a genesis block when the chain is empty, otherwise a successor
// referencing the current tip. No proof of work is performed here; POW is
// the entry point that mines.
func (bc *Blockchain) Append(trans []Tx, timestamp Timestamp) error {
	block, err := NewBlock(bc.TipHash(), trans, timestamp, 0)
	if err != nil {
		return fmt.Errorf("constructing block: %w", err)
	}

	bc.blocks = append(bc.blocks, block)
	return nil
}

// AppendBlock adds an already constructed block (typically mined) to the
// end of the chain.
func (bc *Blockchain) AppendBlock(block Block) {
	bc.blocks = append(bc.blocks, block)
}

// Verify walks the chain once, carrying each block's computed hash
// forward, and reports false the moment any block's stored previous hash
// disagrees with the hash of its actual predecessor. An empty or single
// block chain is trivially valid.
func (bc *Blockchain) Verify() bool {
	for i := 1; i < len(bc.blocks); i++ {
		if bc.blocks[i].Header.PrevBlockHash != bc.blocks[i-1].Hash() {
			return false
		}
	}

	return true
}

// Replace overwrites the block at the specified index. Subsequent blocks
// are NOT re-linked; that asymmetry is what Verify is meant to catch.
// This exists to exercise tamper detection.
func (bc *Blockchain) Replace(index int, block Block) error {
	if index < 0 || index >= len(bc.blocks) {
		return fmt.Errorf("block index %d out of range", index)
	}

	bc.blocks[index] = block
	return nil
}

// TipHash returns the hash of the latest block, or the zero hash for an
// empty chain.
func (bc *Blockchain) TipHash() digest.Hash {
	if len(bc.blocks) == 0 {
		return digest.ZeroHash
	}

	return bc.blocks[len(bc.blocks)-1].Hash()
}

// Block returns the block at the specified index.
func (bc *Blockchain) Block(index int) (Block, error) {
	if index < 0 || index >= len(bc.blocks) {
		return Block{}, fmt.Errorf("block index %d out of range", index)
	}

	return bc.blocks[index], nil
}

// Blocks returns a copy of the block sequence.
func (bc *Blockchain) Blocks() []Block {
	blocks := make([]Block, len(bc.blocks))
	copy(blocks, bc.blocks)
	return blocks
}

// Len returns the number of blocks in the chain.
func (bc *Blockchain) Len() int {
	return len(bc.blocks)
}
