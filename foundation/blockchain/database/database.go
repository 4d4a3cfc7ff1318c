// Package database maintains the blockchain value types, their canonical
// binary encodings, and the append-only chain of blocks.
package database

import (
	"encoding/binary"
	"time"
)

// Serializer interface represents the behavior required to be implemented
// by any package providing support for storing and reading the blockchain.
type Serializer interface {
	Write(blockData BlockData) error
	GetBlock(height uint64) (BlockData, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to iterate over the blocks.
type Iterator interface {
	Next() (BlockData, error)
	Done() bool
}

// =============================================================================

// Timestamp represents seconds since epoch as an unsigned 32 bit value.
// It serializes little endian inside transactions and block headers.
type Timestamp uint32

// Now returns the current wall clock time as a Timestamp.
func Now() Timestamp {
	return Timestamp(time.Now().UTC().Unix())
}

// ToBytes returns the 4 byte little endian encoding of the timestamp.
func (t Timestamp) ToBytes() [4]byte {
	var data [4]byte
	binary.LittleEndian.PutUint32(data[:], uint32(t))
	return data
}

// Time converts the timestamp into a time.Time value.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// =============================================================================

// BlockData represents what is serialized to storage for a single block.
type BlockData struct {
	Height uint64      `json:"height"`
	Hash   string      `json:"hash"`
	Header BlockHeader `json:"header"`
	Trans  []Tx        `json:"trans"`
}

// NewBlockData constructs the value to serialize to storage.
func NewBlockData(height uint64, block Block) BlockData {
	return BlockData{
		Height: height,
		Hash:   block.Hash().Hex(),
		Header: block.Header,
		Trans:  block.Transactions(),
	}
}

// ToBlock converts a BlockData back into a Block.
func ToBlock(blockData BlockData) Block {
	return Block{
		Header: blockData.Header,
		Trans:  blockData.Trans,
	}
}
