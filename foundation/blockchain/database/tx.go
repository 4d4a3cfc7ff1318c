package database

import (
	"encoding/binary"

	"github.com/ardanlabs/minichain/foundation/blockchain/digest"
)

// txVersion is the transaction encoding version currently produced.
const txVersion = 1

// Tx represents a value transfer between two parties, or a coinbase mint
// when FromID is empty. Transactions are immutable value types.
type Tx struct {
	Version   uint32    `json:"version"`
	FromID    string    `json:"from"`
	ToID      string    `json:"to"`
	Amount    uint64    `json:"amount"`
	Timestamp Timestamp `json:"timestamp"`
}

// NewTx constructs a transaction moving amount from one party to another.
func NewTx(fromID string, toID string, amount uint64, timestamp Timestamp) Tx {
	return Tx{
		Version:   txVersion,
		FromID:    fromID,
		ToID:      toID,
		Amount:    amount,
		Timestamp: timestamp,
	}
}

// NewCoinbaseTx constructs a value creation transaction. Coinbase
// transactions have no sender.
func NewCoinbaseTx(toID string, amount uint64, timestamp Timestamp) Tx {
	return Tx{
		Version:   txVersion,
		FromID:    "",
		ToID:      toID,
		Amount:    amount,
		Timestamp: timestamp,
	}
}

// IsCoinbase reports whether the transaction mints new value.
func (tx Tx) IsCoinbase() bool {
	return tx.FromID == ""
}

// ToBytes returns the canonical binary encoding of the transaction:
// version(4 LE), len(from)(4 LE), from, len(to)(4 LE), to, amount(8 LE),
// timestamp(4 LE). A zero timestamp encodes as four zero bytes.
func (tx Tx) ToBytes() []byte {
	from := []byte(tx.FromID)
	to := []byte(tx.ToID)

	data := make([]byte, 0, 24+len(from)+len(to))
	data = binary.LittleEndian.AppendUint32(data, tx.Version)
	data = binary.LittleEndian.AppendUint32(data, uint32(len(from)))
	data = append(data, from...)
	data = binary.LittleEndian.AppendUint32(data, uint32(len(to)))
	data = append(data, to...)
	data = binary.LittleEndian.AppendUint64(data, tx.Amount)
	data = binary.LittleEndian.AppendUint32(data, uint32(tx.Timestamp))

	return data
}

// TxID returns the content address of the transaction. Two transactions
// with identical fields share an id; any field change changes the id.
func (tx Tx) TxID() digest.Hash {
	return digest.Sum(tx.ToBytes())
}

// Hash implements the merkle.Hashable interface so transactions can be
// used as merkle tree leaves.
func (tx Tx) Hash() digest.Hash {
	return tx.TxID()
}

// Equals implements the merkle.Hashable interface.
func (tx Tx) Equals(other Tx) bool {
	return tx == other
}
