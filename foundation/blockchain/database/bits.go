package database

import (
	"bytes"

	"github.com/ardanlabs/minichain/foundation/blockchain/digest"
)

// Bits is the compact difficulty target carried in the block header: an
// exponent byte plus a coefficient clamped to its low 24 bits.
//
// CORE NOTE: Two difficulty representations exist in this system. The
// mining loop checks for leading zero hex characters on the block hash
// and never consults Bits. The numeric comparison below is the precise
// target mechanism and is kept as the header codec and a validation
// primitive. The two are not bit equivalent.
type Bits struct {
	Exponent    uint8  `json:"exponent"`
	Coefficient uint32 `json:"coefficient"`
}

// NewBits constructs a compact target, clamping the coefficient to its
// low 24 bits.
func NewBits(exponent uint8, coefficient uint32) Bits {
	return Bits{
		Exponent:    exponent,
		Coefficient: coefficient & 0x00ffffff,
	}
}

// ParseBits reconstructs a compact target from its 4 byte encoding.
func ParseBits(data [4]byte) Bits {
	coefficient := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16
	return NewBits(data[3], coefficient)
}

// ToBytes returns the 4 byte encoding: 3 coefficient bytes little endian
// followed by the exponent byte.
func (b Bits) ToBytes() [4]byte {
	var data [4]byte
	data[0] = byte(b.Coefficient)
	data[1] = byte(b.Coefficient >> 8)
	data[2] = byte(b.Coefficient >> 16)
	data[3] = b.Exponent
	return data
}

// Target derives the full 256 bit big endian target: the coefficient
// bytes are placed at offset 32-exponent, the rest is zero. Exponents
// outside [3,32] cannot place the coefficient and derive a zero target.
func (b Bits) Target() [32]byte {
	var target [32]byte

	if b.Exponent < 3 || b.Exponent > 32 {
		return target
	}

	start := 32 - int(b.Exponent)
	target[start] = byte(b.Coefficient)
	target[start+1] = byte(b.Coefficient >> 8)
	target[start+2] = byte(b.Coefficient >> 16)

	return target
}

// MeetsTarget reports whether the hash, read as a big endian number, is
// strictly less than the derived target.
func (b Bits) MeetsTarget(hash digest.Hash) bool {
	var hashBE [32]byte
	for i := range hashBE {
		hashBE[i] = hash[31-i]
	}

	target := b.Target()
	return bytes.Compare(hashBE[:], target[:]) < 0
}
