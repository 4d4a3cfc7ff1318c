// Package digest provides the 256-bit content address used everywhere in
// the blockchain. The hex encoding produced here is the canonical form for
// display and comparison against string literals.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ZeroHash represents a hash code of zeros. It is the previous hash value
// for a genesis block, meaning no predecessor exists.
var ZeroHash Hash

// =============================================================================

// Hash represents an immutable 32 byte digest. Equality is byte exact and
// can be performed with the == operator.
type Hash [32]byte

// Sum returns the sha256 digest of the specified data.
func Sum(data []byte) Hash {
	return Hash(sha256.Sum256(data))
}

// SumString returns the sha256 digest of the specified string.
func SumString(s string) Hash {
	return Sum([]byte(s))
}

// DoubleSum returns sha256(sha256(data)). Block headers are identified by
// their double hash.
func DoubleSum(data []byte) Hash {
	first := sha256.Sum256(data)
	return Hash(sha256.Sum256(first[:]))
}

// Parse converts a canonical 64 character hex string into a Hash.
func Parse(s string) (Hash, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("decoding hash: %w", err)
	}

	if len(data) != 32 {
		return Hash{}, fmt.Errorf("invalid hash length: got %d bytes, exp 32", len(data))
	}

	var hash Hash
	copy(hash[:], data)

	return hash, nil
}

// =============================================================================

// Hex returns the canonical hex encoding of the hash: lowercase, two
// characters per byte, most significant byte first, no prefix.
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String implements the fmt.Stringer interface.
func (h Hash) String() string {
	return h.Hex()
}

// Bytes returns a copy of the hash as a byte slice.
func (h Hash) Bytes() []byte {
	data := make([]byte, 32)
	copy(data, h[:])
	return data
}

// IsZero reports whether the hash is the zero value.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// MarshalJSON implements the json.Marshaler interface using the canonical
// hex encoding.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Hex())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	hash, err := Parse(s)
	if err != nil {
		return err
	}

	*h = hash
	return nil
}
