// Package merkle provides a merkle tree over an ordered set of leaves with
// inclusion proof generation and verification support.
//
// The node hashing scheme is hex based: a parent hash is the sha256 digest
// of the concatenated hex encodings of its two children. When a level holds
// an odd number of nodes, the last node is paired with itself. Because of
// that duplication, the span recorded on the root routinely exceeds the
// number of original leaves.
package merkle

import (
	"errors"

	"github.com/ardanlabs/minichain/foundation/blockchain/digest"
)

// ErrIndexOutOfRange is returned from ProofFor when the requested leaf
// index is not covered by the tree.
var ErrIndexOutOfRange = errors.New("leaf index out of range")

// =============================================================================

// Hashable represents the behavior concrete data must exhibit to be used as
// a leaf in the merkle tree.
type Hashable[T any] interface {
	Hash() digest.Hash
	Equals(other T) bool
}

// Position declares which side a proof step's sibling hash sits on relative
// to the path being verified.
type Position int

// Set of proof step positions.
const (
	Left Position = iota
	Right
)

// ProofStep represents one sibling hash on the path from a leaf to the
// root, plus the side that sibling sits on.
type ProofStep struct {
	Hash     digest.Hash `json:"hash"`
	Position Position    `json:"position"`
}

// =============================================================================

// Tree represents a merkle tree built over data of some type T that
// exhibits the behavior defined by the Hashable constraint. A tree is
// rebuilt fresh for each leaf set, never mutated in place.
type Tree[T Hashable[T]] struct {
	Root   *Node[T]
	values []T
}

// NewTree constructs a merkle tree from the ordered set of values.
func NewTree[T Hashable[T]](values []T) (*Tree[T], error) {
	if len(values) == 0 {
		return nil, errors.New("cannot construct tree with no leaves")
	}

	level := make([]*Node[T], len(values))
	for i, value := range values {
		level[i] = &Node[T]{
			Hash:  value.Hash(),
			Value: value,
			Size:  1,
			leaf:  true,
		}
	}

	for len(level) > 1 {
		var next []*Node[T]

		for i := 0; i < len(level); i += 2 {
			left := level[i]

			// Pair the last node with itself when the level is odd.
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}

			next = append(next, &Node[T]{
				Hash:  combine(left.Hash, right.Hash),
				Left:  left,
				Right: right,
				Size:  left.Size + right.Size,
			})
		}

		level = next
	}

	t := Tree[T]{
		Root:   level[0],
		values: values,
	}

	return &t, nil
}

// RootHash returns the hash stored on the root of the tree. The value is
// computed at construction time so this call is O(1).
func (t *Tree[T]) RootHash() digest.Hash {
	return t.Root.Hash
}

// Size returns the logical leaf span of the root. Leaves duplicated to pad
// odd levels double count.
func (t *Tree[T]) Size() int {
	return t.Root.Size
}

// Values returns the ordered set of values the tree was built from.
func (t *Tree[T]) Values() []T {
	values := make([]T, len(t.values))
	copy(values, t.values)
	return values
}

// ProofFor returns the sequence of sibling hashes needed to recompute the
// root from the leaf at the specified index. The steps are ordered leaf to
// root. Indexes covering duplicated padding leaves are valid.
func (t *Tree[T]) ProofFor(index int) ([]ProofStep, error) {
	if index < 0 || index >= t.Root.Size {
		return nil, ErrIndexOutOfRange
	}

	return t.Root.path(index), nil
}

// ProofForValue locates the first leaf equal to the specified value and
// returns its inclusion proof.
func (t *Tree[T]) ProofForValue(value T) ([]ProofStep, error) {
	for i, v := range t.values {
		if v.Equals(value) {
			return t.ProofFor(i)
		}
	}

	return nil, errors.New("unable to find value in tree")
}

// =============================================================================

// Node represents a root, intermediate, or leaf node in the tree. Size is
// the number of logical leaves the node spans and drives proof routing.
type Node[T Hashable[T]] struct {
	Left  *Node[T]
	Right *Node[T]
	Hash  digest.Hash
	Value T
	Size  int
	leaf  bool
}

// path walks from this node toward the leaf at the specified index,
// appending the sibling of each branch taken after the recursion returns
// so the resulting steps read leaf to root.
func (n *Node[T]) path(index int) []ProofStep {
	if n.leaf {
		return []ProofStep{}
	}

	if index < n.Left.Size {
		return append(n.Left.path(index), ProofStep{
			Hash:     n.Right.Hash,
			Position: Right,
		})
	}

	return append(n.Right.path(index-n.Left.Size), ProofStep{
		Hash:     n.Left.Hash,
		Position: Left,
	})
}

// =============================================================================

// VerifyProof folds the proof steps over the candidate leaf hash and
// reports whether the result equals the expected root hash. Absence of
// membership is an expected outcome, not an error.
func VerifyProof(steps []ProofStep, leaf digest.Hash, root digest.Hash) bool {
	running := leaf

	for _, step := range steps {
		switch step.Position {
		case Left:
			running = combine(step.Hash, running)
		default:
			running = combine(running, step.Hash)
		}
	}

	return running == root
}

// combine produces a parent hash from two child hashes by digesting the
// concatenation of their hex encodings.
func combine(left digest.Hash, right digest.Hash) digest.Hash {
	return digest.SumString(left.Hex() + right.Hex())
}
