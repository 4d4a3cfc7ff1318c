// Package selector provides the weighted random pick used for validator
// selection. It is a pure function over an injected random source so the
// stated distribution can be tested deterministically.
package selector

import (
	"errors"
	"math/rand"
)

// Select draws a uniform random integer in [0, sum(weights)) and returns
// the index of the first weight whose cumulative sum exceeds the draw.
// Over many draws each index is selected with probability proportional to
// its weight.
func Select(r *rand.Rand, weights []uint) (int, error) {
	if len(weights) == 0 {
		return 0, errors.New("empty weight table")
	}

	var total uint
	for _, weight := range weights {
		total += weight
	}

	if total == 0 {
		return 0, errors.New("weight table sums to zero")
	}

	draw := uint(r.Int63n(int64(total)))

	var cumulative uint
	for i, weight := range weights {
		cumulative += weight
		if draw < cumulative {
			return i, nil
		}
	}

	// Unreachable: draw < total and the cumulative sum ends at total.
	return len(weights) - 1, nil
}
