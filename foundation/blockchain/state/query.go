package state

import (
	"fmt"

	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ardanlabs/minichain/foundation/blockchain/digest"
	"github.com/ardanlabs/minichain/foundation/blockchain/genesis"
	"github.com/ardanlabs/minichain/foundation/blockchain/merkle"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveMempool returns a copy of the mempool, oldest first.
func (s *State) RetrieveMempool() []database.Tx {
	return s.mempool.PickBest(-1)
}

// MempoolLength returns the current number of uncommitted transactions.
func (s *State) MempoolLength() int {
	return s.mempool.Count()
}

// ChainLength returns the number of blocks in the chain.
func (s *State) ChainLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chain.Len()
}

// TipHash returns the hash of the latest block, or the zero hash for an
// empty chain.
func (s *State) TipHash() digest.Hash {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chain.TipHash()
}

// Difficulty returns the current mining difficulty.
func (s *State) Difficulty() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.difficulty
}

// LatestBlock returns the block at the tip of the chain.
func (s *State) LatestBlock() (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chain.Block(s.chain.Len() - 1)
}

// RetrieveBlocks returns the blocks for the inclusive height range. A
// zero from starts at the first block; a zero to ends at the tip.
// Heights are 1 based.
func (s *State) RetrieveBlocks(from uint64, to uint64) ([]database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	length := uint64(s.chain.Len())

	if from == 0 {
		from = 1
	}
	if to == 0 || to > length {
		to = length
	}

	if from > to {
		return nil, fmt.Errorf("invalid block range [%d, %d]", from, to)
	}

	blocks := make([]database.Block, 0, to-from+1)
	for height := from; height <= to; height++ {
		block, err := s.chain.Block(int(height - 1))
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}

// VerifyChain walks the in-memory chain and reports whether every block
// links to the hash of its predecessor.
func (s *State) VerifyChain() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chain.Verify()
}

// ProofForTx produces the merkle inclusion proof for the transaction at
// the specified index inside the block at the specified height, along
// with the root the proof folds up to.
func (s *State) ProofForTx(height uint64, index int) ([]merkle.ProofStep, digest.Hash, error) {
	s.mu.Lock()
	block, err := s.chain.Block(int(height) - 1)
	s.mu.Unlock()

	if err != nil {
		return nil, digest.Hash{}, err
	}

	tree, err := block.MerkleTree()
	if err != nil {
		return nil, digest.Hash{}, err
	}

	steps, err := tree.ProofFor(index)
	if err != nil {
		return nil, digest.Hash{}, err
	}

	return steps, tree.RootHash(), nil
}
