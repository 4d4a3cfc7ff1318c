package state

import (
	"context"
	"fmt"
	"time"

	"github.com/ardanlabs/minichain/foundation/blockchain/database"
)

// Difficulty bounds for the retarget controller.
const (
	minDifficulty = 1
	maxDifficulty = 16
)

// MineNewBlock attempts to create a new block with a proper hash. It
// prepends a coinbase transaction paying the node beneficiary, runs the
// proof of work over the candidate, and on success commits the block to
// the chain and storage. The operation aborts when the context is
// cancelled or when the mempool is empty.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	defer s.evHandler("state: MineNewBlock: MINING: completed")

	trans := s.mempool.PickBest(int(s.genesis.TransPerBlock))
	if len(trans) == 0 {
		return database.Block{}, ErrNoTransactions
	}

	timestamp := database.Now()
	coinbase := database.NewCoinbaseTx(s.beneficiaryID, s.genesis.MiningReward, timestamp)
	trans = append([]database.Tx{coinbase}, trans...)

	s.mu.Lock()
	if s.lastMined.IsZero() {
		s.lastMined = time.Now()
	}
	cfg := database.POWConfig{
		Difficulty: s.difficulty,
		Workers:    s.miningWorkers,
		Rand:       s.rnd,
		EvHandler:  s.evHandler,
	}
	prevBlockHash := s.chain.TipHash()
	s.mu.Unlock()

	block, err := database.POW(ctx, cfg, prevBlockHash, trans, timestamp)
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	if err := s.commitBlock(block); err != nil {
		return database.Block{}, err
	}

	return block, nil
}

// commitBlock appends the mined block to the chain, persists it, removes
// the mined transactions from the mempool and retargets the difficulty.
func (s *State) commitBlock(block database.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The chain is single writer, but guard against the tip having moved
	// underneath a slow mining run.
	if block.Header.PrevBlockHash != s.chain.TipHash() {
		return fmt.Errorf("block prev hash %s does not match the chain tip", block.Header.PrevBlockHash)
	}

	s.chain.AppendBlock(block)

	if s.storage != nil {
		blockData := database.NewBlockData(uint64(s.chain.Len()), block)
		if err := s.storage.Write(blockData); err != nil {
			return fmt.Errorf("writing block to storage: %w", err)
		}
	}

	for _, tx := range block.Trans {
		if !tx.IsCoinbase() {
			s.mempool.Delete(tx)
		}
	}

	// One sample drives one adjustment: the elapsed time since the
	// previous block was committed.
	elapsed := time.Since(s.lastMined)
	s.lastMined = time.Now()
	target := time.Duration(s.genesis.BlockIntervalSec) * time.Second

	newDifficulty := RetargetDifficulty(s.difficulty, elapsed, target)
	if newDifficulty != s.difficulty {
		s.evHandler("state: commitBlock: difficulty retarget: %d -> %d: elapsed[%s] target[%s]", s.difficulty, newDifficulty, elapsed, target)
		s.difficulty = newDifficulty
	}

	return nil
}

// RetargetDifficulty moves the difficulty one step toward the target
// block time. A block coming in faster than the target raises the
// difficulty, slower lowers it. The result is clamped to [1, 16].
func RetargetDifficulty(difficulty int, blockTime time.Duration, targetBlockTime time.Duration) int {
	switch {
	case blockTime > targetBlockTime:
		difficulty--
	case blockTime < targetBlockTime:
		difficulty++
	}

	if difficulty < minDifficulty {
		difficulty = minDifficulty
	}
	if difficulty > maxDifficulty {
		difficulty = maxDifficulty
	}

	return difficulty
}
