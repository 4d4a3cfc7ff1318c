// Package state is the core API for the blockchain node and implements
// all the business rules and processing.
package state

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ardanlabs/minichain/foundation/blockchain/genesis"
	"github.com/ardanlabs/minichain/foundation/blockchain/mempool"
)

// ErrNoTransactions is returned from MineNewBlock when the mempool holds
// nothing to mine.
var ErrNoTransactions = errors.New("no transactions in mempool")

// =============================================================================

// EventHandler defines a function that is called when events occur in the
// processing of blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by
// any package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start the node.
type Config struct {
	BeneficiaryID string
	Genesis       genesis.Genesis
	Storage       database.Serializer
	MiningWorkers int
	Rand          *rand.Rand
	EvHandler     EventHandler
}

// State manages the blockchain node.
type State struct {
	mu sync.Mutex

	beneficiaryID string
	evHandler     EventHandler
	genesis       genesis.Genesis
	storage       database.Serializer
	mempool       *mempool.Mempool
	chain         *database.Blockchain
	miningWorkers int
	rnd           *rand.Rand

	difficulty int
	lastMined  time.Time

	Worker Worker
}

// New constructs a new blockchain node state for data management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	difficulty := int(cfg.Genesis.Difficulty)
	if difficulty < 1 {
		difficulty = 1
	}

	state := State{
		beneficiaryID: cfg.BeneficiaryID,
		evHandler:     ev,
		genesis:       cfg.Genesis,
		storage:       cfg.Storage,
		mempool:       mempool.New(),
		chain:         database.NewBlockchain(),
		miningWorkers: cfg.MiningWorkers,
		rnd:           cfg.Rand,
		difficulty:    difficulty,
	}

	// Load any existing blocks from storage into memory for processing.
	if cfg.Storage != nil {
		iter := cfg.Storage.ForEach()
		for blockData, err := iter.Next(); !iter.Done(); blockData, err = iter.Next() {
			if err != nil {
				return nil, fmt.Errorf("reading chain from storage: %w", err)
			}

			state.chain.AppendBlock(database.ToBlock(blockData))
		}

		if !state.chain.Verify() {
			return nil, errors.New("stored chain fails linkage verification")
		}

		ev("state: New: loaded chain: blocks[%d]", state.chain.Len())
	}

	// The Worker is not set here. The call to worker.Run will assign
	// itself and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Make sure the storage is properly closed.
	defer func() {
		if s.storage != nil {
			s.storage.Close()
		}
	}()

	// Stop all blockchain writing activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// =============================================================================

// SubmitTx accepts a transaction into the mempool and signals a mining
// operation to pick it up.
func (s *State) SubmitTx(tx database.Tx) error {
	if tx.IsCoinbase() {
		return errors.New("coinbase transactions cannot be submitted")
	}

	if tx.ToID == "" {
		return errors.New("transaction requires a receiver")
	}

	if tx.Amount == 0 {
		return errors.New("transaction requires a positive amount")
	}

	s.evHandler("state: SubmitTx: tx[%s]: from[%s] to[%s] amount[%d]", tx.TxID(), tx.FromID, tx.ToID, tx.Amount)
	s.mempool.Upsert(tx)

	if s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return nil
}
