package database

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ardanlabs/minichain/foundation/blockchain/digest"
)

// zeroPrefix covers the maximum difficulty of 64 leading zero hex
// characters a 256 bit hash can have.
const zeroPrefix = "0000000000000000000000000000000000000000000000000000000000000000"

// POWConfig represents the settings for a mining search.
type POWConfig struct {

	// Difficulty is the number of leading zero hex characters the block
	// hash must start with to be accepted as solved.
	Difficulty int

	// Workers is the number of goroutines racing over the nonce space.
	// Values below 1 run a single worker.
	Workers int

	// Rand seeds the per worker nonce generators. When nil, a wall clock
	// seeded source is used. Inject a fixed source for reproducible tests.
	Rand *rand.Rand

	// EvHandler receives progress events. May be nil.
	EvHandler func(v string, args ...any)
}

// POW constructs a candidate block over the transactions and searches the
// nonce space until the block hash satisfies the difficulty. Each worker
// samples uniform random nonces over the full 32 bit space and builds its
// own candidate; the first solver wins and the rest stop promptly. The
// search has no intrinsic bound: callers impose cancellation through the
// context if bounded latency is required.
func POW(ctx context.Context, cfg POWConfig, prevBlockHash digest.Hash, trans []Tx, timestamp Timestamp) (Block, error) {
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	ev("database: POW: MINING: started: difficulty[%d]", cfg.Difficulty)
	defer ev("database: POW: MINING: completed")

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	rnd := cfg.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// The merkle root only depends on the transactions, so every worker
	// shares one base candidate and varies the nonce on its own copy.
	base, err := NewBlock(prevBlockHash, trans, timestamp, 0)
	if err != nil {
		return Block{}, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(workers)

	var attempts uint64
	solved := make(chan Block, 1)

	for i := 0; i < workers; i++ {
		// Seed each worker before launch; rand.Rand is not safe for
		// concurrent use.
		seed := rnd.Int63()

		go func() {
			defer wg.Done()

			wrnd := rand.New(rand.NewSource(seed))
			candidate := base

			for {
				if ctx.Err() != nil {
					return
				}

				candidate.Header.Nonce = wrnd.Uint32()
				hash := candidate.Hash()

				if n := atomic.AddUint64(&attempts, 1); n%1_000_000 == 0 {
					ev("database: POW: MINING: attempts[%d]", n)
				}

				if !isHashSolved(cfg.Difficulty, hash) {
					continue
				}

				select {
				case solved <- candidate:
					ev("database: POW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]: nonce[%d]", candidate.Header.PrevBlockHash, hash, candidate.Header.Nonce)
				default:
				}

				cancel()
				return
			}
		}()
	}

	wg.Wait()

	select {
	case block := <-solved:
		return block, nil
	default:
		ev("database: POW: MINING: CANCELLED")
		return Block{}, ctx.Err()
	}
}

// isHashSolved checks the hash complies with the POW rules: the hex
// encoding must start with difficulty zero characters.
func isHashSolved(difficulty int, hash digest.Hash) bool {
	if difficulty < 0 || difficulty > len(zeroPrefix) {
		return false
	}

	hex := hash.Hex()
	return hex[:difficulty] == zeroPrefix[:difficulty]
}
