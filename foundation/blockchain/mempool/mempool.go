// Package mempool maintains the set of uncommitted transactions waiting
// to be mined into a block. Transactions are keyed by their content
// address, so resubmitting an identical transaction is a no-op.
package mempool

import (
	"sort"
	"sync"

	"github.com/ardanlabs/minichain/foundation/blockchain/database"
)

// Mempool represents a cache of uncommitted transactions.
type Mempool struct {
	mu   sync.RWMutex
	pool map[string]database.Tx
}

// New constructs a new mempool for uncommitted transactions.
func New() *Mempool {
	return &Mempool{
		pool: make(map[string]database.Tx),
	}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Upsert adds or replaces the specified transaction in the pool.
func (mp *Mempool) Upsert(tx database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool[tx.TxID().Hex()] = tx
}

// Delete removes the specified transaction from the pool.
func (mp *Mempool) Delete(tx database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	delete(mp.pool, tx.TxID().Hex())
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make(map[string]database.Tx)
}

// PickBest returns up to howMany transactions, oldest first. Passing a
// negative value returns every transaction in the pool. The ordering is
// deterministic: ties on timestamp break on the transaction id.
func (mp *Mempool) PickBest(howMany int) []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	txs := make([]database.Tx, 0, len(mp.pool))
	for _, tx := range mp.pool {
		txs = append(txs, tx)
	}

	sort.Slice(txs, func(i, j int) bool {
		if txs[i].Timestamp != txs[j].Timestamp {
			return txs[i].Timestamp < txs[j].Timestamp
		}
		return txs[i].TxID().Hex() < txs[j].TxID().Hex()
	})

	if howMany < 0 || howMany > len(txs) {
		return txs
	}

	return txs[:howMany]
}
