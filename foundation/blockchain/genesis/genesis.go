// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"os"
	"time"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date             time.Time `json:"date"`
	ChainID          uint16    `json:"chain_id"`           // A unique id for this running instance.
	TransPerBlock    uint16    `json:"trans_per_block"`    // The maximum number of transactions that can be in a block.
	Difficulty       uint16    `json:"difficulty"`         // Number of leading zero hex characters needed to solve the work problem.
	BlockIntervalSec uint16    `json:"block_interval_sec"` // Target seconds per block driving the difficulty controller.
	MiningReward     uint64    `json:"mining_reward"`      // Reward for mining a block, paid through a coinbase transaction.
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Save writes the genesis information to the specified path.
func (g Genesis) Save(path string) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
