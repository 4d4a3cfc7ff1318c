package cmd

import (
	"log"
	"time"

	"github.com/ardanlabs/minichain/foundation/blockchain/genesis"
	"github.com/spf13/cobra"
)

var (
	chainID          uint16
	transPerBlock    uint16
	difficulty       uint16
	blockIntervalSec uint16
	miningReward     uint64
)

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Write a new genesis file with the chain parameters",
	Run:   genesisRun,
}

func init() {
	genesisCmd.Flags().Uint16Var(&chainID, "chain-id", 1, "Unique id for this chain.")
	genesisCmd.Flags().Uint16Var(&transPerBlock, "trans-per-block", 10, "Maximum transactions per block.")
	genesisCmd.Flags().Uint16Var(&difficulty, "difficulty", 4, "Leading zero hex characters required on a block hash.")
	genesisCmd.Flags().Uint16Var(&blockIntervalSec, "block-interval-sec", 10, "Target seconds per block.")
	genesisCmd.Flags().Uint64Var(&miningReward, "mining-reward", 5_000_000, "Coinbase reward per mined block.")
	rootCmd.AddCommand(genesisCmd)
}

func genesisRun(cmd *cobra.Command, args []string) {
	gen := genesis.Genesis{
		Date:             time.Now().UTC(),
		ChainID:          chainID,
		TransPerBlock:    transPerBlock,
		Difficulty:       difficulty,
		BlockIntervalSec: blockIntervalSec,
		MiningReward:     miningReward,
	}

	if err := gen.Save(genesisPath); err != nil {
		log.Fatal(err)
	}

	log.Printf("genesis file written: %s", genesisPath)
}
