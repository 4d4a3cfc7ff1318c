package cmd

import (
	"context"
	"log"
	"math/rand"
	"runtime"
	"time"

	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ardanlabs/minichain/foundation/blockchain/database/storage"
	"github.com/ardanlabs/minichain/foundation/blockchain/genesis"
	"github.com/ardanlabs/minichain/foundation/blockchain/state"
	"github.com/spf13/cobra"
)

var (
	beneficiary string
	txFrom      string
	txTo        string
	txAmount    uint64
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine one block with a single transaction onto the chain",
	Run:   mineRun,
}

func init() {
	mineCmd.Flags().StringVar(&beneficiary, "beneficiary", "miner1", "Account credited with the mining reward.")
	mineCmd.Flags().StringVar(&txFrom, "from", "", "Sender for the transaction to mine.")
	mineCmd.Flags().StringVar(&txTo, "to", "", "Receiver for the transaction to mine.")
	mineCmd.Flags().Uint64Var(&txAmount, "amount", 0, "Amount for the transaction to mine.")
	mineCmd.MarkFlagRequired("from")
	mineCmd.MarkFlagRequired("to")
	mineCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(mineCmd)
}

func mineRun(cmd *cobra.Command, args []string) {
	gen, err := genesis.Load(genesisPath)
	if err != nil {
		log.Fatal(err)
	}

	str, err := storage.NewDisk(dbPath)
	if err != nil {
		log.Fatal(err)
	}

	st, err := state.New(state.Config{
		BeneficiaryID: beneficiary,
		Genesis:       gen,
		Storage:       str,
		MiningWorkers: runtime.NumCPU(),
		Rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
		EvHandler: func(v string, args ...any) {
			log.Printf(v, args...)
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	defer st.Shutdown()

	tx := database.NewTx(txFrom, txTo, txAmount, database.Now())
	if err := st.SubmitTx(tx); err != nil {
		log.Fatal(err)
	}

	block, err := st.MineNewBlock(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("mined block %d: hash[%s] nonce[%d]", st.ChainLength(), block.Hash(), block.Header.Nonce)
}
