package cmd

import (
	"log"

	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ardanlabs/minichain/foundation/blockchain/database/storage"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the hash linkage of the chain on disk",
	Run:   verifyRun,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func verifyRun(cmd *cobra.Command, args []string) {
	str, err := storage.NewDisk(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer str.Close()

	chain := database.NewBlockchain()

	iter := str.ForEach()
	for blockData, err := iter.Next(); !iter.Done(); blockData, err = iter.Next() {
		if err != nil {
			log.Fatal(err)
		}
		chain.AppendBlock(database.ToBlock(blockData))
	}

	if !chain.Verify() {
		log.Fatalf("chain INVALID: blocks[%d]", chain.Len())
	}

	log.Printf("chain valid: blocks[%d] tip[%s]", chain.Len(), chain.TipHash())
}
