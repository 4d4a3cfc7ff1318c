// Package cmd contains the admin tooling for working with a node's chain
// database directly.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath      string
	genesisPath string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db-path", "d", "zblock/blocks", "Path to the block storage directory.")
	rootCmd.PersistentFlags().StringVarP(&genesisPath, "genesis-path", "g", "zblock/genesis.json", "Path to the genesis file.")
}

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative tasks against the chain database",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
