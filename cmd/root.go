package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openkataster/nasextract/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "nasextract",
	Short: "Extract relational tables from ALKIS/NAS cadastral documents",
	Long:  "Parses NAS (GML/XML) land-registry exports and produces seven related tables: parcels with geometry, persons, addresses, ledgers, ledger districts, booking entries, and ownership-share records.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
