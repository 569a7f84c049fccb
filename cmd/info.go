package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/openkataster/nasextract/internal/nas"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Extract one NAS document and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "info: read %s", args[0])
		}

		res, err := nas.ExtractLayer(data, cfg.Extract.Layer)
		if err != nil {
			return err
		}

		fmt.Printf("source: %s\n", args[0])
		fmt.Printf("crs:    %s\n", res.CRS)
		fmt.Printf("%-24s %d\n", "ax_flurstueck", len(res.Parcels))
		fmt.Printf("%-24s %d\n", "ax_person", len(res.Persons))
		fmt.Printf("%-24s %d\n", "ax_buchungsblattbezirk", len(res.Districts))
		fmt.Printf("%-24s %d\n", "ax_buchungsblatt", len(res.Ledgers))
		fmt.Printf("%-24s %d\n", "ax_anschrift", len(res.Addresses))
		fmt.Printf("%-24s %d\n", "ax_namensnummer", len(res.NameEntries))
		fmt.Printf("%-24s %d\n", "ax_buchungsstelle", len(res.BookingEntries))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
