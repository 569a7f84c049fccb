package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openkataster/nasextract/internal/export"
	"github.com/openkataster/nasextract/internal/nas"
	"github.com/openkataster/nasextract/internal/store"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract tables from every NAS document in a directory",
	Long:  "Scans a directory for *.xml NAS documents, extracts the seven entity tables from each, and writes them to the selected sink. Files are processed one at a time; a failing document is reported and skipped.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		inDir, _ := cmd.Flags().GetString("in")
		outDir, _ := cmd.Flags().GetString("out")
		format, _ := cmd.Flags().GetString("format")

		files, err := listXMLFiles(inDir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return eris.Errorf("extract: no xml files in %s", inDir)
		}

		var sink store.Store
		switch format {
		case "csv", "shp":
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return eris.Wrapf(err, "extract: create output dir %s", outDir)
			}
		case "sqlite":
			sink, err = store.NewSQLite(cfg.Store.DatabaseURL)
		case "postgres":
			sink, err = store.NewPostgres(cmd.Context(), cfg.Store.DatabaseURL)
		default:
			return eris.Errorf("extract: unknown format %q", format)
		}
		if err != nil {
			return err
		}
		if sink != nil {
			defer func() { _ = sink.Close() }()
			if err := sink.Migrate(cmd.Context()); err != nil {
				return err
			}
		}

		var failed int
		for _, file := range files {
			if err := extractOne(cmd.Context(), file, outDir, format, sink); err != nil {
				zap.L().Error("extract: document failed", zap.String("file", file), zap.Error(err))
				failed++
			}
		}

		fmt.Printf("processed %d documents, %d failed\n", len(files), failed)
		if failed > 0 {
			return eris.Errorf("extract: %d of %d documents failed", failed, len(files))
		}
		return nil
	},
}

// listXMLFiles returns the .xml files of a directory in lexical order.
func listXMLFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: read dir %s", dir)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func extractOne(ctx context.Context, file, outDir, format string, sink store.Store) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return eris.Wrapf(err, "extract: read %s", file)
	}

	zap.L().Info("extracting document", zap.String("file", file))
	res, err := nas.ExtractLayer(data, cfg.Extract.Layer)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	switch format {
	case "csv":
		delimiter := '|'
		if cfg.Extract.CSVDelimiter != "" {
			delimiter = []rune(cfg.Extract.CSVDelimiter)[0]
		}
		if err := export.WriteCSV(outDir, base, res, delimiter); err != nil {
			return err
		}
		manifest := export.NewManifest(file, res)
		return export.WriteManifest(filepath.Join(outDir, base+"_manifest.yaml"), manifest)
	case "shp":
		return export.WriteParcelShapefile(filepath.Join(outDir, base+".shp"), res.Parcels)
	default:
		runID, err := sink.SaveExtract(ctx, file, res)
		if err != nil {
			return err
		}
		zap.L().Info("extraction stored", zap.String("file", file), zap.String("run_id", runID))
		return nil
	}
}

func init() {
	extractCmd.Flags().String("in", ".", "directory containing NAS xml documents")
	extractCmd.Flags().String("out", "out", "output directory for csv/shp formats")
	extractCmd.Flags().String("format", "csv", "output sink: csv, shp, sqlite, postgres")
	rootCmd.AddCommand(extractCmd)
}
