package export

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/openkataster/nasextract/internal/nas"
)

// Manifest summarizes one extraction run for downstream tooling.
type Manifest struct {
	Source      string         `yaml:"source"`
	CRS         string         `yaml:"crs"`
	GeneratedAt time.Time      `yaml:"generated_at"`
	Rows        map[string]int `yaml:"rows"`
}

// NewManifest builds a manifest from an extraction result.
func NewManifest(source string, res *nas.Result) Manifest {
	return Manifest{
		Source:      source,
		CRS:         res.CRS,
		GeneratedAt: time.Now().UTC(),
		Rows: map[string]int{
			"ax_flurstueck":          len(res.Parcels),
			"ax_person":              len(res.Persons),
			"ax_buchungsblattbezirk": len(res.Districts),
			"ax_buchungsblatt":       len(res.Ledgers),
			"ax_anschrift":           len(res.Addresses),
			"ax_namensnummer":        len(res.NameEntries),
			"ax_buchungsstelle":      len(res.BookingEntries),
		},
	}
}

// WriteManifest writes the manifest as YAML.
func WriteManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return eris.Wrap(err, "export: marshal manifest")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write manifest %s", path)
	}
	return nil
}
