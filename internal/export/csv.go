// Package export serializes extraction results to delimited text,
// shapefiles, and run manifests.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
	"go.uber.org/zap"

	"github.com/openkataster/nasextract/internal/nas"
)

// Table names used for output files and database tables, in the fixed
// order the tables are built.
var TableNames = []string{
	"ax_flurstueck", "ax_person", "ax_buchungsblattbezirk", "ax_buchungsblatt",
	"ax_anschrift", "ax_namensnummer", "ax_buchungsstelle",
}

// WriteCSV writes the seven tables of one extraction as delimited text
// files named <base>_<table>.csv under dir. Geometry is serialized as WKT;
// absent values become empty cells.
func WriteCSV(dir, base string, res *nas.Result, delimiter rune) error {
	tables := []struct {
		name    string
		columns []string
		rows    func() [][]any
	}{
		{"ax_flurstueck", nas.ParcelColumns, func() [][]any { return parcelRows(res.Parcels) }},
		{"ax_person", nas.PersonColumns, func() [][]any { return personRows(res.Persons) }},
		{"ax_buchungsblattbezirk", nas.LedgerDistrictColumns, func() [][]any { return districtRows(res.Districts) }},
		{"ax_buchungsblatt", nas.LedgerColumns, func() [][]any { return ledgerRows(res.Ledgers) }},
		{"ax_anschrift", nas.AddressColumns, func() [][]any { return addressRows(res.Addresses) }},
		{"ax_namensnummer", nas.NameEntryColumns, func() [][]any { return nameEntryRows(res.NameEntries) }},
		{"ax_buchungsstelle", nas.BookingEntryColumns, func() [][]any { return bookingRows(res.BookingEntries) }},
	}

	for _, table := range tables {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", base, table.name))
		if err := writeTable(path, table.columns, table.rows(), delimiter); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(path string, columns []string, rows [][]any, delimiter rune) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if delimiter != 0 {
		w.Comma = delimiter
	}

	if err := w.Write(columns); err != nil {
		return eris.Wrapf(err, "export: write header %s", path)
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = Cell(v)
		}
		if err := w.Write(record); err != nil {
			return eris.Wrapf(err, "export: write row %s", path)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "export: flush %s", path)
	}
	return nil
}

// Cell renders one table value as text. Absent values render empty,
// timestamps as RFC 3339 UTC, geometries as WKT.
func Cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case *float64:
		if t == nil {
			return ""
		}
		return strconv.FormatFloat(*t, 'f', -1, 64)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.UTC().Format(time.RFC3339)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case geom.T:
		if t == nil {
			return ""
		}
		s, err := wkt.Marshal(t)
		if err != nil {
			zap.L().Warn("export: wkt marshal", zap.Error(err))
			return ""
		}
		return s
	default:
		return fmt.Sprint(t)
	}
}

func parcelRows(parcels []nas.Parcel) [][]any {
	rows := make([][]any, len(parcels))
	for i, p := range parcels {
		rows[i] = p.Row()
	}
	return rows
}

func personRows(persons []nas.Person) [][]any {
	rows := make([][]any, len(persons))
	for i, p := range persons {
		rows[i] = p.Row()
	}
	return rows
}

func districtRows(districts []nas.LedgerDistrict) [][]any {
	rows := make([][]any, len(districts))
	for i, d := range districts {
		rows[i] = d.Row()
	}
	return rows
}

func ledgerRows(ledgers []nas.Ledger) [][]any {
	rows := make([][]any, len(ledgers))
	for i, l := range ledgers {
		rows[i] = l.Row()
	}
	return rows
}

func addressRows(addresses []nas.Address) [][]any {
	rows := make([][]any, len(addresses))
	for i, a := range addresses {
		rows[i] = a.Row()
	}
	return rows
}

func nameEntryRows(entries []nas.NameEntry) [][]any {
	rows := make([][]any, len(entries))
	for i, n := range entries {
		rows[i] = n.Row()
	}
	return rows
}

func bookingRows(entries []nas.BookingEntry) [][]any {
	rows := make([][]any, len(entries))
	for i, b := range entries {
		rows[i] = b.Row()
	}
	return rows
}
