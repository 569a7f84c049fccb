// Package store persists extraction results into SQLite or PostgreSQL.
// Both backends share one relational layout: seven entity tables keyed by
// extraction run, plus an extract_runs bookkeeping table.
package store

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/openkataster/nasextract/internal/nas"
)

// Store defines the persistence interface for extraction results.
type Store interface {
	// Migrate creates the schema when missing.
	Migrate(ctx context.Context) error
	// SaveExtract stores all seven tables of one extraction under a fresh
	// run id, which it returns.
	SaveExtract(ctx context.Context, source string, res *nas.Result) (string, error)
	// Close releases the underlying connections.
	Close() error
}

// tableData is one entity table prepared for bulk insert: run_id prepended
// to every row and geometry already rendered to WKT.
type tableData struct {
	name    string
	columns []string
	rows    [][]any
}

// extractTables flattens a result into insertable table data.
func extractTables(runID string, res *nas.Result) ([]tableData, error) {
	build := func(name string, columns []string, count int, row func(int) []any) (tableData, error) {
		t := tableData{
			name:    name,
			columns: append([]string{"run_id"}, columns...),
			rows:    make([][]any, count),
		}
		for i := 0; i < count; i++ {
			values, err := bindValues(row(i))
			if err != nil {
				return tableData{}, err
			}
			t.rows[i] = append([]any{runID}, values...)
		}
		return t, nil
	}

	specs := []struct {
		name    string
		columns []string
		count   int
		row     func(int) []any
	}{
		{"ax_flurstueck", nas.ParcelColumns, len(res.Parcels), func(i int) []any { return res.Parcels[i].Row() }},
		{"ax_person", nas.PersonColumns, len(res.Persons), func(i int) []any { return res.Persons[i].Row() }},
		{"ax_buchungsblattbezirk", nas.LedgerDistrictColumns, len(res.Districts), func(i int) []any { return res.Districts[i].Row() }},
		{"ax_buchungsblatt", nas.LedgerColumns, len(res.Ledgers), func(i int) []any { return res.Ledgers[i].Row() }},
		{"ax_anschrift", nas.AddressColumns, len(res.Addresses), func(i int) []any { return res.Addresses[i].Row() }},
		{"ax_namensnummer", nas.NameEntryColumns, len(res.NameEntries), func(i int) []any { return res.NameEntries[i].Row() }},
		{"ax_buchungsstelle", nas.BookingEntryColumns, len(res.BookingEntries), func(i int) []any { return res.BookingEntries[i].Row() }},
	}

	tables := make([]tableData, 0, len(specs))
	for _, s := range specs {
		t, err := build(s.name, s.columns, s.count, s.row)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// bindValues converts model row values into driver-friendly ones. Pointer
// scalars pass through (drivers map nil to NULL); geometry becomes WKT.
func bindValues(row []any) ([]any, error) {
	out := make([]any, len(row))
	for i, v := range row {
		g, ok := v.(geom.T)
		if !ok {
			out[i] = v
			continue
		}
		if g == nil {
			out[i] = nil
			continue
		}
		s, err := wkt.Marshal(g)
		if err != nil {
			return nil, eris.Wrap(err, "store: marshal geometry")
		}
		out[i] = s
	}
	return out, nil
}
