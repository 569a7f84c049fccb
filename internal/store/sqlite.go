package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/openkataster/nasextract/internal/nas"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS extract_runs (
	id          TEXT PRIMARY KEY,
	source_file TEXT NOT NULL,
	crs         TEXT,
	started_at  DATETIME NOT NULL,
	finished_at DATETIME
);

CREATE TABLE IF NOT EXISTS ax_flurstueck (
	run_id                                TEXT NOT NULL REFERENCES extract_runs(id),
	ax_flurstueck_id                      TEXT NOT NULL,
	flurstueckskennzeichen                TEXT,
	amtliche_flaeche                      REAL,
	ax_buchungsstelle_id                  TEXT,
	ax_lagebezeichnung_ohne_hausnummer_id TEXT,
	zeitpunkt_der_entstehung              TEXT,
	aa_lebenszeitintervall_beginnt        DATETIME,
	geometry                              TEXT
);

CREATE TABLE IF NOT EXISTS ax_person (
	run_id                         TEXT NOT NULL REFERENCES extract_runs(id),
	ax_person_id                   TEXT NOT NULL,
	nachname_oder_firma            TEXT,
	vorname                        TEXT,
	anrede                         TEXT,
	namensbestandteil              TEXT,
	akademischer_grad              TEXT,
	geburtsname                    TEXT,
	geburtsdatum                   TEXT,
	ax_anschrift_id                TEXT,
	aa_lebenszeitintervall_beginnt DATETIME,
	anlass                         TEXT
);

CREATE TABLE IF NOT EXISTS ax_buchungsblattbezirk (
	run_id                                   TEXT NOT NULL REFERENCES extract_runs(id),
	ax_buchungsblattbezirk_id                TEXT NOT NULL,
	schluessel_gesamt                        TEXT,
	bbz_bezeichnung                          TEXT,
	ax_buchungsblattbezirk_schluessel_land   TEXT,
	ax_buchungsblattbezirk_schluessel_bezirk TEXT,
	ax_dienststelle_schluessel_land          TEXT,
	ax_dienststelle_schluessel_stelle        TEXT,
	aa_lebenszeitintervall_beginnt           DATETIME,
	anlass                                   TEXT
);

CREATE TABLE IF NOT EXISTS ax_buchungsblatt (
	run_id                                        TEXT NOT NULL REFERENCES extract_runs(id),
	ax_buchungsblatt_id                           TEXT NOT NULL,
	buchungsblattkennzeichen                      TEXT,
	land                                          TEXT,
	bezirk                                        TEXT,
	schluessel_gesamt                             TEXT,
	blattart                                      TEXT,
	buchungsblattnummer_mit_buchstabenerweiterung TEXT,
	aa_lebenszeitintervall_beginnt                DATETIME,
	anlass                                        TEXT
);

CREATE TABLE IF NOT EXISTS ax_anschrift (
	run_id                         TEXT NOT NULL REFERENCES extract_runs(id),
	ax_anschrift_id                TEXT NOT NULL,
	ort_post                       TEXT,
	postleitzahl_postzustellung    TEXT,
	strasse                        TEXT,
	hausnummer                     TEXT,
	ortsteil                       TEXT,
	aa_lebenszeitintervall_beginnt DATETIME,
	anlass                         TEXT,
	tel                            TEXT,
	weitere_adressen               TEXT
);

CREATE TABLE IF NOT EXISTS ax_namensnummer (
	run_id                              TEXT NOT NULL REFERENCES extract_runs(id),
	ax_namensnummer_id                  TEXT NOT NULL,
	ax_person_id                        TEXT,
	laufende_nummer                     TEXT,
	ax_buchungsblatt_id                 TEXT,
	anlass                              TEXT,
	art_der_rechtsgemeinschaft          TEXT,
	besteht_aus_rechtsverhaeltnissen_zu TEXT,
	anteil                              REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS ax_buchungsstelle (
	run_id               TEXT NOT NULL REFERENCES extract_runs(id),
	ax_buchungsstelle_id TEXT NOT NULL,
	buchungsart          TEXT,
	laufende_nummer      TEXT,
	ax_buchungsblatt_id  TEXT
);

CREATE INDEX IF NOT EXISTS idx_flurstueck_run ON ax_flurstueck(run_id);
CREATE INDEX IF NOT EXISTS idx_person_run ON ax_person(run_id);
CREATE INDEX IF NOT EXISTS idx_namensnummer_person ON ax_namensnummer(ax_person_id);
CREATE INDEX IF NOT EXISTS idx_buchungsstelle_blatt ON ax_buchungsstelle(ax_buchungsblatt_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveExtract writes all seven tables of one extraction in a single
// transaction and records the run in extract_runs.
func (s *SQLiteStore) SaveExtract(ctx context.Context, source string, res *nas.Result) (string, error) {
	runID := uuid.New().String()
	started := time.Now().UTC()

	tables, err := extractTables(runID, res)
	if err != nil {
		return "", err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: begin")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO extract_runs (id, source_file, crs, started_at) VALUES (?, ?, ?, ?)`,
		runID, source, res.CRS, started,
	); err != nil {
		return "", eris.Wrap(err, "sqlite: insert run")
	}

	for _, table := range tables {
		query := insertQuery(table)
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return "", eris.Wrapf(err, "sqlite: prepare insert %s", table.name)
		}
		for _, row := range table.rows {
			if _, err := stmt.ExecContext(ctx, row...); err != nil {
				stmt.Close()
				return "", eris.Wrapf(err, "sqlite: insert into %s", table.name)
			}
		}
		stmt.Close()
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE extract_runs SET finished_at = ? WHERE id = ?`,
		time.Now().UTC(), runID,
	); err != nil {
		return "", eris.Wrap(err, "sqlite: finish run")
	}

	if err := tx.Commit(); err != nil {
		return "", eris.Wrap(err, "sqlite: commit")
	}
	return runID, nil
}

func insertQuery(t tableData) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.name, strings.Join(t.columns, ", "), placeholders)
}
