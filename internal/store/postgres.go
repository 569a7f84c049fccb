package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/openkataster/nasextract/internal/nas"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// for unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 4
	pgxCfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS extract_runs (
	id          TEXT PRIMARY KEY,
	source_file TEXT NOT NULL,
	crs         TEXT,
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS ax_flurstueck (
	run_id                                TEXT NOT NULL REFERENCES extract_runs(id),
	ax_flurstueck_id                      TEXT NOT NULL,
	flurstueckskennzeichen                TEXT,
	amtliche_flaeche                      DOUBLE PRECISION,
	ax_buchungsstelle_id                  TEXT,
	ax_lagebezeichnung_ohne_hausnummer_id TEXT,
	zeitpunkt_der_entstehung              TEXT,
	aa_lebenszeitintervall_beginnt        TIMESTAMPTZ,
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
	aa_lebenszeitintervall_beginnt TIMESTAMPTZ,
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
	aa_lebenszeitintervall_beginnt           TIMESTAMPTZ,
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
	aa_lebenszeitintervall_beginnt                TIMESTAMPTZ,
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
	aa_lebenszeitintervall_beginnt TIMESTAMPTZ,
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
	anteil                              DOUBLE PRECISION NOT NULL
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

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// SaveExtract records the run and bulk-loads all seven tables with COPY.
func (s *PostgresStore) SaveExtract(ctx context.Context, source string, res *nas.Result) (string, error) {
	runID := uuid.New().String()
	started := time.Now().UTC()

	tables, err := extractTables(runID, res)
	if err != nil {
		return "", err
	}

	if _, err := s.pool.Exec(ctx,
		`INSERT INTO extract_runs (id, source_file, crs, started_at) VALUES ($1, $2, $3, $4)`,
		runID, source, res.CRS, started,
	); err != nil {
		return "", eris.Wrap(err, "postgres: insert run")
	}

	for _, table := range tables {
		if len(table.rows) == 0 {
			continue
		}
		if _, err := s.pool.CopyFrom(ctx,
			pgx.Identifier{table.name}, table.columns, pgx.CopyFromRows(table.rows),
		); err != nil {
			return "", eris.Wrapf(err, "postgres: COPY INTO %s", table.name)
		}
	}

	if _, err := s.pool.Exec(ctx,
		`UPDATE extract_runs SET finished_at = $1 WHERE id = $2`,
		time.Now().UTC(), runID,
	); err != nil {
		return "", eris.Wrap(err, "postgres: finish run")
	}

	return runID, nil
}
