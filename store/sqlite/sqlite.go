/*
Package sqlite packages the reference tables as a single SQLite
snapshot file.

PURPOSE:
  Deployments that do not want to ship the loose JSON data files can
  import them once into a snapshot and serve lookups from that. The
  snapshot is reference data, not application state: it is written by
  Import, read in full at Open, and never updated in place.

KEY TABLES:
  pay_rates:     (grade, step, biweekly): the pay table
  titles:        (title, grade, spec_code, qual_text)
  relationships: (child, parent): promotional links

USAGE:
  mem, _ := refdata.Load("./data")
  _ = sqlite.Create("./data/refdata.db", mem)

  store, _ := sqlite.Open("./data/refdata.db")
  defer store.Close()

SEE ALSO:
  - refdata/: Store interface and JSON loader
*/
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/seagullcanfly/civilbuddy/payscale"
	"github.com/seagullcanfly/civilbuddy/refdata"
	"github.com/seagullcanfly/civilbuddy/titles"
)

// Store serves reference data from a SQLite snapshot. All rows are read
// at Open; lookups never touch the database afterwards.
type Store struct {
	db  *sql.DB
	mem *refdata.Memory
}

var _ refdata.Store = (*Store)(nil)

const schema = `
	CREATE TABLE IF NOT EXISTS pay_rates (
		grade TEXT NOT NULL,
		step TEXT NOT NULL,
		biweekly TEXT NOT NULL,
		PRIMARY KEY (grade, step)
	);

	CREATE TABLE IF NOT EXISTS titles (
		title TEXT PRIMARY KEY,
		grade TEXT NOT NULL,
		spec_code INTEGER NOT NULL DEFAULT 0,
		qual_text TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS relationships (
		child TEXT NOT NULL,
		parent TEXT NOT NULL,
		PRIMARY KEY (child, parent)
	);
`

// Create writes a snapshot file at path from an already-loaded store.
// Rows replace on conflict, so re-running against the same path
// refreshes the snapshot; point it at a fresh path for a clean build.
func Create(path string, src refdata.Store) error {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	pt := src.PayTable()
	for _, grade := range pt.Grades() {
		for _, step := range pt.Steps(grade) {
			pay, _ := pt.Rate(grade, step)
			if _, err := tx.Exec(
				`INSERT OR REPLACE INTO pay_rates (grade, step, biweekly) VALUES (?, ?, ?)`,
				string(grade), string(step), pay.String(),
			); err != nil {
				return fmt.Errorf("import pay rate %s/%s: %w", grade, step, err)
			}
		}
	}

	for _, r := range src.Titles() {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO titles (title, grade, spec_code, qual_text) VALUES (?, ?, ?, ?)`,
			r.Title, string(r.Grade), r.SpecCode, r.Qualifications,
		); err != nil {
			return fmt.Errorf("import title %q: %w", r.Title, err)
		}
	}

	for _, l := range src.Relationships() {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO relationships (child, parent) VALUES (?, ?)`,
			l.Child, l.Parent,
		); err != nil {
			return fmt.Errorf("import relationship %q -> %q: %w", l.Parent, l.Child, err)
		}
	}

	return tx.Commit()
}

// Open reads a snapshot into memory and returns the store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}

	mem, err := read(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, mem: mem}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) PayTable() *payscale.PayTable         { return s.mem.PayTable() }
func (s *Store) Titles() []titles.Record              { return s.mem.Titles() }
func (s *Store) Relationships() []titles.Relationship { return s.mem.Relationships() }

func read(db *sql.DB) (*refdata.Memory, error) {
	rates, err := readPayRates(db)
	if err != nil {
		return nil, err
	}
	records, err := readTitles(db)
	if err != nil {
		return nil, err
	}
	links, err := readRelationships(db)
	if err != nil {
		return nil, err
	}
	return refdata.NewMemory(payscale.NewPayTable(rates), records, links), nil
}

func readPayRates(db *sql.DB) (map[payscale.GradeID]map[payscale.StepID]decimal.Decimal, error) {
	rows, err := db.Query(`SELECT grade, step, biweekly FROM pay_rates`)
	if err != nil {
		return nil, fmt.Errorf("query pay rates: %w", err)
	}
	defer rows.Close()

	rates := make(map[payscale.GradeID]map[payscale.StepID]decimal.Decimal)
	for rows.Next() {
		var grade, step, biweekly string
		if err := rows.Scan(&grade, &step, &biweekly); err != nil {
			return nil, fmt.Errorf("scan pay rate: %w", err)
		}
		pay, err := decimal.NewFromString(biweekly)
		if err != nil {
			return nil, fmt.Errorf("grade %s step %s: bad amount %q: %w", grade, step, biweekly, err)
		}
		g := payscale.GradeID(grade)
		if rates[g] == nil {
			rates[g] = make(map[payscale.StepID]decimal.Decimal)
		}
		rates[g][payscale.StepID(step)] = pay
	}
	return rates, rows.Err()
}

func readTitles(db *sql.DB) ([]titles.Record, error) {
	rows, err := db.Query(`SELECT title, grade, spec_code, qual_text FROM titles ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("query titles: %w", err)
	}
	defer rows.Close()

	var records []titles.Record
	for rows.Next() {
		var r titles.Record
		var grade string
		if err := rows.Scan(&r.Title, &grade, &r.SpecCode, &r.Qualifications); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		r.Grade = payscale.GradeID(grade)
		records = append(records, r)
	}
	return records, rows.Err()
}

func readRelationships(db *sql.DB) ([]titles.Relationship, error) {
	rows, err := db.Query(`SELECT child, parent FROM relationships ORDER BY child, parent`)
	if err != nil {
		return nil, fmt.Errorf("query relationships: %w", err)
	}
	defer rows.Close()

	var links []titles.Relationship
	for rows.Next() {
		var l titles.Relationship
		if err := rows.Scan(&l.Child, &l.Parent); err != nil {
			return nil, fmt.Errorf("scan relationship: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
