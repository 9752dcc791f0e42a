/*
Package refdata loads and serves the immutable reference tables the
engine reads: the grade/step pay table, the title catalog, and the
promotional relationship list.

PURPOSE:
  All schema validation happens here, at load time; the payscale
  engine assumes its tables are valid and performs none itself. After
  Load returns, nothing mutates: reads are lock-free and safe for
  concurrent use.

SOURCES:
  - loader.go: JSON data files produced by the spec scraper
  - store/sqlite: the same tables packaged as a SQLite snapshot

SEE ALSO:
  - payscale/: Consumes PayTable
  - titles/: Consumes Titles and Relationships
*/
package refdata

import (
	"github.com/seagullcanfly/civilbuddy/payscale"
	"github.com/seagullcanfly/civilbuddy/titles"
)

// Store is the read surface over loaded reference data. Implementations
// must be immutable after construction.
type Store interface {
	// PayTable returns the grade -> step -> bi-weekly base pay table.
	PayTable() *payscale.PayTable

	// Titles returns all title records.
	Titles() []titles.Record

	// Relationships returns all promotional links.
	Relationships() []titles.Relationship
}

// Memory is the in-memory Store the loaders build.
type Memory struct {
	payTable      *payscale.PayTable
	titleRecords  []titles.Record
	relationships []titles.Relationship
}

// NewMemory builds a store from already-validated tables.
func NewMemory(table *payscale.PayTable, records []titles.Record, links []titles.Relationship) *Memory {
	return &Memory{
		payTable:      table,
		titleRecords:  records,
		relationships: links,
	}
}

func (m *Memory) PayTable() *payscale.PayTable { return m.payTable }

func (m *Memory) Titles() []titles.Record {
	out := make([]titles.Record, len(m.titleRecords))
	copy(out, m.titleRecords)
	return out
}

func (m *Memory) Relationships() []titles.Relationship {
	out := make([]titles.Relationship, len(m.relationships))
	copy(out, m.relationships)
	return out
}

var _ Store = (*Memory)(nil)
