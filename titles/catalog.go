package titles

import (
	"sort"
	"strings"
)

// =============================================================================
// CATALOG - Lookup and search over title records
// =============================================================================

// Catalog is a read-only index over title records. Build it once from
// loaded reference data; all methods are safe for concurrent use
// because nothing mutates after construction.
type Catalog struct {
	records []Record
	byTitle map[string]Record
	byCode  map[int]Record
}

// NewCatalog indexes the given records. Records are held sorted by
// title so listing order is deterministic. Later records win on
// duplicate titles or codes, matching last-file-wins loader semantics.
func NewCatalog(records []Record) *Catalog {
	c := &Catalog{
		records: make([]Record, len(records)),
		byTitle: make(map[string]Record, len(records)),
		byCode:  make(map[int]Record, len(records)),
	}
	copy(c.records, records)
	sort.Slice(c.records, func(i, j int) bool {
		return c.records[i].Title < c.records[j].Title
	})
	for _, r := range records {
		c.byTitle[normalizeTitle(r.Title)] = r
		if r.SpecCode != 0 {
			c.byCode[r.SpecCode] = r
		}
	}
	return c
}

// List returns all records, sorted by title.
func (c *Catalog) List() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of indexed records.
func (c *Catalog) Len() int { return len(c.records) }

// Get looks a title up by name, case-insensitively.
func (c *Catalog) Get(title string) (Record, bool) {
	r, ok := c.byTitle[normalizeTitle(title)]
	return r, ok
}

// GetByCode looks a title up by its published spec code.
func (c *Catalog) GetByCode(code int) (Record, bool) {
	r, ok := c.byCode[code]
	return r, ok
}

// Search returns all records whose title contains the query,
// case-insensitively, in list order. An empty query matches everything.
func (c *Catalog) Search(query string) []Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.List()
	}
	var out []Record
	for _, r := range c.records {
		if strings.Contains(strings.ToLower(r.Title), q) {
			out = append(out, r)
		}
	}
	return out
}

// FilterQualifications returns all records whose qualification text
// contains the query, case-insensitively, in list order.
func (c *Catalog) FilterQualifications(query string) []Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.List()
	}
	var out []Record
	for _, r := range c.records {
		if strings.Contains(strings.ToLower(r.Qualifications), q) {
			out = append(out, r)
		}
	}
	return out
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
