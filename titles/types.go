/*
Package titles provides the civil-service title catalog and the
promotional relationship graph.

PURPOSE:
  Titles are the human entry point into the pay tables: each title maps
  to a grade (and optionally a published spec code), carries its
  qualification text, and may be reachable by promotion from one or
  more parent titles. This package is read-only browse/search over
  reference data loaded once at start; the salary math itself lives in
  the payscale package.

KEY CONCEPTS:
  - Record: one title with its grade, spec code, and qualification text
  - Catalog: lookup and substring search over records
  - Graph: parent/child promotional links, browsable both directions

SEE ALSO:
  - payscale/: The compensation derivation engine titles point into
  - refdata/: Loading of the title and relationship data files
*/
package titles

import "github.com/seagullcanfly/civilbuddy/payscale"

// Record is one civil-service title. Multiple titles may share a grade.
// Read-only, loaded once.
type Record struct {
	// Title is the published title name and the natural key of the
	// catalog.
	Title string

	// Grade references the pay table. A record whose grade is absent
	// from the pay table still lists and searches; the calculator
	// simply has no data for it.
	Grade payscale.GradeID

	// SpecCode is the published four-digit specification code; 0 when
	// the title has no published spec.
	SpecCode int

	// Qualifications is the free-form minimum-qualification text from
	// the title's spec page.
	Qualifications string
}

// Relationship is one promotional link: Child is reachable by promotion
// from Parent.
type Relationship struct {
	Child  string
	Parent string
}
