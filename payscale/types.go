/*
Package payscale implements the compensation derivation engine.

PURPOSE:
  This package contains the pure calculation and lookup logic that turns
  (grade, step, shift, date, promotion-target) inputs into salary figures
  and promotion outcomes. Everything here is a referentially transparent
  function over immutable in-memory tables: no I/O, no shared mutable
  state, no side effects.

KEY CONCEPTS IN THIS FILE (types.go):
  - GradeID/StepID: Type-safe identifiers into the pay table
  - PayTable: Immutable grade -> step -> bi-weekly base pay lookup
  - Shift/ShiftRates: Off-shift differential premiums

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point errors
  2. Type Safety: Strong typing for grade/step keys prevents the
     string-vs-numeric step comparison bugs of loosely keyed lookups
  3. Failure as values: Missing data yields empty/absent results,
     never errors; the engine must stay usable with partial input

SEE ALSO:
  - steps.go: Ordered step access within a grade
  - compose.go: Differential, adjustment, and annual projection
  - promotion.go: Minimum-raise-guarantee promotion evaluation
*/
package payscale

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// GradeID identifies a civil-service pay band. It governs which step
// table applies.
type GradeID string

// StepID identifies a position within a grade's pay progression.
// "S" is the starting/entry step; every other valid label is a positive
// integer rendered as a string ("1", "2", ...).
type StepID string

// StepStart is the entry step of every grade.
const StepStart StepID = "S"

// Ordinal returns the numeric rank of a step: 0 for the starting step,
// the integer value otherwise. The starting step always sorts strictly
// below step 1.
func (s StepID) Ordinal() (int, error) {
	if s == StepStart {
		return 0, nil
	}
	n, err := strconv.Atoi(string(s))
	if err != nil || n < 1 {
		return 0, &InvalidStepError{Step: s}
	}
	return n, nil
}

// Valid reports whether the label is "S" or a positive integer.
func (s StepID) Valid() bool {
	_, err := s.Ordinal()
	return err == nil
}

// =============================================================================
// PAY TABLE - Immutable grade -> step -> bi-weekly base pay lookup
// =============================================================================

// PayTable is the read-only reference table consumed at engine
// construction time. It is loaded once and never mutated; within a
// grade, pay is assumed (not enforced) to be non-decreasing by step.
type PayTable struct {
	grades map[GradeID]map[StepID]decimal.Decimal
}

// NewPayTable builds a table from raw rates. The input map is copied so
// later caller mutations cannot reach the table.
func NewPayTable(rates map[GradeID]map[StepID]decimal.Decimal) *PayTable {
	grades := make(map[GradeID]map[StepID]decimal.Decimal, len(rates))
	for g, steps := range rates {
		copied := make(map[StepID]decimal.Decimal, len(steps))
		for s, pay := range steps {
			copied[s] = pay
		}
		grades[g] = copied
	}
	return &PayTable{grades: grades}
}

// Grades returns all grade identifiers, sorted numerically where the
// labels parse as integers and lexically otherwise.
func (t *PayTable) Grades() []GradeID {
	grades := make([]GradeID, 0, len(t.grades))
	for g := range t.grades {
		grades = append(grades, g)
	}
	sort.Slice(grades, func(i, j int) bool {
		return lessGrade(grades[i], grades[j])
	})
	return grades
}

// HasGrade reports whether the grade exists in the table.
func (t *PayTable) HasGrade(g GradeID) bool {
	_, ok := t.grades[g]
	return ok
}

// Rate returns the bi-weekly base pay for (grade, step). The second
// return is false when either key is absent; callers treat that as
// "no data available", not as an error.
func (t *PayTable) Rate(g GradeID, s StepID) (decimal.Decimal, bool) {
	steps, ok := t.grades[g]
	if !ok {
		return decimal.Zero, false
	}
	pay, ok := steps[s]
	return pay, ok
}

func lessGrade(a, b GradeID) bool {
	na, errA := strconv.Atoi(string(a))
	nb, errB := strconv.Atoi(string(b))
	if errA == nil && errB == nil {
		return na < nb
	}
	if errA == nil {
		return true
	}
	if errB == nil {
		return false
	}
	return a < b
}

// =============================================================================
// SHIFT DIFFERENTIALS
// =============================================================================

// Shift is the work schedule a differential premium attaches to.
type Shift string

const (
	ShiftNone    Shift = "none"
	ShiftEvening Shift = "evening"
	ShiftNight   Shift = "night"
)

// ShiftRates holds the operator-tunable differential percentages.
type ShiftRates struct {
	Evening decimal.Decimal
	Night   decimal.Decimal
}

// DefaultShiftRates returns the contract defaults: 6% evening, 10% night.
func DefaultShiftRates() ShiftRates {
	return ShiftRates{
		Evening: decimal.RequireFromString("0.06"),
		Night:   decimal.RequireFromString("0.10"),
	}
}

// Rate returns the differential for a shift. Unknown shifts rate as
// ShiftNone so a half-filled selection never breaks a calculation.
func (r ShiftRates) Rate(s Shift) decimal.Decimal {
	switch s {
	case ShiftEvening:
		return r.Evening
	case ShiftNight:
		return r.Night
	default:
		return decimal.Zero
	}
}
