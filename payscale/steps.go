package payscale

import "sort"

// =============================================================================
// STEP TABLE ACCESSOR
// =============================================================================

// Steps returns the ordered step identifiers for a grade, ascending,
// with the starting step "S" first. An absent grade yields an empty
// slice, not an error, and callers must treat that as "no data
// available" and disable dependent controls.
//
// Ordering is by Ordinal (S=0, then 1, 2, ...), stable and
// deterministic for identical input. A label that fails to parse sorts
// after every valid step, lexically among its kind; loaders reject such
// labels so this is belt-and-braces for hand-built tables.
func (t *PayTable) Steps(g GradeID) []StepID {
	rates, ok := t.grades[g]
	if !ok {
		return []StepID{}
	}

	steps := make([]StepID, 0, len(rates))
	for s := range rates {
		steps = append(steps, s)
	}
	sort.Slice(steps, func(i, j int) bool {
		return lessStep(steps[i], steps[j])
	})
	return steps
}

func lessStep(a, b StepID) bool {
	oa, errA := a.Ordinal()
	ob, errB := b.Ordinal()
	if errA == nil && errB == nil {
		return oa < ob
	}
	if errA == nil {
		return true
	}
	if errB == nil {
		return false
	}
	return a < b
}

func indexOfStep(steps []StepID, s StepID) int {
	for i, candidate := range steps {
		if candidate == s {
			return i
		}
	}
	return -1
}
