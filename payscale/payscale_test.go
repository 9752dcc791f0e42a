package payscale_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seagullcanfly/civilbuddy/payscale"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func table(rates map[string]map[string]string) *payscale.PayTable {
	raw := make(map[payscale.GradeID]map[payscale.StepID]decimal.Decimal, len(rates))
	for g, steps := range rates {
		raw[payscale.GradeID(g)] = make(map[payscale.StepID]decimal.Decimal, len(steps))
		for s, pay := range steps {
			raw[payscale.GradeID(g)][payscale.StepID(s)] = dec(pay)
		}
	}
	return payscale.NewPayTable(raw)
}

// promoTable is the scenario from the contract worksheets: grade 10
// step 1 pays $2000 bi-weekly with a next step at $2060, grade 12 runs
// $2000/$2050/$2100.
func promoTable() *payscale.PayTable {
	return table(map[string]map[string]string{
		"10": {"S": "1900", "1": "2000", "2": "2060"},
		"12": {"1": "2000", "2": "2050", "3": "2100"},
	})
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual),
		"expected %s, got %s (%v)", expected, actual, msgAndArgs)
}

// =============================================================================
// STEP TABLE ACCESSOR TESTS
// =============================================================================

func TestSteps_StartingStepSortsFirst(t *testing.T) {
	// GIVEN: A grade with steps S, 1, 2
	// WHEN: Asking for its ordered steps
	// THEN: "S" comes first, then ascending integers

	pt := table(map[string]map[string]string{
		"07": {"2": "1100", "S": "1000", "1": "1050"},
	})

	steps := pt.Steps("07")
	assert.Equal(t, []payscale.StepID{"S", "1", "2"}, steps)
}

func TestSteps_DoubleDigitStepsSortNumerically(t *testing.T) {
	// A lexical sort would put "10" before "2"; ordinals must win.
	pt := table(map[string]map[string]string{
		"20": {"10": "3000", "2": "2200", "S": "2000", "1": "2100"},
	})

	steps := pt.Steps("20")
	assert.Equal(t, []payscale.StepID{"S", "1", "2", "10"}, steps)
}

func TestSteps_MissingGradeIsEmptyNotError(t *testing.T) {
	// GIVEN: A grade absent from the table
	// WHEN: Asking for its steps
	// THEN: Empty slice; callers disable dependent controls

	pt := promoTable()

	steps := pt.Steps("999")
	assert.NotNil(t, steps)
	assert.Empty(t, steps)
}

func TestSteps_Deterministic(t *testing.T) {
	pt := promoTable()

	first := pt.Steps("12")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, pt.Steps("12"))
	}
}

func TestStepID_Ordinal(t *testing.T) {
	ord, err := payscale.StepStart.Ordinal()
	require.NoError(t, err)
	assert.Equal(t, 0, ord)

	ord, err = payscale.StepID("7").Ordinal()
	require.NoError(t, err)
	assert.Equal(t, 7, ord)

	_, err = payscale.StepID("0").Ordinal()
	assert.ErrorIs(t, err, payscale.ErrInvalidStep)

	_, err = payscale.StepID("x").Ordinal()
	assert.ErrorIs(t, err, payscale.ErrInvalidStep)
}

// =============================================================================
// RATE COMPOSER TESTS
// =============================================================================

func TestCompose_NoDifferentialNoAdjustmentIsNoOp(t *testing.T) {
	// GIVEN: Zero differential and 1.0 adjustment
	// WHEN: Composing any table value
	// THEN: BiWeekly equals the raw base exactly

	pt := promoTable()
	for _, g := range pt.Grades() {
		for _, s := range pt.Steps(g) {
			raw, ok := pt.Rate(g, s)
			require.True(t, ok)

			got := payscale.Compose(raw, decimal.Zero, dec("1.0"), payscale.DefaultComposeOptions())
			assert.True(t, raw.Equal(got.BiWeekly), "grade %s step %s", g, s)
		}
	}
}

func TestCompose_AnnualBase(t *testing.T) {
	// annualBase == base * adjustment * (1+differential) * payPeriods
	opts := payscale.DefaultComposeOptions()

	got := payscale.Compose(dec("2000"), dec("0.10"), dec("1.025"), opts)

	// 2000 * 1.025 * 1.10 = 2255; * 26.1 = 58855.5
	assertDecimal(t, "2255", got.BiWeekly)
	assertDecimal(t, "58855.5", got.AnnualBase)
}

func TestCompose_HolidayPayUsesDifferentialAdjustedRate(t *testing.T) {
	// GIVEN: A night-shift employee
	// WHEN: Composing with holidays included
	// THEN: Holiday pay builds on the differential-adjusted daily rate
	//       (permanent-shift employees earn their shift rate on holidays)

	opts := payscale.DefaultComposeOptions()

	got := payscale.Compose(dec("2000"), dec("0.10"), dec("1.0"), opts)

	// biWeekly 2200, daily 220, holiday 220*1.5*13 = 4290
	// annualBase 2200*26.1 = 57420; with holidays 61710
	assertDecimal(t, "2200", got.BiWeekly)
	assertDecimal(t, "57420", got.AnnualBase)
	assertDecimal(t, "61710", got.AnnualWithHolidays)
}

func TestCompose_HolidaysExcluded(t *testing.T) {
	opts := payscale.DefaultComposeOptions()
	opts.IncludeHolidays = false

	got := payscale.Compose(dec("2000"), decimal.Zero, dec("1.0"), opts)

	assert.True(t, got.AnnualBase.Equal(got.AnnualWithHolidays))
}

func TestCompose_ZeroBaseYieldsZeros(t *testing.T) {
	// No data selected yet: all outputs zero, never an error.
	got := payscale.Compose(decimal.Zero, dec("0.06"), dec("1.025"), payscale.DefaultComposeOptions())

	assert.True(t, got.BiWeekly.IsZero())
	assert.True(t, got.AnnualBase.IsZero())
	assert.True(t, got.AnnualWithHolidays.IsZero())
}

func TestCompose_Idempotent(t *testing.T) {
	opts := payscale.DefaultComposeOptions()

	a := payscale.Compose(dec("1234.56"), dec("0.06"), dec("1.025"), opts)
	b := payscale.Compose(dec("1234.56"), dec("0.06"), dec("1.025"), opts)

	assert.True(t, a.BiWeekly.Equal(b.BiWeekly))
	assert.True(t, a.AnnualBase.Equal(b.AnnualBase))
	assert.True(t, a.AnnualWithHolidays.Equal(b.AnnualWithHolidays))
}

// =============================================================================
// PROMOTION EVALUATOR TESTS
// =============================================================================

func TestEvaluate_BeforeJulyFirst_NoStepIncrease(t *testing.T) {
	// GIVEN: Grade 10 step 1 at $2000, target grade 12 {2000,2050,2100}
	// WHEN: Promotion effective before July 1
	// THEN: targetMinimum 2060, lands on step 3 ($2100), no increase simulated

	q := payscale.PromotionQuery{
		CurrentGrade:  "10",
		CurrentStep:   "1",
		TargetGrade:   "12",
		EffectiveDate: date(2025, time.March, 15),
	}

	res := payscale.Evaluate(promoTable(), q, payscale.DefaultMinimumRaiseRate())
	require.NotNil(t, res)

	assert.False(t, res.StepIncreaseApplied)
	assertDecimal(t, "2000", res.AdjustedBase)
	assertDecimal(t, "2060", res.TargetMinimum)
	assert.Equal(t, payscale.StepID("3"), res.LandedStep)
	assertDecimal(t, "2100", res.LandedSalary)
	assertDecimal(t, "100", res.RaiseAmount)
	assertDecimal(t, "0.05", res.RaisePercent)
	assert.False(t, res.Capped)
}

func TestEvaluate_OnJulyFirst_SimulatesStepIncrease(t *testing.T) {
	// GIVEN: The same scenario with a next step "2" at $2060
	// WHEN: Promotion effective July 1
	// THEN: Evaluated against the post-increase base

	q := payscale.PromotionQuery{
		CurrentGrade:  "10",
		CurrentStep:   "1",
		TargetGrade:   "12",
		EffectiveDate: date(2025, time.July, 1),
	}

	res := payscale.Evaluate(promoTable(), q, payscale.DefaultMinimumRaiseRate())
	require.NotNil(t, res)

	assert.True(t, res.StepIncreaseApplied)
	assertDecimal(t, "2060", res.AdjustedBase)
	assertDecimal(t, "2121.8", res.TargetMinimum)
}

func TestEvaluate_AfterJulyFirst_SimulatesStepIncrease(t *testing.T) {
	q := payscale.PromotionQuery{
		CurrentGrade:  "10",
		CurrentStep:   "1",
		TargetGrade:   "12",
		EffectiveDate: date(2025, time.November, 3),
	}

	res := payscale.Evaluate(promoTable(), q, payscale.DefaultMinimumRaiseRate())
	require.NotNil(t, res)
	assert.True(t, res.StepIncreaseApplied)
}

func TestEvaluate_AtGradeMaximum_NoIncreaseToSimulate(t *testing.T) {
	// GIVEN: Employee already on the top step of their grade
	// WHEN: Promotion effective after July 1
	// THEN: No step increase is simulated

	q := payscale.PromotionQuery{
		CurrentGrade:  "10",
		CurrentStep:   "2",
		TargetGrade:   "12",
		EffectiveDate: date(2025, time.August, 1),
	}

	res := payscale.Evaluate(promoTable(), q, payscale.DefaultMinimumRaiseRate())
	require.NotNil(t, res)

	assert.False(t, res.StepIncreaseApplied)
	assertDecimal(t, "2060", res.AdjustedBase)
}

func TestEvaluate_ExactEqualityQualifies(t *testing.T) {
	// The guarantee is >=, not >: a step paying exactly the target
	// minimum is the landing step.
	pt := table(map[string]map[string]string{
		"10": {"1": "2000"},
		"12": {"1": "2060", "2": "2100"},
	})
	q := payscale.PromotionQuery{
		CurrentGrade:  "10",
		CurrentStep:   "1",
		TargetGrade:   "12",
		EffectiveDate: date(2025, time.January, 2),
	}

	res := payscale.Evaluate(pt, q, payscale.DefaultMinimumRaiseRate())
	require.NotNil(t, res)

	assert.Equal(t, payscale.StepID("1"), res.LandedStep)
	assertDecimal(t, "2060", res.LandedSalary)
	assert.False(t, res.Capped)
}

func TestEvaluate_TargetTopsOutBelowGuarantee_Capped(t *testing.T) {
	// GIVEN: Target grade maximum below the guaranteed minimum
	// WHEN: Evaluating the promotion
	// THEN: Lands capped on the top step, never an error

	pt := table(map[string]map[string]string{
		"10": {"1": "2000"},
		"11": {"S": "1800", "1": "1900"},
	})
	q := payscale.PromotionQuery{
		CurrentGrade:  "10",
		CurrentStep:   "1",
		TargetGrade:   "11",
		EffectiveDate: date(2025, time.February, 1),
	}

	res := payscale.Evaluate(pt, q, payscale.DefaultMinimumRaiseRate())
	require.NotNil(t, res)

	assert.True(t, res.Capped)
	assert.Equal(t, payscale.StepID("1"), res.LandedStep)
	assertDecimal(t, "1900", res.LandedSalary)
	assertDecimal(t, "-100", res.RaiseAmount)
}

func TestEvaluate_MissingGrade_AbsentResult(t *testing.T) {
	q := payscale.PromotionQuery{
		CurrentGrade:  "999",
		CurrentStep:   "S",
		TargetGrade:   "10",
		EffectiveDate: date(2025, time.April, 1),
	}

	assert.Nil(t, payscale.Evaluate(promoTable(), q, payscale.DefaultMinimumRaiseRate()))
}

func TestEvaluate_MissingTargetGrade_AbsentResult(t *testing.T) {
	q := payscale.PromotionQuery{
		CurrentGrade:  "10",
		CurrentStep:   "1",
		TargetGrade:   "999",
		EffectiveDate: date(2025, time.April, 1),
	}

	assert.Nil(t, payscale.Evaluate(promoTable(), q, payscale.DefaultMinimumRaiseRate()))
}

func TestEvaluate_InvalidCurrentStep_AbsentResult(t *testing.T) {
	q := payscale.PromotionQuery{
		CurrentGrade:  "10",
		CurrentStep:   "9",
		TargetGrade:   "12",
		EffectiveDate: date(2025, time.April, 1),
	}

	assert.Nil(t, payscale.Evaluate(promoTable(), q, payscale.DefaultMinimumRaiseRate()))
}

func TestEvaluate_ZeroBase_ZeroRaisePercent(t *testing.T) {
	// Divide-by-zero guard: a zero adjusted base coerces the percent to
	// 0 rather than propagating a non-number.
	pt := table(map[string]map[string]string{
		"01": {"S": "0"},
		"02": {"S": "0"},
	})
	q := payscale.PromotionQuery{
		CurrentGrade:  "01",
		CurrentStep:   "S",
		TargetGrade:   "02",
		EffectiveDate: date(2025, time.January, 15),
	}

	res := payscale.Evaluate(pt, q, payscale.DefaultMinimumRaiseRate())
	require.NotNil(t, res)
	assert.True(t, res.RaisePercent.IsZero())
}

func TestEvaluate_Idempotent(t *testing.T) {
	q := payscale.PromotionQuery{
		CurrentGrade:  "10",
		CurrentStep:   "1",
		TargetGrade:   "12",
		EffectiveDate: date(2025, time.July, 4),
	}

	a := payscale.Evaluate(promoTable(), q, payscale.DefaultMinimumRaiseRate())
	b := payscale.Evaluate(promoTable(), q, payscale.DefaultMinimumRaiseRate())
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.Equal(t, a.LandedStep, b.LandedStep)
	assert.True(t, a.AdjustedBase.Equal(b.AdjustedBase))
	assert.True(t, a.TargetMinimum.Equal(b.TargetMinimum))
	assert.True(t, a.LandedSalary.Equal(b.LandedSalary))
	assert.Equal(t, a.StepIncreaseApplied, b.StepIncreaseApplied)
	assert.Equal(t, a.Capped, b.Capped)
}

// =============================================================================
// PAY TABLE TESTS
// =============================================================================

func TestPayTable_CopiesInput(t *testing.T) {
	// Mutating the source map after construction must not reach the table.
	raw := map[payscale.GradeID]map[payscale.StepID]decimal.Decimal{
		"10": {"S": dec("1000")},
	}
	pt := payscale.NewPayTable(raw)

	raw["10"]["S"] = dec("9999")
	raw["11"] = map[payscale.StepID]decimal.Decimal{"S": dec("1")}

	got, ok := pt.Rate("10", "S")
	require.True(t, ok)
	assertDecimal(t, "1000", got)
	assert.False(t, pt.HasGrade("11"))
}

func TestPayTable_GradesSortNumerically(t *testing.T) {
	pt := table(map[string]map[string]string{
		"9":  {"S": "1"},
		"10": {"S": "1"},
		"2":  {"S": "1"},
	})

	assert.Equal(t, []payscale.GradeID{"2", "9", "10"}, pt.Grades())
}

func TestShiftRates_Defaults(t *testing.T) {
	rates := payscale.DefaultShiftRates()

	assertDecimal(t, "0", rates.Rate(payscale.ShiftNone))
	assertDecimal(t, "0.06", rates.Rate(payscale.ShiftEvening))
	assertDecimal(t, "0.10", rates.Rate(payscale.ShiftNight))
	assertDecimal(t, "0", rates.Rate(payscale.Shift("weekend")))
}
