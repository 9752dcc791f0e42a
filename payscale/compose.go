/*
compose.go - Rate composition: differential, adjustment, annual projection

PURPOSE:
  Applies a shift differential and contract adjustment to a raw
  bi-weekly base pay figure and projects bi-weekly, annual, and
  annual-with-holiday totals.

ORDER OF OPERATIONS (fixed: both multipliers layer on the raw table
value, not on each other's annualized output):
  1. adjustedBase       = rawBase * contractAdjustment
  2. biWeekly           = adjustedBase * (1 + differentialRate)
  3. annualBase         = biWeekly * payPeriodsPerYear
  4. dailyRate          = biWeekly / 10        (10 working days per period)
  5. holidayPay         = dailyRate * holidayRateMultiplier * holidaysPerYear
  6. annualWithHolidays = annualBase + holidayPay (when included)

HOLIDAY CONVENTION:
  Holiday pay uses the differential-adjusted daily rate: an employee on
  a permanent off-shift earns that shift's rate for holidays too. This
  is a documented business rule, not an implementation choice. Do not
  switch it to the base rate without domain confirmation.
*/
package payscale

import "github.com/shopspring/decimal"

// Working days in one bi-weekly pay period.
var daysPerPeriod = decimal.NewFromInt(10)

var one = decimal.NewFromInt(1)

// ComposeOptions are the operator-tunable projection constants. They
// are supplied per call and never persisted.
type ComposeOptions struct {
	PayPeriodsPerYear     decimal.Decimal
	HolidaysPerYear       decimal.Decimal
	HolidayRateMultiplier decimal.Decimal
	IncludeHolidays       bool
}

// DefaultComposeOptions returns the contract defaults: 26.1 pay periods,
// 13 paid holidays at time-and-a-half, holidays included.
func DefaultComposeOptions() ComposeOptions {
	return ComposeOptions{
		PayPeriodsPerYear:     decimal.RequireFromString("26.1"),
		HolidaysPerYear:       decimal.NewFromInt(13),
		HolidayRateMultiplier: decimal.RequireFromString("1.5"),
		IncludeHolidays:       true,
	}
}

// Composition is the projected salary breakdown for one selection.
type Composition struct {
	BiWeekly           decimal.Decimal
	AnnualBase         decimal.Decimal
	AnnualWithHolidays decimal.Decimal
}

// Compose derives the salary breakdown from a raw bi-weekly base pay.
// Pure function: identical inputs yield identical outputs, no side
// effects. A zero rawBase (no data) yields all-zero outputs, never an
// error. Negative inputs are not validated; callers are expected to
// supply values sourced from the PayTable.
func Compose(rawBase, differentialRate, contractAdjustment decimal.Decimal, opts ComposeOptions) Composition {
	adjustedBase := rawBase.Mul(contractAdjustment)
	biWeekly := adjustedBase.Mul(one.Add(differentialRate))
	annualBase := biWeekly.Mul(opts.PayPeriodsPerYear)

	annualWithHolidays := annualBase
	if opts.IncludeHolidays {
		dailyRate := biWeekly.Div(daysPerPeriod)
		holidayPay := dailyRate.Mul(opts.HolidayRateMultiplier).Mul(opts.HolidaysPerYear)
		annualWithHolidays = annualBase.Add(holidayPay)
	}

	return Composition{
		BiWeekly:           biWeekly,
		AnnualBase:         annualBase,
		AnnualWithHolidays: annualWithHolidays,
	}
}
