/*
dto.go - Request/response data structures for the HTTP API

PURPOSE:
  Everything that crosses the JSON boundary lives here, plus the
  conversion helpers from engine types. Currency figures leave as
  strings so the presentation layer owns formatting and no precision is
  lost to float JSON numbers.
*/
package api

import (
	"github.com/seagullcanfly/civilbuddy/payscale"
	"github.com/seagullcanfly/civilbuddy/titles"
)

// =============================================================================
// REQUESTS
// =============================================================================

// CalculateRequest selects a (grade, step, shift) and optional
// overrides for the operator-tunable constants. Omitted overrides use
// the contract defaults.
type CalculateRequest struct {
	Grade string `json:"grade"`
	Step  string `json:"step"`
	Shift string `json:"shift,omitempty"`

	IncludeHolidays *bool `json:"include_holidays,omitempty"`

	// Overrides, decimal strings. Empty means default. DifferentialRate
	// takes precedence over the named shift's default rate.
	DifferentialRate      string `json:"differential_rate,omitempty"`
	ContractAdjustment    string `json:"contract_adjustment,omitempty"`
	PayPeriodsPerYear     string `json:"pay_periods_per_year,omitempty"`
	HolidaysPerYear       string `json:"holidays_per_year,omitempty"`
	HolidayRateMultiplier string `json:"holiday_rate_multiplier,omitempty"`
}

// PromotionRequest evaluates a promotion from (current_grade,
// current_step) into target_grade effective on a date.
type PromotionRequest struct {
	CurrentGrade  string `json:"current_grade"`
	CurrentStep   string `json:"current_step"`
	TargetGrade   string `json:"target_grade"`
	EffectiveDate string `json:"effective_date"` // YYYY-MM-DD

	// MinimumRaiseRate override, decimal string. Empty means 3%.
	MinimumRaiseRate string `json:"minimum_raise_rate,omitempty"`
}

// =============================================================================
// RESPONSES
// =============================================================================

// StepDTO is one step of a grade with its bi-weekly base pay.
type StepDTO struct {
	Step     string `json:"step"`
	BiWeekly string `json:"biweekly"`
}

// CompositionDTO is the projected salary breakdown.
type CompositionDTO struct {
	BiWeekly           string `json:"biweekly"`
	AnnualBase         string `json:"annual_base"`
	AnnualWithHolidays string `json:"annual_with_holidays"`
}

// PromotionResultDTO mirrors payscale.PromotionResult. A null result in
// the envelope means "fill in required fields", not an error.
type PromotionResultDTO struct {
	AdjustedBase        string `json:"adjusted_base"`
	TargetMinimum       string `json:"target_minimum"`
	LandedStep          string `json:"landed_step"`
	LandedSalary        string `json:"landed_salary"`
	RaiseAmount         string `json:"raise_amount"`
	RaisePercent        string `json:"raise_percent"`
	StepIncreaseApplied bool   `json:"step_increase_applied"`
	Capped              bool   `json:"capped"`
}

// TitleDTO is one title record.
type TitleDTO struct {
	Title          string `json:"title"`
	Grade          string `json:"grade"`
	SpecCode       int    `json:"spec_code,omitempty"`
	Qualifications string `json:"qualifications,omitempty"`
}

// RelativesDTO lists one direction of the promotional graph for a title.
type RelativesDTO struct {
	Title  string   `json:"title"`
	Titles []string `json:"titles"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toCompositionDTO(c payscale.Composition) CompositionDTO {
	return CompositionDTO{
		BiWeekly:           c.BiWeekly.String(),
		AnnualBase:         c.AnnualBase.String(),
		AnnualWithHolidays: c.AnnualWithHolidays.String(),
	}
}

func toPromotionResultDTO(r *payscale.PromotionResult) *PromotionResultDTO {
	if r == nil {
		return nil
	}
	return &PromotionResultDTO{
		AdjustedBase:        r.AdjustedBase.String(),
		TargetMinimum:       r.TargetMinimum.String(),
		LandedStep:          string(r.LandedStep),
		LandedSalary:        r.LandedSalary.String(),
		RaiseAmount:         r.RaiseAmount.String(),
		RaisePercent:        r.RaisePercent.String(),
		StepIncreaseApplied: r.StepIncreaseApplied,
		Capped:              r.Capped,
	}
}

func toTitleDTO(r titles.Record) TitleDTO {
	return TitleDTO{
		Title:          r.Title,
		Grade:          string(r.Grade),
		SpecCode:       r.SpecCode,
		Qualifications: r.Qualifications,
	}
}

func toTitleDTOs(records []titles.Record) []TitleDTO {
	dtos := make([]TitleDTO, len(records))
	for i, r := range records {
		dtos[i] = toTitleDTO(r)
	}
	return dtos
}
