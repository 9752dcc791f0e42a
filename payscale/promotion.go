/*
promotion.go - Promotion evaluation under the minimum-raise guarantee

PURPOSE:
  Given a current (grade, step), a target grade, and an effective date,
  determines the post-promotion landing step and salary. Two contract
  rules interact here:

  1. Minimum raise guarantee: a promotion must yield at least a fixed
     percentage increase (default 3%) over the employee's adjusted base.
  2. July-1 step increases: anniversary/annual step increases are
     granted on or after July 1, so a promotion effective on or after
     July 1 is evaluated against the base pay AFTER that year's step
     increase.

FAILURE SEMANTICS:
  Missing grade/step data yields a nil result, never an error; the
  surrounding system renders a "fill in required fields" state instead
  of crashing on partial input.
*/
package payscale

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinimumRaiseRate is the contractual minimum promotion raise.
func DefaultMinimumRaiseRate() decimal.Decimal {
	return decimal.RequireFromString("0.03")
}

// PromotionQuery is one promotion evaluation request. Transient,
// constructed per evaluation, never persisted.
type PromotionQuery struct {
	CurrentGrade  GradeID
	CurrentStep   StepID
	TargetGrade   GradeID
	EffectiveDate time.Time
}

// PromotionResult is the derived outcome of a promotion evaluation.
type PromotionResult struct {
	// AdjustedBase is the bi-weekly pay the guarantee is measured
	// against: the current pay, or the next step's pay when the July-1
	// step increase was simulated.
	AdjustedBase decimal.Decimal

	// TargetMinimum is AdjustedBase * (1 + minimum raise rate).
	TargetMinimum decimal.Decimal

	// LandedStep and LandedSalary are the step of the target grade the
	// employee lands on and its bi-weekly pay.
	LandedStep   StepID
	LandedSalary decimal.Decimal

	RaiseAmount  decimal.Decimal
	RaisePercent decimal.Decimal

	// StepIncreaseApplied reports that the annual step increase was
	// simulated before evaluating the guarantee.
	StepIncreaseApplied bool

	// Capped reports that no step of the target grade met the
	// guarantee and the landing fell back to the grade's top step.
	// Callers must render this distinctly, e.g. "(Max)".
	Capped bool
}

// Evaluate determines the post-promotion step and salary. It returns
// nil when either grade is missing from the table or currentStep is not
// a valid step of the current grade.
func Evaluate(t *PayTable, q PromotionQuery, minimumRaiseRate decimal.Decimal) *PromotionResult {
	currentSteps := t.Steps(q.CurrentGrade)
	targetSteps := t.Steps(q.TargetGrade)
	if len(currentSteps) == 0 || len(targetSteps) == 0 {
		return nil
	}

	rawBase, ok := t.Rate(q.CurrentGrade, q.CurrentStep)
	if !ok {
		return nil
	}

	// Step-increase simulation: promotions effective on or after July 1
	// see the employee's annual step increase first. An employee already
	// at the grade maximum has no increase to receive.
	adjustedBase := rawBase
	stepIncreaseApplied := false
	julyFirst := time.Date(q.EffectiveDate.Year(), time.July, 1, 0, 0, 0, 0, q.EffectiveDate.Location())
	if !q.EffectiveDate.Before(julyFirst) {
		idx := indexOfStep(currentSteps, q.CurrentStep)
		if idx >= 0 && idx < len(currentSteps)-1 {
			if next, ok := t.Rate(q.CurrentGrade, currentSteps[idx+1]); ok {
				adjustedBase = next
				stepIncreaseApplied = true
			}
		}
	}

	targetMinimum := adjustedBase.Mul(one.Add(minimumRaiseRate))

	// Landing-step search: first target step meeting the guarantee;
	// exact equality qualifies. When the target grade tops out below
	// the guarantee, land capped on its highest step.
	landedStep := targetSteps[len(targetSteps)-1]
	landedSalary, _ := t.Rate(q.TargetGrade, landedStep)
	capped := true
	for _, s := range targetSteps {
		pay, ok := t.Rate(q.TargetGrade, s)
		if !ok {
			continue
		}
		if pay.GreaterThanOrEqual(targetMinimum) {
			landedStep = s
			landedSalary = pay
			capped = false
			break
		}
	}

	raiseAmount := landedSalary.Sub(adjustedBase)
	raisePercent := decimal.Zero
	if !adjustedBase.IsZero() {
		raisePercent = raiseAmount.Div(adjustedBase)
	}

	return &PromotionResult{
		AdjustedBase:        adjustedBase,
		TargetMinimum:       targetMinimum,
		LandedStep:          landedStep,
		LandedSalary:        landedSalary,
		RaiseAmount:         raiseAmount,
		RaisePercent:        raisePercent,
		StepIncreaseApplied: stepIncreaseApplied,
		Capped:              capped,
	}
}
