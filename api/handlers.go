/*
handlers.go - HTTP API handlers for the compensation engine

PURPOSE:
  Exposes the engine via REST. Handles HTTP request/response, JSON
  serialization, and delegates all actual computation to payscale and
  titles. Every derived figure is recomputed from the request inputs on
  each call; there is no cached intermediate state to invalidate.

ENDPOINTS:
  Pay tables:
    GET  /api/grades                 List grade identifiers
    GET  /api/grades/{grade}/steps   Ordered steps with base pay

  Calculation:
    POST /api/calculate              Salary composition for a selection
    POST /api/promotion              Promotion evaluation

  Titles:
    GET  /api/titles                 List/search titles (?q=, ?qual=)
    GET  /api/titles/{code}          Title by spec code
    GET  /api/titles/{code}/parents  Titles it is promotional from
    GET  /api/titles/{code}/children Titles promotional from it

ERROR HANDLING:
  Missing reference data is NOT an error: unknown grades come back as
  empty step lists and null/zero results with HTTP 200, so the frontend
  renders an incomplete-selection state. 400 is reserved for requests
  the server cannot interpret (bad JSON, bad dates, bad decimals);
  404 for unknown spec codes.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/seagullcanfly/civilbuddy/payscale"
	"github.com/seagullcanfly/civilbuddy/refdata"
	"github.com/seagullcanfly/civilbuddy/titles"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers. The catalog and
// graph are indexed once at construction from the store's tables.
type Handler struct {
	store   refdata.Store
	catalog *titles.Catalog
	graph   *titles.Graph
	shifts  payscale.ShiftRates
}

// NewHandler creates a handler over a loaded reference store.
func NewHandler(store refdata.Store) *Handler {
	return &Handler{
		store:   store,
		catalog: titles.NewCatalog(store.Titles()),
		graph:   titles.NewGraph(store.Relationships()),
		shifts:  payscale.DefaultShiftRates(),
	}
}

// =============================================================================
// PAY TABLE HANDLERS
// =============================================================================

// ListGrades returns all grade identifiers in table order.
func (h *Handler) ListGrades(w http.ResponseWriter, r *http.Request) {
	grades := h.store.PayTable().Grades()
	ids := make([]string, len(grades))
	for i, g := range grades {
		ids[i] = string(g)
	}
	writeJSON(w, http.StatusOK, map[string]any{"grades": ids})
}

// ListSteps returns the ordered steps of a grade with their base pay.
// An unknown grade yields an empty list, not an error; the frontend
// disables dependent controls.
func (h *Handler) ListSteps(w http.ResponseWriter, r *http.Request) {
	grade := payscale.GradeID(chi.URLParam(r, "grade"))
	pt := h.store.PayTable()

	steps := pt.Steps(grade)
	dtos := make([]StepDTO, 0, len(steps))
	for _, s := range steps {
		pay, _ := pt.Rate(grade, s)
		dtos = append(dtos, StepDTO{Step: string(s), BiWeekly: pay.String()})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"grade": string(grade),
		"steps": dtos,
	})
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// Calculate composes the salary breakdown for a (grade, step, shift)
// selection. An incomplete or unknown selection yields zero figures
// with HTTP 200.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	opts := payscale.DefaultComposeOptions()
	if req.IncludeHolidays != nil {
		opts.IncludeHolidays = *req.IncludeHolidays
	}
	if err := overrideDecimal(&opts.PayPeriodsPerYear, req.PayPeriodsPerYear); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pay_periods_per_year", err)
		return
	}
	if err := overrideDecimal(&opts.HolidaysPerYear, req.HolidaysPerYear); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid holidays_per_year", err)
		return
	}
	if err := overrideDecimal(&opts.HolidayRateMultiplier, req.HolidayRateMultiplier); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid holiday_rate_multiplier", err)
		return
	}

	adjustment := decimal.NewFromInt(1)
	if err := overrideDecimal(&adjustment, req.ContractAdjustment); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid contract_adjustment", err)
		return
	}

	differential := h.shifts.Rate(payscale.Shift(req.Shift))
	if err := overrideDecimal(&differential, req.DifferentialRate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid differential_rate", err)
		return
	}

	rawBase, found := h.store.PayTable().Rate(payscale.GradeID(req.Grade), payscale.StepID(req.Step))
	composition := payscale.Compose(rawBase, differential, adjustment, opts)

	writeJSON(w, http.StatusOK, map[string]any{
		"grade":       req.Grade,
		"step":        req.Step,
		"shift":       req.Shift,
		"found":       found,
		"raw_base":    rawBase.String(),
		"composition": toCompositionDTO(composition),
	})
}

// EvaluatePromotion evaluates the minimum-raise guarantee. Missing
// grade/step data yields {"result": null} with HTTP 200 so the
// frontend renders a fill-in-required-fields state.
func (h *Handler) EvaluatePromotion(w http.ResponseWriter, r *http.Request) {
	var req PromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	effective, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid effective_date format (use YYYY-MM-DD)", err)
		return
	}

	minRaise := payscale.DefaultMinimumRaiseRate()
	if err := overrideDecimal(&minRaise, req.MinimumRaiseRate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid minimum_raise_rate", err)
		return
	}

	result := payscale.Evaluate(h.store.PayTable(), payscale.PromotionQuery{
		CurrentGrade:  payscale.GradeID(req.CurrentGrade),
		CurrentStep:   payscale.StepID(req.CurrentStep),
		TargetGrade:   payscale.GradeID(req.TargetGrade),
		EffectiveDate: effective,
	}, minRaise)

	writeJSON(w, http.StatusOK, map[string]any{
		"result": toPromotionResultDTO(result),
	})
}

// =============================================================================
// TITLE HANDLERS
// =============================================================================

// ListTitles lists all titles, optionally filtered by title substring
// (?q=) and/or qualification text substring (?qual=).
func (h *Handler) ListTitles(w http.ResponseWriter, r *http.Request) {
	records := h.catalog.Search(r.URL.Query().Get("q"))

	if qual := r.URL.Query().Get("qual"); qual != "" {
		filtered := records[:0:0]
		matches := make(map[string]struct{})
		for _, m := range h.catalog.FilterQualifications(qual) {
			matches[m.Title] = struct{}{}
		}
		for _, rec := range records {
			if _, ok := matches[rec.Title]; ok {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	writeJSON(w, http.StatusOK, map[string]any{"titles": toTitleDTOs(records)})
}

// GetTitle returns one title by spec code.
func (h *Handler) GetTitle(w http.ResponseWriter, r *http.Request) {
	record, ok := h.titleByCode(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toTitleDTO(record))
}

// GetParents returns the titles the given title is promotional from.
func (h *Handler) GetParents(w http.ResponseWriter, r *http.Request) {
	record, ok := h.titleByCode(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, RelativesDTO{
		Title:  record.Title,
		Titles: h.graph.Parents(record.Title),
	})
}

// GetChildren returns the titles reachable by promotion from this one.
func (h *Handler) GetChildren(w http.ResponseWriter, r *http.Request) {
	record, ok := h.titleByCode(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, RelativesDTO{
		Title:  record.Title,
		Titles: h.graph.Children(record.Title),
	})
}

func (h *Handler) titleByCode(w http.ResponseWriter, r *http.Request) (titles.Record, bool) {
	raw := chi.URLParam(r, "code")
	code, err := strconv.Atoi(raw)
	if err != nil || code <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid spec code %q", raw), err)
		return titles.Record{}, false
	}
	record, ok := h.catalog.GetByCode(code)
	if !ok {
		writeError(w, http.StatusNotFound, "Title not found", nil)
		return titles.Record{}, false
	}
	return record, true
}

// =============================================================================
// HELPERS
// =============================================================================

func overrideDecimal(dst *decimal.Decimal, raw string) error {
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
