/*
handlers.go - HTTP API handlers for the severance calculator

ENDPOINTS:
  Calculation:
    POST   /api/calculate              Calculate an ad-hoc record (not stored)
    GET    /api/vacation-table         Vacation brackets (?year=N for one year)
    POST   /api/estimate               Gross daily salary from a monthly amount

  Roster:
    GET    /api/records                List records and the active id
    POST   /api/records                Add a record (empty body adds a default one)
    GET    /api/records/{id}           Get a record
    PUT    /api/records/{id}           Replace a record's fields
    DELETE /api/records/{id}           Remove a record
    GET    /api/records/{id}/result    Calculate a stored record
    POST   /api/records/{id}/select    Make a record active
    POST   /api/records/{id}/clear     Zero a record's amounts
    GET    /api/summary                Totals across the roster
    GET    /api/report                 Formatted report (?format=html|csv|json|...)

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed body or query
  - 404: Unknown record
  - 422: Well-formed input the calculator rejects (dates, negative amounts)
  - 500: Internal errors
*/
package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/finiquito/internal/calculation"
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/rgehrsitz/finiquito/internal/output"
	"github.com/rgehrsitz/finiquito/internal/roster"
)

const maxBodyBytes = 1 << 20

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Roster *roster.Roster
	Engine *calculation.CalculationEngine
	Logger calculation.Logger

	now func() time.Time
}

// NewHandler creates a new handler serving the given roster.
func NewHandler(r *roster.Roster, engine *calculation.CalculationEngine, logger calculation.Logger) *Handler {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Handler{Roster: r, Engine: engine, Logger: logger, now: time.Now}
}

// =============================================================================
// CALCULATION ENDPOINTS
// =============================================================================

// Calculate calculates a record sent in the body without storing it.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	// Fields absent from the body keep the statutory defaults
	req := domain.NewEmployeeRecord("", "Colaborador", h.Engine.Rules, h.now())
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	record := domain.NewEmployeeRecord(req.ID, req.Name, h.Engine.Rules, h.now())
	if err := applyRecord(&record, req, h.Engine.Rules); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid record", err)
		return
	}

	result, err := h.Engine.CalculateChecked(record)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Cannot calculate record", err)
		return
	}
	writeJSON(w, http.StatusOK, toCalculationResponse(record, result))
}

// VacationTable returns the vacation brackets, or one year's days.
func (h *Handler) VacationTable(w http.ResponseWriter, r *http.Request) {
	table := h.Engine.Rules.VacationTable

	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1 {
			writeError(w, http.StatusBadRequest, "year must be a positive integer", err)
			return
		}
		writeJSON(w, http.StatusOK, VacationDaysResponse{YearOfService: year, Days: table.DaysFor(year)})
		return
	}

	writeJSON(w, http.StatusOK, VacationTableResponse{
		DataYear: h.Engine.Rules.Metadata.DataYear,
		Brackets: table,
	})
}

// Estimate converts a monthly cost, gross or net amount into a gross daily salary.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	mode, err := calculation.ParseSalaryInputMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid mode", err)
		return
	}
	estimate, err := calculation.EstimateDailySalary(req.Amount, mode, h.Engine.Rules.SalaryFactors)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Cannot estimate salary", err)
		return
	}
	writeJSON(w, http.StatusOK, EstimateResponse{
		SalaryEstimate:    estimate,
		GrossDailyDisplay: output.FormatCurrency(estimate.GrossDaily),
	})
}

// =============================================================================
// ROSTER ENDPOINTS
// =============================================================================

// ListRecords returns all records in roster order.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RecordListResponse{
		ActiveID: h.Roster.ActiveID(),
		Records:  h.Roster.Records(),
	})
}

// CreateRecord adds a record. An empty body adds a default record and
// selects it; otherwise the body's fields are applied to the new record.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	req := domain.NewEmployeeRecord("", "", h.Engine.Rules, h.now())
	err := decodeBody(r, &req)
	if errors.Is(err, errEmptyBody) {
		record, err := h.Roster.Add(r.Context())
		if err != nil {
			h.Logger.Errorf("add record: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to add record", err)
			return
		}
		writeJSON(w, http.StatusCreated, record)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	record := domain.NewEmployeeRecord(req.ID, req.Name, h.Engine.Rules, h.now())
	if err := applyRecord(&record, req, h.Engine.Rules); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid record", err)
		return
	}
	record, err = h.Roster.Insert(r.Context(), record)
	if err != nil {
		writeError(w, http.StatusConflict, "Failed to add record", err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// GetRecord returns a single record.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.Roster.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeRosterError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// UpdateRecord replaces a record's fields with the body's.
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	// Fields absent from the body keep their stored values
	req, err := h.Roster.Get(id)
	if err != nil {
		writeRosterError(w, err)
		return
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rules := h.Engine.Rules
	record, err := h.Roster.Update(r.Context(), id, func(record *domain.EmployeeRecord) error {
		return applyRecord(record, req, rules)
	})
	if err != nil {
		writeRosterError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// DeleteRecord removes a record.
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.Roster.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeRosterError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetResult calculates a stored record.
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	record, err := h.Roster.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeRosterError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCalculationResponse(record, h.Engine.Calculate(record)))
}

// SelectRecord makes a record active.
func (h *Handler) SelectRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Roster.Select(r.Context(), id); err != nil {
		writeRosterError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"active_id": id})
}

// ClearRecord selects a record and zeroes its amounts.
func (h *Handler) ClearRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.Roster.Select(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeRosterError(w, err)
		return
	}
	record, err := h.Roster.ClearActive(r.Context())
	if err != nil {
		writeRosterError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Summary returns every record's calculation plus the totals.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Roster.Summary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to summarize roster", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Report renders the roster with one of the output formatters.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = "html"
	}
	formatter := output.GetFormatterByName(name)
	if formatter == nil {
		writeError(w, http.StatusBadRequest, "Unknown format", map[string]any{"available": output.AvailableFormatterNames()})
		return
	}

	summary, err := h.Roster.Summary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to summarize roster", err)
		return
	}
	data, err := formatter.Format(output.NewReport(summary, h.Engine.Rules.Metadata, h.now()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to format report", err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[formatter.Name()])
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

var contentTypes = map[string]string{
	"console":      "text/plain; charset=utf-8",
	"console-lite": "text/plain; charset=utf-8",
	"csv":          "text/csv; charset=utf-8",
	"detailed-csv": "text/csv; charset=utf-8",
	"json":         "application/json",
	"yaml":         "application/yaml",
	"html":         "text/html; charset=utf-8",
}

// =============================================================================
// HELPERS
// =============================================================================

// applyRecord copies src onto dst through the record setters, so the
// payroll-cost rules hold: a positive cost derives the daily salary and
// rejects a manual SDI.
func applyRecord(dst *domain.EmployeeRecord, src domain.EmployeeRecord, rules domain.LFTRules) error {
	if err := dst.SetName(src.Name); err != nil {
		return err
	}
	if err := dst.SetStartDate(src.StartDate); err != nil {
		return err
	}
	if err := dst.SetEndDate(src.EndDate); err != nil {
		return err
	}
	if err := dst.SetAguinaldoDays(src.AguinaldoDays, rules); err != nil {
		return err
	}
	if err := dst.SetVacationPremiumPkg(src.VacationPremiumPkg); err != nil {
		return err
	}
	if err := dst.SetMinimumWage(src.MinimumWage); err != nil {
		return err
	}
	if err := dst.SetVacationDaysTaken(src.VacationDaysTaken); err != nil {
		return err
	}
	if err := dst.SetPendingBonuses(src.PendingBonuses); err != nil {
		return err
	}
	dst.SetNotes(src.Notes)

	if err := dst.SetMonthlyPayrollCost(src.MonthlyPayrollCost, rules.SalaryFactors); err != nil {
		return err
	}
	if !dst.PayrollCostMode() {
		if err := dst.SetDailySalary(src.DailySalary); err != nil {
			return err
		}
	}
	return dst.SetManualSDI(src.ManualSDI)
}

var errEmptyBody = errors.New("empty request body")

func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errEmptyBody
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, details any) {
	resp := ErrorResponse{Error: message}
	switch d := details.(type) {
	case nil:
	case error:
		if d != nil {
			resp.Details = d.Error()
		}
	default:
		resp.Details = d
	}
	writeJSON(w, status, resp)
}

func writeRosterError(w http.ResponseWriter, err error) {
	if errors.Is(err, roster.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Record not found", err)
		return
	}
	writeError(w, http.StatusUnprocessableEntity, "Invalid record", err)
}
