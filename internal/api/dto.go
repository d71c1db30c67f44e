package api

import (
	"github.com/rgehrsitz/finiquito/internal/calculation"
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/rgehrsitz/finiquito/internal/output"
	"github.com/shopspring/decimal"
)

// =============================================================================
// REQUESTS
// =============================================================================

// EstimateRequest asks for the gross daily salary behind a monthly amount.
type EstimateRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Mode   string          `json:"mode"` // cost, gross or net
}

// =============================================================================
// RESPONSES
// =============================================================================

// CalculationResponse is a calculated record with its negotiation figures.
type CalculationResponse struct {
	Record      domain.EmployeeRecord    `json:"record"`
	Result      domain.CalculationResult `json:"result"`
	Negotiation output.Negotiation       `json:"negotiation"`
	Display     DisplayDTO               `json:"display"`
}

// DisplayDTO carries the headline figures already formatted for display.
type DisplayDTO struct {
	Antiquity                   string `json:"antiquity"`
	SDI                         string `json:"sdi"`
	Scenario1Total              string `json:"scenario1_total"`
	Scenario2TotalWithout20Days string `json:"scenario2_total_without_20_days"`
	Scenario2Total              string `json:"scenario2_total"`
	Scenario3Total              string `json:"scenario3_total"`
}

// RecordListResponse lists the roster in order.
type RecordListResponse struct {
	ActiveID string                  `json:"active_id"`
	Records  []domain.EmployeeRecord `json:"records"`
}

// VacationTableResponse describes the vacation step function in use.
type VacationTableResponse struct {
	DataYear int                    `json:"data_year"`
	Brackets []domain.VacationBracket `json:"brackets"`
}

// VacationDaysResponse is the entitlement for one year of service.
type VacationDaysResponse struct {
	YearOfService int `json:"year_of_service"`
	Days          int `json:"days"`
}

// EstimateResponse wraps a salary estimate.
type EstimateResponse struct {
	calculation.SalaryEstimate
	GrossDailyDisplay string `json:"gross_daily_display"`
}

// ErrorResponse is the error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toCalculationResponse(record domain.EmployeeRecord, result domain.CalculationResult) CalculationResponse {
	return CalculationResponse{
		Record:      record,
		Result:      result,
		Negotiation: output.NewNegotiation(result),
		Display: DisplayDTO{
			Antiquity:                   output.FormatYears(result),
			SDI:                         output.FormatCurrency(result.SDI),
			Scenario1Total:              output.FormatCurrency(result.Scenario1Total),
			Scenario2TotalWithout20Days: output.FormatCurrency(result.Scenario2TotalWithout20Days),
			Scenario2Total:              output.FormatCurrency(result.Scenario2Total),
			Scenario3Total:              output.FormatCurrency(result.Scenario3Total),
		},
	}
}
