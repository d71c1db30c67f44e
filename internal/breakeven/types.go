package breakeven

import (
	"time"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines which record parameter the solver moves
type OptimizationTarget string

const (
	OptimizeEndDate     OptimizationTarget = "end_date"
	OptimizeDailySalary OptimizationTarget = "daily_salary"
)

// Constraints bound the search and name the budget to meet
type Constraints struct {
	// Termination date range; defaults to the start date and five years
	// after the current end date
	MinEndDate *time.Time `json:"min_end_date,omitempty"`
	MaxEndDate *time.Time `json:"max_end_date,omitempty"`

	// Daily salary range; defaults to 0 and DefaultMaxDailySalary
	MinDailySalary *decimal.Decimal `json:"min_daily_salary,omitempty"`
	MaxDailySalary *decimal.Decimal `json:"max_daily_salary,omitempty"`

	// Budget the chosen scenario total must meet
	Budget decimal.Decimal `json:"budget"`

	// Scenario whose total is compared with the budget: 1, 2 or 3
	Scenario int `json:"scenario"`
}

// DefaultMaxDailySalary caps the salary search when no maximum is given
var DefaultMaxDailySalary = decimal.NewFromInt(100000)

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	BaseRecord    domain.EmployeeRecord
	Target        OptimizationTarget
	Constraints   Constraints
	MaxIterations int             // Maximum solver iterations
	Tolerance     decimal.Decimal // Convergence tolerance for the salary search
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"-"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	// Parameter found
	OptimalEndDate     string           `json:"optimal_end_date,omitempty"`
	OptimalDailySalary *decimal.Decimal `json:"optimal_daily_salary,omitempty"`

	// Results at the parameter found
	Record        domain.EmployeeRecord    `json:"record"`
	Result        domain.CalculationResult `json:"result"`
	ScenarioTotal decimal.Decimal          `json:"scenario_total"`
	Difference    decimal.Decimal          `json:"difference"` // total minus budget
}

// SolverOptions configures the solver
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance
	MaxIterations int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1), // one peso
		MaxIterations: 64,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.Scenario < 1 || c.Scenario > 3 {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "scenario must be 1, 2 or 3",
		}
	}

	if !c.Budget.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "budget must be positive",
		}
	}

	if c.MinEndDate != nil && c.MaxEndDate != nil && c.MinEndDate.After(*c.MaxEndDate) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_end_date cannot be after max_end_date",
		}
	}

	if c.MinDailySalary != nil && c.MinDailySalary.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_daily_salary cannot be negative",
		}
	}
	if c.MinDailySalary != nil && c.MaxDailySalary != nil && c.MinDailySalary.GreaterThan(*c.MaxDailySalary) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_daily_salary cannot be greater than max_daily_salary",
		}
	}

	return nil
}

// ScenarioTotal picks scenario n's total out of a result
func ScenarioTotal(result domain.CalculationResult, n int) decimal.Decimal {
	switch n {
	case 1:
		return result.Scenario1Total
	case 2:
		return result.Scenario2Total
	default:
		return result.Scenario3Total
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
