package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/finiquito/internal/calculation"
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/rgehrsitz/finiquito/internal/transform"
	"github.com/shopspring/decimal"
)

// Solver searches for the record parameter at which a scenario total meets
// a budget
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request. A budget that cannot
// be met inside the constraints is not an error: the result reports
// Success false with the closest bound.
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	switch req.Target {
	case OptimizeEndDate:
		return s.optimizeEndDate(ctx, req)
	case OptimizeDailySalary:
		return s.optimizeDailySalary(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

type evaluation struct {
	record domain.EmployeeRecord
	result domain.CalculationResult
	total  decimal.Decimal
}

func (s *Solver) evaluate(record domain.EmployeeRecord, scenario int) (evaluation, error) {
	result, err := s.CalcEngine.CalculateChecked(record)
	if err != nil {
		return evaluation{}, err
	}
	return evaluation{record: record, result: result, total: ScenarioTotal(result, scenario)}, nil
}

// optimizeEndDate finds the latest end date whose total stays within the
// budget while the next day exceeds it
func (s *Solver) optimizeEndDate(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	c := req.Constraints
	base := req.BaseRecord

	start, err := domain.ParseDate(base.StartDate)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_end_date", Message: "invalid start date", Cause: err}
	}
	end, err := domain.ParseDate(base.EndDate)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_end_date", Message: "invalid end date", Cause: err}
	}

	lower := start
	if c.MinEndDate != nil {
		if c.MinEndDate.Before(start) {
			return nil, &BreakEvenError{Operation: "optimize_end_date", Message: "min_end_date cannot be before the start date"}
		}
		lower = *c.MinEndDate
	}
	upper := end.AddDate(5, 0, 0)
	if c.MaxEndDate != nil {
		upper = *c.MaxEndDate
	}
	if upper.Before(lower) {
		return nil, &BreakEvenError{Operation: "optimize_end_date", Message: "max_end_date cannot be before the search start"}
	}

	evalAt := func(offset int) (evaluation, error) {
		date := lower.AddDate(0, 0, offset).Format(domain.DateLayout)
		record, err := transform.ApplyTransforms(base, []transform.RecordTransform{&transform.SetEndDate{Date: date}})
		if err != nil {
			return evaluation{}, err
		}
		return s.evaluate(record, c.Scenario)
	}

	loDays, hiDays := 0, calculation.DaysBetween(lower, upper)
	lo, err := evalAt(loDays)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_end_date", Message: "failed to calculate record", Cause: err}
	}
	if lo.total.GreaterThan(c.Budget) {
		return s.newResult(req, lo, false, 1, "budget is below the total at the earliest end date"), nil
	}
	hi, err := evalAt(hiDays)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_end_date", Message: "failed to calculate record", Cause: err}
	}
	if hi.total.LessThanOrEqual(c.Budget) {
		return s.newResult(req, hi, false, 2, "budget is not reached by the latest end date"), nil
	}

	iterations := 2
	for hiDays-loDays > 1 && iterations < req.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		iterations++

		mid := loDays + (hiDays-loDays)/2
		eval, err := evalAt(mid)
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_end_date", Message: "failed to calculate record", Cause: err}
		}
		if eval.total.LessThanOrEqual(c.Budget) {
			loDays, lo = mid, eval
		} else {
			hiDays = mid
		}
	}

	if hiDays-loDays > 1 {
		return s.newResult(req, lo, false, iterations, "maximum iterations reached"), nil
	}
	info := fmt.Sprintf("latest end date whose scenario %d total stays within the budget", c.Scenario)
	return s.newResult(req, lo, true, iterations, info), nil
}

// optimizeDailySalary finds the daily salary whose total matches the budget
// within the tolerance. The search runs in daily-salary mode with a derived SDI.
func (s *Solver) optimizeDailySalary(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	c := req.Constraints

	base := req.BaseRecord
	base.MonthlyPayrollCost = decimal.Zero
	base.ManualSDI = decimal.Zero

	lower := decimal.Zero
	if c.MinDailySalary != nil {
		lower = *c.MinDailySalary
	}
	upper := DefaultMaxDailySalary
	if c.MaxDailySalary != nil {
		upper = *c.MaxDailySalary
	}

	evalAt := func(salary decimal.Decimal) (evaluation, error) {
		record := base
		if err := record.SetDailySalary(salary); err != nil {
			return evaluation{}, err
		}
		return s.evaluate(record, c.Scenario)
	}

	lo, err := evalAt(lower)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_daily_salary", Message: "failed to calculate record", Cause: err}
	}
	if lo.total.Sub(c.Budget).GreaterThan(req.Tolerance) {
		return s.newResult(req, lo, false, 1, "budget is below the total at the minimum salary"), nil
	}
	hi, err := evalAt(upper)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_daily_salary", Message: "failed to calculate record", Cause: err}
	}
	if c.Budget.Sub(hi.total).GreaterThan(req.Tolerance) {
		return s.newResult(req, hi, false, 2, "budget is not reached at the maximum salary"), nil
	}

	two := decimal.NewFromInt(2)
	best := lo
	for iterations := 3; iterations <= req.MaxIterations; iterations++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		mid := lower.Add(upper).Div(two)
		eval, err := evalAt(mid)
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_daily_salary", Message: "failed to calculate record", Cause: err}
		}
		best = eval

		diff := eval.total.Sub(c.Budget)
		if diff.Abs().LessThanOrEqual(req.Tolerance) {
			info := fmt.Sprintf("converged to the budget within %s", req.Tolerance.StringFixed(2))
			return s.newResult(req, eval, true, iterations, info), nil
		}
		if diff.IsNegative() {
			lower = mid
		} else {
			upper = mid
		}
	}

	return s.newResult(req, best, false, req.MaxIterations, "maximum iterations reached"), nil
}

func (s *Solver) newResult(req OptimizationRequest, eval evaluation, success bool, iterations int, info string) *OptimizationResult {
	result := &OptimizationResult{
		Request:         req,
		Success:         success,
		Iterations:      iterations,
		ConvergenceInfo: info,
		Record:          eval.record,
		Result:          eval.result,
		ScenarioTotal:   eval.total,
		Difference:      eval.total.Sub(req.Constraints.Budget),
	}
	switch req.Target {
	case OptimizeEndDate:
		result.OptimalEndDate = eval.record.EndDate
	case OptimizeDailySalary:
		salary := eval.record.DailySalary
		result.OptimalDailySalary = &salary
	}
	return result
}
