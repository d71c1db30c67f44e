package calculation

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.NoError(t, engine.Rules.Validate(), "Should carry valid default rules")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculate_EndToEnd(t *testing.T) {
	engine := NewCalculationEngine()

	result := engine.Calculate(referenceRecord())

	assert.Equal(t, 1462, result.AntiquityDaysTotal)
	assert.Equal(t, "4.0054794520547945", result.AntiquityYears.String())
	assert.Equal(t, 4, result.CompletedYears)
	assert.Equal(t, 20, result.VacationDaysEntitledCurrentYear)
	assert.Equal(t, 1, result.DaysWorkedSinceAnniversary)
	assert.Equal(t, 1, result.AguinaldoDaysWorked)
	assert.False(t, result.IsSDIManual)

	assertMoney(t, "500.00", result.EffectiveDailySalary)
	assertMoney(t, "527.40", result.SDI)
	assertMoney(t, "20.55", result.ProportionalAguinaldo)
	assertMoney(t, "60.05", result.TotalVacationDaysEarnedHistory)
	assertMoney(t, "60.05", result.NetVacationDaysToPay)
	assertMoney(t, "30027.40", result.ProportionalVacation)
	assertMoney(t, "7506.85", result.VacationPremium)
	assertMoney(t, "23930.02", result.SeniorityPremium)
	assertMoney(t, "47465.75", result.Indemnification3Months)
	assertMoney(t, "42249.58", result.Indemnification20Days)
	assertMoney(t, "249458.90", result.LostWages)

	assertMoney(t, "61484.81", result.Scenario1Total)
	assertMoney(t, "108950.56", result.Scenario2TotalWithout20Days)
	assertMoney(t, "151200.14", result.Scenario2Total)
	assertMoney(t, "400659.05", result.Scenario3Total)
}

func TestCalculate_PayrollCostMode(t *testing.T) {
	engine := NewCalculationEngine()
	record := referenceRecord()
	record.MonthlyPayrollCost = decimal.NewFromInt(33400)
	record.ManualSDI = decimal.NewFromInt(9999) // ignored in this mode

	result := engine.Calculate(record)

	assert.False(t, result.IsSDIManual, "manual SDI must be ignored when payroll cost is set")
	assertMoney(t, "690.01", result.EffectiveDailySalary)
	assertMoney(t, "879.00", result.SDI)
	assertMoney(t, "28.36", result.ProportionalAguinaldo)
	assertMoney(t, "41438.49", result.ProportionalVacation)
	assertMoney(t, "10359.62", result.VacationPremium)
	// Gross daily 833.33 is above the 497.86 cap either way
	assertMoney(t, "23930.02", result.SeniorityPremium)

	assertMoney(t, "75756.49", result.Scenario1Total)
	assertMoney(t, "154866.07", result.Scenario2TotalWithout20Days)
	assertMoney(t, "225282.04", result.Scenario2Total)
	assertMoney(t, "641046.88", result.Scenario3Total)
}

func TestCalculate_SeniorityUsesGrossInCostMode(t *testing.T) {
	engine := NewCalculationEngine()
	record := referenceRecord()
	record.MinimumWage = decimal.NewFromInt(1000) // cap 2000, above both wages
	record.MonthlyPayrollCost = decimal.NewFromInt(33400)

	result := engine.Calculate(record)

	// 12 × 1462/365 × 833.33 (gross), not × 690.01 (net)
	assertMoney(t, "40054.79", result.SeniorityPremium)
}

func TestCalculate_ManualSDI(t *testing.T) {
	engine := NewCalculationEngine()
	record := referenceRecord()
	record.ManualSDI = decimal.NewFromInt(600)

	result := engine.Calculate(record)

	assert.True(t, result.IsSDIManual)
	assertMoney(t, "600.00", result.SDI)
	assertMoney(t, "61484.81", result.Scenario1Total, "entitlements do not depend on SDI")
	assertMoney(t, "115484.81", result.Scenario2TotalWithout20Days)
	assertMoney(t, "48065.75", result.Indemnification20Days)
	assertMoney(t, "163550.56", result.Scenario2Total)
	assertMoney(t, "283800.00", result.LostWages)
	assertMoney(t, "447350.56", result.Scenario3Total)
}

func TestCalculate_ModeSwitchLeavesNoStaleSDI(t *testing.T) {
	engine := NewCalculationEngine()
	rules := engine.Rules
	record := referenceRecord()

	require.NoError(t, record.SetManualSDI(decimal.NewFromInt(600)))
	assert.True(t, engine.Calculate(record).IsSDIManual)

	require.NoError(t, record.SetMonthlyPayrollCost(decimal.NewFromInt(33400), rules.SalaryFactors))
	assert.False(t, engine.Calculate(record).IsSDIManual)

	require.NoError(t, record.SetMonthlyPayrollCost(decimal.Zero, rules.SalaryFactors))
	result := engine.Calculate(record)
	assert.False(t, result.IsSDIManual, "manual SDI must not come back")
	// Daily salary now holds the gross derived from the cost: 833.33 × 1.0548
	expected := record.DailySalary.Mul(IntegrationFactor(decimal.NewFromInt(15), 20, decimal.NewFromInt(25)))
	assert.True(t, result.SDI.Equal(expected))
}

func TestCalculate_SameDay(t *testing.T) {
	engine := NewCalculationEngine()
	record := referenceRecord()
	record.StartDate = "2024-06-15"
	record.EndDate = "2024-06-15"
	record.DailySalary = decimal.NewFromInt(300)

	result := engine.Calculate(record)

	assert.Equal(t, 1, result.AntiquityDaysTotal)
	assert.Equal(t, 0, result.CompletedYears)
	assert.Equal(t, 12, result.VacationDaysEntitledCurrentYear)
	assert.Equal(t, 1, result.AguinaldoDaysWorked)
	assert.Equal(t, 1, result.DaysWorkedSinceAnniversary)
	assertMoney(t, "314.79", result.SDI)
	assertMoney(t, "12.33", result.ProportionalAguinaldo)
	assertMoney(t, "9.86", result.ProportionalVacation)
	assertMoney(t, "2.47", result.VacationPremium)
	assertMoney(t, "9.86", result.SeniorityPremium)
	assertMoney(t, "34.52", result.Scenario1Total)
}

func TestCalculate_LeapYearAnniversaryNotReached(t *testing.T) {
	engine := NewCalculationEngine()
	record := referenceRecord()
	record.StartDate = "2023-03-01"
	record.EndDate = "2024-02-29"
	record.DailySalary = decimal.NewFromInt(400)

	result := engine.Calculate(record)

	assert.Equal(t, 366, result.AntiquityDaysTotal)
	assert.Equal(t, 1, result.CompletedYears)
	// The 365-day count closes year one before the calendar anniversary
	assert.Equal(t, 0, result.DaysWorkedSinceAnniversary)
	assert.Equal(t, 60, result.AguinaldoDaysWorked)
	assert.Equal(t, 14, result.VacationDaysEntitledCurrentYear)
	assertMoney(t, "12.00", result.TotalVacationDaysEarnedHistory)
	assertMoney(t, "420.27", result.SDI)
	assertMoney(t, "986.30", result.ProportionalAguinaldo)
	assertMoney(t, "4800.00", result.ProportionalVacation)
	assertMoney(t, "4813.15", result.SeniorityPremium)
	assertMoney(t, "11799.45", result.Scenario1Total)
	assertMoney(t, "58052.62", result.Scenario2Total)
	assertMoney(t, "256842.21", result.Scenario3Total)
}

func TestCalculate_InvalidDatesYieldZeroSentinel(t *testing.T) {
	engine := NewCalculationEngine()

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"inverted", "2024-01-02", "2024-01-01"},
		{"unparseable start", "not-a-date", "2024-01-01"},
		{"unparseable end", "2020-01-01", ""},
		{"impossible day", "2023-02-29", "2024-01-01"},
		{"time component", "2020-01-01T00:00:00Z", "2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := referenceRecord()
			record.StartDate = tt.start
			record.EndDate = tt.end
			record.AguinaldoDays = decimal.NewFromInt(20)

			result := engine.Calculate(record)

			assert.Empty(t, cmp.Diff(domain.ZeroResult(decimal.NewFromInt(20)), result, decimalComparer))
			assert.True(t, result.IsZero())
		})
	}
}

func TestCalculate_EffectiveAguinaldoDaysFloor(t *testing.T) {
	engine := NewCalculationEngine()

	for _, days := range []string{"-10", "0", "7.5", "15", "15.5", "30"} {
		t.Run(days, func(t *testing.T) {
			record := referenceRecord()
			record.AguinaldoDays = decimal.RequireFromString(days)
			want := decimal.Max(decimal.NewFromInt(15), record.AguinaldoDays)

			assert.True(t, engine.Calculate(record).EffectiveAguinaldoDays.Equal(want))

			record.EndDate = "garbage"
			assert.True(t, engine.Calculate(record).EffectiveAguinaldoDays.Equal(want))
		})
	}
}

func TestCalculate_VacationTakenBeyondAccrued(t *testing.T) {
	engine := NewCalculationEngine()
	record := referenceRecord()
	record.VacationDaysTaken = decimal.NewFromInt(500)

	result := engine.Calculate(record)

	assert.True(t, result.NetVacationDaysToPay.IsZero())
	assert.True(t, result.ProportionalVacation.IsZero())
	assert.True(t, result.VacationPremium.IsZero())
}

func TestCalculate_ScenarioInvariants(t *testing.T) {
	engine := NewCalculationEngine()

	for i, record := range invariantRecords() {
		t.Run(fmt.Sprintf("%d_%s", i, record.ID), func(t *testing.T) {
			r := engine.Calculate(record)

			assert.True(t, r.Scenario1Total.LessThanOrEqual(r.Scenario2TotalWithout20Days))
			assert.True(t, r.Scenario2TotalWithout20Days.LessThanOrEqual(r.Scenario2Total))
			assert.True(t, r.Scenario2Total.LessThanOrEqual(r.Scenario3Total))
			assert.False(t, r.NetVacationDaysToPay.IsNegative())

			s2Delta := r.Indemnification3Months.Add(r.Indemnification20Days)
			assert.True(t, r.Scenario2Total.Sub(r.Scenario1Total).Equal(s2Delta))
			assert.True(t, r.Scenario3Total.Sub(r.Scenario2Total).Equal(r.LostWages))
			assert.True(t, r.Scenario2Total.Sub(r.Scenario2TotalWithout20Days).Equal(r.Indemnification20Days))

			fromResult := decimal.NewFromInt(90).Mul(r.SDI).Add(decimal.NewFromInt(20).Mul(r.AntiquityYears).Mul(r.SDI))
			assert.True(t, r.Scenario2Total.Sub(r.Scenario1Total).Equal(fromResult),
				"scenario 2 minus scenario 1 = %s, recomputed from SDI and antiquity years = %s",
				r.Scenario2Total.Sub(r.Scenario1Total), fromResult)
		})
	}
}

func TestCalculate_ReferentiallyTransparent(t *testing.T) {
	engine := NewCalculationEngine()

	for _, record := range invariantRecords() {
		first := engine.Calculate(record)
		second := engine.Calculate(record)
		assert.Empty(t, cmp.Diff(first, second, decimalComparer), "record %s", record.ID)
	}
}

func TestCalculate_ConcurrentCallsAgree(t *testing.T) {
	engine := NewCalculationEngine()
	record := referenceRecord()
	want := engine.Calculate(record)

	var wg sync.WaitGroup
	results := make([]domain.CalculationResult, 32)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = engine.Calculate(record)
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Empty(t, cmp.Diff(want, got, decimalComparer))
	}
}

func TestCalculate_LogsZeroResult(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	record := referenceRecord()
	record.StartDate = "2030-01-01"
	engine.Calculate(record)

	require.NotEmpty(t, logger.Messages())
	assert.Contains(t, logger.Messages()[0], "zero result")
}

func TestCalculateChecked(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.CalculateChecked(referenceRecord())
	require.NoError(t, err)
	assertMoney(t, "61484.81", result.Scenario1Total)

	record := referenceRecord()
	record.StartDate = "2025-01-01"
	result, err = engine.CalculateChecked(record)
	assert.True(t, errors.Is(err, ErrInvertedDates))
	assert.True(t, result.IsZero())

	record = referenceRecord()
	record.EndDate = "31/12/2024"
	_, err = engine.CalculateChecked(record)
	assert.True(t, errors.Is(err, ErrInvalidDates))
}

func TestValidate(t *testing.T) {
	engine := NewCalculationEngine()

	tests := []struct {
		name   string
		mutate func(*domain.EmployeeRecord)
		want   string
	}{
		{"negative salary", func(r *domain.EmployeeRecord) { r.DailySalary = decimal.NewFromInt(-1) }, "daily salary cannot be negative"},
		{"negative bonuses", func(r *domain.EmployeeRecord) { r.PendingBonuses = decimal.NewFromInt(-5) }, "pending bonuses cannot be negative"},
		{"negative taken", func(r *domain.EmployeeRecord) { r.VacationDaysTaken = decimal.NewFromInt(-5) }, "vacation days taken"},
		{"premium over 100", func(r *domain.EmployeeRecord) { r.VacationPremiumPkg = decimal.NewFromInt(120) }, "between 0 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := referenceRecord()
			tt.mutate(&record)
			err := engine.Validate(record)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	assert.NoError(t, engine.Validate(referenceRecord()))
}

// referenceRecord is the worked example: four years at 500 a day
func referenceRecord() domain.EmployeeRecord {
	return domain.EmployeeRecord{
		ID:                 "ref",
		Name:               "Reference",
		DailySalary:        decimal.NewFromInt(500),
		StartDate:          "2020-01-01",
		EndDate:            "2024-01-01",
		AguinaldoDays:      decimal.NewFromInt(15),
		VacationPremiumPkg: decimal.NewFromInt(25),
		MinimumWage:        decimal.RequireFromString("248.93"),
	}
}

func invariantRecords() []domain.EmployeeRecord {
	base := referenceRecord()

	long := base
	long.ID = "long"
	long.StartDate = "1985-07-16"
	long.EndDate = "2024-11-30"
	long.DailySalary = decimal.RequireFromString("1834.25")
	long.VacationDaysTaken = decimal.NewFromInt(600)
	long.PendingBonuses = decimal.NewFromInt(12000)

	cost := base
	cost.ID = "cost"
	cost.MonthlyPayrollCost = decimal.NewFromInt(18500)
	cost.VacationPremiumPkg = decimal.NewFromInt(50)

	manual := base
	manual.ID = "manual"
	manual.ManualSDI = decimal.RequireFromString("612.40")
	manual.AguinaldoDays = decimal.NewFromInt(30)

	leap := base
	leap.ID = "leap"
	leap.StartDate = "2020-02-29"
	leap.EndDate = "2023-02-28"

	zeroWage := base
	zeroWage.ID = "zero-wage"
	zeroWage.MinimumWage = decimal.Zero
	zeroWage.DailySalary = decimal.Zero

	inverted := base
	inverted.ID = "inverted"
	inverted.StartDate = "2025-01-01"

	return []domain.EmployeeRecord{base, long, cost, manual, leap, zeroWage, inverted}
}

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), msgAndArgs...)
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	mu       sync.Mutex
	messages []string
}

func (tl *TestLogger) record(level, format string, args ...any) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.messages = append(tl.messages, level+": "+fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Messages() []string {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return append([]string(nil), tl.messages...)
}

func (tl *TestLogger) Debugf(format string, args ...any) { tl.record("DEBUG", format, args...) }
func (tl *TestLogger) Infof(format string, args ...any)  { tl.record("INFO", format, args...) }
func (tl *TestLogger) Warnf(format string, args ...any)  { tl.record("WARN", format, args...) }
func (tl *TestLogger) Errorf(format string, args ...any) { tl.record("ERROR", format, args...) }
