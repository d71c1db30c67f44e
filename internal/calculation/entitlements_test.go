package calculation

import (
	"testing"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAguinaldoDaysWorked(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"hired before the year", "2015-08-01", "2024-03-31", 91},
		{"hired during the year", "2024-05-01", "2024-05-31", 31},
		{"full common year", "2010-01-01", "2023-12-31", 365},
		{"full leap year is capped", "2010-01-01", "2024-12-31", 365},
		{"first of january", "2020-01-01", "2024-01-01", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := ResolveService(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, AguinaldoDaysWorked(service))
		})
	}
}

func TestCalculateEntitlements_FullYearAguinaldo(t *testing.T) {
	service, err := ResolveService("2010-01-01", "2023-12-31")
	require.NoError(t, err)
	record := domain.EmployeeRecord{MinimumWage: decimal.RequireFromString("248.93")}
	salary := SalaryBasis{Base: decimal.NewFromInt(400), SeniorityBasis: decimal.NewFromInt(400)}

	e := CalculateEntitlements(record, service, salary, decimal.NewFromInt(15), domain.LFT2023VacationTable)

	// A whole year worked pays exactly the contractual days
	assert.Equal(t, "6000.00", e.Aguinaldo.StringFixed(2))
}

func TestCalculateEntitlements_VacationHistory(t *testing.T) {
	// 12 completed years by the 365-day count
	service, err := ResolveService("2012-03-10", "2024-06-30")
	require.NoError(t, err)
	require.Equal(t, 12, service.CompletedYears)

	record := domain.EmployeeRecord{
		VacationPremiumPkg: decimal.NewFromInt(25),
		VacationDaysTaken:  decimal.NewFromInt(200),
		MinimumWage:        decimal.RequireFromString("248.93"),
	}
	salary := SalaryBasis{Base: decimal.NewFromInt(100), SeniorityBasis: decimal.NewFromInt(100)}

	e := CalculateEntitlements(record, service, salary, decimal.NewFromInt(15), domain.LFT2023VacationTable)

	// 12+14+16+18+20 + 5×22 + 2×24 = 238 full-tier days
	full := decimal.NewFromInt(238)
	partial := decimal.NewFromInt(int64(e.DaysSinceAnniversary)).Mul(decimal.NewFromInt(24)).Div(decimal.NewFromInt(365))
	assert.True(t, e.VacationDaysEarned.Equal(full.Add(partial)))
	assert.True(t, e.NetVacationDays.Equal(e.VacationDaysEarned.Sub(decimal.NewFromInt(200))))
	assert.True(t, e.Vacation.Equal(e.NetVacationDays.Mul(decimal.NewFromInt(100))))
	assert.True(t, e.VacationPremium.Equal(e.Vacation.Mul(decimal.NewFromInt(25)).Div(decimal.NewFromInt(100))))
	assert.GreaterOrEqual(t, e.DaysSinceAnniversary, 0)
	assert.LessOrEqual(t, e.DaysSinceAnniversary, 365)
}

func TestCalculateEntitlements_SeniorityCap(t *testing.T) {
	service, err := ResolveService("2019-01-01", "2023-12-31") // 1826 days
	require.NoError(t, err)
	record := domain.EmployeeRecord{MinimumWage: decimal.NewFromInt(250)}

	tests := []struct {
		name  string
		basis int64
		want  string
	}{
		{"below cap", 300, "18009.86"},
		{"at cap", 500, "30016.44"},
		{"above cap", 2000, "30016.44"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			salary := SalaryBasis{Base: decimal.NewFromInt(tt.basis), SeniorityBasis: decimal.NewFromInt(tt.basis)}
			e := CalculateEntitlements(record, service, salary, decimal.NewFromInt(15), domain.LFT2023VacationTable)
			assert.Equal(t, tt.want, e.SeniorityPremium.StringFixed(2))
		})
	}
}

func TestAggregateScenarios(t *testing.T) {
	service, err := ResolveService("2020-01-01", "2024-01-01")
	require.NoError(t, err)
	salary := SalaryBasis{SDI: decimal.NewFromInt(1000)}
	e := Entitlements{
		Aguinaldo:        decimal.NewFromInt(100),
		Vacation:         decimal.NewFromInt(200),
		VacationPremium:  decimal.NewFromInt(50),
		SeniorityPremium: decimal.NewFromInt(650),
	}

	s := AggregateScenarios(service, salary, e, decimal.NewFromInt(500))

	assert.Equal(t, "1500.00", s.Scenario1Total.StringFixed(2))
	assert.Equal(t, "90000.00", s.Indemnification3Months.StringFixed(2))
	assert.Equal(t, "91500.00", s.Scenario2TotalWithout20Days.StringFixed(2))
	assert.Equal(t, "80109.59", s.Indemnification20Days.StringFixed(2))
	assert.Equal(t, "171609.59", s.Scenario2Total.StringFixed(2))
	// 365 days plus 450 × 0.02 × 12 = 108 days of interest
	assert.Equal(t, "473000.00", s.LostWages.StringFixed(2))
	assert.Equal(t, "644609.59", s.Scenario3Total.StringFixed(2))
}
