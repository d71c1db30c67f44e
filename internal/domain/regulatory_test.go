package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestVacationTable_DaysFor(t *testing.T) {
	table := LFT2023VacationTable

	tests := []struct {
		year int
		days int
	}{
		{-3, 12},
		{0, 12},
		{1, 12},
		{2, 14},
		{3, 16},
		{4, 18},
		{5, 20},
		{6, 22},
		{10, 22},
		{11, 24},
		{15, 24},
		{16, 26},
		{20, 26},
		{21, 28},
		{25, 28},
		{26, 30},
		{30, 30},
		{31, 32},
		{45, 32},
		{100, 32},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.days, table.DaysFor(tt.year), "year %d", tt.year)
	}
}

func TestVacationTable_NonDecreasing(t *testing.T) {
	table := LFT2023VacationTable
	previous := table.DaysFor(0)
	for year := 1; year <= 80; year++ {
		days := table.DaysFor(year)
		assert.GreaterOrEqual(t, days, previous, "year %d", year)
		previous = days
	}
}

func TestVacationTable_Validate(t *testing.T) {
	assert.NoError(t, LFT2023VacationTable.Validate())

	tests := []struct {
		name  string
		table VacationTable
		want  string
	}{
		{"empty", VacationTable{}, "empty"},
		{"not starting at year 1", VacationTable{{FromYear: 2, Days: 12}}, "must start at year 1"},
		{"unordered", VacationTable{{FromYear: 1, Days: 12}, {FromYear: 1, Days: 14}}, "must be greater"},
		{"decreasing", VacationTable{{FromYear: 1, Days: 14}, {FromYear: 2, Days: 12}}, "cannot be lower"},
		{"zero days", VacationTable{{FromYear: 1, Days: 0}}, "must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

func TestVacationTable_EmptyReturnsZero(t *testing.T) {
	assert.Equal(t, 0, VacationTable{}.DaysFor(5))
}

func TestDefaultLFTRules(t *testing.T) {
	rules := DefaultLFTRules()

	assert.NoError(t, rules.Validate())
	assert.Equal(t, "1.336", rules.SalaryFactors.CostToGross.String())
	assert.Equal(t, "1.6135", rules.SalaryFactors.CostToNet.String())
	assert.Equal(t, "1.2077", rules.SalaryFactors.NetToGross.StringFixed(4))

	// Callers get their own copy of the table
	rules.VacationTable[0].Days = 99
	assert.Equal(t, 12, LFT2023VacationTable[0].Days)
}

func TestLFTRules_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LFTRules)
		want   string
	}{
		{"zero cost to gross", func(r *LFTRules) { r.SalaryFactors.CostToGross = decimal.Zero }, "cost_to_gross"},
		{"zero cost to net", func(r *LFTRules) { r.SalaryFactors.CostToNet = decimal.Zero }, "cost_to_net"},
		{"zero net to gross", func(r *LFTRules) { r.SalaryFactors.NetToGross = decimal.Zero }, "net_to_gross"},
		{"aguinaldo below 15", func(r *LFTRules) { r.MinimumAguinaldoDays = decimal.NewFromInt(10) }, "statutory 15"},
		{"premium above 100", func(r *LFTRules) { r.DefaultVacationPremiumPkg = decimal.NewFromInt(150) }, "between 0 and 100"},
		{"negative minimum wage", func(r *LFTRules) { r.DefaultMinimumWage = decimal.NewFromInt(-1) }, "minimum wage"},
		{"bad table", func(r *LFTRules) { r.VacationTable = nil }, "vacation table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultLFTRules()
			tt.mutate(&rules)
			err := rules.Validate()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

func TestCalculationResult_Helpers(t *testing.T) {
	result := CalculationResult{
		ProportionalAguinaldo:       decimal.NewFromInt(100),
		ProportionalVacation:        decimal.NewFromInt(200),
		VacationPremium:             decimal.NewFromInt(50),
		SeniorityPremium:            decimal.NewFromInt(150),
		Scenario1Total:              decimal.NewFromInt(1500),
		Scenario2TotalWithout20Days: decimal.NewFromInt(3000),
		Scenario2Total:              decimal.NewFromInt(3800),
		Indemnification20Days:       decimal.NewFromInt(800),
	}

	assert.True(t, result.AcquiredRights().Equal(decimal.NewFromInt(500)))
	assert.True(t, result.PendingBonuses().Equal(decimal.NewFromInt(1000)))
	assert.True(t, result.NegotiationMargin().Equal(decimal.NewFromInt(800)))
	assert.False(t, result.IsZero())
	assert.True(t, ZeroResult(decimal.NewFromInt(15)).IsZero())
}
