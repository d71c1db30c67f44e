package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RosterFile is the on-disk form of a set of employment records
type RosterFile struct {
	Records []RecordInput `yaml:"records"`
	// Optional override of the built-in LFT rules
	Rules *domain.LFTRules `yaml:"lft_rules,omitempty"`
}

// RecordInput is one record as written in a roster file. Legal parameters
// are pointers so an absent value can fall back to the rules default while
// an explicit zero is kept.
type RecordInput struct {
	ID                 string           `yaml:"id"`
	Name               string           `yaml:"name"`
	DailySalary        decimal.Decimal  `yaml:"daily_salary"`
	MonthlyPayrollCost decimal.Decimal  `yaml:"monthly_payroll_cost"`
	ManualSDI          decimal.Decimal  `yaml:"manual_sdi"`
	StartDate          string           `yaml:"start_date"`
	EndDate            string           `yaml:"end_date"`
	AguinaldoDays      *decimal.Decimal `yaml:"aguinaldo_days"`
	VacationPremiumPkg *decimal.Decimal `yaml:"vacation_premium_pkg"`
	MinimumWage        *decimal.Decimal `yaml:"minimum_wage"`
	VacationDaysTaken  decimal.Decimal  `yaml:"vacation_days_taken"`
	PendingBonuses     decimal.Decimal  `yaml:"pending_bonuses"`
	Notes              string           `yaml:"notes"`
}

// Roster is a validated roster file with defaults applied
type Roster struct {
	Records []domain.EmployeeRecord
	Rules   domain.LFTRules
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a roster from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*Roster, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates roster YAML
func (ip *InputParser) Parse(data []byte) (*Roster, error) {
	// lft_rules keys that are absent keep their built-in values
	defaults := domain.DefaultLFTRules()
	file := RosterFile{Rules: &defaults}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	rules := domain.DefaultLFTRules()
	if file.Rules != nil {
		rules = *file.Rules
	}

	roster := &Roster{Rules: rules}
	for _, in := range file.Records {
		roster.Records = append(roster.Records, in.toRecord(rules))
	}

	if err := ip.ValidateConfiguration(roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// LoadRules loads a standalone LFT rules file. Keys missing from the file
// keep their built-in values.
func (ip *InputParser) LoadRules(filename string) (*domain.LFTRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	rules := domain.DefaultLFTRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return &rules, nil
}

// ValidateConfiguration validates the loaded roster
func (ip *InputParser) ValidateConfiguration(roster *Roster) error {
	if err := roster.Rules.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: lft_rules: %w", err)
	}

	if len(roster.Records) == 0 {
		return fmt.Errorf("configuration validation failed: no records provided")
	}

	seen := make(map[string]bool, len(roster.Records))
	for i, record := range roster.Records {
		if err := ip.validateRecord(&record); err != nil {
			return fmt.Errorf("configuration validation failed: record %d (%s): %w", i, record.Name, err)
		}
		if seen[record.ID] {
			return fmt.Errorf("configuration validation failed: duplicate record id %q", record.ID)
		}
		seen[record.ID] = true
	}
	return nil
}

// validateRecord validates a single employment record
func (ip *InputParser) validateRecord(record *domain.EmployeeRecord) error {
	if record.ID == "" {
		return fmt.Errorf("id is required")
	}
	if record.Name == "" {
		return fmt.Errorf("name is required")
	}

	start, err := domain.ParseDate(record.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date %q", record.StartDate)
	}
	end, err := domain.ParseDate(record.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end date %q", record.EndDate)
	}
	if start.After(end) {
		return fmt.Errorf("start date %s is after end date %s", record.StartDate, record.EndDate)
	}

	if record.DailySalary.IsNegative() {
		return fmt.Errorf("daily salary cannot be negative")
	}
	if record.MonthlyPayrollCost.IsNegative() {
		return fmt.Errorf("monthly payroll cost cannot be negative")
	}
	if record.ManualSDI.IsNegative() {
		return fmt.Errorf("manual SDI cannot be negative")
	}
	if record.VacationPremiumPkg.IsNegative() || record.VacationPremiumPkg.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("vacation premium must be between 0 and 100")
	}
	if record.MinimumWage.IsNegative() {
		return fmt.Errorf("minimum wage cannot be negative")
	}
	if record.VacationDaysTaken.IsNegative() {
		return fmt.Errorf("vacation days taken cannot be negative")
	}
	if record.PendingBonuses.IsNegative() {
		return fmt.Errorf("pending bonuses cannot be negative")
	}
	return nil
}

// toRecord applies the rules defaults to absent legal parameters. A
// payroll cost refreshes the daily salary the same way the record setter does.
func (in RecordInput) toRecord(rules domain.LFTRules) domain.EmployeeRecord {
	record := domain.EmployeeRecord{
		ID:                 in.ID,
		Name:               in.Name,
		DailySalary:        in.DailySalary,
		ManualSDI:          in.ManualSDI,
		StartDate:          in.StartDate,
		EndDate:            in.EndDate,
		AguinaldoDays:      valueOr(in.AguinaldoDays, rules.MinimumAguinaldoDays),
		VacationPremiumPkg: valueOr(in.VacationPremiumPkg, rules.DefaultVacationPremiumPkg),
		MinimumWage:        valueOr(in.MinimumWage, rules.DefaultMinimumWage),
		VacationDaysTaken:  in.VacationDaysTaken,
		PendingBonuses:     in.PendingBonuses,
		Notes:              in.Notes,
	}
	if in.MonthlyPayrollCost.IsPositive() {
		_ = record.SetMonthlyPayrollCost(in.MonthlyPayrollCost, rules.SalaryFactors)
	} else {
		record.MonthlyPayrollCost = in.MonthlyPayrollCost
	}
	return record
}

func valueOr(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}

// MarshalRoster renders records back into roster file YAML
func MarshalRoster(records []domain.EmployeeRecord) ([]byte, error) {
	file := struct {
		Records []domain.EmployeeRecord `yaml:"records"`
	}{Records: records}

	data, err := yaml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal roster: %w", err)
	}
	return data, nil
}
