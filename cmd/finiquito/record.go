package main

import (
	"fmt"

	"github.com/rgehrsitz/finiquito/internal/calculation"
	"github.com/rgehrsitz/finiquito/internal/config"
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// recordFlags describe one employment record on the command line. Only
// flags the user set are applied, so untouched fields keep their values.
type recordFlags struct {
	name, start, end, notes string

	dailySalary     string
	monthlyCost     string
	manualSDI       string
	aguinaldoDays   string
	vacationPremium string
	minimumWage     string
	vacationTaken   string
	pendingBonuses  string
}

func (f *recordFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Employee name")
	fs.StringVar(&f.start, "start", "", "Hire date (YYYY-MM-DD)")
	fs.StringVar(&f.end, "end", "", "Termination date (YYYY-MM-DD)")
	fs.StringVar(&f.notes, "notes", "", "Free-text notes")
	fs.StringVar(&f.dailySalary, "daily-salary", "", "Gross daily salary")
	fs.StringVar(&f.monthlyCost, "monthly-cost", "", "Monthly payroll cost (derives the daily salary)")
	fs.StringVar(&f.manualSDI, "manual-sdi", "", "Captured integrated daily wage (SDI)")
	fs.StringVar(&f.aguinaldoDays, "aguinaldo-days", "", "Contractual aguinaldo days per year")
	fs.StringVar(&f.vacationPremium, "vacation-premium", "", "Vacation premium percentage")
	fs.StringVar(&f.minimumWage, "minimum-wage", "", "Daily minimum wage")
	fs.StringVar(&f.vacationTaken, "vacation-taken", "", "Vacation days already taken over the relationship")
	fs.StringVar(&f.pendingBonuses, "pending-bonuses", "", "Bonuses owed and not yet paid")
}

// apply sets every changed flag on record through the record setters
func (f *recordFlags) apply(cmd *cobra.Command, record *domain.EmployeeRecord, rules domain.LFTRules) error {
	flags := cmd.Flags()

	if flags.Changed("name") {
		if err := record.SetName(f.name); err != nil {
			return err
		}
	}
	if flags.Changed("start") {
		if err := record.SetStartDate(f.start); err != nil {
			return err
		}
	}
	if flags.Changed("end") {
		if err := record.SetEndDate(f.end); err != nil {
			return err
		}
	}
	if flags.Changed("notes") {
		record.SetNotes(f.notes)
	}

	// Salary before payroll cost before manual SDI, so a manual SDI next to
	// a payroll cost is rejected
	amounts := []struct {
		flag  string
		value string
		set   func(decimal.Decimal) error
	}{
		{"daily-salary", f.dailySalary, record.SetDailySalary},
		{"monthly-cost", f.monthlyCost, func(d decimal.Decimal) error { return record.SetMonthlyPayrollCost(d, rules.SalaryFactors) }},
		{"manual-sdi", f.manualSDI, record.SetManualSDI},
		{"aguinaldo-days", f.aguinaldoDays, func(d decimal.Decimal) error { return record.SetAguinaldoDays(d, rules) }},
		{"vacation-premium", f.vacationPremium, record.SetVacationPremiumPkg},
		{"minimum-wage", f.minimumWage, record.SetMinimumWage},
		{"vacation-taken", f.vacationTaken, record.SetVacationDaysTaken},
		{"pending-bonuses", f.pendingBonuses, record.SetPendingBonuses},
	}
	for _, amount := range amounts {
		if !flags.Changed(amount.flag) {
			continue
		}
		d, err := decimal.NewFromString(amount.value)
		if err != nil {
			return fmt.Errorf("invalid --%s %q: %w", amount.flag, amount.value, err)
		}
		if err := amount.set(d); err != nil {
			return fmt.Errorf("--%s: %w", amount.flag, err)
		}
	}
	return nil
}

// loadRoster parses a roster file and builds an engine for its rules
func (o *rootOptions) loadRoster(path string) (*config.Roster, *calculation.CalculationEngine, error) {
	file, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, nil, err
	}
	engine, err := o.engine(file.Rules)
	if err != nil {
		return nil, nil, err
	}
	o.logger.Debugf("loaded %d records from %s", len(file.Records), path)
	return file, engine, nil
}

// pickRecord returns the record with the given id, or the first one when id is empty
func pickRecord(records []domain.EmployeeRecord, id, source string) (domain.EmployeeRecord, error) {
	if id == "" {
		if len(records) == 0 {
			return domain.EmployeeRecord{}, fmt.Errorf("%s has no records", source)
		}
		return records[0], nil
	}
	for _, record := range records {
		if record.ID == id {
			return record, nil
		}
	}
	return domain.EmployeeRecord{}, fmt.Errorf("record %q not found in %s", id, source)
}
