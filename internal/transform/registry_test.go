package transform

import (
	"testing"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
)

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry(domain.DefaultLFTRules())

	tr, err := registry.ParseTransformSpec("shift_end_date:months=6,days=2")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	shift, ok := tr.(*ShiftEndDate)
	if !ok {
		t.Fatalf("Expected *ShiftEndDate, got %T", tr)
	}
	if shift.Months != 6 || shift.Days != 2 {
		t.Errorf("Expected 6 months and 2 days, got %d and %d", shift.Months, shift.Days)
	}

	tr, err = registry.ParseTransformSpec("adjust_salary:percent=7.5")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	adjust := tr.(*AdjustSalary)
	if !adjust.Percent.Equal(decimal.RequireFromString("7.5")) {
		t.Errorf("Expected 7.5 percent, got %s", adjust.Percent)
	}
	if adjust.Factors.CostToGross.IsZero() {
		t.Error("Expected the registry to carry the salary factors")
	}
}

func TestTransformRegistry_ParseErrors(t *testing.T) {
	registry := NewTransformRegistry(domain.DefaultLFTRules())

	specs := []string{
		"shift_end_date",              // no params separator
		"shift_end_date:",             // no months or days
		"shift_end_date:months=six",   // not an int
		"set_end_date:date=2024/01/01", // wrong layout
		"adjust_salary:",              // missing percent
		"set_pending_bonuses:amount=x", // not a decimal
		"unknown:x=1",
		"set_vacation_premium:percent",
	}
	for _, spec := range specs {
		if _, err := registry.ParseTransformSpec(spec); err == nil {
			t.Errorf("Expected error for spec %q", spec)
		}
	}
}

func TestTransformRegistry_List(t *testing.T) {
	names := NewTransformRegistry(domain.DefaultLFTRules()).List()
	if len(names) != 7 {
		t.Fatalf("Expected 7 transforms, got %d: %v", len(names), names)
	}
	if names[0] != "adjust_salary" {
		t.Errorf("Expected sorted names starting with adjust_salary, got %s", names[0])
	}
}
