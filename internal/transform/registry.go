package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (RecordTransform, error)

// NewTransformRegistry creates a registry with all built-in transforms.
// Salary adjustments in payroll-cost mode use the factors of rules.
func NewTransformRegistry(rules domain.LFTRules) *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("shift_end_date", createShiftEndDate)
	registry.Register("set_end_date", createSetEndDate)
	registry.Register("adjust_salary", func(params map[string]string) (RecordTransform, error) {
		percent, err := requireDecimal("adjust_salary", params, "percent")
		if err != nil {
			return nil, err
		}
		return &AdjustSalary{Percent: percent, Factors: rules.SalaryFactors}, nil
	})
	registry.Register("set_aguinaldo_days", decimalFactory("set_aguinaldo_days", "days", func(v decimal.Decimal) RecordTransform {
		return &SetAguinaldoDays{Days: v}
	}))
	registry.Register("set_vacation_premium", decimalFactory("set_vacation_premium", "percent", func(v decimal.Decimal) RecordTransform {
		return &SetVacationPremium{Percent: v}
	}))
	registry.Register("set_pending_bonuses", decimalFactory("set_pending_bonuses", "amount", func(v decimal.Decimal) RecordTransform {
		return &SetPendingBonuses{Amount: v}
	}))
	registry.Register("set_vacation_taken", decimalFactory("set_vacation_taken", "days", func(v decimal.Decimal) RecordTransform {
		return &SetVacationTaken{Days: v}
	}))

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (RecordTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "shift_end_date:months=6"
func (r *TransformRegistry) ParseTransformSpec(spec string) (RecordTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions

func createShiftEndDate(params map[string]string) (RecordTransform, error) {
	months, hasMonths, err := optionalInt(params, "months")
	if err != nil {
		return nil, err
	}
	days, hasDays, err := optionalInt(params, "days")
	if err != nil {
		return nil, err
	}
	if !hasMonths && !hasDays {
		return nil, fmt.Errorf("shift_end_date requires 'months' or 'days' parameter")
	}
	return &ShiftEndDate{Months: months, Days: days}, nil
}

func createSetEndDate(params map[string]string) (RecordTransform, error) {
	date, ok := params["date"]
	if !ok {
		return nil, fmt.Errorf("set_end_date requires 'date' parameter")
	}
	if _, err := domain.ParseDate(date); err != nil {
		return nil, fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	return &SetEndDate{Date: date}, nil
}

func decimalFactory(name, param string, build func(decimal.Decimal) RecordTransform) TransformFactory {
	return func(params map[string]string) (RecordTransform, error) {
		v, err := requireDecimal(name, params, param)
		if err != nil {
			return nil, err
		}
		return build(v), nil
	}
}

func requireDecimal(name string, params map[string]string, param string) (decimal.Decimal, error) {
	raw, ok := params[param]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", name, param)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", param, err)
	}
	return v, nil
}

func optionalInt(params map[string]string, param string) (int, bool, error) {
	raw, ok := params[param]
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s value: %w", param, err)
	}
	return v, true, nil
}
