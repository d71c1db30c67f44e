package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []RecordTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common
// negotiation what-ifs
func CreateBuiltInTemplates(rules domain.LFTRules) *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Termination timing
	registry.Register(Template{
		Name:        "end_plus_3m",
		Description: "Terminate 3 months later",
		Transforms:  []RecordTransform{&ShiftEndDate{Months: 3}},
	})
	registry.Register(Template{
		Name:        "end_plus_6m",
		Description: "Terminate 6 months later",
		Transforms:  []RecordTransform{&ShiftEndDate{Months: 6}},
	})
	registry.Register(Template{
		Name:        "end_plus_1yr",
		Description: "Terminate 1 year later (one more completed year of service)",
		Transforms:  []RecordTransform{&ShiftEndDate{Months: 12}},
	})

	// Contractual benefits
	registry.Register(Template{
		Name:        "aguinaldo_30",
		Description: "Contractual aguinaldo of 30 days",
		Transforms:  []RecordTransform{&SetAguinaldoDays{Days: decimal.NewFromInt(30)}},
	})
	registry.Register(Template{
		Name:        "premium_50",
		Description: "Vacation premium of 50%",
		Transforms:  []RecordTransform{&SetVacationPremium{Percent: decimal.NewFromInt(50)}},
	})

	// Salary
	registry.Register(Template{
		Name:        "raise_5pct",
		Description: "Salary 5% higher",
		Transforms:  []RecordTransform{&AdjustSalary{Percent: decimal.NewFromInt(5), Factors: rules.SalaryFactors}},
	})
	registry.Register(Template{
		Name:        "raise_10pct",
		Description: "Salary 10% higher",
		Transforms:  []RecordTransform{&AdjustSalary{Percent: decimal.NewFromInt(10), Factors: rules.SalaryFactors}},
	})

	return registry
}

// ApplyTemplate applies a template to a base record
func ApplyTemplate(base domain.EmployeeRecord, template Template) (domain.EmployeeRecord, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	order := []string{"Termination Timing", "Contractual Benefits", "Salary"}
	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "end_"):
			categories["Termination Timing"] = append(categories["Termination Timing"], template)
		case strings.HasPrefix(name, "raise_"):
			categories["Salary"] = append(categories["Salary"], template)
		default:
			categories["Contractual Benefits"] = append(categories["Contractual Benefits"], template)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-16s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  finiquito compare roster.yaml --record ID --with end_plus_6m,raise_5pct\n")
	sb.WriteString("  finiquito compare roster.yaml --record ID --transform shift_end_date:months=2\n")

	return sb.String()
}
