package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/finiquito/internal/calculation"
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/rgehrsitz/finiquito/internal/transform"
)

// CompareEngine orchestrates what-if comparisons of one record
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a comparison engine using the calculation
// engine's rules for its templates
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(calcEngine.Rules),
		TransformRegistry: transform.NewTransformRegistry(calcEngine.Rules),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates  []string // built-in template names
	Transforms []string // ad-hoc specs, "name:key=value,..."
}

type variant struct {
	name        string
	description string
	transforms  []transform.RecordTransform
}

// Compare calculates base and every requested variant of it
func (ce *CompareEngine) Compare(ctx context.Context, base domain.EmployeeRecord, options CompareOptions) (*ComparisonSet, error) {
	variants, err := ce.resolveVariants(options)
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, fmt.Errorf("no templates or transforms to compare")
	}

	baseCalc, err := ce.CalcEngine.CalculateChecked(base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base record: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(base.Name, base, baseCalc)
	baseResult.Description = "Base"

	alternatives := make([]ComparisonResult, 0, len(variants))
	for _, v := range variants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(base, v.transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", v.name, err)
		}

		calc, err := ce.CalcEngine.CalculateChecked(modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s: %w", v.name, err)
		}

		alt := ce.MetricsCalculator.CalculateMetrics(v.name, modified, calc)
		alt.Description = v.description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		BaseName:           base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) resolveVariants(options CompareOptions) ([]variant, error) {
	var variants []variant

	for _, name := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		variants = append(variants, variant{
			name:        template.Name,
			description: template.Description,
			transforms:  template.Transforms,
		})
	}

	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		variants = append(variants, variant{
			name:        spec,
			description: t.Description(),
			transforms:  []transform.RecordTransform{t},
		})
	}

	return variants, nil
}
