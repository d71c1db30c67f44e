package main

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/finiquito/internal/breakeven"
	"github.com/rgehrsitz/finiquito/internal/compare"
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/rgehrsitz/finiquito/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func compareCmd(opts *rootOptions) *cobra.Command {
	var (
		recordID      string
		with          string
		transforms    []string
		format        string
		listTemplates bool
	)

	cmd := &cobra.Command{
		Use:   "compare [roster-file]",
		Short: "Compare a record against what-if variants",
		Long: `Calculates one record as given and under each template or transform,
then reports the scenario totals and their change against the base.`,
		Example: `  finiquito compare roster.yaml --record ana --with end_plus_6m,raise_5pct
  finiquito compare roster.yaml --transform "shift_end_date:months=3" --format csv
  finiquito compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if listTemplates {
				rules, err := opts.rules(domain.DefaultLFTRules())
				if err != nil {
					return err
				}
				fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates(rules)))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("a roster file is required")
			}

			file, engine, err := opts.loadRoster(args[0])
			if err != nil {
				return err
			}
			record, err := pickRecord(file.Records, recordID, args[0])
			if err != nil {
				return err
			}

			compSet, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), record, compare.CompareOptions{
				Templates:  transform.ParseTemplateList(with),
				Transforms: transforms,
			})
			if err != nil {
				return err
			}

			switch format {
			case "table":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
			case "csv":
				data, err := (&compare.CSVFormatter{}).Format(compSet)
				if err != nil {
					return err
				}
				fmt.Fprint(out, data)
			case "json":
				data, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, data)
			default:
				return fmt.Errorf("unknown format %q (available: table, csv, json)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&recordID, "record", "", "Record id to compare (defaults to the first record)")
	cmd.Flags().StringVar(&with, "with", "", "Comma-separated template names")
	cmd.Flags().StringArrayVar(&transforms, "transform", nil, "Transform spec name:key=value,... (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List the built-in templates and exit")
	return cmd
}

func breakEvenCmd(opts *rootOptions) *cobra.Command {
	var (
		recordID      string
		target        string
		scenario      int
		budget        string
		minEndDate    string
		maxEndDate    string
		minSalary     string
		maxSalary     string
		tolerance     string
		maxIterations int
		format        string
	)

	cmd := &cobra.Command{
		Use:   "break-even [roster-file]",
		Short: "Find the end date or daily salary at which a scenario meets a budget",
		Example: `  finiquito break-even roster.yaml --record ana --target end_date --scenario 2 --budget 200000
  finiquito break-even roster.yaml --target daily_salary --scenario 3 --budget 500000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, engine, err := opts.loadRoster(args[0])
			if err != nil {
				return err
			}
			record, err := pickRecord(file.Records, recordID, args[0])
			if err != nil {
				return err
			}

			constraints := breakeven.Constraints{Scenario: scenario}
			if constraints.Budget, err = decimal.NewFromString(budget); err != nil {
				return fmt.Errorf("invalid --budget %q: %w", budget, err)
			}
			if constraints.MinEndDate, err = optionalDate("min-end-date", minEndDate); err != nil {
				return err
			}
			if constraints.MaxEndDate, err = optionalDate("max-end-date", maxEndDate); err != nil {
				return err
			}
			if constraints.MinDailySalary, err = optionalDecimal("min-salary", minSalary); err != nil {
				return err
			}
			if constraints.MaxDailySalary, err = optionalDecimal("max-salary", maxSalary); err != nil {
				return err
			}

			req := breakeven.OptimizationRequest{
				BaseRecord:    record,
				Target:        breakeven.OptimizationTarget(target),
				Constraints:   constraints,
				MaxIterations: maxIterations,
			}
			if tol, err := optionalDecimal("tolerance", tolerance); err != nil {
				return err
			} else if tol != nil {
				req.Tolerance = *tol
			}

			result, err := breakeven.NewDefaultSolver(engine).Optimize(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "table":
				fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
			case "json":
				data, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, data)
			default:
				return fmt.Errorf("unknown format %q (available: table, json)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&recordID, "record", "", "Record id to solve for (defaults to the first record)")
	cmd.Flags().StringVar(&target, "target", string(breakeven.OptimizeEndDate), "Parameter to search (end_date, daily_salary)")
	cmd.Flags().IntVar(&scenario, "scenario", 2, "Scenario whose total must meet the budget (1, 2, 3)")
	cmd.Flags().StringVar(&budget, "budget", "", "Budget for the scenario total")
	cmd.Flags().StringVar(&minEndDate, "min-end-date", "", "Earliest end date to consider (YYYY-MM-DD)")
	cmd.Flags().StringVar(&maxEndDate, "max-end-date", "", "Latest end date to consider (YYYY-MM-DD)")
	cmd.Flags().StringVar(&minSalary, "min-salary", "", "Lowest daily salary to consider")
	cmd.Flags().StringVar(&maxSalary, "max-salary", "", "Highest daily salary to consider")
	cmd.Flags().StringVar(&tolerance, "tolerance", "", "Convergence tolerance for the salary search")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "Maximum solver iterations")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	_ = cmd.MarkFlagRequired("budget")
	return cmd
}

func optionalDate(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", flag, value, err)
	}
	return &t, nil
}

func optionalDecimal(flag, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", flag, value, err)
	}
	return &d, nil
}
