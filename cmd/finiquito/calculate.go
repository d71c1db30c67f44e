package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/finiquito/internal/calculation"
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/rgehrsitz/finiquito/internal/output"
	"github.com/rgehrsitz/finiquito/internal/roster"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func calculateCmd(opts *rootOptions) *cobra.Command {
	var (
		format   string
		recordID string
		rf       recordFlags
	)

	cmd := &cobra.Command{
		Use:   "calculate [roster-file]",
		Short: "Calculate the three settlement scenarios",
		Long: `With a roster file, calculates every record in it (or only --record).
Without one, calculates a single record described by flags.`,
		Example: `  finiquito calculate --start 2020-01-01 --end 2024-01-01 --daily-salary 500
  finiquito calculate --start 2022-03-15 --end 2024-06-30 --monthly-cost 33400 --format json
  finiquito calculate roster.yaml --format csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			var (
				records []domain.EmployeeRecord
				engine  *calculation.CalculationEngine
			)
			if len(args) == 1 {
				file, e, err := opts.loadRoster(args[0])
				if err != nil {
					return err
				}
				engine, records = e, file.Records
				if recordID != "" {
					record, err := pickRecord(file.Records, recordID, args[0])
					if err != nil {
						return err
					}
					records = []domain.EmployeeRecord{record}
				}
			} else {
				e, err := opts.engine(domain.DefaultLFTRules())
				if err != nil {
					return err
				}
				engine = e
				record := domain.NewEmployeeRecord("cli", "Colaborador", engine.Rules, time.Now())
				if err := rf.apply(cmd, &record, engine.Rules); err != nil {
					return err
				}
				records = []domain.EmployeeRecord{record}
			}

			for _, record := range records {
				if err := engine.Validate(record); err != nil {
					return err
				}
			}

			results, err := engine.CalculateAll(cmd.Context(), records)
			if err != nil {
				return err
			}
			report := output.NewReport(roster.NewSummary(records, results), engine.Rules.Metadata, time.Now())
			data, err := formatter.Format(report)
			if err != nil {
				return fmt.Errorf("failed to format report: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "console",
		fmt.Sprintf("Output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().StringVar(&recordID, "record", "", "Only calculate the record with this id (roster file only)")
	rf.bind(cmd)
	return cmd
}

func validateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [roster-file]",
		Short: "Validate a roster file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, engine, err := opts.loadRoster(args[0])
			if err != nil {
				return err
			}
			for _, record := range file.Records {
				if err := engine.Validate(record); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d records)\n", args[0], len(file.Records))
			return nil
		},
	}
}

func vacationTableCmd(opts *rootOptions) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "vacation-table",
		Short: "Show the vacation days granted per year of service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := opts.rules(domain.DefaultLFTRules())
			if err != nil {
				return err
			}
			table := rules.VacationTable
			out := cmd.OutOrStdout()

			if cmd.Flags().Changed("year") {
				if year < 1 {
					return fmt.Errorf("--year must be at least 1, got %d", year)
				}
				fmt.Fprintf(out, "Año %d: %d días\n", year, table.DaysFor(year))
				return nil
			}

			fmt.Fprintf(out, "%-18s %s\n", "Años de servicio", "Días")
			for i, bracket := range table {
				years := strconv.Itoa(bracket.FromYear) + "+"
				if i+1 < len(table) {
					last := table[i+1].FromYear - 1
					years = strconv.Itoa(bracket.FromYear)
					if last > bracket.FromYear {
						years = fmt.Sprintf("%d-%d", bracket.FromYear, last)
					}
				}
				fmt.Fprintf(out, "%-18s %d\n", years, bracket.Days)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Only show the days for this year of service")
	return cmd
}

func estimateCmd(opts *rootOptions) *cobra.Command {
	var amount, mode string

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the gross daily salary from a monthly amount",
		Example: `  finiquito estimate --amount 33400 --mode cost
  finiquito estimate --amount 20700 --mode net`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := opts.rules(domain.DefaultLFTRules())
			if err != nil {
				return err
			}
			inputMode, err := calculation.ParseSalaryInputMode(mode)
			if err != nil {
				return err
			}
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid --amount %q: %w", amount, err)
			}

			estimate, err := calculation.EstimateDailySalary(value, inputMode, rules.SalaryFactors)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Modo:            %s\n", estimate.Mode)
			fmt.Fprintf(out, "Monto mensual:   %s\n", output.FormatCurrency(estimate.MonthlyAmount))
			fmt.Fprintf(out, "Bruto mensual:   %s\n", output.FormatCurrency(estimate.GrossMonthly))
			fmt.Fprintf(out, "Salario diario:  %s\n", output.FormatCurrency(estimate.GrossDaily))
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Monthly amount")
	cmd.Flags().StringVar(&mode, "mode", string(calculation.ModeCost), "What the amount represents (cost, gross, net)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
