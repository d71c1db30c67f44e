package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/finiquito/internal/config"
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/rgehrsitz/finiquito/internal/output"
	"github.com/rgehrsitz/finiquito/internal/roster"
	"github.com/rgehrsitz/finiquito/internal/store/sqlite"
	"github.com/spf13/cobra"
)

const defaultDBPath = "finiquito.db"

// rosterOpener opens the stored roster; the returned func closes the store
type rosterOpener func(cmd *cobra.Command) (*roster.Roster, func(), error)

func rosterCmd(opts *rootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the stored roster of employees",
		Long: `Adds, edits and removes records in a SQLite roster. One record is
always active; commands without an id act on it.`,
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", defaultDBPath, "SQLite roster database")

	open := func(cmd *cobra.Command) (*roster.Roster, func(), error) {
		engine, err := opts.engine(domain.DefaultLFTRules())
		if err != nil {
			return nil, nil, err
		}
		store, err := sqlite.New(dbPath)
		if err != nil {
			return nil, nil, err
		}
		r, err := roster.Open(cmd.Context(), engine, store)
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		return r, func() { _ = store.Close() }, nil
	}

	cmd.AddCommand(
		rosterListCmd(open),
		rosterAddCmd(open),
		rosterSetCmd(open),
		rosterShowCmd(open),
		rosterSelectCmd(open),
		rosterRemoveCmd(open),
		rosterClearCmd(open),
		rosterImportCmd(open),
		rosterExportCmd(open),
		rosterSummaryCmd(open),
	)
	return cmd
}

func rosterListCmd(open rosterOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the stored records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeStore, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "  %-36s %-24s %-10s %-10s %16s\n", "ID", "NOMBRE", "INICIO", "FIN", "ESCENARIO 2")
			for _, record := range r.Records() {
				marker := " "
				if record.ID == r.ActiveID() {
					marker = "*"
				}
				result, err := r.Result(record.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %-36s %-24s %-10s %-10s %16s\n", marker, record.ID, record.Name,
					record.StartDate, record.EndDate, output.FormatCurrency(result.Scenario2Total))
			}
			return nil
		},
	}
}

func rosterAddCmd(open rosterOpener) *cobra.Command {
	var rf recordFlags

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a record and make it active",
		Example: `  finiquito roster add --name "Ana López" --start 2020-01-01 --end 2024-01-01 --daily-salary 500`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeStore, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			// Validate the flags on a scratch copy so a bad flag adds nothing
			draft := domain.NewEmployeeRecord("", "draft", r.Rules(), time.Now())
			if err := rf.apply(cmd, &draft, r.Rules()); err != nil {
				return err
			}

			record, err := r.Add(cmd.Context())
			if err != nil {
				return err
			}
			record, err = r.Update(cmd.Context(), record.ID, func(rec *domain.EmployeeRecord) error {
				return rf.apply(cmd, rec, r.Rules())
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Agregado %s (%s)\n", record.Name, record.ID)
			return nil
		},
	}
	rf.bind(cmd)
	return cmd
}

func rosterSetCmd(open rosterOpener) *cobra.Command {
	var rf recordFlags

	cmd := &cobra.Command{
		Use:     "set [id]",
		Short:   "Change fields of a record (the active one by default)",
		Example: `  finiquito roster set --end 2024-12-31 --pending-bonuses 1500`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeStore, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			record, err := r.Update(cmd.Context(), targetID(r, args), func(rec *domain.EmployeeRecord) error {
				return rf.apply(cmd, rec, r.Rules())
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Actualizado %s (%s)\n", record.Name, record.ID)
			return nil
		},
	}
	rf.bind(cmd)
	return cmd
}

func rosterShowCmd(open rosterOpener) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Calculate and show a record (the active one by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			r, closeStore, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			id := targetID(r, args)
			record, err := r.Get(id)
			if err != nil {
				return err
			}
			result, err := r.Result(id)
			if err != nil {
				return err
			}
			data, err := formatter.Format(output.SingleReport(record, result, r.Rules().Metadata, time.Now()))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format")
	return cmd
}

func rosterSelectCmd(open rosterOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "select <id>",
		Short: "Make a record active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeStore, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := r.Select(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seleccionado %s\n", args[0])
			return nil
		},
	}
}

func rosterRemoveCmd(open rosterOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a record",
		Long: `Removes a record. Removing the last record leaves a fresh default one,
so the roster is never empty.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeStore, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			record, err := r.Get(args[0])
			if err != nil {
				return err
			}
			if err := r.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Eliminado %s (%s)\n", record.Name, record.ID)
			return nil
		},
	}
}

func rosterClearCmd(open rosterOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [id]",
		Short: "Zero the salary and settlement amounts of a record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeStore, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			record, err := r.Update(cmd.Context(), targetID(r, args), func(rec *domain.EmployeeRecord) error {
				rec.ClearAmounts()
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Montos de %s en cero\n", record.Name)
			return nil
		},
	}
}

func rosterImportCmd(open rosterOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "import <roster-file>",
		Short: "Add every record of a roster file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			r, closeStore, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			for _, record := range file.Records {
				if _, err := r.Insert(cmd.Context(), record); err != nil {
					return fmt.Errorf("failed to import %s: %w", record.ID, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Importados %d registros de %s\n", len(file.Records), args[0])
			return nil
		},
	}
}

func rosterExportCmd(open rosterOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the roster as a roster file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeStore, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			data, err := config.MarshalRoster(r.Records())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func rosterSummaryCmd(open rosterOpener) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Calculate every record and total the scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			r, closeStore, err := open(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			summary, err := r.Summary(cmd.Context())
			if err != nil {
				return err
			}
			data, err := formatter.Format(output.NewReport(summary, r.Rules().Metadata, time.Now()))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console-lite", "Output format")
	return cmd
}

// targetID is the id argument when given, otherwise the active record
func targetID(r *roster.Roster, args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return r.ActiveID()
}
