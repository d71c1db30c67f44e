/*
Package sqlite persists the employee roster in SQLite.

TABLES:
  employee_records: one row per employment relationship. Money and day
                    amounts are stored as decimal strings so they survive
                    the round trip without float rounding.
  roster_state:     key/value pairs, currently the active record id.

ORDERING:
  Records are listed in insertion order (rowid). Upserts keep the rowid,
  so editing a record does not move it.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety and a single connection, which also
  keeps ":memory:" databases shared across calls.

USAGE:
  store, err := sqlite.New("./finiquito.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  r, err := roster.Open(ctx, engine, store)
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
)

const activeIDKey = "active_id"

// Store implements roster persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employee_records (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		daily_salary TEXT NOT NULL,
		monthly_payroll_cost TEXT NOT NULL,
		manual_sdi TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		aguinaldo_days TEXT NOT NULL,
		vacation_premium_pkg TEXT NOT NULL,
		minimum_wage TEXT NOT NULL,
		vacation_days_taken TEXT NOT NULL,
		pending_bonuses TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS roster_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEE RECORDS
// =============================================================================

const recordColumns = `id, name, daily_salary, monthly_payroll_cost, manual_sdi,
	start_date, end_date, aguinaldo_days, vacation_premium_pkg, minimum_wage,
	vacation_days_taken, pending_bonuses, notes`

// SaveRecord inserts or updates an employee record.
func (s *Store) SaveRecord(ctx context.Context, r domain.EmployeeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	query := `
		INSERT INTO employee_records (` + recordColumns + `, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			daily_salary = excluded.daily_salary,
			monthly_payroll_cost = excluded.monthly_payroll_cost,
			manual_sdi = excluded.manual_sdi,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			aguinaldo_days = excluded.aguinaldo_days,
			vacation_premium_pkg = excluded.vacation_premium_pkg,
			minimum_wage = excluded.minimum_wage,
			vacation_days_taken = excluded.vacation_days_taken,
			pending_bonuses = excluded.pending_bonuses,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.Name,
		r.DailySalary.String(), r.MonthlyPayrollCost.String(), r.ManualSDI.String(),
		r.StartDate, r.EndDate,
		r.AguinaldoDays.String(), r.VacationPremiumPkg.String(), r.MinimumWage.String(),
		r.VacationDaysTaken.String(), r.PendingBonuses.String(),
		r.Notes,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save record %s: %w", r.ID, err)
	}
	return nil
}

// GetRecord retrieves a record by ID. It returns nil, nil when the record
// does not exist.
func (s *Store) GetRecord(ctx context.Context, id string) (*domain.EmployeeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM employee_records WHERE id = ?",
		id,
	)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRecords returns all records in insertion order.
func (s *Store) ListRecords(ctx context.Context) ([]domain.EmployeeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM employee_records ORDER BY rowid",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.EmployeeRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteRecord removes a record. Deleting a missing record is not an error.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM employee_records WHERE id = ?", id)
	return err
}

// =============================================================================
// ROSTER STATE
// =============================================================================

// SetActiveID remembers the selected record.
func (s *Store) SetActiveID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO roster_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, activeIDKey, id)
	return err
}

// ActiveID returns the remembered selection, or "" if none was stored.
func (s *Store) ActiveID(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM roster_state WHERE key = ?", activeIDKey,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return id, err
}

// Reset clears all data (for testing).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM employee_records;
		DELETE FROM roster_state;
	`)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (domain.EmployeeRecord, error) {
	var r domain.EmployeeRecord
	var dailySalary, payrollCost, manualSDI, aguinaldo, premium, minWage, taken, bonuses string

	if err := row.Scan(&r.ID, &r.Name, &dailySalary, &payrollCost, &manualSDI,
		&r.StartDate, &r.EndDate, &aguinaldo, &premium, &minWage,
		&taken, &bonuses, &r.Notes); err != nil {
		return r, err
	}

	amounts := []struct {
		column string
		raw    string
		dst    *decimal.Decimal
	}{
		{"daily_salary", dailySalary, &r.DailySalary},
		{"monthly_payroll_cost", payrollCost, &r.MonthlyPayrollCost},
		{"manual_sdi", manualSDI, &r.ManualSDI},
		{"aguinaldo_days", aguinaldo, &r.AguinaldoDays},
		{"vacation_premium_pkg", premium, &r.VacationPremiumPkg},
		{"minimum_wage", minWage, &r.MinimumWage},
		{"vacation_days_taken", taken, &r.VacationDaysTaken},
		{"pending_bonuses", bonuses, &r.PendingBonuses},
	}
	for _, a := range amounts {
		v, err := decimal.NewFromString(a.raw)
		if err != nil {
			return r, fmt.Errorf("record %s: invalid %s %q: %w", r.ID, a.column, a.raw, err)
		}
		*a.dst = v
	}
	return r, nil
}
