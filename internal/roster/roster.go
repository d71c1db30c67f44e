package roster

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/finiquito/internal/calculation"
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned for an unknown record id
var ErrNotFound = errors.New("record not found")

// Repository persists roster records and the active selection
type Repository interface {
	ListRecords(ctx context.Context) ([]domain.EmployeeRecord, error)
	SaveRecord(ctx context.Context, r domain.EmployeeRecord) error
	DeleteRecord(ctx context.Context, id string) error
	SetActiveID(ctx context.Context, id string) error
	ActiveID(ctx context.Context) (string, error)
}

// Roster is an ordered set of employment records with one active record.
// It is never empty. When a Repository is attached every change is written
// through to it.
type Roster struct {
	mu       sync.RWMutex
	records  []domain.EmployeeRecord
	activeID string

	engine *calculation.CalculationEngine
	repo   Repository

	now   func() time.Time
	newID func() string
}

// Option configures a Roster
type Option func(*Roster)

// WithClock sets the clock used for default dates
func WithClock(now func() time.Time) Option {
	return func(r *Roster) { r.now = now }
}

// WithIDGenerator sets the generator used for new record ids
func WithIDGenerator(newID func() string) Option {
	return func(r *Roster) { r.newID = newID }
}

// New creates an in-memory roster holding one default record
func New(engine *calculation.CalculationEngine, opts ...Option) *Roster {
	r := newRoster(engine, nil, opts)
	first := r.defaultRecord()
	r.records = []domain.EmployeeRecord{first}
	r.activeID = first.ID
	return r
}

// Open loads a roster from repo. An empty repository is seeded with one
// default record.
func Open(ctx context.Context, engine *calculation.CalculationEngine, repo Repository, opts ...Option) (*Roster, error) {
	r := newRoster(engine, repo, opts)

	records, err := repo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	if len(records) == 0 {
		first := r.defaultRecord()
		if err := repo.SaveRecord(ctx, first); err != nil {
			return nil, fmt.Errorf("failed to seed roster: %w", err)
		}
		records = []domain.EmployeeRecord{first}
	}
	r.records = records

	activeID, err := repo.ActiveID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active record: %w", err)
	}
	if r.indexOf(activeID) < 0 {
		activeID = records[0].ID
	}
	r.activeID = activeID
	return r, nil
}

func newRoster(engine *calculation.CalculationEngine, repo Repository, opts []Option) *Roster {
	r := &Roster{
		engine: engine,
		repo:   repo,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// defaultRecord builds the record added by Add. Callers hold the lock.
func (r *Roster) defaultRecord() domain.EmployeeRecord {
	name := fmt.Sprintf("Colaborador %d", len(r.records)+1)
	return domain.NewEmployeeRecord(r.newID(), name, r.engine.Rules, r.now())
}

// Rules returns the LFT rules the roster calculates with
func (r *Roster) Rules() domain.LFTRules {
	return r.engine.Rules
}

// Len returns the number of records
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Records returns a copy of all records in order
func (r *Roster) Records() []domain.EmployeeRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.EmployeeRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Get returns the record with the given id
func (r *Roster) Get(id string) (domain.EmployeeRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return domain.EmployeeRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.records[i], nil
}

// ActiveID returns the id of the selected record
func (r *Roster) ActiveID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeID
}

// Active returns the selected record
func (r *Roster) Active() domain.EmployeeRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.records[r.indexOf(r.activeID)]
}

// ActiveResult calculates the selected record
func (r *Roster) ActiveResult() domain.CalculationResult {
	return r.engine.Calculate(r.Active())
}

// Result calculates the record with the given id
func (r *Roster) Result(id string) (domain.CalculationResult, error) {
	record, err := r.Get(id)
	if err != nil {
		return domain.CalculationResult{}, err
	}
	return r.engine.Calculate(record), nil
}

// Add appends a default record and selects it
func (r *Roster) Add(ctx context.Context) (domain.EmployeeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := r.defaultRecord()
	if err := r.save(ctx, record); err != nil {
		return domain.EmployeeRecord{}, err
	}
	r.records = append(r.records, record)
	if err := r.setActive(ctx, record.ID); err != nil {
		return domain.EmployeeRecord{}, err
	}
	return record, nil
}

// Insert appends an existing record, keeping its id if it has one
func (r *Roster) Insert(ctx context.Context, record domain.EmployeeRecord) (domain.EmployeeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = r.newID()
	}
	if r.indexOf(record.ID) >= 0 {
		return domain.EmployeeRecord{}, fmt.Errorf("record %s already exists", record.ID)
	}
	if err := r.save(ctx, record); err != nil {
		return domain.EmployeeRecord{}, err
	}
	r.records = append(r.records, record)
	return record, nil
}

// Select makes the record with the given id active
func (r *Roster) Select(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(id) < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.setActive(ctx, id)
}

// Update applies fn to a copy of the record and stores it if fn succeeds
func (r *Roster) Update(ctx context.Context, id string, fn func(*domain.EmployeeRecord) error) (domain.EmployeeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.EmployeeRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	record := r.records[i]
	if err := fn(&record); err != nil {
		return domain.EmployeeRecord{}, err
	}
	record.ID = id
	if err := r.save(ctx, record); err != nil {
		return domain.EmployeeRecord{}, err
	}
	r.records[i] = record
	return record, nil
}

// Remove deletes a record. Removing the only record replaces it with a
// fresh default one. Removing the active record selects the last remaining.
func (r *Roster) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if r.repo != nil {
		if err := r.repo.DeleteRecord(ctx, id); err != nil {
			return fmt.Errorf("failed to delete record %s: %w", id, err)
		}
	}
	r.records = append(r.records[:i], r.records[i+1:]...)

	if len(r.records) == 0 {
		fresh := r.defaultRecord()
		if err := r.save(ctx, fresh); err != nil {
			return err
		}
		r.records = []domain.EmployeeRecord{fresh}
		return r.setActive(ctx, fresh.ID)
	}

	if r.activeID == id {
		return r.setActive(ctx, r.records[len(r.records)-1].ID)
	}
	return nil
}

// ClearActive zeroes the salary and settlement amounts of the active record
func (r *Roster) ClearActive(ctx context.Context) (domain.EmployeeRecord, error) {
	return r.Update(ctx, r.ActiveID(), func(record *domain.EmployeeRecord) error {
		record.ClearAmounts()
		return nil
	})
}

// Entry pairs a record with its calculation
type Entry struct {
	Record domain.EmployeeRecord   `json:"record" yaml:"record"`
	Result domain.CalculationResult `json:"result" yaml:"result"`
}

// Summary aggregates the scenario totals across the roster
type Summary struct {
	Entries                     []Entry         `json:"entries" yaml:"entries"`
	Scenario1Total              decimal.Decimal `json:"scenario1_total" yaml:"scenario1_total"`
	Scenario2TotalWithout20Days decimal.Decimal `json:"scenario2_total_without_20_days" yaml:"scenario2_total_without_20_days"`
	Scenario2Total              decimal.Decimal `json:"scenario2_total" yaml:"scenario2_total"`
	Scenario3Total              decimal.Decimal `json:"scenario3_total" yaml:"scenario3_total"`
}

// Summary calculates every record and totals the scenarios
func (r *Roster) Summary(ctx context.Context) (Summary, error) {
	records := r.Records()

	results, err := r.engine.CalculateAll(ctx, records)
	if err != nil {
		return Summary{}, err
	}

	return NewSummary(records, results), nil
}

// NewSummary pairs records with their results, in order, and totals the
// scenarios
func NewSummary(records []domain.EmployeeRecord, results []domain.CalculationResult) Summary {
	summary := Summary{Entries: make([]Entry, len(records))}
	for i, result := range results {
		summary.Entries[i] = Entry{Record: records[i], Result: result}
		summary.Scenario1Total = summary.Scenario1Total.Add(result.Scenario1Total)
		summary.Scenario2TotalWithout20Days = summary.Scenario2TotalWithout20Days.Add(result.Scenario2TotalWithout20Days)
		summary.Scenario2Total = summary.Scenario2Total.Add(result.Scenario2Total)
		summary.Scenario3Total = summary.Scenario3Total.Add(result.Scenario3Total)
	}
	return summary
}

func (r *Roster) indexOf(id string) int {
	for i := range r.records {
		if r.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Roster) save(ctx context.Context, record domain.EmployeeRecord) error {
	if r.repo == nil {
		return nil
	}
	if err := r.repo.SaveRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to save record %s: %w", record.ID, err)
	}
	return nil
}

func (r *Roster) setActive(ctx context.Context, id string) error {
	if r.repo != nil {
		if err := r.repo.SetActiveID(ctx, id); err != nil {
			return fmt.Errorf("failed to store active record: %w", err)
		}
	}
	r.activeID = id
	return nil
}
