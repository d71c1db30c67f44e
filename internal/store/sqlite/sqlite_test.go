package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/rgehrsitz/finiquito/internal/store/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecord(id, name string) domain.EmployeeRecord {
	return domain.EmployeeRecord{
		ID:                 id,
		Name:               name,
		DailySalary:        decimal.RequireFromString("833.3333333333333333"),
		MonthlyPayrollCost: decimal.NewFromInt(33400),
		StartDate:          "2018-06-15",
		EndDate:            "2024-03-31",
		AguinaldoDays:      decimal.NewFromInt(30),
		VacationPremiumPkg: decimal.NewFromInt(50),
		MinimumWage:        decimal.RequireFromString("248.93"),
		VacationDaysTaken:  decimal.RequireFromString("10.5"),
		PendingBonuses:     decimal.NewFromInt(4500),
		Notes:              "cost mode",
	}
}

func TestStore_SaveAndGetRecord(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	want := sampleRecord("r1", "Luis")
	require.NoError(t, store.SaveRecord(ctx, want))

	got, err := store.GetRecord(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.StartDate, got.StartDate)
	assert.Equal(t, want.EndDate, got.EndDate)
	assert.Equal(t, want.Notes, got.Notes)
	assert.True(t, want.DailySalary.Equal(got.DailySalary), "decimals keep full precision")
	assert.True(t, want.MonthlyPayrollCost.Equal(got.MonthlyPayrollCost))
	assert.True(t, got.ManualSDI.IsZero())
	assert.True(t, want.AguinaldoDays.Equal(got.AguinaldoDays))
	assert.True(t, want.VacationPremiumPkg.Equal(got.VacationPremiumPkg))
	assert.True(t, want.MinimumWage.Equal(got.MinimumWage))
	assert.True(t, want.VacationDaysTaken.Equal(got.VacationDaysTaken))
	assert.True(t, want.PendingBonuses.Equal(got.PendingBonuses))
}

func TestStore_GetRecord_Missing(t *testing.T) {
	got, err := newStore(t).GetRecord(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_UpsertKeepsOrder(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.SaveRecord(ctx, sampleRecord(id, "name-"+id)))
	}

	updated := sampleRecord("c", "Renamed")
	updated.DailySalary = decimal.NewFromInt(700)
	require.NoError(t, store.SaveRecord(ctx, updated))

	records, err := store.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"c", "a", "b"}, []string{records[0].ID, records[1].ID, records[2].ID})
	assert.Equal(t, "Renamed", records[0].Name)
	assert.True(t, records[0].DailySalary.Equal(decimal.NewFromInt(700)))
}

func TestStore_DeleteRecord(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.SaveRecord(ctx, sampleRecord("a", "A")))
	require.NoError(t, store.SaveRecord(ctx, sampleRecord("b", "B")))
	require.NoError(t, store.DeleteRecord(ctx, "a"))
	require.NoError(t, store.DeleteRecord(ctx, "missing"))

	records, err := store.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "b", records[0].ID)
}

func TestStore_ActiveID(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	id, err := store.ActiveID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, store.SetActiveID(ctx, "a"))
	require.NoError(t, store.SetActiveID(ctx, "b"))

	id, err = store.ActiveID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", id)
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.SaveRecord(ctx, sampleRecord("a", "A")))
	require.NoError(t, store.SetActiveID(ctx, "a"))
	require.NoError(t, store.Reset(ctx))

	records, err := store.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	id, err := store.ActiveID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "roster.db")

	store, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveRecord(ctx, sampleRecord("a", "A")))
	require.NoError(t, store.Close())

	reopened, err := sqlite.New(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetRecord(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "A", got.Name)
}
