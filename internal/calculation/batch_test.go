package calculation

import (
	"context"
	"fmt"
	"testing"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCalculateAll_PreservesOrder(t *testing.T) {
	ce := NewCalculationEngine()

	records := make([]domain.EmployeeRecord, 0, 40)
	for i := 0; i < 40; i++ {
		for _, r := range invariantRecords() {
			r.ID = fmt.Sprintf("%s-%d", r.ID, i)
			records = append(records, r)
		}
	}

	results, err := ce.CalculateAll(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, results, len(records))

	for i, r := range records {
		want := ce.Calculate(r)
		assert.True(t, want.Scenario3Total.Equal(results[i].Scenario3Total), "record %s", r.ID)
		assert.Equal(t, want.AntiquityDaysTotal, results[i].AntiquityDaysTotal, "record %s", r.ID)
	}
}

func TestCalculateAll_Empty(t *testing.T) {
	results, err := NewCalculationEngine().CalculateAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCalculateAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewCalculationEngine().CalculateAll(ctx, invariantRecords())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}
