package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger-sage/ledger-sage/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStorage_RoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	expenses := []model.Expense{
		{Date: time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), Category: "dining", Remarks: "izakaya", Amount: 5600},
		{Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Category: "grocery", Remarks: "supermarket", Amount: 3200},
		{Date: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), Category: "snack", Amount: 450},
	}
	require.NoError(t, s.SaveExpenses(ctx, expenses))

	count, err := s.CountExpenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	got, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Listing is ordered by date regardless of insertion order.
	assert.Equal(t, "grocery", got[0].Category)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), got[0].Date)
	assert.Equal(t, 3200.0, got[0].Amount)
	assert.Equal(t, "snack", got[1].Category)
	assert.Empty(t, got[1].Remarks)
	assert.Equal(t, "dining", got[2].Category)
}

func TestSQLiteStorage_SaveEmpty(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.SaveExpenses(context.Background(), nil))
	count, err := s.CountExpenses(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSQLiteStorage_Clear(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveExpenses(ctx, []model.Expense{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Category: "grocery", Amount: 100},
	}))
	require.NoError(t, s.ClearExpenses(ctx))

	got, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewSQLiteStorage_RequiresPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.Error(t, err)
}
