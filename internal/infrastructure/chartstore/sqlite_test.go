package chartstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testRows() []domain.SizeTableRow {
	return []domain.SizeTableRow{
		{Label: "S", WaistCM: 78, HipCM: 92, RowIndex: 0},
		{Label: "M", WaistCM: 84, HipCM: 98, RowIndex: 1},
		{Label: "L", WaistCM: 90, HipCM: 104, RowIndex: 2},
	}
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	err := store.SaveChart(ctx, "acme.example", domain.CategoryBottom, testRows(), []string{"S", "M", "L"})
	require.NoError(t, err)

	rows, offered, err := store.GetChart(ctx, "acme.example", domain.CategoryBottom)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "M", rows[1].Label)
	assert.Equal(t, 84.0, rows[1].WaistCM)
	assert.Equal(t, 98.0, rows[1].HipCM)
	assert.Equal(t, 1, rows[1].RowIndex)
	assert.Equal(t, []string{"S", "M", "L"}, offered)
}

func TestSQLiteStore_GetChart_NotFound(t *testing.T) {
	store := openTestStore(t)

	_, _, err := store.GetChart(context.Background(), "nobody.example", domain.CategoryBottom)
	assert.ErrorIs(t, err, domain.ErrChartNotFound)
}

func TestSQLiteStore_SaveChart_Replaces(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveChart(ctx, "acme.example", domain.CategoryBottom, testRows(), []string{"S", "M", "L"}))

	replacement := []domain.SizeTableRow{
		{Label: "M", WaistCM: 85, RowIndex: 0},
	}
	require.NoError(t, store.SaveChart(ctx, "acme.example", domain.CategoryBottom, replacement, []string{"M"}))

	rows, offered, err := store.GetChart(ctx, "acme.example", domain.CategoryBottom)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 85.0, rows[0].WaistCM)
	assert.Equal(t, []string{"M"}, offered)
}

func TestSQLiteStore_CategoriesAreSeparate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveChart(ctx, "acme.example", domain.CategoryBottom, testRows(), nil))

	_, _, err := store.GetChart(ctx, "acme.example", domain.CategoryTop)
	assert.ErrorIs(t, err, domain.ErrChartNotFound)
}

func TestSQLiteStore_Retailers(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	retailers, err := store.Retailers(ctx)
	require.NoError(t, err)
	assert.Empty(t, retailers)

	require.NoError(t, store.SaveChart(ctx, "bravo.example", domain.CategoryTop, testRows(), nil))
	require.NoError(t, store.SaveChart(ctx, "acme.example", domain.CategoryBottom, testRows(), nil))
	require.NoError(t, store.SaveChart(ctx, "acme.example", domain.CategoryTop, testRows(), nil))

	retailers, err = store.Retailers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"acme.example", "bravo.example"}, retailers)
}

func TestSeed(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, store))

	retailers, err := store.Retailers(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, retailers)

	rows, offered, err := store.GetChart(ctx, "stridewear.example", domain.CategoryShoes)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Greater(t, rows[0].FootLengthCM, 0.0)
	assert.NotEmpty(t, offered)

	t.Run("seeding is idempotent", func(t *testing.T) {
		require.NoError(t, store.SaveChart(ctx, "stridewear.example", domain.CategoryShoes, rows[:1], offered))
		require.NoError(t, Seed(ctx, store))

		after, _, err := store.GetChart(ctx, "stridewear.example", domain.CategoryShoes)
		require.NoError(t, err)
		assert.Len(t, after, 1, "re-seeding must not clobber manual edits")
	})
}
