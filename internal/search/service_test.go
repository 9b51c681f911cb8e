package search

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"farmaterm/internal/domain"
)

func product(id int, name string) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      name,
		SalePrice: decimal.NewFromInt(10),
		Inventory: &domain.Inventory{Quantity: 5},
	}
}

func TestShortQueryNeverFetches(t *testing.T) {
	t.Parallel()
	s := NewService(Options{})

	fetch, ok := s.SetQuery("a")
	require.False(t, ok)
	require.Nil(t, fetch)
	require.Equal(t, StateTooShort, s.State())
	require.Empty(t, s.Visible())
}

func TestShortQueryClearsPreviousResults(t *testing.T) {
	t.Parallel()
	s := NewService(Options{})

	fetch, ok := s.SetQuery("asp")
	require.True(t, ok)
	s.Apply(Result{Query: "asp", Generation: fetch.Generation, Items: []domain.Product{product(1, "Aspirina")}})
	require.Len(t, s.Visible(), 1)

	_, ok = s.SetQuery("a")
	require.False(t, ok)
	require.Empty(t, s.Visible())
}

func TestFetchParameters(t *testing.T) {
	t.Parallel()
	s := NewService(Options{MinQueryLength: 2, PageSize: 20})

	fetch, ok := s.SetQuery("pa")
	require.True(t, ok)
	require.Equal(t, "pa", fetch.Query)
	require.Equal(t, 1, fetch.Page)
	require.Equal(t, 20, fetch.PageSize)
	require.Equal(t, StateLoading, s.State())
}

func TestLastQueryWins(t *testing.T) {
	t.Parallel()
	s := NewService(Options{})

	first, _ := s.SetQuery("asp")
	second, _ := s.SetQuery("aspi")
	require.Greater(t, second.Generation, first.Generation)

	// The superseded response lands late and is discarded
	s.Apply(Result{Query: "asp", Generation: first.Generation, Items: []domain.Product{product(1, "Aspirina")}})
	require.Equal(t, StateLoading, s.State())
	require.Empty(t, s.Visible())

	s.Apply(Result{Query: "aspi", Generation: second.Generation, Items: []domain.Product{product(2, "Aspirina Forte")}})
	require.Equal(t, StateReady, s.State())
	require.Len(t, s.Visible(), 1)
	require.Equal(t, 2, s.Visible()[0].ID)
}

func TestFreshCacheSkipsFetch(t *testing.T) {
	t.Parallel()
	s := NewService(Options{StaleTTL: time.Second})
	now := time.Now()
	s.now = func() time.Time { return now }

	fetch, _ := s.SetQuery("asp")
	s.Apply(Result{Query: "asp", Generation: fetch.Generation, Items: []domain.Product{product(1, "Aspirina")}})

	s.SetQuery("aspi")

	// Back to the cached query within the staleness window
	now = now.Add(500 * time.Millisecond)
	refetch, ok := s.SetQuery("asp")
	require.False(t, ok)
	require.Nil(t, refetch)
	require.Equal(t, StateReady, s.State())
	require.Len(t, s.Visible(), 1)
}

func TestStaleCacheRefetches(t *testing.T) {
	t.Parallel()
	s := NewService(Options{StaleTTL: time.Second})
	now := time.Now()
	s.now = func() time.Time { return now }

	fetch, _ := s.SetQuery("asp")
	s.Apply(Result{Query: "asp", Generation: fetch.Generation, Items: []domain.Product{product(1, "Aspirina")}})

	s.SetQuery("aspi")

	now = now.Add(2 * time.Second)
	refetch, ok := s.SetQuery("asp")
	require.True(t, ok)
	require.NotNil(t, refetch)
}

func TestErrorYieldsSilentEmptyState(t *testing.T) {
	t.Parallel()
	s := NewService(Options{})

	fetch, _ := s.SetQuery("asp")
	s.Apply(Result{Query: "asp", Generation: fetch.Generation, Err: errors.New("boom")})

	require.Equal(t, StateEmpty, s.State())
	require.False(t, s.Loading())
	require.Empty(t, s.Visible())
}

func TestExcludedItemsNeverVisible(t *testing.T) {
	t.Parallel()
	s := NewService(Options{})
	s.SetExcluded([]int{1, 3})

	fetch, _ := s.SetQuery("asp")
	s.Apply(Result{Query: "asp", Generation: fetch.Generation, Items: []domain.Product{
		product(1, "Aspirina"),
		product(2, "Aspirina Forte"),
		product(3, "Aspirina Infantil"),
	}})

	visible := s.Visible()
	require.Len(t, visible, 1)
	require.Equal(t, 2, visible[0].ID)
}

func TestAllResultsExcludedIsEmptyState(t *testing.T) {
	t.Parallel()
	s := NewService(Options{})
	s.SetExcluded([]int{1})

	fetch, _ := s.SetQuery("asp")
	s.Apply(Result{Query: "asp", Generation: fetch.Generation, Items: []domain.Product{product(1, "Aspirina")}})

	require.Equal(t, StateEmpty, s.State())
}

func TestClearInvalidatesInFlightFetch(t *testing.T) {
	t.Parallel()
	s := NewService(Options{})

	fetch, _ := s.SetQuery("asp")
	s.Clear()

	s.Apply(Result{Query: "asp", Generation: fetch.Generation, Items: []domain.Product{product(1, "Aspirina")}})
	require.Empty(t, s.Visible())
	require.Equal(t, "", s.Query())
}

func TestAutoAccept(t *testing.T) {
	t.Parallel()
	s := NewService(Options{})

	fetch, _ := s.SetQuery("asp")
	s.Apply(Result{Query: "asp", Generation: fetch.Generation, Items: []domain.Product{product(1, "Aspirina")}})

	// Single visible result accepts without scanner mode
	p, ok := s.AutoAccept(false)
	require.True(t, ok)
	require.Equal(t, 1, p.ID)

	fetch, _ = s.SetQuery("aspir")
	s.Apply(Result{Query: "aspir", Generation: fetch.Generation, Items: []domain.Product{
		product(1, "Aspirina"),
		product(2, "Aspirina Forte"),
	}})

	// Two results: only scanner mode accepts, taking the first
	_, ok = s.AutoAccept(false)
	require.False(t, ok)

	p, ok = s.AutoAccept(true)
	require.True(t, ok)
	require.Equal(t, 1, p.ID)
}
