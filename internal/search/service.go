// Package search holds the state of the product search widget: when to hit
// the backend, which in-flight response may still be applied, and which items
// are visible after exclusion filtering. All mutation happens on the UI
// goroutine; the service itself does no I/O.
package search

import (
	"time"

	"farmaterm/internal/domain"
)

// Default tuning, matching the sale/purchase search widget
const (
	defaultMinQueryLength = 2
	defaultPageSize       = 20
	defaultStaleTTL       = time.Second
)

// Service tracks one search widget's query state
type Service struct {
	opts Options

	query      string
	generation uint64 // generation of the most recent fetch issued
	loading    bool
	items      []domain.Product // last applied result set, before exclusion

	cache    map[string]cacheEntry
	excluded map[int]bool

	now func() time.Time // injectable clock for tests
}

// NewService creates a search service with the given tuning
func NewService(opts Options) *Service {
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = defaultMinQueryLength
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.StaleTTL <= 0 {
		opts.StaleTTL = defaultStaleTTL
	}
	return &Service{
		opts:     opts,
		cache:    make(map[string]cacheEntry),
		excluded: make(map[int]bool),
		now:      time.Now,
	}
}

// SetQuery records the current text value and decides whether a backend
// lookup is needed. A Fetch is returned only when the query is long enough
// and no fresh cached result exists.
func (s *Service) SetQuery(query string) (*Fetch, bool) {
	s.query = query

	if len(query) < s.opts.MinQueryLength {
		// Below the trigger length the result set is forced empty with no
		// network call
		s.items = nil
		s.loading = false
		return nil, false
	}

	if entry, ok := s.cache[query]; ok && s.now().Sub(entry.fetchedAt) < s.opts.StaleTTL {
		s.items = entry.items
		s.loading = false
		return nil, false
	}

	s.generation++
	s.loading = true
	return &Fetch{
		Query:      query,
		Generation: s.generation,
		Page:       1,
		PageSize:   s.opts.PageSize,
	}, true
}

// Apply feeds a completed lookup back in. Results from a superseded fetch
// (older generation, or a query the user has since changed) are discarded;
// only the latest in-flight request wins.
func (s *Service) Apply(res Result) {
	if res.Generation != s.generation || res.Query != s.query {
		return
	}
	s.loading = false

	if res.Err != nil {
		// Errors degrade to an empty, loading-complete result set; the user
		// retypes to re-trigger
		s.items = nil
		return
	}

	s.items = res.Items
	s.cache[res.Query] = cacheEntry{items: res.Items, fetchedAt: s.now()}
}

// Visible returns the current result set with excluded items filtered out,
// preserving backend order.
func (s *Service) Visible() []domain.Product {
	if len(s.items) == 0 {
		return nil
	}
	visible := make([]domain.Product, 0, len(s.items))
	for _, item := range s.items {
		if !s.excluded[item.ID] {
			visible = append(visible, item)
		}
	}
	return visible
}

// State derives the display state for the result list
func (s *Service) State() State {
	switch {
	case len(s.query) < s.opts.MinQueryLength:
		return StateTooShort
	case s.loading:
		return StateLoading
	case len(s.Visible()) == 0:
		return StateEmpty
	default:
		return StateReady
	}
}

// Query returns the current query text
func (s *Service) Query() string {
	return s.query
}

// Loading reports whether a lookup is in flight
func (s *Service) Loading() bool {
	return s.loading
}

// SetExcluded replaces the exclusion set with the given product IDs
// (items already on the order must not reappear in results)
func (s *Service) SetExcluded(ids []int) {
	s.excluded = make(map[int]bool, len(ids))
	for _, id := range ids {
		s.excluded[id] = true
	}
}

// Clear resets the query and result set, e.g. after a selection or Escape.
// The cache survives so an identical query within the staleness window
// renders without a refetch.
func (s *Service) Clear() {
	s.query = ""
	s.items = nil
	s.loading = false
	s.generation++ // any in-flight response is now stale
}

// AutoAccept returns the product Enter should commit: the single visible
// result, or in scanner mode the first of any visible results.
func (s *Service) AutoAccept(scannerMode bool) (*domain.Product, bool) {
	visible := s.Visible()
	if len(visible) == 1 || (scannerMode && len(visible) > 0) {
		return &visible[0], true
	}
	return nil, false
}
