package search

import (
	"time"

	"farmaterm/internal/domain"
)

// State is the mutually exclusive display state of the search widget,
// derived from query length, loading flag and result-set length
type State int

const (
	StateTooShort State = iota // query below the minimum length, no request made
	StateLoading               // request in flight
	StateEmpty                 // request completed with no visible results
	StateReady                 // visible results available
)

// Options tunes the service; zero values fall back to the original widget's
// constants
type Options struct {
	MinQueryLength int
	PageSize       int
	StaleTTL       time.Duration
}

// Fetch describes a lookup the caller should execute. The generation ties the
// eventual result back to the query that requested it.
type Fetch struct {
	Query      string
	Generation uint64
	Page       int
	PageSize   int
}

// Result carries a completed lookup back into the service
type Result struct {
	Query      string
	Generation uint64
	Items      []domain.Product
	Err        error
}

// cacheEntry keeps results for a query string fresh for a short window so
// rapid repeated renders of the same query do not refetch
type cacheEntry struct {
	items     []domain.Product
	fetchedAt time.Time
}
