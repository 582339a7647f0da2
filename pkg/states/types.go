package states

import (
	"context"
	"time"
)

// StateRecord is a single entry of the reference dataset
type StateRecord struct {
	State           string `json:"state"`            // Full state name
	Slug            string `json:"slug"`             // URL friendly name
	Code            string `json:"code"`             // Two letter postal code
	Nickname        string `json:"nickname"`         // State nickname
	Website         string `json:"website"`          // Official state website
	AdmissionDate   string `json:"admission_date"`   // Date of admission to the union (YYYY-MM-DD)
	AdmissionNumber int    `json:"admission_number"` // Order of admission
	CapitalCity     string `json:"capital_city"`     // Capital city name
	Population      int    `json:"population"`       // Population count
	PopulationRank  int    `json:"population_rank"`  // Rank by population
}

// FunFactOverlay is the mutable list of fun facts stored for a state
type FunFactOverlay struct {
	StateCode string    `json:"stateCode"`
	Facts     []string  `json:"funfacts"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MergedStateView is a reference record with its fun facts attached, if any
type MergedStateView struct {
	StateRecord
	Facts []string `json:"funfacts,omitempty"`
}

// Source loads the full reference dataset. Implementations re-read their backing data on every call
type Source interface {
	Load(ctx context.Context) ([]StateRecord, error)
}

// OverlayStore defines the persistence operations for fun fact overlays.
// Indexes are zero-based; callers translate from the one-based API form.
type OverlayStore interface {
	GetFacts(ctx context.Context, code string) ([]string, bool, error)
	GetOrCreate(ctx context.Context, code string) (*FunFactOverlay, error)
	AppendFacts(ctx context.Context, code string, facts []string) (*FunFactOverlay, error)
	ReplaceFactAt(ctx context.Context, code string, index int, value string) (*FunFactOverlay, error)
	RemoveFactAt(ctx context.Context, code string, index int) (*FunFactOverlay, error)
}

// ContigFilter selects which states the bulk listing returns
type ContigFilter int

const (
	ContigAll     ContigFilter = iota // Every state
	ContigOnly                        // The contiguous 48
	NonContigOnly                     // Alaska and Hawaii
)

// nonContiguous holds the codes of states outside the contiguous 48
var nonContiguous = map[string]bool{
	"AK": true,
	"HI": true,
}

// IsContiguous reports whether the state code belongs to the contiguous 48
func IsContiguous(code string) bool {
	return !nonContiguous[code]
}

// Keep reports whether a state with the given code passes the filter
func (f ContigFilter) Keep(code string) bool {
	switch f {
	case ContigOnly:
		return IsContiguous(code)
	case NonContigOnly:
		return !IsContiguous(code)
	default:
		return true
	}
}
