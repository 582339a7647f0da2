package states

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
)

const DEFAULT_LIST_CONCURRENCY = 8

// ServiceOptions holds the dependencies of a Service
type ServiceOptions struct {
	Reference       *ReferenceStore // Required reference dataset
	Overlay         OverlayStore    // Required fun fact store
	Picker          Picker          // Optional random source, defaults to DefaultPicker
	ListConcurrency int             // Optional bound on concurrent overlay lookups while listing
}

// Service merges reference records with fun fact overlays and applies fun fact mutations
type Service struct {
	reference       *ReferenceStore
	overlay         OverlayStore
	picker          Picker
	listConcurrency int
}

// NewService creates a new states service
func NewService(opts *ServiceOptions) (*Service, error) {
	if opts == nil {
		return nil, fmt.Errorf("service options cannot be nil")
	}
	if opts.Reference == nil {
		return nil, fmt.Errorf("reference store cannot be nil")
	}
	if opts.Overlay == nil {
		return nil, fmt.Errorf("overlay store cannot be nil")
	}

	picker := opts.Picker
	if picker == nil {
		picker = DefaultPicker
	}

	concurrency := opts.ListConcurrency
	if concurrency <= 0 {
		concurrency = DEFAULT_LIST_CONCURRENCY
	}

	return &Service{
		reference:       opts.Reference,
		overlay:         opts.Overlay,
		picker:          picker,
		listConcurrency: concurrency,
	}, nil
}

/** ---- VALIDATION ---- */

// Validate normalizes a raw state code and checks it against the reference dataset
func (s *Service) Validate(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !s.reference.Known(code) {
		return "", NewError(InvalidState, "No states found")
	}
	return code, nil
}

/** ---- RESOLVER ---- */

// Record returns the reference record for a validated code
func (s *Service) Record(ctx context.Context, code string) (StateRecord, error) {
	record, ok, err := s.reference.ByCode(ctx, code)
	if err != nil {
		return StateRecord{}, err
	}
	if !ok {
		return StateRecord{}, NewError(NotFound, "State not found")
	}
	return record, nil
}

// Resolve returns the merged view of a single state
func (s *Service) Resolve(ctx context.Context, code string) (MergedStateView, error) {
	record, err := s.Record(ctx, code)
	if err != nil {
		return MergedStateView{}, err
	}

	facts, ok, err := s.overlay.GetFacts(ctx, record.Code)
	if err != nil {
		return MergedStateView{}, WrapStoreError("failed to get fun facts", err)
	}

	view := MergedStateView{StateRecord: record}
	if ok && len(facts) > 0 {
		view.Facts = facts
	}
	return view, nil
}

// List returns the merged view of every state passing the filter, in dataset order.
// Fun facts are looked up concurrently; a failed lookup leaves that state without facts.
func (s *Service) List(ctx context.Context, filter ContigFilter) ([]MergedStateView, error) {
	records, err := s.reference.All(ctx)
	if err != nil {
		return nil, err
	}

	// Filter before enrichment so excluded states cost no lookups
	views := make([]MergedStateView, 0, len(records))
	for _, record := range records {
		if filter.Keep(strings.ToUpper(record.Code)) {
			views = append(views, MergedStateView{StateRecord: record})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.listConcurrency)

	for i := range views {
		g.Go(func() error {
			facts, ok, err := s.overlay.GetFacts(gctx, views[i].Code)
			if err != nil {
				log.Printf("[STATES]: Failed to get fun facts for %s, listing without them: %v", views[i].Code, err)
				return nil
			}
			if ok && len(facts) > 0 {
				views[i].Facts = facts
			}
			return nil
		})
	}

	// Lookups never fail the group
	_ = g.Wait()

	return views, nil
}

/** ---- MUTATOR ---- */

// RandomFact returns one of the state's fun facts chosen uniformly at random
func (s *Service) RandomFact(ctx context.Context, code string) (string, error) {
	facts, ok, err := s.overlay.GetFacts(ctx, code)
	if err != nil {
		return "", WrapStoreError("failed to get fun facts", err)
	}

	fact, picked := "", false
	if ok {
		fact, picked = PickFact(s.picker, facts)
	}
	if !picked {
		return "", NewError(NotFound, fmt.Sprintf("No Fun Facts found for %s", s.displayName(ctx, code)))
	}

	return fact, nil
}

// AddFacts appends the facts in a raw JSON payload to the state's overlay, creating it if needed
func (s *Service) AddFacts(ctx context.Context, code string, raw json.RawMessage) (*FunFactOverlay, error) {
	facts, err := ParseFacts(raw)
	if err != nil {
		return nil, err
	}

	// The overlay row is created explicitly before the first append
	if _, err := s.overlay.GetOrCreate(ctx, code); err != nil {
		return nil, WrapStoreError("failed to create fun facts", err)
	}

	overlay, err := s.overlay.AppendFacts(ctx, code, facts)
	if errors.Is(err, ErrEmptyFacts) {
		return nil, NewError(InvalidInput, "State fun facts required")
	}
	if err != nil {
		return nil, WrapStoreError("failed to add fun facts", err)
	}
	return overlay, nil
}

// UpdateFact replaces the fact at a one-based index
func (s *Service) UpdateFact(ctx context.Context, code string, index *int, value string) (*FunFactOverlay, error) {
	if index == nil {
		return nil, NewError(InvalidInput, "State fun fact index value required")
	}
	if value == "" {
		return nil, NewError(InvalidInput, "State fun fact value required")
	}

	overlay, err := s.overlay.ReplaceFactAt(ctx, code, *index-1, value)
	if err != nil {
		return nil, s.indexError(ctx, code, err, "failed to update fun fact")
	}
	return overlay, nil
}

// DeleteFact removes the fact at a one-based index and compacts the list
func (s *Service) DeleteFact(ctx context.Context, code string, index *int) (*FunFactOverlay, error) {
	if index == nil {
		return nil, NewError(InvalidInput, "State fun fact index value required")
	}

	overlay, err := s.overlay.RemoveFactAt(ctx, code, *index-1)
	if err != nil {
		return nil, s.indexError(ctx, code, err, "failed to delete fun fact")
	}
	return overlay, nil
}

/** ---- HELPERS ---- */

// ParseFacts validates a fun fact payload. It must be a non-empty JSON array of strings
func ParseFacts(raw json.RawMessage) ([]string, error) {
	required := NewError(InvalidInput, "State fun facts required")
	notArray := NewError(InvalidInput, "State fun facts value must be an array")

	if len(raw) == 0 {
		return nil, required
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, notArray
	}

	switch v := value.(type) {
	case nil:
		return nil, required
	case string:
		if v == "" {
			return nil, required
		}
		return nil, notArray
	case bool:
		if !v {
			return nil, required
		}
		return nil, notArray
	case float64:
		if v == 0 {
			return nil, required
		}
		return nil, notArray
	case []any:
		if len(v) == 0 {
			return nil, required
		}

		facts := make([]string, 0, len(v))
		for _, item := range v {
			fact, ok := item.(string)
			if !ok {
				return nil, NewError(InvalidInput, "State fun facts must be strings")
			}
			facts = append(facts, fact)
		}
		return facts, nil
	default:
		return nil, notArray
	}
}

// indexError converts an overlay store error from an indexed mutation into a classified error
func (s *Service) indexError(ctx context.Context, code string, err error, message string) error {
	switch {
	case errors.Is(err, ErrNoFacts):
		return NewError(NotFound, fmt.Sprintf("No Fun Facts found for %s", s.displayName(ctx, code)))
	case errors.Is(err, ErrIndexOutOfRange):
		return NewError(IndexOutOfRange, fmt.Sprintf("No Fun Fact found at that index for %s", s.displayName(ctx, code)))
	default:
		return WrapStoreError(message, err)
	}
}

// displayName returns the full state name for messages, falling back to the code
func (s *Service) displayName(ctx context.Context, code string) string {
	record, ok, err := s.reference.ByCode(ctx, code)
	if err != nil || !ok {
		return code
	}
	return record.State
}
