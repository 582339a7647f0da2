package states

import (
	"context"
	"fmt"
	"strings"
)

// ReferenceStore is a read-only view over the reference dataset.
// The set of known codes is captured when the store is created; records are re-read from the source on every call.
type ReferenceStore struct {
	source Source
	codes  map[string]bool
}

// NewReferenceStore loads the source once to capture the known code set
func NewReferenceStore(ctx context.Context, source Source) (*ReferenceStore, error) {
	if source == nil {
		return nil, fmt.Errorf("reference source cannot be nil")
	}

	records, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference dataset: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reference dataset is empty")
	}

	codes := make(map[string]bool, len(records))
	for _, record := range records {
		code := strings.ToUpper(record.Code)
		if len(code) != 2 {
			return nil, fmt.Errorf("reference record %q has invalid code %q", record.State, record.Code)
		}
		if codes[code] {
			return nil, fmt.Errorf("reference dataset has duplicate code %q", code)
		}
		codes[code] = true
	}

	return &ReferenceStore{source: source, codes: codes}, nil
}

// Known reports whether an uppercase code belongs to the dataset
func (r *ReferenceStore) Known(code string) bool {
	return r.codes[code]
}

// Count returns the number of known codes
func (r *ReferenceStore) Count() int {
	return len(r.codes)
}

// All returns every record in dataset order
func (r *ReferenceStore) All(ctx context.Context) ([]StateRecord, error) {
	records, err := r.source.Load(ctx)
	if err != nil {
		return nil, WrapStoreError("failed to read reference dataset", err)
	}
	return records, nil
}

// ByCode returns the record for a code, matching case-insensitively
func (r *ReferenceStore) ByCode(ctx context.Context, code string) (StateRecord, bool, error) {
	records, err := r.All(ctx)
	if err != nil {
		return StateRecord{}, false, err
	}

	code = strings.ToUpper(code)
	for _, record := range records {
		if strings.ToUpper(record.Code) == code {
			return record, true, nil
		}
	}
	return StateRecord{}, false, nil
}
