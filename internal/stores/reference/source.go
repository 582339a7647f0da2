// Package reference provides the sources of the read-only states dataset.
// Every source re-reads its backing data on each Load.
package reference

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethanbaker/states/pkg/states"
)

//go:embed data/statesData.json
var embeddedDataset []byte

// Decode parses a JSON array of state records
func Decode(data []byte) ([]states.StateRecord, error) {
	var records []states.StateRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse states dataset: %w", err)
	}
	return records, nil
}

// EmbeddedSource serves the dataset compiled into the binary
type EmbeddedSource struct{}

// NewEmbeddedSource creates a source over the embedded dataset
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

// Load decodes a fresh copy of the embedded dataset
func (EmbeddedSource) Load(ctx context.Context) ([]states.StateRecord, error) {
	return Decode(embeddedDataset)
}

// FileSource reads the dataset from a JSON file on disk
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from path
func NewFileSource(path string) (*FileSource, error) {
	if path == "" {
		return nil, fmt.Errorf("dataset path cannot be empty")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("dataset file not found at %s", path)
	}
	return &FileSource{path: path}, nil
}

// Load reads and decodes the dataset file
func (s *FileSource) Load(ctx context.Context) ([]states.StateRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file %s: %w", s.path, err)
	}
	return Decode(data)
}
