// Package seed reads YAML documents of fun facts to load into the API.
package seed

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is the list of fun facts to add for one state
type Entry struct {
	Code     string   `yaml:"code"`
	FunFacts []string `yaml:"funfacts"`
}

// File is a seed document
type File struct {
	States []Entry `yaml:"states"`
}

// Load reads and validates a seed file
func Load(path string) (*File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("seed file not found at %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a seed document. Codes are uppercased and entries without facts are rejected
func Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	if len(file.States) == 0 {
		return nil, fmt.Errorf("no states found in seed file")
	}

	for i := range file.States {
		entry := &file.States[i]
		entry.Code = strings.ToUpper(strings.TrimSpace(entry.Code))

		if len(entry.Code) != 2 {
			return nil, fmt.Errorf("seed entry %d has invalid state code '%s'", i+1, entry.Code)
		}
		if len(entry.FunFacts) == 0 {
			return nil, fmt.Errorf("seed entry for %s has no fun facts", entry.Code)
		}
	}

	return &file, nil
}
