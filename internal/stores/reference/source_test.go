package reference

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSource(t *testing.T) {
	records, err := NewEmbeddedSource().Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 50)

	codes := make(map[string]bool, len(records))
	for _, record := range records {
		assert.Len(t, record.Code, 2, "code for %s", record.State)
		assert.False(t, codes[record.Code], "duplicate code %s", record.Code)
		codes[record.Code] = true
	}

	assert.True(t, codes["AK"])
	assert.True(t, codes["HI"])

	// Each load returns an independent copy
	records[0].State = "modified"
	again, err := NewEmbeddedSource().Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alabama", again[0].State)
}

func TestEmbeddedSource_Fields(t *testing.T) {
	records, err := NewEmbeddedSource().Load(context.Background())
	require.NoError(t, err)

	var found bool
	for _, record := range records {
		if record.Code != "CA" {
			continue
		}
		found = true
		assert.Equal(t, "California", record.State)
		assert.Equal(t, "Sacramento", record.CapitalCity)
		assert.Equal(t, "Golden State", record.Nickname)
		assert.Equal(t, "1850-09-09", record.AdmissionDate)
		assert.Equal(t, 31, record.AdmissionNumber)
		assert.Equal(t, 1, record.PopulationRank)
	}
	assert.True(t, found)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "states.json")
	dataset := `[{"state":"Texas","code":"TX","capital_city":"Austin","population":29145505}]`
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0644))

	source, err := NewFileSource(path)
	require.NoError(t, err)

	records, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "TX", records[0].Code)
	assert.Equal(t, 29145505, records[0].Population)

	// Changes on disk are picked up by the next load
	dataset = `[{"state":"Texas","code":"TX"},{"state":"Utah","code":"UT"}]`
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0644))

	records, err = source.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestFileSource_Errors(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := NewFileSource("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		source, err := NewFileSource(path)
		require.NoError(t, err)

		_, err = source.Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "states.json")
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))

		source, err := NewFileSource(path)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = source.Load(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
