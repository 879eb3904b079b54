package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const worldBankJSON = `[
  {"page": 1, "pages": 1, "per_page": 300, "total": 3},
  [
    {"country": {"id": "NO", "value": "Norway"}, "value": 82655.2, "date": "2024"},
    {"country": {"id": "TD", "value": "Chad"}, "value": null, "date": "2024"},
    {"country": {"id": "1W", "value": "World"}, "value": 22850.0, "date": "2024"},
    {"country": {"id": "IE", "value": "Ireland"}, "value": 114581.3, "date": "2024"}
  ]
]`

func TestWorldBankSource_Fetch(t *testing.T) {
	s := NewWorldBankSource("world_bank", "https://api.example.org/gdp", &stubFetcher{payload: worldBankJSON})

	readings, err := s.Fetch(context.Background())
	require.NoError(t, err)

	// Null observations and aggregates are skipped.
	require.Len(t, readings, 2)
	assert.Equal(t, "Norway", readings[0].CountryRaw)
	assert.InDelta(t, 82655.2, readings[0].Value, 1e-9)
	assert.Equal(t, "intl$", readings[0].Unit)
	assert.Equal(t, 2024, readings[0].Year)
	assert.Equal(t, "Ireland", readings[1].CountryRaw)
}

func TestWorldBankSource_BadEnvelope(t *testing.T) {
	s := NewWorldBankSource("world_bank", "https://api.example.org/gdp",
		&stubFetcher{payload: `[{"message": "invalid indicator"}]`})

	_, err := s.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response shape")
}

func TestWorldBankSource_AllNull(t *testing.T) {
	payload := `[{}, [{"country": {"value": "Chad"}, "value": null, "date": "2024"}]]`
	s := NewWorldBankSource("world_bank", "https://api.example.org/gdp", &stubFetcher{payload: payload})

	_, err := s.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no observations")
}
