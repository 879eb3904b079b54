package source

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/econ-intel/internal/fetcher"
	"github.com/sells-group/econ-intel/internal/model"
)

// WorldBankSource reads GDP per capita (PPP) from the World Bank indicator
// API (v2 JSON). The payload is a two-element array: metadata, then rows.
type WorldBankSource struct {
	id    string
	url   string
	fetch fetcher.Fetcher
}

// NewWorldBankSource creates a World Bank API source.
func NewWorldBankSource(id, url string, f fetcher.Fetcher) *WorldBankSource {
	return &WorldBankSource{id: id, url: url, fetch: f}
}

func (s *WorldBankSource) ID() string                   { return s.id }
func (s *WorldBankSource) Indicator() model.IndicatorID { return model.IndicatorGDPPerCapitaPPP }

type worldBankRow struct {
	Country struct {
		Value string `json:"value"`
	} `json:"country"`
	Value *float64 `json:"value"`
	Date  string   `json:"date"`
}

// Fetch downloads and decodes the API response. Rows with null values (no
// observation for the requested year) are skipped.
func (s *WorldBankSource) Fetch(ctx context.Context) ([]model.IndicatorReading, error) {
	body, err := s.fetch.Download(ctx, s.url)
	if err != nil {
		return nil, eris.Wrapf(err, "source %s: download", s.id)
	}
	defer body.Close() //nolint:errcheck

	payload, err := io.ReadAll(body)
	if err != nil {
		return nil, eris.Wrapf(err, "source %s: read body", s.id)
	}

	var envelope []json.RawMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, eris.Wrapf(err, "source %s: decode envelope", s.id)
	}
	if len(envelope) < 2 {
		return nil, eris.Errorf("source %s: unexpected response shape", s.id)
	}

	var rows []worldBankRow
	if err := json.Unmarshal(envelope[1], &rows); err != nil {
		return nil, eris.Wrapf(err, "source %s: decode rows", s.id)
	}

	var readings []model.IndicatorReading
	for _, row := range rows {
		if row.Value == nil || !usableCountryCell(row.Country.Value) {
			continue
		}
		year := 0
		if y, ok := CleanNumeric(row.Date); ok {
			year = int(y)
		}
		readings = append(readings, model.IndicatorReading{
			SourceID:   s.id,
			CountryRaw: row.Country.Value,
			Value:      *row.Value,
			Unit:       "intl$",
			Year:       year,
		})
	}

	if len(readings) == 0 {
		return nil, eris.Errorf("source %s: no observations in response", s.id)
	}
	return readings, nil
}
