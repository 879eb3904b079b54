package source

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/econ-intel/internal/fetcher"
	"github.com/sells-group/econ-intel/internal/model"
)

// HTMLTableSource scrapes one country/value table from an HTML page. It
// covers the Wikipedia list articles and the WPR ranking pages, which share
// the same shape: a header row naming a country column and a value column.
type HTMLTableSource struct {
	id         string
	indicator  model.IndicatorID
	url        string
	tableClass string
	valueTerms []string
	scale      float64 // multiplier applied to parsed values; 0 means 1
	fetch      fetcher.Fetcher
	year       int
}

// NewHTMLTableSource creates an HTML table source.
func NewHTMLTableSource(id string, indicator model.IndicatorID, url, tableClass string, valueTerms []string, f fetcher.Fetcher) *HTMLTableSource {
	return &HTMLTableSource{
		id:         id,
		indicator:  indicator,
		url:        url,
		tableClass: tableClass,
		valueTerms: valueTerms,
		fetch:      f,
	}
}

// WithScale sets a multiplier for unit alignment (e.g. 0.01 for sources that
// report HDI on a 0-100 scale).
func (s *HTMLTableSource) WithScale(scale float64) *HTMLTableSource {
	s.scale = scale
	return s
}

func (s *HTMLTableSource) ID() string                   { return s.id }
func (s *HTMLTableSource) Indicator() model.IndicatorID { return s.indicator }

// Fetch downloads the page and extracts readings from the first table whose
// header names both a country column and one of the configured value terms.
func (s *HTMLTableSource) Fetch(ctx context.Context) ([]model.IndicatorReading, error) {
	body, err := s.fetch.Download(ctx, s.url)
	if err != nil {
		return nil, eris.Wrapf(err, "source %s: download", s.id)
	}
	defer body.Close() //nolint:errcheck

	tables, err := fetcher.ExtractTables(body, s.tableClass)
	if err != nil {
		return nil, eris.Wrapf(err, "source %s: extract tables", s.id)
	}

	for _, table := range tables {
		countryCol := findColumn(table.Header, "country", "territory", "economy", "nation")
		valueCol := findColumn(table.Header, s.valueTerms...)
		if countryCol < 0 || valueCol < 0 || countryCol == valueCol {
			continue
		}

		readings := s.readTable(table, countryCol, valueCol)
		if len(readings) > 0 {
			zap.L().Debug("source: table parsed",
				zap.String("source", s.id),
				zap.Int("readings", len(readings)),
			)
			return readings, nil
		}
	}

	return nil, eris.Errorf("source %s: no usable table at %s", s.id, s.url)
}

func (s *HTMLTableSource) readTable(table fetcher.Table, countryCol, valueCol int) []model.IndicatorReading {
	scale := s.scale
	if scale == 0 {
		scale = 1
	}

	var readings []model.IndicatorReading
	for _, row := range table.Rows {
		if countryCol >= len(row) || valueCol >= len(row) {
			continue
		}
		countryCell := strings.TrimSpace(row[countryCol])
		if !usableCountryCell(countryCell) {
			continue
		}
		value, ok := CleanNumeric(row[valueCol])
		if !ok || value <= 0 {
			continue
		}
		readings = append(readings, model.IndicatorReading{
			SourceID:   s.id,
			CountryRaw: countryCell,
			Value:      value * scale,
			Year:       s.year,
		})
	}
	return readings
}
