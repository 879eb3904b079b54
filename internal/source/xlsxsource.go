package source

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/econ-intel/internal/fetcher"
	"github.com/sells-group/econ-intel/internal/model"
)

// XLSXSource reads country/value pairs from an Excel workbook. The World
// Happiness Report publishes its data appendix this way.
type XLSXSource struct {
	id           string
	indicator    model.IndicatorID
	url          string
	countryTerms []string
	valueTerms   []string
	opts         fetcher.XLSXOptions
	fetch        fetcher.Fetcher
}

// NewXLSXSource creates an XLSX source.
func NewXLSXSource(id string, indicator model.IndicatorID, url string, countryTerms, valueTerms []string, opts fetcher.XLSXOptions, f fetcher.Fetcher) *XLSXSource {
	return &XLSXSource{
		id:           id,
		indicator:    indicator,
		url:          url,
		countryTerms: countryTerms,
		valueTerms:   valueTerms,
		opts:         opts,
		fetch:        f,
	}
}

func (s *XLSXSource) ID() string                   { return s.id }
func (s *XLSXSource) Indicator() model.IndicatorID { return s.indicator }

// Fetch downloads the workbook and matches columns by header name.
func (s *XLSXSource) Fetch(ctx context.Context) ([]model.IndicatorReading, error) {
	body, err := s.fetch.Download(ctx, s.url)
	if err != nil {
		return nil, eris.Wrapf(err, "source %s: download", s.id)
	}
	defer body.Close() //nolint:errcheck

	header, rows, err := fetcher.ReadXLSX(body, s.opts)
	if err != nil {
		return nil, eris.Wrapf(err, "source %s: parse xlsx", s.id)
	}

	countryCol := findColumn(header, s.countryTerms...)
	valueCol := findColumn(header, s.valueTerms...)
	if countryCol < 0 || valueCol < 0 {
		return nil, eris.Errorf("source %s: required columns not found in header %v", s.id, header)
	}

	var readings []model.IndicatorReading
	for _, row := range rows {
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
			Value:      value,
		})
	}

	if len(readings) == 0 {
		return nil, eris.Errorf("source %s: no usable rows", s.id)
	}
	return readings, nil
}
