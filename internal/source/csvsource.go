package source

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/econ-intel/internal/fetcher"
	"github.com/sells-group/econ-intel/internal/model"
)

// CSVSource reads one country/value pair per row from a CSV extract, such as
// the UNDP composite-indices download. The URL may be http(s) or ftp; bulk
// mirrors of the UNDP extract are still served over anonymous FTP.
type CSVSource struct {
	id           string
	indicator    model.IndicatorID
	url          string
	countryTerms []string
	valueTerms   []string
	opts         fetcher.CSVOptions
	fetchers     map[string]fetcher.Fetcher // keyed by URL scheme
}

// NewCSVSource creates a CSV source. fetchers maps URL schemes ("https",
// "ftp") to transports.
func NewCSVSource(id string, indicator model.IndicatorID, url string, countryTerms, valueTerms []string, opts fetcher.CSVOptions, fetchers map[string]fetcher.Fetcher) *CSVSource {
	return &CSVSource{
		id:           id,
		indicator:    indicator,
		url:          url,
		countryTerms: countryTerms,
		valueTerms:   valueTerms,
		opts:         opts,
		fetchers:     fetchers,
	}
}

func (s *CSVSource) ID() string                   { return s.id }
func (s *CSVSource) Indicator() model.IndicatorID { return s.indicator }

func (s *CSVSource) transport() (fetcher.Fetcher, error) {
	scheme := "https"
	if i := strings.Index(s.url, "://"); i > 0 {
		scheme = s.url[:i]
	}
	if scheme == "http" {
		scheme = "https"
	}
	f, ok := s.fetchers[scheme]
	if !ok {
		return nil, eris.Errorf("source %s: no transport for scheme %q", s.id, scheme)
	}
	return f, nil
}

// Fetch downloads the extract and matches columns by header name.
func (s *CSVSource) Fetch(ctx context.Context) ([]model.IndicatorReading, error) {
	transport, err := s.transport()
	if err != nil {
		return nil, err
	}

	body, err := transport.Download(ctx, s.url)
	if err != nil {
		return nil, eris.Wrapf(err, "source %s: download", s.id)
	}
	defer body.Close() //nolint:errcheck

	header, rows, err := fetcher.ReadCSV(body, s.opts)
	if err != nil {
		return nil, eris.Wrapf(err, "source %s: parse csv", s.id)
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
			Value:      alignHDI(s.indicator, value),
		})
	}

	if len(readings) == 0 {
		return nil, eris.Errorf("source %s: no usable rows", s.id)
	}
	return readings, nil
}

// alignHDI converts percentage-scale HDI values to the canonical 0-1 scale.
// Some mirrors publish the index multiplied by 100.
func alignHDI(indicator model.IndicatorID, v float64) float64 {
	if indicator == model.IndicatorHDI && v > 1.5 {
		return v / 100
	}
	return v
}
