package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/econ-intel/internal/fetcher"
	"github.com/sells-group/econ-intel/internal/model"
)

func TestCSVSource_Fetch(t *testing.T) {
	payload := "iso3,country,hdi_2023\nNOR,Norway,0.961\nTCD,Chad,0.394\nZZZ,World,0.739\n"
	s := NewCSVSource("undp", model.IndicatorHDI, "https://example.org/hdr.csv",
		[]string{"country"}, []string{"hdi"}, fetcher.CSVOptions{},
		map[string]fetcher.Fetcher{"https": &stubFetcher{payload: payload}})

	readings, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, "Norway", readings[0].CountryRaw)
	assert.InDelta(t, 0.961, readings[0].Value, 1e-9)
	assert.Equal(t, "Chad", readings[1].CountryRaw)
}

func TestCSVSource_PercentScaleHDI(t *testing.T) {
	payload := "country,hdi\nNorway,96.1\n"
	s := NewCSVSource("undp_mirror", model.IndicatorHDI, "https://example.org/hdr.csv",
		[]string{"country"}, []string{"hdi"}, fetcher.CSVOptions{},
		map[string]fetcher.Fetcher{"https": &stubFetcher{payload: payload}})

	readings, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.InDelta(t, 0.961, readings[0].Value, 1e-9)
}

func TestCSVSource_SchemeDispatch(t *testing.T) {
	payload := "country,score\nFinland,7.74\n"
	ftpStub := &stubFetcher{payload: payload}
	s := NewCSVSource("happiness_bulk", model.IndicatorHappiness, "ftp://mirror.example.org/whr.csv",
		[]string{"country"}, []string{"score"}, fetcher.CSVOptions{},
		map[string]fetcher.Fetcher{"ftp": ftpStub})

	readings, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, "Finland", readings[0].CountryRaw)
}

func TestCSVSource_MissingTransport(t *testing.T) {
	s := NewCSVSource("undp", model.IndicatorHDI, "ftp://mirror.example.org/hdr.csv",
		[]string{"country"}, []string{"hdi"}, fetcher.CSVOptions{},
		map[string]fetcher.Fetcher{"https": &stubFetcher{payload: ""}})

	_, err := s.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no transport for scheme")
}

func TestCSVSource_MissingColumns(t *testing.T) {
	payload := "region,population\nEurope,750\n"
	s := NewCSVSource("undp", model.IndicatorHDI, "https://example.org/hdr.csv",
		[]string{"country"}, []string{"hdi"}, fetcher.CSVOptions{},
		map[string]fetcher.Fetcher{"https": &stubFetcher{payload: payload}})

	_, err := s.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required columns not found")
}

func TestRegistry(t *testing.T) {
	gdp := NewWorldBankSource("world_bank", "https://api.example.org/gdp", &stubFetcher{})
	hdi := NewCSVSource("undp", model.IndicatorHDI, "https://example.org/hdr.csv",
		nil, nil, fetcher.CSVOptions{}, nil)
	r := NewRegistry(gdp, hdi)

	sources, err := r.ForIndicator(model.IndicatorGDPPerCapitaPPP)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "world_bank", sources[0].ID())

	_, err = r.ForIndicator(model.IndicatorHappiness)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sources configured")

	_, err = r.ForIndicator(model.IndicatorID("bogus"))
	require.Error(t, err)

	assert.Equal(t, []model.IndicatorID{model.IndicatorGDPPerCapitaPPP, model.IndicatorHDI}, r.Indicators())
}
