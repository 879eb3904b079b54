package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/econ-intel/internal/config"
	"github.com/sells-group/econ-intel/internal/fetcher"
	"github.com/sells-group/econ-intel/internal/model"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry(config.FetchConfig{})

	// Every indicator has at least two sources so reconciliation can
	// cross-check.
	for _, id := range model.Indicators {
		sources, err := r.ForIndicator(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(sources), 2, "indicator %s", id)
	}

	hdi, err := r.ForIndicator(model.IndicatorHDI)
	require.NoError(t, err)
	undp := hdi[1].(*CSVSource)
	assert.Equal(t, "undp", undp.ID())
	assert.Equal(t, hdiUNDPDefault, undp.url)
}

func TestDefaultRegistry_FTPBulkMirror(t *testing.T) {
	r := DefaultRegistry(config.FetchConfig{
		HDIBulkURL: "ftp://mirror.example.org/pub/hdr/composite_indices.csv",
	})

	hdi, err := r.ForIndicator(model.IndicatorHDI)
	require.NoError(t, err)
	undp := hdi[1].(*CSVSource)

	transport, err := undp.transport()
	require.NoError(t, err)
	assert.IsType(t, &fetcher.FTPFetcher{}, transport)
}
