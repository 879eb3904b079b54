// Package source adapts upstream datasets into well-typed indicator readings.
// Each source owns its transport and parsing; the reconciliation core only
// ever sees IndicatorReading values.
package source

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/econ-intel/internal/model"
)

// Source produces raw readings for one indicator from one upstream dataset.
type Source interface {
	// ID names the source in reconciliation output and warnings.
	ID() string
	// Indicator reports which metric this source feeds.
	Indicator() model.IndicatorID
	// Fetch retrieves and parses the upstream dataset.
	Fetch(ctx context.Context) ([]model.IndicatorReading, error)
}

// Registry maps indicators to their configured sources. Source order matters:
// the first source is primary under the "primary" reconciliation policy.
type Registry struct {
	sources map[model.IndicatorID][]Source
}

// NewRegistry builds a registry from the given sources, preserving order.
func NewRegistry(sources ...Source) *Registry {
	r := &Registry{sources: make(map[model.IndicatorID][]Source)}
	for _, s := range sources {
		r.sources[s.Indicator()] = append(r.sources[s.Indicator()], s)
	}
	return r
}

// ForIndicator returns the sources feeding one indicator. Requesting an
// unknown indicator is a programmer/configuration error.
func (r *Registry) ForIndicator(id model.IndicatorID) ([]Source, error) {
	if _, err := model.ParseIndicator(string(id)); err != nil {
		return nil, err
	}
	sources := r.sources[id]
	if len(sources) == 0 {
		return nil, eris.Errorf("source: no sources configured for indicator %q", id)
	}
	return sources, nil
}

// Indicators returns the indicators with at least one configured source, in
// pipeline order.
func (r *Registry) Indicators() []model.IndicatorID {
	var out []model.IndicatorID
	for _, id := range model.Indicators {
		if len(r.sources[id]) > 0 {
			out = append(out, id)
		}
	}
	return out
}
