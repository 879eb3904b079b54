package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/econ-intel/internal/model"
)

func reconciled(values map[string]float64) map[string]model.ReconciledIndicator {
	m := make(map[string]model.ReconciledIndicator, len(values))
	for country, value := range values {
		m[country] = model.ReconciledIndicator{Country: country, Value: value}
	}
	return m
}

func TestRank_TopAndBottom(t *testing.T) {
	m := reconciled(map[string]float64{
		"norway":  80000,
		"ireland": 90000,
		"burundi": 800,
		"chad":    1500,
		"germany": 60000,
	})

	top, bottom := Rank(m, 3, 2)

	require.Len(t, top, 3)
	assert.Equal(t, []string{"ireland", "norway", "germany"},
		[]string{top[0].Country, top[1].Country, top[2].Country})
	assert.Equal(t, []int{1, 2, 3}, []int{top[0].Rank, top[1].Rank, top[2].Rank})
	assert.Equal(t, model.DirectionTop, top[0].Direction)

	require.Len(t, bottom, 2)
	assert.Equal(t, "burundi", bottom[0].Country)
	assert.Equal(t, "chad", bottom[1].Country)
	assert.Equal(t, []int{1, 2}, []int{bottom[0].Rank, bottom[1].Rank})
	assert.Equal(t, model.DirectionBottom, bottom[0].Direction)
}

func TestRank_TiesBreakLexicographically(t *testing.T) {
	m := reconciled(map[string]float64{
		"austria": 50000,
		"belgium": 50000,
		"canada":  50000,
	})

	top, bottom := Rank(m, 3, 3)

	assert.Equal(t, []string{"austria", "belgium", "canada"},
		[]string{top[0].Country, top[1].Country, top[2].Country})
	// Same tie order from the bottom end too, not reversed.
	assert.Equal(t, []string{"austria", "belgium", "canada"},
		[]string{bottom[0].Country, bottom[1].Country, bottom[2].Country})
}

func TestRank_Deterministic(t *testing.T) {
	m := reconciled(map[string]float64{
		"a": 1, "b": 2, "c": 3, "d": 4, "e": 5, "f": 5, "g": 2,
	})

	top1, bottom1 := Rank(m, 5, 5)
	top2, bottom2 := Rank(m, 5, 5)
	assert.Equal(t, top1, top2)
	assert.Equal(t, bottom1, bottom2)
}

func TestRank_ClampsToAvailable(t *testing.T) {
	m := reconciled(map[string]float64{"norway": 1, "chad": 2})

	top, bottom := Rank(m, 10, 10)
	assert.Len(t, top, 2)
	assert.Len(t, bottom, 2)

	top, bottom = Rank(m, -1, 0)
	assert.Empty(t, top)
	assert.Empty(t, bottom)

	top, bottom = Rank(nil, 5, 5)
	assert.Empty(t, top)
	assert.Empty(t, bottom)
}
