package insights

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/econ-intel/internal/model"
)

type fakeModel struct {
	prompt string
	reply  string
	err    error
	calls  int
}

func (f *fakeModel) CreateMessage(_ context.Context, _ string, _ int64, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.reply, f.err
}

func TestCommentary(t *testing.T) {
	client := &fakeModel{reply: "  Ireland shows a GDP/happiness gap.  "}
	g := NewGenerator(client, "test-model")

	anomalies := []model.Anomaly{{
		Country:    "ireland",
		RuleID:     "high-gdp-low-happiness",
		Indicators: [2]model.IndicatorID{model.IndicatorGDPPerCapitaPPP, model.IndicatorHappiness},
		Magnitude:  0.8,
		Narrative:  "high GDP per capita but low happiness",
	}}

	text, err := g.Commentary(context.Background(), anomalies)
	require.NoError(t, err)
	assert.Equal(t, "Ireland shows a GDP/happiness gap.", text)
	assert.Equal(t, 1, client.calls)
	assert.Contains(t, client.prompt, "Ireland (GDP per capita (PPP) vs Happiness score, magnitude 0.80)")
}

func TestCommentary_NoAnomalies(t *testing.T) {
	client := &fakeModel{}
	g := NewGenerator(client, "test-model")

	text, err := g.Commentary(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Zero(t, client.calls)
}

func TestCommentary_ClientError(t *testing.T) {
	client := &fakeModel{err: eris.New("rate limited")}
	g := NewGenerator(client, "test-model")

	_, err := g.Commentary(context.Background(), []model.Anomaly{{Country: "chad"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commentary")
}
