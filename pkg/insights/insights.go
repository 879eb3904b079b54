// Package insights generates prose commentary on detected anomalies using the
// Anthropic API. It is an optional sink: runs are complete without it.
package insights

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"

	"github.com/sells-group/econ-intel/internal/country"
	"github.com/sells-group/econ-intel/internal/model"
)

// Client defines the single Anthropic operation used by this package.
type Client interface {
	CreateMessage(ctx context.Context, modelID string, maxTokens int64, prompt string) (string, error)
}

// sdkClient implements Client using the official anthropic-sdk-go.
type sdkClient struct {
	client sdk.Client
}

// NewClient creates a new Anthropic client backed by the SDK.
func NewClient(apiKey string) Client {
	return &sdkClient{
		client: sdk.NewClient(
			option.WithAPIKey(apiKey),
		),
	}
}

func (c *sdkClient) CreateMessage(ctx context.Context, modelID string, maxTokens int64, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(modelID),
		MaxTokens: maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "insights: create message")
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}

// Generator turns an anomaly list into a short analyst-style commentary.
type Generator struct {
	client Client
	model  string
}

// NewGenerator creates a Generator.
func NewGenerator(client Client, modelID string) *Generator {
	return &Generator{client: client, model: modelID}
}

// Commentary asks the model for a short note on the run's anomalies. Returns
// an empty string without error when there is nothing to comment on.
func (g *Generator) Commentary(ctx context.Context, anomalies []model.Anomaly) (string, error) {
	if len(anomalies) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("You are an economic analyst. In at most 150 words, comment on these cross-indicator anomalies. Be factual; do not speculate beyond the data.\n\n")
	for _, a := range anomalies {
		fmt.Fprintf(&b, "- %s (%s vs %s, magnitude %.2f): %s\n",
			country.DisplayName(a.Country), a.Indicators[0].Label(), a.Indicators[1].Label(), a.Magnitude, a.Narrative)
	}

	text, err := g.client.CreateMessage(ctx, g.model, 1024, b.String())
	if err != nil {
		return "", eris.Wrap(err, "insights: commentary")
	}
	return strings.TrimSpace(text), nil
}
