// Package insights wraps an external text-generation API behind a contract
// the core can depend on: given portfolio stats, produce advisory text.
// Any failure degrades to a static fallback; this call never blocks core
// operations beyond its own timeout.
package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

// Fallback is returned whenever the advisor cannot be reached.
const Fallback = "The Aurum Advisor is currently offline. Please try again later."

const requestTimeout = 5 * time.Second

type Client struct {
	http   *resty.Client
	apiKey string
	model  string
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func NewClient(baseURL, apiKey, model string) *Client {
	httpc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout)
	return &Client{http: httpc, apiKey: apiKey, model: model}
}

// Advise produces a short portfolio analysis. It always returns usable text:
// the generated response when the collaborator answers, Fallback otherwise.
func (c *Client) Advise(ctx context.Context, stats domain.UserStats, rate domain.Rate, currency domain.Currency) string {
	if c.apiKey == "" {
		return Fallback
	}

	prompt := fmt.Sprintf(
		"As a senior wealth advisor, provide a 3-sentence analysis of this gold portfolio: "+
			"invested %s%s, accumulated %s grams, current rate %s%s/gram, portfolio value %s%s, "+
			"net gain %s%s (%s%%). Mention current market volatility and keep it professional and encouraging.",
		domain.Symbol(currency), stats.TotalInvested,
		stats.TotalGrams,
		domain.Symbol(currency), rate.Price24K,
		domain.Symbol(currency), stats.CurrentValue,
		domain.Symbol(currency), stats.UnrealizedGain,
		stats.GainPercentage,
	)

	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(generateRequest{Model: c.model, Prompt: prompt}).
		SetResult(&out).
		Post("/v1/generate")
	if err != nil || resp.IsError() || out.Text == "" {
		return Fallback
	}
	return out.Text
}
