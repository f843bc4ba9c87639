package insights

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

func testStats() domain.UserStats {
	return domain.UserStats{
		TotalInvested:  decimal.RequireFromString("10000"),
		TotalGrams:     decimal.RequireFromString("1.60"),
		CurrentValue:   decimal.RequireFromString("10240.00"),
		UnrealizedGain: decimal.RequireFromString("240.00"),
		GainPercentage: decimal.RequireFromString("2.40"),
		LoyaltyTier:    domain.TierSilver,
	}
}

func testRateSnapshot() domain.Rate {
	return domain.Rate{Price24K: decimal.RequireFromString("6400")}
}

func TestAdvise_ReturnsGeneratedText(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			t.Errorf("expected bearer auth, got %q", r.Header.Get("Authorization"))
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if !strings.Contains(req.Prompt, "10000") || !strings.Contains(req.Prompt, "grams") {
			t.Errorf("prompt missing portfolio figures: %q", req.Prompt)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(generateResponse{Text: "Steady accumulation; stay the course."})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "advisor-1")
	got := client.Advise(context.Background(), testStats(), testRateSnapshot(), domain.CurrencyINR)
	if got != "Steady accumulation; stay the course." {
		t.Fatalf("unexpected advice %q", got)
	}
}

func TestAdvise_FallsBackOnServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "advisor-1")
	if got := client.Advise(context.Background(), testStats(), testRateSnapshot(), domain.CurrencyINR); got != Fallback {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestAdvise_FallsBackWithoutAPIKey(t *testing.T) {
	t.Parallel()

	client := NewClient("http://127.0.0.1:0", "", "advisor-1")
	if got := client.Advise(context.Background(), testStats(), testRateSnapshot(), domain.CurrencyINR); got != Fallback {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestAdvise_FallsBackOnUnreachableHost(t *testing.T) {
	t.Parallel()

	client := NewClient("http://127.0.0.1:1", "test-key", "advisor-1")
	if got := client.Advise(context.Background(), testStats(), testRateSnapshot(), domain.CurrencyINR); got != Fallback {
		t.Fatalf("expected fallback, got %q", got)
	}
}
