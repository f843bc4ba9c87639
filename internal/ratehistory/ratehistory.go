// Package ratehistory keeps a bounded, display-only series of rate ticks in
// Redis. The series is never an input to pricing; losing it is harmless.
package ratehistory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

// Point is one recorded tick of the 24K shop rate.
type Point struct {
	Price24K  decimal.Decimal `json:"price_24k"`
	Timestamp time.Time       `json:"timestamp"`
}

const (
	seriesKey        = "aurum:rate_history"
	defaultMaxPoints = 500
)

// Recorder appends rate ticks to a capped Redis list, newest at the head.
type Recorder struct {
	rdb       redis.UniversalClient
	maxPoints int64
}

func NewRecorder(rdb redis.UniversalClient) *Recorder {
	return &Recorder{rdb: rdb, maxPoints: defaultMaxPoints}
}

func (r *Recorder) Record(ctx context.Context, rate domain.Rate) error {
	payload, err := json.Marshal(Point{Price24K: rate.Price24K, Timestamp: rate.Timestamp})
	if err != nil {
		return fmt.Errorf("marshal rate point: %w", err)
	}

	pipe := r.rdb.TxPipeline()
	pipe.LPush(ctx, seriesKey, payload)
	pipe.LTrim(ctx, seriesKey, 0, r.maxPoints-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record rate point: %w", err)
	}
	return nil
}

// Series returns up to limit points in chronological order.
func (r *Recorder) Series(ctx context.Context, limit int) ([]Point, error) {
	if limit <= 0 || int64(limit) > r.maxPoints {
		limit = int(r.maxPoints)
	}

	raw, err := r.rdb.LRange(ctx, seriesKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read rate series: %w", err)
	}

	points := make([]Point, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var p Point
		if err := json.Unmarshal([]byte(raw[i]), &p); err != nil {
			return nil, fmt.Errorf("decode rate point: %w", err)
		}
		points = append(points, p)
	}
	return points, nil
}
