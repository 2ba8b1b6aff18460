package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/tempsense/tracking-api/internal/core/domain"
)

const defaultSeriesTTL = 5 * time.Minute

// SeriesCache keeps series looked up during measurement validation.
// Key format: series:<id>
type SeriesCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSeriesCache wraps client. A non-positive ttl falls back to five minutes.
func NewSeriesCache(client *redis.Client, ttl time.Duration) *SeriesCache {
	if ttl <= 0 {
		ttl = defaultSeriesTTL
	}
	return &SeriesCache{client: client, ttl: ttl}
}

// cachedSeries is the JSON form stored in Redis. Bounds are kept as decimal
// strings so no precision is lost.
type cachedSeries struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Color             string    `json:"color,omitempty"`
	Icon              string    `json:"icon,omitempty"`
	MinValue          *string   `json:"min,omitempty"`
	MaxValue          *string   `json:"max,omitempty"`
	CreatedBy         string    `json:"createdBy"`
	CreatedByUsername string    `json:"createdByUsername"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Get returns the cached series or (nil, nil) on a miss.
func (c *SeriesCache) Get(ctx context.Context, id string) (*domain.Series, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("series cache get: %w", err)
	}
	return decodeSeries(raw)
}

func (c *SeriesCache) Set(ctx context.Context, s *domain.Series) error {
	raw, err := encodeSeries(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(s.ID), raw, c.ttl).Err()
}

func (c *SeriesCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *SeriesCache) key(id string) string {
	return "series:" + id
}

func encodeSeries(s *domain.Series) ([]byte, error) {
	doc := cachedSeries{
		ID:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		Color:             s.Color,
		Icon:              s.Icon,
		MinValue:          boundString(s.MinValue),
		MaxValue:          boundString(s.MaxValue),
		CreatedBy:         s.CreatedBy,
		CreatedByUsername: s.CreatedByUsername,
		CreatedAt:         s.CreatedAt,
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("series cache encode: %w", err)
	}
	return raw, nil
}

func decodeSeries(raw []byte) (*domain.Series, error) {
	var doc cachedSeries
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("series cache decode: %w", err)
	}
	min, err := parseBound(doc.MinValue)
	if err != nil {
		return nil, err
	}
	max, err := parseBound(doc.MaxValue)
	if err != nil {
		return nil, err
	}
	return &domain.Series{
		ID:                doc.ID,
		Name:              doc.Name,
		Description:       doc.Description,
		Color:             doc.Color,
		Icon:              doc.Icon,
		MinValue:          min,
		MaxValue:          max,
		CreatedBy:         doc.CreatedBy,
		CreatedByUsername: doc.CreatedByUsername,
		CreatedAt:         doc.CreatedAt,
	}, nil
}

func boundString(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()
	return &s
}

func parseBound(s *string) (decimal.NullDecimal, error) {
	if s == nil {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("series cache bound %q: %w", *s, err)
	}
	return decimal.NewNullDecimal(d), nil
}
