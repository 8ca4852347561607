package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"liverRisk/business/prediction"
	"liverRisk/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "liver:predict:"

// PredictionCache stores assembled responses keyed by input fingerprint.
type PredictionCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ prediction.PredictionCache = (*PredictionCache)(nil)

func NewPredictionCache(client *redis.Client, ttl time.Duration) *PredictionCache {
	return &PredictionCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *PredictionCache) Get(ctx context.Context, key string) (domain.PredictionResponse, bool, error) {
	val, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.PredictionResponse{}, false, nil
		}
		return domain.PredictionResponse{}, false, fmt.Errorf("failed to get prediction from Redis: %w", err)
	}

	var resp domain.PredictionResponse
	if err := json.Unmarshal(val, &resp); err != nil {
		return domain.PredictionResponse{}, false, fmt.Errorf("failed to unmarshal cached prediction: %w", err)
	}

	return resp, true, nil
}

func (r *PredictionCache) Set(ctx context.Context, key string, resp domain.PredictionResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction: %w", err)
	}

	if err := r.client.Set(ctx, keyPrefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store prediction in Redis: %w", err)
	}

	return nil
}
