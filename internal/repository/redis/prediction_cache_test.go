package redis

import (
	"context"
	"testing"
	"time"

	"liverRisk/domain"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// unreachable points at a closed port so every command fails fast.
func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestPredictionCache_ConnectionErrors(t *testing.T) {
	client := unreachable()
	defer client.Close()
	cache := NewPredictionCache(client, time.Minute)

	_, ok, err := cache.Get(context.Background(), "v1:abc")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "failed to get prediction from Redis")

	err = cache.Set(context.Background(), "v1:abc", domain.PredictionResponse{Prediction: "x"})
	assert.ErrorContains(t, err, "failed to store prediction in Redis")
}
