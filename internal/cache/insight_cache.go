package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pulsepoll/internal/model"
)

// InsightCache stores computed insight bundles with a TTL. The cache is a
// pure pass-through: bundles are always reproducible from the underlying
// responses, so expiry simply triggers recomputation.
type InsightCache interface {
	Get(ctx context.Context, surveyID, signature string) (*model.InsightBundle, error)
	Set(ctx context.Context, surveyID, signature string, bundle *model.InsightBundle) error
}

type insightCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInsightCache creates a new insight cache
func NewInsightCache(client *redis.Client, ttl time.Duration) InsightCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &insightCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *insightCache) key(surveyID, signature string) string {
	return fmt.Sprintf("survey:%s:insights:%s", surveyID, signature)
}

func (c *insightCache) Get(ctx context.Context, surveyID, signature string) (*model.InsightBundle, error) {
	data, err := c.client.Get(ctx, c.key(surveyID, signature)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var bundle model.InsightBundle
	if err := json.Unmarshal([]byte(data), &bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (c *insightCache) Set(ctx context.Context, surveyID, signature string, bundle *model.InsightBundle) error {
	data, err := json.Marshal(bundle)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(surveyID, signature), data, c.ttl).Err()
}
