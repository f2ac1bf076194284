package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/domain/model"
)

// fakeRedis records LPUSH calls; every other Cmdable method is unused.
type fakeRedis struct {
	redis.Cmdable
	key    string
	values []interface{}
	err    error
}

func (f *fakeRedis) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	f.key = key
	f.values = values
	return redis.NewIntResult(int64(len(values)), f.err)
}

func TestRedisListingPublisher(t *testing.T) {
	rdb := &fakeRedis{}
	pub := NewRedisListingPublisher(rdb, "product_listed_events")
	createdAt := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	err := pub.PublishProductListed(context.Background(), &model.Product{
		ID: "p-1", OwnerID: "u-1", Name: "Mug", Price: 999, CreatedAt: createdAt,
	})
	require.NoError(t, err)

	assert.Equal(t, "product_listed_events", rdb.key)
	require.Len(t, rdb.values, 1)
	payload, ok := rdb.values[0].([]byte)
	require.True(t, ok)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, "product.listed", event["type"])
	assert.Equal(t, "p-1", event["productId"])
	assert.Equal(t, "u-1", event["ownerId"])
	assert.Equal(t, 9.99, event["price"])
	assert.Equal(t, "2025-06-01T08:00:00Z", event["occurredAt"])
}

func TestRedisListingPublisher_Error(t *testing.T) {
	pub := NewRedisListingPublisher(&fakeRedis{err: errors.New("READONLY")}, "q")

	err := pub.PublishProductListed(context.Background(), &model.Product{ID: "p-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "READONLY")
}

func TestNopListingPublisher(t *testing.T) {
	assert.NoError(t, NopListingPublisher{}.PublishProductListed(context.Background(), &model.Product{}))
}
