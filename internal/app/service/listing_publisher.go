package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"marketplace/internal/domain/model"
)

const EventProductListed = "product.listed"

// ListingPublisher announces newly listed products to downstream consumers.
type ListingPublisher interface {
	PublishProductListed(ctx context.Context, product *model.Product) error
}

type ProductListedEvent struct {
	Type       string      `json:"type"`
	ProductID  string      `json:"productId"`
	OwnerID    string      `json:"ownerId"`
	Name       string      `json:"name"`
	Price      model.Price `json:"price"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// RedisListingPublisher pushes events onto a Redis list, one JSON document per event.
type RedisListingPublisher struct {
	rdb   redis.Cmdable
	queue string
}

func NewRedisListingPublisher(rdb redis.Cmdable, queue string) *RedisListingPublisher {
	return &RedisListingPublisher{rdb: rdb, queue: queue}
}

func (p *RedisListingPublisher) PublishProductListed(ctx context.Context, product *model.Product) error {
	payload, err := json.Marshal(ProductListedEvent{
		Type:       EventProductListed,
		ProductID:  product.ID,
		OwnerID:    product.OwnerID,
		Name:       product.Name,
		Price:      product.Price,
		OccurredAt: product.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal listing event: %w", err)
	}
	if err := p.rdb.LPush(ctx, p.queue, payload).Err(); err != nil {
		return fmt.Errorf("failed to push listing event to %s: %w", p.queue, err)
	}
	return nil
}

// NopListingPublisher is used when no event queue is configured.
type NopListingPublisher struct{}

func (NopListingPublisher) PublishProductListed(context.Context, *model.Product) error { return nil }
