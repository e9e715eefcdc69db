package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"liyu1981.xyz/consumable-wear-service/pkg/config"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

//go:generate mockgen -source=redis.go -destination=mocks/mock_publisher.go -package=mocks

// Publisher is the part of a redis client the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisNotifier publishes alerts on company:<company>:alerts.
type RedisNotifier struct {
	publisher Publisher
	client    *redis.Client
}

func NewRedisNotifier(ctx context.Context, cfg config.Redis) (*RedisNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisNotifier{publisher: client, client: client}, nil
}

func NewRedisNotifierWithPublisher(p Publisher) *RedisNotifier {
	return &RedisNotifier{publisher: p}
}

func AlertChannel(company string) string {
	return fmt.Sprintf("company:%s:alerts", company)
}

func (n *RedisNotifier) Notify(ctx context.Context, alert wear.Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}
	if err := n.publisher.Publish(ctx, AlertChannel(alert.Company), payload).Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

func (n *RedisNotifier) Close() error {
	if n == nil || n.client == nil {
		return nil
	}
	return n.client.Close()
}
