// Package relay shares canvas events between server processes through
// Redis pub/sub, so every viewer sees paints made on any instance.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pixel-canvas-server/internal/config"
	"pixel-canvas-server/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LocalBroadcaster delivers an encoded message to this process's viewers.
type LocalBroadcaster interface {
	BroadcastRaw(message []byte)
}

type envelope struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

type RedisRelay struct {
	client  *redis.Client
	channel string
	origin  string
	local   LocalBroadcaster
	log     logger.Logger
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		WriteTimeout: time.Second,
	})
}

func NewRedisRelay(client *redis.Client, channel string, local LocalBroadcaster, log logger.Logger) *RedisRelay {
	return &RedisRelay{
		client:  client,
		channel: channel,
		origin:  uuid.New().String(),
		local:   local,
		log:     log.WithComponent("relay"),
	}
}

func (r *RedisRelay) Publish(ctx context.Context, message []byte) error {
	payload, err := json.Marshal(envelope{Origin: r.origin, Message: message})
	if err != nil {
		return fmt.Errorf("failed to encode relay envelope: %w", err)
	}

	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", r.channel, err)
	}
	return nil
}

// Run forwards messages published by other instances until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}
	r.log.Infof("relaying canvas events on %s as %s", r.channel, r.origin)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.deliver([]byte(msg.Payload))
		}
	}
}

func (r *RedisRelay) deliver(payload []byte) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		r.log.Warnf("dropping malformed relay message: %v", err)
		return
	}
	if env.Origin == r.origin || len(env.Message) == 0 {
		return
	}
	r.local.BroadcastRaw(env.Message)
}
