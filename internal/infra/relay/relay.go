// Package relay mirrors run progress into a Redis stream so observers
// outside the process can tail a run.
package relay

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"driprun/internal/broadcast"
	"driprun/internal/config"
)

type Relay struct {
	cfg config.Relay
	rdb *redis.Client
	hub *broadcast.Hub
}

func New(cfg config.Relay, hub *broadcast.Hub) *Relay {
	log.Info().Msgf("connecting to redis at %s", cfg.Addr)
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Relay{cfg: cfg, rdb: c, hub: hub}
}

func (r *Relay) Connect(ctx context.Context) error {
	if err := r.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	log.Ctx(ctx).Info().Msg("connected to redis")
	return nil
}

// Run subscribes to the hub and appends every message to the configured
// stream until ctx ends. Publish failures are logged and skipped; the
// relay never applies backpressure to a run.
func (r *Relay) Run(ctx context.Context) error {
	sub := r.hub.Subscribe()
	defer r.hub.Unsubscribe(sub)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-sub.C():
			if !ok {
				return nil
			}
			err := r.rdb.XAdd(ctx, &redis.XAddArgs{
				Stream: r.cfg.StreamKey,
				Values: map[string]interface{}{"message": msg},
			}).Err()
			if err != nil {
				log.Ctx(ctx).Error().Err(err).Msg("relay publish failed")
			}
		}
	}
}

func (r *Relay) Close() error {
	return r.rdb.Close()
}
