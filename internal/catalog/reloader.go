// README: Hot reload; a Redis pub/sub message triggers a full load and an atomic swap.
package catalog

import (
	"context"

	"github.com/redis/go-redis/v9"

	"farerail/internal/logger"
)

const DefaultReloadChannel = "farerail:reload"

type Reloader struct {
	loader  Loader
	holder  *Holder
	redis   *redis.Client
	channel string
	log     logger.Logger
}

func NewReloader(loader Loader, holder *Holder, client *redis.Client, channel string, log logger.Logger) *Reloader {
	if channel == "" {
		channel = DefaultReloadChannel
	}
	return &Reloader{loader: loader, holder: holder, redis: client, channel: channel, log: log}
}

// Reload loads a fresh snapshot and swaps it in. On failure the current snapshot stays.
func (r *Reloader) Reload(ctx context.Context) error {
	snap, err := r.loader.Load(ctx)
	if err != nil {
		return err
	}
	v := r.holder.Swap(snap)
	r.log.Info("catalog swapped",
		"version", v,
		"source", snap.Source,
		"stations", snap.Stations.Len(),
		"fares", snap.Fares.Len(),
	)
	return nil
}

// Run blocks until ctx is done, reloading on every message on the channel.
func (r *Reloader) Run(ctx context.Context) {
	sub := r.redis.Subscribe(ctx, r.channel)
	defer sub.Close()

	ch := sub.Channel()
	r.log.Info("listening for catalog reloads", "channel", r.channel)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := r.Reload(ctx); err != nil {
				r.log.Error("catalog reload failed; keeping current snapshot", "error", err, "payload", msg.Payload)
			}
		}
	}
}

// Publish asks every subscribed API process to reload.
func Publish(ctx context.Context, client *redis.Client, channel, reason string) error {
	if channel == "" {
		channel = DefaultReloadChannel
	}
	return client.Publish(ctx, channel, reason).Err()
}
