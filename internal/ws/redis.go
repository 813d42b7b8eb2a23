package ws

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var rdb *redis.Client

// SetRedisClient wires the Redis client used for the match event subscription.
func SetRedisClient(client *redis.Client) {
	rdb = client
}

// StartMatchEventSubscriber forwards match lifecycle events published on
// Redis to every connected spectator. Used when the manager runs with Redis;
// without it, spectators still get the periodic snapshots.
func StartMatchEventSubscriber(ctx context.Context, hub *Hub) {
	if rdb == nil {
		log.Println("[WS] Redis not configured; match event subscriber not started")
		return
	}

	go func() {
		sub := rdb.Subscribe(ctx, "match_events")
		defer sub.Close()
		log.Println("[WS] Match event subscriber started")

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				log.Println("[WS] Match event subscriber stopping")
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				hub.BroadcastRaw([]byte(msg.Payload))
			}
		}
	}()
}
