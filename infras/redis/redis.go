package redis

import (
	"context"
	"net"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"bazaar/config"
)

// Options maps the cache settings onto a go-redis client.
func Options(config *config.Config) *goRedis.Options {
	primary := config.Cache.Redis.Primary
	timeout := time.Duration(config.Cache.Redis.TimeoutMillis) * time.Millisecond

	return &goRedis.Options{
		Addr:         net.JoinHostPort(primary.Host, primary.Port),
		Password:     primary.Password,
		DB:           primary.DB,
		PoolSize:     config.Cache.Redis.PoolSize,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
}

// New connects to the primary. A failed ping is logged and the client is still returned;
// callers treat cache errors as misses.
func New(config *config.Config) *goRedis.Client {
	client := goRedis.NewClient(Options(config))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("addr", client.Options().Addr).Msg("Redis unreachable, continuing without cache")

		return client
	}

	log.Info().
		Int("db", config.Cache.Redis.Primary.DB).
		Str("addr", client.Options().Addr).
		Msg("Connected to Redis")

	return client
}
