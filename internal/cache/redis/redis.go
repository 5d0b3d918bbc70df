// Package redis is implementation of cache storage over redis.
package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iftakhar005/talenthunt/internal/cache"
)

var log = logrus.WithField("layer", "cache").WithField("package", "redis")

type storage struct {
	c      goredis.Cmdable
	prefix string
}

// New returns cache storage which keeps items in redis under prefix.
func New(c goredis.Cmdable, prefix string) cache.Storage {
	return storage{
		c:      c,
		prefix: prefix,
	}
}

const scanCount = 100

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`) // nolint:gochecknoglobals

func (s storage) key(k string) string {
	return s.prefix + k
}

func (s storage) Get(ctx context.Context, key string) []byte {
	b, err := s.c.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			log.WithError(err).WithField("key", key).Warn("failed to get cached item")
		}
		return nil
	}

	return b
}

func (s storage) Set(ctx context.Context, key string, content []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	if err := s.c.Set(ctx, s.key(key), content, ttl).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to cache item")
	}
}

func (s storage) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}

	k := make([]string, len(keys))
	for i := range keys {
		k[i] = s.key(keys[i])
	}

	if err := s.c.Del(ctx, k...).Err(); err != nil {
		log.WithError(err).WithField("keys", keys).Warn("failed to delete cached items")
	}
}

func (s storage) DeletePrefix(ctx context.Context, prefixes ...string) {
	var keys []string
	for _, p := range prefixes {
		it := s.c.Scan(ctx, 0, globEscaper.Replace(s.key(p))+"*", scanCount).Iterator()
		for it.Next(ctx) {
			keys = append(keys, it.Val())
		}
		if err := it.Err(); err != nil {
			log.WithError(err).WithField("prefix", p).Warn("failed to scan cached items")
			return
		}
	}

	if len(keys) == 0 {
		return
	}

	if err := s.c.Del(ctx, keys...).Err(); err != nil {
		log.WithError(err).WithField("prefixes", prefixes).Warn("failed to delete cached items")
	}
}
