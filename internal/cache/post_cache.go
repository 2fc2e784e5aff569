// Package cache holds the optional read-through cache for single posts.
// It sits outside the process, in redis, and every write path on a post
// evicts the entry, so a stale read lasts at most one TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/inkwell/blogapi/internal/domain/post"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "blogapi:post:"

// ResultObserver counts hit/miss/error outcomes.
type ResultObserver interface {
	ObserveCache(result string)
}

type PostCache struct {
	rdb redis.Cmdable
	ttl time.Duration
	obs ResultObserver
}

func NewPostCache(rdb redis.Cmdable, ttl time.Duration, obs ResultObserver) *PostCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &PostCache{rdb: rdb, ttl: ttl, obs: obs}
}

func (c *PostCache) Get(ctx context.Context, id string) (post.Post, bool) {
	raw, err := c.rdb.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.observe("miss")
		} else {
			c.observe("error")
		}
		return post.Post{}, false
	}

	var p post.Post
	if err := json.Unmarshal(raw, &p); err != nil {
		c.observe("error")
		return post.Post{}, false
	}

	c.observe("hit")
	return p, true
}

func (c *PostCache) Set(ctx context.Context, p post.Post) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, keyPrefix+p.ID, raw, c.ttl).Err()
}

func (c *PostCache) Delete(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, keyPrefix+id).Err()
}

func (c *PostCache) observe(result string) {
	if c.obs != nil {
		c.obs.ObserveCache(result)
	}
}
