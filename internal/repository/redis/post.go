package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/triplog/triplog-backend/domain"
)

const (
	KeyPost            = "post:%d"
	KeyViewsBuffer     = "post:views:buffer"
	KeyViewsProcessing = "post:views:processing"

	postTTL = 10 * time.Minute
)

type postCache struct {
	client *redis.Client
}

var _ domain.PostCache = (*postCache)(nil)

func NewPostCache(client *redis.Client) *postCache {
	return &postCache{
		client,
	}
}

func (c *postCache) GetPost(ctx context.Context, id int64) (res domain.Post, err error) {
	key := fmt.Sprintf(KeyPost, id)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Post{}, domain.ErrCacheMiss
	} else if err != nil {
		return domain.Post{}, err
	}
	if err = json.Unmarshal(data, &res); err != nil {
		return domain.Post{}, err
	}
	return
}

func (c *postCache) SetPost(ctx context.Context, p *domain.Post) (err error) {
	key := fmt.Sprintf(KeyPost, p.ID)
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	err = c.client.Set(ctx, key, data, postTTL).Err()
	return
}

func (c *postCache) DeletePost(ctx context.Context, id int64) error {
	key := fmt.Sprintf(KeyPost, id)
	return c.client.Del(ctx, key).Err()
}

// IncrViews buffers one view in a redis hash so the hot read path never
// issues a database write. The sync worker drains the buffer.
func (c *postCache) IncrViews(ctx context.Context, id int64) (int64, error) {
	return c.client.HIncrBy(ctx, KeyViewsBuffer, strconv.FormatInt(id, 10), 1).Result()
}

// FetchAndResetViews swaps the live buffer out via RENAME first so views
// arriving during the drain land in a fresh buffer instead of being lost.
// RENAME errors on a missing source key, so an idle buffer is detected
// up front with EXISTS rather than surfacing as an error every tick.
func (c *postCache) FetchAndResetViews(ctx context.Context) (map[int64]int64, error) {
	result := make(map[int64]int64)
	n, err := c.client.Exists(ctx, KeyViewsBuffer).Result()
	if err != nil {
		return result, err
	}
	if n == 0 {
		return result, nil
	}

	if err := c.client.Rename(ctx, KeyViewsBuffer, KeyViewsProcessing).Err(); err != nil {
		return result, err
	}

	data, err := c.client.HGetAll(ctx, KeyViewsProcessing).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return result, nil
		}
		return result, err
	}

	for idStr, viewsStr := range data {
		id, _ := strconv.ParseInt(idStr, 10, 64)
		views, _ := strconv.ParseInt(viewsStr, 10, 64)
		result[id] = views
	}

	c.client.Del(ctx, KeyViewsProcessing)

	return result, nil
}
