package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
	"github.com/Apurer/cell-tech-api/internal/domains/sales/ports"
	"github.com/Apurer/cell-tech-api/internal/shared/calendar"
)

const defaultPrefix = "celltech"

// StatisticsCache stores dense series under a generation number. Recording
// a sale bumps the generation, which orphans every older entry until its TTL runs out.
type StatisticsCache struct {
	client goredis.Cmdable
	ttl    time.Duration
	prefix string
}

var _ ports.StatisticsCache = (*StatisticsCache)(nil)

func NewStatisticsCache(client goredis.Cmdable, ttl time.Duration) *StatisticsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &StatisticsCache{client: client, ttl: ttl, prefix: defaultPrefix}
}

func (c *StatisticsCache) Get(ctx context.Context, key ports.StatisticsKey) (*domain.Statistics, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	raw, err := c.client.Get(ctx, c.entryKey(gen, key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, err
	}
	var stats domain.Statistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, gen, false, err
	}
	return &stats, gen, true, nil
}

// Set stores stats under gen, the generation the caller read before querying.
// If a sale bumped the generation meanwhile, the entry is orphaned on arrival.
func (c *StatisticsCache) Set(ctx context.Context, key ports.StatisticsKey, gen int64, stats *domain.Statistics) error {
	if stats == nil {
		return nil
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.entryKey(gen, key), raw, c.ttl).Err()
}

func (c *StatisticsCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, c.generationKey()).Err()
}

func (c *StatisticsCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *StatisticsCache) generationKey() string {
	return c.prefix + ":stats:gen"
}

func (c *StatisticsCache) entryKey(gen int64, key ports.StatisticsKey) string {
	seller := "all"
	if key.SellerID != nil {
		seller = key.SellerID.String()
	}
	return fmt.Sprintf("%s:stats:%d:%s:%d:%s", c.prefix, gen, calendar.DayKey(key.Today), key.Days, seller)
}
