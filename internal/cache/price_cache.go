package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fuelpos/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	priceKeyPrefix = "price:"
	priceTTL       = 4 * time.Hour

	fieldRank = "rank"
	fieldRow  = "row"

	storeAttempts = 3
)

// PriceCache keeps the current row of each price bucket in Redis.
// It fails safe: a nil client or any Redis error behaves like a miss.
//
// Each bucket is a hash {rank, row}. A row only replaces the cached one when
// its rank is higher, so a reader that loaded a superseded row from the
// database can never overwrite the row a price update stored.
type PriceCache struct {
	rdb *redis.Client
}

func NewPriceCache(rdb *redis.Client) *PriceCache {
	return &PriceCache{rdb: rdb}
}

func priceKey(bucket model.PriceBucket) string { return priceKeyPrefix + string(bucket) }

// rank orders rows the way the price log does: effective date, then seq.
// Fixed width makes string comparison equal numeric comparison.
func rank(p *model.Price) string {
	return fmt.Sprintf("%020d:%020d", p.EffectiveDate.UnixNano(), p.Seq)
}

// Get returns the cached row of bucket, or nil on a miss.
func (c *PriceCache) Get(ctx context.Context, bucket model.PriceBucket) *model.Price {
	if c == nil || c.rdb == nil {
		return nil
	}
	raw, err := c.rdb.HGet(ctx, priceKey(bucket), fieldRow).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Debug().Err(err).Str("bucket", string(bucket)).Msg("price cache read failed")
		}
		return nil
	}
	var p model.Price
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return &p
}

// Set stores p unless the cache already holds the same or a newer row of its bucket.
func (c *PriceCache) Set(ctx context.Context, p *model.Price) {
	if c == nil || c.rdb == nil || p == nil {
		return
	}
	if err := c.store(ctx, p); err != nil {
		log.Debug().Err(err).Str("bucket", string(p.Name)).Msg("price cache write failed")
	}
}

// Publish stores freshly appended rows. When a row cannot be stored its bucket
// is dropped so the next read goes to the database.
func (c *PriceCache) Publish(ctx context.Context, rows ...model.Price) {
	if c == nil || c.rdb == nil {
		return
	}
	for i := range rows {
		if err := c.store(ctx, &rows[i]); err != nil {
			log.Warn().Err(err).Str("bucket", string(rows[i].Name)).Msg("price cache publish failed")
			c.Invalidate(ctx, rows[i].Name)
		}
	}
}

func (c *PriceCache) store(ctx context.Context, p *model.Price) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	key, r := priceKey(p.Name), rank(p)

	for attempt := 0; attempt < storeAttempts; attempt++ {
		err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
			cur, err := tx.HGet(ctx, key, fieldRank).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
			if err == nil && cur >= r {
				return nil
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.HSet(ctx, key, fieldRank, r, fieldRow, raw)
				pipe.Expire(ctx, key, priceTTL)
				return nil
			})
			return err
		}, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}

// Invalidate drops the given buckets so the next read goes to the database.
func (c *PriceCache) Invalidate(ctx context.Context, buckets ...model.PriceBucket) {
	if c == nil || c.rdb == nil || len(buckets) == 0 {
		return
	}
	keys := make([]string, len(buckets))
	for i, b := range buckets {
		keys[i] = priceKey(b)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("price cache invalidation failed")
	}
}
