package repository

import (
	"context"
	"encoding/json"
	"time"

	"posbuddy/internal/dto"

	"github.com/redis/go-redis/v9"
)

const precioCacheTTL = 4 * time.Hour

// PrecioCache caches public price lookups by barcode.
type PrecioCache interface {
	Get(ctx context.Context, barcode string) (*dto.ConsultaPreciosResponse, bool)
	Set(ctx context.Context, barcode string, resp dto.ConsultaPreciosResponse)
	Invalidate(ctx context.Context, barcodes ...string)
}

type redisPrecioCache struct{ rdb *redis.Client }

func NewRedisPrecioCache(rdb *redis.Client) PrecioCache { return &redisPrecioCache{rdb: rdb} }

func precioKey(barcode string) string { return "precio:" + barcode }

func (c *redisPrecioCache) Get(ctx context.Context, barcode string) (*dto.ConsultaPreciosResponse, bool) {
	cached, err := c.rdb.Get(ctx, precioKey(barcode)).Bytes()
	if err != nil {
		return nil, false
	}
	var resp dto.ConsultaPreciosResponse
	if err := json.Unmarshal(cached, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// Set is best effort; errors are ignored.
func (c *redisPrecioCache) Set(ctx context.Context, barcode string, resp dto.ConsultaPreciosResponse) {
	if b, err := json.Marshal(resp); err == nil {
		_ = c.rdb.Set(ctx, precioKey(barcode), b, precioCacheTTL).Err()
	}
}

func (c *redisPrecioCache) Invalidate(ctx context.Context, barcodes ...string) {
	keys := make([]string, 0, len(barcodes))
	for _, b := range barcodes {
		if b != "" {
			keys = append(keys, precioKey(b))
		}
	}
	if len(keys) == 0 {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}
