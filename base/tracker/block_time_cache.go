package tracker

import (
	"math/big"
	"sync"
	"time"

	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/domain"
)

// BlockTimeCache memoizes block timestamps for the lifetime of the owning
// engine. Block timestamps are immutable, so entries are never evicted.
type BlockTimeCache struct {
	client domain.EthClientRepo
	mu     sync.Mutex
	times  map[uint64]time.Time
}

func NewBlockTimeCache(client domain.EthClientRepo) *BlockTimeCache {
	return &BlockTimeCache{
		client: client,
		times:  map[uint64]time.Time{},
	}
}

func (c *BlockTimeCache) Get(ctx bCtx.Ctx, blockNumber uint64) (time.Time, error) {
	c.mu.Lock()
	if t, ok := c.times[blockNumber]; ok {
		c.mu.Unlock()
		return t, nil
	}
	c.mu.Unlock()

	header, err := c.client.HeaderByNumber(ctx, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		ctx.WithField("err", err).Error("client.HeaderByNumber failed")
		return time.Time{}, err
	}
	t := time.Unix(int64(header.Time), 0)

	c.mu.Lock()
	c.times[blockNumber] = t
	c.mu.Unlock()
	return t, nil
}
