package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/domain/mocks"
)

func TestBlockTimeCache_memoizes(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.EthClientRepo)
	client.On("HeaderByNumber", mock.Anything, mock.Anything).Return(header(1650000000), nil)

	cache := NewBlockTimeCache(client)

	got, err := cache.Get(ctx, 100)
	req.NoError(err)
	req.Equal(time.Unix(1650000000, 0), got)

	// second hit comes from the cache
	got, err = cache.Get(ctx, 100)
	req.NoError(err)
	req.Equal(time.Unix(1650000000, 0), got)
	client.AssertNumberOfCalls(t, "HeaderByNumber", 1)
}

func TestBlockTimeCache_errorIsNotCached(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.EthClientRepo)
	client.On("HeaderByNumber", mock.Anything, mock.Anything).Return(nil, errTest).Once()
	client.On("HeaderByNumber", mock.Anything, mock.Anything).Return(header(1650000000), nil).Once()

	cache := NewBlockTimeCache(client)

	_, err := cache.Get(ctx, 100)
	req.ErrorIs(err, errTest)

	got, err := cache.Get(ctx, 100)
	req.NoError(err)
	req.Equal(time.Unix(1650000000, 0), got)
}
