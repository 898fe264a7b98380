package tracker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/domain/mocks"
)

var errTest = errors.New("rpc exploded")

func TestWatcher_stopDuringBackoff(t *testing.T) {
	ctx := bCtx.Background()
	client := new(mocks.EthClientRepo)

	// every pipeline attempt fails immediately, keeping the watcher in
	// its restart backoff
	client.On("BlockNumber", mock.Anything).Return(uint64(0), errTest)

	w := NewWatcher(&WatcherCfg{
		Client:       client,
		Handler:      &recordingHandler{},
		PollInterval: time.Millisecond,
	})
	w.Start(ctx)
	time.Sleep(10 * time.Millisecond)

	done := make(chan interface{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return while backing off")
	}
}

func TestWatcher_stopIsIdempotent(t *testing.T) {
	ctx := bCtx.Background()
	client := new(mocks.EthClientRepo)
	client.On("BlockNumber", mock.Anything).Return(uint64(100), nil)
	client.On("FilterLogs", mock.Anything, mock.Anything).Return([]types.Log{}, nil)

	w := NewWatcher(&WatcherCfg{
		Client:       client,
		Handler:      &recordingHandler{},
		PollInterval: time.Hour,
	})
	w.Start(ctx)
	time.Sleep(10 * time.Millisecond)

	w.Stop()
	w.Stop()
}

func TestWatcher_contextCancelStops(t *testing.T) {
	ctx, cancel := bCtx.WithCancel(bCtx.Background())
	client := new(mocks.EthClientRepo)
	client.On("BlockNumber", mock.Anything).Return(uint64(100), nil)
	client.On("FilterLogs", mock.Anything, mock.Anything).Return([]types.Log{}, nil)

	w := NewWatcher(&WatcherCfg{
		Client:       client,
		Handler:      &recordingHandler{},
		PollInterval: time.Hour,
	})
	w.Start(ctx)
	time.Sleep(10 * time.Millisecond)
	cancel()

	done := make(chan interface{})
	go func() {
		w.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on context cancellation")
	}
}

func TestWatcher_liveResumesWhereBackfillEnded(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.EthClientRepo)
	handler := &recordingHandler{}

	var mu sync.Mutex
	var polled []ethereum.FilterQuery

	// backfill sees head 100; the chain advances to 105 before polling starts
	client.On("BlockNumber", mock.Anything).Return(uint64(100), nil).Once()
	client.On("BlockNumber", mock.Anything).Return(uint64(105), nil)
	client.On("FilterLogs", mock.Anything, mock.Anything).Return([]types.Log{}, nil).Once()
	client.On("FilterLogs", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			mu.Lock()
			polled = append(polled, args.Get(1).(ethereum.FilterQuery))
			mu.Unlock()
		}).
		Return([]types.Log{{BlockNumber: 102, Index: 0}}, nil)
	client.On("HeaderByNumber", mock.Anything, mock.Anything).Return(header(1650000000), nil)

	w := NewWatcher(&WatcherCfg{
		Client:          client,
		ContractAddress: testContract,
		StartBlock:      1,
		Handler:         handler,
		PollInterval:    time.Millisecond,
	})
	w.Start(ctx)

	deadline := time.After(time.Second)
	for {
		mu.Lock()
		n := len(polled)
		mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("no live poll happened")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	w.Stop()

	// the first live range starts right after the backfill head, so blocks
	// 101-105 are not skipped
	mu.Lock()
	defer mu.Unlock()
	req.Equal(uint64(101), polled[0].FromBlock.Uint64())
	req.Equal(uint64(105), polled[0].ToBlock.Uint64())
}

func TestSubscription_pollAdvancesCursor(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.EthClientRepo)
	handler := &recordingHandler{}

	client.On("BlockNumber", mock.Anything).Return(uint64(105), nil).Once()
	client.On("FilterLogs", mock.Anything, mock.Anything).
		Return([]types.Log{{BlockNumber: 101, Index: 0}, {BlockNumber: 103, Index: 2}}, nil).
		Once()
	client.On("HeaderByNumber", mock.Anything, mock.Anything).Return(header(1650000000), nil)

	sub := newSubscription(&subscriptionCfg{
		client:          client,
		contractAddress: testContract,
		fromBlock:       100,
		interval:        time.Hour,
		handler:         handler,
		blockTimeCache:  NewBlockTimeCache(client),
		errorCh:         make(chan error, 1),
	})

	req.NoError(sub.poll(ctx))
	req.Equal(uint64(105), sub.lastBlock)
	// one single-log batch per log keeps intra-poll ordering
	req.Len(handler.batches, 2)
	req.Len(handler.batches[0], 1)

	// nothing new past the cursor
	client.On("BlockNumber", mock.Anything).Return(uint64(105), nil).Once()
	req.NoError(sub.poll(ctx))
	req.Len(handler.batches, 2)
}

func TestSubscription_handlerErrorStopsPolling(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.EthClientRepo)
	handler := &recordingHandler{err: errTest}

	client.On("BlockNumber", mock.Anything).Return(uint64(105), nil)
	client.On("FilterLogs", mock.Anything, mock.Anything).
		Return([]types.Log{{BlockNumber: 101}}, nil)
	client.On("HeaderByNumber", mock.Anything, mock.Anything).Return(header(1650000000), nil)

	errorCh := make(chan error, 1)
	sub := newSubscription(&subscriptionCfg{
		client:          client,
		contractAddress: testContract,
		fromBlock:       100,
		interval:        time.Millisecond,
		handler:         handler,
		blockTimeCache:  NewBlockTimeCache(client),
		errorCh:         errorCh,
	})
	sub.start(ctx)

	select {
	case err := <-errorCh:
		req.ErrorIs(err, errTest)
	case <-time.After(time.Second):
		t.Fatal("subscription did not report the handler error")
	}
	<-sub.stoppedCh
}
