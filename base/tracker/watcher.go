package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/niftyhouse/indexer/base/backoff"
	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/domain"
)

const (
	defaultPollInterval = 10 * time.Second
	restartBackoffStart = time.Second
	restartBackoffLimit = 30 * time.Second
)

type WatcherCfg struct {
	Client          domain.EthClientRepo
	ContractAddress common.Address
	StartBlock      uint64
	PollInterval    time.Duration
	Handler         EventHandler
}

// Watcher owns the full ingestion pipeline: one historical sync pass
// followed by one polling subscription per event signature. Any
// subscription error tears the whole pipeline down and restarts it from
// historical sync after an exponential backoff. The backoff resets once a
// restart reaches the subscription phase cleanly.
type Watcher struct {
	client          domain.EthClientRepo
	contractAddress common.Address
	startBlock      uint64
	pollInterval    time.Duration
	handler         EventHandler
	blockTimeCache  *BlockTimeCache

	stopOnce  sync.Once
	stopCh    chan interface{}
	stoppedCh chan interface{}
}

func NewWatcher(cfg *WatcherCfg) *Watcher {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Watcher{
		client:          cfg.Client,
		contractAddress: cfg.ContractAddress,
		startBlock:      cfg.StartBlock,
		pollInterval:    interval,
		handler:         cfg.Handler,
		blockTimeCache:  NewBlockTimeCache(cfg.Client),
		stopCh:          make(chan interface{}),
		stoppedCh:       make(chan interface{}),
	}
}

func (w *Watcher) Start(ctx bCtx.Ctx) {
	go w.loop(ctx)
}

// Stop tears down all subscriptions and cancels any pending restart.
// Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
	<-w.stoppedCh
}

func (w *Watcher) Wait() {
	<-w.stoppedCh
}

func (w *Watcher) loop(ctx bCtx.Ctx) {
	defer close(w.stoppedCh)
	bo := backoff.NewExponential(restartBackoffStart, restartBackoffLimit)
	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}

		if err := w.runOnce(ctx, bo); err != nil {
			ctx.WithField("err", err).Error("watcher pipeline failed, restarting")
			if err := w.sleep(ctx, bo); err != nil {
				return
			}
			continue
		}
		return
	}
}

// runOnce runs historical sync and then blocks on the subscriptions until
// one of them fails or the watcher is stopped.
func (w *Watcher) runOnce(ctx bCtx.Ctx, bo *backoff.Backoff) error {
	sync := NewHistoricalSync(&HistoricalSyncCfg{
		Client:          w.client,
		ContractAddress: w.contractAddress,
		StartBlock:      w.startBlock,
		Handler:         w.handler,
		BlockTimeCache:  w.blockTimeCache,
	})
	// subscriptions resume from the head the backfill covered, so no block
	// falls between the two phases
	coveredHead, err := sync.Sync(ctx)
	if err != nil {
		return err
	}

	errorCh := make(chan error, 16)
	var subs []*subscription
	for _, topics := range w.handler.GetFilterTopics() {
		for _, topic := range topics {
			sub := newSubscription(&subscriptionCfg{
				client:          w.client,
				contractAddress: w.contractAddress,
				topic:           topic,
				fromBlock:       coveredHead,
				interval:        w.pollInterval,
				handler:         w.handler,
				blockTimeCache:  w.blockTimeCache,
				errorCh:         errorCh,
			})
			sub.start(ctx)
			subs = append(subs, sub)
		}
	}
	defer func() {
		for _, sub := range subs {
			sub.stop()
		}
	}()

	// clean start reached, following failures back off from scratch
	bo.Reset()

	select {
	case <-w.stopCh:
		return nil
	case <-ctx.Done():
		return nil
	case err := <-errorCh:
		return err
	}
}

func (w *Watcher) sleep(ctx bCtx.Ctx, bo *backoff.Backoff) error {
	sleepCtx, cancelSleep := context.WithCancel(ctx)
	defer cancelSleep()
	sleepDone := make(chan error, 1)
	go func() {
		sleepDone <- bo.Backoff(sleepCtx)
	}()
	select {
	case <-w.stopCh:
		cancelSleep()
		<-sleepDone
		return domain.ErrStopped
	case err := <-sleepDone:
		return err
	}
}
