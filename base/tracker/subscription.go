package tracker

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/base/metrics"
	"github.com/niftyhouse/indexer/domain"
)

var met = metrics.New("tracker", metrics.WithoutPodName())

type subscriptionCfg struct {
	client          domain.EthClientRepo
	contractAddress common.Address
	topic           common.Hash
	fromBlock       uint64
	interval        time.Duration
	handler         EventHandler
	blockTimeCache  *BlockTimeCache
	errorCh         chan<- error
}

// subscription polls one event signature at a fixed interval and feeds new
// logs to the handler. A transport or handler error is reported once on
// errorCh and stops the poll loop.
type subscription struct {
	subscriptionCfg
	lastBlock uint64
	stopCh    chan interface{}
	stoppedCh chan interface{}
}

func newSubscription(cfg *subscriptionCfg) *subscription {
	return &subscription{
		subscriptionCfg: *cfg,
		lastBlock:       cfg.fromBlock,
		stopCh:          make(chan interface{}),
		stoppedCh:       make(chan interface{}),
	}
}

func (s *subscription) start(ctx bCtx.Ctx) {
	go func() {
		defer close(s.stoppedCh)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				if err := s.poll(ctx); err != nil {
					s.errorCh <- err
					return
				}
			}
		}
	}()
}

func (s *subscription) stop() {
	close(s.stopCh)
	<-s.stoppedCh
}

func (s *subscription) poll(ctx bCtx.Ctx) error {
	head, err := s.client.BlockNumber(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.BlockNumber failed")
		return err
	}
	if head <= s.lastBlock {
		return nil
	}

	filter := ethereum.FilterQuery{
		Addresses: []common.Address{s.contractAddress},
		Topics:    [][]common.Hash{{s.topic}},
		FromBlock: new(big.Int).SetUint64(s.lastBlock + 1),
		ToBlock:   new(big.Int).SetUint64(head),
	}
	logs, err := s.client.FilterLogs(ctx, filter)
	if err != nil {
		ctx.WithField("err", err).Error("client.FilterLogs failed")
		return err
	}

	for _, l := range logs {
		blockTime, err := s.blockTimeCache.Get(ctx, l.BlockNumber)
		if err != nil {
			return err
		}
		batch := []logWithBlockTime{{Log: l, blockTime: blockTime}}
		if err := s.handler.ProcessEvents(ctx, batch); err != nil {
			return err
		}
	}

	s.lastBlock = head
	met.BumpAvg("lastBlock", float64(head))
	if len(logs) > 0 {
		met.BumpSum("logs.processed", float64(len(logs)))
	}
	return nil
}
