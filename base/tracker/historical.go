package tracker

import (
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/base/log"
	"github.com/niftyhouse/indexer/domain"
)

type HistoricalSyncCfg struct {
	Client          domain.EthClientRepo
	ContractAddress common.Address
	StartBlock      uint64
	Handler         EventHandler
	BlockTimeCache  *BlockTimeCache
}

// HistoricalSync replays every marketplace log between the configured start
// block and the current head, in (blockNumber, logIndex) order. Sync reports
// the head block it covered so live polling can resume at head+1 without a
// gap.
type HistoricalSync struct {
	client          domain.EthClientRepo
	contractAddress common.Address
	startBlock      uint64
	handler         EventHandler
	blockTimeCache  *BlockTimeCache
}

func NewHistoricalSync(cfg *HistoricalSyncCfg) *HistoricalSync {
	return &HistoricalSync{
		client:          cfg.Client,
		contractAddress: cfg.ContractAddress,
		startBlock:      cfg.StartBlock,
		handler:         cfg.Handler,
		blockTimeCache:  cfg.BlockTimeCache,
	}
}

func (s *HistoricalSync) Sync(ctx bCtx.Ctx) (uint64, error) {
	head, err := s.client.BlockNumber(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.BlockNumber failed")
		return 0, err
	}

	filter := ethereum.FilterQuery{
		Addresses: []common.Address{s.contractAddress},
		FromBlock: new(big.Int).SetUint64(s.startBlock),
		ToBlock:   new(big.Int).SetUint64(head),
	}
	logs, err := s.client.FilterLogs(ctx, filter)
	if err != nil {
		ctx.WithField("err", err).Error("client.FilterLogs failed")
		return 0, err
	}

	// the total order later handlers depend on
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		return logs[i].Index < logs[j].Index
	})

	batch := make([]logWithBlockTime, 0, len(logs))
	for _, l := range logs {
		blockTime, err := s.blockTimeCache.Get(ctx, l.BlockNumber)
		if err != nil {
			return 0, err
		}
		batch = append(batch, logWithBlockTime{Log: l, blockTime: blockTime})
	}

	if err := s.handler.ProcessEvents(ctx, batch); err != nil {
		return 0, err
	}

	ctx.WithFields(log.Fields{
		"contract": s.contractAddress,
		"from":     s.startBlock,
		"to":       head,
		"numLogs":  len(logs),
	}).Info("historical sync done")
	return head, nil
}
