package extindexer

import (
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/base/log"
	"github.com/niftyhouse/indexer/domain"
	"github.com/niftyhouse/indexer/domain/nftitem"
	"github.com/niftyhouse/indexer/service/moralis"
)

const (
	minRefreshInterval     = time.Minute
	defaultRefreshInterval = 5 * time.Minute
	refreshTopN            = 50
)

var weiPerEth = decimal.New(1, 18)

type PriceRefresherCfg struct {
	Moralis     moralis.Client
	NftitemRepo nftitem.Repo
	Interval    time.Duration
}

// PriceRefresher periodically re-prices the most viewed external items from
// their collection floor price. A failed tick is logged and the next tick
// proceeds normally.
type PriceRefresher struct {
	moralis     moralis.Client
	nftitemRepo nftitem.Repo
	interval    time.Duration
	stopCh      chan interface{}
	stoppedCh   chan interface{}
}

func NewPriceRefresher(cfg *PriceRefresherCfg) *PriceRefresher {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	if interval < minRefreshInterval {
		interval = minRefreshInterval
	}
	return &PriceRefresher{
		moralis:     cfg.Moralis,
		nftitemRepo: cfg.NftitemRepo,
		interval:    interval,
		stopCh:      make(chan interface{}),
		stoppedCh:   make(chan interface{}),
	}
}

func (r *PriceRefresher) Start(ctx bCtx.Ctx) {
	go r.loop(ctx)
}

func (r *PriceRefresher) Stop() {
	close(r.stopCh)
	<-r.stoppedCh
}

func (r *PriceRefresher) loop(ctx bCtx.Ctx) {
	defer close(r.stoppedCh)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case <-ticker.C:
			if err := r.RunOnce(ctx); err != nil {
				ctx.WithField("err", err).Error("r.RunOnce failed")
			}
		}
	}
}

// RunOnce refreshes prices for the current top viewed external items. It is
// also invoked directly by the manual trigger endpoint.
func (r *PriceRefresher) RunOnce(ctx bCtx.Ctx) error {
	items, err := r.nftitemRepo.FindAll(ctx,
		nftitem.WithIsExternal(true),
		nftitem.WithViewedGT(0),
		nftitem.WithSort("viewed", domain.SortDirDesc),
		// equal view counts resolve to the freshest items
		nftitem.WithSecondarySort("updatedAt", domain.SortDirDesc),
		nftitem.WithPagination(0, refreshTopN),
	)
	if err != nil {
		ctx.WithField("err", err).Error("nftitemRepo.FindAll failed")
		return err
	}
	if len(items) == 0 {
		return nil
	}

	// one floor price lookup per contract
	floors := map[nftContract]string{}
	for _, item := range items {
		key := nftContract{item.ChainId, item.ContractAddress.ToLower()}
		if _, ok := floors[key]; ok {
			continue
		}
		price, err := r.floorPriceWei(ctx, key.chainId, key.contract)
		if err != nil {
			ctx.WithFields(log.Fields{
				"chainId":  key.chainId,
				"contract": key.contract,
				"err":      err,
			}).Warn("r.floorPriceWei failed")
			continue
		}
		floors[key] = price
	}

	updated := 0
	for _, item := range items {
		price, ok := floors[nftContract{item.ChainId, item.ContractAddress.ToLower()}]
		if !ok || price == item.Price {
			continue
		}
		if err := r.nftitemRepo.Patch(ctx,
			nftitem.PatchableNftItem{Price: &price},
			nftitem.WithChainId(item.ChainId),
			nftitem.WithContractAddresses([]domain.Address{item.ContractAddress}),
			nftitem.WithTokenId(item.TokenId),
			nftitem.WithIsExternal(true),
		); err != nil && err != domain.ErrNotFound {
			ctx.WithFields(log.Fields{
				"contract": item.ContractAddress,
				"tokenId":  item.TokenId,
				"err":      err,
			}).Error("nftitemRepo.Patch failed")
			continue
		}
		updated++
	}

	ctx.WithFields(log.Fields{
		"items":     len(items),
		"contracts": len(floors),
		"updated":   updated,
	}).Info("price refresh finished")
	return nil
}

func (r *PriceRefresher) floorPriceWei(ctx bCtx.Ctx, chainId domain.ChainId, contract domain.Address) (string, error) {
	resp, err := r.moralis.GetContractFloorPrice(ctx, int32(chainId), string(contract))
	if err != nil {
		return "", err
	}
	wei := decimal.NewFromFloat(resp.FloorPrice).Mul(weiPerEth)
	return wei.Truncate(0).String(), nil
}

type nftContract struct {
	chainId  domain.ChainId
	contract domain.Address
}
