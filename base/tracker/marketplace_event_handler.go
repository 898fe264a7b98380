package tracker

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/niftyhouse/indexer/base/abi"
	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/domain"
	"github.com/niftyhouse/indexer/domain/marketplace"
)

var (
	marketItemCreatedSig  = abi.MarketplaceABI.Events["MarketItemCreated"].ID
	marketItemSoldSig     = abi.MarketplaceABI.Events["MarketItemSold"].ID
	marketItemRelistedSig = abi.MarketplaceABI.Events["MarketItemRelisted"].ID
	auctionCreatedSig     = abi.MarketplaceABI.Events["AuctionCreated"].ID
	bidPlacedSig          = abi.MarketplaceABI.Events["BidPlaced"].ID
	auctionEndedSig       = abi.MarketplaceABI.Events["AuctionEnded"].ID
)

// EventHandler consumes decoded marketplace logs in batch order.
type EventHandler interface {
	GetFilterTopics() [][]common.Hash
	ProcessEvents(bCtx.Ctx, []logWithBlockTime) error
}

type MarketplaceEventHandlerCfg struct {
	ChainId            int64
	MarketplaceEventUC marketplace.EventUseCase
}

type MarketplaceEventHandler struct {
	chainId            int64
	marketplaceEventUC marketplace.EventUseCase
}

func NewMarketplaceEventHandler(cfg *MarketplaceEventHandlerCfg) EventHandler {
	return &MarketplaceEventHandler{
		chainId:            cfg.ChainId,
		marketplaceEventUC: cfg.MarketplaceEventUC,
	}
}

func (h *MarketplaceEventHandler) GetFilterTopics() [][]common.Hash {
	return [][]common.Hash{
		{
			marketItemCreatedSig,
			marketItemSoldSig,
			marketItemRelistedSig,
			auctionCreatedSig,
			bidPlacedSig,
			auctionEndedSig,
		},
	}
}

func (h *MarketplaceEventHandler) ProcessEvents(ctx bCtx.Ctx, logs []logWithBlockTime) error {
	for i := range logs {
		log := &logs[i]
		if len(log.Topics) == 0 {
			continue
		}
		chainId := domain.ChainId(h.chainId)
		switch log.Topics[0] {
		case marketItemCreatedSig:
			e, err := toItemCreatedEvent(log)
			if err != nil {
				continue
			}
			if err := h.marketplaceEventUC.ItemCreated(ctx, chainId, e, toLogMeta(log)); err != nil {
				ctx.WithField("err", err).Error("marketplaceEventUC.ItemCreated failed")
				return err
			}
		case marketItemSoldSig:
			e, err := toItemSoldEvent(log)
			if err != nil {
				continue
			}
			if err := h.marketplaceEventUC.ItemSold(ctx, chainId, e, toLogMeta(log)); err != nil {
				ctx.WithField("err", err).Error("marketplaceEventUC.ItemSold failed")
				return err
			}
		case marketItemRelistedSig:
			e, err := toItemRelistedEvent(log)
			if err != nil {
				continue
			}
			if err := h.marketplaceEventUC.ItemRelisted(ctx, chainId, e, toLogMeta(log)); err != nil {
				ctx.WithField("err", err).Error("marketplaceEventUC.ItemRelisted failed")
				return err
			}
		case auctionCreatedSig:
			e, err := toAuctionCreatedEvent(log)
			if err != nil {
				continue
			}
			if err := h.marketplaceEventUC.AuctionCreated(ctx, chainId, e, toLogMeta(log)); err != nil {
				ctx.WithField("err", err).Error("marketplaceEventUC.AuctionCreated failed")
				return err
			}
		case bidPlacedSig:
			e, err := toBidPlacedEvent(log)
			if err != nil {
				continue
			}
			if err := h.marketplaceEventUC.BidPlaced(ctx, chainId, e, toLogMeta(log)); err != nil {
				ctx.WithField("err", err).Error("marketplaceEventUC.BidPlaced failed")
				return err
			}
		case auctionEndedSig:
			e, err := toAuctionEndedEvent(log)
			if err != nil {
				continue
			}
			if err := h.marketplaceEventUC.AuctionEnded(ctx, chainId, e, toLogMeta(log)); err != nil {
				ctx.WithField("err", err).Error("marketplaceEventUC.AuctionEnded failed")
				return err
			}
		default:
			// unknown event shape, skip for forward compatibility
		}
	}
	return nil
}

func toItemCreatedEvent(log *logWithBlockTime) (*marketplace.ItemCreatedEvent, error) {
	l, err := abi.ToMarketItemCreatedLog(&log.Log)
	if err != nil {
		return nil, err
	}
	return &marketplace.ItemCreatedEvent{
		ItemId:  l.ItemId,
		TokenId: domain.TokenId(l.TokenId.String()),
		Seller:  toDomainAddress(l.Seller),
		Owner:   toDomainAddress(l.Owner),
		Price:   l.Price,
		Sold:    l.Sold,
	}, nil
}

func toItemSoldEvent(log *logWithBlockTime) (*marketplace.ItemSoldEvent, error) {
	l, err := abi.ToMarketItemSoldLog(&log.Log)
	if err != nil {
		return nil, err
	}
	return &marketplace.ItemSoldEvent{
		ItemId:  l.ItemId,
		TokenId: domain.TokenId(l.TokenId.String()),
		Seller:  toDomainAddress(l.Seller),
		Buyer:   toDomainAddress(l.Buyer),
		Price:   l.Price,
	}, nil
}

func toItemRelistedEvent(log *logWithBlockTime) (*marketplace.ItemRelistedEvent, error) {
	l, err := abi.ToMarketItemRelistedLog(&log.Log)
	if err != nil {
		return nil, err
	}
	return &marketplace.ItemRelistedEvent{
		ItemId:  l.ItemId,
		TokenId: domain.TokenId(l.TokenId.String()),
		Seller:  toDomainAddress(l.Seller),
		Price:   l.Price,
	}, nil
}

func toAuctionCreatedEvent(log *logWithBlockTime) (*marketplace.AuctionCreatedEvent, error) {
	l, err := abi.ToAuctionCreatedLog(&log.Log)
	if err != nil {
		return nil, err
	}
	return &marketplace.AuctionCreatedEvent{
		TokenId: domain.TokenId(l.TokenId.String()),
		Seller:  toDomainAddress(l.Seller),
		MinBid:  l.MinBid,
		EndTime: l.EndTime,
	}, nil
}

func toBidPlacedEvent(log *logWithBlockTime) (*marketplace.BidPlacedEvent, error) {
	l, err := abi.ToBidPlacedLog(&log.Log)
	if err != nil {
		return nil, err
	}
	return &marketplace.BidPlacedEvent{
		TokenId: domain.TokenId(l.TokenId.String()),
		Bidder:  toDomainAddress(l.Bidder),
		Amount:  l.Amount,
	}, nil
}

func toAuctionEndedEvent(log *logWithBlockTime) (*marketplace.AuctionEndedEvent, error) {
	l, err := abi.ToAuctionEndedLog(&log.Log)
	if err != nil {
		return nil, err
	}
	return &marketplace.AuctionEndedEvent{
		TokenId: domain.TokenId(l.TokenId.String()),
		Seller:  toDomainAddress(l.Seller),
		Winner:  toDomainAddress(l.Winner),
		Amount:  l.Amount,
	}, nil
}
