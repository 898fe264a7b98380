package marketplace

import (
	"math/big"

	"github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/domain"
)

type ItemCreatedEvent struct {
	ItemId  *big.Int
	TokenId domain.TokenId
	Seller  domain.Address
	Owner   domain.Address
	Price   *big.Int
	Sold    bool
}

type ItemSoldEvent struct {
	ItemId  *big.Int
	TokenId domain.TokenId
	Seller  domain.Address
	Buyer   domain.Address
	Price   *big.Int
}

type ItemRelistedEvent struct {
	ItemId  *big.Int
	TokenId domain.TokenId
	Seller  domain.Address
	Price   *big.Int
}

type AuctionCreatedEvent struct {
	TokenId domain.TokenId
	Seller  domain.Address
	MinBid  *big.Int
	EndTime *big.Int
}

type BidPlacedEvent struct {
	TokenId domain.TokenId
	Bidder  domain.Address
	Amount  *big.Int
}

type AuctionEndedEvent struct {
	TokenId domain.TokenId
	Seller  domain.Address
	Winner  domain.Address
	Amount  *big.Int
}

// EventUseCase projects decoded marketplace events onto the nft item and
// activity read models. Handlers are idempotent under replay.
type EventUseCase interface {
	ItemCreated(ctx.Ctx, domain.ChainId, *ItemCreatedEvent, *domain.LogMeta) error
	ItemSold(ctx.Ctx, domain.ChainId, *ItemSoldEvent, *domain.LogMeta) error
	ItemRelisted(ctx.Ctx, domain.ChainId, *ItemRelistedEvent, *domain.LogMeta) error
	AuctionCreated(ctx.Ctx, domain.ChainId, *AuctionCreatedEvent, *domain.LogMeta) error
	BidPlaced(ctx.Ctx, domain.ChainId, *BidPlacedEvent, *domain.LogMeta) error
	AuctionEnded(ctx.Ctx, domain.ChainId, *AuctionEndedEvent, *domain.LogMeta) error
}
