package usecase

import (
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/base/log"
	"github.com/niftyhouse/indexer/base/normalize"
	"github.com/niftyhouse/indexer/base/ptr"
	"github.com/niftyhouse/indexer/domain"
	"github.com/niftyhouse/indexer/domain/activity"
	"github.com/niftyhouse/indexer/domain/marketplace"
	"github.com/niftyhouse/indexer/domain/nftitem"
	"github.com/niftyhouse/indexer/service/chain/contract"
)

type MarketplaceEventUseCaseCfg struct {
	NftitemRepo         nftitem.Repo
	ActivityRepo        activity.Repo
	WebResource         domain.WebResourceUseCase
	MarketplaceContract contract.MarketplaceContract
}

// marketplaceEventUseCase projects marketplace events onto nft item and
// activity records. Every mutation is an absolute-value write, so replaying
// a log is harmless.
type marketplaceEventUseCase struct {
	nftitemRepo         nftitem.Repo
	activityRepo        activity.Repo
	webResource         domain.WebResourceUseCase
	marketplaceContract contract.MarketplaceContract
}

func NewMarketplaceEventUseCase(cfg *MarketplaceEventUseCaseCfg) marketplace.EventUseCase {
	return &marketplaceEventUseCase{
		nftitemRepo:         cfg.NftitemRepo,
		activityRepo:        cfg.ActivityRepo,
		webResource:         cfg.WebResource,
		marketplaceContract: cfg.MarketplaceContract,
	}
}

func (u *marketplaceEventUseCase) ItemCreated(c bCtx.Ctx, chainId domain.ChainId, e *marketplace.ItemCreatedEvent, meta *domain.LogMeta) error {
	md := u.fetchMetadata(c, chainId, meta.ContractAddress, e.TokenId)

	value := nftitem.PatchableNftItem{
		Seller:      e.Seller.ToLowerPtr(),
		Owner:       e.Owner.ToLowerPtr(),
		Price:       ptr.String(bigIntString(e.Price)),
		Sold:        ptr.Bool(false),
		Name:        ptr.String(md.Name),
		Description: ptr.String(md.Description),
		ImageUrl:    ptr.String(md.Image),
		Category:    ptr.String(md.Category),
		BlockNumber: &meta.BlockNumber,
		ListedAt:    &meta.BlockTime,
	}
	if len(md.AnimationUrl) > 0 {
		value.AnimationUrl = ptr.String(md.AnimationUrl)
	}
	mimeType := u.resolveMime(c, md)
	mediaType := normalize.ClassifyMedia(mimeType, md.Image, md.AnimationUrl)
	value.MediaType = &mediaType
	if len(mimeType) > 0 {
		value.MimeType = ptr.String(mimeType)
	}

	setOnInsert := nftitem.InsertOnlyNftItem{
		Creator:   e.Seller.ToLower(),
		CreatedAt: meta.BlockTime,
	}

	if e.ItemId != nil {
		// itemId is stable per listing, keep the latest one
		value.ItemId = ptr.String(e.ItemId.String())
	}

	if err := u.nftitemRepo.PatchUpsert(c, value, setOnInsert,
		nftitem.WithChainId(chainId),
		nftitem.WithTokenId(e.TokenId),
		nftitem.WithIsExternal(false),
	); err != nil {
		c.WithField("err", err).Error("nftitemRepo.PatchUpsert failed")
		return err
	}

	mint := &activity.Activity{
		EventId:     activity.EventId(meta.BlockNumber, meta.LogIndex, "MarketItemCreated", activity.TypeMint),
		Type:        activity.TypeMint,
		From:        domain.EmptyAddress,
		To:          e.Seller.ToLower(),
		TokenId:     e.TokenId,
		BlockNumber: meta.BlockNumber,
		TxHash:      meta.TxHash,
		LogIndex:    int64(meta.LogIndex),
		Time:        meta.BlockTime,
	}
	if err := u.activityRepo.UpsertByEventId(c, mint); err != nil {
		c.WithField("err", err).Error("activityRepo.UpsertByEventId failed")
		return err
	}

	list := &activity.Activity{
		EventId:     activity.EventId(meta.BlockNumber, meta.LogIndex, "MarketItemCreated", activity.TypeList),
		Type:        activity.TypeList,
		From:        e.Seller.ToLower(),
		To:          meta.ContractAddress.ToLower(),
		TokenId:     e.TokenId,
		Price:       bigIntString(e.Price),
		BlockNumber: meta.BlockNumber,
		TxHash:      meta.TxHash,
		LogIndex:    int64(meta.LogIndex),
		Time:        meta.BlockTime,
	}
	if err := u.activityRepo.UpsertByEventId(c, list); err != nil {
		c.WithField("err", err).Error("activityRepo.UpsertByEventId failed")
		return err
	}

	return nil
}

func (u *marketplaceEventUseCase) ItemSold(c bCtx.Ctx, chainId domain.ChainId, e *marketplace.ItemSoldEvent, meta *domain.LogMeta) error {
	item, err := u.findItem(c, chainId, e.ItemId, e.TokenId)
	if err != nil {
		if err == domain.ErrNotFound {
			c.WithField("tokenId", e.TokenId).Warn("sold event for unknown item, skipping")
			return nil
		}
		return err
	}

	priorSeller := item.Seller

	value := nftitem.PatchableNftItem{
		Owner:  e.Buyer.ToLowerPtr(),
		Seller: domain.EmptyAddress.ToLowerPtr(),
		Sold:   ptr.Bool(true),
		Price:  ptr.String(bigIntString(e.Price)),
		SoldAt: &meta.BlockTime,
	}
	if err := u.patchItem(c, chainId, item, value); err != nil {
		return err
	}

	sell := &activity.Activity{
		EventId:     activity.EventId(meta.BlockNumber, meta.LogIndex, "MarketItemSold", activity.TypeSell),
		Type:        activity.TypeSell,
		From:        priorSeller.ToLower(),
		To:          e.Buyer.ToLower(),
		TokenId:     e.TokenId,
		Price:       bigIntString(e.Price),
		BlockNumber: meta.BlockNumber,
		TxHash:      meta.TxHash,
		LogIndex:    int64(meta.LogIndex),
		Time:        meta.BlockTime,
	}
	if err := u.activityRepo.UpsertByEventId(c, sell); err != nil {
		c.WithField("err", err).Error("activityRepo.UpsertByEventId failed")
		return err
	}

	return nil
}

func (u *marketplaceEventUseCase) ItemRelisted(c bCtx.Ctx, chainId domain.ChainId, e *marketplace.ItemRelistedEvent, meta *domain.LogMeta) error {
	item, err := u.findItem(c, chainId, e.ItemId, e.TokenId)
	if err != nil {
		if err == domain.ErrNotFound {
			c.WithField("tokenId", e.TokenId).Warn("relisted event for unknown item, skipping")
			return nil
		}
		return err
	}

	value := nftitem.PatchableNftItem{
		Seller:   e.Seller.ToLowerPtr(),
		Owner:    meta.ContractAddress.ToLowerPtr(),
		Sold:     ptr.Bool(false),
		Price:    ptr.String(bigIntString(e.Price)),
		ListedAt: &meta.BlockTime,
	}
	if err := u.patchItem(c, chainId, item, value); err != nil {
		return err
	}

	list := &activity.Activity{
		EventId:     activity.EventId(meta.BlockNumber, meta.LogIndex, "MarketItemRelisted", activity.TypeList),
		Type:        activity.TypeList,
		From:        e.Seller.ToLower(),
		To:          meta.ContractAddress.ToLower(),
		TokenId:     e.TokenId,
		Price:       bigIntString(e.Price),
		BlockNumber: meta.BlockNumber,
		TxHash:      meta.TxHash,
		LogIndex:    int64(meta.LogIndex),
		Time:        meta.BlockTime,
	}
	if err := u.activityRepo.UpsertByEventId(c, list); err != nil {
		c.WithField("err", err).Error("activityRepo.UpsertByEventId failed")
		return err
	}

	return nil
}

func (u *marketplaceEventUseCase) AuctionCreated(c bCtx.Ctx, chainId domain.ChainId, e *marketplace.AuctionCreatedEvent, meta *domain.LogMeta) error {
	endTime := time.Unix(e.EndTime.Int64(), 0)

	// a new auction for the same token is authoritative, the previous
	// sub-state is overwritten entirely
	value := nftitem.PatchableNftItem{
		Seller:         e.Seller.ToLowerPtr(),
		Owner:          meta.ContractAddress.ToLowerPtr(),
		Sold:           ptr.Bool(false),
		IsAuction:      ptr.Bool(true),
		MinBid:         ptr.String(bigIntString(e.MinBid)),
		HighestBid:     ptr.String("0"),
		HighestBidder:  domain.EmptyAddress.ToLowerPtr(),
		AuctionEndTime: &endTime,
	}

	if err := u.nftitemRepo.Patch(c, value,
		nftitem.WithChainId(chainId),
		nftitem.WithTokenId(e.TokenId),
		nftitem.WithIsExternal(false),
	); err != nil {
		if err == domain.ErrNotFound {
			c.WithField("tokenId", e.TokenId).Warn("auction created for unknown item, skipping")
			return nil
		}
		c.WithField("err", err).Error("nftitemRepo.Patch failed")
		return err
	}
	return nil
}

func (u *marketplaceEventUseCase) BidPlaced(c bCtx.Ctx, chainId domain.ChainId, e *marketplace.BidPlacedEvent, meta *domain.LogMeta) error {
	// a bid without a prior record is dropped rather than fabricating one
	_, err := u.nftitemRepo.FindOne(c,
		nftitem.WithChainId(chainId),
		nftitem.WithTokenId(e.TokenId),
		nftitem.WithIsExternal(false),
	)
	if err == domain.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	value := nftitem.PatchableNftItem{
		HighestBid:    ptr.String(bigIntString(e.Amount)),
		HighestBidder: e.Bidder.ToLowerPtr(),
	}
	if err := u.nftitemRepo.Patch(c, value,
		nftitem.WithChainId(chainId),
		nftitem.WithTokenId(e.TokenId),
		nftitem.WithIsExternal(false),
	); err != nil && err != domain.ErrNotFound {
		c.WithField("err", err).Error("nftitemRepo.Patch failed")
		return err
	}
	return nil
}

func (u *marketplaceEventUseCase) AuctionEnded(c bCtx.Ctx, chainId domain.ChainId, e *marketplace.AuctionEndedEvent, meta *domain.LogMeta) error {
	value := nftitem.PatchableNftItem{
		IsAuction:      ptr.Bool(false),
		MinBid:         ptr.String(""),
		HighestBid:     ptr.String(""),
		HighestBidder:  domain.EmptyAddress.ToLowerPtr(),
		AuctionEndTime: nil,
	}

	if e.Winner.ToLower().IsZero() {
		// no bids, custody reverts to the seller
		value.Owner = e.Seller.ToLowerPtr()
		value.Seller = e.Seller.ToLowerPtr()
		value.Sold = ptr.Bool(false)
	} else {
		value.Owner = e.Winner.ToLowerPtr()
		value.Seller = domain.EmptyAddress.ToLowerPtr()
		value.Sold = ptr.Bool(true)
		value.Price = ptr.String(bigIntString(e.Amount))
		value.SoldAt = &meta.BlockTime
	}

	if err := u.nftitemRepo.Patch(c, value,
		nftitem.WithChainId(chainId),
		nftitem.WithTokenId(e.TokenId),
		nftitem.WithIsExternal(false),
	); err != nil {
		if err == domain.ErrNotFound {
			c.WithField("tokenId", e.TokenId).Warn("auction ended for unknown item, skipping")
			return nil
		}
		c.WithField("err", err).Error("nftitemRepo.Patch failed")
		return err
	}
	return nil
}

// findItem matches by tokenId first and falls back to the marketplace item
// id when the token lookup misses.
func (u *marketplaceEventUseCase) findItem(c bCtx.Ctx, chainId domain.ChainId, itemId *big.Int, tokenId domain.TokenId) (*nftitem.NftItem, error) {
	item, err := u.nftitemRepo.FindOne(c,
		nftitem.WithChainId(chainId),
		nftitem.WithTokenId(tokenId),
		nftitem.WithIsExternal(false),
	)
	if err == nil {
		return item, nil
	}
	if err != domain.ErrNotFound {
		c.WithField("err", err).Error("nftitemRepo.FindOne failed")
		return nil, err
	}
	if itemId == nil {
		return nil, domain.ErrNotFound
	}
	item, err = u.nftitemRepo.FindOne(c,
		nftitem.WithChainId(chainId),
		nftitem.WithItemId(itemId.String()),
		nftitem.WithIsExternal(false),
	)
	if err != nil && err != domain.ErrNotFound {
		c.WithField("err", err).Error("nftitemRepo.FindOne failed")
	}
	return item, err
}

func (u *marketplaceEventUseCase) patchItem(c bCtx.Ctx, chainId domain.ChainId, item *nftitem.NftItem, value nftitem.PatchableNftItem) error {
	if err := u.nftitemRepo.Patch(c, value,
		nftitem.WithChainId(chainId),
		nftitem.WithTokenId(item.TokenId),
		nftitem.WithIsExternal(false),
	); err != nil && err != domain.ErrNotFound {
		c.WithField("err", err).Error("nftitemRepo.Patch failed")
		return err
	}
	return nil
}

// fetchMetadata resolves the token's metadata pointer. Failures degrade to a
// placeholder name instead of aborting event processing.
func (u *marketplaceEventUseCase) fetchMetadata(c bCtx.Ctx, chainId domain.ChainId, contractAddress domain.Address, tokenId domain.TokenId) *nftitem.Metadata {
	placeholder := &nftitem.Metadata{Name: fmt.Sprintf("Token #%s", tokenId)}

	tid, ok := new(big.Int).SetString(string(tokenId), 10)
	if !ok {
		return placeholder
	}

	uri, err := u.marketplaceContract.TokenURI(c, int32(chainId), string(contractAddress), tid)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Warn("marketplaceContract.TokenURI failed, using placeholder")
		return placeholder
	}

	data, err := u.webResource.GetJson(c, uri)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"uri":     uri,
			"tokenId": tokenId,
		}).Warn("webResource.GetJson failed, using placeholder")
		return placeholder
	}

	md := &nftitem.Metadata{}
	if err := json.Unmarshal(data, md); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Warn("json.Unmarshal failed, using placeholder")
		return placeholder
	}

	md.Name = normalize.SanitizeName(md.Name)
	if len(md.Name) == 0 {
		md.Name = placeholder.Name
	}
	return md
}

// resolveMime prefers the mime the issuer declared in the metadata, then
// sniffs the media payload itself. Failures degrade to an empty mime and
// leave classification to the url heuristics.
func (u *marketplaceEventUseCase) resolveMime(c bCtx.Ctx, md *nftitem.Metadata) string {
	if mime := md.MediaMime(); len(mime) > 0 {
		return mime
	}
	mediaUrl := md.AnimationUrl
	if len(mediaUrl) == 0 {
		mediaUrl = md.Image
	}
	if len(mediaUrl) == 0 {
		return ""
	}
	data, err := u.webResource.Get(c, mediaUrl)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"url": mediaUrl,
		}).Warn("webResource.Get failed, mime unknown")
		return ""
	}
	return normalize.DetectMime(data)
}

func bigIntString(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return n.String()
}
