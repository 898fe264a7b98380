package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/domain"
	"github.com/niftyhouse/indexer/domain/activity"
	"github.com/niftyhouse/indexer/domain/marketplace"
	"github.com/niftyhouse/indexer/domain/mocks"
	"github.com/niftyhouse/indexer/domain/nftitem"
)

var (
	testChainId = domain.ChainId(1)
	testSeller  = domain.Address("0xAbCd000000000000000000000000000000000001")
	testBuyer   = domain.Address("0xabcd000000000000000000000000000000000002")
	testEscrow  = domain.Address("0xabcd00000000000000000000000000000000000f")
	testMeta    = &domain.LogMeta{
		BlockNumber:     100,
		BlockTime:       time.Unix(1650000000, 0),
		TxHash:          "0xdead",
		LogIndex:        7,
		ContractAddress: testEscrow,
	}
)

func newUseCase() (*marketplaceEventUseCase, *mocks.NftitemRepo, *mocks.ActivityRepo, *mocks.WebResourceUseCase, *mocks.MarketplaceContract) {
	nftitemRepo := new(mocks.NftitemRepo)
	activityRepo := new(mocks.ActivityRepo)
	webResource := new(mocks.WebResourceUseCase)
	marketplaceContract := new(mocks.MarketplaceContract)
	uc := NewMarketplaceEventUseCase(&MarketplaceEventUseCaseCfg{
		NftitemRepo:         nftitemRepo,
		ActivityRepo:        activityRepo,
		WebResource:         webResource,
		MarketplaceContract: marketplaceContract,
	}).(*marketplaceEventUseCase)
	return uc, nftitemRepo, activityRepo, webResource, marketplaceContract
}

func TestItemCreated(t *testing.T) {
	t.Run("metadata resolved", func(t *testing.T) {
		req := require.New(t)
		ctx := bCtx.Background()
		uc, nftitemRepo, activityRepo, webResource, marketplaceContract := newUseCase()

		e := &marketplace.ItemCreatedEvent{
			ItemId:  big.NewInt(3),
			TokenId: domain.TokenId("7"),
			Seller:  testSeller,
			Owner:   testEscrow,
			Price:   big.NewInt(1000000000000000000),
		}

		marketplaceContract.On("TokenURI", mock.Anything, int32(testChainId), string(testEscrow), big.NewInt(7)).
			Return("ipfs://QmFoo/7", nil)
		webResource.On("GetJson", mock.Anything, "ipfs://QmFoo/7").
			Return([]byte(`{"name":"Foo","description":"bar","image":"https://img/7.png"}`), nil)
		webResource.On("Get", mock.Anything, "https://img/7.png").
			Return([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, nil)

		var patched nftitem.PatchableNftItem
		var inserted nftitem.InsertOnlyNftItem
		nftitemRepo.On("PatchUpsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				patched = args.Get(1).(nftitem.PatchableNftItem)
				inserted = args.Get(2).(nftitem.InsertOnlyNftItem)
			}).
			Return(nil)

		var acts []*activity.Activity
		activityRepo.On("UpsertByEventId", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				acts = append(acts, args.Get(1).(*activity.Activity))
			}).
			Return(nil)

		req.NoError(uc.ItemCreated(ctx, testChainId, e, testMeta))

		req.Equal("Foo", *patched.Name)
		req.Equal("bar", *patched.Description)
		req.Equal("https://img/7.png", *patched.ImageUrl)
		req.Equal("image/png", *patched.MimeType)
		req.Equal(domain.MediaTypeImage, *patched.MediaType)
		req.Equal("1000000000000000000", *patched.Price)
		req.False(*patched.Sold)
		req.Equal("3", *patched.ItemId)
		req.Equal(testSeller.ToLower(), *patched.Seller)
		req.Equal(testSeller.ToLower(), inserted.Creator)
		req.Equal(testMeta.BlockTime, inserted.CreatedAt)

		req.Len(acts, 2)
		req.Equal("100:7:MarketItemCreated:MINT", acts[0].EventId)
		req.Equal(activity.TypeMint, acts[0].Type)
		req.Equal(domain.EmptyAddress, acts[0].From)
		req.Equal(testSeller.ToLower(), acts[0].To)
		req.Equal("100:7:MarketItemCreated:LIST", acts[1].EventId)
		req.Equal(activity.TypeList, acts[1].Type)
		req.Equal(testSeller.ToLower(), acts[1].From)
		req.Equal(testEscrow.ToLower(), acts[1].To)
		req.Equal("1000000000000000000", acts[1].Price)
	})

	t.Run("issuer-declared mime wins over sniffing", func(t *testing.T) {
		req := require.New(t)
		ctx := bCtx.Background()
		uc, nftitemRepo, activityRepo, webResource, marketplaceContract := newUseCase()

		e := &marketplace.ItemCreatedEvent{
			TokenId: domain.TokenId("7"),
			Seller:  testSeller,
			Owner:   testEscrow,
			Price:   big.NewInt(5),
		}

		marketplaceContract.On("TokenURI", mock.Anything, int32(testChainId), string(testEscrow), big.NewInt(7)).
			Return("ipfs://QmFoo/7", nil)
		webResource.On("GetJson", mock.Anything, "ipfs://QmFoo/7").
			Return([]byte(`{"name":"Foo","image":"https://img/7.gif","media":{"uri":"https://img/7.mp4","mimeType":"video/mp4"}}`), nil)

		var patched nftitem.PatchableNftItem
		nftitemRepo.On("PatchUpsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				patched = args.Get(1).(nftitem.PatchableNftItem)
			}).
			Return(nil)
		activityRepo.On("UpsertByEventId", mock.Anything, mock.Anything).Return(nil)

		req.NoError(uc.ItemCreated(ctx, testChainId, e, testMeta))

		req.Equal("video/mp4", *patched.MimeType)
		req.Equal(domain.MediaTypeVideo, *patched.MediaType)
		webResource.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("metadata unavailable falls back to placeholder", func(t *testing.T) {
		req := require.New(t)
		ctx := bCtx.Background()
		uc, nftitemRepo, activityRepo, _, marketplaceContract := newUseCase()

		e := &marketplace.ItemCreatedEvent{
			TokenId: domain.TokenId("42"),
			Seller:  testSeller,
			Owner:   testEscrow,
			Price:   big.NewInt(5),
		}

		marketplaceContract.On("TokenURI", mock.Anything, int32(testChainId), string(testEscrow), big.NewInt(42)).
			Return("", domain.ErrNotFound)

		var patched nftitem.PatchableNftItem
		nftitemRepo.On("PatchUpsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				patched = args.Get(1).(nftitem.PatchableNftItem)
			}).
			Return(nil)
		activityRepo.On("UpsertByEventId", mock.Anything, mock.Anything).Return(nil)

		req.NoError(uc.ItemCreated(ctx, testChainId, e, testMeta))
		req.Equal("Token #42", *patched.Name)
		req.Nil(patched.ItemId)
	})

	t.Run("identical replay produces identical event ids", func(t *testing.T) {
		req := require.New(t)
		ctx := bCtx.Background()
		uc, nftitemRepo, activityRepo, webResource, marketplaceContract := newUseCase()

		e := &marketplace.ItemCreatedEvent{
			TokenId: domain.TokenId("7"),
			Seller:  testSeller,
			Owner:   testEscrow,
			Price:   big.NewInt(10),
		}

		marketplaceContract.On("TokenURI", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("uri", nil)
		webResource.On("GetJson", mock.Anything, "uri").Return([]byte(`{"name":"Foo"}`), nil)
		nftitemRepo.On("PatchUpsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil)

		var ids []string
		activityRepo.On("UpsertByEventId", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				ids = append(ids, args.Get(1).(*activity.Activity).EventId)
			}).
			Return(nil)

		req.NoError(uc.ItemCreated(ctx, testChainId, e, testMeta))
		req.NoError(uc.ItemCreated(ctx, testChainId, e, testMeta))
		req.Len(ids, 4)
		req.Equal(ids[0], ids[2])
		req.Equal(ids[1], ids[3])
	})
}

func TestItemSold(t *testing.T) {
	t.Run("transfers ownership and records sale", func(t *testing.T) {
		req := require.New(t)
		ctx := bCtx.Background()
		uc, nftitemRepo, activityRepo, _, _ := newUseCase()

		e := &marketplace.ItemSoldEvent{
			ItemId:  big.NewInt(3),
			TokenId: domain.TokenId("7"),
			Seller:  testSeller,
			Buyer:   testBuyer,
			Price:   big.NewInt(500),
		}

		existing := &nftitem.NftItem{
			ChainId: testChainId,
			TokenId: domain.TokenId("7"),
			Seller:  testSeller.ToLower(),
		}
		nftitemRepo.On("FindOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(existing, nil)

		var patched nftitem.PatchableNftItem
		nftitemRepo.On("Patch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				patched = args.Get(1).(nftitem.PatchableNftItem)
			}).
			Return(nil)

		var act *activity.Activity
		activityRepo.On("UpsertByEventId", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				act = args.Get(1).(*activity.Activity)
			}).
			Return(nil)

		req.NoError(uc.ItemSold(ctx, testChainId, e, testMeta))

		req.True(*patched.Sold)
		req.Equal(testBuyer.ToLower(), *patched.Owner)
		req.Equal(domain.EmptyAddress, *patched.Seller)
		req.Equal("500", *patched.Price)
		req.Equal(testMeta.BlockTime, *patched.SoldAt)

		req.Equal(activity.TypeSell, act.Type)
		req.Equal(testSeller.ToLower(), act.From)
		req.Equal(testBuyer.ToLower(), act.To)
		req.Equal("100:7:MarketItemSold:SELL", act.EventId)
	})

	t.Run("unknown item is skipped", func(t *testing.T) {
		req := require.New(t)
		ctx := bCtx.Background()
		uc, nftitemRepo, _, _, _ := newUseCase()

		e := &marketplace.ItemSoldEvent{
			TokenId: domain.TokenId("404"),
			Seller:  testSeller,
			Buyer:   testBuyer,
			Price:   big.NewInt(1),
		}
		nftitemRepo.On("FindOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domain.ErrNotFound)

		req.NoError(uc.ItemSold(ctx, testChainId, e, testMeta))
		nftitemRepo.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuctionCreated(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	uc, nftitemRepo, _, _, _ := newUseCase()

	endTime := time.Unix(1660000000, 0)
	e := &marketplace.AuctionCreatedEvent{
		TokenId: domain.TokenId("7"),
		Seller:  testSeller,
		MinBid:  big.NewInt(200),
		EndTime: big.NewInt(endTime.Unix()),
	}

	var patched nftitem.PatchableNftItem
	nftitemRepo.On("Patch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			patched = args.Get(1).(nftitem.PatchableNftItem)
		}).
		Return(nil)

	req.NoError(uc.AuctionCreated(ctx, testChainId, e, testMeta))

	req.True(*patched.IsAuction)
	req.Equal("200", *patched.MinBid)
	req.Equal("0", *patched.HighestBid)
	req.Equal(domain.EmptyAddress, *patched.HighestBidder)
	req.Equal(endTime, *patched.AuctionEndTime)
	req.Equal(testEscrow.ToLower(), *patched.Owner)
	req.False(*patched.Sold)
}

func TestBidPlaced(t *testing.T) {
	t.Run("updates highest bid", func(t *testing.T) {
		req := require.New(t)
		ctx := bCtx.Background()
		uc, nftitemRepo, _, _, _ := newUseCase()

		e := &marketplace.BidPlacedEvent{
			TokenId: domain.TokenId("7"),
			Bidder:  testBuyer,
			Amount:  big.NewInt(300),
		}

		nftitemRepo.On("FindOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&nftitem.NftItem{TokenId: domain.TokenId("7")}, nil)

		var patched nftitem.PatchableNftItem
		nftitemRepo.On("Patch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				patched = args.Get(1).(nftitem.PatchableNftItem)
			}).
			Return(nil)

		req.NoError(uc.BidPlaced(ctx, testChainId, e, testMeta))
		req.Equal("300", *patched.HighestBid)
		req.Equal(testBuyer.ToLower(), *patched.HighestBidder)
	})

	t.Run("bid for unknown token is a no-op", func(t *testing.T) {
		req := require.New(t)
		ctx := bCtx.Background()
		uc, nftitemRepo, _, _, _ := newUseCase()

		e := &marketplace.BidPlacedEvent{
			TokenId: domain.TokenId("404"),
			Bidder:  testBuyer,
			Amount:  big.NewInt(300),
		}
		nftitemRepo.On("FindOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domain.ErrNotFound)

		req.NoError(uc.BidPlaced(ctx, testChainId, e, testMeta))
		nftitemRepo.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuctionEnded(t *testing.T) {
	t.Run("won auction settles to winner", func(t *testing.T) {
		req := require.New(t)
		ctx := bCtx.Background()
		uc, nftitemRepo, _, _, _ := newUseCase()

		e := &marketplace.AuctionEndedEvent{
			TokenId: domain.TokenId("7"),
			Seller:  testSeller,
			Winner:  testBuyer,
			Amount:  big.NewInt(900),
		}

		var patched nftitem.PatchableNftItem
		nftitemRepo.On("Patch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				patched = args.Get(1).(nftitem.PatchableNftItem)
			}).
			Return(nil)

		req.NoError(uc.AuctionEnded(ctx, testChainId, e, testMeta))

		req.Equal(testBuyer.ToLower(), *patched.Owner)
		req.Equal(domain.EmptyAddress, *patched.Seller)
		req.True(*patched.Sold)
		req.Equal("900", *patched.Price)
		req.False(*patched.IsAuction)
		req.Equal(testMeta.BlockTime, *patched.SoldAt)
	})

	t.Run("auction without bids reverts to seller", func(t *testing.T) {
		req := require.New(t)
		ctx := bCtx.Background()
		uc, nftitemRepo, _, _, _ := newUseCase()

		e := &marketplace.AuctionEndedEvent{
			TokenId: domain.TokenId("7"),
			Seller:  testSeller,
			Winner:  domain.EmptyAddress,
			Amount:  big.NewInt(0),
		}

		var patched nftitem.PatchableNftItem
		nftitemRepo.On("Patch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				patched = args.Get(1).(nftitem.PatchableNftItem)
			}).
			Return(nil)

		req.NoError(uc.AuctionEnded(ctx, testChainId, e, testMeta))

		req.Equal(testSeller.ToLower(), *patched.Owner)
		req.Equal(testSeller.ToLower(), *patched.Seller)
		req.False(*patched.Sold)
		req.Nil(patched.Price)
		req.False(*patched.IsAuction)
	})
}
