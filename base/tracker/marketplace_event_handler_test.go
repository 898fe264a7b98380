package tracker

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/niftyhouse/indexer/base/abi"
	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/domain"
	"github.com/niftyhouse/indexer/domain/marketplace"
	"github.com/niftyhouse/indexer/domain/mocks"
)

var (
	testSeller   = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testBuyer    = common.HexToAddress("0x2222222222222222222222222222222222222222")
	testContract = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func itemCreatedLog(t *testing.T, blockNumber uint64, logIndex uint) logWithBlockTime {
	t.Helper()
	data, err := abi.MarketplaceABI.Events["MarketItemCreated"].Inputs.NonIndexed().
		Pack(testSeller, testContract, big.NewInt(1000), false)
	require.NoError(t, err)
	return logWithBlockTime{
		Log: types.Log{
			Address:     testContract,
			BlockNumber: blockNumber,
			Index:       logIndex,
			Topics: []common.Hash{
				abi.MarketplaceABI.Events["MarketItemCreated"].ID,
				common.BigToHash(big.NewInt(3)),
				common.BigToHash(big.NewInt(7)),
			},
			Data: data,
		},
		blockTime: time.Unix(1650000000, 0),
	}
}

func TestProcessEvents_dispatch(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	uc := new(mocks.MarketplaceEventUseCase)
	h := NewMarketplaceEventHandler(&MarketplaceEventHandlerCfg{
		ChainId:            1,
		MarketplaceEventUC: uc,
	})

	var gotEvent *marketplace.ItemCreatedEvent
	var gotMeta *domain.LogMeta
	uc.On("ItemCreated", mock.Anything, domain.ChainId(1), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotEvent = args.Get(2).(*marketplace.ItemCreatedEvent)
			gotMeta = args.Get(3).(*domain.LogMeta)
		}).
		Return(nil)

	err := h.ProcessEvents(ctx, []logWithBlockTime{itemCreatedLog(t, 100, 7)})
	req.NoError(err)

	req.Equal(domain.TokenId("7"), gotEvent.TokenId)
	req.Equal(big.NewInt(3), gotEvent.ItemId)
	req.Equal(toDomainAddress(testSeller), gotEvent.Seller)
	req.Equal(big.NewInt(1000), gotEvent.Price)
	req.Equal(domain.BlockNumber(100), gotMeta.BlockNumber)
	req.Equal(uint(7), gotMeta.LogIndex)
	req.Equal(time.Unix(1650000000, 0), gotMeta.BlockTime)
	req.Equal(toDomainAddress(testContract), gotMeta.ContractAddress)
}

func TestProcessEvents_undecodableLogIsDropped(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	uc := new(mocks.MarketplaceEventUseCase)
	h := NewMarketplaceEventHandler(&MarketplaceEventHandlerCfg{
		ChainId:            1,
		MarketplaceEventUC: uc,
	})

	garbage := logWithBlockTime{
		Log: types.Log{
			Topics: []common.Hash{
				abi.MarketplaceABI.Events["MarketItemCreated"].ID,
				common.BigToHash(big.NewInt(3)),
				common.BigToHash(big.NewInt(7)),
			},
			Data: []byte{0xde, 0xad},
		},
	}
	unknown := logWithBlockTime{
		Log: types.Log{
			Topics: []common.Hash{common.BigToHash(big.NewInt(12345))},
		},
	}

	uc.On("ItemCreated", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := h.ProcessEvents(ctx, []logWithBlockTime{garbage, unknown, itemCreatedLog(t, 100, 7)})
	req.NoError(err)
	uc.AssertNumberOfCalls(t, "ItemCreated", 1)
}

func TestProcessEvents_usecaseErrorAbortsBatch(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	uc := new(mocks.MarketplaceEventUseCase)
	h := NewMarketplaceEventHandler(&MarketplaceEventHandlerCfg{
		ChainId:            1,
		MarketplaceEventUC: uc,
	})

	uc.On("ItemCreated", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ErrConflict)

	logs := []logWithBlockTime{
		itemCreatedLog(t, 100, 7),
		itemCreatedLog(t, 101, 0),
	}
	err := h.ProcessEvents(ctx, logs)
	req.ErrorIs(err, domain.ErrConflict)
	uc.AssertNumberOfCalls(t, "ItemCreated", 1)
}

func TestGetFilterTopics(t *testing.T) {
	req := require.New(t)
	h := NewMarketplaceEventHandler(&MarketplaceEventHandlerCfg{ChainId: 1})

	topics := h.GetFilterTopics()
	req.Len(topics, 1)
	req.Len(topics[0], 6)
	req.Contains(topics[0], abi.MarketplaceABI.Events["MarketItemCreated"].ID)
	req.Contains(topics[0], abi.MarketplaceABI.Events["AuctionEnded"].ID)
}
