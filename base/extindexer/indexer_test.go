package extindexer

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/domain"
	"github.com/niftyhouse/indexer/domain/mocks"
	"github.com/niftyhouse/indexer/domain/nftitem"
	"github.com/niftyhouse/indexer/service/moralis"
)

var errProvider = errors.New("provider unavailable")

var testTarget = Target{
	Label:    "punks",
	ChainId:  domain.ChainId(1),
	Contract: domain.Address("0xabc0000000000000000000000000000000000001"),
	Limit:    150,
}

func page(from, count int, cursor string) *moralis.GetContractNftsResp {
	resp := &moralis.GetContractNftsResp{Cursor: cursor, PageSize: count}
	for i := 0; i < count; i++ {
		resp.Result = append(resp.Result, moralis.NftResult{
			TokenAddress: string(testTarget.Contract),
			TokenId:      fmt.Sprintf("%d", from+i),
			Metadata:     fmt.Sprintf(`{"name":"Punk %d","image":"https://img/%d.png"}`, from+i, from+i),
			OwnerOf:      "0xOwner",
		})
	}
	return resp
}

func newIndexer(client *mocks.MoralisClient, repo *mocks.NftitemRepo) *Indexer {
	return NewIndexer(&IndexerCfg{
		Moralis:     client,
		NftitemRepo: repo,
		Targets:     []Target{testTarget},
		PageDelay:   time.Millisecond,
		RetryDelay:  time.Millisecond,
	})
}

func TestIndexTarget_respectsLimit(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.MoralisClient)
	repo := new(mocks.NftitemRepo)

	// 150 item budget: a full page then a half page
	client.On("GetContractNfts", mock.Anything, int32(1), string(testTarget.Contract), 100, "").
		Return(page(0, 100, "cursor-1"), nil).Once()
	client.On("GetContractNfts", mock.Anything, int32(1), string(testTarget.Contract), 50, "cursor-1").
		Return(page(100, 50, "cursor-2"), nil).Once()

	var written []*nftitem.NftItem
	repo.On("BulkUpsert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			written = append(written, args.Get(1).([]*nftitem.NftItem)...)
		}).
		Return(nil)

	n, err := newIndexer(client, repo).IndexTarget(ctx, testTarget)
	req.NoError(err)
	req.Equal(150, n)
	req.Len(written, 150)
	client.AssertNumberOfCalls(t, "GetContractNfts", 2)

	item := written[0]
	req.True(item.IsExternal)
	req.Equal(domain.TokenId("0"), item.TokenId)
	req.Equal("Punk 0", item.Name)
	req.Equal("https://img/0.png", item.ImageUrl)
	req.Equal(testTarget.Contract.ToLower(), item.ContractAddress)
	req.NotEmpty(item.ExternalUrl)
}

func TestIndexTarget_stopsOnEmptyPage(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.MoralisClient)
	repo := new(mocks.NftitemRepo)

	client.On("GetContractNfts", mock.Anything, int32(1), string(testTarget.Contract), 100, "").
		Return(page(0, 30, "cursor-1"), nil).Once()
	client.On("GetContractNfts", mock.Anything, int32(1), string(testTarget.Contract), 100, "cursor-1").
		Return(&moralis.GetContractNftsResp{}, nil).Once()
	repo.On("BulkUpsert", mock.Anything, mock.Anything).Return(nil)

	n, err := newIndexer(client, repo).IndexTarget(ctx, testTarget)
	req.NoError(err)
	req.Equal(30, n)
}

func TestIndexTarget_retriesFailedPage(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.MoralisClient)
	repo := new(mocks.NftitemRepo)

	client.On("GetContractNfts", mock.Anything, int32(1), string(testTarget.Contract), 100, "").
		Return(nil, errProvider).Once()
	client.On("GetContractNfts", mock.Anything, int32(1), string(testTarget.Contract), 100, "").
		Return(page(0, 20, ""), nil).Once()
	repo.On("BulkUpsert", mock.Anything, mock.Anything).Return(nil)

	n, err := newIndexer(client, repo).IndexTarget(ctx, testTarget)
	req.NoError(err)
	req.Equal(20, n)
	client.AssertNumberOfCalls(t, "GetContractNfts", 2)
}

func TestIndexTarget_givesUpAfterRetryBudget(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.MoralisClient)
	repo := new(mocks.NftitemRepo)

	client.On("GetContractNfts", mock.Anything, int32(1), string(testTarget.Contract), 100, "").
		Return(nil, errProvider)

	n, err := newIndexer(client, repo).IndexTarget(ctx, testTarget)
	req.ErrorIs(err, errProvider)
	req.Zero(n)
	client.AssertNumberOfCalls(t, "GetContractNfts", pageFetchRetries)
}

func TestIndexTarget_failedBatchIsSkipped(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.MoralisClient)
	repo := new(mocks.NftitemRepo)

	client.On("GetContractNfts", mock.Anything, int32(1), string(testTarget.Contract), 100, "").
		Return(page(0, 40, ""), nil).Once()
	repo.On("BulkUpsert", mock.Anything, mock.Anything).Return(errTestWrite)

	n, err := newIndexer(client, repo).IndexTarget(ctx, testTarget)
	req.NoError(err)
	req.Zero(n)
}

var errTestWrite = errors.New("write failed")

func TestToNftItem_hydratesMissingMetadata(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.MoralisClient)
	repo := new(mocks.NftitemRepo)

	client.On("GetNftMetadata", mock.Anything, int32(1), string(testTarget.Contract), "9").
		Return(&moralis.NftResult{
			TokenId:  "9",
			TokenUri: "ipfs://Qm/9",
			Metadata: `{"name":"Punk 9","animation_url":"https://cdn/9.mp4"}`,
		}, nil)

	i := newIndexer(client, repo)
	item := i.toNftItem(ctx, testTarget, moralis.NftResult{TokenId: "9"})

	req.Equal("Punk 9", item.Name)
	req.Equal("ipfs://Qm/9", item.TokenUri)
	req.Equal(domain.MediaTypeVideo, item.MediaType)
}

func TestToNftItem_declaredMimeDrivesMediaType(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.MoralisClient)
	repo := new(mocks.NftitemRepo)

	client.On("GetNftMetadata", mock.Anything, int32(1), string(testTarget.Contract), "9").
		Return(&moralis.NftResult{
			TokenId: "9",
			Metadata: `{"name":"Punk 9","image":"https://cdn/9.gif",` +
				`"media":{"uri":"https://cdn/9.mp4","mimeType":"video/mp4"}}`,
		}, nil)

	i := newIndexer(client, repo)
	item := i.toNftItem(ctx, testTarget, moralis.NftResult{TokenId: "9"})

	req.Equal("video/mp4", item.MimeType)
	req.Equal(domain.MediaTypeVideo, item.MediaType)
}

func TestToNftItem_providerFailureYieldsSparseRecord(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := new(mocks.MoralisClient)
	repo := new(mocks.NftitemRepo)

	client.On("GetNftMetadata", mock.Anything, int32(1), string(testTarget.Contract), "9").
		Return(nil, errProvider)

	i := newIndexer(client, repo)
	item := i.toNftItem(ctx, testTarget, moralis.NftResult{TokenId: "9", OwnerOf: "0xOwner"})

	req.Equal(domain.TokenId("9"), item.TokenId)
	req.True(item.IsExternal)
	req.Empty(item.Name)
	req.Empty(item.Description)
}
