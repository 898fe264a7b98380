package moralis

import (
	"errors"
	"net/http"
	"time"

	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/domain"
)

var ErrStatusCodeNotOk = errors.New("http.status != 200")

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	Apikey     string
}

// Validate rejects a config the provider would refuse anyway. Every request
// carries the api key, so an empty one only fails at the first call.
func (cfg *ClientCfg) Validate() error {
	if len(cfg.Apikey) == 0 {
		return domain.ErrMissingApiKey
	}
	return nil
}

// NftResult is a single item of a contract inventory page. Metadata is the
// raw json document the provider serves, possibly empty.
type NftResult struct {
	TokenAddress string `json:"token_address"`
	TokenId      string `json:"token_id"`
	TokenUri     string `json:"token_uri"`
	Metadata     string `json:"metadata"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Amount       string `json:"amount"`
	ContractType string `json:"contract_type"`
	OwnerOf      string `json:"owner_of"`
}

type GetContractNftsResp struct {
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Cursor   string      `json:"cursor"`
	Result   []NftResult `json:"result"`
}

type ContractMetadataResp struct {
	TokenAddress string `json:"token_address"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	ContractType string `json:"contract_type"`
}

type FloorPriceResp struct {
	FloorPrice float64 `json:"floor_price"`
	Currency   string  `json:"currency"`
}

type Client interface {
	// GetContractNfts fetches one inventory page of at most `limit` items.
	// An empty cursor requests the first page.
	GetContractNfts(ctx bCtx.Ctx, chainId int32, contract string, limit int, cursor string) (*GetContractNftsResp, error)
	GetNftMetadata(ctx bCtx.Ctx, chainId int32, contract string, tokenId string) (*NftResult, error)
	GetContractFloorPrice(ctx bCtx.Ctx, chainId int32, contract string) (*FloorPriceResp, error)
}
