package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/niftyhouse/indexer/base/abi"
	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/service/chain"
)

type MarketplaceContract interface {
	TokenURI(ctx bCtx.Ctx, chainId int32, addr string, tokenId *big.Int) (string, error)
}

type Marketplace struct {
	chainService chain.Client
	abi          ethabi.ABI
}

func NewMarketplace(chainService chain.Client) *Marketplace {
	return &Marketplace{
		abi:          baseabi.MarketplaceABI,
		chainService: chainService,
	}
}

func (m *Marketplace) TokenURI(ctx bCtx.Ctx, chainId int32, addr string, tokenId *big.Int) (string, error) {
	method := "tokenURI"
	unpacked, err := m.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, m.abi, method, tokenId)
	if err != nil {
		return "", err
	}
	return unpacked[0].(string), nil
}
