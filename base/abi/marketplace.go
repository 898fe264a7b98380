package abi

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var MarketplaceABI abi.ABI

var marketplaceABI = `[{"type":"event","anonymous":false,"name":"MarketItemCreated","inputs":[{"type":"uint256","name":"itemId","indexed":true},{"type":"uint256","name":"tokenId","indexed":true},{"type":"address","name":"seller"},{"type":"address","name":"owner"},{"type":"uint256","name":"price"},{"type":"bool","name":"sold"}]},{"type":"event","anonymous":false,"name":"MarketItemSold","inputs":[{"type":"uint256","name":"itemId","indexed":true},{"type":"uint256","name":"tokenId","indexed":true},{"type":"address","name":"seller"},{"type":"address","name":"buyer"},{"type":"uint256","name":"price"}]},{"type":"event","anonymous":false,"name":"MarketItemRelisted","inputs":[{"type":"uint256","name":"itemId","indexed":true},{"type":"uint256","name":"tokenId","indexed":true},{"type":"address","name":"seller"},{"type":"uint256","name":"price"}]},{"type":"event","anonymous":false,"name":"AuctionCreated","inputs":[{"type":"uint256","name":"tokenId","indexed":true},{"type":"address","name":"seller"},{"type":"uint256","name":"minBid"},{"type":"uint256","name":"endTime"}]},{"type":"event","anonymous":false,"name":"BidPlaced","inputs":[{"type":"uint256","name":"tokenId","indexed":true},{"type":"address","name":"bidder"},{"type":"uint256","name":"amount"}]},{"type":"event","anonymous":false,"name":"AuctionEnded","inputs":[{"type":"uint256","name":"tokenId","indexed":true},{"type":"address","name":"seller"},{"type":"address","name":"winner"},{"type":"uint256","name":"amount"}]},{"type":"function","name":"tokenURI","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"uint256","name":"tokenId"}],"outputs":[{"type":"string"}]}]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(marketplaceABI))
	if err != nil {
		panic("Failed to parse marketplace abi")
	}
	MarketplaceABI = _abi
}

type MarketItemCreatedLog struct {
	ItemId  *big.Int // indexed
	TokenId *big.Int // indexed
	Seller  common.Address
	Owner   common.Address
	Price   *big.Int
	Sold    bool
}

type MarketItemSoldLog struct {
	ItemId  *big.Int // indexed
	TokenId *big.Int // indexed
	Seller  common.Address
	Buyer   common.Address
	Price   *big.Int
}

type MarketItemRelistedLog struct {
	ItemId  *big.Int // indexed
	TokenId *big.Int // indexed
	Seller  common.Address
	Price   *big.Int
}

type AuctionCreatedLog struct {
	TokenId *big.Int // indexed
	Seller  common.Address
	MinBid  *big.Int
	EndTime *big.Int
}

type BidPlacedLog struct {
	TokenId *big.Int // indexed
	Bidder  common.Address
	Amount  *big.Int
}

type AuctionEndedLog struct {
	TokenId *big.Int // indexed
	Seller  common.Address
	Winner  common.Address
	Amount  *big.Int
}

func ToMarketItemCreatedLog(log *types.Log) (*MarketItemCreatedLog, error) {
	var itemCreated MarketItemCreatedLog
	if err := MarketplaceABI.UnpackIntoInterface(&itemCreated, "MarketItemCreated", log.Data); err != nil {
		return nil, err
	}
	itemCreated.ItemId = new(big.Int).SetBytes(log.Topics[1].Bytes())
	itemCreated.TokenId = new(big.Int).SetBytes(log.Topics[2].Bytes())
	return &itemCreated, nil
}

func ToMarketItemSoldLog(log *types.Log) (*MarketItemSoldLog, error) {
	var itemSold MarketItemSoldLog
	if err := MarketplaceABI.UnpackIntoInterface(&itemSold, "MarketItemSold", log.Data); err != nil {
		return nil, err
	}
	itemSold.ItemId = new(big.Int).SetBytes(log.Topics[1].Bytes())
	itemSold.TokenId = new(big.Int).SetBytes(log.Topics[2].Bytes())
	return &itemSold, nil
}

func ToMarketItemRelistedLog(log *types.Log) (*MarketItemRelistedLog, error) {
	var itemRelisted MarketItemRelistedLog
	if err := MarketplaceABI.UnpackIntoInterface(&itemRelisted, "MarketItemRelisted", log.Data); err != nil {
		return nil, err
	}
	itemRelisted.ItemId = new(big.Int).SetBytes(log.Topics[1].Bytes())
	itemRelisted.TokenId = new(big.Int).SetBytes(log.Topics[2].Bytes())
	return &itemRelisted, nil
}

func ToAuctionCreatedLog(log *types.Log) (*AuctionCreatedLog, error) {
	var auctionCreated AuctionCreatedLog
	if err := MarketplaceABI.UnpackIntoInterface(&auctionCreated, "AuctionCreated", log.Data); err != nil {
		return nil, err
	}
	auctionCreated.TokenId = new(big.Int).SetBytes(log.Topics[1].Bytes())
	return &auctionCreated, nil
}

func ToBidPlacedLog(log *types.Log) (*BidPlacedLog, error) {
	var bidPlaced BidPlacedLog
	if err := MarketplaceABI.UnpackIntoInterface(&bidPlaced, "BidPlaced", log.Data); err != nil {
		return nil, err
	}
	bidPlaced.TokenId = new(big.Int).SetBytes(log.Topics[1].Bytes())
	return &bidPlaced, nil
}

func ToAuctionEndedLog(log *types.Log) (*AuctionEndedLog, error) {
	var auctionEnded AuctionEndedLog
	if err := MarketplaceABI.UnpackIntoInterface(&auctionEnded, "AuctionEnded", log.Data); err != nil {
		return nil, err
	}
	auctionEnded.TokenId = new(big.Int).SetBytes(log.Topics[1].Bytes())
	return &auctionEnded, nil
}
