package moralis

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/base/log"
)

const (
	bearerKey   = "X-API-Key"
	v2Api       = "https://deep-index.moralis.io/api/v2"
	maxPageSize = 100
)

var chainName = map[int32]string{
	1:   "eth",
	5:   "goerli",
	137: "polygon",
}

func NewClient(cfg *ClientCfg) Client {
	return &client{
		client:  cfg.HttpClient,
		timeout: cfg.Timeout,
		apikey:  cfg.Apikey,
	}
}

type client struct {
	client  http.Client
	timeout time.Duration
	apikey  string
}

func (c *client) GetContractNfts(ctx bCtx.Ctx, chainId int32, contract string, limit int, cursor string) (*GetContractNftsResp, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	base, err := url.Parse(fmt.Sprintf("%s/nft/%s", v2Api, contract))
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Add("chain", toChainName(chainId))
	params.Add("format", "decimal")
	params.Add("limit", fmt.Sprint(limit))
	if cursor != "" {
		params.Add("cursor", cursor)
	}
	base.RawQuery = params.Encode()

	data, err := c.get(ctx, base.String())
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": base.String(),
			"err": err,
		}).Error("c.get failed")
		return nil, err
	}
	resp := &GetContractNftsResp{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return resp, nil
}

func (c *client) GetNftMetadata(ctx bCtx.Ctx, chainId int32, contract string, tokenId string) (*NftResult, error) {
	base, err := url.Parse(fmt.Sprintf("%s/nft/%s/%s", v2Api, contract, tokenId))
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Add("chain", toChainName(chainId))
	params.Add("format", "decimal")
	base.RawQuery = params.Encode()

	data, err := c.get(ctx, base.String())
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": base.String(),
			"err": err,
		}).Error("c.get failed")
		return nil, err
	}
	resp := &NftResult{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return resp, nil
}

func (c *client) GetContractFloorPrice(ctx bCtx.Ctx, chainId int32, contract string) (*FloorPriceResp, error) {
	base, err := url.Parse(fmt.Sprintf("%s/nft/%s/lowestprice", v2Api, contract))
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Add("chain", toChainName(chainId))
	base.RawQuery = params.Encode()

	data, err := c.get(ctx, base.String())
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": base.String(),
			"err": err,
		}).Error("c.get failed")
		return nil, err
	}
	resp := &FloorPriceResp{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return resp, nil
}

func (c *client) get(ctx bCtx.Ctx, url string) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	req.Header.Set(bearerKey, c.apikey)
	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to read body")
		return nil, err
	}
	return body, nil
}

func toChainName(chainId int32) string {
	if name, ok := chainName[chainId]; ok {
		return name
	}
	return "eth"
}
