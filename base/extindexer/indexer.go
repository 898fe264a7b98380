package extindexer

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/viney-shih/goroutines"

	bCtx "github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/base/log"
	"github.com/niftyhouse/indexer/base/metrics"
	"github.com/niftyhouse/indexer/base/normalize"
	"github.com/niftyhouse/indexer/domain"
	"github.com/niftyhouse/indexer/domain/nftitem"
	"github.com/niftyhouse/indexer/service/moralis"
)

const (
	maxPageSize      = 100
	writeBatchSize   = 500
	hydrateWorkers   = 10
	pageFetchRetries = 3
)

var met = metrics.New("extindexer", metrics.WithoutPodName())

// Target is one external collection to mirror. Limit caps how many tokens
// are pulled per run.
type Target struct {
	Label    string
	ChainId  domain.ChainId
	Contract domain.Address
	Limit    int
}

type IndexerCfg struct {
	Moralis     moralis.Client
	NftitemRepo nftitem.Repo
	Targets     []Target
	// PageDelay spaces out provider calls to stay under the rate limit.
	PageDelay  time.Duration
	RetryDelay time.Duration
}

// Indexer mirrors configured external collections into the item store. It is
// idempotent per run, items are keyed by (contract, tokenId) and upserted.
type Indexer struct {
	moralis     moralis.Client
	nftitemRepo nftitem.Repo
	targets     []Target
	pageDelay   time.Duration
	retryDelay  time.Duration
}

func NewIndexer(cfg *IndexerCfg) *Indexer {
	pageDelay := cfg.PageDelay
	if pageDelay <= 0 {
		pageDelay = time.Second
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 5 * time.Second
	}
	return &Indexer{
		moralis:     cfg.Moralis,
		nftitemRepo: cfg.NftitemRepo,
		targets:     cfg.Targets,
		pageDelay:   pageDelay,
		retryDelay:  retryDelay,
	}
}

// IndexAll runs every configured target in order. A failing target does not
// stop the rest, the first error is reported after all targets ran.
func (i *Indexer) IndexAll(ctx bCtx.Ctx) error {
	var firstErr error
	total := 0
	for _, t := range i.targets {
		n, err := i.IndexTarget(ctx, t)
		total += n
		if err != nil {
			ctx.WithFields(log.Fields{
				"label": t.Label,
				"err":   err,
			}).Error("i.IndexTarget failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	stored, err := i.nftitemRepo.Count(ctx, nftitem.WithIsExternal(true))
	if err != nil {
		ctx.WithField("err", err).Error("nftitemRepo.Count failed")
	} else {
		ctx.WithFields(log.Fields{
			"indexed": total,
			"stored":  stored,
		}).Info("external index run finished")
	}
	return firstErr
}

// IndexTarget pulls at most t.Limit tokens for one collection and returns
// how many records were written.
func (i *Indexer) IndexTarget(ctx bCtx.Ctx, t Target) (int, error) {
	ctx.WithFields(log.Fields{
		"label":    t.Label,
		"chainId":  t.ChainId,
		"contract": t.Contract,
		"limit":    t.Limit,
	}).Info("indexing external collection")

	fetched := 0
	written := 0
	cursor := ""
	batch := make([]*nftitem.NftItem, 0, writeBatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := i.nftitemRepo.BulkUpsert(ctx, batch); err != nil {
			// keep going, the next run repairs the gap
			ctx.WithFields(log.Fields{
				"label": t.Label,
				"size":  len(batch),
				"err":   err,
			}).Error("nftitemRepo.BulkUpsert failed")
		} else {
			written += len(batch)
		}
		batch = batch[:0]
	}

	for fetched < t.Limit {
		pageSize := t.Limit - fetched
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}

		resp, err := i.fetchPage(ctx, t, pageSize, cursor)
		if err != nil {
			flush()
			return written, err
		}
		if len(resp.Result) == 0 {
			break
		}

		items := i.hydrate(ctx, t, resp.Result)
		fetched += len(resp.Result)
		for _, item := range items {
			batch = append(batch, item)
			if len(batch) >= writeBatchSize {
				flush()
			}
		}

		if len(resp.Cursor) == 0 {
			break
		}
		cursor = resp.Cursor

		select {
		case <-ctx.Done():
			flush()
			return written, ctx.Err()
		case <-time.After(i.pageDelay):
		}
	}
	flush()

	met.BumpSum("fetched", float64(fetched), "label", t.Label)
	met.BumpSum("written", float64(written), "label", t.Label)

	ctx.WithFields(log.Fields{
		"label":   t.Label,
		"fetched": fetched,
		"written": written,
	}).Info("external collection indexed")
	return written, nil
}

// fetchPage retries transient provider failures on the same cursor before
// giving up on the target.
func (i *Indexer) fetchPage(ctx bCtx.Ctx, t Target, pageSize int, cursor string) (*moralis.GetContractNftsResp, error) {
	var lastErr error
	for attempt := 0; attempt < pageFetchRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(i.retryDelay):
			}
		}
		resp, err := i.moralis.GetContractNfts(ctx, int32(t.ChainId), string(t.Contract), pageSize, cursor)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		ctx.WithFields(log.Fields{
			"label":   t.Label,
			"attempt": attempt,
			"err":     err,
		}).Warn("moralis.GetContractNfts failed")
	}
	return nil, lastErr
}

// hydrate turns provider rows into item records, fetching token metadata for
// rows the inventory endpoint served without it. A row that cannot be
// hydrated still yields a sparse record so the token is not lost.
func (i *Indexer) hydrate(ctx bCtx.Ctx, t Target, results []moralis.NftResult) []*nftitem.NftItem {
	b := goroutines.NewBatch(hydrateWorkers, goroutines.WithBatchSize(len(results)))
	defer b.Close()
	for idx := 0; idx < len(results); idx++ {
		res := results[idx]
		b.Queue(func() (interface{}, error) {
			return i.toNftItem(ctx, t, res), nil
		})
	}
	b.QueueComplete()

	items := make([]*nftitem.NftItem, 0, len(results))
	for ret := range b.Results() {
		if ret.Error() != nil {
			continue
		}
		items = append(items, ret.Value().(*nftitem.NftItem))
	}
	return items
}

func (i *Indexer) toNftItem(ctx bCtx.Ctx, t Target, res moralis.NftResult) *nftitem.NftItem {
	raw := res.Metadata
	if len(strings.TrimSpace(raw)) == 0 {
		detail, err := i.moralis.GetNftMetadata(ctx, int32(t.ChainId), string(t.Contract), res.TokenId)
		if err != nil {
			ctx.WithFields(log.Fields{
				"label":   t.Label,
				"tokenId": res.TokenId,
				"err":     err,
			}).Warn("moralis.GetNftMetadata failed, storing sparse record")
		} else {
			raw = detail.Metadata
			if len(res.TokenUri) == 0 {
				res.TokenUri = detail.TokenUri
			}
		}
	}

	tokenId := domain.TokenId(res.TokenId)
	item := &nftitem.NftItem{
		ChainId:         t.ChainId,
		ContractAddress: t.Contract.ToLower(),
		TokenId:         tokenId,
		Owner:           domain.Address(res.OwnerOf).ToLower(),
		Name:            normalize.SanitizeName(res.Name),
		TokenUri:        res.TokenUri,
		IsExternal:      true,
		ExternalUrl:     normalize.ExternalUrl(t.ChainId, t.Contract, tokenId),
		MediaType:       domain.MediaTypeImage,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	md := &nftitem.Metadata{}
	if len(strings.TrimSpace(raw)) == 0 || json.Unmarshal([]byte(raw), md) != nil {
		return item
	}

	if name := normalize.SanitizeName(md.Name); len(name) > 0 {
		item.Name = name
	}
	item.Description = md.Description
	item.ImageUrl = md.Image
	item.AnimationUrl = md.AnimationUrl
	item.Category = md.Category
	item.Attributes = md.Attributes
	// bulk indexing never fetches media bytes, so the issuer-declared mime
	// is the only mime source here
	mime := md.MediaMime()
	item.MimeType = mime
	item.MediaType = normalize.ClassifyMedia(mime, md.Image, md.AnimationUrl)
	return item
}
