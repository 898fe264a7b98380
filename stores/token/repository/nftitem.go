package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/base/database/mongoclient"
	"github.com/niftyhouse/indexer/base/log"
	"github.com/niftyhouse/indexer/domain"
	"github.com/niftyhouse/indexer/domain/nftitem"
	"github.com/niftyhouse/indexer/service/query"
)

func makeFindQuery(opts nftitem.FindAllOptions) (q bson.M) {
	q = bson.M{}

	if len(opts.ContractAddresses) > 1 {
		q["contractAddress"] = bson.M{"$in": opts.ContractAddresses}
	} else if len(opts.ContractAddresses) == 1 {
		q["contractAddress"] = opts.ContractAddresses[0]
	}

	if opts.ChainId != nil {
		q["chainId"] = *opts.ChainId
	}

	if opts.TokenId != nil {
		q["tokenID"] = *opts.TokenId
	}

	if opts.ItemId != nil {
		q["itemId"] = *opts.ItemId
	}

	if opts.Owner != nil {
		q["owner"] = opts.Owner.ToLowerStr()
	}

	if opts.Sold != nil {
		q["sold"] = *opts.Sold
	}

	if opts.IsExternal != nil {
		q["isExternal"] = *opts.IsExternal
	}

	if opts.ViewedGT != nil {
		q["viewed"] = bson.M{"$gt": *opts.ViewedGT}
	}

	return q
}

type nftitemImpl struct {
	q query.Mongo
}

func NewNftItem(q query.Mongo) nftitem.Repo {
	return &nftitemImpl{q: q}
}

func (im *nftitemImpl) FindAll(c ctx.Ctx, optFns ...nftitem.FindAllOptionsFunc) ([]*nftitem.NftItem, error) {
	opts, err := nftitem.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("nftitem.GetFindAllOptions failed")
		return nil, err
	}

	offset := int(0)
	limit := int(0)
	sort := []string{"-_id"}

	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}
	if opts.SortBy != nil && opts.SortDir != nil {
		sortBy := *opts.SortBy
		if *opts.SortDir == domain.SortDirDesc {
			sortBy = "-" + sortBy
		}
		sort = append([]string{sortBy}, opts.SecondarySorts...)
		sort = append(sort, "-_id")
	}

	q := makeFindQuery(opts)

	res := []*nftitem.NftItem{}
	if err := im.q.SearchNSorts(c, domain.TableNFTItems, offset, limit, sort, q, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": q,
			"sort":  sort,
		}).Error("q.SearchNSorts failed")
		return nil, err
	}
	return res, nil
}

func (im *nftitemImpl) FindOne(c ctx.Ctx, optFns ...nftitem.FindAllOptionsFunc) (*nftitem.NftItem, error) {
	opts, err := nftitem.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("nftitem.GetFindAllOptions failed")
		return nil, err
	}

	q := makeFindQuery(opts)

	res := &nftitem.NftItem{}
	if err := im.q.FindOne(c, domain.TableNFTItems, q, res); err != nil {
		if err == query.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		c.WithFields(log.Fields{
			"err":   err,
			"query": q,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *nftitemImpl) Count(c ctx.Ctx, optFns ...nftitem.FindAllOptionsFunc) (int, error) {
	opts, err := nftitem.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("nftitem.GetFindAllOptions failed")
		return 0, err
	}

	q := makeFindQuery(opts)

	cnt, err := im.q.Count(c, domain.TableNFTItems, q)
	if err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return 0, err
	}
	return cnt, nil
}

func (im *nftitemImpl) Create(c ctx.Ctx, item *nftitem.NftItem) error {
	if err := im.q.Insert(c, domain.TableNFTItems, item); err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *nftitemImpl) Upsert(c ctx.Ctx, item *nftitem.NftItem, optFns ...nftitem.FindAllOptionsFunc) error {
	opts, err := nftitem.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("nftitem.GetFindAllOptions failed")
		return err
	}

	q := makeFindQuery(opts)

	if err := im.q.Upsert(c, domain.TableNFTItems, q, item); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": q,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *nftitemImpl) BulkUpsert(c ctx.Ctx, items []*nftitem.NftItem) error {
	ops := make([]query.UpsertOp, 0, len(items))
	for _, item := range items {
		ops = append(ops, query.UpsertOp{
			Selector: bson.M{
				"isExternal":      item.IsExternal,
				"contractAddress": item.ContractAddress.ToLower(),
				"tokenID":         item.TokenId,
			},
			Updater: item,
		})
	}

	if _, _, err := im.q.BulkUpsert(c, domain.TableNFTItems, ops); err != nil {
		c.WithField("err", err).Error("q.BulkUpsert failed")
		return err
	}
	return nil
}

func (im *nftitemImpl) Patch(c ctx.Ctx, value nftitem.PatchableNftItem, optFns ...nftitem.FindAllOptionsFunc) error {
	opts, err := nftitem.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("nftitem.GetFindAllOptions failed")
		return err
	}

	q := makeFindQuery(opts)

	val, err := mongoclient.MakeBsonM(value)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if err := im.q.Patch(c, domain.TableNFTItems, q, val); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrNotFound
		}
		c.WithFields(log.Fields{
			"err":   err,
			"query": q,
		}).Error("q.Patch failed")
		return err
	}
	return nil
}

func (im *nftitemImpl) PatchUpsert(c ctx.Ctx, value nftitem.PatchableNftItem, setOnInsert nftitem.InsertOnlyNftItem, optFns ...nftitem.FindAllOptionsFunc) error {
	opts, err := nftitem.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("nftitem.GetFindAllOptions failed")
		return err
	}

	q := makeFindQuery(opts)

	val, err := mongoclient.MakeBsonM(value)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}

	update := bson.M{"$set": val}

	if insertOnly, err := mongoclient.MakeBsonM(setOnInsert); err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	} else if len(insertOnly) > 0 {
		update["$setOnInsert"] = insertOnly
	}

	if err := im.q.CustomPatch(c, domain.TableNFTItems, q, update, true); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": q,
		}).Error("q.CustomPatch failed")
		return err
	}
	return nil
}

func (im *nftitemImpl) IncreaseViewCount(c ctx.Ctx, id nftitem.Id, count int) (int32, error) {
	res := &nftitem.NftItem{}

	id.ContractAddress = id.ContractAddress.ToLower()

	if slr, err := mongoclient.MakeBsonM(id); err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return 0, err
	} else if err := im.q.Increment(c, domain.TableNFTItems, slr, res, "viewed", count); err != nil {
		if err == query.ErrNotFound {
			return 0, domain.ErrNotFound
		}
		c.WithField("err", err).Error("q.Increment failed")
		return 0, err
	}

	return res.Viewed, nil
}
