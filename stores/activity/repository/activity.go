package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/base/database/mongoclient"
	"github.com/niftyhouse/indexer/base/log"
	"github.com/niftyhouse/indexer/domain"
	"github.com/niftyhouse/indexer/domain/activity"
	"github.com/niftyhouse/indexer/service/query"
)

type activityRepo struct {
	q query.Mongo
}

func NewActivityRepo(q query.Mongo) activity.Repo {
	return &activityRepo{q: q}
}

func makeFindQuery(opts ...activity.FindActivitiesOptions) (bson.M, *int, *int, error) {
	opt, err := activity.GetFindActivitiesOptions(opts...)
	if err != nil {
		return nil, nil, nil, err
	}

	q := bson.M{}

	if opt.Account != nil {
		q["$or"] = bson.A{
			bson.M{"from": opt.Account.ToLowerStr()},
			bson.M{"to": opt.Account.ToLowerStr()},
		}
	}

	if opt.TokenId != nil {
		q["tokenId"] = *opt.TokenId
	}

	if len(opt.Types) == 1 {
		q["type"] = opt.Types[0]
	} else if len(opt.Types) > 1 {
		q["type"] = bson.M{"$in": opt.Types}
	}

	return q, opt.Offset, opt.Limit, nil
}

func (r *activityRepo) FindActivities(c ctx.Ctx, opts ...activity.FindActivitiesOptions) ([]activity.Activity, error) {
	q, offset, limit, err := makeFindQuery(opts...)
	if err != nil {
		c.WithField("err", err).Error("activity.GetFindActivitiesOptions failed")
		return nil, err
	}

	_offset := 0
	_limit := 0
	if offset != nil {
		_offset = *offset
	}
	if limit != nil {
		_limit = *limit
	}

	res := []activity.Activity{}
	if err := r.q.Search(c, domain.TableActivities, _offset, _limit, "-time", q, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": q,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *activityRepo) CountActivities(c ctx.Ctx, opts ...activity.FindActivitiesOptions) (int, error) {
	q, _, _, err := makeFindQuery(opts...)
	if err != nil {
		c.WithField("err", err).Error("activity.GetFindActivitiesOptions failed")
		return 0, err
	}

	cnt, err := r.q.Count(c, domain.TableActivities, q)
	if err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return 0, err
	}
	return cnt, nil
}

func (r *activityRepo) UpsertByEventId(c ctx.Ctx, a *activity.Activity) error {
	bsonM, err := mongoclient.MakeBsonM(a)
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"activity": *a,
		}).Error("mongoclient.MakeBsonM failed")
		return err
	}

	selector := bson.M{"eventId": a.EventId}

	// written fields only take effect on insert, replays never mutate the record
	update := bson.M{"$setOnInsert": bsonM}

	if err := r.q.CustomPatch(c, domain.TableActivities, selector, update, true); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("q.CustomPatch failed")
		return err
	}
	return nil
}
