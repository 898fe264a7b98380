package usecase

import (
	"github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/domain"
	"github.com/niftyhouse/indexer/domain/activity"
)

const defaultLimit = 100

type ActivityUseCaseCfg struct {
	ActivityRepo activity.Repo
}

type activityUseCase struct {
	activityRepo activity.Repo
}

func NewActivityUseCase(cfg *ActivityUseCaseCfg) activity.UseCase {
	return &activityUseCase{
		activityRepo: cfg.ActivityRepo,
	}
}

func (u *activityUseCase) FindActivitiesByToken(c ctx.Ctx, tokenId domain.TokenId, limit int) ([]activity.Activity, error) {
	if limit <= 0 || limit > defaultLimit {
		limit = defaultLimit
	}
	res, err := u.activityRepo.FindActivities(c,
		activity.WithTokenId(tokenId),
		activity.WithPagination(0, limit),
	)
	if err != nil {
		c.WithField("err", err).Error("activityRepo.FindActivities failed")
		return nil, err
	}
	return res, nil
}

func (u *activityUseCase) FindActivitiesByAccount(c ctx.Ctx, account domain.Address, limit int) ([]activity.Activity, error) {
	if limit <= 0 || limit > defaultLimit {
		limit = defaultLimit
	}
	res, err := u.activityRepo.FindActivities(c,
		activity.WithAccount(account),
		activity.WithPagination(0, limit),
	)
	if err != nil {
		c.WithField("err", err).Error("activityRepo.FindActivities failed")
		return nil, err
	}
	return res, nil
}
