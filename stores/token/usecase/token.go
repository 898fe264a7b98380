package usecase

import (
	"github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/domain"
	"github.com/niftyhouse/indexer/domain/nftitem"
)

type TokenUseCaseCfg struct {
	NftitemRepo nftitem.Repo
}

type tokenUseCase struct {
	nftitemRepo nftitem.Repo
}

func NewTokenUseCase(cfg *TokenUseCaseCfg) nftitem.UseCase {
	return &tokenUseCase{
		nftitemRepo: cfg.NftitemRepo,
	}
}

func (u *tokenUseCase) FindAll(c ctx.Ctx, opts ...nftitem.FindAllOptionsFunc) ([]*nftitem.NftItem, error) {
	items, err := u.nftitemRepo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("nftitemRepo.FindAll failed")
		return nil, err
	}
	return items, nil
}

func (u *tokenUseCase) FindOneByTokenId(c ctx.Ctx, tokenId domain.TokenId) (*nftitem.NftItem, error) {
	item, err := u.nftitemRepo.FindOne(c, nftitem.WithTokenId(tokenId), nftitem.WithIsExternal(false))
	if err != nil {
		if err != domain.ErrNotFound {
			c.WithField("err", err).Error("nftitemRepo.FindOne failed")
		}
		return nil, err
	}
	return item, nil
}

func (u *tokenUseCase) IncreaseViewCount(c ctx.Ctx, id nftitem.Id, count int) (int32, error) {
	viewed, err := u.nftitemRepo.IncreaseViewCount(c, id, count)
	if err != nil {
		if err != domain.ErrNotFound {
			c.WithField("err", err).Error("nftitemRepo.IncreaseViewCount failed")
		}
		return 0, err
	}
	return viewed, nil
}
