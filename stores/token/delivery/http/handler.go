package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/base/delivery"
	"github.com/niftyhouse/indexer/domain"
	"github.com/niftyhouse/indexer/domain/activity"
	"github.com/niftyhouse/indexer/domain/nftitem"
	"github.com/niftyhouse/indexer/middleware"
)

type handler struct {
	token    nftitem.UseCase
	activity activity.UseCase
}

func New(e *echo.Echo, token nftitem.UseCase, activity activity.UseCase) {
	h := &handler{token, activity}

	gs := e.Group("/tokens")

	gs.GET("", h.list)

	g := e.Group("/token/:tokenId")

	g.GET("", h.get)

	g.GET("/activities", h.getActivities)

	g.POST("/view", h.increaseViewCount)

	e.GET("/account/:address/activities", h.getAccountActivities, middleware.IsValidAddress("address"))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Offset     int32            `query:"offset"`
		Limit      int32            `query:"limit"`
		SortBy     *string          `query:"sortBy"`
		SortDir    *domain.SortDir  `query:"sortDir"`
		ChainId    *domain.ChainId  `query:"chainId"`
		Contracts  []domain.Address `query:"contracts"`
		Owner      *domain.Address  `query:"owner"`
		Sold       *bool            `query:"sold"`
		IsExternal *bool            `query:"isExternal"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 100
	}

	opts := []nftitem.FindAllOptionsFunc{
		nftitem.WithPagination(p.Offset, p.Limit),
	}

	if p.SortBy != nil && p.SortDir != nil {
		opts = append(opts, nftitem.WithSort(*p.SortBy, *p.SortDir))
	}

	if p.ChainId != nil {
		opts = append(opts, nftitem.WithChainId(*p.ChainId))
	}

	if len(p.Contracts) > 0 {
		opts = append(opts, nftitem.WithContractAddresses(p.Contracts))
	}

	if p.Owner != nil {
		opts = append(opts, nftitem.WithOwner(*p.Owner))
	}

	if p.Sold != nil {
		opts = append(opts, nftitem.WithSold(*p.Sold))
	}

	if p.IsExternal != nil {
		opts = append(opts, nftitem.WithIsExternal(*p.IsExternal))
	}

	items, err := h.token.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, items)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	tokenId := domain.TokenId(c.Param("tokenId"))

	item, err := h.token.FindOneByTokenId(ctx, tokenId)
	if err == domain.ErrNotFound {
		return delivery.MakeJsonResp(c, http.StatusNotFound, "token not found")
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, item)
}

func (h *handler) getActivities(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Limit int `query:"limit"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	tokenId := domain.TokenId(c.Param("tokenId"))

	activities, err := h.activity.FindActivitiesByToken(ctx, tokenId, p.Limit)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, activities)
}

func (h *handler) getAccountActivities(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Limit int `query:"limit"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	account := domain.Address(c.Param("address")).ToLower()

	activities, err := h.activity.FindActivitiesByAccount(ctx, account, p.Limit)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, activities)
}

func (h *handler) increaseViewCount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ChainId  domain.ChainId `json:"chainId"`
		Contract domain.Address `json:"contract"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	id := nftitem.Id{
		ChainId:         p.ChainId,
		ContractAddress: p.Contract.ToLower(),
		TokenId:         domain.TokenId(c.Param("tokenId")),
	}

	count, err := h.token.IncreaseViewCount(ctx, id, 1)
	if err == domain.ErrNotFound {
		return delivery.MakeJsonResp(c, http.StatusNotFound, "token not found")
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, count)
}
