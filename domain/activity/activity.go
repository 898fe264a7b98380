package activity

import (
	"fmt"
	"time"

	"github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/domain"
)

type Type string

const (
	TypeMint     Type = "MINT"
	TypeList     Type = "LIST"
	TypeSell     Type = "SELL"
	TypeTransfer Type = "TRANSFER"
)

type Activity struct {
	EventId     string             `json:"eventId" bson:"eventId"`
	Type        Type               `json:"type" bson:"type"`
	From        domain.Address     `json:"from,omitempty" bson:"from,omitempty"`
	To          domain.Address     `json:"to,omitempty" bson:"to,omitempty"`
	TokenId     domain.TokenId     `json:"tokenId" bson:"tokenId"`
	Price       string             `json:"price,omitempty" bson:"price,omitempty"`
	BlockNumber domain.BlockNumber `json:"blockNumber" bson:"blockNumber"`
	TxHash      domain.TxHash      `json:"txHash" bson:"txHash"`
	LogIndex    int64              `json:"logIndex" bson:"logIndex"`
	Time        time.Time          `json:"time" bson:"time"`
}

// EventId derives the deduplication key of an on-chain event occurrence. A
// replayed log maps to the same id, so upserting by it is naturally
// idempotent.
func EventId(blockNumber domain.BlockNumber, logIndex uint, eventName string, activityType Type) string {
	return fmt.Sprintf("%d:%d:%s:%s", blockNumber, logIndex, eventName, activityType)
}

type findActivitiesOptions struct {
	Offset  *int
	Limit   *int
	Account *domain.Address
	TokenId *domain.TokenId
	Types   []Type
}

type FindActivitiesOptions func(*findActivitiesOptions) error

func GetFindActivitiesOptions(opts ...FindActivitiesOptions) (*findActivitiesOptions, error) {
	res := &findActivitiesOptions{}
	for _, opt := range opts {
		if err := opt(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func WithPagination(offset, limit int) FindActivitiesOptions {
	return func(opts *findActivitiesOptions) error {
		opts.Offset = &offset
		opts.Limit = &limit
		return nil
	}
}

func WithAccount(account domain.Address) FindActivitiesOptions {
	return func(opts *findActivitiesOptions) error {
		opts.Account = account.ToLowerPtr()
		return nil
	}
}

func WithTokenId(tokenId domain.TokenId) FindActivitiesOptions {
	return func(opts *findActivitiesOptions) error {
		opts.TokenId = &tokenId
		return nil
	}
}

func WithTypes(types ...Type) FindActivitiesOptions {
	return func(opts *findActivitiesOptions) error {
		opts.Types = types
		return nil
	}
}

type Repo interface {
	FindActivities(c ctx.Ctx, opts ...FindActivitiesOptions) ([]Activity, error)
	CountActivities(c ctx.Ctx, opts ...FindActivitiesOptions) (int, error)
	// UpsertByEventId writes the activity only when no record carries the
	// same eventId yet. Existing records are never modified.
	UpsertByEventId(c ctx.Ctx, a *Activity) error
}

type UseCase interface {
	FindActivitiesByToken(c ctx.Ctx, tokenId domain.TokenId, limit int) ([]Activity, error)
	FindActivitiesByAccount(c ctx.Ctx, account domain.Address, limit int) ([]Activity, error)
}
