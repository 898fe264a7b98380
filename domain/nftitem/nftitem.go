package nftitem

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/niftyhouse/indexer/base/ctx"
	"github.com/niftyhouse/indexer/domain"
)

type Id struct {
	ChainId         domain.ChainId `json:"chainId" bson:"chainId"`
	ContractAddress domain.Address `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId `json:"tokenId" bson:"tokenID"`
}

func (i *Id) ToString() string {
	return fmt.Sprintf("%v_%s_%s", i.ChainId, i.ContractAddress, i.TokenId)
}

type NftItem struct {
	ObjectId        primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ChainId         domain.ChainId     `json:"chainId" bson:"chainId"`
	ContractAddress domain.Address     `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId     `json:"tokenId" bson:"tokenID"`
	ItemId          string             `json:"itemId,omitempty" bson:"itemId,omitempty"`
	Seller          domain.Address     `json:"seller" bson:"seller"`
	Owner           domain.Address     `json:"owner" bson:"owner"`
	Creator         domain.Address     `json:"creator" bson:"creator"`
	Price           string             `json:"price" bson:"price"` // wei, exact
	Sold            bool               `json:"sold" bson:"sold"`
	Name            string             `json:"name" bson:"name"`
	Description     string             `json:"description" bson:"description"`
	TokenUri        string             `json:"tokenUri" bson:"tokenURI"`
	ImageUrl        string             `json:"imageUrl" bson:"imageURL"`
	AnimationUrl    string             `json:"animationUrl" bson:"animationUrl"`
	MediaType       domain.MediaType   `json:"mediaType" bson:"mediaType"`
	MimeType        string             `json:"mimeType" bson:"mimeType"`
	Category        string             `json:"category" bson:"category"`
	IsExternal      bool               `json:"isExternal" bson:"isExternal"`
	ExternalUrl     string             `json:"externalUrl" bson:"externalUrl"`
	Attributes      Attributes         `json:"attributes" bson:"attributes"`

	// auction sub-state, valid while IsAuction is set
	IsAuction      bool           `json:"isAuction" bson:"isAuction"`
	MinBid         string         `json:"minBid,omitempty" bson:"minBid,omitempty"`
	HighestBid     string         `json:"highestBid,omitempty" bson:"highestBid,omitempty"`
	HighestBidder  domain.Address `json:"highestBidder,omitempty" bson:"highestBidder,omitempty"`
	AuctionEndTime *time.Time     `json:"auctionEndTime,omitempty" bson:"auctionEndTime"`

	Viewed      int32              `json:"viewed" bson:"viewed"`
	BlockNumber domain.BlockNumber `json:"blockNumber" bson:"blockNumber"`
	ListedAt    *time.Time         `json:"listedAt,omitempty" bson:"listedAt"`
	SoldAt      *time.Time         `json:"soldAt,omitempty" bson:"soldAt"`
	CreatedAt   time.Time          `json:"createdAt,omitempty" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt,omitempty" bson:"updatedAt"`
}

func (i *NftItem) ToId() *Id {
	return &Id{
		ChainId:         i.ChainId,
		ContractAddress: i.ContractAddress,
		TokenId:         i.TokenId,
	}
}

type PatchableNftItem struct {
	ItemId         *string             `json:"itemId" bson:"itemId"`
	Seller         *domain.Address     `json:"seller" bson:"seller"`
	Owner          *domain.Address     `json:"owner" bson:"owner"`
	Price          *string             `json:"price" bson:"price"`
	Sold           *bool               `json:"sold" bson:"sold"`
	Name           *string             `json:"name" bson:"name"`
	Description    *string             `json:"description" bson:"description"`
	TokenUri       *string             `json:"tokenUri" bson:"tokenURI"`
	ImageUrl       *string             `json:"imageUrl" bson:"imageURL"`
	AnimationUrl   *string             `json:"animationUrl" bson:"animationUrl"`
	MediaType      *domain.MediaType   `json:"mediaType" bson:"mediaType"`
	MimeType       *string             `json:"mimeType" bson:"mimeType"`
	Category       *string             `json:"category" bson:"category"`
	IsAuction      *bool               `json:"isAuction" bson:"isAuction"`
	MinBid         *string             `json:"minBid" bson:"minBid"`
	HighestBid     *string             `json:"highestBid" bson:"highestBid"`
	HighestBidder  *domain.Address     `json:"highestBidder" bson:"highestBidder"`
	AuctionEndTime *time.Time          `json:"auctionEndTime" bson:"auctionEndTime"`
	BlockNumber    *domain.BlockNumber `json:"blockNumber" bson:"blockNumber"`
	ListedAt       *time.Time          `json:"listedAt,omitempty" bson:"listedAt"`
	SoldAt         *time.Time          `json:"soldAt,omitempty" bson:"soldAt"`
}

// InsertOnlyNftItem carries the fields a patch-upsert writes only when it
// creates the record.
type InsertOnlyNftItem struct {
	Creator   domain.Address `bson:"creator,omitempty"`
	IsAuction *bool          `bson:"isAuction,omitempty"`
	Viewed    *int32         `bson:"viewed,omitempty"`
	CreatedAt time.Time      `bson:"createdAt,omitempty"`
}

type FindAllOptions struct {
	SortBy  *string
	SortDir *domain.SortDir
	// SecondarySorts are tiebreak keys after the primary sort, already
	// signed mongo-style ("-field" for descending).
	SecondarySorts    []string
	ChainId           *domain.ChainId
	ContractAddresses []domain.Address
	TokenId           *domain.TokenId
	ItemId            *string
	Owner             *domain.Address
	Sold              *bool
	IsExternal        *bool
	ViewedGT          *int32
	Offset            *int32
	Limit             *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithSort(sortby string, sortdir domain.SortDir) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SortBy = &sortby
		options.SortDir = &sortdir
		return nil
	}
}

// WithSecondarySort appends a tiebreak key applied after the primary sort.
func WithSecondarySort(sortby string, sortdir domain.SortDir) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		if sortdir == domain.SortDirDesc {
			sortby = "-" + sortby
		}
		options.SecondarySorts = append(options.SecondarySorts, sortby)
		return nil
	}
}

func WithChainId(chainId domain.ChainId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func WithContractAddresses(addresses []domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		for _, address := range addresses {
			options.ContractAddresses = append(options.ContractAddresses, address.ToLower())
		}
		return nil
	}
}

func WithTokenId(tokenId domain.TokenId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.TokenId = &tokenId
		return nil
	}
}

func WithItemId(itemId string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ItemId = &itemId
		return nil
	}
}

func WithOwner(address domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Owner = address.ToLowerPtr()
		return nil
	}
}

func WithSold(sold bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Sold = &sold
		return nil
	}
}

func WithIsExternal(isExternal bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.IsExternal = &isExternal
		return nil
	}
}

func WithViewedGT(viewed int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ViewedGT = &viewed
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*NftItem, error)
	FindOne(c ctx.Ctx, opts ...FindAllOptionsFunc) (*NftItem, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	Create(c ctx.Ctx, item *NftItem) error
	Upsert(c ctx.Ctx, item *NftItem, opts ...FindAllOptionsFunc) error
	BulkUpsert(c ctx.Ctx, items []*NftItem) error
	Patch(c ctx.Ctx, value PatchableNftItem, opts ...FindAllOptionsFunc) error
	// PatchUpsert patches the matched record, creating it when absent.
	// Fields in setOnInsert only apply on the insert path.
	PatchUpsert(c ctx.Ctx, value PatchableNftItem, setOnInsert InsertOnlyNftItem, opts ...FindAllOptionsFunc) error
	IncreaseViewCount(c ctx.Ctx, id Id, count int) (int32, error)
}

type UseCase interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*NftItem, error)
	FindOneByTokenId(c ctx.Ctx, tokenId domain.TokenId) (*NftItem, error)
	IncreaseViewCount(c ctx.Ctx, id Id, count int) (int32, error)
}
