package domain

// Table is a mongo collection name.
type Table string

const (
	TableNFTItems   Table = "nftitems"
	TableActivities Table = "activities"
)
