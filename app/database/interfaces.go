package database

import (
	"github.com/shopspring/decimal"
)

// ProductUpsert is the write-ready shape for a full-import product write.
type ProductUpsert struct {
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	Available   bool
	ImageURL    string
	Gallery     []string
	CategoryID  *string
}

// StockUpdate carries the availability-only write for one known SKU.
type StockUpdate struct {
	SKU       string
	Available bool
}

type FeedRepository interface {
	GetFeed(feedName string) (*Feed, error)
	GetFeedCount() (int, error)

	UpsertFeed(feedName, feedURL string) error
	UpdateRunStatus(feedName string, status string) error
}

type ProductRepository interface {
	GetExistingSKUs(skus []string) (map[string]bool, error)
	GetProductCount() (int, error)

	UpsertProducts(products []ProductUpsert) error
	UpdateAvailability(updates []StockUpdate) (int64, error)
}

type CategoryRepository interface {
	GetCategoryCount() (int, error)

	UpsertCategory(name, slug string) (string, error)
}
