package api

import (
	"context"

	"github.com/olmarket/feedsync/app/database"
	"github.com/olmarket/feedsync/app/feed"
)

type ImporterInterface interface {
	RunAll(ctx context.Context, mode feed.Mode) (int, error)
	RunOne(ctx context.Context, feedName string) (*feed.RunResult, error)
}

var _ ImporterInterface = (*feed.Importer)(nil)

type Handler struct {
	configCache  *feed.ConfigCache
	feedRepo     database.FeedRepository
	productRepo  database.ProductRepository
	categoryRepo database.CategoryRepository
	importer     ImporterInterface
}

// ImportRequest triggers either all enabled feeds with an explicit mode (op)
// or a single feed using its own configured mode (feed_id).
type ImportRequest struct {
	Op     string `json:"op"`
	FeedID string `json:"feed_id"`
}

type ImportResponse struct {
	OK      bool `json:"ok"`
	Updated int  `json:"updated"`
}

type FeedImportResponse struct {
	OK           bool     `json:"ok"`
	Offers       int      `json:"offers"`
	Created      int      `json:"created"`
	UpdatedStock int      `json:"updatedStock"`
	SkippedNoSku int      `json:"skippedNoSku"`
	Errors       []string `json:"errors"`
}

type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
