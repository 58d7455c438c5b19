package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olmarket/feedsync/app/database"
	"github.com/olmarket/feedsync/app/feed"
)

// SyncFeedConfigTask registers a configured feed in the database so run
// status and timestamps have a row to land on.
type SyncFeedConfigTask struct {
	Task
	FeedConfig *feed.Config
	feedRepo   database.FeedRepository
}

func NewSyncFeedConfigTask(feedName string, feedConfig *feed.Config, feedRepo database.FeedRepository) *SyncFeedConfigTask {
	return &SyncFeedConfigTask{
		Task:       NewTask(TaskTypeSyncFeedConfig, feedName),
		FeedConfig: feedConfig,
		feedRepo:   feedRepo,
	}
}

func (t *SyncFeedConfigTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.feedRepo.UpsertFeed(t.FeedName, t.FeedConfig.URL); err != nil {
		return fmt.Errorf("failed to sync feed config: %w", err)
	}

	slog.Debug("Feed registered", "feed", t.FeedName, "url", t.FeedConfig.URL)

	return nil
}
