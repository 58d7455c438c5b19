package tasks

import (
	"context"
	"log/slog"

	"github.com/olmarket/feedsync/app/feed"
)

// ImportFeedTask runs the ingestion pipeline for one configured feed using
// that feed's own mode. Status recording happens inside the importer.
type ImportFeedTask struct {
	Task
	FeedConfig *feed.Config
	importer   *feed.Importer
}

func NewImportFeedTask(feedName string, feedConfig *feed.Config, importer *feed.Importer) *ImportFeedTask {
	return &ImportFeedTask{
		Task:       NewTask(TaskTypeImportFeed, feedName),
		FeedConfig: feedConfig,
		importer:   importer,
	}
}

func (t *ImportFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.FeedConfig.Settings.Enabled {
		slog.Debug("Feed disabled, skipping", "feed", t.FeedName)
		return nil
	}

	result, err := t.importer.ImportFeed(ctx, t.FeedConfig, t.FeedConfig.Settings.Mode)
	if err != nil {
		return err
	}

	slog.Info("Task completed",
		"type", "ImportFeed",
		"feed", t.FeedName,
		"duration", t.GetDuration(),
		"offers", result.Offers,
		"written", result.Written())

	return nil
}
