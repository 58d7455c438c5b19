package database

import (
	"database/sql"
	"fmt"
)

// FeedRepositoryImpl handles database operations for feed registrations
type FeedRepositoryImpl struct {
	db *DB
}

var _ FeedRepository = (*FeedRepositoryImpl)(nil)

func NewFeedRepository(db *DB) *FeedRepositoryImpl {
	return &FeedRepositoryImpl{db: db}
}

// UpsertFeed registers a configured feed, updating the URL if it changed.
func (r *FeedRepositoryImpl) UpsertFeed(feedName, feedURL string) error {
	_, err := r.db.Exec(`
		INSERT INTO feeds (name, feed_url)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET
			feed_url = EXCLUDED.feed_url,
			updated_at = NOW()
	`, feedName, feedURL)

	if err != nil {
		return fmt.Errorf("failed to upsert feed: %w", err)
	}

	return nil
}

// UpdateRunStatus records the outcome of one import run with a fresh run timestamp.
func (r *FeedRepositoryImpl) UpdateRunStatus(feedName string, status string) error {
	_, err := r.db.Exec(`
		UPDATE feeds
		SET last_status = $2, last_run_at = NOW(), updated_at = NOW()
		WHERE name = $1
	`, feedName, status)

	if err != nil {
		return fmt.Errorf("failed to update run status: %w", err)
	}

	return nil
}

func (r *FeedRepositoryImpl) GetFeed(feedName string) (*Feed, error) {
	var feed Feed
	err := r.db.QueryRow(`
		SELECT id, name, feed_url, last_run_at, COALESCE(last_status, ''), created_at, updated_at
		FROM feeds
		WHERE name = $1
	`, feedName).Scan(
		&feed.ID, &feed.Name, &feed.FeedURL, &feed.LastRunAt, &feed.LastStatus,
		&feed.CreatedAt, &feed.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}

	return &feed, nil
}

func (r *FeedRepositoryImpl) GetFeedCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM feeds").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get feed count: %w", err)
	}
	return count, nil
}
