package database

import (
	"time"
)

// Feed is the run-status row for one configured supplier feed. Products and
// categories never round-trip out of the store: the write shapes live in
// interfaces.go and the counts come from dedicated count queries.
type Feed struct {
	ID         string // Database UUID
	Name       string // Configuration feed identifier derived from filename
	FeedURL    string // Supplier document URL from configuration
	LastRunAt  *time.Time
	LastStatus string // "ok: <count>" or "error: <message>" from the last run
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
