package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/olmarket/feedsync/app/database"
)

// Chunk sizes per mode. Stock-only rows carry two values each, so larger
// batches stay within request bounds; full-import rows are heavier.
const (
	FullImportChunkSize = 300
	StockOnlyChunkSize  = 500
)

// Importer runs the ingestion pipeline for supplier feeds: fetch, parse,
// extract, normalize, resolve categories, upsert. It is the only component
// aware of multiple feeds.
type Importer struct {
	fetcher      *Fetcher
	parser       *Parser
	configCache  *ConfigCache
	feedRepo     database.FeedRepository
	productRepo  database.ProductRepository
	categoryRepo database.CategoryRepository
}

func NewImporter(fetcher *Fetcher, parser *Parser, configCache *ConfigCache,
	feedRepo database.FeedRepository, productRepo database.ProductRepository,
	categoryRepo database.CategoryRepository) *Importer {
	return &Importer{
		fetcher:      fetcher,
		parser:       parser,
		configCache:  configCache,
		feedRepo:     feedRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// RunAll imports every enabled feed sequentially in name order, forcing the
// given mode on each. A per-feed failure is recorded on that feed's status
// and does not stop processing of subsequent feeds. Returns the aggregate
// count of successfully written records.
func (im *Importer) RunAll(ctx context.Context, mode Mode) (int, error) {
	if !mode.Valid() {
		return 0, fmt.Errorf("invalid import mode: %s", mode)
	}

	configs := im.configCache.GetEnabledConfigs()
	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)

	total := 0
	for _, name := range names {
		result, _ := im.ImportFeed(ctx, configs[name], mode)
		total += result.Written()
	}

	return total, nil
}

// RunOne imports a single feed using that feed's own configured mode. An
// unknown feed name is a top-level failure; pipeline errors are recorded on
// the feed's status and returned alongside the partial result.
func (im *Importer) RunOne(ctx context.Context, feedName string) (*RunResult, error) {
	config, err := im.configCache.GetConfig(feedName)
	if err != nil {
		return nil, err
	}

	return im.ImportFeed(ctx, config, config.Settings.Mode)
}

// ImportFeed runs the pipeline for one feed and records the outcome as the
// feed's status string with a fresh run timestamp. The returned result is
// valid even on error: chunks written before a failure stay counted.
func (im *Importer) ImportFeed(ctx context.Context, config *Config, mode Mode) (*RunResult, error) {
	started := time.Now()

	result, err := im.run(ctx, config, mode)
	if err != nil {
		slog.Error("Feed import failed", "feed", config.Name, "mode", string(mode), "error", err)
		im.recordStatus(config.Name, fmt.Sprintf("error: %s", err.Error()))
		return result, err
	}

	im.recordStatus(config.Name, fmt.Sprintf("ok: %d", result.Written()))

	slog.Info("Feed import completed",
		"feed", config.Name,
		"mode", string(mode),
		"duration", time.Since(started),
		"offers", result.Offers,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.SkippedNoSKU+result.SkippedNoName+result.SkippedNoPrice)

	return result, nil
}

// run executes the pipeline stages for one feed: Fetching → Parsing →
// Extracting → Normalizing → Resolving Categories → Upserting. Any failure
// aborts this feed only.
func (im *Importer) run(ctx context.Context, config *Config, mode Mode) (*RunResult, error) {
	result := &RunResult{}

	data, err := im.fetcher.Run(ctx, config.URL, time.Duration(config.Settings.Timeout)*time.Second)
	if err != nil {
		return result, err
	}

	tree, err := im.parser.Run(data)
	if err != nil {
		return result, err
	}

	offers := LookupList(tree, config.Fields.Items)
	result.Offers = len(offers)

	categoryNames := collectCategoryNames(tree, config)
	resolver := NewCategoryResolver(im.categoryRepo)
	builder := NewBuilder(config)

	var records []*Record
	for i, raw := range offers {
		offer, ok := raw.(map[string]interface{})
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("offer %d: not a structured element", i+1))
			continue
		}

		record, skip := builder.Run(offer, mode)
		switch skip {
		case SkipMissingSKU:
			result.SkippedNoSKU++
			continue
		case SkipMissingName:
			result.SkippedNoName++
			continue
		case SkipInvalidPrice:
			result.SkippedNoPrice++
			continue
		}

		if mode == ModeFullImport && record.CategoryRef != "" {
			if name, ok := categoryNames[record.CategoryRef]; ok {
				id, err := resolver.Resolve(name)
				if err != nil {
					// Non-fatal: the offer proceeds uncategorized.
					slog.Warn("Category resolution failed", "feed", config.Name, "category", name, "error", err)
					result.Errors = append(result.Errors, fmt.Sprintf("category %q: %s", name, err.Error()))
				} else {
					record.CategoryID = &id
				}
			}
		}

		records = append(records, record)
	}

	if err := im.upsert(records, mode, result); err != nil {
		return result, err
	}

	return result, nil
}

// upsert partitions records into mode-sized chunks and writes them keyed on
// the SKU unique constraint. Stock-only records are restricted up front to
// SKUs already known to the store. A chunk failure aborts the remaining
// chunks; earlier chunks stay written and counted.
func (im *Importer) upsert(records []*Record, mode Mode, result *RunResult) error {
	records = dedupeBySKU(records)
	if len(records) == 0 {
		return nil
	}

	skus := make([]string, len(records))
	for i, record := range records {
		skus[i] = record.SKU
	}

	existing, err := im.productRepo.GetExistingSKUs(skus)
	if err != nil {
		return &WriteError{Chunk: 0, Err: err}
	}

	switch mode {
	case ModeStockOnly:
		updates := make([]database.StockUpdate, 0, len(records))
		for _, record := range records {
			if !existing[record.SKU] {
				continue
			}
			updates = append(updates, database.StockUpdate{SKU: record.SKU, Available: record.Available})
		}

		for i, chunk := range chunked(updates, StockOnlyChunkSize) {
			changed, err := im.productRepo.UpdateAvailability(chunk)
			if err != nil {
				return &WriteError{Chunk: i + 1, Err: err}
			}
			result.Updated += int(changed)
		}

	case ModeFullImport:
		upserts := make([]database.ProductUpsert, len(records))
		for i, record := range records {
			upserts[i] = database.ProductUpsert{
				SKU:         record.SKU,
				Name:        record.Name,
				Description: record.Description,
				Price:       record.Price,
				Available:   record.Available,
				ImageURL:    record.ImageURL,
				Gallery:     record.Gallery,
				CategoryID:  record.CategoryID,
			}
		}

		for i, chunk := range chunked(upserts, FullImportChunkSize) {
			if err := im.productRepo.UpsertProducts(chunk); err != nil {
				return &WriteError{Chunk: i + 1, Err: err}
			}
			for _, upsert := range chunk {
				if existing[upsert.SKU] {
					result.Updated++
				} else {
					result.Created++
				}
			}
		}
	}

	return nil
}

func (im *Importer) recordStatus(feedName, status string) {
	if err := im.feedRepo.UpdateRunStatus(feedName, status); err != nil {
		slog.Error("Failed to record run status", "feed", feedName, "status", status, "error", err)
	}
}

// collectCategoryNames builds the supplier-side ref→name map from the feed's
// own category listing.
func collectCategoryNames(tree map[string]interface{}, config *Config) map[string]string {
	names := make(map[string]string)

	for _, raw := range LookupList(tree, config.Fields.Categories) {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		id := scalarString(entry["id"])
		name := scalarString(entry["#text"])
		if id != "" && name != "" {
			names[id] = name
		}
	}

	return names
}

// dedupeBySKU collapses offers sharing a SKU to a single record, last
// occurrence winning, at the first occurrence's position. A repeated SKU
// inside one multi-row upsert statement is rejected by the store.
func dedupeBySKU(records []*Record) []*Record {
	index := make(map[string]int, len(records))
	deduped := make([]*Record, 0, len(records))

	for _, record := range records {
		if i, ok := index[record.SKU]; ok {
			deduped[i] = record
			continue
		}
		index[record.SKU] = len(deduped)
		deduped = append(deduped, record)
	}

	return deduped
}

func chunked[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for size < len(items) {
		chunks = append(chunks, items[:size])
		items = items[size:]
	}

	return append(chunks, items)
}
