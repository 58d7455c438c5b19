package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olmarket/feedsync/app/database"
	"github.com/olmarket/feedsync/app/feed"
)

func NewHandler(configCache *feed.ConfigCache, feedRepo database.FeedRepository,
	productRepo database.ProductRepository, categoryRepo database.CategoryRepository,
	importer ImporterInterface) *Handler {
	return &Handler{
		configCache:  configCache,
		feedRepo:     feedRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		importer:     importer,
	}
}

// TriggerImport is the single ingestion entry point. A malformed payload is a
// top-level failure and short-circuits before any feed is touched.
func (h *Handler) TriggerImport(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{OK: false, Error: "invalid request payload"})
		return
	}

	if req.FeedID != "" {
		h.importSingleFeed(c, req.FeedID)
		return
	}

	mode := feed.Mode(req.Op)
	if !mode.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{OK: false, Error: "op must be full_import or stock_only"})
		return
	}

	total, err := h.importer.RunAll(c.Request.Context(), mode)
	if err != nil {
		slog.Error("Import run failed", "op", req.Op, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{OK: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ImportResponse{OK: true, Updated: total})
}

func (h *Handler) importSingleFeed(c *gin.Context, feedID string) {
	result, err := h.importer.RunOne(c.Request.Context(), feedID)
	if err != nil && result == nil {
		// Unknown feed: nothing was touched, report a top-level failure.
		c.JSON(http.StatusNotFound, ErrorResponse{OK: false, Error: err.Error()})
		return
	}

	resp := FeedImportResponse{
		OK:           err == nil,
		Offers:       result.Offers,
		Created:      result.Created,
		UpdatedStock: result.Updated,
		SkippedNoSku: result.SkippedNoSKU,
		Errors:       result.Errors,
	}
	if err != nil {
		resp.Errors = append(resp.Errors, err.Error())
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if feedCount, err := h.feedRepo.GetFeedCount(); err == nil {
		health["feeds"] = feedCount
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"loaded_configurations": h.configCache.GetConfigCount(),
	}

	if feedCount, err := h.feedRepo.GetFeedCount(); err == nil {
		stats["feeds"] = feedCount
	}
	if productCount, err := h.productRepo.GetProductCount(); err == nil {
		stats["products"] = productCount
	}
	if categoryCount, err := h.categoryRepo.GetCategoryCount(); err == nil {
		stats["categories"] = categoryCount
	}

	feeds := make([]map[string]interface{}, 0)
	for name, feedConfig := range h.configCache.GetConfigs() {
		info := map[string]interface{}{
			"name":    name,
			"url":     feedConfig.URL,
			"mode":    string(feedConfig.Settings.Mode),
			"enabled": feedConfig.Settings.Enabled,
		}

		if dbFeed, err := h.feedRepo.GetFeed(name); err == nil && dbFeed != nil {
			info["last_status"] = dbFeed.LastStatus
			if dbFeed.LastRunAt != nil {
				info["last_run_at"] = dbFeed.LastRunAt.Format(time.RFC3339)
			}
		}

		feeds = append(feeds, info)
	}
	stats["feed_details"] = feeds

	c.JSON(http.StatusOK, stats)
}
