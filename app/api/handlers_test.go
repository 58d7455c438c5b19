package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/olmarket/feedsync/app/database"
	"github.com/olmarket/feedsync/app/feed"
)

type fakeImporter struct {
	runAllTotal  int
	runAllErr    error
	lastMode     feed.Mode
	runOneResult *feed.RunResult
	runOneErr    error
	runOneFeed   string
}

func (f *fakeImporter) RunAll(ctx context.Context, mode feed.Mode) (int, error) {
	f.lastMode = mode
	return f.runAllTotal, f.runAllErr
}

func (f *fakeImporter) RunOne(ctx context.Context, feedName string) (*feed.RunResult, error) {
	f.runOneFeed = feedName
	return f.runOneResult, f.runOneErr
}

type stubFeedRepo struct{}

func (stubFeedRepo) GetFeed(string) (*database.Feed, error) { return nil, nil }
func (stubFeedRepo) GetFeedCount() (int, error)             { return 3, nil }
func (stubFeedRepo) UpsertFeed(string, string) error        { return nil }
func (stubFeedRepo) UpdateRunStatus(string, string) error   { return nil }

type stubProductRepo struct{}

func (stubProductRepo) GetExistingSKUs([]string) (map[string]bool, error)        { return nil, nil }
func (stubProductRepo) GetProductCount() (int, error)                            { return 100, nil }
func (stubProductRepo) UpsertProducts([]database.ProductUpsert) error            { return nil }
func (stubProductRepo) UpdateAvailability([]database.StockUpdate) (int64, error) { return 0, nil }

type stubCategoryRepo struct{}

func (stubCategoryRepo) GetCategoryCount() (int, error)                { return 7, nil }
func (stubCategoryRepo) UpsertCategory(string, string) (string, error) { return "", nil }

func newTestServer(t *testing.T, importer ImporterInterface) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewHandler(feed.NewConfigCache(t.TempDir()), stubFeedRepo{}, stubProductRepo{}, stubCategoryRepo{}, importer)
	return NewServer(handler, "secret-key")
}

func doRequest(server *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestTriggerImport_RequiresAPIKey(t *testing.T) {
	server := newTestServer(t, &fakeImporter{})

	w := doRequest(server, "POST", "/api/import", `{"op":"full_import"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without key, got %d", w.Code)
	}

	w = doRequest(server, "POST", "/api/import", `{"op":"full_import"}`, map[string]string{"X-API-Key": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with wrong key, got %d", w.Code)
	}
}

func TestTriggerImport_BearerTokenAccepted(t *testing.T) {
	importer := &fakeImporter{runAllTotal: 5}
	server := newTestServer(t, importer)

	w := doRequest(server, "POST", "/api/import", `{"op":"full_import"}`,
		map[string]string{"Authorization": "Bearer secret-key"})
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with bearer token, got %d", w.Code)
	}
}

func TestTriggerImport_MalformedPayload(t *testing.T) {
	importer := &fakeImporter{}
	server := newTestServer(t, importer)

	// A top-level failure: no feed is touched.
	w := doRequest(server, "POST", "/api/import", `{not json`, map[string]string{"X-API-Key": "secret-key"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed payload, got %d", w.Code)
	}
	if importer.lastMode != "" || importer.runOneFeed != "" {
		t.Error("Expected no import to run on malformed payload")
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["ok"] != false {
		t.Errorf("Expected ok=false, got %v", resp["ok"])
	}
}

func TestTriggerImport_InvalidOp(t *testing.T) {
	server := newTestServer(t, &fakeImporter{})

	w := doRequest(server, "POST", "/api/import", `{"op":"sideways"}`, map[string]string{"X-API-Key": "secret-key"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid op, got %d", w.Code)
	}
}

func TestTriggerImport_RunAll(t *testing.T) {
	importer := &fakeImporter{runAllTotal: 42}
	server := newTestServer(t, importer)

	w := doRequest(server, "POST", "/api/import", `{"op":"stock_only"}`, map[string]string{"X-API-Key": "secret-key"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if importer.lastMode != feed.ModeStockOnly {
		t.Errorf("Expected stock_only mode, got %q", importer.lastMode)
	}

	var resp ImportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.OK || resp.Updated != 42 {
		t.Errorf("Expected ok with 42 updated, got %+v", resp)
	}
}

func TestTriggerImport_SingleFeed(t *testing.T) {
	importer := &fakeImporter{
		runOneResult: &feed.RunResult{
			Offers:       10,
			Created:      4,
			Updated:      5,
			SkippedNoSKU: 1,
		},
	}
	server := newTestServer(t, importer)

	w := doRequest(server, "POST", "/api/import", `{"feed_id":"supplier"}`, map[string]string{"X-API-Key": "secret-key"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if importer.runOneFeed != "supplier" {
		t.Errorf("Expected RunOne for 'supplier', got %q", importer.runOneFeed)
	}

	var resp FeedImportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.OK || resp.Offers != 10 || resp.Created != 4 || resp.UpdatedStock != 5 || resp.SkippedNoSku != 1 {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestTriggerImport_UnknownFeed(t *testing.T) {
	importer := &fakeImporter{runOneErr: fmt.Errorf("feed config with name 'nope' not found")}
	server := newTestServer(t, importer)

	w := doRequest(server, "POST", "/api/import", `{"feed_id":"nope"}`, map[string]string{"X-API-Key": "secret-key"})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown feed, got %d", w.Code)
	}
}

func TestTriggerImport_SingleFeedPipelineFailure(t *testing.T) {
	importer := &fakeImporter{
		runOneResult: &feed.RunResult{Offers: 0},
		runOneErr:    fmt.Errorf("fetch http://supplier: HTTP error: 502"),
	}
	server := newTestServer(t, importer)

	w := doRequest(server, "POST", "/api/import", `{"feed_id":"supplier"}`, map[string]string{"X-API-Key": "secret-key"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 with error detail, got %d", w.Code)
	}

	var resp FeedImportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.OK {
		t.Error("Expected ok=false for failed run")
	}
	if len(resp.Errors) == 0 {
		t.Error("Expected the pipeline error to be reported")
	}
}

func TestHealthCheck(t *testing.T) {
	server := newTestServer(t, &fakeImporter{})

	w := doRequest(server, "GET", "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if _, ok := resp["timestamp"]; !ok {
		t.Error("Expected timestamp in health response")
	}
}

func TestGetStats(t *testing.T) {
	server := newTestServer(t, &fakeImporter{})

	w := doRequest(server, "GET", "/stats", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["products"] != float64(100) {
		t.Errorf("Expected 100 products, got %v", resp["products"])
	}
}
