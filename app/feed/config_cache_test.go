package feed

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".yml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestConfigCache_LoadWithDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "supplier", `url: https://supplier.example.com/feed.yml
settings:
  enabled: true
fields:
  items: yml_catalog.shop.offers.offer
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	config, err := cache.GetConfig("supplier")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if config.Settings.Mode != ModeFullImport {
		t.Errorf("Expected default mode full_import, got %q", config.Settings.Mode)
	}
	if config.Settings.RefreshInterval != 3600 {
		t.Errorf("Expected default refresh interval 3600, got %d", config.Settings.RefreshInterval)
	}
	if config.Settings.Timeout != 60 {
		t.Errorf("Expected default timeout 60, got %d", config.Settings.Timeout)
	}
	if config.Fields.SKU != "vendorCode" || config.Fields.Price != "price" {
		t.Errorf("Expected default field paths, got %+v", config.Fields)
	}
}

func TestConfigCache_MissingItemsPath(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "broken", `url: https://supplier.example.com/feed.yml
settings:
  enabled: true
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err == nil {
		t.Error("Expected error for config without items path")
	}
}

func TestConfigCache_InvalidMode(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "broken", `url: https://supplier.example.com/feed.yml
settings:
  enabled: true
  mode: sideways
fields:
  items: yml_catalog.shop.offers.offer
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err == nil {
		t.Error("Expected error for invalid mode")
	}
}

func TestConfigCache_EnabledFiltering(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "on", `url: https://a.example.com/feed.yml
settings:
  enabled: true
fields:
  items: yml_catalog.shop.offers.offer
`)
	writeConfigFile(t, dir, "off", `url: https://b.example.com/feed.yml
settings:
  enabled: false
fields:
  items: yml_catalog.shop.offers.offer
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cache.GetConfigCount() != 2 {
		t.Errorf("Expected 2 loaded configs, got %d", cache.GetConfigCount())
	}

	enabled := cache.GetEnabledConfigs()
	if len(enabled) != 1 {
		t.Fatalf("Expected 1 enabled config, got %d", len(enabled))
	}
	if _, ok := enabled["on"]; !ok {
		t.Error("Expected 'on' to be the enabled config")
	}
}

func TestConfigCache_MissingDirectory(t *testing.T) {
	cache := NewConfigCache("/nonexistent/feeds")

	if err := cache.Run(); err != nil {
		t.Errorf("Expected missing directory to be tolerated, got %v", err)
	}
	if cache.GetConfigCount() != 0 {
		t.Errorf("Expected no configs, got %d", cache.GetConfigCount())
	}
}
