package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetcher_Run(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("Expected User-Agent 'test-agent', got %q", got)
		}
		fmt.Fprint(w, "<yml_catalog/>")
	}))
	defer server.Close()

	fetcher := NewFetcher(&http.Client{}, "test-agent", 100000)

	data, err := fetcher.Run(context.Background(), server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(data) != "<yml_catalog/>" {
		t.Errorf("Expected document body, got %q", string(data))
	}
}

func TestFetcher_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	fetcher := NewFetcher(&http.Client{}, "test-agent", 100000)

	_, err := fetcher.Run(context.Background(), server.URL, 5*time.Second)
	if err == nil {
		t.Fatal("Expected error for non-2xx status")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Errorf("Expected FetchError, got %T", err)
	}
}

func TestFetcher_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	fetcher := NewFetcher(&http.Client{}, "test-agent", 100000)

	_, err := fetcher.Run(context.Background(), server.URL, 50*time.Millisecond)
	if err == nil {
		t.Fatal("Expected timeout error")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Errorf("Expected FetchError, got %T", err)
	}
}

func TestFetcher_ConnectionRefused(t *testing.T) {
	fetcher := NewFetcher(&http.Client{}, "test-agent", 100000)

	_, err := fetcher.Run(context.Background(), "http://127.0.0.1:1", 2*time.Second)
	if err == nil {
		t.Fatal("Expected connection error")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Errorf("Expected FetchError, got %T", err)
	}
}
