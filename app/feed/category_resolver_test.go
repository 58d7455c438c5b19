package feed

import (
	"testing"
)

func TestCategoryResolver_MemoizesWithinRun(t *testing.T) {
	repo := newFakeCategoryRepo()
	resolver := NewCategoryResolver(repo)

	first, err := resolver.Resolve("Дитячий одяг")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	second, err := resolver.Resolve("Дитячий одяг")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("Expected memoized id %q, got %q", first, second)
	}
	if got := repo.upsertCalls["дитячий-одяг"]; got != 1 {
		t.Errorf("Expected a single store upsert, got %d", got)
	}
}

func TestCategoryResolver_EmptyName(t *testing.T) {
	resolver := NewCategoryResolver(newFakeCategoryRepo())

	if _, err := resolver.Resolve("   "); err == nil {
		t.Error("Expected error for blank category name")
	}
}
