package feed

import (
	"fmt"
	"strings"

	"github.com/olmarket/feedsync/app/database"
)

// CategoryResolver maps supplier category names to canonical category ids,
// creating records lazily via slug-keyed upsert. The name→id memo lives for
// one run only; the store upsert remains the source of truth.
type CategoryResolver struct {
	repo   database.CategoryRepository
	byName map[string]string
}

func NewCategoryResolver(repo database.CategoryRepository) *CategoryResolver {
	return &CategoryResolver{
		repo:   repo,
		byName: make(map[string]string),
	}
}

func (cr *CategoryResolver) Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("empty category name")
	}

	if id, ok := cr.byName[name]; ok {
		return id, nil
	}

	slug := Slugify(name)
	if slug == "" {
		return "", fmt.Errorf("category name %q produces an empty slug", name)
	}

	id, err := cr.repo.UpsertCategory(name, slug)
	if err != nil {
		return "", fmt.Errorf("failed to resolve category %q: %w", name, err)
	}

	cr.byName[name] = id

	return id, nil
}
