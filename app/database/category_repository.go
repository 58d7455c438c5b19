package database

import (
	"fmt"
)

// CategoryRepositoryImpl handles database operations for categories
type CategoryRepositoryImpl struct {
	db *DB
}

var _ CategoryRepository = (*CategoryRepositoryImpl)(nil)

func NewCategoryRepository(db *DB) *CategoryRepositoryImpl {
	return &CategoryRepositoryImpl{db: db}
}

// UpsertCategory inserts or resolves a category keyed by slug and returns its id.
// Slug collisions resolve to the existing record.
func (r *CategoryRepositoryImpl) UpsertCategory(name, slug string) (string, error) {
	var id string
	err := r.db.QueryRow(`
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		ON CONFLICT (slug) DO UPDATE SET
			updated_at = NOW()
		RETURNING id
	`, name, slug).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to upsert category: %w", err)
	}

	return id, nil
}

func (r *CategoryRepositoryImpl) GetCategoryCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get category count: %w", err)
	}
	return count, nil
}
