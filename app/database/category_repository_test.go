package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCategoryRepository_UpsertCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewCategoryRepository(&DB{db})

	rows := sqlmock.NewRows([]string{"id"}).AddRow("11111111-2222-3333-4444-555555555555")
	mock.ExpectQuery(`(?s)INSERT INTO categories.+ON CONFLICT \(slug\) DO UPDATE`).
		WithArgs("Взуття", "взуття").
		WillReturnRows(rows)

	id, err := repo.UpsertCategory("Взуття", "взуття")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("Expected category id from RETURNING, got %q", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}
