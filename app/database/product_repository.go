package database

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// ProductRepositoryImpl handles database operations for catalog products
type ProductRepositoryImpl struct {
	db *DB
}

var _ ProductRepository = (*ProductRepositoryImpl)(nil)

func NewProductRepository(db *DB) *ProductRepositoryImpl {
	return &ProductRepositoryImpl{db: db}
}

// GetExistingSKUs returns the subset of the given SKUs already present in the store.
func (r *ProductRepositoryImpl) GetExistingSKUs(skus []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(skus))
	if len(skus) == 0 {
		return existing, nil
	}

	rows, err := r.db.Query(`
		SELECT sku FROM products WHERE sku = ANY($1)
	`, pq.Array(skus))
	if err != nil {
		return nil, fmt.Errorf("failed to select existing SKUs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sku string
		if err := rows.Scan(&sku); err != nil {
			return nil, fmt.Errorf("failed to scan SKU row: %w", err)
		}
		existing[sku] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating SKU rows: %w", err)
	}

	return existing, nil
}

// UpsertProducts writes one chunk of full-import records, keyed on the sku
// unique constraint. Every mapped field is replaced on conflict.
func (r *ProductRepositoryImpl) UpsertProducts(products []ProductUpsert) error {
	if len(products) == 0 {
		return nil
	}

	const cols = 8
	placeholders := make([]string, 0, len(products))
	args := make([]interface{}, 0, len(products)*cols)

	for i, p := range products {
		base := i * cols
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		args = append(args, p.SKU, p.Name, p.Description, p.Price, p.Available,
			p.ImageURL, pq.Array(p.Gallery), p.CategoryID)
	}

	query := fmt.Sprintf(`
		INSERT INTO products (sku, name, description, price, available, image_url, gallery, category_id)
		VALUES %s
		ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			available = EXCLUDED.available,
			image_url = EXCLUDED.image_url,
			gallery = EXCLUDED.gallery,
			category_id = EXCLUDED.category_id,
			updated_at = NOW()
	`, strings.Join(placeholders, ", "))

	if _, err := r.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to upsert products: %w", err)
	}

	return nil
}

// UpdateAvailability writes one chunk of availability-only updates and
// returns the number of rows that actually changed. A plain UPDATE joined
// against the unnested SKU list cannot create rows, so unknown SKUs are
// structurally impossible to insert here; rows already at the target value
// are left untouched, so a repeated run reports zero changes.
func (r *ProductRepositoryImpl) UpdateAvailability(updates []StockUpdate) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	skus := make([]string, len(updates))
	available := make([]bool, len(updates))
	for i, u := range updates {
		skus[i] = u.SKU
		available[i] = u.Available
	}

	res, err := r.db.Exec(`
		UPDATE products p
		SET available = v.available, updated_at = NOW()
		FROM (SELECT unnest($1::text[]) AS sku, unnest($2::boolean[]) AS available) v
		WHERE p.sku = v.sku AND p.available IS DISTINCT FROM v.available
	`, pq.Array(skus), pq.Array(available))

	if err != nil {
		return 0, fmt.Errorf("failed to update availability: %w", err)
	}

	changed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count changed rows: %w", err)
	}

	return changed, nil
}

func (r *ProductRepositoryImpl) GetProductCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get product count: %w", err)
	}
	return count, nil
}
