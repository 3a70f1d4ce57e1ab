package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"apparel-editpages/db"
	"apparel-editpages/models"
)

// ProductRepository reads catalog products from the storefront database
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a ProductRepository on the shared connection
func NewProductRepository() *ProductRepository {
	return &ProductRepository{db: db.DB}
}

// NewProductRepositoryWithDB creates a ProductRepository on conn
func NewProductRepositoryWithDB(conn *sql.DB) *ProductRepository {
	return &ProductRepository{db: conn}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const productColumns = `
		id,
		name,
		COALESCE(description, ''),
		COALESCE(category, ''),
		price::text,
		original_price::text,
		COALESCE(sale_percentage, 0),
		COALESCE(stock_quantity, 0),
		COALESCE(low_stock_threshold, 0),
		COALESCE(tags, '[]'::jsonb),
		colors,
		sizes,
		COALESCE(images, '[]'::jsonb),
		COALESCE(specifications, '{}'::jsonb),
		COALESCE(features, '{}'::jsonb),
		COALESCE(garment_type, ''),
		size_chart`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// ListProducts retrieves every active product ordered by id
func (r *ProductRepository) ListProducts(ctx context.Context) ([]models.ProductRecord, error) {
	log.Printf("🔍 ListProducts: Fetching products")

	query := `SELECT` + productColumns + `
		FROM products
		WHERE is_active = true
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Error querying products: %v", err)
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.ProductRecord
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			log.Printf("❌ Error scanning product: %v", err)
			continue
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ Error iterating products: %v", err)
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	log.Printf("✓ Successfully fetched %d products", len(products))
	return products, nil
}

// GetProduct retrieves one product by id
func (r *ProductRepository) GetProduct(ctx context.Context, id int) (*models.ProductRecord, error) {
	query := `SELECT` + productColumns + `
		FROM products
		WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d not found: %w", id, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return product, nil
}

func scanProduct(row rowScanner) (*models.ProductRecord, error) {
	var p models.ProductRecord
	var price string
	var originalPrice sql.NullString
	var tags, colors, sizes, images, specs, features, sizeChart []byte

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&price,
		&originalPrice,
		&p.SalePercentage,
		&p.StockQuantity,
		&p.LowStockThreshold,
		&tags,
		&colors,
		&sizes,
		&images,
		&specs,
		&features,
		&p.GarmentType,
		&sizeChart,
	)
	if err != nil {
		return nil, err
	}

	if p.Price, err = models.NewMoney(price); err != nil {
		return nil, fmt.Errorf("product %d: %w", p.ID, err)
	}
	if originalPrice.Valid {
		op, err := models.NewMoney(originalPrice.String)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", p.ID, err)
		}
		p.OriginalPrice = &op
	}

	columns := []struct {
		name string
		data []byte
		dest interface{}
	}{
		{"tags", tags, &p.Tags},
		{"colors", colors, &p.Colors},
		{"sizes", sizes, &p.Sizes},
		{"images", images, &p.Images},
		{"specifications", specs, &p.Specifications},
		{"features", features, &p.Features},
		{"size_chart", sizeChart, &p.SizeChart},
	}
	for _, c := range columns {
		// NULL leaves the field unset so defaults apply
		if len(c.data) == 0 {
			continue
		}
		if err := json.Unmarshal(c.data, c.dest); err != nil {
			return nil, fmt.Errorf("failed to decode %s of product %d: %w", c.name, p.ID, err)
		}
	}
	return &p, nil
}
