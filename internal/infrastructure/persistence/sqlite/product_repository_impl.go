package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/am24/brickshop/internal/domain/model/catalog"
	"github.com/am24/brickshop/internal/domain/repository"
)

// ProductRepositoryImpl implements repository.ProductRepository with SQLite
type ProductRepositoryImpl struct {
	db *sql.DB
}

// NewProductRepository creates a new SQLite-based product repository
func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

const productColumns = `id, name, category, number, details, minifigures,
	age, year, size, condition, price, created_at, image, description,
	type, keywords, is_available`

const upsertProduct = `
	INSERT OR REPLACE INTO products (id, name, category, number, details,
		minifigures, age, year, size, condition, price, created_at, image,
		description, type, keywords, is_available)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Save upserts a single product by id
func (r *ProductRepositoryImpl) Save(ctx context.Context, p catalog.Product) error {
	if _, err := r.db.ExecContext(ctx, upsertProduct, productArgs(p)...); err != nil {
		return fmt.Errorf("save product failed: %w", err)
	}
	return nil
}

// SaveAll upserts a batch of products in one transaction
func (r *ProductRepositoryImpl) SaveAll(ctx context.Context, ps []catalog.Product) error {
	if len(ps) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction failed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertProduct)
	if err != nil {
		return fmt.Errorf("prepare upsert failed: %w", err)
	}
	defer stmt.Close()

	for _, p := range ps {
		if _, err := stmt.ExecContext(ctx, productArgs(p)...); err != nil {
			return fmt.Errorf("save product %d failed: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction failed: %w", err)
	}
	return nil
}

// FindByID retrieves a product by id, (nil, nil) when absent
func (r *ProductRepositoryImpl) FindByID(ctx context.Context, id int) (*catalog.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan product failed: %w", err)
	}
	return p, nil
}

// FindByIDs retrieves all products in the given id-set
func (r *ProductRepositoryImpl) FindByIDs(ctx context.Context, ids []int) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	query := `SELECT ` + productColumns + ` FROM products WHERE id IN (` + placeholders + `)`

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products by ids failed: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// FindByType retrieves all products of one catalog type
func (r *ProductRepositoryImpl) FindByType(ctx context.Context, productType string) ([]catalog.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE type = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, productType)
	if err != nil {
		return nil, fmt.Errorf("query products by type failed: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// FindAll retrieves every cached product
func (r *ProductRepositoryImpl) FindAll(ctx context.Context) ([]catalog.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all products failed: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Clear removes every cached product
func (r *ProductRepositoryImpl) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products failed: %w", err)
	}
	return nil
}

// Helper methods

func productArgs(p catalog.Product) []interface{} {
	return []interface{}{
		p.ID, p.Name, nullString(p.Category), nullString(p.Number),
		p.Details, p.Minifigures, nullString(p.Age), nullString(p.Year),
		nullString(p.Size), nullString(p.Condition), p.Price,
		nullString(p.CreatedAt), nullString(p.Image), nullString(p.Description),
		p.Type, nullString(p.Keywords), p.IsAvailable,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*catalog.Product, error) {
	var p catalog.Product
	var category, number, age, year, size, condition sql.NullString
	var createdAt, image, description, keywords sql.NullString

	err := row.Scan(
		&p.ID, &p.Name, &category, &number, &p.Details, &p.Minifigures,
		&age, &year, &size, &condition, &p.Price, &createdAt, &image,
		&description, &p.Type, &keywords, &p.IsAvailable,
	)
	if err != nil {
		return nil, err
	}

	p.Category = category.String
	p.Number = number.String
	p.Age = age.String
	p.Year = year.String
	p.Size = size.String
	p.Condition = condition.String
	p.CreatedAt = createdAt.String
	p.Image = image.String
	p.Description = description.String
	p.Keywords = keywords.String
	return &p, nil
}

func scanProducts(rows *sql.Rows) ([]catalog.Product, error) {
	var products []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product failed: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products failed: %w", err)
	}
	return products, nil
}
