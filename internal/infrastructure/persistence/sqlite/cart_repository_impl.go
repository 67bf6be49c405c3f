package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/am24/brickshop/internal/domain/model/cart"
	"github.com/am24/brickshop/internal/domain/repository"
)

// CartRepositoryImpl implements repository.CartRepository with SQLite
type CartRepositoryImpl struct {
	db *sql.DB
}

// NewCartRepository creates a new SQLite-based cart repository
func NewCartRepository(db *sql.DB) repository.CartRepository {
	return &CartRepositoryImpl{db: db}
}

// FindAll retrieves every cart row
func (r *CartRepositoryImpl) FindAll(ctx context.Context) ([]cart.Row, error) {
	query := `SELECT id, product_id, quantity FROM cart_items ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query cart rows failed: %w", err)
	}
	defer rows.Close()

	var result []cart.Row
	for rows.Next() {
		var row cart.Row
		if err := rows.Scan(&row.ID, &row.ProductID, &row.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart row failed: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart rows failed: %w", err)
	}
	return result, nil
}

// FindByProductID retrieves the row for a product, (nil, nil) when absent
func (r *CartRepositoryImpl) FindByProductID(ctx context.Context, productID int) (*cart.Row, error) {
	query := `SELECT id, product_id, quantity FROM cart_items WHERE product_id = ? LIMIT 1`

	var row cart.Row
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&row.ID, &row.ProductID, &row.Quantity)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan cart row failed: %w", err)
	}
	return &row, nil
}

// Insert adds a new cart row and returns the generated row id
func (r *CartRepositoryImpl) Insert(ctx context.Context, row cart.Row) (int64, error) {
	query := `INSERT INTO cart_items (product_id, quantity) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, row.ProductID, row.Quantity)
	if err != nil {
		return 0, fmt.Errorf("insert cart row failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id failed: %w", err)
	}
	return id, nil
}

// UpdateQuantity sets the quantity of an existing row
func (r *CartRepositoryImpl) UpdateQuantity(ctx context.Context, rowID int64, quantity int) error {
	query := `UPDATE cart_items SET quantity = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, quantity, rowID); err != nil {
		return fmt.Errorf("update cart quantity failed: %w", err)
	}
	return nil
}

// DeleteByID removes a row by its row id
func (r *CartRepositoryImpl) DeleteByID(ctx context.Context, rowID int64) error {
	query := `DELETE FROM cart_items WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, rowID); err != nil {
		return fmt.Errorf("delete cart row failed: %w", err)
	}
	return nil
}

// Clear removes every cart row
func (r *CartRepositoryImpl) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
		return fmt.Errorf("clear cart failed: %w", err)
	}
	return nil
}
