package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/quillshop/apiserver/types"
)

// InventoryRepository handles persistence for inventory items.
type InventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Get(ctx context.Context, id int) (types.InventoryItem, error) {
	const query = `
		SELECT id, name, description, quantity, price, category
		FROM inventory
		WHERE id = $1`
	var item types.InventoryItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Quantity,
		&item.Price,
		&item.Category,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.InventoryItem{}, ErrNotFound
		}
		return types.InventoryItem{}, err
	}
	return item, nil
}

func (r *InventoryRepository) Create(ctx context.Context, item types.InventoryItem) (types.InventoryItem, error) {
	const query = `
		INSERT INTO inventory (name, description, quantity, price, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		item.Name,
		item.Description,
		item.Quantity,
		item.Price,
		item.Category,
	).Scan(&item.ID); err != nil {
		return types.InventoryItem{}, translateError(err)
	}
	return item, nil
}

func (r *InventoryRepository) Update(ctx context.Context, item types.InventoryItem) (types.InventoryItem, error) {
	const query = `
		UPDATE inventory
		SET name = $1,
			description = $2,
			quantity = $3,
			price = $4,
			category = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(
		ctx,
		query,
		item.Name,
		item.Description,
		item.Quantity,
		item.Price,
		item.Category,
		item.ID,
	)
	if err != nil {
		return types.InventoryItem{}, translateError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.InventoryItem{}, err
	}
	if affected == 0 {
		return types.InventoryItem{}, ErrNotFound
	}
	return item, nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM inventory WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *InventoryRepository) Categories(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT category FROM inventory ORDER BY category`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// Search matches text case-insensitively against item names and
// descriptions, optionally restricted to one category.
func (r *InventoryRepository) Search(ctx context.Context, text, category string, offset, limit int) ([]types.InventoryItem, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 10
	}

	pattern := "%" + text + "%"

	var total int
	var rows *sql.Rows
	var err error
	if category != "" {
		const countQuery = `
			SELECT COUNT(1) FROM inventory
			WHERE category = $1 AND (name ILIKE $2 OR description ILIKE $2)`
		if err := r.db.QueryRowContext(ctx, countQuery, category, pattern).Scan(&total); err != nil {
			return nil, 0, err
		}

		const searchQuery = `
			SELECT id, name, description, quantity, price, category
			FROM inventory
			WHERE category = $1 AND (name ILIKE $2 OR description ILIKE $2)
			ORDER BY id
			OFFSET $3 LIMIT $4`
		rows, err = r.db.QueryContext(ctx, searchQuery, category, pattern, offset, limit)
	} else {
		const countQuery = `
			SELECT COUNT(1) FROM inventory
			WHERE name ILIKE $1 OR description ILIKE $1`
		if err := r.db.QueryRowContext(ctx, countQuery, pattern).Scan(&total); err != nil {
			return nil, 0, err
		}

		const searchQuery = `
			SELECT id, name, description, quantity, price, category
			FROM inventory
			WHERE name ILIKE $1 OR description ILIKE $1
			ORDER BY id
			OFFSET $2 LIMIT $3`
		rows, err = r.db.QueryContext(ctx, searchQuery, pattern, offset, limit)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]types.InventoryItem, 0, limit)
	for rows.Next() {
		var item types.InventoryItem
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Quantity,
			&item.Price,
			&item.Category,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
