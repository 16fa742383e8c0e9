// Package repository implements the assistant's storage collaborators over
// PostgreSQL. The schema is owned by the wider POS backend; these queries
// only read and mutate the columns the assistant needs.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pos-assistant/internal/common/logger"
	"pos-assistant/internal/models"
)

var ErrItemNotFound = errors.New("menu item not found")

type MenuRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewMenuRepository(db *sql.DB, log logger.Logger) *MenuRepository {
	return &MenuRepository{
		db:     db,
		logger: log.With(map[string]interface{}{"repository": "menu"}),
	}
}

// FindByNameOrCategory returns the restaurant's items whose name or category
// name contains the target phrase, case-insensitively.
func (r *MenuRepository) FindByNameOrCategory(ctx context.Context, restaurantID, target string) ([]models.MenuItem, error) {
	query := `
		SELECT mi.id, mi.category_id, mi.name, c.name, mi.base_price, mi.is_available
		FROM menu_items mi
		JOIN categories c ON c.id = mi.category_id
		WHERE mi.restaurant_id = $1
		  AND (mi.name ILIKE '%' || $2 || '%' OR c.name ILIKE '%' || $2 || '%')
		ORDER BY mi.name`

	rows, err := r.db.QueryContext(ctx, query, restaurantID, target)
	if err != nil {
		return nil, fmt.Errorf("find items by name or category: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item := models.MenuItem{RestaurantID: restaurantID}
		if err := rows.Scan(&item.ID, &item.CategoryID, &item.Name, &item.CategoryName, &item.BasePrice, &item.IsAvailable); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateAvailabilityByNames flips availability for every item whose name
// contains any of the fragments, in a single statement, and returns the
// matched names. Re-running with the same arguments is a no-op that still
// reports the same matches.
func (r *MenuRepository) UpdateAvailabilityByNames(ctx context.Context, restaurantID string, fragments []string, available bool) ([]string, error) {
	if len(fragments) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(fragments))
	args := []interface{}{restaurantID, available}
	for _, fragment := range fragments {
		args = append(args, fragment)
		conditions = append(conditions, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", len(args)))
	}

	query := fmt.Sprintf(`
		UPDATE menu_items
		SET is_available = $2
		WHERE restaurant_id = $1 AND (%s)
		RETURNING name`, strings.Join(conditions, " OR "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update availability: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan updated name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// GetItem fetches one item by id scoped to the restaurant.
func (r *MenuRepository) GetItem(ctx context.Context, restaurantID, itemID string) (*models.MenuItem, error) {
	query := `
		SELECT id, category_id, name, base_price, is_available
		FROM menu_items
		WHERE id = $1 AND restaurant_id = $2`

	item := models.MenuItem{RestaurantID: restaurantID}
	err := r.db.QueryRowContext(ctx, query, itemID, restaurantID).Scan(
		&item.ID, &item.CategoryID, &item.Name, &item.BasePrice, &item.IsAvailable,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &item, nil
}

// UpdatePrice sets the item's base price verbatim.
func (r *MenuRepository) UpdatePrice(ctx context.Context, restaurantID, itemID string, price float64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE menu_items SET base_price = $3 WHERE id = $1 AND restaurant_id = $2`,
		itemID, restaurantID, price,
	)
	if err != nil {
		return fmt.Errorf("update price: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update price rows affected: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// CategoryNames lists the restaurant's active category names.
func (r *MenuRepository) CategoryNames(ctx context.Context, restaurantID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM categories WHERE restaurant_id = $1 AND is_active = true ORDER BY name`,
		restaurantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list category names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
