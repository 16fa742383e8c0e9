package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pos-assistant/internal/common/logger"
	"pos-assistant/internal/models"
)

type TableRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewTableRepository(db *sql.DB, log logger.Logger) *TableRepository {
	return &TableRepository{
		db:     db,
		logger: log.With(map[string]interface{}{"repository": "table"}),
	}
}

// ListByRestaurant returns the restaurant's dining tables in number order.
func (r *TableRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]models.Table, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, number, capacity, status
		FROM tables
		WHERE restaurant_id = $1
		ORDER BY number`,
		restaurantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []models.Table
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.Number, &t.Capacity, &t.Status); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}
