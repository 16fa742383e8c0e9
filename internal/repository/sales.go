package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pos-assistant/internal/common/logger"
	"pos-assistant/internal/models"
)

type SalesRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewSalesRepository(db *sql.DB, log logger.Logger) *SalesRepository {
	return &SalesRepository{
		db:     db,
		logger: log.With(map[string]interface{}{"repository": "sales"}),
	}
}

// dayBounds returns [midnight, next midnight) around now in now's location,
// which is the business-day boundary for "today" queries.
func dayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.Add(24 * time.Hour)
}

// TodaySummary aggregates paid invoice revenue and completed/served order
// counts and covers for the calendar day containing now. AvgTicket is zero
// when there were no orders.
func (r *SalesRepository) TodaySummary(ctx context.Context, restaurantID string, now time.Time) (*models.SalesSummary, error) {
	start, end := dayBounds(now)
	summary := &models.SalesSummary{}

	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM invoices
		WHERE restaurant_id = $1 AND status = 'PAID'
		  AND generated_at >= $2 AND generated_at < $3`,
		restaurantID, start, end,
	).Scan(&summary.Revenue)
	if err != nil {
		return nil, fmt.Errorf("sum paid invoices: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(covers), 0)
		FROM orders
		WHERE restaurant_id = $1 AND status IN ('COMPLETED', 'SERVED')
		  AND created_at >= $2 AND created_at < $3`,
		restaurantID, start, end,
	).Scan(&summary.Orders, &summary.Covers)
	if err != nil {
		return nil, fmt.Errorf("count completed orders: %w", err)
	}

	if summary.Orders > 0 {
		summary.AvgTicket = summary.Revenue / float64(summary.Orders)
	}
	return summary, nil
}

// TopSellersToday returns today's completed/served order lines grouped by
// item name, highest quantity first.
func (r *SalesRepository) TopSellersToday(ctx context.Context, restaurantID string, now time.Time, limit int) ([]models.TopSeller, error) {
	start, end := dayBounds(now)

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.name, SUM(oi.quantity), SUM(oi.total_price)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.restaurant_id = $1 AND o.status IN ('COMPLETED', 'SERVED')
		  AND o.created_at >= $2 AND o.created_at < $3
		GROUP BY oi.name
		ORDER BY SUM(oi.quantity) DESC
		LIMIT $4`,
		restaurantID, start, end, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query top sellers: %w", err)
	}
	defer rows.Close()

	var sellers []models.TopSeller
	for rows.Next() {
		var s models.TopSeller
		if err := rows.Scan(&s.Name, &s.Quantity, &s.Revenue); err != nil {
			return nil, fmt.Errorf("scan top seller: %w", err)
		}
		sellers = append(sellers, s)
	}
	return sellers, rows.Err()
}
