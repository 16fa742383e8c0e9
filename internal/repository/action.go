package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"pos-assistant/internal/common/logger"
	"pos-assistant/internal/models"

	"github.com/google/uuid"
)

type ActionRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewActionRepository(db *sql.DB, log logger.Logger) *ActionRepository {
	return &ActionRepository{
		db:     db,
		logger: log.With(map[string]interface{}{"repository": "action"}),
	}
}

// Record writes one audit action row for a confirmed mutation.
func (r *ActionRepository) Record(ctx context.Context, action *models.Action) error {
	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now()
	}

	previous, err := json.Marshal(action.PreviousValue)
	if err != nil {
		return fmt.Errorf("marshal previous value: %w", err)
	}
	next, err := json.Marshal(action.NewValue)
	if err != nil {
		return fmt.Errorf("marshal new value: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO ai_actions (id, restaurant_id, user_id, action_type, target_entity, target_id, previous_value, new_value, is_confirmed, is_reverted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		action.ID, action.RestaurantID, action.UserID, action.ActionType, action.TargetEntity,
		action.TargetID, previous, next, action.IsConfirmed, action.IsReverted, action.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record action: %w", err)
	}
	return nil
}
