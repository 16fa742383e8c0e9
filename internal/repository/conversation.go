package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pos-assistant/internal/common/logger"
	"pos-assistant/internal/models"

	"github.com/google/uuid"
)

var ErrConversationNotFound = errors.New("conversation not found")

type ConversationRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewConversationRepository(db *sql.DB, log logger.Logger) *ConversationRepository {
	return &ConversationRepository{
		db:     db,
		logger: log.With(map[string]interface{}{"repository": "conversation"}),
	}
}

// Create starts a new active conversation for the restaurant and user.
func (r *ConversationRepository) Create(ctx context.Context, restaurantID, userID string) (*models.Conversation, error) {
	conv := &models.Conversation{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		UserID:       userID,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ai_conversations (id, restaurant_id, user_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		conv.ID, conv.RestaurantID, conv.UserID, conv.IsActive, conv.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

// Get fetches a conversation by id scoped to the restaurant.
func (r *ConversationRepository) Get(ctx context.Context, conversationID, restaurantID string) (*models.Conversation, error) {
	conv := &models.Conversation{}
	var endedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, `
		SELECT id, restaurant_id, user_id, is_active, created_at, ended_at
		FROM ai_conversations
		WHERE id = $1 AND restaurant_id = $2`,
		conversationID, restaurantID,
	).Scan(&conv.ID, &conv.RestaurantID, &conv.UserID, &conv.IsActive, &conv.CreatedAt, &endedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	if endedAt.Valid {
		conv.EndedAt = &endedAt.Time
	}
	return conv, nil
}

// AppendMessage writes one turn. Messages are append-only; ordering is
// creation order.
func (r *ConversationRepository) AppendMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	entities, err := json.Marshal(msg.Entities)
	if err != nil {
		return fmt.Errorf("marshal entities: %w", err)
	}
	var actionTaken []byte
	if msg.ActionTaken != nil {
		if actionTaken, err = json.Marshal(msg.ActionTaken); err != nil {
			return fmt.Errorf("marshal action taken: %w", err)
		}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO ai_messages (id, conversation_id, role, content, intent, confidence, entities, action_taken, processing_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.Intent,
		msg.Confidence, entities, actionTaken, msg.ProcessingMS, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// End marks a conversation ended. The record itself is never deleted.
func (r *ConversationRepository) End(ctx context.Context, conversationID, restaurantID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE ai_conversations
		SET is_active = false, ended_at = $3
		WHERE id = $1 AND restaurant_id = $2`,
		conversationID, restaurantID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("end conversation: %w", err)
	}
	return nil
}
