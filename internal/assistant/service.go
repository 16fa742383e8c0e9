package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"pos-assistant/internal/assistant/intent"
	"pos-assistant/internal/assistant/nlu"
	"pos-assistant/internal/common/config"
	poserrors "pos-assistant/internal/common/errors"
	"pos-assistant/internal/common/logger"
	"pos-assistant/internal/common/metrics"
	"pos-assistant/internal/models"
	"pos-assistant/internal/repository"
)

// Catalog is the slice of the menu repository the handlers need.
type Catalog interface {
	FindByNameOrCategory(ctx context.Context, restaurantID, target string) ([]models.MenuItem, error)
	UpdateAvailabilityByNames(ctx context.Context, restaurantID string, fragments []string, available bool) ([]string, error)
	GetItem(ctx context.Context, restaurantID, itemID string) (*models.MenuItem, error)
	UpdatePrice(ctx context.Context, restaurantID, itemID string, price float64) error
}

// CategoryLookup supplies category names for classifier context. Backed by
// the redis read-through cache in production.
type CategoryLookup interface {
	CategoryNames(ctx context.Context, restaurantID string) ([]string, error)
}

type Sales interface {
	TodaySummary(ctx context.Context, restaurantID string, now time.Time) (*models.SalesSummary, error)
	TopSellersToday(ctx context.Context, restaurantID string, now time.Time, limit int) ([]models.TopSeller, error)
}

type Conversations interface {
	Create(ctx context.Context, restaurantID, userID string) (*models.Conversation, error)
	Get(ctx context.Context, conversationID, restaurantID string) (*models.Conversation, error)
	AppendMessage(ctx context.Context, msg *models.Message) error
}

type Tables interface {
	ListByRestaurant(ctx context.Context, restaurantID string) ([]models.Table, error)
}

type Actions interface {
	Record(ctx context.Context, action *models.Action) error
}

type handlerFunc func(ctx context.Context, t Tenant, e intent.Entities) (*Response, error)

// Service owns the parse pipeline: pattern match, classifier fallback,
// conversation logging and intent dispatch.
type Service struct {
	catalog       Catalog
	categories    CategoryLookup
	sales         Sales
	tables        Tables
	conversations Conversations
	actions       Actions
	classifier    nlu.Classifier
	cfg           config.AssistantConfig
	logger        logger.Logger
	now           func() time.Time

	routes map[intent.Intent]handlerFunc
}

func NewService(
	catalog Catalog,
	categories CategoryLookup,
	sales Sales,
	tables Tables,
	conversations Conversations,
	actions Actions,
	classifier nlu.Classifier,
	cfg config.AssistantConfig,
	log logger.Logger,
) *Service {
	s := &Service{
		catalog:       catalog,
		categories:    categories,
		sales:         sales,
		tables:        tables,
		conversations: conversations,
		actions:       actions,
		classifier:    classifier,
		cfg:           cfg,
		logger:        log,
		now:           time.Now,
	}
	s.routes = map[intent.Intent]handlerFunc{
		intent.MenuPriceUpdate:        s.handlePriceUpdate,
		intent.MenuAvailabilityToggle: s.handleAvailabilityToggle,
		intent.SalesQueryToday:        s.handleSalesQuery,
		intent.TopSellers:             s.handleTopSellers,
		intent.TableList:              s.handleTableList,
		intent.MenuSearch:             s.handleMenuSearch,
		intent.Greeting:               s.handleGreeting,
		intent.Help:                   s.handleHelp,
	}
	return s
}

// ProcessMessage runs one user message through the pipeline and returns the
// assistant's reply. A missing conversationID starts a new conversation.
func (s *Service) ProcessMessage(ctx context.Context, t Tenant, message, conversationID string) (*ParseResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		metrics.MessagesFailed.WithLabelValues(string(poserrors.ErrCodeEmptyMessage)).Inc()
		return nil, poserrors.New(poserrors.ErrCodeEmptyMessage, "message is required")
	}

	start := s.now()

	conv, err := s.resolveConversation(ctx, t, conversationID)
	if err != nil {
		return nil, err
	}

	classification, source := s.classify(ctx, t, message)

	userMsg := &models.Message{
		ConversationID: conv.ID,
		Role:           models.RoleUser,
		Content:        message,
		Intent:         string(classification.Intent),
		Confidence:     classification.Confidence,
		Entities:       classification.Entities.Map(),
	}
	if err := s.conversations.AppendMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	resp, err := s.dispatch(ctx, t, classification)
	if err != nil {
		metrics.MessagesFailed.WithLabelValues(string(poserrors.CodeOf(err))).Inc()
		return nil, err
	}

	elapsed := s.now().Sub(start)
	assistantMsg := &models.Message{
		ConversationID: conv.ID,
		Role:           models.RoleAssistant,
		Content:        resp.Message,
		Intent:         string(resp.Intent),
		ProcessingMS:   int(elapsed.Milliseconds()),
	}
	if resp.Preview != nil {
		assistantMsg.ActionTaken = map[string]interface{}{
			"type":    resp.Preview.Type,
			"pending": true,
		}
	}
	if err := s.conversations.AppendMessage(ctx, assistantMsg); err != nil {
		return nil, err
	}

	metrics.MessagesProcessed.WithLabelValues(string(classification.Intent), source).Inc()
	metrics.MessageDuration.WithLabelValues(string(classification.Intent)).Observe(elapsed.Seconds())

	return &ParseResult{ConversationID: conv.ID, Response: *resp}, nil
}

func (s *Service) resolveConversation(ctx context.Context, t Tenant, conversationID string) (*models.Conversation, error) {
	if conversationID != "" {
		conv, err := s.conversations.Get(ctx, conversationID, t.RestaurantID)
		if err == nil {
			return conv, nil
		}
		if !errors.Is(err, repository.ErrConversationNotFound) {
			return nil, err
		}
		s.logger.Warn("conversation not found, starting a new one", map[string]interface{}{
			"conversation_id": conversationID,
			"restaurant_id":   t.RestaurantID,
		})
	}
	return s.conversations.Create(ctx, t.RestaurantID, t.UserID)
}

func (s *Service) classify(ctx context.Context, t Tenant, message string) (*intent.Classification, string) {
	if c, ok := intent.MatchPattern(message); ok {
		return c, "pattern"
	}

	categories, err := s.categories.CategoryNames(ctx, t.RestaurantID)
	if err != nil {
		s.logger.Warn("category lookup failed, classifying without context", map[string]interface{}{
			"restaurant_id": t.RestaurantID,
			"error":         err.Error(),
		})
		categories = nil
	}

	c := s.classifier.Classify(ctx, message, nlu.Context{
		RestaurantName: t.RestaurantName,
		Categories:     categories,
	})
	outcome := "classified"
	if c.Intent == intent.Unknown {
		outcome = "unknown"
	}
	metrics.ClassifierFallbacks.WithLabelValues(outcome).Inc()
	return c, "fallback"
}

func (s *Service) dispatch(ctx context.Context, t Tenant, c *intent.Classification) (*Response, error) {
	if h, ok := s.routes[c.Intent]; ok {
		return h(ctx, t, c.Entities)
	}
	return s.handleUnknown(c), nil
}

func (s *Service) handleUnknown(c *intent.Classification) *Response {
	msg := "I'm not sure how to help with that. Type 'help' to see what I can do."
	if c.NeedsClarification && c.ClarificationQuestion != "" {
		msg = c.ClarificationQuestion
	}
	return &Response{Message: msg, Intent: intent.Unknown}
}
