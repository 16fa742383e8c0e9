package models

import "time"

// Message roles.
const (
	RoleUser      = "USER"
	RoleAssistant = "ASSISTANT"
)

// Conversation is an assistant chat session scoped to one restaurant and
// user. It is created on the first message when no session id is supplied and
// only ever mutated to mark it ended.
type Conversation struct {
	ID           string     `json:"id"`
	RestaurantID string     `json:"restaurantId"`
	UserID       string     `json:"userId"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	EndedAt      *time.Time `json:"endedAt,omitempty"`
}

// Message is one append-only turn in a conversation. Intent is blank when the
// turn could not be classified; Entities carries whatever the classifier
// extracted for the resolved intent.
type Message struct {
	ID             string                 `json:"id"`
	ConversationID string                 `json:"conversationId"`
	Role           string                 `json:"role"`
	Content        string                 `json:"content"`
	Intent         string                 `json:"intent,omitempty"`
	Confidence     float64                `json:"confidence"`
	Entities       map[string]interface{} `json:"entities,omitempty"`
	ActionTaken    map[string]interface{} `json:"actionTaken,omitempty"`
	ProcessingMS   int                    `json:"processingTime"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// Action is the audit record written when a previewed mutation is confirmed.
type Action struct {
	ID            string                 `json:"id"`
	RestaurantID  string                 `json:"restaurantId"`
	UserID        string                 `json:"userId"`
	ActionType    string                 `json:"actionType"`
	TargetEntity  string                 `json:"targetEntity"`
	TargetID      string                 `json:"targetId"`
	PreviousValue map[string]interface{} `json:"previousValue,omitempty"`
	NewValue      map[string]interface{} `json:"newValue,omitempty"`
	IsConfirmed   bool                   `json:"isConfirmed"`
	IsReverted    bool                   `json:"isReverted"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// Action types.
const (
	ActionTypePriceUpdate = "PRICE_UPDATE"

	TargetEntityMenuItem = "MENU_ITEM"
)
