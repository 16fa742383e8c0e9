package assistant

import "pos-assistant/internal/assistant/intent"

// Tenant identifies the restaurant and user a request acts on behalf of.
type Tenant struct {
	RestaurantID   string
	RestaurantName string
	UserID         string
}

// Response is what every handler returns: a user-facing message, the
// resolved intent, whether the proposed action still needs an explicit
// confirmation, and the preview when it does.
type Response struct {
	Message              string        `json:"message"`
	Intent               intent.Intent `json:"intent"`
	RequiresConfirmation bool          `json:"requires_confirmation"`
	Preview              *Preview      `json:"preview,omitempty"`
}

// Preview is an ephemeral change proposal. It is never persisted; the caller
// carries it back to Confirm.
type Preview struct {
	Type    string        `json:"type"`
	Changes []PriceChange `json:"changes"`
}

// PriceChange is one proposed per-item price change.
type PriceChange struct {
	ItemID   string  `json:"itemId"`
	ItemName string  `json:"itemName"`
	OldPrice float64 `json:"oldPrice"`
	NewPrice float64 `json:"newPrice"`
}

const PreviewTypePriceUpdate = "PRICE_UPDATE"

// ParseResult is the payload returned by ProcessMessage.
type ParseResult struct {
	ConversationID string `json:"conversation_id"`
	Response
}

// ChangeRequest is one entry of a confirm call: the item to reprice and the
// already-computed new price to apply verbatim.
type ChangeRequest struct {
	ItemID   string  `json:"itemId"`
	NewPrice float64 `json:"newPrice"`
}

// ConfirmResult reports how many changes were applied.
type ConfirmResult struct {
	UpdatedCount int    `json:"updated_count"`
	Message      string `json:"message"`
}
