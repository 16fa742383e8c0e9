package assistant

import (
	"context"
	"fmt"

	"pos-assistant/internal/assistant/intent"
)

func (s *Service) handleGreeting(_ context.Context, _ Tenant, _ intent.Entities) (*Response, error) {
	return &Response{
		Message: fmt.Sprintf("Good %s! How can I help you today?", dayPart(s.now().Hour())),
		Intent:  intent.Greeting,
	}, nil
}

func (s *Service) handleHelp(_ context.Context, _ Tenant, _ intent.Entities) (*Response, error) {
	msg := `I can help you with:

**Menu Management:**
• "Increase burger prices by ` + s.cfg.CurrencySymbol + `20"
• "Raise starters by 10%"
• "86 the paneer tikka" (mark unavailable)
• "Mark biryani available"
• "Search for paneer on the menu"

**Sales & Analytics:**
• "How's today going?"
• "What are the top sellers?"

**Floor:**
• "Show me the tables"

Just type naturally and I'll do the rest!`
	return &Response{Message: msg, Intent: intent.Help}, nil
}
