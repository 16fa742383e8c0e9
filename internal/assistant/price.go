package assistant

import (
	"context"
	"fmt"
	"strings"

	"pos-assistant/internal/assistant/intent"
)

// handlePriceUpdate computes a price-change preview. It never writes: the
// actual update happens only when the caller confirms the preview.
func (s *Service) handlePriceUpdate(ctx context.Context, t Tenant, e intent.Entities) (*Response, error) {
	pu := e.PriceUpdate
	if pu == nil || strings.TrimSpace(pu.Target) == "" {
		return &Response{
			Message: "Which items would you like to reprice? For example: \"increase starters by 10%\".",
			Intent:  intent.MenuPriceUpdate,
		}, nil
	}

	items, err := s.catalog.FindByNameOrCategory(ctx, t.RestaurantID, pu.Target)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &Response{
			Message: fmt.Sprintf("I couldn't find any menu items matching '%s'.", pu.Target),
			Intent:  intent.MenuPriceUpdate,
		}, nil
	}

	changes := make([]PriceChange, 0, len(items))
	for _, item := range items {
		changes = append(changes, PriceChange{
			ItemID:   item.ID,
			ItemName: item.Name,
			OldPrice: item.BasePrice,
			NewPrice: applyModifier(item.BasePrice, pu),
		})
	}

	total := len(changes)
	limit := s.cfg.PreviewLimit
	shown := changes
	if total > limit {
		shown = changes[:limit]
		if s.cfg.PreviewCapHard {
			changes = changes[:limit]
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d item(s) matching '%s'. Here's the preview:\n\n", total, pu.Target)
	for _, c := range shown {
		fmt.Fprintf(&b, "• %s: %s%.2f → %s%.2f\n", c.ItemName, s.cfg.CurrencySymbol, c.OldPrice, s.cfg.CurrencySymbol, c.NewPrice)
	}
	if total > limit {
		if s.cfg.PreviewCapHard {
			fmt.Fprintf(&b, "...and %d more not included; narrow the request to reprice them.\n", total-limit)
		} else {
			fmt.Fprintf(&b, "...and %d more\n", total-limit)
		}
	}
	b.WriteString("\nConfirm to apply these changes.")

	return &Response{
		Message:              b.String(),
		Intent:               intent.MenuPriceUpdate,
		RequiresConfirmation: true,
		Preview:              &Preview{Type: PreviewTypePriceUpdate, Changes: changes},
	}, nil
}

func applyModifier(price float64, pu *intent.PriceUpdateEntities) float64 {
	delta := pu.Value
	if pu.IsPercentage {
		delta = price * pu.Value / 100
	}
	next := price + delta
	if pu.Modifier == intent.ModifierDecrement {
		next = price - delta
	}
	if next < 0 {
		next = 0
	}
	return next
}
