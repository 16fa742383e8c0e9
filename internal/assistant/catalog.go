package assistant

import (
	"context"
	"fmt"
	"strings"

	"pos-assistant/internal/assistant/intent"
)

const menuSearchLimit = 10

func (s *Service) handleTableList(ctx context.Context, t Tenant, _ intent.Entities) (*Response, error) {
	tables, err := s.tables.ListByRestaurant(ctx, t.RestaurantID)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return &Response{
			Message: "No tables are configured yet.",
			Intent:  intent.TableList,
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d table(s):\n\n", len(tables))
	for _, tbl := range tables {
		fmt.Fprintf(&b, "• Table %s - seats %d (%s)\n", tbl.Number, tbl.Capacity, strings.ToLower(tbl.Status))
	}
	return &Response{Message: b.String(), Intent: intent.TableList}, nil
}

func (s *Service) handleMenuSearch(ctx context.Context, t Tenant, e intent.Entities) (*Response, error) {
	ms := e.MenuSearch
	if ms == nil || strings.TrimSpace(ms.Query) == "" {
		return &Response{
			Message: "What should I look for on the menu?",
			Intent:  intent.MenuSearch,
		}, nil
	}

	items, err := s.catalog.FindByNameOrCategory(ctx, t.RestaurantID, ms.Query)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &Response{
			Message: fmt.Sprintf("I couldn't find any menu items matching '%s'.", ms.Query),
			Intent:  intent.MenuSearch,
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d item(s) matching '%s':\n\n", len(items), ms.Query)
	for i, item := range items {
		if i == menuSearchLimit {
			fmt.Fprintf(&b, "...and %d more\n", len(items)-menuSearchLimit)
			break
		}
		fmt.Fprintf(&b, "• %s (%s) - %s%.2f", item.Name, item.CategoryName, s.cfg.CurrencySymbol, item.BasePrice)
		if !item.IsAvailable {
			b.WriteString(" [86'd]")
		}
		b.WriteString("\n")
	}
	return &Response{Message: b.String(), Intent: intent.MenuSearch}, nil
}
