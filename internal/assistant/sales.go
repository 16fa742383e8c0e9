package assistant

import (
	"context"
	"fmt"
	"strings"

	"pos-assistant/internal/assistant/intent"
)

const topSellersLimit = 5

func (s *Service) handleSalesQuery(ctx context.Context, t Tenant, _ intent.Entities) (*Response, error) {
	summary, err := s.sales.TodaySummary(ctx, t.RestaurantID, s.now())
	if err != nil {
		return nil, err
	}

	cur := s.cfg.CurrencySymbol
	msg := fmt.Sprintf(
		"Here's your %s update:\n\n**Revenue:** %s%.2f\n**Orders:** %d\n**Covers:** %d\n**Avg Ticket:** %s%.2f",
		dayPart(s.now().Hour()), cur, summary.Revenue, summary.Orders, summary.Covers, cur, summary.AvgTicket,
	)
	return &Response{Message: msg, Intent: intent.SalesQueryToday}, nil
}

func (s *Service) handleTopSellers(ctx context.Context, t Tenant, _ intent.Entities) (*Response, error) {
	sellers, err := s.sales.TopSellersToday(ctx, t.RestaurantID, s.now(), topSellersLimit)
	if err != nil {
		return nil, err
	}
	if len(sellers) == 0 {
		return &Response{
			Message: "No sales data available for today yet.",
			Intent:  intent.TopSellers,
		}, nil
	}

	var b strings.Builder
	b.WriteString("Today's top sellers:\n\n")
	for i, ts := range sellers {
		fmt.Fprintf(&b, "%d. **%s** - %d sold (%s%.2f)\n", i+1, ts.Name, ts.Quantity, s.cfg.CurrencySymbol, ts.Revenue)
	}
	return &Response{Message: b.String(), Intent: intent.TopSellers}, nil
}

func dayPart(hour int) string {
	switch {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}
