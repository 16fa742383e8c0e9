package assistant

import (
	"context"
	"fmt"
	"strings"

	"pos-assistant/internal/assistant/intent"
)

func (s *Service) handleAvailabilityToggle(ctx context.Context, t Tenant, e intent.Entities) (*Response, error) {
	av := e.Availability
	if av == nil || len(av.Items) == 0 {
		return &Response{
			Message: "Which items would you like to mark available or unavailable?",
			Intent:  intent.MenuAvailabilityToggle,
		}, nil
	}

	updated, err := s.catalog.UpdateAvailabilityByNames(ctx, t.RestaurantID, av.Items, av.Available)
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return &Response{
			Message: fmt.Sprintf("I couldn't find any menu items matching '%s'.", strings.Join(av.Items, ", ")),
			Intent:  intent.MenuAvailabilityToggle,
		}, nil
	}

	state := "86'd (unavailable)"
	if av.Available {
		state = "available"
	}
	return &Response{
		Message: fmt.Sprintf("Done! %d item(s) now %s: %s", len(updated), state, strings.Join(updated, ", ")),
		Intent:  intent.MenuAvailabilityToggle,
	}, nil
}
