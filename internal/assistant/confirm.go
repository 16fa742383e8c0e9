package assistant

import (
	"context"
	"errors"
	"fmt"

	poserrors "pos-assistant/internal/common/errors"
	"pos-assistant/internal/common/metrics"
	"pos-assistant/internal/models"
	"pos-assistant/internal/repository"
)

// ConfirmChanges applies a previously previewed set of price changes.
// Items deleted since the preview are skipped, not failed: the remaining
// changes still go through and the result reports how many landed.
func (s *Service) ConfirmChanges(ctx context.Context, t Tenant, changes []ChangeRequest) (*ConfirmResult, error) {
	if len(changes) == 0 {
		return nil, poserrors.New(poserrors.ErrCodeNoChanges, "no changes provided")
	}

	updated := 0
	for _, change := range changes {
		item, err := s.catalog.GetItem(ctx, t.RestaurantID, change.ItemID)
		if errors.Is(err, repository.ErrItemNotFound) {
			s.logger.Warn("skipping price change for missing item", map[string]interface{}{
				"item_id":       change.ItemID,
				"restaurant_id": t.RestaurantID,
			})
			continue
		}
		if err != nil {
			return nil, err
		}

		if err := s.catalog.UpdatePrice(ctx, t.RestaurantID, change.ItemID, change.NewPrice); err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				continue
			}
			return nil, err
		}

		if err := s.actions.Record(ctx, &models.Action{
			RestaurantID:  t.RestaurantID,
			UserID:        t.UserID,
			ActionType:    models.ActionTypePriceUpdate,
			TargetEntity:  models.TargetEntityMenuItem,
			TargetID:      item.ID,
			PreviousValue: map[string]interface{}{"base_price": item.BasePrice},
			NewValue:      map[string]interface{}{"base_price": change.NewPrice},
			IsConfirmed:   true,
		}); err != nil {
			s.logger.Error("failed to record price-change audit entry", map[string]interface{}{
				"item_id": item.ID,
				"error":   err.Error(),
			})
		}

		updated++
		metrics.PriceChangesApplied.Inc()
	}

	return &ConfirmResult{
		UpdatedCount: updated,
		Message:      fmt.Sprintf("Successfully updated %d item(s).", updated),
	}, nil
}

// Cancel discards a pending preview. Previews are never persisted, so there
// is nothing to undo; the acknowledgement keeps the conversation coherent.
func (s *Service) Cancel(ctx context.Context, t Tenant) *ConfirmResult {
	s.logger.Debug("pending action cancelled", map[string]interface{}{
		"restaurant_id": t.RestaurantID,
		"user_id":       t.UserID,
	})
	return &ConfirmResult{Message: "Action cancelled."}
}
