package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	poserrors "pos-assistant/internal/common/errors"
	"pos-assistant/internal/models"
)

func TestConfirmChanges_AppliesAll(t *testing.T) {
	f := newFixture(t)
	f.catalog.items = []models.MenuItem{
		{ID: "m1", Name: "Veg Burger", BasePrice: 150},
		{ID: "m2", Name: "Chicken Burger", BasePrice: 200},
	}

	result, err := f.svc.ConfirmChanges(context.Background(), tenant(), []ChangeRequest{
		{ItemID: "m1", NewPrice: 180},
		{ItemID: "m2", NewPrice: 240},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.UpdatedCount)
	assert.Equal(t, "Successfully updated 2 item(s).", result.Message)
	require.Len(t, f.catalog.priceUpdates, 2)
	assert.Equal(t, 180.0, f.catalog.priceUpdates[0].NewPrice)

	require.Len(t, f.actions.recorded, 2)
	audit := f.actions.recorded[0]
	assert.Equal(t, models.ActionTypePriceUpdate, audit.ActionType)
	assert.Equal(t, "m1", audit.TargetID)
	assert.Equal(t, 150.0, audit.PreviousValue["base_price"])
	assert.Equal(t, 180.0, audit.NewValue["base_price"])
	assert.True(t, audit.IsConfirmed)
}

func TestConfirmChanges_SkipsMissingItems(t *testing.T) {
	f := newFixture(t)
	f.catalog.items = []models.MenuItem{{ID: "m1", Name: "Veg Burger", BasePrice: 150}}

	result, err := f.svc.ConfirmChanges(context.Background(), tenant(), []ChangeRequest{
		{ItemID: "m1", NewPrice: 180},
		{ItemID: "deleted", NewPrice: 99},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.UpdatedCount)
	assert.Len(t, f.catalog.priceUpdates, 1)
	assert.Len(t, f.actions.recorded, 1)
}

func TestConfirmChanges_Empty(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ConfirmChanges(context.Background(), tenant(), nil)

	require.Error(t, err)
	assert.Equal(t, poserrors.ErrCodeNoChanges, poserrors.CodeOf(err))
}

func TestCancel_NoSideEffects(t *testing.T) {
	f := newFixture(t)

	result := f.svc.Cancel(context.Background(), tenant())

	assert.Equal(t, "Action cancelled.", result.Message)
	assert.Zero(t, result.UpdatedCount)
	assert.Empty(t, f.catalog.priceUpdates)
	assert.Empty(t, f.actions.recorded)
}
