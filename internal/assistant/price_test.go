package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-assistant/internal/assistant/intent"
	"pos-assistant/internal/models"
)

func TestHandlePriceUpdate_PercentagePreview(t *testing.T) {
	f := newFixture(t)
	f.catalog.items = []models.MenuItem{
		{ID: "m1", Name: "Veg Burger", BasePrice: 150},
		{ID: "m2", Name: "Chicken Burger", BasePrice: 200},
	}

	result, err := f.svc.ProcessMessage(context.Background(), tenant(), "increase burger by 20%", "")

	require.NoError(t, err)
	assert.True(t, result.RequiresConfirmation)
	require.NotNil(t, result.Preview)
	assert.Equal(t, PreviewTypePriceUpdate, result.Preview.Type)
	require.Len(t, result.Preview.Changes, 2)
	assert.Equal(t, 180.0, result.Preview.Changes[0].NewPrice)
	assert.Equal(t, 240.0, result.Preview.Changes[1].NewPrice)

	assert.Empty(t, f.catalog.priceUpdates, "preview must not write")
}

func TestHandlePriceUpdate_AbsoluteDecrease(t *testing.T) {
	f := newFixture(t)
	f.catalog.items = []models.MenuItem{{ID: "m1", Name: "Samosa", BasePrice: 40}}

	result, err := f.svc.ProcessMessage(context.Background(), tenant(), "decrease samosa by 15", "")

	require.NoError(t, err)
	require.Len(t, result.Preview.Changes, 1)
	assert.Equal(t, 25.0, result.Preview.Changes[0].NewPrice)
}

func TestHandlePriceUpdate_FloorsAtZero(t *testing.T) {
	f := newFixture(t)
	f.catalog.items = []models.MenuItem{{ID: "m1", Name: "Papad", BasePrice: 20}}

	result, err := f.svc.ProcessMessage(context.Background(), tenant(), "reduce papad by 50", "")

	require.NoError(t, err)
	require.Len(t, result.Preview.Changes, 1)
	assert.Equal(t, 0.0, result.Preview.Changes[0].NewPrice)
}

func TestHandlePriceUpdate_NoMatches(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.ProcessMessage(context.Background(), tenant(), "increase unicorn by 10%", "")

	require.NoError(t, err)
	assert.False(t, result.RequiresConfirmation)
	assert.Nil(t, result.Preview)
	assert.Contains(t, result.Message, "couldn't find")
}

func TestHandlePriceUpdate_MissingTarget(t *testing.T) {
	f := newFixture(t)
	f.classifier.result = &intent.Classification{Intent: intent.MenuPriceUpdate, Confidence: 0.7}

	result, err := f.svc.ProcessMessage(context.Background(), tenant(), "change some prices", "")

	require.NoError(t, err)
	assert.Contains(t, result.Message, "Which items")
	assert.Nil(t, result.Preview)
}

func TestHandlePriceUpdate_SoftCapKeepsFullChangeSet(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 12; i++ {
		f.catalog.items = append(f.catalog.items, models.MenuItem{
			ID: string(rune('a' + i)), Name: "Item", BasePrice: 100,
		})
	}

	result, err := f.svc.ProcessMessage(context.Background(), tenant(), "increase starters by 10%", "")

	require.NoError(t, err)
	assert.Len(t, result.Preview.Changes, 12)
	assert.Contains(t, result.Message, "...and 2 more")
}

func TestHandlePriceUpdate_HardCapTruncatesChangeSet(t *testing.T) {
	f := newFixture(t)
	f.svc.cfg.PreviewCapHard = true
	for i := 0; i < 12; i++ {
		f.catalog.items = append(f.catalog.items, models.MenuItem{
			ID: string(rune('a' + i)), Name: "Item", BasePrice: 100,
		})
	}

	result, err := f.svc.ProcessMessage(context.Background(), tenant(), "increase starters by 10%", "")

	require.NoError(t, err)
	assert.Len(t, result.Preview.Changes, 10)
	assert.Contains(t, result.Message, "not included")
}
