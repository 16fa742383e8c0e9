package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPattern_PriceUpdate(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected PriceUpdateEntities
	}{
		{
			name:    "percentage increase",
			message: "increase burger by 20%",
			expected: PriceUpdateEntities{
				Target:       "burger",
				Modifier:     ModifierIncrement,
				Value:        20.0,
				IsPercentage: true,
			},
		},
		{
			name:    "absolute decrease",
			message: "decrease starters by 15",
			expected: PriceUpdateEntities{
				Target:       "starters",
				Modifier:     ModifierDecrement,
				Value:        15.0,
				IsPercentage: false,
			},
		},
		{
			name:    "currency marker before amount",
			message: "raise biryani by rs 25",
			expected: PriceUpdateEntities{
				Target:       "biryani",
				Modifier:     ModifierIncrement,
				Value:        25.0,
				IsPercentage: false,
			},
		},
		{
			name:    "decimal value",
			message: "lower coffee by 7.5%",
			expected: PriceUpdateEntities{
				Target:       "coffee",
				Modifier:     ModifierDecrement,
				Value:        7.5,
				IsPercentage: true,
			},
		},
		{
			name:    "mixed case input",
			message: "Increase Burger By 20%",
			expected: PriceUpdateEntities{
				Target:       "burger",
				Modifier:     ModifierIncrement,
				Value:        20.0,
				IsPercentage: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := MatchPattern(tt.message)
			require.True(t, ok)
			assert.Equal(t, MenuPriceUpdate, result.Intent)
			assert.Equal(t, 1.0, result.Confidence)
			require.NotNil(t, result.Entities.PriceUpdate)
			assert.Equal(t, tt.expected, *result.Entities.PriceUpdate)
		})
	}
}

func TestMatchPattern_AvailabilityToggle(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		items     []string
		available bool
	}{
		{"86 command", "86 the lassi", []string{"lassi"}, false},
		{"86 without article", "86 paneer tikka", []string{"paneer tikka"}, false},
		{"mark available", "mark biryani available", []string{"biryani"}, true},
		{"make back", "make the dal back", []string{"the dal"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := MatchPattern(tt.message)
			require.True(t, ok)
			assert.Equal(t, MenuAvailabilityToggle, result.Intent)
			require.NotNil(t, result.Entities.Availability)
			assert.Equal(t, tt.items, result.Entities.Availability.Items)
			assert.Equal(t, tt.available, result.Entities.Availability.Available)
		})
	}
}

// The 86 pattern must win over the broad catch-alls even though parts of the
// message could match them.
func TestMatchPattern_Priority(t *testing.T) {
	result, ok := MatchPattern("86 the lassi")
	require.True(t, ok)
	assert.Equal(t, MenuAvailabilityToggle, result.Intent)
	assert.NotEqual(t, Help, result.Intent)
	assert.NotEqual(t, Greeting, result.Intent)
	require.NotNil(t, result.Entities.Availability)
	assert.False(t, result.Entities.Availability.Available)
	assert.Equal(t, []string{"lassi"}, result.Entities.Availability.Items)
}

func TestMatchPattern_Reports(t *testing.T) {
	tests := []struct {
		message string
		intent  Intent
	}{
		{"how's today going?", SalesQueryToday},
		{"show me the revenue", SalesQueryToday},
		{"what are the top selling items", TopSellers},
		{"best sellers", TopSellers},
		{"show me the tables", TableList},
		{"list tables", TableList},
		{"find paneer tikka on the menu", MenuSearch},
		{"search for lassi in the menu", MenuSearch},
		{"hello", Greeting},
		{"good morning", Greeting},
		{"help", Help},
		{"what can you do", Help},
		{"?", Help},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			result, ok := MatchPattern(tt.message)
			require.True(t, ok)
			assert.Equal(t, tt.intent, result.Intent)
			assert.Equal(t, 1.0, result.Confidence)
		})
	}
}

func TestMatchPattern_MenuSearchQuery(t *testing.T) {
	result, ok := MatchPattern("find paneer tikka on the menu")
	require.True(t, ok)
	require.NotNil(t, result.Entities.MenuSearch)
	assert.Equal(t, "paneer tikka", result.Entities.MenuSearch.Query)
}

func TestMatchPattern_NoMatch(t *testing.T) {
	for _, message := range []string{
		"",
		"   ",
		"please do something with the specials",
		"can you cancel order 42",
	} {
		t.Run(message, func(t *testing.T) {
			result, ok := MatchPattern(message)
			assert.False(t, ok)
			assert.Nil(t, result)
		})
	}
}

func TestEntitiesFromMap(t *testing.T) {
	t.Run("price update with loose types", func(t *testing.T) {
		e := FromMap(MenuPriceUpdate, map[string]interface{}{
			"target":        "starters",
			"modifier":      "DECREMENT",
			"value":         15,
			"is_percentage": false,
			"extra":         "ignored",
		})
		require.NotNil(t, e.PriceUpdate)
		assert.Equal(t, "starters", e.PriceUpdate.Target)
		assert.Equal(t, ModifierDecrement, e.PriceUpdate.Modifier)
		assert.Equal(t, 15.0, e.PriceUpdate.Value)
		assert.False(t, e.PriceUpdate.IsPercentage)
	})

	t.Run("availability items as interface slice", func(t *testing.T) {
		e := FromMap(MenuAvailabilityToggle, map[string]interface{}{
			"items":     []interface{}{"lassi", "dal"},
			"available": true,
		})
		require.NotNil(t, e.Availability)
		assert.Equal(t, []string{"lassi", "dal"}, e.Availability.Items)
		assert.True(t, e.Availability.Available)
	})

	t.Run("missing keys leave zero values", func(t *testing.T) {
		e := FromMap(MenuAvailabilityToggle, map[string]interface{}{})
		require.NotNil(t, e.Availability)
		assert.Empty(t, e.Availability.Items)
	})

	t.Run("nil map", func(t *testing.T) {
		e := FromMap(MenuPriceUpdate, nil)
		assert.Nil(t, e.PriceUpdate)
	})
}

func TestIntentValid(t *testing.T) {
	assert.True(t, MenuPriceUpdate.Valid())
	assert.True(t, Unknown.Valid())
	assert.False(t, Intent("MAKE_COFFEE").Valid())
}
