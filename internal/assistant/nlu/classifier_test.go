package nlu

import (
	"context"
	"errors"
	"testing"

	"pos-assistant/internal/assistant/intent"
	"pos-assistant/internal/common/config"
	"pos-assistant/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel returns a canned completion or error.
type fakeModel struct {
	completion string
	err        error
	prompts    []string
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, m := range messages {
		for _, part := range m.Parts {
			if text, ok := part.(llms.TextContent); ok {
				f.prompts = append(f.prompts, text.Text)
			}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.completion}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.completion, nil
}

func classify(t *testing.T, model llms.Model, message string) *intent.Classification {
	t.Helper()
	c := NewWithModel(model, logger.NewTestLogger(t))
	return c.Classify(context.Background(), message, Context{
		RestaurantName: "Spice Route",
		Categories:     []string{"Starters", "Mains"},
	})
}

func TestClassify_ValidOutput(t *testing.T) {
	model := &fakeModel{completion: `{
		"intent": "MENU_PRICE_UPDATE",
		"entities": {"target": "starters", "modifier": "DECREMENT", "value": 15, "is_percentage": false},
		"confidence": 0.92
	}`}

	result := classify(t, model, "take fifteen off all the starters")

	assert.Equal(t, intent.MenuPriceUpdate, result.Intent)
	assert.Equal(t, 0.92, result.Confidence)
	assert.False(t, result.NeedsClarification)
	require.NotNil(t, result.Entities.PriceUpdate)
	assert.Equal(t, "starters", result.Entities.PriceUpdate.Target)
	assert.Equal(t, intent.ModifierDecrement, result.Entities.PriceUpdate.Modifier)
	assert.Equal(t, 15.0, result.Entities.PriceUpdate.Value)
}

func TestClassify_CodeFencedOutput(t *testing.T) {
	model := &fakeModel{completion: "```json\n{\"intent\": \"TOP_SELLERS\", \"confidence\": 0.8}\n```"}

	result := classify(t, model, "which dishes are doing well")

	assert.Equal(t, intent.TopSellers, result.Intent)
	assert.Equal(t, 0.8, result.Confidence)
}

func TestClassify_NeedsClarification(t *testing.T) {
	model := &fakeModel{completion: `{
		"intent": "MENU_AVAILABILITY_TOGGLE",
		"entities": {},
		"confidence": 0.4,
		"needs_clarification": true,
		"clarification_question": "Which items should I update?"
	}`}

	result := classify(t, model, "toggle some stuff")

	assert.Equal(t, intent.MenuAvailabilityToggle, result.Intent)
	assert.True(t, result.NeedsClarification)
	assert.Equal(t, "Which items should I update?", result.ClarificationQuestion)
}

func TestClassify_DegradesOnModelError(t *testing.T) {
	model := &fakeModel{err: errors.New("connection refused")}

	result := classify(t, model, "increase something")

	assert.Equal(t, intent.Unknown, result.Intent)
	assert.Equal(t, 0.0, result.Confidence)
	assert.True(t, result.NeedsClarification)
}

func TestClassify_DegradesOnBadOutput(t *testing.T) {
	tests := []struct {
		name       string
		completion string
	}{
		{"not json", "sorry, I can't help with that"},
		{"intent outside closed set", `{"intent": "MAKE_COFFEE", "confidence": 0.9}`},
		{"confidence out of range", `{"intent": "HELP", "confidence": 1.7}`},
		{"missing intent", `{"confidence": 0.5}`},
		{"entities wrong type", `{"intent": "HELP", "entities": "none"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classify(t, &fakeModel{completion: tt.completion}, "whatever")

			assert.Equal(t, intent.Unknown, result.Intent)
			assert.Equal(t, 0.0, result.Confidence)
			assert.True(t, result.NeedsClarification)
		})
	}
}

func TestClassify_DisabledClassifier(t *testing.T) {
	c, err := New(config.NLUConfig{}, logger.NewTestLogger(t))
	require.NoError(t, err)

	result := c.Classify(context.Background(), "increase burger by 20%", Context{})

	assert.Equal(t, intent.Unknown, result.Intent)
	assert.Equal(t, 0.0, result.Confidence)
	assert.True(t, result.NeedsClarification)
	assert.Equal(t, disabledClarification, result.ClarificationQuestion)
}

func TestClassify_PromptCarriesContext(t *testing.T) {
	model := &fakeModel{completion: `{"intent": "HELP", "confidence": 1}`}

	classify(t, model, "what do I do")

	require.NotEmpty(t, model.prompts)
	prompt := model.prompts[0]
	assert.Contains(t, prompt, "Spice Route")
	assert.Contains(t, prompt, "Starters, Mains")
	assert.Contains(t, prompt, "MENU_PRICE_UPDATE")
	assert.Contains(t, prompt, "what do I do")
}
