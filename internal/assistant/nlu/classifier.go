// Package nlu is the fallback classifier: it asks an OpenAI-compatible model
// to map an utterance onto the closed intent set when no quick pattern
// matched. The model's output is an untrusted-input boundary; anything that
// does not validate degrades to UNKNOWN with confidence 0 instead of failing
// the request.
package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pos-assistant/internal/assistant/intent"
	"pos-assistant/internal/common/config"
	"pos-assistant/internal/common/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/xeipuuv/gojsonschema"
)

// Context is the restaurant-scoped bundle given to the model alongside the
// message.
type Context struct {
	RestaurantName string
	Categories     []string
}

// Classifier resolves an utterance that no quick pattern matched. It never
// fails: any classifier-side problem yields a degraded UNKNOWN result.
type Classifier interface {
	Classify(ctx context.Context, message string, info Context) *intent.Classification
}

const disabledClarification = "AI features are not configured. Ask your administrator to set an NLU API key."

const clarificationFallback = "I couldn't understand that. Could you rephrase?"

// resultSchema validates the model's JSON before any of it is trusted.
var resultSchema = gojsonschema.NewStringLoader(fmt.Sprintf(`{
	"type": "object",
	"required": ["intent"],
	"properties": {
		"intent": {"type": "string", "enum": [%s]},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1},
		"entities": {"type": "object"},
		"needs_clarification": {"type": "boolean"},
		"clarification_question": {"type": "string"}
	}
}`, intentEnum()))

func intentEnum() string {
	quoted := make([]string, 0, len(intent.All))
	for _, i := range intent.All {
		quoted = append(quoted, fmt.Sprintf("%q", i.String()))
	}
	return strings.Join(quoted, ", ")
}

// LLMClassifier implements Classifier over an OpenAI-compatible chat model.
type LLMClassifier struct {
	model   llms.Model
	timeout time.Duration
	logger  logger.Logger
}

// New builds a classifier from config. An empty API key returns a disabled
// classifier that always degrades with an explanatory clarification.
func New(cfg config.NLUConfig, log logger.Logger) (*LLMClassifier, error) {
	c := &LLMClassifier{
		timeout: cfg.RequestTimeout(),
		logger:  log.With(map[string]interface{}{"component": "nlu"}),
	}

	if !cfg.Enabled() {
		return c, nil
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create nlu model: %w", err)
	}
	c.model = model
	return c, nil
}

// NewWithModel builds a classifier around an existing model. Used by tests.
func NewWithModel(model llms.Model, log logger.Logger) *LLMClassifier {
	return &LLMClassifier{
		model:   model,
		timeout: 15 * time.Second,
		logger:  log.With(map[string]interface{}{"component": "nlu"}),
	}
}

func (c *LLMClassifier) Classify(ctx context.Context, message string, info Context) *intent.Classification {
	if c.model == nil {
		return degraded(disabledClarification)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := llms.GenerateFromSinglePrompt(ctx, c.model, c.buildPrompt(message, info))
	if err != nil {
		c.logger.WithError(err).Warn("nlu call failed, degrading to UNKNOWN", map[string]interface{}{
			"messageLength": len(message),
		})
		return degraded(clarificationFallback)
	}

	result, err := c.parseCompletion(completion)
	if err != nil {
		c.logger.WithError(err).Warn("nlu output rejected, degrading to UNKNOWN", nil)
		return degraded(clarificationFallback)
	}

	return result
}

// classifierResult is the wire shape the model is instructed to produce.
type classifierResult struct {
	Intent                string                 `json:"intent"`
	Entities              map[string]interface{} `json:"entities"`
	Confidence            float64                `json:"confidence"`
	NeedsClarification    bool                   `json:"needs_clarification"`
	ClarificationQuestion string                 `json:"clarification_question"`
}

func (c *LLMClassifier) parseCompletion(completion string) (*intent.Classification, error) {
	raw := stripCodeFence(completion)

	docLoader := gojsonschema.NewStringLoader(raw)
	validation, err := gojsonschema.Validate(resultSchema, docLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation errored: %w", err)
	}
	if !validation.Valid() {
		return nil, fmt.Errorf("schema mismatch: %v", validation.Errors())
	}

	var result classifierResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}

	resolved := intent.Intent(result.Intent)
	if !resolved.Valid() {
		return nil, fmt.Errorf("intent %q outside closed set", result.Intent)
	}

	return &intent.Classification{
		Intent:                resolved,
		Entities:              intent.FromMap(resolved, result.Entities),
		Confidence:            result.Confidence,
		NeedsClarification:    result.NeedsClarification,
		ClarificationQuestion: result.ClarificationQuestion,
	}, nil
}

func (c *LLMClassifier) buildPrompt(message string, info Context) string {
	restaurant := info.RestaurantName
	if restaurant == "" {
		restaurant = "Restaurant"
	}

	return fmt.Sprintf(`You are a restaurant POS assistant. Parse the following user message and extract intent and entities.

Restaurant: %s
Categories: %s

User message: %q

Respond with a JSON object containing:
- intent: one of %s
- entities: relevant extracted data
- confidence: 0-1 confidence score
- needs_clarification: true when the message is too ambiguous to act on
- clarification_question: what to ask the user when clarification is needed

Entity shapes per intent:
- MENU_PRICE_UPDATE: {"target": string, "modifier": "INCREMENT"|"DECREMENT", "value": number, "is_percentage": bool}
- MENU_AVAILABILITY_TOGGLE: {"items": [string], "available": bool}
- MENU_SEARCH: {"query": string}
- other intents take no entities

Respond only with valid JSON.`,
		restaurant,
		strings.Join(info.Categories, ", "),
		message,
		intentEnum(),
	)
}

// stripCodeFence removes a surrounding markdown code fence if the model added
// one despite the JSON-only instruction.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func degraded(question string) *intent.Classification {
	return &intent.Classification{
		Intent:                intent.Unknown,
		Entities:              intent.Entities{},
		Confidence:            0,
		NeedsClarification:    true,
		ClarificationQuestion: question,
	}
}
