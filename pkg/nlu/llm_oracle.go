package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"shop-assistant-be/pkg/llm"
)

const understandingPrompt = `Analyze this user message in the context of an e-commerce laptop store conversation:

Current Context: %s
User Message: "%s"

Your task is to understand the user's intent and extract relevant information.

IMPORTANT: The user is speaking in Japanese Yen (¥). Extract any price amounts and
note that they are in JPY. Also look for yen symbols (¥) or words like 'yen'.

Also detect the type of budget constraint:
- "under 50000", "below 50000", "less than 50000" → below
- "over 50000", "above 50000", "more than 50000" → above
- "around 50000", "about 50000", "50000" → around

Possible Intents:
- product_inquiry: Looking for laptops, asking about products, searching
- specific_product: Asking about specific brand/model (Dell, HP, etc.)
- product_comparison: Comparing products, asking which is better
- order_status: Asking about order tracking, status, delivery
- return_request: Wanting to return a product
- cancellation_request: Wanting to cancel an order
- warranty_claim: Warranty issues, repairs
- technical_support: Technical problems, setup help
- color_inquiry: Asking about available colors
- budget_inquiry: Asking about prices, budget options
- feature_inquiry: Asking about specific features (RAM, storage, etc.)
- greeting: Hello, hi, etc.
- goodbye: Bye, thanks, etc.
- general_question: Other questions

Entities to extract:
- brand: dell, hp, lenovo, apple, etc.
- max_price: budget amount (in JPY - look for ¥, yen, 円)
- ram: 8gb, 16gb, etc.
- storage: 256gb, 1tb, ssd, hdd
- color: blue, red, black, silver, etc.
- order_id: ORD-1234 format
- reason: reason for return/cancellation
- product_model: specific model names

Return JSON format: {"intent": "detected_intent", "entities": {"entity1": "value1", "entity2": "value2"}}`

const understandingSystemPrompt = "You are an expert at understanding e-commerce conversations. Be accurate and extract all relevant information. Note that prices are in JPY."

// LLMOracle resolves intent with the local rules first and falls back
// to the model for everything the rules cannot decide.
type LLMOracle struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewLLMOracle(provider llm.LLMProvider, logger *log.Logger) *LLMOracle {
	if logger == nil {
		logger = log.Default()
	}
	return &LLMOracle{provider: provider, logger: logger}
}

var _ Oracle = &LLMOracle{}

func (o *LLMOracle) Understand(ctx context.Context, message string, sessionHint string) (*Resolution, error) {
	if res := ResolveLocally(message); res != nil {
		return res, nil
	}

	if sessionHint == "" {
		sessionHint = "No context"
	}
	prompt := fmt.Sprintf(understandingPrompt, sessionHint, message)

	raw, err := o.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: understandingSystemPrompt},
		{Role: "user", Content: prompt},
	}, llm.WithTemperature(0.1), llm.WithMaxTokens(200), llm.WithJSONOutput())
	if err != nil {
		return nil, fmt.Errorf("understanding model: %w", err)
	}

	res, err := parseResolution(raw)
	if err != nil {
		o.logger.Printf("[NLU] unparseable model output: %v", err)
		return nil, err
	}
	res.Source = "llm"
	return res, nil
}

func parseResolution(raw string) (*Resolution, error) {
	var decoded struct {
		Intent   string                 `json:"intent"`
		Entities map[string]interface{} `json:"entities"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &decoded); err != nil {
		return nil, fmt.Errorf("decode resolution: %w", err)
	}

	res := &Resolution{
		Intent:   decoded.Intent,
		Entities: make(map[string]string, len(decoded.Entities)),
	}
	if res.Intent == "" {
		res.Intent = "general_question"
	}
	for k, v := range decoded.Entities {
		switch val := v.(type) {
		case string:
			res.Entities[k] = val
		case float64:
			// Whole numbers arrive as float64 from encoding/json
			if val == float64(int64(val)) {
				res.Entities[k] = fmt.Sprintf("%d", int64(val))
			} else {
				res.Entities[k] = fmt.Sprintf("%v", val)
			}
		default:
			res.Entities[k] = fmt.Sprintf("%v", v)
		}
	}

	// Order ids from the model get the same normalization as rule hits
	if id, ok := res.Entities["order_id"]; ok && id != "" {
		res.Entities["order_id"] = NormalizeOrderID(id)
	}

	return res, nil
}
