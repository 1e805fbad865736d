package response

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"shop-assistant-be/pkg/llm"
	"shop-assistant-be/pkg/store"
)

const personaSystemPrompt = "You are EZ-Agent, a helpful AI assistant for ShopEZ Laptops. Be specific, helpful, and conversational. Use the available information to provide accurate responses. Ignore irrelevant context from previous conversations. Avoid generic responses when the user has a specific request."

// Generator produces the user-facing text for every reply that is not
// fully deterministic. Callers own the fallback when a call fails.
type Generator struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewGenerator(provider llm.LLMProvider, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{provider: provider, logger: logger}
}

// Answer handles the generic assistant turn: persona, session context,
// recent history, and the current message.
func (g *Generator) Answer(ctx context.Context, user store.Identity, sctx *store.Context, history []llm.Message, message, intent string) (string, error) {
	name := user.FirstName
	if name == "" {
		name = user.Username
	}
	if name == "" {
		name = "User"
	}

	contextJSON, _ := json.Marshal(sctx)

	prompt := fmt.Sprintf(`User: %s
Current Context: %s
Recent Conversation: %s
Current Message: "%s"
Intent: %s

Provide a helpful, concise, and natural response based on the available information.
Be conversational and address the user's needs directly.

Available information:
- Product Catalog: Various laptops from brands like Dell, HP, Lenovo, Apple, etc.
- Order Management: Track orders, process returns, handle warranty claims

If the user is asking about order tracking, returns, or warranty while in a different context,
smoothly transition to the appropriate section without repeating generic messages.`,
		name, string(contextJSON), renderHistory(history, 5), message, intent)

	return g.chat(ctx, personaSystemPrompt, prompt, 0.7, 300)
}

// Rephrase turns a deterministic status line into natural assistant
// language. The instruction already carries all the facts.
func (g *Generator) Rephrase(ctx context.Context, instruction string) (string, error) {
	return g.chat(ctx, "You are a helpful customer service assistant. Be clear and friendly.", instruction, 0.7, 150)
}

// PresentProducts writes the short intro line shown above a product
// grid.
func (g *Generator) PresentProducts(ctx context.Context, products []store.ProductRecord, query, message string) (string, error) {
	var lines []string
	for _, p := range products {
		line := fmt.Sprintf("%s %s - ¥%d", p.Brand, p.Name, p.Price)
		if p.Colors != "" && p.Colors != "Not specified" {
			line += " - Colors: " + p.Colors
		}
		lines = append(lines, line)
	}

	prompt := fmt.Sprintf(`User asked: "%s"
Search query used: "%s"
Products found:
%s

Create a friendly, helpful response showing these products to the user.
Be natural and conversational. Mention you found these based on their request.
If color information is available, include it in the response.
Display prices in Japanese Yen (¥) format.
Keep it to 2-3 sentences maximum.`, message, query, strings.Join(lines, "\n"))

	return g.chat(ctx, "You are a helpful shopping assistant. Be friendly, concise, and include color information when available. Display prices in Japanese Yen with ¥ symbol.", prompt, 0.7, 120)
}

// Compare writes the comparison body for two or more products.
func (g *Generator) Compare(ctx context.Context, products []store.ProductRecord, message string) (string, error) {
	var blocks []string
	for i, p := range products {
		block := fmt.Sprintf("Product %d: %s %s - ¥%d\n- RAM: %s, Storage: %s, Processor: %s\n- Rating: %.1f (%d reviews)",
			i+1, p.Brand, p.Name, p.Price, p.RAM, p.Storage, p.Processor, p.Rating, p.Reviews)
		if p.Colors != "" && p.Colors != "Not specified" {
			block += "\n- Colors: " + p.Colors
		}
		blocks = append(blocks, block)
	}

	prompt := fmt.Sprintf(`User asked: "%s"

Compare these laptops:

%s

Create a detailed comparison highlighting:
1. Price difference and value for money
2. Performance differences (processor, RAM)
3. Storage options
4. Overall rating and user reviews
5. Any notable features

Be objective and helpful. Keep it to 5-6 sentences.`, message, strings.Join(blocks, "\n\n"))

	return g.chat(ctx, "You are an expert laptop comparison assistant. Be detailed and objective.", prompt, 0.7, 250)
}

// ExtractComparisonTargets pulls the product names out of a comparison
// request.
func (g *Generator) ExtractComparisonTargets(ctx context.Context, message string) ([]string, error) {
	prompt := fmt.Sprintf(`Extract the laptop model names from this comparison request:

User message: "%s"

Return ONLY a JSON object with a "products" array of product names, nothing else.
Example: {"products": ["Lenovo ThinkPad X1", "Dell XPS 13"]}`, message)

	raw, err := g.chat(ctx, "You extract product names from comparison requests. Return only JSON.", prompt, 0.1, 100, llm.WithJSONOutput())
	if err != nil {
		return nil, err
	}

	var decoded map[string][]string
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &decoded); err != nil {
		return nil, fmt.Errorf("decode comparison targets: %w", err)
	}
	for _, names := range decoded {
		return names, nil
	}
	return nil, nil
}

// BuildSearchQuery distills a purchase message into catalog search
// keywords.
func (g *Generator) BuildSearchQuery(ctx context.Context, message string) (string, error) {
	prompt := fmt.Sprintf(`Analyze this user message about laptop purchase and extract ONLY the key search terms:

User Message: "%s"

IMPORTANT: The user is speaking in Japanese Yen (¥). If they mention prices,
extract the numerical value but remove currency symbols and words.

Extract the most important 2-4 keywords for product search. Focus on:
- Brand names (HP, Dell, Lenovo, Apple, Asus, Acer, Infinix, MSI, Realme, Redmi, Gigabyte, Samsung, Avita, RedmiBook, etc.)
- Processor types (Intel, AMD Ryzen, Core i5, etc.)
- RAM and storage sizes
- Use case words (gaming, business, student)

Return ONLY the keywords separated by spaces, no additional text.`, message)

	return g.chat(ctx, "You are an expert at extracting search keywords from user queries. Remove currency symbols and return only the keywords without any additional text.", prompt, 0.1, 50)
}

// DescribeOrder writes the line shown above a single-order grid.
func (g *Generator) DescribeOrder(ctx context.Context, order store.OrderSnapshot) (string, error) {
	prompt := fmt.Sprintf(`Order Details:
- Order ID: %s
- Product: %s
- Price: ¥%d
- Status: %s
- Order Date: %s
- Delivery Date: %s

Create a friendly, short response presenting this order to the user. 1-2 sentences.`,
		order.OrderID, order.ProductName, order.Price, order.Status, order.OrderDate, order.DeliveryDate)

	return g.chat(ctx, "You are a helpful customer service assistant. Be clear and concise.", prompt, 0.7, 100)
}

// DescribeTracking writes the tracking summary above the tracking
// details card.
func (g *Generator) DescribeTracking(ctx context.Context, order store.OrderSnapshot) (string, error) {
	prompt := fmt.Sprintf(`Order Tracking Details:
- Order ID: %s
- Product: %s
- Status: %s
- Carrier: %s
- Tracking Number: %s
- Estimated Delivery: %s
- Order Date: %s

Create a friendly, informative response showing the tracking details to the user.
Be clear and concise about the current status and next steps.
If the order is not yet delivered, provide reassurance about the delivery timeline.
Keep it to 3-4 sentences.`,
		order.OrderID, order.ProductName, order.Status, valueOr(order.Carrier, "Not specified"),
		valueOr(order.TrackingNumber, "Not available"), valueOr(order.DeliveryDate, "Not specified"), order.OrderDate)

	return g.chat(ctx, "You are a helpful customer service assistant. Be clear, informative, and reassuring about order status.", prompt, 0.7, 150)
}

// DescribeColors answers a color question about displayed products.
func (g *Generator) DescribeColors(ctx context.Context, products []store.ProductRecord, requested []string, message string) (string, error) {
	var withColors []string
	for _, p := range products {
		if p.Colors != "" && p.Colors != "Not specified" && p.Colors != "N/A" {
			withColors = append(withColors, fmt.Sprintf("%s %s - Available colors: %s", p.Brand, p.Name, p.Colors))
		}
	}

	if len(withColors) == 0 {
		var names []string
		for _, p := range products {
			names = append(names, p.Brand+" "+p.Name)
		}
		prompt := fmt.Sprintf(`User asked: "%s"
They are asking about color availability for these products: %s

Unfortunately, color information is not available for these specific models.

Create a helpful, empathetic response that explains color information isn't
available, suggests checking the product details page, and offers further help.
Keep it to 2-3 sentences.`, message, strings.Join(names, ", "))

		return g.chat(ctx, "You are a helpful shopping assistant. Be empathetic when information isn't available.", prompt, 0.7, 120)
	}

	colors := "Any colors"
	if len(requested) > 0 {
		colors = strings.Join(requested, ", ")
	}
	prompt := fmt.Sprintf(`User asked: "%s"
They are asking about color availability for these products:

%s

Requested colors: %s

Create a helpful response that tells them what colors are available for each
product, is specific about the options, and helps them decide.
Keep it to 3-4 sentences maximum.`, message, strings.Join(withColors, "\n"), colors)

	return g.chat(ctx, "You are a helpful shopping assistant. Be specific about product colors and help users make informed decisions.", prompt, 0.7, 150)
}

func (g *Generator) chat(ctx context.Context, system, prompt string, temperature float64, maxTokens int, extra ...llm.Option) (string, error) {
	opts := append([]llm.Option{llm.WithTemperature(temperature), llm.WithMaxTokens(maxTokens)}, extra...)
	out, err := g.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: prompt},
	}, opts...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func renderHistory(history []llm.Message, max int) string {
	if len(history) > max {
		history = history[len(history)-max:]
	}
	var b strings.Builder
	for _, m := range history {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}
	if b.Len() == 0 {
		return "None"
	}
	return b.String()
}

func valueOr(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
