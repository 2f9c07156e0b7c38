package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	DefaultModel = "gemini-2.0-flash-001"

	// a question needing more tool round trips than this is abandoned
	maxToolRounds = 5
)

// Agent answers back-office questions with Gemini function calling over the store's data.
type Agent struct {
	APIKey string
	Model  string
}

// Ask runs one conversation turn and returns the model's final text.
func (a *Agent) Ask(ctx context.Context, tools *Toolbox, userMessage string) (string, error) {
	if a.APIKey == "" {
		return "", errors.New("assistant is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(a.APIKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	name := a.Model
	if name == "" {
		name = DefaultModel
	}
	model := client.GenerativeModel(name)
	model.Tools = Tools()

	session := model.StartChat()
	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt(time.Now(), userMessage)))
	if err != nil {
		return "", err
	}

	// --- HANDLE TOOL CALLS ---
	for round := 0; round < maxToolRounds; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			return printResponse(resp), nil
		}

		parts := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			parts = append(parts, genai.FunctionResponse{
				Name:     call.Name,
				Response: tools.ExecuteTool(call.Name, call.Args),
			})
		}
		if resp, err = session.SendMessage(ctx, parts...); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("assistant gave up after %d tool rounds", maxToolRounds)
}

func systemPrompt(now time.Time, userMessage string) string {
	return fmt.Sprintf(`SYSTEM: Today is %s. You are the back-office assistant of a retail store.

	RULES:
	1. UPDATE: If a user asks to update a product by NAME (e.g. "Update Banana price"), you must NOT ask them for the ID. Instead:
	   - Call 'check_inventory' to find the ID.
	   - Call 'update_product_price' using that ID.

	2. READ: If a user asks for PRICE, STOCK, or DETAILS of a product, call 'check_inventory' and answer from it.

	3. STOCK: For "what is running out" questions use 'low_stock'.

	4. SALES: For revenue questions use 'get_sales_report'. For "who sold the most" use 'staff_summary'.

	USER: %s`, now.Format(dateLayout), userMessage)
}

// Tools declares the functions the model may call. Every name here is handled by Toolbox.ExecuteTool.
func Tools() []*genai.Tool {
	dateRange := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
			"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
		},
		Required: []string{"start_date", "end_date"},
	}

	return []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the full inventory list. Use this to find ANY product details like ID, Name, Category, Price or Stock.",
				},
				{
					Name:        "low_stock",
					Description: "List products that are running out of stock.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"threshold": {Type: genai.TypeInteger, Description: "Report products with fewer units than this"},
						},
					},
				},
				{
					Name:        "update_product_price",
					Description: "Update the price of a specific product using its ID",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"product_id": {Type: genai.TypeInteger, Description: "ID of the product"},
							"new_price":  {Type: genai.TypeNumber, Description: "New price"},
						},
						Required: []string{"product_id", "new_price"},
					},
				},
				{
					Name:        "create_product",
					Description: "Add a new product to the inventory",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name":     {Type: genai.TypeString, Description: "Name of the product"},
							"price":    {Type: genai.TypeNumber, Description: "Price of the product"},
							"category": {Type: genai.TypeString, Description: "Category (Grocery, Beverages, etc)"},
							"quantity": {Type: genai.TypeInteger, Description: "Initial stock count"},
						},
						Required: []string{"name", "price", "quantity"},
					},
				},
				{
					Name:        "get_sales_report",
					Description: "Get total sales revenue and number of sales for a date range.",
					Parameters:  dateRange,
				},
				{
					Name:        "staff_summary",
					Description: "Get number of sales and amount sold per staff member for a date range.",
					Parameters:  dateRange,
				},
			},
		},
	}
}

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var calls []genai.FunctionCall
	for _, part := range resp.Candidates[0].Content.Parts {
		if call, ok := part.(genai.FunctionCall); ok {
			calls = append(calls, call)
		}
	}
	return calls
}

func printResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "I completed the action."
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
