package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dokon-pos/internal/catalog"
	"dokon-pos/internal/reports"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Agent answers free-text questions about the shop by calling tools over
// the catalog and reports services. Admin only; it can read inventory,
// change a price, create a product and pull revenue numbers.
type Agent struct {
	apiKey  string
	catalog *catalog.Service
	reports *reports.Service
}

func NewAgent(apiKey string, catalogSvc *catalog.Service, reportsSvc *reports.Service) *Agent {
	return &Agent{apiKey: apiKey, catalog: catalogSvc, reports: reportsSvc}
}

func (a *Agent) Run(ctx context.Context, userMessage string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")
	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant of a small retail shop.

RULES:
1. UPDATE: If the user asks to update a product by NAME, do not ask for the ID.
   Call 'check_inventory' to find it, then 'update_product_price' with that ID.
2. READ: For PRICE, STOCK or DETAILS of a product, call 'check_inventory' and
   read the answer out of the JSON. Never claim you cannot get the price.
3. SALES: For revenue or sales questions, use 'get_sales_report'.

USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the full inventory list: ID, name, code, price, stock and category of every product.",
				},
				{
					Name:        "update_product_price",
					Description: "Update the price of a specific product using its ID",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"product_id": {Type: genai.TypeInteger, Description: "ID of the product"},
							"new_price":  {Type: genai.TypeNumber, Description: "New price in UZS"},
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
							"code":     {Type: genai.TypeString, Description: "Unique product code"},
							"price":    {Type: genai.TypeNumber, Description: "Price in UZS"},
							"category": {Type: genai.TypeString, Description: "Department name"},
							"quantity": {Type: genai.TypeInteger, Description: "Initial stock count"},
						},
						Required: []string{"name", "code", "price", "category", "quantity"},
					},
				},
				{
					Name:        "get_sales_report",
					Description: "Get total sales revenue and the best-selling products for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	// One round of tool calls is enough for every flow the rules allow,
	// except inventory lookups that chain into a price update.
	for _, part := range resp.Candidates[0].Content.Parts {
		funcCall, ok := part.(genai.FunctionCall)
		if !ok {
			continue
		}

		switch funcCall.Name {
		case "check_inventory":
			reply, err := a.runInventoryTool(ctx, session)
			if err != nil {
				return "", err
			}
			return reply, nil
		case "update_product_price":
			return a.runPriceUpdate(ctx, session, funcCall), nil
		case "create_product":
			return a.runCreateProduct(ctx, session, funcCall), nil
		case "get_sales_report":
			return a.runSalesReport(ctx, session, funcCall), nil
		}
	}

	return textOf(resp), nil
}

func (a *Agent) runInventoryTool(ctx context.Context, session *genai.ChatSession) (string, error) {
	products, err := a.catalog.ListProducts(ctx, "")
	if err != nil {
		return "", err
	}

	type row struct {
		ID       uint   `json:"id"`
		Name     string `json:"name"`
		Code     string `json:"code"`
		Price    int64  `json:"price"`
		Stock    int    `json:"stock"`
		Category string `json:"category"`
	}
	rows := make([]row, 0, len(products))
	for _, p := range products {
		rows = append(rows, row{p.ID, p.Name, p.Code, p.Price, p.Quantity, p.Category})
	}

	jsonBytes, _ := json.Marshal(rows)

	resp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "check_inventory",
		Response: map[string]interface{}{"inventory": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}

	// The model may chain an inventory lookup into a price update.
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok && funcCall.Name == "update_product_price" {
			return a.runPriceUpdate(ctx, session, funcCall), nil
		}
	}
	return textOf(resp), nil
}

func (a *Agent) runPriceUpdate(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	productID := uint(args["product_id"].(float64))
	newPrice := int64(args["new_price"].(float64))

	msg := "Success"
	product, err := a.catalog.GetProduct(ctx, productID)
	if err != nil {
		msg = "Product ID not found"
	} else {
		_, err = a.catalog.SaveProduct(ctx, catalog.ProductInput{
			ID:        product.ID,
			Name:      product.Name,
			Code:      product.Code,
			Barcode:   product.Barcode,
			Price:     newPrice,
			Quantity:  product.Quantity,
			Category:  product.Category,
			ImageURL:  product.ImageURL,
			Essential: product.Essential,
		})
		if err != nil {
			msg = "Update failed: " + err.Error()
		}
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "update_product_price",
		Response: map[string]interface{}{"status": msg, "new_price": newPrice},
	})
	return textOf(finalResp)
}

func (a *Agent) runCreateProduct(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	product, err := a.catalog.SaveProduct(ctx, catalog.ProductInput{
		Name:     args["name"].(string),
		Code:     args["code"].(string),
		Price:    int64(args["price"].(float64)),
		Category: args["category"].(string),
		Quantity: int(args["quantity"].(float64)),
	})

	response := map[string]interface{}{"status": "created"}
	if err != nil {
		response["status"] = "failed: " + err.Error()
	} else {
		response["id"] = product.ID
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "create_product",
		Response: response,
	})
	return textOf(finalResp)
}

func (a *Agent) runSalesReport(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	startStr := args["start_date"].(string)
	endStr := args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)
	if err1 != nil || err2 != nil {
		return "Error: Dates must be in YYYY-MM-DD format."
	}
	end = end.Add(23*time.Hour + 59*time.Minute)

	sales, err := a.reports.SalesHistory(ctx, &start, &end, "")
	if err != nil {
		return "Error calculating sales."
	}

	var revenue int64
	for _, sale := range sales {
		revenue += sale.Total
	}

	top, err := a.reports.TopProducts(ctx, start, 5)
	if err != nil {
		top = nil
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_sales_report",
		Response: map[string]interface{}{
			"revenue":      revenue,
			"sales_count":  len(sales),
			"top_products": top,
		},
	})
	return textOf(finalResp)
}

func textOf(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
