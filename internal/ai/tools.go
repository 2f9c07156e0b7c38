package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/auth"
	"retail-edge-pos/internal/database"
	"retail-edge-pos/internal/inventory"
	"retail-edge-pos/internal/models"
	"retail-edge-pos/internal/reports"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Toolbox runs the functions the assistant may call, on behalf of Caller.
type Toolbox struct {
	DB                *gorm.DB
	Caller            *auth.Claims
	LowStockThreshold int
}

type simpleProduct struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
	Price    float64 `json:"price"`
}

// ExecuteTool runs one named tool. The returned map is handed back to the model as
// the function response; errors become {"error": "..."} so the model can explain them.
func (t *Toolbox) ExecuteTool(name string, args map[string]any) map[string]any {
	out, err := t.execute(name, args)
	if err == nil {
		out, err = plain(out)
	}
	if err != nil {
		msg := err.Error()
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			msg = appErr.Message
		}
		return map[string]any{"error": msg}
	}
	return out
}

// plain round-trips a result through JSON so only maps, slices, strings, numbers
// and bools remain; the function response is encoded as a protobuf Struct.
func plain(out map[string]any) (map[string]any, error) {
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return decoded, nil
}

func (t *Toolbox) execute(name string, args map[string]any) (map[string]any, error) {
	switch name {
	case "check_inventory":
		products, err := inventory.List(t.DB)
		if err != nil {
			return nil, err
		}
		return map[string]any{"inventory": simplify(products)}, nil

	case "low_stock":
		threshold := t.LowStockThreshold
		if v, ok := args["threshold"]; ok {
			n, err := toInt(v)
			if err != nil {
				return nil, fmt.Errorf("threshold: %w", err)
			}
			threshold = n
		}
		products, err := inventory.LowStock(t.DB, threshold)
		if err != nil {
			return nil, err
		}
		return map[string]any{"threshold": threshold, "products": simplify(products)}, nil

	case "update_product_price":
		id, err := intArg(args, "product_id")
		if err != nil {
			return nil, err
		}
		price, err := floatArg(args, "new_price")
		if err != nil {
			return nil, err
		}
		product, err := inventory.Update(t.DB, uint(id), inventory.ProductUpdate{Price: &price})
		if err != nil {
			return nil, err
		}
		return map[string]any{"status": "Success", "product": toSimple(*product)}, nil

	case "create_product":
		in := inventory.ProductInput{}
		var err error
		if in.Name, err = stringArg(args, "name"); err != nil {
			return nil, err
		}
		in.Category, _ = args["category"].(string)
		if in.Price, err = floatArg(args, "price"); err != nil {
			return nil, err
		}
		if in.Quantity, err = intArg(args, "quantity"); err != nil {
			return nil, err
		}
		product, err := inventory.Create(t.DB, in)
		if err != nil {
			return nil, err
		}
		return map[string]any{"status": "created", "id": product.ID}, nil

	case "get_sales_report":
		start, end, err := dateRange(args)
		if err != nil {
			return nil, err
		}
		report, err := database.GetSalesReport(t.DB, start, end)
		if err != nil {
			return nil, err
		}
		return map[string]any{"revenue": report.TotalRevenue, "sales_count": report.TotalCount}, nil

	case "staff_summary":
		start, end, err := dateRange(args)
		if err != nil {
			return nil, err
		}
		summary, err := reports.StaffWiseSummary(t.DB, t.Caller, start, end)
		if err != nil {
			return nil, err
		}
		return map[string]any{"staff": summary}, nil
	}

	return nil, fmt.Errorf("unknown tool %q", name)
}

func toSimple(p models.Product) simpleProduct {
	return simpleProduct{ID: p.ID, Name: p.Name, Category: p.Category, Stock: p.Quantity, Price: p.Price}
}

func simplify(products []models.Product) []simpleProduct {
	list := make([]simpleProduct, 0, len(products))
	for _, p := range products {
		list = append(list, toSimple(p))
	}
	return list
}

func dateRange(args map[string]any) (time.Time, time.Time, error) {
	startStr, err := stringArg(args, "start_date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endStr, err := stringArg(args, "end_date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	start, err1 := time.ParseInLocation(dateLayout, startStr, time.Local)
	end, err2 := time.ParseInLocation(dateLayout, endStr, time.Local)
	if err1 != nil || err2 != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("dates must be in YYYY-MM-DD format")
	}
	// whole end day
	return start, end.Add(24*time.Hour - time.Nanosecond), nil
}

func stringArg(args map[string]any, key string) (string, error) {
	s, ok := args[key].(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return s, nil
}

func floatArg(args map[string]any, key string) (float64, error) {
	switch v := args[key].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	return 0, fmt.Errorf("%s must be a number", key)
}

func intArg(args map[string]any, key string) (int, error) {
	n, err := toInt(args[key])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// JSON numbers arrive as float64
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("must be a whole number")
		}
		return int(n), nil
	case int:
		return n, nil
	}
	return 0, fmt.Errorf("must be a number")
}
