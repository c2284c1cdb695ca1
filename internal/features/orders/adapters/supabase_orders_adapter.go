package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"techstore-api/internal/core/config"
	"techstore-api/internal/core/httpclient"
	"techstore-api/internal/core/logger"
	"techstore-api/internal/features/orders/domain"

	"go.uber.org/zap"
)

// SupabaseOrdersAdapter implements the OrderProvider interface using the
// Supabase PostgREST API over the orders table with embedded order_items.
type SupabaseOrdersAdapter struct {
	client *http.Client
	config config.SupabaseConfig
}

// NewSupabaseOrdersAdapter creates a new instance of SupabaseOrdersAdapter.
func NewSupabaseOrdersAdapter(cfg config.SupabaseConfig) *SupabaseOrdersAdapter {
	return &SupabaseOrdersAdapter{
		client: httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

// GetOrder fetches an order and its items in one round trip using a
// PostgREST embedded resource select. Returns nil when no row matches.
func (a *SupabaseOrdersAdapter) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	path := fmt.Sprintf("/rest/v1/orders?select=*,order_items(*)&id=eq.%s", url.QueryEscape(orderID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.config.URL+path, bytes.NewReader(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", a.config.AnonKey)
	req.Header.Set("Authorization", "Bearer "+a.config.AnonKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("supabase API returned status: %d", resp.StatusCode)
	}

	var rows []supabaseOrder
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	order := rows[0].toDomain()
	return &order, nil
}

// internal structs for mapping

// supabaseOrder represents a row of the orders table with its embedded
// order_items, as returned by PostgREST.
type supabaseOrder struct {
	ID              string              `json:"id"`
	Status          string              `json:"status"`
	Total           float64             `json:"total"`
	CustomerName    string              `json:"customer_name"`
	CustomerEmail   string              `json:"customer_email"`
	CustomerPhone   string              `json:"customer_phone"`
	DeliveryAddress string              `json:"delivery_address"`
	DeliveryCity    string              `json:"delivery_city"`
	Notes           string              `json:"notes"`
	CreatedAt       string              `json:"created_at"`
	Items           []supabaseOrderItem `json:"order_items"`
}

type supabaseOrderItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

func (row supabaseOrder) toDomain() domain.Order {
	items := make([]domain.OrderItem, 0, len(row.Items))
	for _, item := range row.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return domain.Order{
		ID:           row.ID,
		Status:       row.Status,
		Total:        row.Total,
		CustomerName: row.CustomerName,
		Email:        row.CustomerEmail,
		Phone:        row.CustomerPhone,
		Address:      row.DeliveryAddress,
		City:         row.DeliveryCity,
		Notes:        row.Notes,
		CreatedAt:    parseTimestamp(row.CreatedAt),
		Items:        items,
	}
}

// parseTimestamp handles the timestamp formats PostgREST emits, with and
// without timezone.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		parsed, err = time.Parse("2006-01-02T15:04:05.999999", s)
	}
	if err != nil {
		logger.Get().Warn("Failed to parse date", zap.String("date", s), zap.Error(err))
		return time.Time{}
	}
	return parsed
}
