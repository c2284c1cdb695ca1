package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"techstore-api/internal/core/config"
	"techstore-api/internal/core/httpclient"
	"techstore-api/internal/features/checkout/domain"
)

// SupabaseOrderStore implements the OrderStore interface using the
// Supabase PostgREST API over the orders and order_items tables.
type SupabaseOrderStore struct {
	client *http.Client
	config config.SupabaseConfig
}

// NewSupabaseOrderStore creates a new instance of SupabaseOrderStore.
func NewSupabaseOrderStore(cfg config.SupabaseConfig) *SupabaseOrderStore {
	return &SupabaseOrderStore{
		client: httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

func (s *SupabaseOrderStore) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.config.URL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", s.config.AnonKey)
	req.Header.Set("Authorization", "Bearer "+s.config.AnonKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// orderRow is the insert payload for the orders table.
type orderRow struct {
	UserID          *string `json:"user_id"`
	ClientReference string  `json:"client_reference"`
	Status          string  `json:"status"`
	Total           float64 `json:"total"`
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerPhone   string  `json:"customer_phone"`
	DeliveryAddress string  `json:"delivery_address"`
	DeliveryCity    string  `json:"delivery_city"`
	Notes           string  `json:"notes,omitempty"`
}

// orderItemRow is the insert payload for the order_items table.
type orderItemRow struct {
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// InsertOrder persists the order header. It asks PostgREST for the stored
// representation so the server-generated id comes back in one round trip.
func (s *SupabaseOrderStore) InsertOrder(ctx context.Context, draft domain.OrderDraft) (string, error) {
	row := orderRow{
		ClientReference: draft.Reference,
		Status:          domain.StatusPending,
		Total:           draft.Totals.Total,
		CustomerName:    draft.Form.Name,
		CustomerEmail:   draft.Form.Email,
		CustomerPhone:   draft.Form.Phone,
		DeliveryAddress: draft.Form.Address,
		DeliveryCity:    draft.Form.City,
		Notes:           draft.Form.Notes,
	}
	if draft.UserID != "" {
		row.UserID = &draft.UserID
	}

	payload, err := json.Marshal([]orderRow{row})
	if err != nil {
		return "", fmt.Errorf("failed to marshal order: %w", err)
	}

	req, err := s.newRequest(ctx, http.MethodPost, "/rest/v1/orders", payload)
	if err != nil {
		return "", err
	}
	req.Header.Set("Prefer", "return=representation")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("supabase API returned status: %d", resp.StatusCode)
	}

	var rows []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("supabase returned no representation for created order")
	}

	return rows[0].ID, nil
}

// InsertItems persists the order lines in a single batch insert.
func (s *SupabaseOrderStore) InsertItems(ctx context.Context, orderID string, items []domain.DraftItem) error {
	rows := make([]orderItemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, orderItemRow{
			OrderID:   orderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	req, err := s.newRequest(ctx, http.MethodPost, "/rest/v1/order_items", payload)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("supabase API returned status: %d", resp.StatusCode)
	}
	return nil
}

// DecrementStock calls the update_stock RPC for one product.
func (s *SupabaseOrderStore) DecrementStock(ctx context.Context, productID string, quantity int) error {
	payload, err := json.Marshal(map[string]any{
		"product_id_input": productID,
		"quantity_input":   quantity,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal rpc payload: %w", err)
	}

	req, err := s.newRequest(ctx, http.MethodPost, "/rest/v1/rpc/update_stock", payload)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("supabase API returned status: %d", resp.StatusCode)
	}
	return nil
}
