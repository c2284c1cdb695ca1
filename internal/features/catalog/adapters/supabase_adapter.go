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
	"techstore-api/internal/features/catalog/domain"

	"go.uber.org/zap"
)

// SupabaseAdapter implements the ProductProvider interface using the
// Supabase PostgREST API over the products table.
type SupabaseAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the Supabase connection details.
	config config.SupabaseConfig
}

// NewSupabaseAdapter creates a new instance of SupabaseAdapter.
func NewSupabaseAdapter(cfg config.SupabaseConfig) *SupabaseAdapter {
	return &SupabaseAdapter{
		client: httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

// newRequest builds a request against the REST API with auth headers set.
func (a *SupabaseAdapter) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, a.config.URL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", a.config.AnonKey)
	req.Header.Set("Authorization", "Bearer "+a.config.AnonKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// List fetches all non-deleted products, newest first.
func (a *SupabaseAdapter) List(ctx context.Context) ([]domain.Product, error) {
	path := "/rest/v1/products?select=*&is_deleted=eq.false&order=created_at.desc"

	req, err := a.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("supabase API returned status: %d", resp.StatusCode)
	}

	var rows []supabaseProduct
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toDomain())
	}
	return products, nil
}

// Get fetches one product by ID. Returns nil when no row matches.
func (a *SupabaseAdapter) Get(ctx context.Context, id string) (*domain.Product, error) {
	path := fmt.Sprintf("/rest/v1/products?select=*&id=eq.%s&is_deleted=eq.false", url.QueryEscape(id))

	req, err := a.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("supabase API returned status: %d", resp.StatusCode)
	}

	var rows []supabaseProduct
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	product := rows[0].toDomain()
	return &product, nil
}

// Create inserts a product row and returns the stored representation.
func (a *SupabaseAdapter) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	payload, err := json.Marshal([]supabaseProductWrite{fromDomain(p)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product: %w", err)
	}

	req, err := a.newRequest(ctx, http.MethodPost, "/rest/v1/products", payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("supabase API returned status: %d", resp.StatusCode)
	}

	var rows []supabaseProduct
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("supabase returned no representation for created product")
	}

	product := rows[0].toDomain()
	return &product, nil
}

// Update overwrites the mutable fields of a product row.
func (a *SupabaseAdapter) Update(ctx context.Context, p domain.Product) error {
	payload, err := json.Marshal(fromDomain(p))
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	path := fmt.Sprintf("/rest/v1/products?id=eq.%s", url.QueryEscape(p.ID))
	req, err := a.newRequest(ctx, http.MethodPatch, path, payload)
	if err != nil {
		return err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("supabase API returned status: %d", resp.StatusCode)
	}
	return nil
}

// Delete soft-deletes a product by flipping is_deleted. Order history rows
// keep a valid product reference this way.
func (a *SupabaseAdapter) Delete(ctx context.Context, id string) error {
	payload := []byte(`{"is_deleted":true}`)

	path := fmt.Sprintf("/rest/v1/products?id=eq.%s", url.QueryEscape(id))
	req, err := a.newRequest(ctx, http.MethodPatch, path, payload)
	if err != nil {
		return err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("supabase API returned status: %d", resp.StatusCode)
	}
	return nil
}

// HealthCheck verifies that the REST API is reachable and the key is valid.
func (a *SupabaseAdapter) HealthCheck(ctx context.Context) error {
	req, err := a.newRequest(ctx, http.MethodGet, "/rest/v1/products?select=id&limit=1", nil)
	if err != nil {
		return fmt.Errorf("health check failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// internal structs for mapping

// supabaseProduct represents a row of the products table as returned by
// PostgREST.
type supabaseProduct struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"image_url"`
	Stock       int      `json:"stock"`
	Discount    *float64 `json:"discount"`
	IsDeleted   bool     `json:"is_deleted"`
	CreatedAt   sbTime   `json:"created_at"`
}

// supabaseProductWrite is the insert/update payload. It omits server-owned
// columns (id, created_at).
type supabaseProductWrite struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"image_url"`
	Stock       int      `json:"stock"`
	Discount    *float64 `json:"discount,omitempty"`
}

func (row supabaseProduct) toDomain() domain.Product {
	var discount float64
	if row.Discount != nil {
		discount = *row.Discount
	}
	return domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		Category:    row.Category,
		ImageURL:    row.ImageURL,
		Stock:       row.Stock,
		Discount:    discount,
		CreatedAt:   time.Time(row.CreatedAt),
	}
}

func fromDomain(p domain.Product) supabaseProductWrite {
	w := supabaseProductWrite{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
	}
	if p.Discount > 0 {
		w.Discount = &p.Discount
	}
	return w
}

// sbTime handles the timestamp formats PostgREST emits.
type sbTime time.Time

// UnmarshalJSON parses Supabase timestamps, with and without timezone.
func (t *sbTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		*t = sbTime(time.Time{})
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		parsed, err = time.Parse("2006-01-02T15:04:05.999999", s)
	}
	if err != nil {
		logger.Get().Warn("Failed to parse date", zap.String("date", s), zap.Error(err))
		return nil
	}
	*t = sbTime(parsed)
	return nil
}
