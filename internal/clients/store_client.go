package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/jardelbordignon/gorestaurant-details-service/internal/config"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/models"
)

// StoreClient covers the remote store operations the detail screen
// consumes: food lookup, the favorites collection, and order creation.
type StoreClient interface {
	GetFood(ctx context.Context, id int64) (*models.Food, error)
	GetFavorite(ctx context.Context, id int64) (*models.Food, error)
	CreateFavorite(ctx context.Context, food *models.Food) error
	DeleteFavorite(ctx context.Context, id int64) error
	CreateOrder(ctx context.Context, payload *models.OrderPayload) error
}

// Ensure HTTPStoreClient implements StoreClient
var _ StoreClient = (*HTTPStoreClient)(nil)

// HTTPStoreClient implements StoreClient against the store's REST API.
type HTTPStoreClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPStoreClient creates a new HTTP-based store client.
func NewHTTPStoreClient(cfg config.ServiceConfig, logger *zap.Logger) *HTTPStoreClient {
	return &HTTPStoreClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// GetFood retrieves a food with its extras. A missing food returns
// (nil, nil); the caller decides whether that is fatal.
func (c *HTTPStoreClient) GetFood(ctx context.Context, id int64) (*models.Food, error) {
	c.logger.Debug("Fetching food", zap.Int64("food_id", id))

	url := fmt.Sprintf("%s/foods/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to fetch food",
			zap.Int64("food_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store service returned status %d", resp.StatusCode)
	}

	var food models.Food
	if err := json.NewDecoder(resp.Body).Decode(&food); err != nil {
		return nil, err
	}

	c.logger.Debug("Food fetched",
		zap.Int64("food_id", food.ID),
		zap.Int("extras", len(food.Extras)),
	)

	return &food, nil
}

// GetFavorite looks up the favorite record for a food. Absent records
// return (nil, nil).
func (c *HTTPStoreClient) GetFavorite(ctx context.Context, id int64) (*models.Food, error) {
	url := fmt.Sprintf("%s/favorites/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store service returned status %d", resp.StatusCode)
	}

	var favorite models.Food
	if err := json.NewDecoder(resp.Body).Decode(&favorite); err != nil {
		return nil, err
	}

	return &favorite, nil
}

// CreateFavorite stores the full food snapshot as a favorite record.
func (c *HTTPStoreClient) CreateFavorite(ctx context.Context, food *models.Food) error {
	c.logger.Debug("Creating favorite", zap.Int64("food_id", food.ID))

	body, err := json.Marshal(food)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/favorites", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Favorite create request failed",
			zap.Int64("food_id", food.ID),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("store service returned status %d", resp.StatusCode)
	}

	return nil
}

// DeleteFavorite removes the favorite record for a food.
func (c *HTTPStoreClient) DeleteFavorite(ctx context.Context, id int64) error {
	c.logger.Debug("Deleting favorite", zap.Int64("food_id", id))

	url := fmt.Sprintf("%s/favorites/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Favorite delete request failed",
			zap.Int64("food_id", id),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("store service returned status %d", resp.StatusCode)
	}

	return nil
}

// CreateOrder persists a composed order in the remote store.
func (c *HTTPStoreClient) CreateOrder(ctx context.Context, payload *models.OrderPayload) error {
	c.logger.Debug("Creating order",
		zap.Int64("product_id", payload.ProductID),
		zap.Float64("total", payload.Price),
	)

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/orders", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Order request failed",
			zap.Int64("product_id", payload.ProductID),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Error("Order request returned error",
			zap.Int64("product_id", payload.ProductID),
			zap.Int("status_code", resp.StatusCode),
		)
		return fmt.Errorf("store service returned status %d", resp.StatusCode)
	}

	c.logger.Info("Order created",
		zap.Int64("product_id", payload.ProductID),
		zap.Float64("total", payload.Price),
	)

	return nil
}

func (c *HTTPStoreClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// MockStoreClient is a mock implementation for testing. It records the
// calls it receives in order and is safe for the asynchronous favorite
// resolution to hit concurrently.
type MockStoreClient struct {
	mu        sync.Mutex
	Foods     map[int64]*models.Food
	Favorites map[int64]*models.Food
	Orders    []*models.OrderPayload
	Calls     []string

	FavoriteLookupErr error
	FavoriteWriteErr  error
	OrderErr          error
}

// NewMockStoreClient creates a mock store client.
func NewMockStoreClient() *MockStoreClient {
	return &MockStoreClient{
		Foods:     make(map[int64]*models.Food),
		Favorites: make(map[int64]*models.Food),
	}
}

func (m *MockStoreClient) GetFood(ctx context.Context, id int64) (*models.Food, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, fmt.Sprintf("GetFood:%d", id))
	if food, ok := m.Foods[id]; ok {
		copied := *food
		return &copied, nil
	}
	return nil, nil
}

func (m *MockStoreClient) GetFavorite(ctx context.Context, id int64) (*models.Food, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, fmt.Sprintf("GetFavorite:%d", id))
	if m.FavoriteLookupErr != nil {
		return nil, m.FavoriteLookupErr
	}
	if fav, ok := m.Favorites[id]; ok {
		return fav, nil
	}
	return nil, nil
}

func (m *MockStoreClient) CreateFavorite(ctx context.Context, food *models.Food) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, fmt.Sprintf("CreateFavorite:%d", food.ID))
	if m.FavoriteWriteErr != nil {
		return m.FavoriteWriteErr
	}
	m.Favorites[food.ID] = food
	return nil
}

func (m *MockStoreClient) DeleteFavorite(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, fmt.Sprintf("DeleteFavorite:%d", id))
	if m.FavoriteWriteErr != nil {
		return m.FavoriteWriteErr
	}
	delete(m.Favorites, id)
	return nil
}

func (m *MockStoreClient) CreateOrder(ctx context.Context, payload *models.OrderPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, fmt.Sprintf("CreateOrder:%d", payload.ProductID))
	if m.OrderErr != nil {
		return m.OrderErr
	}
	m.Orders = append(m.Orders, payload)
	return nil
}

// CallLog returns a snapshot of the recorded calls.
func (m *MockStoreClient) CallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]string, len(m.Calls))
	copy(calls, m.Calls)
	return calls
}

// RecordedOrders returns a snapshot of the submitted payloads.
func (m *MockStoreClient) RecordedOrders() []*models.OrderPayload {
	m.mu.Lock()
	defer m.mu.Unlock()

	orders := make([]*models.OrderPayload, len(m.Orders))
	copy(orders, m.Orders)
	return orders
}
