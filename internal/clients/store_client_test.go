package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jardelbordignon/gorestaurant-details-service/internal/config"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/models"
)

func newTestClient(baseURL string) *HTTPStoreClient {
	return NewHTTPStoreClient(config.ServiceConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestGetFood(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/foods/1" {
			t.Errorf("Expected path /foods/1, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.Food{
			ID:    1,
			Name:  "Ao molho",
			Price: 19.9,
			Extras: []models.Extra{
				{ID: 4, Name: "Bacon", Value: 1.5},
			},
		})
	}))
	defer srv.Close()

	food, err := newTestClient(srv.URL).GetFood(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetFood failed: %v", err)
	}
	if food == nil || food.Name != "Ao molho" || len(food.Extras) != 1 {
		t.Errorf("Unexpected food: %+v", food)
	}
}

func TestGetFoodNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	food, err := newTestClient(srv.URL).GetFood(context.Background(), 42)
	if err != nil {
		t.Fatalf("Expected nil error for missing food, got %v", err)
	}
	if food != nil {
		t.Errorf("Expected nil food, got %+v", food)
	}
}

func TestGetFoodServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetFood(context.Background(), 1)
	if err == nil {
		t.Fatal("Expected error for status 500")
	}
}

func TestCreateFavoriteSendsFullSnapshot(t *testing.T) {
	var received models.Food

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/favorites" {
			t.Errorf("Expected POST /favorites, got %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	food := &models.Food{ID: 1, Name: "Ao molho", Description: "Macarrão", Price: 19.9}
	if err := newTestClient(srv.URL).CreateFavorite(context.Background(), food); err != nil {
		t.Fatalf("CreateFavorite failed: %v", err)
	}

	if received.ID != 1 || received.Description != "Macarrão" {
		t.Errorf("Expected full food snapshot, got %+v", received)
	}
}

func TestDeleteFavorite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/favorites/1" {
			t.Errorf("Expected DELETE /favorites/1, got %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL).DeleteFavorite(context.Background(), 1); err != nil {
		t.Fatalf("DeleteFavorite failed: %v", err)
	}
}

func TestCreateOrderWireShape(t *testing.T) {
	var received map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("Expected POST /orders, got %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	payload := &models.OrderPayload{
		ProductID:    1,
		Name:         "Ao molho",
		Price:        26.0,
		Category:     1,
		ThumbnailURL: "http://example.com/thumb.jpg",
		Extras:       []models.Extra{{ID: 4, Name: "Bacon", Value: 1.5, Quantity: 2}},
	}

	if err := newTestClient(srv.URL).CreateOrder(context.Background(), payload); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if received["product_id"] != float64(1) {
		t.Errorf("Expected product_id 1, got %v", received["product_id"])
	}
	if received["price"] != 26.0 {
		t.Errorf("Expected price to carry the total, got %v", received["price"])
	}
	if _, ok := received["extras"].([]interface{}); !ok {
		t.Errorf("Expected extras list, got %v", received["extras"])
	}
}

func TestCreateOrderRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).CreateOrder(context.Background(), &models.OrderPayload{ProductID: 1})
	if err == nil {
		t.Fatal("Expected error for rejected order")
	}
}
