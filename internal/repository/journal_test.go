package repository

import (
	"context"
	"testing"

	"github.com/jardelbordignon/gorestaurant-details-service/internal/models"
)

func TestNopJournal(t *testing.T) {
	ctx := context.Background()
	journal := NopJournal{}

	payload := &models.OrderPayload{ProductID: 1, Name: "Ao molho", Price: 26.0}

	if err := journal.Record(ctx, "sess-1", payload); err != nil {
		t.Errorf("Expected nop record to succeed, got %v", err)
	}

	entries, err := journal.BySession(ctx, "sess-1")
	if err != nil {
		t.Errorf("Expected nop lookup to succeed, got %v", err)
	}
	if entries != nil {
		t.Errorf("Expected no entries, got %+v", entries)
	}
}

func TestPostgresOrderJournal_Record(t *testing.T) {
	t.Skip("Integration test - requires database")
}

func TestPostgresOrderJournal_BySession(t *testing.T) {
	t.Skip("Integration test - requires database")
}
