package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jardelbordignon/gorestaurant-details-service/internal/clients"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/config"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/events"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/models"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/repository"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/session"
)

func testFood() *models.Food {
	return &models.Food{
		ID:           1,
		Name:         "Ao molho",
		Description:  "Macarrão ao molho branco",
		Price:        10.0,
		Category:     1,
		ImageURL:     "http://example.com/ao-molho.jpg",
		ThumbnailURL: "http://example.com/ao-molho-thumb.jpg",
		Extras: []models.Extra{
			{ID: 4, Name: "Bacon", Value: 1.5},
			{ID: 5, Name: "Frango", Value: 2.0},
		},
	}
}

type serviceFixture struct {
	svc      *SessionService
	store    *clients.MockStoreClient
	events   *events.MockEventPublisher
	sessions *session.Store
}

func newFixture(strict bool) *serviceFixture {
	logger := zap.NewNop()
	store := clients.NewMockStoreClient()
	publisher := events.NewMockEventPublisher()
	sessions := session.NewStore()

	cfg := &config.Config{
		Features: config.FeatureFlags{
			EnableOrderEvents:  true,
			StrictFavoriteSync: strict,
		},
	}

	var policy FavoritePolicy
	if strict {
		policy = NewStrictFavoritePolicy(logger)
	} else {
		policy = NewOptimisticFavoritePolicy(logger)
	}

	svc := NewSessionService(
		store,
		repository.NewMemoryFoodCache(),
		repository.NopJournal{},
		sessions,
		publisher,
		policy,
		cfg,
		logger,
	)

	return &serviceFixture{svc: svc, store: store, events: publisher, sessions: sessions}
}

func waitResolved(t *testing.T, sess *session.Session) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if sess.FavoriteResolved() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("favorite resolution never finished")
}

func TestOpenSessionNotFound(t *testing.T) {
	f := newFixture(false)

	_, err := f.svc.OpenSession(context.Background(), 42)
	if !errors.Is(err, ErrFoodNotFound) {
		t.Errorf("Expected ErrFoodNotFound, got %v", err)
	}
}

func TestOpenSessionLoadsFood(t *testing.T) {
	f := newFixture(false)
	f.store.Foods[1] = testFood()

	sess, err := f.svc.OpenSession(context.Background(), 1)
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}

	food := sess.Food()
	if food.FormattedPrice != "R$ 10,00" {
		t.Errorf("Expected formatted price 'R$ 10,00', got %q", food.FormattedPrice)
	}

	extras := sess.Extras()
	if len(extras) != 2 || extras[0].Quantity != 0 || extras[1].Quantity != 0 {
		t.Errorf("Expected 2 extras at quantity 0, got %+v", extras)
	}

	if f.sessions.Get(sess.ID()) != sess {
		t.Error("Expected session registered in the store")
	}

	waitResolved(t, sess)
	if sess.Favorite() {
		t.Error("Expected not favorite with no remote record")
	}
}

func TestOpenSessionResolvesExistingFavorite(t *testing.T) {
	f := newFixture(false)
	f.store.Foods[1] = testFood()
	f.store.Favorites[1] = testFood()

	sess, err := f.svc.OpenSession(context.Background(), 1)
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}

	waitResolved(t, sess)
	if !sess.Favorite() {
		t.Error("Expected favorite flag set from remote record")
	}
}

func TestResolveFavoriteAbsorbsFailures(t *testing.T) {
	tests := []struct {
		name      string
		lookupErr error
	}{
		{"no record", nil},
		{"lookup error", errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(false)
			f.store.FavoriteLookupErr = tt.lookupErr

			sess := session.New(*testFood())
			f.svc.ResolveFavorite(context.Background(), sess)

			if !sess.FavoriteResolved() {
				t.Error("Expected resolution to finish")
			}
			if sess.Favorite() {
				t.Error("Expected not favorite")
			}
		})
	}
}

func TestToggleFavoriteTwice(t *testing.T) {
	f := newFixture(false)

	sess := session.New(*testFood())
	f.sessions.Put(sess)

	favorite, err := f.svc.ToggleFavorite(context.Background(), sess)
	if err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if !favorite {
		t.Error("Expected favorite after first toggle")
	}

	favorite, err = f.svc.ToggleFavorite(context.Background(), sess)
	if err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if favorite {
		t.Error("Expected flag back to initial value after second toggle")
	}

	calls := f.store.CallLog()
	if len(calls) != 2 || calls[0] != "CreateFavorite:1" || calls[1] != "DeleteFavorite:1" {
		t.Errorf("Expected one create then one delete, got %v", calls)
	}

	if len(f.events.Events) != 2 ||
		f.events.Events[0].Type != events.EventTypeFavoriteAdded ||
		f.events.Events[1].Type != events.EventTypeFavoriteRemoved {
		t.Errorf("Expected added then removed events, got %+v", f.events.Events)
	}
}

func TestToggleFavoriteOptimisticKeepsFlipOnWriteFailure(t *testing.T) {
	f := newFixture(false)
	f.store.FavoriteWriteErr = errors.New("store unavailable")

	sess := session.New(*testFood())
	f.sessions.Put(sess)

	favorite, err := f.svc.ToggleFavorite(context.Background(), sess)
	if err != nil {
		t.Fatalf("Expected write failure absorbed, got %v", err)
	}
	if !favorite || !sess.Favorite() {
		t.Error("Expected optimistic flip despite write failure")
	}
}

func TestToggleFavoriteStrictLeavesFlagOnWriteFailure(t *testing.T) {
	f := newFixture(true)
	f.store.FavoriteWriteErr = errors.New("store unavailable")

	sess := session.New(*testFood())
	f.sessions.Put(sess)

	_, err := f.svc.ToggleFavorite(context.Background(), sess)
	if err == nil {
		t.Fatal("Expected error from strict policy")
	}
	if sess.Favorite() {
		t.Error("Expected flag unchanged under strict policy")
	}
}

func TestSubmitOrder(t *testing.T) {
	f := newFixture(false)
	f.store.Foods[1] = testFood()

	sess, err := f.svc.OpenSession(context.Background(), 1)
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}

	sess.IncrementExtra(4)
	sess.IncrementExtra(4)
	sess.IncrementFoodQuantity()

	if total := f.svc.Total(sess); total != 26.0 {
		t.Fatalf("Expected total 26.0, got %v", total)
	}

	payload, err := f.svc.SubmitOrder(context.Background(), sess)
	if err != nil {
		t.Fatalf("SubmitOrder failed: %v", err)
	}

	if payload.Price != 26.0 {
		t.Errorf("Expected payload price 26.0, got %v", payload.Price)
	}
	if len(payload.Extras) != 1 || payload.Extras[0].ID != 4 || payload.Extras[0].Quantity != 2 {
		t.Errorf("Expected only bacon at quantity 2, got %+v", payload.Extras)
	}

	if !sess.Confirmed() {
		t.Error("Expected order confirmed")
	}

	orders := f.store.RecordedOrders()
	if len(orders) != 1 {
		t.Fatalf("Expected 1 order at the store, got %d", len(orders))
	}

	// A second submit never resets confirmation.
	if _, err := f.svc.SubmitOrder(context.Background(), sess); err != nil {
		t.Fatalf("Second SubmitOrder failed: %v", err)
	}
	if !sess.Confirmed() {
		t.Error("Expected session to stay confirmed")
	}
}

func TestSubmitOrderFailureLeavesUnconfirmed(t *testing.T) {
	f := newFixture(false)
	f.store.OrderErr = errors.New("store rejected the order")

	sess := session.New(*testFood())
	f.sessions.Put(sess)

	_, err := f.svc.SubmitOrder(context.Background(), sess)
	if err == nil {
		t.Fatal("Expected submission error to propagate")
	}
	if sess.Confirmed() {
		t.Error("Expected session unconfirmed after failed submit")
	}
	if len(f.events.Events) != 0 {
		t.Errorf("Expected no events, got %+v", f.events.Events)
	}
}

func TestSubmitOrderOnClosedSession(t *testing.T) {
	f := newFixture(false)

	sess := session.New(*testFood())
	f.sessions.Put(sess)
	f.svc.CloseSession(sess)

	_, err := f.svc.SubmitOrder(context.Background(), sess)
	if !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Expected ErrSessionClosed, got %v", err)
	}
}

func TestCloseSessionDiscardsLateResolution(t *testing.T) {
	f := newFixture(false)
	f.store.Favorites[1] = testFood()

	sess := session.New(*testFood())
	f.sessions.Put(sess)
	f.svc.CloseSession(sess)

	// The lookup lands after teardown; the result is dropped.
	f.svc.ResolveFavorite(context.Background(), sess)

	if sess.Favorite() || sess.FavoriteResolved() {
		t.Error("Expected late resolution discarded on closed session")
	}
	if f.sessions.Get(sess.ID()) != nil {
		t.Error("Expected session removed from the store")
	}
}
