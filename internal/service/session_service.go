package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/jardelbordignon/gorestaurant-details-service/internal/clients"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/config"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/events"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/metrics"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/models"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/repository"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/session"
)

// SessionService orchestrates detail sessions: loading the food,
// resolving and toggling the favorite flag, and submitting the composed
// order to the remote store.
type SessionService struct {
	store          clients.StoreClient
	cache          repository.FoodCache
	journal        repository.OrderJournal
	sessions       *session.Store
	eventPublisher events.EventPublisher
	favoritePolicy FavoritePolicy
	config         *config.Config
	logger         *zap.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(
	store clients.StoreClient,
	cache repository.FoodCache,
	journal repository.OrderJournal,
	sessions *session.Store,
	eventPublisher events.EventPublisher,
	favoritePolicy FavoritePolicy,
	cfg *config.Config,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		store:          store,
		cache:          cache,
		journal:        journal,
		sessions:       sessions,
		eventPublisher: eventPublisher,
		favoritePolicy: favoritePolicy,
		config:         cfg,
		logger:         logger,
	}
}

// OpenSession loads the food and starts a detail session for it. A food
// the store does not know is fatal (ErrFoodNotFound); the favorite flag
// resolves asynchronously after the load.
func (s *SessionService) OpenSession(ctx context.Context, foodID int64) (*session.Session, error) {
	s.logger.Info("Opening session", zap.Int64("food_id", foodID))

	food, err := s.loadFood(ctx, foodID)
	if err != nil {
		return nil, err
	}
	if food == nil {
		return nil, ErrFoodNotFound
	}

	food.FormattedPrice = FormatValue(food.Price)

	sess := session.New(*food)
	s.sessions.Put(sess)
	metrics.SessionsOpened.Inc()

	// The lookup is keyed on the loaded food, so it only starts now.
	go s.ResolveFavorite(context.Background(), sess)

	s.logger.Info("Session opened",
		zap.String("session_id", sess.ID()),
		zap.Int64("food_id", food.ID),
		zap.Int("extras", len(food.Extras)),
	)

	return sess, nil
}

func (s *SessionService) loadFood(ctx context.Context, foodID int64) (*models.Food, error) {
	if s.config.Features.EnableFoodCaching {
		if food, err := s.cache.Get(ctx, foodID); err == nil && food != nil {
			return food, nil
		}
	}

	food, err := s.store.GetFood(ctx, foodID)
	if err != nil {
		s.logger.Error("Failed to load food",
			zap.Int64("food_id", foodID),
			zap.Error(err),
		)
		return nil, err
	}
	if food == nil {
		return nil, nil
	}

	if s.config.Features.EnableFoodCaching {
		if err := s.cache.Set(ctx, food); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to cache food",
				zap.Int64("food_id", foodID),
				zap.Error(err),
			)
		}
	}

	return food, nil
}

// ResolveFavorite queries the remote favorites collection and applies
// the answer to the session. Every failure, "no record" included, is
// absorbed into "not favorite"; nothing surfaces to the user.
func (s *SessionService) ResolveFavorite(ctx context.Context, sess *session.Session) {
	food := sess.Food()

	favorite, err := s.store.GetFavorite(ctx, food.ID)
	if err != nil {
		s.logger.Debug("Favorite lookup failed, assuming not favorite",
			zap.Int64("food_id", food.ID),
			zap.Error(err),
		)
		sess.ResolveFavorite(false)
		return
	}

	sess.ResolveFavorite(favorite != nil)
}

// GetSession returns a live session by id, or nil.
func (s *SessionService) GetSession(id string) *session.Session {
	return s.sessions.Get(id)
}

// ToggleFavorite flips the session's favorite flag through the
// configured policy and reports the resulting flag.
func (s *SessionService) ToggleFavorite(ctx context.Context, sess *session.Session) (bool, error) {
	if sess.Closed() {
		return false, ErrSessionClosed
	}

	food := sess.Food()

	favorite, err := s.favoritePolicy.Toggle(ctx, s.store, sess)
	if err != nil {
		return favorite, err
	}

	action := "removed"
	if favorite {
		action = "added"
	}
	metrics.FavoriteToggles.WithLabelValues(action).Inc()

	if s.config.Features.EnableOrderEvents {
		if err := s.eventPublisher.PublishFavoriteToggled(ctx, sess.ID(), food.ID, favorite); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to publish favorite event",
				zap.String("session_id", sess.ID()),
				zap.Error(err),
			)
		}
	}

	return favorite, nil
}

// Total recomputes the order total from the session's current state.
func (s *SessionService) Total(sess *session.Session) float64 {
	return ComputeTotal(sess.Food().Price, sess.Extras(), sess.FoodQuantity())
}

// SubmitOrder assembles the payload from live session state and sends
// it to the remote store. A rejection propagates unchanged and leaves
// the confirmation flag untouched; on success the session confirms
// exactly once.
func (s *SessionService) SubmitOrder(ctx context.Context, sess *session.Session) (*models.OrderPayload, error) {
	if sess.Closed() {
		return nil, ErrSessionClosed
	}

	food := sess.Food()
	total := s.Total(sess)
	payload := BuildOrderPayload(food, sess.Extras(), total)

	s.logger.Info("Submitting order",
		zap.String("session_id", sess.ID()),
		zap.Int64("product_id", payload.ProductID),
		zap.Float64("total", total),
		zap.Int("extras", len(payload.Extras)),
	)

	if err := s.store.CreateOrder(ctx, payload); err != nil {
		metrics.OrdersSubmitted.WithLabelValues("failed").Inc()
		return nil, err
	}

	sess.Confirm()
	metrics.OrdersSubmitted.WithLabelValues("confirmed").Inc()

	if s.config.Features.EnableOrderJournal {
		if err := s.journal.Record(ctx, sess.ID(), payload); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to journal order",
				zap.String("session_id", sess.ID()),
				zap.Error(err),
			)
		}
	}

	if s.config.Features.EnableOrderEvents {
		if err := s.eventPublisher.PublishOrderConfirmed(ctx, sess.ID(), payload); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to publish order event",
				zap.String("session_id", sess.ID()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Order confirmed",
		zap.String("session_id", sess.ID()),
		zap.Int64("product_id", payload.ProductID),
	)

	return payload, nil
}

// CloseSession tears a session down and unregisters it. In-flight
// results that land afterwards are discarded.
func (s *SessionService) CloseSession(sess *session.Session) {
	sess.Close()
	s.sessions.Delete(sess.ID())

	s.logger.Debug("Session closed", zap.String("session_id", sess.ID()))
}
