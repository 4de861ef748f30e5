package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/jardelbordignon/gorestaurant-details-service/internal/clients"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/session"
)

// FavoritePolicy decides how the local favorite flag relates to the
// remote favorites collection when the user toggles it.
type FavoritePolicy interface {
	// Toggle issues the remote create or delete for the session's food
	// and returns the resulting local flag.
	Toggle(ctx context.Context, store clients.StoreClient, sess *session.Session) (bool, error)
}

// OptimisticFavoritePolicy flips the local flag no matter what the
// remote write does. Failures are logged and absorbed, so local and
// remote state can diverge silently.
type OptimisticFavoritePolicy struct {
	logger *zap.Logger
}

// NewOptimisticFavoritePolicy creates the default favorite policy.
func NewOptimisticFavoritePolicy(logger *zap.Logger) *OptimisticFavoritePolicy {
	return &OptimisticFavoritePolicy{logger: logger}
}

func (p *OptimisticFavoritePolicy) Toggle(ctx context.Context, store clients.StoreClient, sess *session.Session) (bool, error) {
	food := sess.Food()

	var err error
	if sess.Favorite() {
		err = store.DeleteFavorite(ctx, food.ID)
	} else {
		err = store.CreateFavorite(ctx, &food)
	}

	if err != nil {
		p.logger.Warn("Favorite write failed, keeping optimistic flip",
			zap.Int64("food_id", food.ID),
			zap.Error(err),
		)
	}

	next := !sess.Favorite()
	sess.SetFavorite(next)
	return next, nil
}

// StrictFavoritePolicy only flips the local flag when the remote write
// succeeded, so local state never drifts from the store.
type StrictFavoritePolicy struct {
	logger *zap.Logger
}

// NewStrictFavoritePolicy creates the consistency-preserving policy.
func NewStrictFavoritePolicy(logger *zap.Logger) *StrictFavoritePolicy {
	return &StrictFavoritePolicy{logger: logger}
}

func (p *StrictFavoritePolicy) Toggle(ctx context.Context, store clients.StoreClient, sess *session.Session) (bool, error) {
	food := sess.Food()

	var err error
	if sess.Favorite() {
		err = store.DeleteFavorite(ctx, food.ID)
	} else {
		err = store.CreateFavorite(ctx, &food)
	}

	if err != nil {
		p.logger.Error("Favorite write failed, flag unchanged",
			zap.Int64("food_id", food.ID),
			zap.Error(err),
		)
		return sess.Favorite(), err
	}

	next := !sess.Favorite()
	sess.SetFavorite(next)
	return next, nil
}
