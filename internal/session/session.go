package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jardelbordignon/gorestaurant-details-service/internal/models"
)

// Session is the mutable state behind one detail screen: the loaded
// food, its extras registry, the base quantity, and the favorite and
// confirmation flags. Every mutation goes through a method under one
// mutex, so interleaved continuations observe atomic state changes.
type Session struct {
	mu sync.Mutex

	id           string
	food         models.Food
	extras       []models.Extra
	foodQuantity int

	isFavorite       bool
	favoriteResolved bool
	confirmed        bool
	closed           bool
}

// New creates a session for a loaded food. Extras start at quantity
// zero, preserving the store's order.
func New(food models.Food) *Session {
	extras := make([]models.Extra, len(food.Extras))
	for i, extra := range food.Extras {
		extra.Quantity = 0
		extras[i] = extra
	}

	return &Session{
		id:           uuid.NewString(),
		food:         food,
		extras:       extras,
		foodQuantity: 1,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Food returns a copy of the loaded food.
func (s *Session) Food() models.Food {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.food
}

// Extras returns a copy of the extras registry in store order.
func (s *Session) Extras() []models.Extra {
	s.mu.Lock()
	defer s.mu.Unlock()

	extras := make([]models.Extra, len(s.extras))
	copy(extras, s.extras)
	return extras
}

// FoodQuantity returns the base quantity of the food.
func (s *Session) FoodQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.foodQuantity
}

// IncrementExtra raises the quantity of the extra with the given id.
// Unknown ids are ignored.
func (s *Session) IncrementExtra(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	for i := range s.extras {
		if s.extras[i].ID == id {
			s.extras[i].Quantity++
			return
		}
	}
}

// DecrementExtra lowers the quantity of the extra with the given id.
// Unknown ids and extras already at zero are ignored.
func (s *Session) DecrementExtra(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	for i := range s.extras {
		if s.extras[i].ID == id {
			if s.extras[i].Quantity > 0 {
				s.extras[i].Quantity--
			}
			return
		}
	}
}

// IncrementFoodQuantity raises the base quantity. No upper bound.
func (s *Session) IncrementFoodQuantity() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.foodQuantity++
}

// DecrementFoodQuantity lowers the base quantity, never below one.
func (s *Session) DecrementFoodQuantity() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if s.foodQuantity > 1 {
		s.foodQuantity--
	}
}

// Favorite reports the current favorite flag.
func (s *Session) Favorite() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isFavorite
}

// SetFavorite sets the favorite flag.
func (s *Session) SetFavorite(favorite bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.isFavorite = favorite
}

// ResolveFavorite applies the asynchronous favorite lookup result. The
// result is discarded if the session was torn down while the lookup was
// in flight.
func (s *Session) ResolveFavorite(favorite bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.isFavorite = favorite
	s.favoriteResolved = true
}

// FavoriteResolved reports whether the remote favorite lookup finished.
func (s *Session) FavoriteResolved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favoriteResolved
}

// Confirm marks the order as confirmed. The transition is one-way;
// nothing resets it within the session.
func (s *Session) Confirm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.confirmed = true
}

// Confirmed reports whether an order submission succeeded.
func (s *Session) Confirmed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmed
}

// Close tears the session down. Later mutations, including in-flight
// continuation results, become no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Closed reports whether the session was torn down.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
