package service

import "errors"

// ErrFoodNotFound means the remote store has no food for the requested
// id. The detail screen cannot open without one.
var ErrFoodNotFound = errors.New("food not found")

// ErrSessionClosed means an operation hit a session that was already
// torn down.
var ErrSessionClosed = errors.New("session closed")
