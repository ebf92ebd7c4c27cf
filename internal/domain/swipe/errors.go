package swipe

import "errors"

var (
	ErrInvalidSwipe   = errors.New("invalid swipe")
	ErrDuplicateSwipe = errors.New("swipe already exists for this pair")
	ErrBlocked        = errors.New("swiping is blocked between these users")
)
