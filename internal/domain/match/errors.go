package match

import "errors"

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrMatchNotActive = errors.New("match is not active")
	ErrNotParticipant = errors.New("requester is not a participant of this match")
	ErrMatchCreation  = errors.New("match creation failed")
)
