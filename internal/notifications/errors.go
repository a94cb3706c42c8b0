package notifications

import "errors"

var (
	// ErrItemNotFound is returned when a queue item does not exist.
	ErrItemNotFound = errors.New("queue item not found")

	// ErrUnknownChannel is returned when no sender is registered for a
	// queue item's channel.
	ErrUnknownChannel = errors.New("unknown notification channel")
)
