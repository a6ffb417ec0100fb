package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyInitialized reports a double bootstrap. This is a
	// programmer error, not a recoverable runtime condition.
	ErrAlreadyInitialized = errors.New("feed store already initialized")

	// ErrBootstrapFailed reports that the initial session load failed.
	// Recovery belongs to the session layer, not this engine.
	ErrBootstrapFailed = errors.New("session bootstrap failed")

	// ErrSyncFailed reports that a reconciliation refetch itself failed.
	// The store keeps its last-known-good state; badge counts may be
	// stale until the next successful reload.
	ErrSyncFailed = errors.New("feed sync failed")
)

// MalformedItemError reports a feed payload record that is missing its kind
// discriminant or violates the variant field-set invariant.
type MalformedItemError struct {
	ID     int64
	Reason string
}

func (e *MalformedItemError) Error() string {
	return fmt.Sprintf("malformed feed item %d: %s", e.ID, e.Reason)
}
