package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"clubfeed/internal/domain"
)

// Loader performs the one-shot session call that returns the authenticated
// identity and the initial feed together. The same call serves as the
// reconciliation refetch.
type Loader interface {
	Load(ctx context.Context) (*domain.BootstrapPayload, error)
}

// Confirmer reports optimistic mutations to the remote API. Only the
// success/failure signal is consumed.
type Confirmer interface {
	ConfirmRead(ctx context.Context, id int64) error
	ConfirmDismiss(ctx context.Context, id int64) error
}

// FeedStore is the session-scoped cache the mutation protocol operates on.
type FeedStore interface {
	Initialize(items []domain.FeedItem) error
	Snapshot() []domain.FeedItem
	UnreadCount() int
	ApplyPatch(id int64, fn func(domain.FeedItem) domain.FeedItem)
	Remove(id int64)
	Replace(items []domain.FeedItem, seq uint64) bool
	Generation() uint64
}
