package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"clubfeed/internal/domain"
)

// Op identifies which protocol operation produced a SyncEvent.
type Op string

const (
	OpMarkRead Op = "mark_read"
	OpDismiss  Op = "dismiss"
	OpRefresh  Op = "refresh"
)

// SyncEvent reports the outcome of a confirm or reconcile phase. Err wraps
// domain.ErrSyncFailed when the reconcile refetch itself failed; the store
// then keeps its last-known-good state and badges may be stale until the
// next successful reload.
type SyncEvent struct {
	Op       Op
	ItemID   int64
	Resynced bool
	Err      error
}

// FeedService owns the feed mutation protocol: every mutation applies
// optimistically and synchronously, confirms with the server in the
// background, and reconciles a failed confirm by refetching authoritative
// state rather than undoing the local patch.
type FeedService struct {
	loader    Loader
	confirmer Confirmer
	store     FeedStore
	logger    *slog.Logger

	seq    atomic.Uint64
	events chan SyncEvent
	wg     sync.WaitGroup
}

func NewFeedService(loader Loader, confirmer Confirmer, store FeedStore, logger *slog.Logger) *FeedService {
	return &FeedService{
		loader:    loader,
		confirmer: confirmer,
		store:     store,
		logger:    logger.With("component", "feed"),
		events:    make(chan SyncEvent, 16),
	}
}

// Events delivers confirm/reconcile outcomes. Sends never block: if the
// consumer lags, events are dropped rather than stalling the protocol.
func (s *FeedService) Events() <-chan SyncEvent {
	return s.events
}

// Bootstrap performs the one-shot initial load. Identity and feed arrive in
// a single response, so the store is never filled from a feed that predates
// the identity shown beside it.
func (s *FeedService) Bootstrap(ctx context.Context) (*domain.Identity, error) {
	payload, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrBootstrapFailed, err)
	}

	if err := s.store.Initialize(payload.Items); err != nil {
		return nil, err
	}
	s.seq.Store(1)

	s.logger.Info("session bootstrapped",
		"user_id", payload.Identity.ID,
		"items", len(payload.Items),
		"unread", s.store.UnreadCount(),
	)

	return &payload.Identity, nil
}

// MarkRead marks an unread notification read. The patch is synchronous and
// visible to the next Snapshot before any network activity starts; the
// server confirm runs in the background.
func (s *FeedService) MarkRead(ctx context.Context, id int64) {
	now := time.Now().UTC()
	s.store.ApplyPatch(id, func(it domain.FeedItem) domain.FeedItem {
		if !it.IsNotification() || it.Read {
			return it
		}
		it.Read = true
		it.ReadAt = &now
		return it
	})

	s.confirmAsync(ctx, OpMarkRead, id, func() error {
		return s.confirmer.ConfirmRead(ctx, id)
	})
}

// Dismiss removes an item, any variant, and confirms the removal in the
// background. Dismissing an id that is already gone is a no-op.
func (s *FeedService) Dismiss(ctx context.Context, id int64) {
	s.store.Remove(id)

	s.confirmAsync(ctx, OpDismiss, id, func() error {
		return s.confirmer.ConfirmDismiss(ctx, id)
	})
}

// Refresh pulls authoritative state from the server. It shares the
// sequence-tagged load path with reconciliation, so a slow refresh can never
// clobber a newer completed one.
func (s *FeedService) Refresh(ctx context.Context) error {
	if err := s.reload(ctx); err != nil {
		wrapped := fmt.Errorf("%w: %w", domain.ErrSyncFailed, err)
		s.emit(SyncEvent{Op: OpRefresh, Err: wrapped})
		return wrapped
	}
	s.emit(SyncEvent{Op: OpRefresh, Resynced: true})
	return nil
}

// Wait blocks until all in-flight confirm goroutines finish. For shutdown
// and tests.
func (s *FeedService) Wait() {
	s.wg.Wait()
}

func (s *FeedService) confirmAsync(ctx context.Context, op Op, id int64, confirm func() error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		err := confirm()
		if err == nil {
			s.emit(SyncEvent{Op: op, ItemID: id})
			return
		}

		s.logger.Warn("confirm failed, resyncing",
			"op", string(op),
			"item_id", id,
			"error", err,
		)

		if resyncErr := s.reload(ctx); resyncErr != nil {
			s.emit(SyncEvent{
				Op:     op,
				ItemID: id,
				Err:    fmt.Errorf("%w: %w", domain.ErrSyncFailed, resyncErr),
			})
			return
		}
		s.emit(SyncEvent{Op: op, ItemID: id, Resynced: true})
	}()
}

// reload fetches authoritative state and installs it unless a newer load
// completed first. The sequence number is taken at issue time, before the
// network call, so completion order alone decides the winner.
func (s *FeedService) reload(ctx context.Context) error {
	seq := s.seq.Add(1)

	payload, err := s.loader.Load(ctx)
	if err != nil {
		return err
	}

	if !s.store.Replace(payload.Items, seq) {
		s.logger.Debug("discarded stale reload", "seq", seq, "generation", s.store.Generation())
		return nil
	}

	s.logger.Debug("reloaded feed",
		"seq", seq,
		"items", len(payload.Items),
		"unread", s.store.UnreadCount(),
	)
	return nil
}

func (s *FeedService) emit(ev SyncEvent) {
	select {
	case s.events <- ev:
	default:
		// Drop rather than block the protocol on a slow consumer.
	}
}
