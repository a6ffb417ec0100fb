package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubfeed/internal/domain"
)

func testItems() []domain.FeedItem {
	return []domain.FeedItem{
		{ID: 1, Kind: domain.KindNotification, Category: domain.CategoryEventInvite, Read: false},
		{ID: 2, Kind: domain.KindAnnouncement, Category: domain.CategoryClubNews},
		{ID: 3, Kind: domain.KindNotification, Category: domain.CategoryMatchReminder, Read: true},
	}
}

// recount recomputes the unread invariant straight from a snapshot.
func recount(items []domain.FeedItem) int {
	n := 0
	for _, it := range items {
		if it.IsNotification() && !it.Read {
			n++
		}
	}
	return n
}

func TestInitialize_Once(t *testing.T) {
	s := New()

	require.NoError(t, s.Initialize(testItems()))
	assert.Equal(t, 1, s.UnreadCount())
	assert.Equal(t, uint64(1), s.Generation())

	err := s.Initialize(testItems())
	assert.ErrorIs(t, err, domain.ErrAlreadyInitialized)
}

func TestSnapshot_DefensiveCopy(t *testing.T) {
	s := New()
	require.NoError(t, s.Initialize(testItems()))

	snap := s.Snapshot()
	snap[0].Read = true
	snap[0].Title = "mutated"

	fresh := s.Snapshot()
	assert.False(t, fresh[0].Read)
	assert.Empty(t, fresh[0].Title)
}

func TestUnreadCount_NeverDrifts(t *testing.T) {
	s := New()
	require.NoError(t, s.Initialize(testItems()))

	check := func() {
		assert.Equal(t, recount(s.Snapshot()), s.UnreadCount())
	}
	check()

	s.ApplyPatch(1, func(it domain.FeedItem) domain.FeedItem {
		it.Read = true
		return it
	})
	check()
	assert.Equal(t, 0, s.UnreadCount())

	s.Remove(2)
	check()

	s.Replace([]domain.FeedItem{
		{ID: 9, Kind: domain.KindNotification, Category: domain.CategoryLeagueUpdate, Read: false},
	}, 2)
	check()
	assert.Equal(t, 1, s.UnreadCount())
}

func TestApplyPatch_MissingIDIsNoop(t *testing.T) {
	s := New()
	require.NoError(t, s.Initialize(testItems()))

	s.ApplyPatch(99, func(it domain.FeedItem) domain.FeedItem {
		it.Read = true
		return it
	})

	assert.Len(t, s.Snapshot(), 3)
	assert.Equal(t, 1, s.UnreadCount())
}

func TestRemove_MissingIDIsNoop(t *testing.T) {
	s := New()
	require.NoError(t, s.Initialize(testItems()))

	s.Remove(99)
	assert.Len(t, s.Snapshot(), 3)

	s.Remove(2)
	s.Remove(2)
	assert.Len(t, s.Snapshot(), 2)
}

func TestReplace_StaleSequenceDiscarded(t *testing.T) {
	s := New()
	require.NoError(t, s.Initialize(testItems()))

	newer := []domain.FeedItem{{ID: 10, Kind: domain.KindAnnouncement, Category: domain.CategoryClubNews}}
	older := []domain.FeedItem{{ID: 20, Kind: domain.KindAnnouncement, Category: domain.CategoryClubNews}}

	// A load issued later (seq 3) completes first; the earlier one (seq 2)
	// straggles in afterwards and must lose.
	assert.True(t, s.Replace(newer, 3))
	assert.False(t, s.Replace(older, 2))

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, int64(10), snap[0].ID)
	assert.Equal(t, uint64(3), s.Generation())
}

func TestReplace_BeforeInitializeDiscarded(t *testing.T) {
	s := New()

	applied := s.Replace(testItems(), 5)
	assert.False(t, applied)
	assert.Empty(t, s.Snapshot())
}
