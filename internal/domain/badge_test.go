package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBadge_NilWhenNothingMatches(t *testing.T) {
	items := []FeedItem{
		{ID: 1, Kind: KindNotification, Category: CategoryClubNews, Read: false},
	}

	badge := ComputeBadge(items, []Category{CategoryEventInvite}, SeverityRank{})
	assert.Nil(t, badge, "non-matching category must yield no badge, not a zero badge")
}

func TestComputeBadge_NilWhenAllRead(t *testing.T) {
	items := []FeedItem{
		{ID: 1, Kind: KindNotification, Category: CategoryEventInvite, Read: true},
	}

	badge := ComputeBadge(items, []Category{CategoryEventInvite}, SeverityRank{
		CategoryEventInvite: SeverityUrgent,
	})
	assert.Nil(t, badge, "a read notification must not produce a zero-count badge")
}

func TestComputeBadge_WorstSeverityWins(t *testing.T) {
	items := []FeedItem{
		{ID: 1, Kind: KindNotification, Category: CategoryMatchReminder, Read: false},
		{ID: 2, Kind: KindNotification, Category: CategoryEventInvite, Read: false},
	}
	rank := SeverityRank{
		CategoryEventInvite:   SeverityUrgent,
		CategoryMatchReminder: SeverityInfo,
	}

	badge := ComputeBadge(items, []Category{CategoryEventInvite, CategoryMatchReminder}, rank)

	require.NotNil(t, badge)
	assert.Equal(t, 2, badge.Count)
	assert.Equal(t, SeverityUrgent, badge.Severity)
}

func TestComputeBadge_AnnouncementsAlwaysCount(t *testing.T) {
	items := []FeedItem{
		{ID: 1, Kind: KindAnnouncement, Category: CategoryClubNews},
		{ID: 2, Kind: KindNotification, Category: CategoryClubNews, Read: true},
	}

	badge := ComputeBadge(items, []Category{CategoryClubNews}, SeverityRank{
		CategoryClubNews: SeverityInfo,
	})

	require.NotNil(t, badge)
	assert.Equal(t, 1, badge.Count, "announcement counts, read notification does not")
	assert.Equal(t, SeverityInfo, badge.Severity)
}

func TestComputeBadge_MultiCategorySelector(t *testing.T) {
	items := []FeedItem{
		{ID: 1, Kind: KindNotification, Category: CategoryEventInvite, Read: false},
		{ID: 2, Kind: KindNotification, Category: CategoryMatchReminder, Read: false},
		{ID: 3, Kind: KindNotification, Category: CategoryMemberRequest, Read: false},
	}
	rank := SeverityRank{
		CategoryEventInvite:   SeverityWarning,
		CategoryMatchReminder: SeverityWarning,
	}

	badge := ComputeBadge(items, []Category{CategoryEventInvite, CategoryMatchReminder}, rank)

	require.NotNil(t, badge)
	assert.Equal(t, 2, badge.Count)
	assert.Equal(t, SeverityWarning, badge.Severity)
}

func TestComputeBadge_UnrankedCategoryDefaultsToInfo(t *testing.T) {
	items := []FeedItem{
		{ID: 1, Kind: KindAnnouncement, Category: CategoryClubNews},
	}

	badge := ComputeBadge(items, []Category{CategoryClubNews}, SeverityRank{})

	require.NotNil(t, badge)
	assert.Equal(t, SeverityInfo, badge.Severity)
}
