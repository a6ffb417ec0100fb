package domain

import "time"

// ScopeToClub narrows the feed to the active club context. Items without a
// club association are user-scoped and always kept; club-associated items
// are kept only when they belong to activeClubID. An activeClubID of zero
// means no club is active, so only user-scoped items pass.
func ScopeToClub(items []FeedItem, activeClubID int64) []FeedItem {
	var scoped []FeedItem
	for _, it := range items {
		if it.Club == nil || it.Club.ID == activeClubID {
			scoped = append(scoped, it)
		}
	}
	return scoped
}

// ActiveAnnouncements drops announcements past their expiry date.
// Notifications pass through untouched. Pin gating stays at the call site.
func ActiveAnnouncements(items []FeedItem, now time.Time) []FeedItem {
	var active []FeedItem
	for _, it := range items {
		if it.IsAnnouncement() && it.ExpiresAt != nil && it.ExpiresAt.Before(now) {
			continue
		}
		active = append(active, it)
	}
	return active
}
