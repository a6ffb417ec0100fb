package domain

// Severity orders badge urgency. Higher values win when a badge spans
// multiple categories.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityUrgent
)

// SeverityRank maps categories to severities. Each navigation surface
// supplies its own ranking, so the aggregator stays agnostic of any
// concrete severity vocabulary.
type SeverityRank map[Category]Severity

// Badge is the (count, severity) pair a navigation item renders.
type Badge struct {
	Count    int
	Severity Severity
}

// ComputeBadge reduces items matching the given categories to a badge:
// unread notifications and all announcements count, read notifications do
// not. Severity is the worst rank across matched categories. Returns nil
// when nothing matches, so callers can tell "no badge" from a zero badge.
func ComputeBadge(items []FeedItem, categories []Category, rank SeverityRank) *Badge {
	wanted := make(map[Category]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}

	var badge *Badge
	for _, it := range items {
		if !wanted[it.Category] {
			continue
		}
		if it.IsNotification() && it.Read {
			continue
		}

		if badge == nil {
			badge = &Badge{}
		}
		badge.Count++
		if sev := rank[it.Category]; sev > badge.Severity {
			badge.Severity = sev
		}
	}
	return badge
}
