package domain

import "time"

// Kind discriminates the two feed item variants.
type Kind string

const (
	KindNotification Kind = "notification"
	KindAnnouncement Kind = "announcement"
)

// Category is the notification category assigned by the club-management API.
type Category string

const (
	CategoryEventInvite   Category = "event_invite"
	CategoryClubNews      Category = "club_news"
	CategoryMatchReminder Category = "match_reminder"
	CategoryLeagueUpdate  Category = "league_update"
	CategoryMemberRequest Category = "member_request"
)

// Ref is an id plus display-name association to another entity
// (club, league, match, user).
type Ref struct {
	ID   int64
	Name string
}

// FeedItem is one record in the unified feed. Kind selects which of the
// variant field-sets is populated; the deserialization boundary rejects
// records that mix them. A nil Club means the item is user-scoped and
// visible in every club context.
type FeedItem struct {
	ID          int64
	Kind        Kind
	Category    Category
	Title       string
	Body        string
	Creator     *Ref
	Club        *Ref
	League      *Ref
	Match       *Ref
	ActionURL   string
	ActionLabel string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// notification variant
	Read     bool
	ReadAt   *time.Time
	Metadata map[string]string

	// announcement variant
	ImageURL  *string
	Pinned    bool
	ExpiresAt *time.Time
}

// IsNotification reports whether the item carries per-user read state.
func (i FeedItem) IsNotification() bool {
	return i.Kind == KindNotification
}

// IsAnnouncement reports whether the item is a club broadcast without
// per-user read state.
func (i FeedItem) IsAnnouncement() bool {
	return i.Kind == KindAnnouncement
}

// Identity is the authenticated user delivered alongside the initial feed.
type Identity struct {
	ID    int64
	Name  string
	Email string
	Roles []string
}

// BootstrapPayload is the combined result of the one-shot session load.
type BootstrapPayload struct {
	Identity Identity
	Items    []FeedItem
}
