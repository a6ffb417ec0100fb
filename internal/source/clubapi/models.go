package clubapi

import (
	"fmt"
	"time"

	"clubfeed/internal/domain"
)

// bootstrapResponse is the combined identity+feed payload. Both arrive in
// one response by contract, never as two racing calls.
type bootstrapResponse struct {
	User userRecord       `json:"user"`
	Feed []feedItemRecord `json:"feed"`
}

type userRecord struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type refRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type feedItemRecord struct {
	ID          int64      `json:"id"`
	Kind        string     `json:"kind"`
	Category    string     `json:"category"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	CreatedBy   *refRecord `json:"createdBy"`
	Club        *refRecord `json:"club"`
	League      *refRecord `json:"league"`
	Match       *refRecord `json:"match"`
	ActionURL   string     `json:"actionUrl"`
	ActionLabel string     `json:"actionLabel"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Read     *bool             `json:"read"`
	ReadAt   *time.Time        `json:"readAt"`
	Metadata map[string]string `json:"metadata"`

	ImageURL  *string    `json:"imageUrl"`
	Pinned    *bool      `json:"pinned"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// toDomain validates the variant invariant and converts the record. Records
// that fail validation are rejected, never coerced or silently dropped: a
// dropped item would under-count badges with no visible symptom.
func (r feedItemRecord) toDomain() (domain.FeedItem, error) {
	item := domain.FeedItem{
		ID:          r.ID,
		Category:    domain.Category(r.Category),
		Title:       r.Title,
		Body:        r.Body,
		Creator:     r.CreatedBy.toDomain(),
		Club:        r.Club.toDomain(),
		League:      r.League.toDomain(),
		Match:       r.Match.toDomain(),
		ActionURL:   r.ActionURL,
		ActionLabel: r.ActionLabel,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	switch domain.Kind(r.Kind) {
	case domain.KindNotification:
		if r.Read == nil {
			return domain.FeedItem{}, &domain.MalformedItemError{ID: r.ID, Reason: "notification without read flag"}
		}
		if r.ImageURL != nil || r.Pinned != nil || r.ExpiresAt != nil {
			return domain.FeedItem{}, &domain.MalformedItemError{ID: r.ID, Reason: "notification carries announcement fields"}
		}
		item.Kind = domain.KindNotification
		item.Read = *r.Read
		item.ReadAt = r.ReadAt
		item.Metadata = r.Metadata

	case domain.KindAnnouncement:
		if r.Read != nil || r.ReadAt != nil || r.Metadata != nil {
			return domain.FeedItem{}, &domain.MalformedItemError{ID: r.ID, Reason: "announcement carries notification fields"}
		}
		item.Kind = domain.KindAnnouncement
		item.ImageURL = r.ImageURL
		if r.Pinned != nil {
			item.Pinned = *r.Pinned
		}
		item.ExpiresAt = r.ExpiresAt

	default:
		if r.Kind == "" {
			return domain.FeedItem{}, &domain.MalformedItemError{ID: r.ID, Reason: "missing kind discriminant"}
		}
		return domain.FeedItem{}, &domain.MalformedItemError{ID: r.ID, Reason: fmt.Sprintf("unknown kind %q", r.Kind)}
	}

	return item, nil
}

func (r *refRecord) toDomain() *domain.Ref {
	if r == nil {
		return nil
	}
	return &domain.Ref{ID: r.ID, Name: r.Name}
}
