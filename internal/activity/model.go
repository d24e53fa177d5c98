package activity

import "time"

// Kinds mirror the generation endpoints that produce activity.
const (
	KindCoverLetter = "cover_letter"
	KindLinkedIn    = "linkedin"
	KindEmail       = "email"
	KindFollowUp    = "follow_up"
)

// ValidKind reports whether kind is a known activity kind.
func ValidKind(kind string) bool {
	switch kind {
	case KindCoverLetter, KindLinkedIn, KindEmail, KindFollowUp:
		return true
	}
	return false
}

// Activity is one row in the user's outreach activity feed. SourceID
// points at the history row the activity was created for.
type Activity struct {
	ID             string    `json:"id"`
	UserID         string    `json:"-"`
	Kind           string    `json:"kind"`
	SourceID       string    `json:"sourceId"`
	Company        string    `json:"company,omitempty"`
	Role           string    `json:"role,omitempty"`
	Provider       string    `json:"provider,omitempty"`
	Model          string    `json:"model,omitempty"`
	IdempotencyKey string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}
