package emails

import "time"

// Purposes distinguish first-touch emails from follow-ups. Follow-ups
// draw from their own monthly quota.
const (
	PurposeOutreach = "outreach"
	PurposeFollowUp = "follow_up"
)

// Email is a generated outreach or follow-up email.
type Email struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Purpose   string    `json:"purpose"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
