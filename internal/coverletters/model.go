package coverletters

import "time"

// CoverLetter is a generated cover letter tracked through outreach.
type CoverLetter struct {
	ID             string    `json:"id"`
	UserID         string    `json:"-"`
	Company        string    `json:"company"`
	Role           string    `json:"role"`
	JobDescription string    `json:"jobDescription"`
	Tone           string    `json:"tone"`
	Content        string    `json:"content"`
	Provider       string    `json:"provider"`
	Model          string    `json:"model"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
