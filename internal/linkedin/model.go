package linkedin

import "time"

// MaxPerRecipient caps messages generated for one recipient profile.
const MaxPerRecipient = 2

// Message is a generated LinkedIn outreach message.
type Message struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"-"`
	RecipientName       string    `json:"recipientName"`
	RecipientProfileURL string    `json:"recipientProfileUrl"`
	Purpose             string    `json:"purpose"`
	Content             string    `json:"content"`
	Provider            string    `json:"provider"`
	Model               string    `json:"model"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
