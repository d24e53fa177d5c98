package resumes

import "time"

// MaxPerUser caps how many resumes a user may keep at once.
const MaxPerUser = 3

// Resume is an uploaded resume plus the text extracted from it.
// ExtractedText is what generation prompts consume.
type Resume struct {
	ID            string    `json:"id"`
	UserID        string    `json:"-"`
	Title         string    `json:"title"`
	FileName      string    `json:"fileName"`
	MimeType      string    `json:"mimeType"`
	SizeBytes     int64     `json:"sizeBytes"`
	StorageKey    string    `json:"-"`
	ExtractedText string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}
