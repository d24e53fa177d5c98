// Package outreach holds the status lifecycle shared by generated
// cover letters, LinkedIn messages, and emails.
package outreach

const (
	StatusGenerated = "generated"
	StatusSent      = "sent"
	StatusReplied   = "replied"
	StatusArchived  = "archived"
)

// ValidStatus reports whether status is a known outreach status.
// Transitions are unrestricted; only the value set is enforced.
func ValidStatus(status string) bool {
	switch status {
	case StatusGenerated, StatusSent, StatusReplied, StatusArchived:
		return true
	}
	return false
}
