package usage

import "time"

// Counter kinds tracked per user per calendar month.
const (
	CounterActivity   = "activity"
	CounterGeneration = "generation"
	CounterFollowUp   = "follow_up"
)

// Settings are the per-tier monthly limits. Disabled settings mean
// unlimited use for that tier.
type Settings struct {
	Tier                   string `json:"tier"`
	Enabled                bool   `json:"enabled"`
	MonthlyActivityLimit   int    `json:"monthlyActivityLimit"`
	MonthlyGenerationLimit int    `json:"monthlyGenerationLimit"`
	MonthlyFollowUpLimit   int    `json:"monthlyFollowupLimit"`
}

// Counters are one user's consumption within the current month.
type Counters struct {
	UserID         string    `json:"-"`
	ActivityUsed   int       `json:"activityUsed"`
	GenerationUsed int       `json:"generationUsed"`
	FollowUpUsed   int       `json:"followupUsed"`
	PeriodStart    time.Time `json:"periodStart"`
}

// Snapshot is what GET /usage returns: counters, their limits, and
// when the counters reset next.
type Snapshot struct {
	Tier     string   `json:"tier"`
	Enabled  bool     `json:"enabled"`
	Counters Counters `json:"counters"`
	Limits   Settings `json:"limits"`
	ResetsAt string   `json:"resetsAt"`
}

// monthStart truncates t to the first moment of its month, UTC.
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// nextReset is the first moment of the month after t, UTC.
func nextReset(t time.Time) time.Time {
	return monthStart(t).AddDate(0, 1, 0)
}
