package usage

// DefaultSettings returns the built-in limits for a tier. Unknown
// tiers fall back to the free limits.
func DefaultSettings(tier string) Settings {
	switch tier {
	case "plus":
		return Settings{
			Tier:                   "plus",
			Enabled:                true,
			MonthlyActivityLimit:   200,
			MonthlyGenerationLimit: 100,
			MonthlyFollowUpLimit:   50,
		}
	default:
		return Settings{
			Tier:                   "free",
			Enabled:                true,
			MonthlyActivityLimit:   20,
			MonthlyGenerationLimit: 10,
			MonthlyFollowUpLimit:   5,
		}
	}
}
