package usage

import (
	"context"
	"time"
)

// TierLookup resolves a user's billing tier. Wired to the users
// service so admin tier changes apply without re-login.
type TierLookup interface {
	TierOf(ctx context.Context, userID string) (string, error)
}

// Service enforces the monthly quotas.
type Service struct {
	store Store
	tiers TierLookup
}

func NewService(store Store, tiers TierLookup) *Service {
	return &Service{store: store, tiers: tiers}
}

// Get returns the user's counters, the limits for their tier, and the
// next reset time.
func (s *Service) Get(ctx context.Context, userID string) (Snapshot, error) {
	tier, err := s.tiers.TierOf(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	settings, err := s.store.GetSettings(ctx, tier)
	if err != nil {
		return Snapshot{}, err
	}
	counters, err := s.store.GetCounters(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Tier:     tier,
		Enabled:  settings.Enabled,
		Counters: counters,
		Limits:   settings,
		ResetsAt: nextReset(time.Now()).Format(time.RFC3339),
	}, nil
}

// ConsumeActivity spends one unit of the monthly activity quota.
func (s *Service) ConsumeActivity(ctx context.Context, userID string) error {
	return s.consume(ctx, userID, CounterActivity)
}

// ConsumeGeneration spends one unit of the monthly generation quota.
func (s *Service) ConsumeGeneration(ctx context.Context, userID string) error {
	return s.consume(ctx, userID, CounterGeneration)
}

// ConsumeFollowUp spends one unit of the monthly follow-up quota.
func (s *Service) ConsumeFollowUp(ctx context.Context, userID string) error {
	return s.consume(ctx, userID, CounterFollowUp)
}

func (s *Service) consume(ctx context.Context, userID, kind string) error {
	tier, err := s.tiers.TierOf(ctx, userID)
	if err != nil {
		return err
	}
	settings, err := s.store.GetSettings(ctx, tier)
	if err != nil {
		return err
	}

	limit := -1 // disabled settings mean unlimited
	if settings.Enabled {
		switch kind {
		case CounterActivity:
			limit = settings.MonthlyActivityLimit
		case CounterGeneration:
			limit = settings.MonthlyGenerationLimit
		case CounterFollowUp:
			limit = settings.MonthlyFollowUpLimit
		default:
			return ErrUnknownKind
		}
	}

	_, err = s.store.Consume(ctx, userID, kind, limit)
	return err
}

// SettingsFor returns the stored (or default) settings for a tier.
func (s *Service) SettingsFor(ctx context.Context, tier string) (Settings, error) {
	if tier != "free" && tier != "plus" {
		return Settings{}, ErrUnknownTier
	}
	return s.store.GetSettings(ctx, tier)
}

// UpdateSettings replaces a tier's limits.
func (s *Service) UpdateSettings(ctx context.Context, settings Settings) error {
	if settings.Tier != "free" && settings.Tier != "plus" {
		return ErrUnknownTier
	}
	if settings.MonthlyActivityLimit < 0 || settings.MonthlyGenerationLimit < 0 || settings.MonthlyFollowUpLimit < 0 {
		return ErrInvalidInput
	}
	return s.store.UpsertSettings(ctx, settings)
}

// Reset zeroes a user's counters and restarts their period.
func (s *Service) Reset(ctx context.Context, userID string) error {
	return s.store.ResetCounters(ctx, userID)
}

// DeleteForUser removes a user's counters entirely.
func (s *Service) DeleteForUser(ctx context.Context, userID string) error {
	return s.store.DeleteCounters(ctx, userID)
}
