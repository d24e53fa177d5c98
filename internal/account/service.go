package account

import (
	"context"

	"jobmaster-backend/internal/activity"
	"jobmaster-backend/internal/apikeys"
	"jobmaster-backend/internal/coverletters"
	"jobmaster-backend/internal/emails"
	"jobmaster-backend/internal/linkedin"
	"jobmaster-backend/internal/resumes"
	"jobmaster-backend/internal/usage"
	"jobmaster-backend/internal/users"
)

// Service aggregates account-wide views and owns the delete cascade.
type Service struct {
	Users        *users.Service
	Resumes      resumes.Repo
	CoverLetters coverletters.Repo
	LinkedIn     linkedin.Repo
	Emails       emails.Repo
	Activity     activity.Repo
	Usage        *usage.Service
	Keys         *apikeys.Service
}

func NewService(userSvc *users.Service, resumeRepo resumes.Repo, clRepo coverletters.Repo, liRepo linkedin.Repo, emRepo emails.Repo, actRepo activity.Repo, usageSvc *usage.Service, keySvc *apikeys.Service) *Service {
	return &Service{
		Users:        userSvc,
		Resumes:      resumeRepo,
		CoverLetters: clRepo,
		LinkedIn:     liRepo,
		Emails:       emRepo,
		Activity:     actRepo,
		Usage:        usageSvc,
		Keys:         keySvc,
	}
}

// Summary is what GET /account/summary returns.
type Summary struct {
	User             users.User `json:"user"`
	Resumes          int        `json:"resumes"`
	CoverLetters     int        `json:"coverLetters"`
	LinkedInMessages int        `json:"linkedinMessages"`
	Emails           int        `json:"emails"`
	Activities       int        `json:"activities"`
}

// Summary returns the profile plus counts of everything the user owns.
func (s *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{User: user}
	if summary.Resumes, err = s.Resumes.CountByUser(ctx, userID); err != nil {
		return Summary{}, err
	}
	if summary.CoverLetters, err = s.CoverLetters.CountByUser(ctx, userID); err != nil {
		return Summary{}, err
	}
	if summary.LinkedInMessages, err = s.LinkedIn.CountByUser(ctx, userID); err != nil {
		return Summary{}, err
	}
	if summary.Emails, err = s.Emails.CountByUser(ctx, userID); err != nil {
		return Summary{}, err
	}
	if summary.Activities, err = s.Activity.CountByUser(ctx, userID); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

// Delete removes the account and everything it owns: history rows,
// resumes, activity, usage counters, stored keys, then the user row.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.CoverLetters.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.LinkedIn.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.Emails.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.Activity.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.Resumes.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.Usage.DeleteForUser(ctx, userID); err != nil {
		return err
	}
	if err := s.Keys.DeleteForUser(ctx, userID); err != nil {
		return err
	}
	return s.Users.Delete(ctx, userID)
}
