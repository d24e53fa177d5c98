package admin

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"jobmaster-backend/internal/activity"
	"jobmaster-backend/internal/coverletters"
	"jobmaster-backend/internal/emails"
	"jobmaster-backend/internal/linkedin"
	"jobmaster-backend/internal/users"
)

// Service aggregates platform-wide analytics for the admin panel.
type Service struct {
	Users        users.Repo
	CoverLetters coverletters.Repo
	LinkedIn     linkedin.Repo
	Emails       emails.Repo
	Activity     activity.Repo
}

func NewService(userRepo users.Repo, clRepo coverletters.Repo, liRepo linkedin.Repo, emRepo emails.Repo, actRepo activity.Repo) *Service {
	return &Service{
		Users:        userRepo,
		CoverLetters: clRepo,
		LinkedIn:     liRepo,
		Emails:       emRepo,
		Activity:     actRepo,
	}
}

// Analytics is what GET /admin/analytics returns.
type Analytics struct {
	TotalUsers          int            `json:"totalUsers"`
	UsersByTier         map[string]int `json:"usersByTier"`
	CoverLetters        int            `json:"coverLetters"`
	LinkedInMessages    int            `json:"linkedinMessages"`
	Emails              int            `json:"emails"`
	TotalGenerations    int            `json:"totalGenerations"`
	ActivitiesThisMonth int            `json:"activitiesThisMonth"`
	ActiveUsers         int            `json:"activeUsers"`
	AvgGenerations      float64        `json:"avgGenerationsPerActiveUser"`
}

// Overview runs the counts concurrently and derives the ratios.
func (s *Service) Overview(ctx context.Context) (Analytics, error) {
	var out Analytics
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.TotalUsers, err = s.Users.Count(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		out.UsersByTier, err = s.Users.CountByTier(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.CoverLetters, err = s.CoverLetters.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.LinkedInMessages, err = s.LinkedIn.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Emails, err = s.Emails.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.ActivitiesThisMonth, err = s.Activity.CountSince(ctx, monthStart)
		return err
	})
	g.Go(func() (err error) {
		out.ActiveUsers, err = s.Activity.CountDistinctUsers(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Analytics{}, err
	}

	out.TotalGenerations = out.CoverLetters + out.LinkedInMessages + out.Emails
	if out.ActiveUsers > 0 {
		out.AvgGenerations = float64(out.TotalGenerations) / float64(out.ActiveUsers)
	}
	return out, nil
}
