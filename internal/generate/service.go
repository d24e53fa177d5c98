package generate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobmaster-backend/internal/activity"
	"jobmaster-backend/internal/apikeys"
	"jobmaster-backend/internal/coverletters"
	"jobmaster-backend/internal/emails"
	"jobmaster-backend/internal/linkedin"
	"jobmaster-backend/internal/llm"
	"jobmaster-backend/internal/outreach"
	"jobmaster-backend/internal/resumes"
	"jobmaster-backend/internal/shared/telemetry"
	"jobmaster-backend/internal/usage"
)

// Output token caps per generation kind.
const (
	maxTokensCoverLetter = 900
	maxTokensLinkedIn    = 300
	maxTokensEmail       = 600
	maxTokensFollowUp    = 400
)

// Deps collects the collaborating services.
type Deps struct {
	Keys         *apikeys.Service
	Usage        *usage.Service
	Tiers        usage.TierLookup
	Resumes      *resumes.Service
	CoverLetters *coverletters.Service
	LinkedIn     *linkedin.Service
	Emails       *emails.Service
	Activity     *activity.Service
}

// Service orchestrates a generation request: quota, key resolution,
// the provider call, history persistence, and the activity record.
type Service struct {
	deps      Deps
	newClient func(provider, apiKey string) (llm.Client, error)
}

func NewService(deps Deps) *Service {
	return &Service{deps: deps, newClient: llm.New}
}

// CoverLetterInput carries the request fields for a cover letter.
type CoverLetterInput struct {
	Company        string `json:"company"`
	Role           string `json:"role"`
	JobDescription string `json:"jobDescription"`
	Tone           string `json:"tone"`
	ResumeID       string `json:"resumeId"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
}

// CoverLetter generates and persists a cover letter.
func (s *Service) CoverLetter(ctx context.Context, userID string, in CoverLetterInput) (coverletters.CoverLetter, error) {
	if strings.TrimSpace(in.Company) == "" || strings.TrimSpace(in.Role) == "" {
		return coverletters.CoverLetter{}, ErrInvalidInput
	}
	provider, model, err := s.providerModel(in.Provider, in.Model)
	if err != nil {
		return coverletters.CoverLetter{}, err
	}
	resumeText, err := s.resumeText(ctx, userID, in.ResumeID)
	if err != nil {
		return coverletters.CoverLetter{}, err
	}
	if err := s.deps.Usage.ConsumeGeneration(ctx, userID); err != nil {
		return coverletters.CoverLetter{}, err
	}

	prompt := coverLetterPrompt(in.Company, in.Role, in.JobDescription, in.Tone, resumeText)
	content, err := s.complete(ctx, userID, provider, model, prompt, maxTokensCoverLetter)
	if err != nil {
		return coverletters.CoverLetter{}, err
	}

	now := time.Now().UTC()
	letter := coverletters.CoverLetter{
		ID:             uuid.NewString(),
		UserID:         userID,
		Company:        strings.TrimSpace(in.Company),
		Role:           strings.TrimSpace(in.Role),
		JobDescription: in.JobDescription,
		Tone:           normalizeTone(in.Tone),
		Content:        content,
		Provider:       provider,
		Model:          model,
		Status:         outreach.StatusGenerated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.deps.CoverLetters.Create(ctx, letter); err != nil {
		return coverletters.CoverLetter{}, err
	}
	s.record(ctx, activity.Activity{
		UserID:   userID,
		Kind:     activity.KindCoverLetter,
		SourceID: letter.ID,
		Company:  letter.Company,
		Role:     letter.Role,
		Provider: provider,
		Model:    model,
	})
	return letter, nil
}

// LinkedInInput carries the request fields for a LinkedIn message.
type LinkedInInput struct {
	RecipientName       string `json:"recipientName"`
	RecipientProfileURL string `json:"recipientProfileUrl"`
	Purpose             string `json:"purpose"`
	Company             string `json:"company"`
	Role                string `json:"role"`
	JobDescription      string `json:"jobDescription"`
	Tone                string `json:"tone"`
	ResumeID            string `json:"resumeId"`
	Provider            string `json:"provider"`
	Model               string `json:"model"`
}

// LinkedIn generates and persists a LinkedIn message. The per-recipient
// cap is checked before any quota is consumed.
func (s *Service) LinkedIn(ctx context.Context, userID string, in LinkedInInput) (linkedin.Message, error) {
	if strings.TrimSpace(in.RecipientName) == "" {
		return linkedin.Message{}, ErrInvalidInput
	}
	if err := s.deps.LinkedIn.CheckRecipient(ctx, userID, in.RecipientProfileURL); err != nil {
		return linkedin.Message{}, err
	}
	provider, model, err := s.providerModel(in.Provider, in.Model)
	if err != nil {
		return linkedin.Message{}, err
	}
	resumeText, err := s.resumeText(ctx, userID, in.ResumeID)
	if err != nil {
		return linkedin.Message{}, err
	}
	if err := s.deps.Usage.ConsumeGeneration(ctx, userID); err != nil {
		return linkedin.Message{}, err
	}

	prompt := linkedInPrompt(in.RecipientName, in.Purpose, in.Company, in.Role, in.JobDescription, in.Tone, resumeText)
	content, err := s.complete(ctx, userID, provider, model, prompt, maxTokensLinkedIn)
	if err != nil {
		return linkedin.Message{}, err
	}

	now := time.Now().UTC()
	msg := linkedin.Message{
		ID:                  uuid.NewString(),
		UserID:              userID,
		RecipientName:       strings.TrimSpace(in.RecipientName),
		RecipientProfileURL: strings.TrimSpace(in.RecipientProfileURL),
		Purpose:             in.Purpose,
		Content:             content,
		Provider:            provider,
		Model:               model,
		Status:              outreach.StatusGenerated,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.deps.LinkedIn.Create(ctx, msg); err != nil {
		return linkedin.Message{}, err
	}
	s.record(ctx, activity.Activity{
		UserID:   userID,
		Kind:     activity.KindLinkedIn,
		SourceID: msg.ID,
		Company:  strings.TrimSpace(in.Company),
		Role:     strings.TrimSpace(in.Role),
		Provider: provider,
		Model:    model,
	})
	return msg, nil
}

// EmailInput carries the request fields for an outreach email.
type EmailInput struct {
	Recipient      string `json:"recipient"`
	Subject        string `json:"subject"`
	Purpose        string `json:"purpose"`
	Company        string `json:"company"`
	Role           string `json:"role"`
	JobDescription string `json:"jobDescription"`
	Tone           string `json:"tone"`
	ResumeID       string `json:"resumeId"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
}

// Email generates and persists an outreach email.
func (s *Service) Email(ctx context.Context, userID string, in EmailInput) (emails.Email, error) {
	if strings.TrimSpace(in.Recipient) == "" {
		return emails.Email{}, ErrInvalidInput
	}
	provider, model, err := s.providerModel(in.Provider, in.Model)
	if err != nil {
		return emails.Email{}, err
	}
	resumeText, err := s.resumeText(ctx, userID, in.ResumeID)
	if err != nil {
		return emails.Email{}, err
	}
	if err := s.deps.Usage.ConsumeGeneration(ctx, userID); err != nil {
		return emails.Email{}, err
	}

	prompt := emailPrompt(in.Recipient, in.Purpose, in.Company, in.Role, in.JobDescription, in.Tone, resumeText)
	content, err := s.complete(ctx, userID, provider, model, prompt, maxTokensEmail)
	if err != nil {
		return emails.Email{}, err
	}
	subject, body := splitSubject(content, in.Subject)

	now := time.Now().UTC()
	email := emails.Email{
		ID:        uuid.NewString(),
		UserID:    userID,
		Recipient: strings.TrimSpace(in.Recipient),
		Subject:   subject,
		Body:      body,
		Purpose:   emails.PurposeOutreach,
		Provider:  provider,
		Model:     model,
		Status:    outreach.StatusGenerated,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.deps.Emails.Create(ctx, email); err != nil {
		return emails.Email{}, err
	}
	s.record(ctx, activity.Activity{
		UserID:   userID,
		Kind:     activity.KindEmail,
		SourceID: email.ID,
		Company:  strings.TrimSpace(in.Company),
		Role:     strings.TrimSpace(in.Role),
		Provider: provider,
		Model:    model,
	})
	return email, nil
}

// FollowUpInput carries the request fields for a follow-up email.
type FollowUpInput struct {
	Recipient       string `json:"recipient"`
	Company         string `json:"company"`
	Role            string `json:"role"`
	PreviousMessage string `json:"previousMessage"`
	Tone            string `json:"tone"`
	Provider        string `json:"provider"`
	Model           string `json:"model"`
}

// FollowUp generates a follow-up email. It draws from the follow-up
// quota rather than the generation quota.
func (s *Service) FollowUp(ctx context.Context, userID string, in FollowUpInput) (emails.Email, error) {
	if strings.TrimSpace(in.Recipient) == "" {
		return emails.Email{}, ErrInvalidInput
	}
	provider, model, err := s.providerModel(in.Provider, in.Model)
	if err != nil {
		return emails.Email{}, err
	}
	if err := s.deps.Usage.ConsumeFollowUp(ctx, userID); err != nil {
		return emails.Email{}, err
	}

	prompt := followUpPrompt(in.Recipient, in.Company, in.Role, in.PreviousMessage, in.Tone)
	content, err := s.complete(ctx, userID, provider, model, prompt, maxTokensFollowUp)
	if err != nil {
		return emails.Email{}, err
	}
	subject, body := splitSubject(content, "")

	now := time.Now().UTC()
	email := emails.Email{
		ID:        uuid.NewString(),
		UserID:    userID,
		Recipient: strings.TrimSpace(in.Recipient),
		Subject:   subject,
		Body:      body,
		Purpose:   emails.PurposeFollowUp,
		Provider:  provider,
		Model:     model,
		Status:    outreach.StatusGenerated,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.deps.Emails.Create(ctx, email); err != nil {
		return emails.Email{}, err
	}
	s.record(ctx, activity.Activity{
		UserID:   userID,
		Kind:     activity.KindFollowUp,
		SourceID: email.ID,
		Company:  strings.TrimSpace(in.Company),
		Role:     strings.TrimSpace(in.Role),
		Provider: provider,
		Model:    model,
	})
	return email, nil
}

func (s *Service) providerModel(provider, model string) (string, string, error) {
	provider = strings.TrimSpace(strings.ToLower(provider))
	if provider == "" {
		provider = apikeys.ProviderOpenAI
	}
	if !apikeys.ValidProvider(provider) {
		return "", "", apikeys.ErrInvalidProvider
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = llm.DefaultModel(provider)
	}
	return provider, model, nil
}

func (s *Service) resumeText(ctx context.Context, userID, resumeID string) (string, error) {
	if strings.TrimSpace(resumeID) == "" {
		return "", nil
	}
	resume, err := s.deps.Resumes.Get(ctx, userID, resumeID)
	if err != nil {
		return "", err
	}
	return resume.ExtractedText, nil
}

// complete resolves a key and runs the provider call.
func (s *Service) complete(ctx context.Context, userID, provider, model, prompt string, maxTokens int) (string, error) {
	tier, err := s.deps.Tiers.TierOf(ctx, userID)
	if err != nil {
		return "", err
	}
	apiKey, _, err := s.deps.Keys.Resolve(ctx, userID, tier, provider)
	if err != nil {
		return "", err
	}
	client, err := s.newClient(provider, apiKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	content, err := client.Complete(ctx, model, prompt, maxTokens)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	return content, nil
}

// record inserts the activity row for a persisted output. The content
// already exists at this point, so failures are logged rather than
// returned.
func (s *Service) record(ctx context.Context, act activity.Activity) {
	if s.deps.Activity == nil {
		return
	}
	if _, _, err := s.deps.Activity.Record(ctx, act, ""); err != nil {
		telemetry.Error("activity record failed", map[string]any{
			"user_id": act.UserID,
			"kind":    act.Kind,
			"error":   err.Error(),
		})
	}
}
