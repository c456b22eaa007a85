package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"adforge/internal/core/domain"
	"adforge/internal/core/port"
)

// maxAttempts bounds the regeneration loop. The limit is deliberate: a model
// that cannot satisfy the structural contract in three tries will not satisfy
// it in thirty, and every attempt costs tokens and tens of seconds.
const maxAttempts = 3

// truncatedHint is appended to truncation failures so the caller knows what
// to change; the request itself is not retried with a larger budget.
const truncatedHint = "the response was cut off by the token budget; " +
	"raise the token budget or regenerate a smaller part of the campaign"

// Defaults fill the gaps of caller-supplied model settings. Credential is the
// environment-level API key used when a request carries none.
type Defaults struct {
	Model       string
	MaxTokens   int
	Temperature float64
	Credential  string
}

// CampaignUseCase provides the business logic of the campaign builder: the
// one-shot generation, the regeneration-validation-retry loop, CSV export and
// the stored-campaign operations. It orchestrates the completion client and
// the repository to implement the port.CampaignUseCase interface.
type CampaignUseCase struct {
	completion port.CompletionClient
	repo       port.CampaignRepository
	defaults   Defaults
}

// NewCampaignUseCase creates a new usecase with the provided collaborators.
func NewCampaignUseCase(completion port.CompletionClient, repo port.CampaignRepository, defaults Defaults) *CampaignUseCase {
	return &CampaignUseCase{completion: completion, repo: repo, defaults: defaults}
}

// Generate produces a new campaign from a business brief in a single
// prompt-and-parse call. There is no validation loop: the initial generation
// has no original document to compare against, so structural defects surface
// to the caller directly.
func (u *CampaignUseCase) Generate(ctx context.Context, params port.GenerateParams) (*domain.Campaign, error) {
	settings, err := u.fillSettings(params.Settings)
	if err != nil {
		return nil, err
	}

	result, err := u.complete(ctx, settings, buildGenerationPrompt(params))
	if err != nil {
		return nil, err
	}

	campaign, err := parseCampaignJSON(result.Text)
	if err != nil {
		return nil, &port.GenerationError{Kind: port.FailureParse, Reason: err.Error(), Attempts: 1}
	}
	if len(campaign.Themes) == 0 {
		return nil, &port.GenerationError{Kind: port.FailureParse, Reason: "response contained no themes", Attempts: 1}
	}

	campaign.LandingPageURL = params.LandingPageURL
	if campaign.Name == "" {
		campaign.Name = "Generated campaign"
	}
	return &campaign, nil
}

// Regenerate replaces the targeted subtree of the campaign. Attempts run
// strictly sequentially because each prompt carries the previous rejection
// reason. Validation failures are retried up to maxAttempts with escalating
// prompts; provider and parse failures are terminal immediately. The caller's
// document is never mutated; the result carries a fresh merged copy.
func (u *CampaignUseCase) Regenerate(ctx context.Context, params port.RegenerateParams) (*port.RegenerateResult, error) {
	settings, err := u.fillSettings(params.Settings)
	if err != nil {
		return nil, err
	}

	target, warning := params.Target.Resolve(params.Campaign)

	var lastReason string
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		prompt := buildRegenerationPrompt(params.Campaign, params.ContentType, target, attempt, lastReason, params.Instructions)

		result, err := u.complete(ctx, settings, prompt)
		if err != nil {
			if genErr := new(port.GenerationError); errors.As(err, &genErr) {
				genErr.Attempts = attempt
			}
			return nil, err
		}

		candidate, err := parseCampaignJSON(result.Text)
		if err != nil {
			return nil, &port.GenerationError{Kind: port.FailureParse, Reason: err.Error(), Attempts: attempt}
		}

		verdict := validateCandidate(params.Campaign, candidate, params.ContentType, target)
		if !verdict.Accepted {
			lastReason = verdict.Reason
			continue
		}

		merged := mergeCandidate(params.Campaign, candidate, params.ContentType, target)
		return &port.RegenerateResult{Campaign: merged, Warning: warning, Attempts: attempt}, nil
	}

	return nil, &port.GenerationError{Kind: port.FailureValidation, Reason: lastReason, Attempts: maxAttempts}
}

// complete performs one provider call and maps provider-level defects onto
// the generation failure taxonomy.
func (u *CampaignUseCase) complete(ctx context.Context, settings port.ModelSettings, prompt string) (port.CompletionResult, error) {
	result, err := u.completion.Complete(ctx, port.CompletionRequest{
		Model: settings.Model,
		Messages: []port.ChatMessage{
			{Role: port.RoleSystem, Content: systemPrompt},
			{Role: port.RoleUser, Content: prompt},
		},
		MaxTokens:   settings.MaxTokens,
		Temperature: u.defaults.Temperature,
		Credential:  settings.Credential,
	})
	switch {
	case errors.Is(err, port.ErrMissingCredential):
		return port.CompletionResult{}, &port.GenerationError{Kind: port.FailureMissingCredential, Reason: err.Error()}
	case errors.Is(err, port.ErrEmptyCompletion):
		return port.CompletionResult{}, &port.GenerationError{Kind: port.FailureEmptyResponse, Reason: err.Error(), Attempts: 1}
	case err != nil:
		return port.CompletionResult{}, fmt.Errorf("completion call: %w", err)
	}
	if result.Truncated {
		return port.CompletionResult{}, &port.GenerationError{Kind: port.FailureTruncated, Reason: truncatedHint, Attempts: 1}
	}
	return result, nil
}

// fillSettings applies server defaults to caller-supplied model settings and
// enforces the credential requirement before any provider call is made.
func (u *CampaignUseCase) fillSettings(s port.ModelSettings) (port.ModelSettings, error) {
	if s.Model == "" {
		s.Model = u.defaults.Model
	}
	if s.MaxTokens <= 0 {
		s.MaxTokens = u.defaults.MaxTokens
	}
	if s.Credential == "" {
		s.Credential = u.defaults.Credential
	}
	if s.Credential == "" {
		return s, &port.GenerationError{
			Kind:   port.FailureMissingCredential,
			Reason: "no API key: supply one in the request or configure OPENAI_API_KEY",
		}
	}
	return s, nil
}

// ExportCSV renders the campaign as a Google Ads Editor style CSV table.
func (u *CampaignUseCase) ExportCSV(c domain.Campaign) ([]byte, error) {
	return exportCSV(c)
}

// SaveCampaign stores a new campaign document under a fresh id.
func (u *CampaignUseCase) SaveCampaign(ctx context.Context, c domain.Campaign) (*port.CampaignRecord, error) {
	now := time.Now().UTC()
	rec := port.CampaignRecord{
		ID:        uuid.New(),
		Campaign:  c,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateCampaign replaces a stored document.
func (u *CampaignUseCase) UpdateCampaign(ctx context.Context, id uuid.UUID, c domain.Campaign) (*port.CampaignRecord, error) {
	rec, err := u.repo.Update(ctx, id, c)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, port.ErrCampaignNotFound
	}
	return rec, nil
}

// GetCampaign loads a stored record by id.
func (u *CampaignUseCase) GetCampaign(ctx context.Context, id uuid.UUID) (*port.CampaignRecord, error) {
	rec, err := u.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, port.ErrCampaignNotFound
	}
	return rec, nil
}

// ListCampaigns returns summaries of all stored campaigns.
func (u *CampaignUseCase) ListCampaigns(ctx context.Context) ([]port.CampaignSummary, error) {
	return u.repo.List(ctx)
}

// DeleteCampaign removes a stored record.
func (u *CampaignUseCase) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	return u.repo.Delete(ctx, id)
}
