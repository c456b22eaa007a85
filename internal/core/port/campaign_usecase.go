package port

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"adforge/internal/core/domain"
)

// FailureKind classifies terminal generation failures. The kinds mirror how
// the caller should react: fix credentials, shrink the request, or give up on
// this model output.
type FailureKind string

const (
	// FailureMissingCredential: no API key anywhere; nothing was attempted.
	FailureMissingCredential FailureKind = "missing_credential"
	// FailureEmptyResponse: the provider returned no text.
	FailureEmptyResponse FailureKind = "empty_response"
	// FailureTruncated: the response hit the token budget before completing.
	FailureTruncated FailureKind = "truncated"
	// FailureParse: the response stayed unparseable after repair heuristics.
	FailureParse FailureKind = "parse"
	// FailureValidation: every attempt was rejected by the validator.
	FailureValidation FailureKind = "validation"
)

// GenerationError is the single error surface of Generate and Regenerate.
// Reason is human-readable and safe to show verbatim; Attempts counts the
// provider calls made before giving up.
type GenerationError struct {
	Kind     FailureKind
	Reason   string
	Attempts int
}

func (e *GenerationError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("%s after %d attempts: %s", e.Kind, e.Attempts, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// ModelSettings are caller-supplied generation parameters. Zero values fall
// back to the server-configured defaults; Credential falls back to the
// environment-level key.
type ModelSettings struct {
	Model      string
	MaxTokens  int
	Credential string
}

// GenerateParams describe the one-shot initial generation.
type GenerateParams struct {
	// Description of the business or product being advertised. Required.
	Description string
	// LandingPageURL is carried onto the generated campaign.
	LandingPageURL string
	// TargetAudience and BrandTone steer the copywriting when set.
	TargetAudience string
	BrandTone      string
	// ThemeCount is the requested number of themes; 0 lets the default apply.
	ThemeCount int
	// Instructions are free-text user instructions, included verbatim and
	// prioritized above the built-in prompt rules.
	Instructions string
	Settings     ModelSettings
}

// RegenerateParams describe one regeneration request over an existing
// document. The campaign itself is never mutated; the result carries a new
// document.
type RegenerateParams struct {
	Campaign     domain.Campaign
	ContentType  domain.ContentType
	Target       domain.Target
	Instructions string
	Settings     ModelSettings
}

// RegenerateResult is the accepted outcome of a regeneration.
type RegenerateResult struct {
	Campaign domain.Campaign
	// Warning is set when the requested target did not exist and the scope
	// degraded to the whole campaign.
	Warning string
	// Attempts is the number of provider calls the accepted result took.
	Attempts int
}

// CampaignUseCase defines the business operations of the campaign builder.
// This interface is the primary port into the application domain.
type CampaignUseCase interface {
	// Generate produces a new campaign from a business brief in a single
	// prompt-and-parse call; there is no validation/retry loop.
	Generate(ctx context.Context, params GenerateParams) (*domain.Campaign, error)

	// Regenerate replaces the targeted subtree of the campaign, validating
	// the model's answer and retrying with escalating prompts up to a fixed
	// attempt limit. Terminal failures are reported as *GenerationError.
	Regenerate(ctx context.Context, params RegenerateParams) (*RegenerateResult, error)

	// ExportCSV renders the campaign as a Google Ads Editor style CSV table.
	ExportCSV(c domain.Campaign) ([]byte, error)

	// SaveCampaign stores a new campaign document and returns its record.
	SaveCampaign(ctx context.Context, c domain.Campaign) (*CampaignRecord, error)
	// UpdateCampaign replaces a stored document.
	UpdateCampaign(ctx context.Context, id uuid.UUID, c domain.Campaign) (*CampaignRecord, error)
	// GetCampaign loads a stored record; unknown ids yield ErrCampaignNotFound.
	GetCampaign(ctx context.Context, id uuid.UUID) (*CampaignRecord, error)
	// ListCampaigns returns summaries of all stored campaigns.
	ListCampaigns(ctx context.Context) ([]CampaignSummary, error)
	// DeleteCampaign removes a stored record.
	DeleteCampaign(ctx context.Context, id uuid.UUID) error
}
