package port

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"adforge/internal/core/domain"
)

// ErrCampaignNotFound is returned when a stored campaign id is unknown.
var ErrCampaignNotFound = errors.New("campaign not found")

// CampaignRecord is a stored campaign document with its storage identity.
type CampaignRecord struct {
	ID        uuid.UUID       `json:"id"`
	Campaign  domain.Campaign `json:"campaign"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CampaignSummary is a list entry: identity plus a few derived counts, cheap
// enough to render an overview without shipping whole documents.
type CampaignSummary struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ThemeCount   int       `json:"themeCount"`
	AdGroupCount int       `json:"adGroupCount"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CampaignRepository persists campaign documents. It is an outbound port in
// hexagonal architecture. Lookups return nil (not an error) for unknown ids;
// mutations report unknown ids with ErrCampaignNotFound.
type CampaignRepository interface {
	// Save inserts a new record.
	Save(ctx context.Context, rec CampaignRecord) error
	// Update replaces the stored document and returns the updated record.
	Update(ctx context.Context, id uuid.UUID, c domain.Campaign) (*CampaignRecord, error)
	// Get returns a record by id, or nil when the id is unknown.
	Get(ctx context.Context, id uuid.UUID) (*CampaignRecord, error)
	// List returns summaries of all stored campaigns, newest first.
	List(ctx context.Context) ([]CampaignSummary, error)
	// Delete removes a record by id.
	Delete(ctx context.Context, id uuid.UUID) error
}
