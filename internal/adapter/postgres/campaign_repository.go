package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adforge/internal/core/domain"
	"adforge/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL. The campaign document is stored as a single jsonb payload; the
// payload is the source of truth and the name column exists for listing.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// Save inserts a new campaign record.
func (r *CampaignRepository) Save(ctx context.Context, rec port.CampaignRecord) error {
	payload, err := json.Marshal(rec.Campaign)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO campaigns (id, name, payload, created_at, updated_at) VALUES ($1, $2, $3::jsonb, $4, $5)`,
		rec.ID, rec.Campaign.Name, string(payload), rec.CreatedAt, rec.UpdatedAt)
	return err
}

// Update replaces the stored document and bumps updated_at. Unknown ids
// return (nil, nil).
func (r *CampaignRepository) Update(ctx context.Context, id uuid.UUID, c domain.Campaign) (*port.CampaignRecord, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	rec := port.CampaignRecord{ID: id, Campaign: c}
	err = r.pool.QueryRow(ctx,
		`UPDATE campaigns SET name = $2, payload = $3::jsonb, updated_at = now() WHERE id = $1 RETURNING created_at, updated_at`,
		id, c.Name, string(payload)).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get returns a stored campaign by id, or (nil, nil) when the id is unknown.
func (r *CampaignRepository) Get(ctx context.Context, id uuid.UUID) (*port.CampaignRecord, error) {
	var (
		rec     port.CampaignRecord
		payload []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, payload, created_at, updated_at FROM campaigns WHERE id = $1`, id).
		Scan(&rec.ID, &payload, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(payload, &rec.Campaign); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns a summary per stored campaign, newest first.
func (r *CampaignRepository) List(ctx context.Context) ([]port.CampaignSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, payload, updated_at FROM campaigns ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	type rawRow struct {
		ID        uuid.UUID
		Payload   []byte
		UpdatedAt time.Time
	}
	raw, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (rawRow, error) {
		var rr rawRow
		err := row.Scan(&rr.ID, &rr.Payload, &rr.UpdatedAt)
		return rr, err
	})
	if err != nil {
		return nil, err
	}
	summaries := make([]port.CampaignSummary, 0, len(raw))
	for _, rr := range raw {
		var c domain.Campaign
		if err := json.Unmarshal(rr.Payload, &c); err != nil {
			// skip malformed payload
			continue
		}
		summaries = append(summaries, port.CampaignSummary{
			ID:           rr.ID,
			Name:         c.Name,
			ThemeCount:   c.ThemeCount(),
			AdGroupCount: c.AdGroupCount(),
			UpdatedAt:    rr.UpdatedAt,
		})
	}
	return summaries, nil
}

// Delete removes a stored campaign. Unknown ids return ErrCampaignNotFound.
func (r *CampaignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCampaignNotFound
	}
	return nil
}
