package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"adforge/internal/core/domain"
)

// Seed inserts demo campaigns so a fresh install has something to list and
// export. Ids are fixed, so reseeding an existing database is a no-op.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	for _, demo := range demoCampaigns() {
		payload, err := json.Marshal(demo.campaign)
		if err != nil {
			return fmt.Errorf("marshal demo campaign %q: %w", demo.campaign.Name, err)
		}
		_, err = db.Exec(ctx, `INSERT INTO campaigns (id, name, payload, created_at, updated_at)
VALUES ($1, $2, $3::jsonb, now(), now()) ON CONFLICT DO NOTHING`,
			demo.id, demo.campaign.Name, string(payload))
		if err != nil {
			return fmt.Errorf("seed campaign %q: %w", demo.campaign.Name, err)
		}
	}
	return nil
}

type demoCampaign struct {
	id       uuid.UUID
	campaign domain.Campaign
}

func demoCampaigns() []demoCampaign {
	return []demoCampaign{
		{
			id: uuid.MustParse("7b1f5f2e-0c3a-4b6e-9a1d-8f2c4e6a0b01"),
			campaign: domain.Campaign{
				Name:             "Riverside Plumbing",
				LandingPageURL:   "https://riverside-plumbing.example.com",
				NegativeKeywords: []string{"free", "diy", "jobs"},
				BidStrategy:      "Maximize Clicks",
				Themes: []domain.Theme{
					{
						Name: "Emergency Repairs",
						AdGroups: []domain.AdGroup{
							{
								Name:      "Burst Pipes",
								MatchType: domain.MatchExact,
								Keywords: []domain.Keyword{
									{Text: "burst pipe repair", MatchType: domain.MatchExact},
									{Text: "emergency plumber near me", MatchType: domain.MatchExact},
								},
								Ads: []domain.ResponsiveAd{
									{
										Headlines:    []string{"Burst Pipe? We're On Call", "Plumbers In Under An Hour", "24/7 Emergency Call-Outs"},
										Descriptions: []string{"Licensed local plumbers with upfront pricing.", "No call-out fee and a 12 month guarantee."},
									},
								},
							},
							{
								Name:      "Boiler Breakdowns",
								MatchType: domain.MatchPhrase,
								Keywords: []domain.Keyword{
									{Text: "boiler repair", MatchType: domain.MatchPhrase},
									{Text: "boiler not working", MatchType: domain.MatchPhrase},
								},
								Ads: []domain.ResponsiveAd{
									{
										Headlines:    []string{"Boiler Down? Call Today", "Gas Safe Engineers"},
										Descriptions: []string{"Same-day boiler repairs across the city."},
									},
								},
							},
						},
					},
					{
						Name: "Installations",
						AdGroups: []domain.AdGroup{
							{
								Name:      "Bathroom Fitting",
								MatchType: domain.MatchBroad,
								Keywords: []domain.Keyword{
									{Text: "bathroom installation cost", MatchType: domain.MatchBroad},
								},
								Ads: []domain.ResponsiveAd{
									{
										Headlines:    []string{"Bathrooms Fitted Right", "Free Fitting Quotes"},
										Descriptions: []string{"Full bathroom installations by certified pros."},
									},
								},
							},
						},
					},
				},
			},
		},
		{
			id: uuid.MustParse("3e9d2c44-5a17-4f8b-b2e0-6c9a1d3f5e02"),
			campaign: domain.Campaign{
				Name:             "Harbor Roasters",
				LandingPageURL:   "https://harbor-roasters.example.com",
				NegativeKeywords: []string{"instant", "decaf wholesale"},
				BidStrategy:      "Maximize Conversions",
				Themes: []domain.Theme{
					{
						Name: "Specialty Beans",
						AdGroups: []domain.AdGroup{
							{
								Name:      "Single Origin",
								MatchType: domain.MatchPhrase,
								Keywords: []domain.Keyword{
									{Text: "single origin coffee beans", MatchType: domain.MatchPhrase},
									{Text: "ethiopian coffee beans", MatchType: domain.MatchPhrase},
								},
								Ads: []domain.ResponsiveAd{
									{
										Headlines:    []string{"Fresh Roasted This Week", "Single Origin Coffee"},
										Descriptions: []string{"Small-batch beans shipped within 48 hours of roasting."},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}
