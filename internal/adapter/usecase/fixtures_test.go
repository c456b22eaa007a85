package usecase

import (
	"strconv"

	"adforge/internal/core/domain"
)

// testCampaign returns the canonical two-theme, three-ad-group document used
// across the package tests.
func testCampaign() domain.Campaign {
	return domain.Campaign{
		Name:             "Acme Plumbing",
		LandingPageURL:   "https://acmeplumbing.example.com",
		NegativeKeywords: []string{"free", "diy"},
		BidStrategy:      "maximize_conversions",
		Themes: []domain.Theme{
			{
				Name: "Emergency Repairs",
				AdGroups: []domain.AdGroup{
					{
						Name:      "Burst Pipes",
						MatchType: domain.MatchExact,
						Keywords: []domain.Keyword{
							{Text: "burst pipe repair", MatchType: domain.MatchExact},
							{Text: "emergency pipe repair", MatchType: domain.MatchExact},
						},
						Ads: []domain.ResponsiveAd{
							{
								Headlines:    []string{"Burst Pipe? Call Now", "24/7 Emergency Plumbers"},
								Descriptions: []string{"Licensed plumbers arrive within the hour.", "Upfront pricing with no call-out fee."},
							},
						},
					},
					{
						Name:      "Water Heaters",
						MatchType: domain.MatchPhrase,
						Keywords: []domain.Keyword{
							{Text: "water heater repair", MatchType: domain.MatchPhrase},
						},
						Ads: []domain.ResponsiveAd{
							{
								Headlines:    []string{"Water Heater Repair"},
								Descriptions: []string{"Same-day water heater service."},
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
							{Text: "bathroom installation", MatchType: domain.MatchBroad},
						},
						Ads: []domain.ResponsiveAd{
							{
								Headlines:    []string{"Bathroom Installations"},
								Descriptions: []string{"Full bathroom fit-outs by local pros."},
							},
						},
					},
				},
			},
		},
	}
}

// freshKeywords replaces every keyword text in the document with unused ones
// so duplication checks stay quiet unless a test plants overlaps on purpose.
func freshKeywords(c *domain.Campaign) {
	n := 0
	for i := range c.Themes {
		for j := range c.Themes[i].AdGroups {
			for k := range c.Themes[i].AdGroups[j].Keywords {
				c.Themes[i].AdGroups[j].Keywords[k].Text = freshText("keyword", &n)
			}
		}
	}
}

// freshAds replaces every headline and description likewise.
func freshAds(c *domain.Campaign) {
	n := 0
	for i := range c.Themes {
		for j := range c.Themes[i].AdGroups {
			for k := range c.Themes[i].AdGroups[j].Ads {
				ad := &c.Themes[i].AdGroups[j].Ads[k]
				for h := range ad.Headlines {
					ad.Headlines[h] = freshText("headline", &n)
				}
				for d := range ad.Descriptions {
					ad.Descriptions[d] = freshText("description", &n)
				}
			}
		}
	}
}

func freshText(prefix string, n *int) string {
	*n++
	return prefix + " variant " + strconv.Itoa(*n)
}
