package domain

// Keyword match types. The tag on an ad group is descriptive; the tag on a
// keyword decides its bracket/quote rendering at export time.
const (
	MatchExact  = "exact"
	MatchPhrase = "phrase"
	MatchBroad  = "broad"
)

// Responsive search ad limits imposed by Google Ads. The per-ad maxima double
// as the denominators of the headline/description duplication ratios.
const (
	HeadlineMaxLen       = 30
	DescriptionMaxLen    = 90
	MaxHeadlinesPerAd    = 15
	MaxDescriptionsPerAd = 4
)

// Campaign is the root of the generated document tree. The JSON field names
// form the wire contract shared by the completion prompts, the response
// parser, the HTTP API and the stored payload.
type Campaign struct {
	Name             string     `json:"campaignName"`
	LandingPageURL   string     `json:"landingPageUrl,omitempty"`
	Themes           []Theme    `json:"themes"`
	NegativeKeywords []string   `json:"negativeKeywords,omitempty"`
	BidStrategy      string     `json:"bidStrategy,omitempty"`
	Sitelinks        []Sitelink `json:"sitelinks,omitempty"`
	Callouts         []string   `json:"callouts,omitempty"`
}

// Theme groups ad groups around one search intent. Its name may change when
// the theme is regenerated; identity across a regeneration is positional.
type Theme struct {
	Name     string    `json:"name"`
	AdGroups []AdGroup `json:"adGroups"`
}

// AdGroup holds the keywords and responsive ads for one slice of a theme.
type AdGroup struct {
	Name      string         `json:"name"`
	MatchType string         `json:"matchType,omitempty"`
	Keywords  []Keyword      `json:"keywords"`
	Ads       []ResponsiveAd `json:"ads"`
}

// Keyword is a single search term with its match-type tag.
type Keyword struct {
	Text      string `json:"keyword"`
	MatchType string `json:"matchType,omitempty"`
}

// ResponsiveAd is a pool of headline and description variants.
type ResponsiveAd struct {
	Headlines    []string `json:"headlines"`
	Descriptions []string `json:"descriptions"`
}

// Sitelink is an optional campaign extension.
type Sitelink struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// ThemeCount returns the number of themes.
func (c Campaign) ThemeCount() int {
	return len(c.Themes)
}

// AdGroupCount returns the total number of ad groups across all themes.
func (c Campaign) AdGroupCount() int {
	n := 0
	for i := range c.Themes {
		n += len(c.Themes[i].AdGroups)
	}
	return n
}

// Clone returns a deep copy. Regeneration merges operate on a clone so the
// caller's document is never mutated.
func (c Campaign) Clone() Campaign {
	out := c
	if c.Themes != nil {
		out.Themes = make([]Theme, len(c.Themes))
		for i := range c.Themes {
			out.Themes[i] = c.Themes[i].Clone()
		}
	}
	out.NegativeKeywords = cloneStrings(c.NegativeKeywords)
	out.Callouts = cloneStrings(c.Callouts)
	if c.Sitelinks != nil {
		out.Sitelinks = make([]Sitelink, len(c.Sitelinks))
		copy(out.Sitelinks, c.Sitelinks)
	}
	return out
}

// Clone returns a deep copy of the theme.
func (t Theme) Clone() Theme {
	out := t
	if t.AdGroups != nil {
		out.AdGroups = make([]AdGroup, len(t.AdGroups))
		for i := range t.AdGroups {
			out.AdGroups[i] = t.AdGroups[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the ad group.
func (g AdGroup) Clone() AdGroup {
	out := g
	if g.Keywords != nil {
		out.Keywords = make([]Keyword, len(g.Keywords))
		copy(out.Keywords, g.Keywords)
	}
	if g.Ads != nil {
		out.Ads = make([]ResponsiveAd, len(g.Ads))
		for i := range g.Ads {
			out.Ads[i] = g.Ads[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the ad.
func (a ResponsiveAd) Clone() ResponsiveAd {
	return ResponsiveAd{
		Headlines:    cloneStrings(a.Headlines),
		Descriptions: cloneStrings(a.Descriptions),
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
