package usecase

import (
	"fmt"
	"strings"

	"adforge/internal/core/domain"
	"adforge/internal/core/port"
)

// systemPrompt pins the model to its role and to JSON-only answers for every
// call this service makes.
const systemPrompt = "You are an expert Google Ads strategist. " +
	"You always answer with a single JSON object and no other text."

// campaignShape is the strict JSON-shape example appended to regeneration
// prompts. It mirrors the wire contract of domain.Campaign's themes subtree.
const campaignShape = `{
  "themes": [
    {
      "name": "Theme name",
      "adGroups": [
        {
          "name": "Ad group name",
          "matchType": "exact|phrase|broad",
          "keywords": [
            {"keyword": "search term", "matchType": "exact|phrase|broad"}
          ],
          "ads": [
            {"headlines": ["up to 30 characters"], "descriptions": ["up to 90 characters"]}
          ]
        }
      ]
    }
  ]
}`

// generationShape extends campaignShape with the campaign-level fields only
// the initial generation produces.
const generationShape = `{
  "campaignName": "Campaign name",
  "themes": [
    {
      "name": "Theme name",
      "adGroups": [
        {
          "name": "Ad group name",
          "matchType": "exact|phrase|broad",
          "keywords": [
            {"keyword": "search term", "matchType": "exact|phrase|broad"}
          ],
          "ads": [
            {"headlines": ["up to 30 characters"], "descriptions": ["up to 90 characters"]}
          ]
        }
      ]
    }
  ],
  "negativeKeywords": ["term to exclude"],
  "bidStrategy": "Maximize Clicks",
  "sitelinks": [{"text": "Sitelink text", "url": "https://example.com/page"}],
  "callouts": ["Callout text"]
}`

// defaultThemeCount applies when a generation request does not ask for a
// specific number of themes.
const defaultThemeCount = 3

// buildRegenerationPrompt produces the user message for one regeneration
// attempt. It is a pure function of its inputs.
//
// The prompt always lists every theme and ad group so the model can tell
// "regenerate" from "preserve", always states the exact theme and ad-group
// totals the answer must reproduce, and ends with the JSON shape and a
// count-your-output checklist. On attempts after the first it opens with an
// escalation notice restating the totals and the previous rejection reason.
// User instructions are included verbatim and take priority over the built-in
// rules.
func buildRegenerationPrompt(c domain.Campaign, ct domain.ContentType, tgt domain.Target, attempt int, lastReason, instructions string) string {
	themes, groups := c.ThemeCount(), c.AdGroupCount()

	var b strings.Builder
	if attempt > 1 {
		fmt.Fprintf(&b, "IMPORTANT — attempt %d. Your previous response was rejected: %s\n", attempt, lastReason)
		fmt.Fprintf(&b, "Your answer MUST contain exactly %d themes and exactly %d ad groups in total. Recount before answering.\n\n",
			themes, groups)
	}

	b.WriteString("You are updating an existing Google Ads search campaign.\n")
	if c.Name != "" {
		fmt.Fprintf(&b, "Campaign: %s\n", c.Name)
	}
	if c.LandingPageURL != "" {
		fmt.Fprintf(&b, "Landing page: %s\n", c.LandingPageURL)
	}
	fmt.Fprintf(&b, "\nTask: %s\n", taskDescription(ct, tgt))

	if instructions != "" {
		b.WriteString("\nUSER INSTRUCTIONS — these take priority over every rule below:\n")
		b.WriteString(instructions)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nCurrent campaign structure (%d themes, %d ad groups in total):\n", themes, groups)
	writeCampaignListing(&b, c, ct, tgt)

	b.WriteString("\nRules:\n")
	fmt.Fprintf(&b, "- Return exactly %d themes and exactly %d ad groups in total, in the same order as listed.\n", themes, groups)
	b.WriteString("- Every headline must be at most 30 characters; every description at most 90 characters.\n")
	b.WriteString("- Each ad may hold up to 15 headlines and 4 descriptions.\n")
	b.WriteString("- Sections marked KEEP must be echoed unchanged, word for word.\n")
	switch {
	case ct == domain.ContentAds:
		b.WriteString("- Keep every theme name, ad group name, match type and keyword exactly as listed.\n")
		b.WriteString("- Write completely new ads for the sections marked REPLACE ADS; do not reuse the existing headlines or descriptions shown above.\n")
	case ct == domain.ContentKeywords:
		b.WriteString("- Write fresh keywords for the sections marked REGENERATE; fewer than 20% may repeat the existing ones.\n")
		b.WriteString("- Names of regenerated themes and ad groups may change to fit the new keywords.\n")
		b.WriteString("- Echo the existing ads of every ad group unchanged; this task does not rewrite ads.\n")
	default:
		b.WriteString("- Write fresh keywords and completely new ads for the sections marked REGENERATE; fewer than 20% may repeat existing text.\n")
		b.WriteString("- Names of regenerated themes and ad groups may change to fit the new content.\n")
	}

	b.WriteString("\nRespond with a single JSON object in exactly this shape:\n")
	b.WriteString(campaignShape)
	b.WriteString("\n\nBefore answering, count your output: ")
	fmt.Fprintf(&b, "%d themes, %d ad groups in total, every headline at most 30 characters, every description at most 90 characters.\n", themes, groups)
	return b.String()
}

// taskDescription renders the one-line task statement for the content type
// and resolved target.
func taskDescription(ct domain.ContentType, tgt domain.Target) string {
	var what string
	switch ct {
	case domain.ContentAds:
		what = "write new responsive search ads"
	case domain.ContentKeywords:
		what = "generate new keywords"
	default:
		what = "generate new keywords and new responsive search ads"
	}
	return fmt.Sprintf("%s for %s, preserving everything outside that scope.", what, tgt.String())
}

// writeCampaignListing renders every theme and ad group with a
// regenerate-or-preserve marker. In-scope ad groups of an ads regeneration
// show their current ads as do-not-repeat negative examples; everything else
// is shown as context to be echoed.
func writeCampaignListing(b *strings.Builder, c domain.Campaign, ct domain.ContentType, tgt domain.Target) {
	for i := range c.Themes {
		theme := &c.Themes[i]
		fmt.Fprintf(b, "Theme %d: %q %s\n", i+1, theme.Name, themeMarker(ct, tgt, i))
		for j := range theme.AdGroups {
			g := &theme.AdGroups[j]
			fmt.Fprintf(b, "  Ad group %d.%d: %q", i+1, j+1, g.Name)
			if g.MatchType != "" {
				fmt.Fprintf(b, " (match type: %s)", g.MatchType)
			}
			fmt.Fprintf(b, " %s\n", groupMarker(ct, tgt, i, j))
			if len(g.Keywords) > 0 {
				fmt.Fprintf(b, "    Keywords: %s\n", joinKeywords(g.Keywords))
			}
			for k, ad := range g.Ads {
				label := "Existing ad"
				if ct.RegeneratesAds() && tgt.InScope(i, j) {
					label = "Existing ad — do NOT repeat"
				}
				fmt.Fprintf(b, "    %s %d: headlines: %s | descriptions: %s\n",
					label, k+1, strings.Join(ad.Headlines, "; "), strings.Join(ad.Descriptions, "; "))
			}
		}
	}
}

func themeMarker(ct domain.ContentType, tgt domain.Target, themeIdx int) string {
	if !tgt.ThemeInScope(themeIdx) {
		return "[KEEP — echo unchanged]"
	}
	if ct.RegeneratesKeywords() && tgt.Scope != domain.ScopeAdGroup {
		return "[REGENERATE — a new name is allowed]"
	}
	if tgt.Scope == domain.ScopeAdGroup {
		return "[contains the ad group to update]"
	}
	return "[keep the name; update the ad groups below]"
}

func groupMarker(ct domain.ContentType, tgt domain.Target, themeIdx, groupIdx int) string {
	if !tgt.InScope(themeIdx, groupIdx) {
		return "[KEEP — echo unchanged]"
	}
	switch {
	case ct == domain.ContentAds:
		return "[REPLACE ADS — keep name, match type and keywords]"
	case ct == domain.ContentKeywords:
		return "[REGENERATE — new keywords, a new name is allowed, keep the ads]"
	default:
		return "[REGENERATE — new keywords and new ads, a new name is allowed]"
	}
}

func joinKeywords(keywords []domain.Keyword) string {
	parts := make([]string, len(keywords))
	for i, kw := range keywords {
		parts[i] = kw.Text
	}
	return strings.Join(parts, "; ")
}

// buildGenerationPrompt produces the user message for the one-shot initial
// generation.
func buildGenerationPrompt(p port.GenerateParams) string {
	themeCount := p.ThemeCount
	if themeCount <= 0 {
		themeCount = defaultThemeCount
	}

	var b strings.Builder
	b.WriteString("Create a complete Google Ads search campaign.\n\n")
	fmt.Fprintf(&b, "Business: %s\n", p.Description)
	if p.LandingPageURL != "" {
		fmt.Fprintf(&b, "Landing page: %s\n", p.LandingPageURL)
	}
	if p.TargetAudience != "" {
		fmt.Fprintf(&b, "Target audience: %s\n", p.TargetAudience)
	}
	if p.BrandTone != "" {
		fmt.Fprintf(&b, "Brand tone: %s\n", p.BrandTone)
	}

	if p.Instructions != "" {
		b.WriteString("\nUSER INSTRUCTIONS — these take priority over every rule below:\n")
		b.WriteString(p.Instructions)
		b.WriteString("\n")
	}

	b.WriteString("\nRules:\n")
	fmt.Fprintf(&b, "- Create exactly %d keyword themes, each a distinct search intent.\n", themeCount)
	b.WriteString("- Give every theme 1 or 2 ad groups with 8-15 keywords each; mix exact, phrase and broad match.\n")
	b.WriteString("- Give every ad group 2 responsive search ads, each with 8-15 headlines (at most 30 characters) and 3-4 descriptions (at most 90 characters).\n")
	b.WriteString("- Add campaign-level negative keywords that filter out irrelevant traffic.\n")
	b.WriteString("- Suggest a bid strategy, 2-4 sitelinks and 2-4 callouts.\n")
	b.WriteString("\nRespond with a single JSON object in exactly this shape:\n")
	b.WriteString(generationShape)
	b.WriteString("\n")
	return b.String()
}
