package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"adforge/internal/core/domain"
)

// dupThreshold is the maximum tolerated duplication ratio. A ratio of exactly
// 20% still passes; only exceeding it rejects.
const dupThreshold = 0.20

// validationResult is the validator's verdict. Reason is surfaced to the
// caller verbatim when every attempt fails.
type validationResult struct {
	Accepted bool
	Reason   string
}

func accept() validationResult {
	return validationResult{Accepted: true}
}

func reject(format string, args ...any) validationResult {
	return validationResult{Reason: fmt.Sprintf(format, args...)}
}

// validateCandidate decides whether a parsed model response may merge into
// the original document. Checks run in a fixed order and the first failure
// short-circuits: themes presence, structural counts (keywords/both only),
// length limits (always, over the whole response), duplication ratios over
// the in-scope subtree. Correspondence with the original is positional for
// every content type.
func validateCandidate(original, candidate domain.Campaign, ct domain.ContentType, tgt domain.Target) validationResult {
	if candidate.Themes == nil {
		return reject("response has no themes")
	}

	// AdsOnly is exempt: it merges by position and tolerates the model
	// echoing a subset of the tree.
	if ct.RegeneratesKeywords() {
		wantThemes, wantGroups := original.ThemeCount(), original.AdGroupCount()
		gotThemes, gotGroups := candidate.ThemeCount(), candidate.AdGroupCount()
		if gotThemes != wantThemes || gotGroups != wantGroups {
			return reject("structure mismatch: expected %d themes and %d ad groups, got %d themes and %d ad groups",
				wantThemes, wantGroups, gotThemes, gotGroups)
		}
	}

	if offenders := collectLengthOffenders(candidate); len(offenders) > 0 {
		return reject("length limits exceeded: %s", strings.Join(offenders, "; "))
	}

	return validateDuplication(original, candidate, ct, tgt)
}

// collectLengthOffenders names every headline over 30 characters and every
// description over 90, across the entire parsed response regardless of scope.
func collectLengthOffenders(c domain.Campaign) []string {
	var offenders []string
	for i := range c.Themes {
		for j := range c.Themes[i].AdGroups {
			for _, ad := range c.Themes[i].AdGroups[j].Ads {
				for _, h := range ad.Headlines {
					if n := utf8.RuneCountInString(h); n > domain.HeadlineMaxLen {
						offenders = append(offenders,
							fmt.Sprintf("headline %q is %d characters (limit %d)", h, n, domain.HeadlineMaxLen))
					}
				}
				for _, d := range ad.Descriptions {
					if n := utf8.RuneCountInString(d); n > domain.DescriptionMaxLen {
						offenders = append(offenders,
							fmt.Sprintf("description %q is %d characters (limit %d)", d, n, domain.DescriptionMaxLen))
					}
				}
			}
		}
	}
	return offenders
}

// validateDuplication compares the regenerated in-scope subtree against
// case-insensitive trimmed sets of the original's in-scope texts. Keyword
// duplication is measured against the regenerated keyword count; headline and
// description duplication against the regenerated ad count times the per-ad
// maxima.
func validateDuplication(original, candidate domain.Campaign, ct domain.ContentType, tgt domain.Target) validationResult {
	existing := collectScopeTexts(original, tgt)
	fresh := collectScopeTexts(candidate, tgt)

	if ct.RegeneratesKeywords() && len(fresh.keywords) > 0 {
		dup := countMatches(fresh.keywords, existing.keywordSet)
		ratio := float64(dup) / float64(len(fresh.keywords))
		if ratio > dupThreshold {
			return reject("too many duplicate keywords: %d of %d regenerated keywords match existing ones (%.0f%%, limit %.0f%%)",
				dup, len(fresh.keywords), ratio*100, dupThreshold*100)
		}
	}

	if ct.RegeneratesAds() && fresh.adCount > 0 {
		if dup := countMatches(fresh.headlines, existing.headlineSet); dup > 0 {
			ratio := float64(dup) / float64(fresh.adCount*domain.MaxHeadlinesPerAd)
			if ratio > dupThreshold {
				return reject("too many duplicate headlines: %d regenerated headlines match existing ones (%.0f%%, limit %.0f%%)",
					dup, ratio*100, dupThreshold*100)
			}
		}
		if dup := countMatches(fresh.descriptions, existing.descriptionSet); dup > 0 {
			ratio := float64(dup) / float64(fresh.adCount*domain.MaxDescriptionsPerAd)
			if ratio > dupThreshold {
				return reject("too many duplicate descriptions: %d regenerated descriptions match existing ones (%.0f%%, limit %.0f%%)",
					dup, ratio*100, dupThreshold*100)
			}
		}
	}

	return accept()
}

// scopeTexts carries the texts of one document's in-scope subtree, both as
// ordered slices (for counting the regenerated side) and as normalized sets
// (for membership tests on the original side).
type scopeTexts struct {
	keywords     []string
	headlines    []string
	descriptions []string
	adCount      int

	keywordSet     map[string]struct{}
	headlineSet    map[string]struct{}
	descriptionSet map[string]struct{}
}

func collectScopeTexts(c domain.Campaign, tgt domain.Target) scopeTexts {
	out := scopeTexts{
		keywordSet:     make(map[string]struct{}),
		headlineSet:    make(map[string]struct{}),
		descriptionSet: make(map[string]struct{}),
	}
	for i := range c.Themes {
		for j := range c.Themes[i].AdGroups {
			if !tgt.InScope(i, j) {
				continue
			}
			g := &c.Themes[i].AdGroups[j]
			for _, kw := range g.Keywords {
				key := normalizeText(kw.Text)
				out.keywords = append(out.keywords, key)
				out.keywordSet[key] = struct{}{}
			}
			out.adCount += len(g.Ads)
			for _, ad := range g.Ads {
				for _, h := range ad.Headlines {
					key := normalizeText(h)
					out.headlines = append(out.headlines, key)
					out.headlineSet[key] = struct{}{}
				}
				for _, d := range ad.Descriptions {
					key := normalizeText(d)
					out.descriptions = append(out.descriptions, key)
					out.descriptionSet[key] = struct{}{}
				}
			}
		}
	}
	return out
}

func countMatches(items []string, set map[string]struct{}) int {
	n := 0
	for _, item := range items {
		if _, ok := set[item]; ok {
			n++
		}
	}
	return n
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
