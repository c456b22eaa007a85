package usecase

import "adforge/internal/core/domain"

// mergeCandidate applies an accepted model response onto the original
// document and returns the updated campaign. The original is cloned first
// and never mutated. Correspondence is positional for every content type,
// and positions that do not exist in the original are never written: the
// model cannot grow the tree by echoing extra themes or ad groups.
//
// Strategy by content type:
//   - ads only: replace the `ads` field of in-scope ad groups present in
//     both documents; names, match types and keywords stay untouched no
//     matter what the model echoed.
//   - keywords (and both) over the whole campaign: wholesale replacement of
//     the themes sequence; there is no preserve/replace split left to make.
//   - keywords over a targeted scope: overwrite the in-scope theme's name
//     and the in-scope ad groups' names/keywords; ads are never touched.
//   - both over a targeted scope: the union of the two, replacing the
//     names/keywords and ads of the in-scope positions.
func mergeCandidate(original, candidate domain.Campaign, ct domain.ContentType, tgt domain.Target) domain.Campaign {
	merged := original.Clone()

	if ct.RegeneratesKeywords() && tgt.Scope == domain.ScopeCampaign {
		merged.Themes = candidate.Clone().Themes
		return merged
	}

	for i := range merged.Themes {
		if i >= len(candidate.Themes) {
			break
		}
		src := &candidate.Themes[i]

		// A theme rename only applies when the whole theme is in scope;
		// regenerating a single ad group leaves its theme's name alone.
		if ct.RegeneratesKeywords() && tgt.Scope == domain.ScopeTheme && i == tgt.ThemeIndex {
			merged.Themes[i].Name = src.Name
		}

		for j := range merged.Themes[i].AdGroups {
			if j >= len(src.AdGroups) || !tgt.InScope(i, j) {
				continue
			}
			dst := &merged.Themes[i].AdGroups[j]
			srcGroup := src.AdGroups[j].Clone()

			if ct.RegeneratesKeywords() {
				dst.Name = srcGroup.Name
				dst.Keywords = srcGroup.Keywords
			}
			if ct.RegeneratesAds() {
				dst.Ads = srcGroup.Ads
			}
		}
	}
	return merged
}
