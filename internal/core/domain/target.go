package domain

import (
	"fmt"
	"strings"
)

// Scope names the subtree a regeneration is permitted to alter.
type Scope int

const (
	// ScopeCampaign addresses every theme and ad group.
	ScopeCampaign Scope = iota
	// ScopeTheme addresses one theme and all of its ad groups.
	ScopeTheme
	// ScopeAdGroup addresses a single ad group.
	ScopeAdGroup
)

// ContentType selects which fields a regeneration replaces.
type ContentType string

const (
	// ContentKeywords regenerates names and keywords; ads are never touched.
	ContentKeywords ContentType = "keywords"
	// ContentAds regenerates responsive ads only; names and keywords are
	// preserved verbatim.
	ContentAds ContentType = "rsa"
	// ContentBoth regenerates keywords and ads together.
	ContentBoth ContentType = "both"
)

// ParseContentType maps a wire value onto a ContentType.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(strings.ToLower(strings.TrimSpace(s))) {
	case ContentKeywords:
		return ContentKeywords, nil
	case ContentAds:
		return ContentAds, nil
	case ContentBoth:
		return ContentBoth, nil
	}
	return "", fmt.Errorf("unknown content type %q", s)
}

// RegeneratesKeywords reports whether names/keywords are replaced.
func (ct ContentType) RegeneratesKeywords() bool {
	return ct == ContentKeywords || ct == ContentBoth
}

// RegeneratesAds reports whether responsive ads are replaced.
func (ct ContentType) RegeneratesAds() bool {
	return ct == ContentAds || ct == ContentBoth
}

// Target addresses the subtree a regeneration replaces. Index-based
// addressing is canonical: regeneration is allowed to change names, so a name
// is never an identity key. Indices are ignored for ScopeCampaign.
type Target struct {
	Scope        Scope
	ThemeIndex   int
	AdGroupIndex int
}

// CampaignTarget addresses the whole campaign.
func CampaignTarget() Target {
	return Target{Scope: ScopeCampaign}
}

// ThemeTarget addresses one theme by position.
func ThemeTarget(themeIndex int) Target {
	return Target{Scope: ScopeTheme, ThemeIndex: themeIndex}
}

// AdGroupTarget addresses one ad group by position.
func AdGroupTarget(themeIndex, adGroupIndex int) Target {
	return Target{Scope: ScopeAdGroup, ThemeIndex: themeIndex, AdGroupIndex: adGroupIndex}
}

// TargetFromNames resolves the deprecated name-based addressing to indices.
// Matching is case-insensitive on trimmed names. A name that does not occur
// in the campaign yields an out-of-range index, which Resolve later degrades
// to a whole-campaign target.
func TargetFromNames(c Campaign, themeName, adGroupName string) Target {
	ti := -1
	for i := range c.Themes {
		if equalNames(c.Themes[i].Name, themeName) {
			ti = i
			break
		}
	}
	if adGroupName == "" {
		return ThemeTarget(ti)
	}
	if ti >= 0 {
		for j := range c.Themes[ti].AdGroups {
			if equalNames(c.Themes[ti].AdGroups[j].Name, adGroupName) {
				return AdGroupTarget(ti, j)
			}
		}
		return AdGroupTarget(ti, -1)
	}
	// No theme given or found: search every theme for the ad group name.
	for i := range c.Themes {
		for j := range c.Themes[i].AdGroups {
			if equalNames(c.Themes[i].AdGroups[j].Name, adGroupName) {
				return AdGroupTarget(i, j)
			}
		}
	}
	return AdGroupTarget(-1, -1)
}

func equalNames(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Resolve checks the target against the campaign's bounds. A target whose
// indices do not exist degrades to a whole-campaign target so the request can
// still make progress; the returned warning tells the caller which subtree
// was missing. An in-bounds target is returned unchanged with no warning.
func (t Target) Resolve(c Campaign) (Target, string) {
	switch t.Scope {
	case ScopeTheme:
		if t.ThemeIndex < 0 || t.ThemeIndex >= len(c.Themes) {
			return CampaignTarget(), fmt.Sprintf(
				"theme %d does not exist; regenerated the entire campaign instead", t.ThemeIndex)
		}
	case ScopeAdGroup:
		if t.ThemeIndex < 0 || t.ThemeIndex >= len(c.Themes) {
			return CampaignTarget(), fmt.Sprintf(
				"theme %d does not exist; regenerated the entire campaign instead", t.ThemeIndex)
		}
		if t.AdGroupIndex < 0 || t.AdGroupIndex >= len(c.Themes[t.ThemeIndex].AdGroups) {
			return CampaignTarget(), fmt.Sprintf(
				"ad group %d in theme %d does not exist; regenerated the entire campaign instead",
				t.AdGroupIndex, t.ThemeIndex)
		}
	}
	return t, ""
}

// InScope reports whether the ad group at (themeIdx, adGroupIdx) falls inside
// the target's subtree.
func (t Target) InScope(themeIdx, adGroupIdx int) bool {
	switch t.Scope {
	case ScopeCampaign:
		return true
	case ScopeTheme:
		return themeIdx == t.ThemeIndex
	case ScopeAdGroup:
		return themeIdx == t.ThemeIndex && adGroupIdx == t.AdGroupIndex
	}
	return false
}

// ThemeInScope reports whether any part of the theme falls inside the target.
func (t Target) ThemeInScope(themeIdx int) bool {
	switch t.Scope {
	case ScopeCampaign:
		return true
	case ScopeTheme, ScopeAdGroup:
		return themeIdx == t.ThemeIndex
	}
	return false
}

// String renders the target for prompts and messages.
func (t Target) String() string {
	switch t.Scope {
	case ScopeTheme:
		return fmt.Sprintf("theme %d", t.ThemeIndex+1)
	case ScopeAdGroup:
		return fmt.Sprintf("ad group %d of theme %d", t.AdGroupIndex+1, t.ThemeIndex+1)
	default:
		return "the entire campaign"
	}
}
