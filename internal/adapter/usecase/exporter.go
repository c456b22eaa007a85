package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"adforge/internal/core/domain"
)

// Export row types.
const (
	rowTypeKeyword  = "Keyword"
	rowTypeAd       = "Responsive Search Ad"
	rowTypeNegative = "Campaign Negative Keyword"
)

// exportCSV renders the campaign as one Google Ads Editor style table: a
// keyword row per keyword, an ad row per responsive ad and a campaign-level
// negative keyword row per negative. Keyword text is formatted by match type
// at this boundary only (exact in brackets, phrase in quotes, broad bare);
// the stored document always keeps the raw text.
func exportCSV(c domain.Campaign) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader()); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for i := range c.Themes {
		theme := &c.Themes[i]
		for j := range theme.AdGroups {
			g := &theme.AdGroups[j]
			groupName := exportGroupName(theme.Name, g.Name)

			for _, kw := range g.Keywords {
				row := newExportRow()
				row[colCampaign] = c.Name
				row[colAdGroup] = groupName
				row[colRowType] = rowTypeKeyword
				row[colKeyword] = FormatKeyword(kw)
				row[colCriterion] = matchTypeLabel(kw.MatchType)
				if err := w.Write(row); err != nil {
					return nil, fmt.Errorf("write keyword row: %w", err)
				}
			}

			for _, ad := range g.Ads {
				row := newExportRow()
				row[colCampaign] = c.Name
				row[colAdGroup] = groupName
				row[colRowType] = rowTypeAd
				for k, h := range ad.Headlines {
					if k >= domain.MaxHeadlinesPerAd {
						break
					}
					row[colHeadline1+k] = h
				}
				for k, d := range ad.Descriptions {
					if k >= domain.MaxDescriptionsPerAd {
						break
					}
					row[colDescription1+k] = d
				}
				row[colFinalURL] = c.LandingPageURL
				if err := w.Write(row); err != nil {
					return nil, fmt.Errorf("write ad row: %w", err)
				}
			}
		}
	}

	for _, neg := range c.NegativeKeywords {
		row := newExportRow()
		row[colCampaign] = c.Name
		row[colRowType] = rowTypeNegative
		row[colKeyword] = neg
		row[colCriterion] = "Negative " + matchTypeLabel(domain.MatchBroad)
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write negative keyword row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Column indices of the export table.
const (
	colCampaign = iota
	colAdGroup
	colRowType
	colKeyword
	colCriterion
	colHeadline1
	colDescription1 = colHeadline1 + domain.MaxHeadlinesPerAd
	colFinalURL     = colDescription1 + domain.MaxDescriptionsPerAd
	exportColumns   = colFinalURL + 1
)

func exportHeader() []string {
	header := newExportRow()
	header[colCampaign] = "Campaign"
	header[colAdGroup] = "Ad Group"
	header[colRowType] = "Row Type"
	header[colKeyword] = "Keyword"
	header[colCriterion] = "Criterion Type"
	for i := 0; i < domain.MaxHeadlinesPerAd; i++ {
		header[colHeadline1+i] = fmt.Sprintf("Headline %d", i+1)
	}
	for i := 0; i < domain.MaxDescriptionsPerAd; i++ {
		header[colDescription1+i] = fmt.Sprintf("Description %d", i+1)
	}
	header[colFinalURL] = "Final URL"
	return header
}

func newExportRow() []string {
	return make([]string, exportColumns)
}

// exportGroupName qualifies an ad group with its theme so group names stay
// unique across the campaign after upload.
func exportGroupName(themeName, groupName string) string {
	themeName = strings.TrimSpace(themeName)
	groupName = strings.TrimSpace(groupName)
	if themeName == "" {
		return groupName
	}
	if groupName == "" {
		return themeName
	}
	return themeName + " - " + groupName
}

// FormatKeyword renders a keyword for display or export: exact match wrapped
// in brackets, phrase match in quotes, broad match bare.
func FormatKeyword(kw domain.Keyword) string {
	text := strings.TrimSpace(kw.Text)
	switch kw.MatchType {
	case domain.MatchExact:
		return "[" + text + "]"
	case domain.MatchPhrase:
		return `"` + text + `"`
	default:
		return text
	}
}

func matchTypeLabel(matchType string) string {
	switch matchType {
	case domain.MatchExact:
		return "Exact"
	case domain.MatchPhrase:
		return "Phrase"
	default:
		return "Broad"
	}
}
