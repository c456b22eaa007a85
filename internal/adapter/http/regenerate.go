package httpadapter

import (
	"net/http"

	"adforge/internal/core/domain"
	"adforge/internal/core/port"
)

// regenerateRequest is the body of POST /api/v1/campaigns/regenerate. The
// endpoint is stateless: the caller sends the whole campaign document and
// receives a new one back.
type regenerateRequest struct {
	Campaign     domain.Campaign `json:"campaign" validate:"required"`
	ContentType  string          `json:"contentType" validate:"required"`
	Target       targetRequest   `json:"target"`
	Instructions string          `json:"instructions"`

	modelSettings
}

// targetRequest selects the part of the campaign to regenerate. Indices are
// preferred; names are accepted for callers that still address parts by
// display name. Anything that does not resolve falls back to the whole
// campaign, reported through the warning field of the response.
type targetRequest struct {
	Scope        string `json:"scope" validate:"omitempty,oneof=campaign theme adGroup"`
	ThemeIndex   *int   `json:"themeIndex"`
	AdGroupIndex *int   `json:"adGroupIndex"`
	ThemeName    string `json:"themeName"`
	AdGroupName  string `json:"adGroupName"`
}

// toTarget translates the wire target into a domain target. Absent indices
// become -1 so the resolution step degrades them explicitly.
func (t targetRequest) toTarget(c domain.Campaign) domain.Target {
	themeIdx, groupIdx := -1, -1
	if t.ThemeIndex != nil {
		themeIdx = *t.ThemeIndex
	}
	if t.AdGroupIndex != nil {
		groupIdx = *t.AdGroupIndex
	}

	switch t.Scope {
	case "campaign":
		return domain.CampaignTarget()
	case "theme":
		return domain.ThemeTarget(themeIdx)
	case "adGroup":
		return domain.AdGroupTarget(themeIdx, groupIdx)
	}

	if t.ThemeName != "" || t.AdGroupName != "" {
		return domain.TargetFromNames(c, t.ThemeName, t.AdGroupName)
	}
	if t.AdGroupIndex != nil {
		return domain.AdGroupTarget(themeIdx, groupIdx)
	}
	if t.ThemeIndex != nil {
		return domain.ThemeTarget(themeIdx)
	}
	return domain.CampaignTarget()
}

// regenerateResponse carries the merged campaign plus how the run went.
type regenerateResponse struct {
	Campaign domain.Campaign `json:"campaign"`
	Warning  string          `json:"warning,omitempty"`
	Attempts int             `json:"attempts"`
}

// handleRegenerate regenerates the selected part of the submitted campaign.
func (h *Handler) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	var req regenerateRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	contentType, err := domain.ParseContentType(req.ContentType)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.svc.Regenerate(r.Context(), port.RegenerateParams{
		Campaign:     req.Campaign,
		ContentType:  contentType,
		Target:       req.Target.toTarget(req.Campaign),
		Instructions: req.Instructions,
		Settings:     req.toPort(),
	})
	if err != nil {
		h.writeGenerationFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, regenerateResponse{
		Campaign: result.Campaign,
		Warning:  result.Warning,
		Attempts: result.Attempts,
	})
}
