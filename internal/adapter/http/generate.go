package httpadapter

import (
	"net/http"

	"adforge/internal/core/port"
)

// generateRequest is the body of POST /api/v1/campaigns/generate.
type generateRequest struct {
	Description    string `json:"description" validate:"required"`
	LandingPageURL string `json:"landingPageUrl" validate:"omitempty,url"`
	TargetAudience string `json:"targetAudience"`
	BrandTone      string `json:"brandTone"`
	ThemeCount     int    `json:"themeCount" validate:"gte=0,lte=10"`
	Instructions   string `json:"instructions"`

	modelSettings
}

// modelSettings are the caller-supplied overrides shared by the generation
// endpoints. Every field is optional; server configuration fills the rest.
type modelSettings struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"maxTokens" validate:"gte=0"`
	APIKey    string `json:"apiKey"`
}

func (s modelSettings) toPort() port.ModelSettings {
	return port.ModelSettings{Model: s.Model, MaxTokens: s.MaxTokens, Credential: s.APIKey}
}

// handleGenerate builds a brand-new campaign from a business brief. On
// success it returns the campaign document; it is not stored.
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	campaign, err := h.svc.Generate(r.Context(), port.GenerateParams{
		Description:    req.Description,
		LandingPageURL: req.LandingPageURL,
		TargetAudience: req.TargetAudience,
		BrandTone:      req.BrandTone,
		ThemeCount:     req.ThemeCount,
		Instructions:   req.Instructions,
		Settings:       req.toPort(),
	})
	if err != nil {
		h.writeGenerationFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, campaign)
}
