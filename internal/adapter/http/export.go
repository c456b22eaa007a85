package httpadapter

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"adforge/internal/core/domain"
)

// handleExport renders the submitted campaign as CSV without storing it.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	h.writeCSV(w, req.Campaign)
}

// handleExportStored renders a stored campaign as CSV.
func (h *Handler) handleExportStored(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	rec, err := h.svc.GetCampaign(r.Context(), id)
	if err != nil {
		h.writeStoreFailure(w, err)
		return
	}
	h.writeCSV(w, rec.Campaign)
}

func (h *Handler) writeCSV(w http.ResponseWriter, c domain.Campaign) {
	out, err := h.svc.ExportCSV(c)
	if err != nil {
		h.writeStoreFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename(c.Name)+`"`)
	if _, err := w.Write(out); err != nil {
		h.logger.Error("write csv response error", slog.Any("error", err))
	}
}

// exportFilename derives a safe download name from the campaign name.
func exportFilename(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "campaign"
	}
	return slug + ".csv"
}
