package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"adforge/internal/core/domain"
)

// pathID parses the {id} route parameter. It writes the 400 response itself
// and reports whether the handler should continue.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid campaign id"})
		return uuid.Nil, false
	}
	return id, true
}

// saveRequest is the body of POST and PUT on stored campaigns.
type saveRequest struct {
	Campaign domain.Campaign `json:"campaign" validate:"required"`
}

// handleSave stores a campaign document and returns the record with its
// fresh id.
func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	rec, err := h.svc.SaveCampaign(r.Context(), req.Campaign)
	if err != nil {
		h.writeStoreFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, rec)
}

// handleList returns summaries of all stored campaigns, newest first.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.ListCampaigns(r.Context())
	if err != nil {
		h.writeStoreFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summaries)
}

// handleGet returns one stored campaign record.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	rec, err := h.svc.GetCampaign(r.Context(), id)
	if err != nil {
		h.writeStoreFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

// handleUpdate replaces a stored campaign document.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req saveRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	rec, err := h.svc.UpdateCampaign(r.Context(), id, req.Campaign)
	if err != nil {
		h.writeStoreFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

// handleDelete removes a stored campaign.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteCampaign(r.Context(), id); err != nil {
		h.writeStoreFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
