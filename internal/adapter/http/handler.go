package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"adforge/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. It holds the campaign usecase to execute business logic, a logger
// for structured logging and a validator for request bodies. Routes are
// registered on a chi.Router for convenient method handling.
type Handler struct {
	svc      port.CampaignUseCase
	logger   *slog.Logger
	validate *validator.Validate
	router   chi.Router
}

// NewHandler creates a handler with all routes configured. The generation
// endpoints are stateless and take the campaign in the request body; the
// stored-campaign endpoints address documents by id.
func NewHandler(svc port.CampaignUseCase, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger, validate: validator.New()}
	r := chi.NewRouter()

	r.Route("/api/v1/campaigns", func(r chi.Router) {
		r.Post("/generate", h.handleGenerate)
		r.Post("/regenerate", h.handleRegenerate)
		r.Post("/export", h.handleExport)

		r.Post("/", h.handleSave)
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
		r.Get("/{id}/export", h.handleExportStored)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// errorResponse is the JSON body of every non-2xx answer. Kind is set for
// generation failures so clients can react to the failure class without
// parsing the message.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// decodeBody decodes and validates a JSON request body. It writes the 400
// response itself and reports whether the handler should continue.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
		return false
	}
	return true
}

// writeGenerationFailure maps a Generate/Regenerate error onto a status code.
// Credential problems are the caller's to fix (401), exhausted validation
// retries are a semantic failure of the upstream model (422), everything
// else the provider did wrong is a bad gateway.
func (h *Handler) writeGenerationFailure(w http.ResponseWriter, err error) {
	var genErr *port.GenerationError
	if !errors.As(err, &genErr) {
		h.logger.Error("generation error", slog.Any("error", err))
		h.writeJSON(w, http.StatusBadGateway, errorResponse{Error: "generation failed"})
		return
	}

	status := http.StatusBadGateway
	switch genErr.Kind {
	case port.FailureMissingCredential:
		status = http.StatusUnauthorized
	case port.FailureValidation:
		status = http.StatusUnprocessableEntity
	}
	h.writeJSON(w, status, errorResponse{Error: genErr.Error(), Kind: string(genErr.Kind)})
}

// writeStoreFailure maps repository errors onto a status code.
func (h *Handler) writeStoreFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, port.ErrCampaignNotFound) {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: port.ErrCampaignNotFound.Error()})
		return
	}
	h.logger.Error("storage error", slog.Any("error", err))
	h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// encoding should rarely fail; log and move on
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
