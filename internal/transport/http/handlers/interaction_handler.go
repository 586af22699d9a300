package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/luka90/amora/internal/service"
	"github.com/luka90/amora/internal/transport/http/middleware"
	"github.com/luka90/amora/pkg/validator"
)

type InteractionHandler struct {
	interactionService *service.InteractionService
}

func NewInteractionHandler(interactionService *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

// Like registers a like toward the profile in the path. The response
// distinguishes a plain like from a (new) match.
func (h *InteractionHandler) Like(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid profile ID")
		return
	}

	result, err := h.interactionService.RegisterLike(r.Context(), profileID, targetID)
	if err != nil {
		log.Printf("ERROR register like: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *InteractionHandler) Skip(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid profile ID")
		return
	}

	if err := h.interactionService.Skip(r.Context(), profileID, targetID); err != nil {
		log.Printf("ERROR skip: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *InteractionHandler) Block(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid profile ID")
		return
	}

	if err := h.interactionService.Block(r.Context(), profileID, targetID); err != nil {
		if errors.Is(err, service.ErrCannotBlockSelf) {
			writeError(w, http.StatusBadRequest, "CANNOT_BLOCK_SELF", "Cannot block yourself")
		} else {
			log.Printf("ERROR block: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *InteractionHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid profile ID")
		return
	}

	if err := h.interactionService.Unblock(r.Context(), profileID, targetID); err != nil {
		log.Printf("ERROR unblock: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *InteractionHandler) Report(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid profile ID")
		return
	}

	var input struct {
		Reason      string `json:"reason"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateReport(input.Reason, input.Description); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	report, err := h.interactionService.Report(r.Context(), profileID, targetID, input.Reason, input.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCannotReportSelf):
			writeError(w, http.StatusBadRequest, "CANNOT_REPORT_SELF", "Cannot report yourself")
		case errors.Is(err, service.ErrInvalidReason):
			writeError(w, http.StatusBadRequest, "INVALID_REASON", "Unknown report reason")
		default:
			log.Printf("ERROR report: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, report)
}

func (h *InteractionHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	matches, err := h.interactionService.ListMatches(r.Context(), profileID)
	if err != nil {
		log.Printf("ERROR list matches: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, matches)
}
