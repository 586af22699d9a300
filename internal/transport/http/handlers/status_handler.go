package handlers

import (
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/luka90/amora/internal/presence"
)

// StatusHandler serves the peer status poll: is a profile online, and is it
// typing in a given conversation. Both flags come from TTL caches and decay
// to false on their own.
type StatusHandler struct {
	presence presence.Store
}

func NewStatusHandler(pres presence.Store) *StatusHandler {
	return &StatusHandler{presence: pres}
}

func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid profile ID")
		return
	}

	online, err := h.presence.IsOnline(r.Context(), profileID)
	if err != nil {
		log.Printf("ERROR presence read: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	resp := map[string]any{"online": online}

	if convStr := r.URL.Query().Get("conversation"); convStr != "" {
		convID, err := uuid.Parse(convStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
			return
		}
		typing, err := h.presence.IsTyping(r.Context(), convID, profileID)
		if err != nil {
			log.Printf("ERROR typing read: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
			return
		}
		resp["typing"] = typing
	}

	writeJSON(w, http.StatusOK, resp)
}
