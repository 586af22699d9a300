package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/luka90/amora/internal/service"
	"github.com/luka90/amora/internal/transport/http/middleware"
)

type ConversationHandler struct {
	chatService *service.ChatService
}

func NewConversationHandler(chatService *service.ChatService) *ConversationHandler {
	return &ConversationHandler{chatService: chatService}
}

// List returns the caller's inbox: conversations with unread counts and
// last-message times.
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	convs, err := h.chatService.ListConversations(r.Context(), profileID)
	if err != nil {
		log.Printf("ERROR list conversations: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, convs)
}

// GetOrCreate starts (or returns) the conversation with a matched profile.
func (h *ConversationHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	var input struct {
		ProfileID uuid.UUID `json:"profile_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.ProfileID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "MISSING_PROFILE_ID", "profile_id is required")
		return
	}

	conv, err := h.chatService.GetOrCreateConversation(r.Context(), profileID, input.ProfileID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotMatched):
			writeError(w, http.StatusForbidden, "NOT_MATCHED", "You can only message matched profiles")
		case errors.Is(err, service.ErrInvalidParticipants):
			writeError(w, http.StatusBadRequest, "INVALID_PARTICIPANTS", "Cannot start this conversation")
		default:
			log.Printf("ERROR get or create conversation: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

// ListMessages returns the conversation's messages in creation order.
func (h *ConversationHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())
	convID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	messages, err := h.chatService.ListMessages(r.Context(), profileID, convID)
	if err != nil {
		h.writeChatError(w, "list messages", err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// SendMessage appends a message over HTTP; connected sessions receive it
// through the same broadcast path as WebSocket sends.
func (h *ConversationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())
	convID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	var input struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	msg, err := h.chatService.SendMessage(r.Context(), profileID, convID, input.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyBody):
			writeError(w, http.StatusBadRequest, "EMPTY_BODY", "Message body is required")
		default:
			h.writeChatError(w, "send message", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// MarkRead marks every unread message in the conversation as read for the
// caller and returns the remaining unread total.
func (h *ConversationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())
	convID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	marked, err := h.chatService.MarkConversationRead(r.Context(), profileID, convID)
	if err != nil {
		h.writeChatError(w, "mark read", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"marked_read": marked})
}

// UnreadCount returns the caller's unread total, scoped to one conversation
// via ?conversation=<id> or summed across all conversations.
func (h *ConversationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	if convStr := r.URL.Query().Get("conversation"); convStr != "" {
		convID, err := uuid.Parse(convStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
			return
		}
		count, err := h.chatService.UnreadCount(r.Context(), profileID, convID)
		if err != nil {
			h.writeChatError(w, "unread count", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"unread": count})
		return
	}

	count, err := h.chatService.TotalUnreadCount(r.Context(), profileID)
	if err != nil {
		log.Printf("ERROR total unread count: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread": count})
}

func (h *ConversationHandler) writeChatError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrConversationNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Conversation not found")
	case errors.Is(err, service.ErrNotParticipant):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a participant of this conversation")
	default:
		log.Printf("ERROR %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
