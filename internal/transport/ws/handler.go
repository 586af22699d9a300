package ws

import (
	"log"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"nhooyr.io/websocket"

	"github.com/luka90/amora/internal/presence"
	"github.com/luka90/amora/internal/service"
)

// ServeWS returns an HTTP handler that upgrades to WebSocket for one
// conversation. Auth is done via ?token=xxx query param (WebSocket can't
// send headers). Unauthenticated connections are rejected outright rather
// than downgraded to anonymous, and only participants may join the room.
func ServeWS(hub *Hub, chat *service.ChatService, pres presence.Store, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := r.URL.Query().Get("token")
		if tokenStr == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		profileID, err := validateToken(tokenStr, jwtSecret)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		conversationID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "invalid conversation id", http.StatusBadRequest)
			return
		}

		ok, err := chat.IsParticipant(r.Context(), profileID, conversationID)
		if err != nil {
			log.Printf("ws: participant check: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "not a participant", http.StatusForbidden)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // Allow any origin (dev mode)
		})
		if err != nil {
			log.Printf("ws: accept error: %v", err)
			return
		}

		if err := pres.MarkOnline(r.Context(), profileID); err != nil {
			log.Printf("ws: presence mark for %s: %v", profileID, err)
		}

		client := NewClient(hub, conn, profileID, conversationID, chat, pres)
		hub.Join(client)

		// Start read/write pumps in goroutines
		go client.WritePump()
		go client.ReadPump()
	}
}

func validateToken(tokenStr, secret string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(sub)
}
