package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hudumahub/HudumaFinder/internal/messaging"
	"github.com/hudumahub/HudumaFinder/internal/models"
	"github.com/hudumahub/HudumaFinder/internal/store"
	"github.com/hudumahub/HudumaFinder/internal/util"
)

// healthResponse is the GET /health payload.
type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// webhookResponse is the POST /webhook payload: the engine's reply plus
// the session id, which matters for callers that let the server assign one.
type webhookResponse struct {
	SessionID string                 `json:"session_id"`
	Reply     models.OutboundMessage `json:"reply"`
}

func healthHandler(sessions store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		n, err := sessions.Count()
		if err != nil {
			slog.Error("healthHandler failed to count sessions", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(healthResponse{Status: "ok", Sessions: n})
	}
}

// webhookHandler is the generic channel-adapter inbound endpoint. The body
// is a JSON models.InboundMessage; the engine's reply is returned
// synchronously, leaving wire-format rendering to the caller.
func webhookHandler(handler messaging.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var msg models.InboundMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			slog.Warn("webhookHandler rejected malformed body", "error", err)
			http.Error(w, "malformed JSON body", http.StatusBadRequest)
			return
		}
		if msg.SessionID == "" {
			// Anonymous callers get a server-assigned session id; they must
			// echo it back to continue the same conversation.
			msg.SessionID = util.GenerateSessionID()
			slog.Debug("webhookHandler assigned session id", "session_id", msg.SessionID)
		}
		if msg.Kind == "" {
			msg.Kind = models.MessageKindText
		}

		reply, err := handler.Handle(r.Context(), msg)
		if err != nil {
			slog.Warn("webhookHandler rejected message", "session_id", msg.SessionID, "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(webhookResponse{SessionID: msg.SessionID, Reply: reply})
	}
}
