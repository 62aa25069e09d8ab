package api

import (
	"encoding/json"
	"log"
	"net/http"
)

type chatRequest struct {
	Message string `json:"message"`
}

// handleChat answers a single terminology question
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		respondWithMessage(w, http.StatusBadRequest, "message is required")
		return
	}

	reply := s.bot.Answer(r.Context(), req.Message)
	writeJSON(w, http.StatusOK, map[string]interface{}{"reply": reply})
}

// handleChatWS runs the chat over a websocket: each text frame is one
// question, each response frame one reply
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Chat websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			// Normal closure or client gone; either way the session is over
			return
		}
		if req.Message == "" {
			continue
		}

		reply := s.bot.Answer(r.Context(), req.Message)
		if err := conn.WriteJSON(map[string]interface{}{"reply": reply}); err != nil {
			return
		}
	}
}
