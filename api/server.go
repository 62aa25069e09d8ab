package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"monetrix/auth"
	"monetrix/chatbot"
	"monetrix/service"

	"github.com/gorilla/websocket"
)

// Server handles HTTP API requests
type Server struct {
	analysis *service.AnalysisService
	auth     *auth.Manager
	bot      *chatbot.Bot
	upgrader websocket.Upgrader
}

// NewServer creates a new API server instance
func NewServer(analysisSvc *service.AnalysisService, authMgr *auth.Manager, bot *chatbot.Bot) *Server {
	return &Server{
		analysis: analysisSvc,
		auth:     authMgr,
		bot:      bot,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS is wide open on the JSON routes as well
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler builds the routing table with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Auth routes
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)

	// Analysis routes
	mux.HandleFunc("POST /api/analysis/create", s.requireAuth(s.handleCreateAnalysis))
	mux.HandleFunc("GET /api/analysis/latest", s.requireAuth(s.handleGetLatest))
	mux.HandleFunc("GET /api/analysis/history", s.requireAuth(s.handleGetHistory))
	mux.HandleFunc("GET /api/analysis/comparison/{periodId}", s.requireAuth(s.handleGetComparison))
	mux.HandleFunc("POST /api/analysis/report", s.requireAuth(s.handleExportReport))

	// Chatbot routes
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/chat/ws", s.handleChatWS)

	mux.HandleFunc("GET /health", s.handleHealth)

	return s.corsMiddleware(s.loggingMiddleware(mux))
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port int) error {
	serverAddr := fmt.Sprintf("0.0.0.0:%d", port)
	log.Printf("🚀 API Server starting on %s", serverAddr)
	return http.ListenAndServe(serverAddr, s.Handler())
}

// Middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

type contextKey string

const userIDKey contextKey = "userID"

// requireAuth resolves the bearer token to a user id and stores it on the
// request context. Requests without a valid session get 401.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		userID, err := s.auth.Authenticate(r.Context(), token)
		if err != nil {
			respondWithMessage(w, http.StatusUnauthorized, "Not authorized")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// userIDFrom returns the authenticated user id stored by requireAuth
func userIDFrom(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
