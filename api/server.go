package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/gridgames/chainreaction/game/engine"
	"github.com/gridgames/chainreaction/game/service"
	"github.com/gridgames/chainreaction/transport/websocket"
)

// maxThinkDelay caps the optional presentation delay before an automated
// reply, so a client cannot park a request handler for minutes.
const maxThinkDelay = 5 * time.Second

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Match management
	api.HandleFunc("/matches", s.handleCreateMatch).Methods("POST")
	api.HandleFunc("/matches", s.handleListMatches).Methods("GET")
	api.HandleFunc("/matches/{id}", s.handleGetMatch).Methods("GET")
	api.HandleFunc("/matches/{id}", s.handleDeleteMatch).Methods("DELETE")

	// Game operations
	api.HandleFunc("/matches/{id}/state", s.handleGetGameState).Methods("GET")
	api.HandleFunc("/matches/{id}/scores", s.handleGetScores).Methods("GET")
	api.HandleFunc("/matches/{id}/move", s.handleMove).Methods("POST")
	api.HandleFunc("/matches/{id}/computer-move", s.handleComputerMove).Methods("POST")
	api.HandleFunc("/matches/{id}/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/matches/{id}/history", s.handleGetHistory).Methods("GET")

	// Health check
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static files for the browser UI
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Match Handlers

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode,omitempty"`
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	mode := service.Mode(req.Mode)
	if req.Mode == "" {
		mode = service.ModeTwoPlayer
	}

	info, err := s.service.CreateMatch(r.Context(), mode)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.service.ListMatches(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := r.URL.Query()
	order := query.Get("order") // "asc", "desc" (default: "desc")
	if order == "" {
		order = "desc"
	}

	sort.Slice(matches, func(i, j int) bool {
		if order == "asc" {
			return matches[i].LastAccessedAt.Before(matches[j].LastAccessedAt)
		}
		return matches[i].LastAccessedAt.After(matches[j].LastAccessedAt)
	})

	limit := len(matches)
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(matches) {
			limit = l
		}
	}
	matches = matches[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(matches),
		"matches": matches,
		"order":   order,
	})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	info, err := s.service.GetMatch(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	if err := s.service.DeleteMatch(r.Context(), matchID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Match %s deleted", matchID),
	})
}

// Game Operation Handlers

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	state, err := s.service.GetGameState(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleGetScores(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	report, err := s.service.GetScores(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	var req struct {
		Row    int          `json:"row"`
		Col    int          `json:"col"`
		Player engine.Owner `json:"player"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !req.Player.IsPlayer() {
		respondError(w, http.StatusBadRequest, "player must be player_a or player_b")
		return
	}

	result, err := s.service.Move(r.Context(), matchID, req.Row, req.Col, req.Player)
	if err != nil {
		if errors.Is(err, engine.ErrOutOfBounds) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.finishMove(matchID, result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleComputerMove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	var req struct {
		ThinkMS int `json:"think_ms,omitempty"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	// Optional pause so UIs can show the opponent "thinking".
	if req.ThinkMS > 0 {
		delay := time.Duration(req.ThinkMS) * time.Millisecond
		if delay > maxThinkDelay {
			delay = maxThinkDelay
		}
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	result, err := s.service.ComputerMove(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, service.ErrNotComputerMatch) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.finishMove(matchID, result)
	respondJSON(w, http.StatusOK, result)
}

// finishMove broadcasts the post-move state and writes the compact server log.
func (s *Server) finishMove(matchID string, result *service.MoveResult) {
	if result.Applied && s.hub != nil {
		state := result.GameState
		s.hub.BroadcastToMatch(matchID, &state)
	}

	if result.Applied && result.Move != nil {
		fmt.Printf("[MOVE] match=%s %s (%d,%d) explosions=%d rounds=%d captured=%d a=%d b=%d\n",
			matchID, result.Player, result.Move.Row, result.Move.Col,
			result.Outcome.Explosions, result.Outcome.Rounds, result.Outcome.CapturedUnits,
			result.GameState.Scores.PlayerA, result.GameState.Scores.PlayerB)
	} else if !result.Applied {
		fmt.Printf("[MOVE] match=%s %s REJECTED reason=%s\n",
			matchID, result.Player, result.RejectReason)
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	state, err := s.service.Reset(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastToMatch(matchID, state)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Game reset successfully",
		"state":   state,
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["id"]

	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetMoveHistory(r.Context(), matchID, opts)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("match")
	if matchID == "" {
		http.Error(w, "match parameter required", http.StatusBadRequest)
		return
	}

	// Verify the match exists before upgrading
	if _, err := s.service.GetMatch(context.Background(), matchID); err != nil {
		http.Error(w, "Invalid match", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, matchID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
