package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/triviadeck/triviadeck/internal/trivia"
)

// GameCreateRequest is the request body for creating a game session.
type GameCreateRequest struct {
	BoardID string   `json:"boardId"`
	Name    *string  `json:"name"`
	Players []string `json:"players"`
}

func (req *GameCreateRequest) validate() string {
	req.BoardID = strings.TrimSpace(req.BoardID)
	if req.BoardID == "" {
		return "boardId is required"
	}
	for i, name := range req.Players {
		req.Players[i] = strings.TrimSpace(name)
		if req.Players[i] == "" {
			return "player names must not be empty"
		}
	}
	return ""
}

// GameUpdateRequest updates a game's name and/or status. Absent fields are
// left untouched. Nothing at this layer forbids moving a COMPLETED game back
// to IN_PROGRESS.
type GameUpdateRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

func (req *GameUpdateRequest) validate() string {
	if req.Status != nil && !trivia.GameStatus(*req.Status).Valid() {
		return "status must be IN_PROGRESS or COMPLETED"
	}
	return ""
}

func handleListGames(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boardID := r.URL.Query().Get("boardId")
		status := trivia.GameStatus(r.URL.Query().Get("status"))
		if status != "" && !status.Valid() {
			writeError(w, http.StatusBadRequest, "status must be IN_PROGRESS or COMPLETED")
			return
		}

		games, err := store.ListGames(r.Context(), boardID, status)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, games)
	}
}

func handleCreateGame(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GameCreateRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		game, err := store.CreateGame(r.Context(), req.BoardID, req.Name, req.Players)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "board not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, game)
	}
}

func handleGetGame(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, err := store.GetGame(r.Context(), chi.URLParam(r, "gameID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, game)
	}
}

func handleUpdateGame(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GameUpdateRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		var status *trivia.GameStatus
		if req.Status != nil {
			s := trivia.GameStatus(*req.Status)
			status = &s
		}

		game, err := store.UpdateGame(r.Context(), chi.URLParam(r, "gameID"), req.Name, status)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, game)
	}
}

func handleDeleteGame(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteGame(r.Context(), chi.URLParam(r, "gameID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
