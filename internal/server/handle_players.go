package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/triviadeck/triviadeck/internal/trivia"
)

// PlayerCreateRequest is the request body for adding a player to a game.
type PlayerCreateRequest struct {
	Name string `json:"name"`
}

func (req *PlayerCreateRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	return ""
}

// ScoreEntry is one absolute score assignment in a batch update.
type ScoreEntry struct {
	ID    string `json:"id"`
	Score *int   `json:"score"`
}

// ScoresRequest is the batch score-override request body.
type ScoresRequest struct {
	Players []ScoreEntry `json:"players"`
}

// ScoresResponse carries the updated roster plus one result per requested
// entry, in request order, since entries succeed or fail independently.
type ScoresResponse struct {
	Players []trivia.GamePlayer `json:"players"`
	Results []ScoreUpdateResult `json:"results"`
}

func handleAddPlayer(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PlayerCreateRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		player, err := store.AddPlayer(r.Context(), chi.URLParam(r, "gameID"), req.Name)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, player)
	}
}

func handleSetScores(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScoresRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Players == nil {
			writeError(w, http.StatusBadRequest, "players array is required")
			return
		}

		updates := make([]ScoreUpdate, len(req.Players))
		for i, entry := range req.Players {
			updates[i] = ScoreUpdate{PlayerID: entry.ID, Score: entry.Score}
		}

		results, players, err := store.SetPlayerScores(r.Context(), chi.URLParam(r, "gameID"), updates)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, ScoresResponse{Players: players, Results: results})
	}
}
