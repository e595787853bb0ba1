package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/triviadeck/triviadeck/internal/trivia"
)

// ResolveEntry is one outcome to record for a clue. ScoreChange is the
// signed delta to apply to the attributed player; by convention the caller
// sends +value for CORRECT and -value for INCORRECT.
type ResolveEntry struct {
	PlayerID    *string `json:"playerId"`
	Result      string  `json:"result"`
	ScoreChange *int    `json:"scoreChange"`
}

// ResolveRequest is the request body for recording clue results.
type ResolveRequest struct {
	Results []ResolveEntry `json:"results"`
}

func handleResolveClue(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResolveRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Results == nil {
			writeError(w, http.StatusBadRequest, "results array is required")
			return
		}

		outcomes := make([]ClueOutcome, len(req.Results))
		for i, entry := range req.Results {
			playerID := entry.PlayerID
			if playerID != nil && *playerID == "" {
				playerID = nil
			}
			outcomes[i] = ClueOutcome{
				PlayerID:    playerID,
				Outcome:     trivia.Outcome(entry.Result),
				ScoreChange: entry.ScoreChange,
			}
		}

		game, err := store.ResolveClue(r.Context(), chi.URLParam(r, "gameID"), chi.URLParam(r, "clueID"), outcomes)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game or clue not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, game)
	}
}

func handleReverseClue(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, err := store.ReverseClue(r.Context(), chi.URLParam(r, "gameID"), chi.URLParam(r, "clueID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "clue result not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, game)
	}
}
