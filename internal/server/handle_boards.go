package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// BoardCreateRequest is the request body for creating a board.
type BoardCreateRequest struct {
	Name string `json:"name"`
}

func (req *BoardCreateRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	return ""
}

// ClueInput is one clue in a board replace request. Known ids mark existing
// clues; an empty id means create.
type ClueInput struct {
	ID       string `json:"id,omitempty"`
	Value    int    `json:"value"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// CategoryInput is one category in a board replace request.
type CategoryInput struct {
	ID    string      `json:"id,omitempty"`
	Name  string      `json:"name"`
	Clues []ClueInput `json:"clues"`
}

// BoardReplaceRequest is the full desired board tree.
type BoardReplaceRequest struct {
	Name       string          `json:"name"`
	Categories []CategoryInput `json:"categories"`
}

func (req *BoardReplaceRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	for i := range req.Categories {
		cat := &req.Categories[i]
		cat.Name = strings.TrimSpace(cat.Name)
		if cat.Name == "" {
			return "category name is required"
		}
		for _, clue := range cat.Clues {
			if clue.Value <= 0 {
				return "clue value must be a positive number"
			}
		}
	}
	return ""
}

func handleListBoards(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boards, err := store.ListBoards(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, boards)
	}
}

func handleCreateBoard(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BoardCreateRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		board, err := store.CreateBoard(r.Context(), req.Name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, board)
	}
}

func handleGetBoard(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := store.GetBoard(r.Context(), chi.URLParam(r, "boardID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "board not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, board)
	}
}

func handleReplaceBoard(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BoardReplaceRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		board, err := store.ReplaceBoard(r.Context(), chi.URLParam(r, "boardID"), req.Name, req.Categories)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "board not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, board)
	}
}

func handleDeleteBoard(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteBoard(r.Context(), chi.URLParam(r, "boardID"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "board not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
