package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/triviadeck/triviadeck/internal/database"
	"github.com/triviadeck/triviadeck/internal/migrations"
	"github.com/triviadeck/triviadeck/internal/trivia"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return db
}

func newTestServer(t *testing.T) (chi.Router, *SQLiteStore) {
	t.Helper()
	db := openTestDB(t)
	store := NewSQLiteStore(db)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	addRoutes(r, logger, store, db, "")
	return r, store
}

func doJSON(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

// seedBoardAndGame creates a one-category board ("Science", clues worth 100
// and 200) and a game with players Alice and Bob.
func seedBoardAndGame(t *testing.T, store *SQLiteStore) (trivia.Board, trivia.Game) {
	t.Helper()
	ctx := context.Background()

	board, err := store.CreateBoard(ctx, "Science Night")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	board, err = store.ReplaceBoard(ctx, board.ID, "Science Night", []CategoryInput{
		{Name: "Science", Clues: []ClueInput{
			{Value: 100, Question: "Lightest element?", Answer: "Hydrogen"},
			{Value: 200, Question: "Speed of light?", Answer: "299792458 m/s"},
		}},
	})
	if err != nil {
		t.Fatalf("replace board: %v", err)
	}

	game, err := store.CreateGame(ctx, board.ID, nil, []string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	return board, game
}

func playerScore(t *testing.T, g trivia.Game, name string) int {
	t.Helper()
	for _, p := range g.Players {
		if p.Name == name {
			return p.Score
		}
	}
	t.Fatalf("player %q not in game", name)
	return 0
}

func playerID(t *testing.T, g trivia.Game, name string) string {
	t.Helper()
	for _, p := range g.Players {
		if p.Name == name {
			return p.ID
		}
	}
	t.Fatalf("player %q not in game", name)
	return ""
}
