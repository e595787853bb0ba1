package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/triviadeck/triviadeck/internal/trivia"
)

func TestCreateGameWithRoster(t *testing.T) {
	r, store := newTestServer(t)
	board, _ := seedBoardAndGame(t, store)

	w := doJSON(t, r, http.MethodPost, "/api/games", GameCreateRequest{
		BoardID: board.ID,
		Name:    strp("Team Night"),
		Players: []string{"Carol", "Dave", "Erin"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	game := decode[trivia.Game](t, w)
	if game.Status != trivia.GameInProgress {
		t.Errorf("status = %s, want IN_PROGRESS", game.Status)
	}
	if game.Name == nil || *game.Name != "Team Night" {
		t.Errorf("name = %v, want Team Night", game.Name)
	}
	if len(game.Players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(game.Players))
	}
	for i, p := range game.Players {
		if p.Position != i {
			t.Errorf("player %s position = %d, want %d", p.Name, p.Position, i)
		}
		if p.Score != 0 {
			t.Errorf("player %s score = %d, want 0", p.Name, p.Score)
		}
	}
	if len(game.ClueResults) != 0 {
		t.Errorf("new game should have an empty ledger, got %d entries", len(game.ClueResults))
	}
}

func TestCreateGameUnknownBoard(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/games", GameCreateRequest{BoardID: "nope"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCreateGameMissingBoardID(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/games", GameCreateRequest{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateGameStatus(t *testing.T) {
	r, store := newTestServer(t)
	_, game := seedBoardAndGame(t, store)

	w := doJSON(t, r, http.MethodPut, "/api/games/"+game.ID, GameUpdateRequest{Status: strp("COMPLETED")})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	got := decode[trivia.Game](t, w)
	if got.Status != trivia.GameCompleted {
		t.Errorf("status = %s, want COMPLETED", got.Status)
	}

	w = doJSON(t, r, http.MethodPut, "/api/games/"+game.ID, GameUpdateRequest{Status: strp("PAUSED")})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad status, got %d", w.Code)
	}
}

func TestAddPlayerAppendsPosition(t *testing.T) {
	r, store := newTestServer(t)
	_, game := seedBoardAndGame(t, store) // Alice(0), Bob(1)

	w := doJSON(t, r, http.MethodPost, "/api/games/"+game.ID+"/players", PlayerCreateRequest{Name: "Carol"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	p := decode[trivia.GamePlayer](t, w)
	if p.Position != 2 {
		t.Errorf("position = %d, want 2", p.Position)
	}
	if p.Score != 0 {
		t.Errorf("score = %d, want 0", p.Score)
	}
}

func TestAddPlayerValidation(t *testing.T) {
	r, store := newTestServer(t)
	_, game := seedBoardAndGame(t, store)

	w := doJSON(t, r, http.MethodPost, "/api/games/"+game.ID+"/players", PlayerCreateRequest{Name: ""})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/games/nope/players", PlayerCreateRequest{Name: "Carol"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSetScoresBestEffort(t *testing.T) {
	r, store := newTestServer(t)
	_, game := seedBoardAndGame(t, store)
	alice := playerID(t, game, "Alice")

	w := doJSON(t, r, http.MethodPut, "/api/games/"+game.ID+"/players", ScoresRequest{
		Players: []ScoreEntry{
			{ID: alice, Score: intp(50)},
			{ID: "nope", Score: intp(10)},
			{ID: "", Score: intp(5)},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decode[ScoresResponse](t, w)
	if len(resp.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(resp.Results))
	}
	if !resp.Results[0].OK {
		t.Errorf("first entry should succeed: %+v", resp.Results[0])
	}
	if resp.Results[1].OK || resp.Results[1].Error != "player not found" {
		t.Errorf("second entry = %+v, want player not found", resp.Results[1])
	}
	if resp.Results[2].OK {
		t.Errorf("third entry should fail validation: %+v", resp.Results[2])
	}

	for _, p := range resp.Players {
		if p.ID == alice && p.Score != 50 {
			t.Errorf("Alice score = %d, want 50", p.Score)
		}
	}
}

func TestListGamesFilters(t *testing.T) {
	r, store := newTestServer(t)
	ctx := context.Background()
	board, game := seedBoardAndGame(t, store)

	other, err := store.CreateBoard(ctx, "Other Board")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	if _, err := store.CreateGame(ctx, other.ID, nil, nil); err != nil {
		t.Fatalf("create game: %v", err)
	}

	status := trivia.GameCompleted
	if _, err := store.UpdateGame(ctx, game.ID, nil, &status); err != nil {
		t.Fatalf("update game: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/games", nil)
	if got := decode[[]trivia.Game](t, w); len(got) != 2 {
		t.Errorf("unfiltered list = %d games, want 2", len(got))
	}

	w = doJSON(t, r, http.MethodGet, "/api/games?boardId="+board.ID, nil)
	if got := decode[[]trivia.Game](t, w); len(got) != 1 || got[0].ID != game.ID {
		t.Errorf("boardId filter returned wrong games: %+v", got)
	}

	w = doJSON(t, r, http.MethodGet, "/api/games?status=IN_PROGRESS", nil)
	if got := decode[[]trivia.Game](t, w); len(got) != 1 || got[0].BoardID != other.ID {
		t.Errorf("status filter returned wrong games: %+v", got)
	}

	w = doJSON(t, r, http.MethodGet, "/api/games?status=bogus", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad status filter, got %d", w.Code)
	}
}

func TestDeleteGame(t *testing.T) {
	r, store := newTestServer(t)
	_, game := seedBoardAndGame(t, store)

	w := doJSON(t, r, http.MethodDelete, "/api/games/"+game.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/games/"+game.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}
