package server

import (
	"context"
	"errors"

	"github.com/triviadeck/triviadeck/internal/trivia"
)

var ErrNotFound = errors.New("not found")

// ClueOutcome is one entry of a resolve request: an outcome to record for
// the clue, optionally attributed to a player with a score adjustment.
type ClueOutcome struct {
	PlayerID    *string
	Outcome     trivia.Outcome
	ScoreChange *int
}

// ScoreUpdate sets a player's score to an absolute value.
type ScoreUpdate struct {
	PlayerID string
	Score    *int
}

// ScoreUpdateResult reports the fate of a single ScoreUpdate. Batch score
// updates are best-effort: each entry succeeds or fails independently.
type ScoreUpdateResult struct {
	PlayerID string `json:"playerId"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

type Store interface {
	ListBoards(ctx context.Context) ([]trivia.Board, error)
	CreateBoard(ctx context.Context, name string) (trivia.Board, error)
	GetBoard(ctx context.Context, id string) (trivia.Board, error)
	ReplaceBoard(ctx context.Context, id, name string, categories []CategoryInput) (trivia.Board, error)
	DeleteBoard(ctx context.Context, id string) error
	BoardExists(ctx context.Context, id string) (bool, error)

	ListGames(ctx context.Context, boardID string, status trivia.GameStatus) ([]trivia.Game, error)
	CreateGame(ctx context.Context, boardID string, name *string, playerNames []string) (trivia.Game, error)
	GetGame(ctx context.Context, id string) (trivia.Game, error)
	UpdateGame(ctx context.Context, id string, name *string, status *trivia.GameStatus) (trivia.Game, error)
	DeleteGame(ctx context.Context, id string) error

	AddPlayer(ctx context.Context, gameID, name string) (trivia.GamePlayer, error)
	SetPlayerScores(ctx context.Context, gameID string, updates []ScoreUpdate) ([]ScoreUpdateResult, []trivia.GamePlayer, error)

	ResolveClue(ctx context.Context, gameID, clueID string, outcomes []ClueOutcome) (trivia.Game, error)
	ReverseClue(ctx context.Context, gameID, clueID string) (trivia.Game, error)
	IsClueResolved(ctx context.Context, gameID, clueID string) (bool, error)
	ListResolvedClues(ctx context.Context, gameID string) ([]string, error)
	ClueValue(ctx context.Context, clueID string) (int, error)
}
