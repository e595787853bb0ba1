package server

import (
	"context"
	"log/slog"
)

// SeedDemo creates a demo board and a game against it if no boards exist.
// Idempotent: does nothing on a non-empty database.
func SeedDemo(ctx context.Context, logger *slog.Logger, store Store) error {
	boards, err := store.ListBoards(ctx)
	if err != nil {
		return err
	}
	if len(boards) > 0 {
		return nil
	}

	board, err := store.CreateBoard(ctx, "Demo Board")
	if err != nil {
		return err
	}

	name := "Friday Night Trivia"
	if _, err := store.CreateGame(ctx, board.ID, &name, []string{"Alice", "Bob"}); err != nil {
		return err
	}

	logger.Info("demo board and game seeded", "board_id", board.ID)
	return nil
}
