package server

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, store Store, db *sql.DB, spaDir string) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("TriviaDeck API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	r.Route("/api", func(r chi.Router) {
		r.Route("/boards", func(r chi.Router) {
			r.Get("/", handleListBoards(store))
			r.Post("/", handleCreateBoard(store))
			r.Get("/{boardID}", handleGetBoard(store))
			r.Put("/{boardID}", handleReplaceBoard(store))
			r.Delete("/{boardID}", handleDeleteBoard(store))
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/", handleListGames(store))
			r.Post("/", handleCreateGame(store))
			r.Get("/{gameID}", handleGetGame(store))
			r.Put("/{gameID}", handleUpdateGame(store))
			r.Delete("/{gameID}", handleDeleteGame(store))

			r.Post("/{gameID}/players", handleAddPlayer(store))
			r.Put("/{gameID}/players", handleSetScores(store))

			r.Post("/{gameID}/clues/{clueID}", handleResolveClue(store))
			r.Delete("/{gameID}/clues/{clueID}", handleReverseClue(store))
		})
	})

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
