package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/triviadeck/triviadeck/internal/trivia"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Path parameter declarations; the reflector rejects operations whose URL
// placeholders have no matching request-structure field.
type boardIDParams struct {
	BoardID string `path:"boardID"`
}

type gameIDParams struct {
	GameID string `path:"gameID"`
}

type gameClueParams struct {
	GameID string `path:"gameID"`
	ClueID string `path:"clueID"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "TriviaDeck API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for authoring trivia boards and running live games against them.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/boards
	listBoards, _ := r.NewOperationContext(http.MethodGet, "/api/boards")
	listBoards.SetSummary("List boards")
	listBoards.SetDescription("Returns all boards with their category/clue trees, most recently updated first.")
	listBoards.AddRespStructure([]trivia.Board{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listBoards)

	// POST /api/boards
	createBoard, _ := r.NewOperationContext(http.MethodPost, "/api/boards")
	createBoard.SetSummary("Create board")
	createBoard.SetDescription("Creates a board pre-filled with the default 6x5 grid of blank clues.")
	createBoard.AddReqStructure(BoardCreateRequest{})
	createBoard.AddRespStructure(trivia.Board{}, openapi.WithHTTPStatus(http.StatusCreated))
	createBoard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(createBoard)

	// GET /api/boards/{boardID}
	getBoard, _ := r.NewOperationContext(http.MethodGet, "/api/boards/{boardID}")
	getBoard.SetSummary("Get board")
	getBoard.SetDescription("Returns a board with categories and clues in position order.")
	getBoard.AddReqStructure(boardIDParams{})
	getBoard.AddRespStructure(trivia.Board{}, openapi.WithHTTPStatus(http.StatusOK))
	getBoard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getBoard)

	// PUT /api/boards/{boardID}
	replaceBoard, _ := r.NewOperationContext(http.MethodPut, "/api/boards/{boardID}")
	replaceBoard.SetSummary("Replace board")
	replaceBoard.SetDescription("Reconciles the board against the desired tree: updates items with known ids, creates the rest, deletes anything missing. Atomic.")
	replaceBoard.AddReqStructure(boardIDParams{})
	replaceBoard.AddReqStructure(BoardReplaceRequest{})
	replaceBoard.AddRespStructure(trivia.Board{}, openapi.WithHTTPStatus(http.StatusOK))
	replaceBoard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	replaceBoard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(replaceBoard)

	// DELETE /api/boards/{boardID}
	deleteBoard, _ := r.NewOperationContext(http.MethodDelete, "/api/boards/{boardID}")
	deleteBoard.SetSummary("Delete board")
	deleteBoard.SetDescription("Deletes a board along with its categories, clues, and games.")
	deleteBoard.AddReqStructure(boardIDParams{})
	deleteBoard.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteBoard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteBoard)

	// GET /api/games
	listGames, _ := r.NewOperationContext(http.MethodGet, "/api/games")
	listGames.SetSummary("List games")
	listGames.SetDescription("Returns games with rosters and clue results, optionally filtered by boardId and status query parameters.")
	listGames.AddRespStructure([]trivia.Game{}, openapi.WithHTTPStatus(http.StatusOK))
	listGames.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(listGames)

	// POST /api/games
	createGame, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	createGame.SetSummary("Create game")
	createGame.SetDescription("Creates a game session against a board with an initial roster.")
	createGame.AddReqStructure(GameCreateRequest{})
	createGame.AddRespStructure(trivia.Game{}, openapi.WithHTTPStatus(http.StatusCreated))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(createGame)

	// GET /api/games/{gameID}
	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}")
	getGame.SetSummary("Get game")
	getGame.SetDescription("Returns the game snapshot: players in roster order plus the clue-result ledger.")
	getGame.AddReqStructure(gameIDParams{})
	getGame.AddRespStructure(trivia.Game{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGame)

	// PUT /api/games/{gameID}
	updateGame, _ := r.NewOperationContext(http.MethodPut, "/api/games/{gameID}")
	updateGame.SetSummary("Update game")
	updateGame.SetDescription("Updates the game's name and/or status.")
	updateGame.AddReqStructure(gameIDParams{})
	updateGame.AddReqStructure(GameUpdateRequest{})
	updateGame.AddRespStructure(trivia.Game{}, openapi.WithHTTPStatus(http.StatusOK))
	updateGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	updateGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(updateGame)

	// DELETE /api/games/{gameID}
	deleteGame, _ := r.NewOperationContext(http.MethodDelete, "/api/games/{gameID}")
	deleteGame.SetSummary("Delete game")
	deleteGame.SetDescription("Deletes a game session with its roster and ledger.")
	deleteGame.AddReqStructure(gameIDParams{})
	deleteGame.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteGame)

	// POST /api/games/{gameID}/players
	addPlayer, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/players")
	addPlayer.SetSummary("Add player")
	addPlayer.SetDescription("Appends a player to the roster at the next position.")
	addPlayer.AddReqStructure(gameIDParams{})
	addPlayer.AddReqStructure(PlayerCreateRequest{})
	addPlayer.AddRespStructure(trivia.GamePlayer{}, openapi.WithHTTPStatus(http.StatusCreated))
	addPlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	addPlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(addPlayer)

	// PUT /api/games/{gameID}/players
	setScores, _ := r.NewOperationContext(http.MethodPut, "/api/games/{gameID}/players")
	setScores.SetSummary("Set player scores")
	setScores.SetDescription("Sets absolute scores for players. Entries are applied independently; each gets its own result.")
	setScores.AddReqStructure(gameIDParams{})
	setScores.AddReqStructure(ScoresRequest{})
	setScores.AddRespStructure(ScoresResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	setScores.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	setScores.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(setScores)

	// POST /api/games/{gameID}/clues/{clueID}
	resolveClue, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/clues/{clueID}")
	resolveClue.SetSummary("Resolve clue")
	resolveClue.SetDescription("Records outcomes for a clue, applying score deltas atomically. Re-resolving replaces the prior ledger entry.")
	resolveClue.AddReqStructure(gameClueParams{})
	resolveClue.AddReqStructure(ResolveRequest{})
	resolveClue.AddRespStructure(trivia.Game{}, openapi.WithHTTPStatus(http.StatusOK))
	resolveClue.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	resolveClue.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(resolveClue)

	// DELETE /api/games/{gameID}/clues/{clueID}
	reverseClue, _ := r.NewOperationContext(http.MethodDelete, "/api/games/{gameID}/clues/{clueID}")
	reverseClue.SetSummary("Reverse clue")
	reverseClue.SetDescription("Reactivates a resolved clue: undoes its exact score effect and removes the ledger entry.")
	reverseClue.AddReqStructure(gameClueParams{})
	reverseClue.AddRespStructure(trivia.Game{}, openapi.WithHTTPStatus(http.StatusOK))
	reverseClue.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(reverseClue)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(data)
	}
}
