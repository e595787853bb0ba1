// Package trivia defines the core domain types and the clue-resolution
// arithmetic. It has zero external dependencies — everything here is pure Go.
package trivia

// GameStatus is the lifecycle state of a game session.
type GameStatus string

const (
	GameInProgress GameStatus = "IN_PROGRESS"
	GameCompleted  GameStatus = "COMPLETED"
)

// Valid reports whether s is a known game status.
func (s GameStatus) Valid() bool {
	return s == GameInProgress || s == GameCompleted
}

// Outcome is how a clue was resolved in a game.
type Outcome string

const (
	OutcomeCorrect   Outcome = "CORRECT"
	OutcomeIncorrect Outcome = "INCORRECT"
	OutcomeSkipped   Outcome = "SKIPPED"
)

// Valid reports whether o is a known outcome.
func (o Outcome) Valid() bool {
	return o == OutcomeCorrect || o == OutcomeIncorrect || o == OutcomeSkipped
}

// ReverseDelta returns the score adjustment that exactly undoes the effect of
// recording outcome o for a clue worth clueValue points. It is computed from
// the ledger entry's own fields and the clue's canonical value, never from a
// score snapshot, so it stays correct even if the player's score was edited
// between resolve and reverse.
func ReverseDelta(o Outcome, clueValue int) int {
	switch o {
	case OutcomeCorrect:
		return -clueValue
	case OutcomeIncorrect:
		return clueValue
	default:
		return 0
	}
}

// Clue is a question/answer pair worth a fixed positive point value.
// Position is the clue's index within its category, dense 0..N-1.
type Clue struct {
	ID       string `json:"id"`
	Value    int    `json:"value"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"order"`
}

// Category owns an ordered list of clues within a board.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"order"`
	Clues    []Clue `json:"clues"`
}

// Board is a named collection of ordered categories.
type Board struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Categories []Category `json:"categories"`
	CreatedAt  string     `json:"createdAt"`
	UpdatedAt  string     `json:"updatedAt"`
}

// GamePlayer is a roster entry. Score is stored, not derived from the
// ledger, and may go negative. Position is append-only.
type GamePlayer struct {
	ID       string `json:"id"`
	GameID   string `json:"gameId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Position int    `json:"order"`
}

// ClueResult is the ledger entry recording how a clue was resolved in a
// game. At most one exists per (GameID, ClueID) pair; a clue is revealed
// for a game iff its entry exists.
type ClueResult struct {
	GameID   string  `json:"gameId"`
	ClueID   string  `json:"clueId"`
	PlayerID *string `json:"playerId"`
	Outcome  Outcome `json:"result"`
}

// Game is one play-through of a board with its own roster and ledger.
type Game struct {
	ID          string       `json:"id"`
	BoardID     string       `json:"boardId"`
	Name        *string      `json:"name"`
	Status      GameStatus   `json:"status"`
	Players     []GamePlayer `json:"players"`
	ClueResults []ClueResult `json:"clueResults"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

// Resolved reports whether clueID has a ledger entry in g.
func (g Game) Resolved(clueID string) bool {
	for _, r := range g.ClueResults {
		if r.ClueID == clueID {
			return true
		}
	}
	return false
}
