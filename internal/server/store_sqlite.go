package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/triviadeck/triviadeck/internal/trivia"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// --- Boards ---

func (s *SQLiteStore) ListBoards(ctx context.Context) ([]trivia.Board, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM boards
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []trivia.Board{}
	for rows.Next() {
		var b trivia.Board
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range boards {
		cats, err := s.loadCategories(ctx, boards[i].ID)
		if err != nil {
			return nil, err
		}
		boards[i].Categories = cats
	}
	return boards, nil
}

// CreateBoard creates a board pre-filled with the default 6x5 grid: six
// numbered categories, five blank clues each, valued 100 through 500.
func (s *SQLiteStore) CreateBoard(ctx context.Context, name string) (trivia.Board, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return trivia.Board{}, err
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO boards (name) VALUES (?) RETURNING id
	`, name).Scan(&id)
	if err != nil {
		return trivia.Board{}, err
	}

	for i := 0; i < 6; i++ {
		var catID string
		err = tx.QueryRowContext(ctx, `
			INSERT INTO categories (board_id, name, position)
			VALUES (?, ?, ?)
			RETURNING id
		`, id, fmt.Sprintf("Category %d", i+1), i).Scan(&catID)
		if err != nil {
			return trivia.Board{}, err
		}
		for j := 0; j < 5; j++ {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO clues (category_id, value, position) VALUES (?, ?, ?)
			`, catID, (j+1)*100, j)
			if err != nil {
				return trivia.Board{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return trivia.Board{}, err
	}
	return s.GetBoard(ctx, id)
}

func (s *SQLiteStore) GetBoard(ctx context.Context, id string) (trivia.Board, error) {
	var b trivia.Board
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM boards WHERE id = ?
	`, id).Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrNotFound
	}
	if err != nil {
		return b, err
	}

	b.Categories, err = s.loadCategories(ctx, id)
	return b, err
}

// ReplaceBoard reconciles the persisted category/clue tree against the
// desired one in a single transaction: items carrying a known id are updated
// in place, items without one are created, and anything absent from the
// desired tree is deleted. Positions are reassigned from list order, so they
// always come out dense 0..N-1.
func (s *SQLiteStore) ReplaceBoard(ctx context.Context, id, name string, categories []CategoryInput) (trivia.Board, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return trivia.Board{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE boards
		SET name = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE id = ?
	`, name, id)
	if err != nil {
		return trivia.Board{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return trivia.Board{}, ErrNotFound
	}

	existingCats, err := idSet(ctx, tx, `SELECT id FROM categories WHERE board_id = ?`, id)
	if err != nil {
		return trivia.Board{}, err
	}

	for i, cat := range categories {
		if cat.ID != "" && existingCats[cat.ID] {
			delete(existingCats, cat.ID)
			_, err = tx.ExecContext(ctx, `
				UPDATE categories SET name = ?, position = ? WHERE id = ?
			`, cat.Name, i, cat.ID)
			if err != nil {
				return trivia.Board{}, err
			}
			if err := reconcileClues(ctx, tx, cat.ID, cat.Clues); err != nil {
				return trivia.Board{}, err
			}
			continue
		}

		var catID string
		err = tx.QueryRowContext(ctx, `
			INSERT INTO categories (board_id, name, position)
			VALUES (?, ?, ?)
			RETURNING id
		`, id, cat.Name, i).Scan(&catID)
		if err != nil {
			return trivia.Board{}, err
		}
		for j, clue := range cat.Clues {
			if err := insertClue(ctx, tx, catID, clue, j); err != nil {
				return trivia.Board{}, err
			}
		}
	}

	// Whatever remains was dropped from the desired tree. Clues cascade.
	for catID := range existingCats {
		if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, catID); err != nil {
			return trivia.Board{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return trivia.Board{}, err
	}
	return s.GetBoard(ctx, id)
}

func reconcileClues(ctx context.Context, tx *sql.Tx, categoryID string, clues []ClueInput) error {
	existing, err := idSet(ctx, tx, `SELECT id FROM clues WHERE category_id = ?`, categoryID)
	if err != nil {
		return err
	}

	for j, clue := range clues {
		if clue.ID != "" && existing[clue.ID] {
			delete(existing, clue.ID)
			_, err = tx.ExecContext(ctx, `
				UPDATE clues SET value = ?, question = ?, answer = ?, position = ?
				WHERE id = ?
			`, clue.Value, clue.Question, clue.Answer, j, clue.ID)
			if err != nil {
				return err
			}
			continue
		}
		if err := insertClue(ctx, tx, categoryID, clue, j); err != nil {
			return err
		}
	}

	for clueID := range existing {
		if _, err := tx.ExecContext(ctx, `DELETE FROM clues WHERE id = ?`, clueID); err != nil {
			return err
		}
	}
	return nil
}

func insertClue(ctx context.Context, tx *sql.Tx, categoryID string, clue ClueInput, position int) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO clues (category_id, value, question, answer, position)
		VALUES (?, ?, ?, ?, ?)
	`, categoryID, clue.Value, clue.Question, clue.Answer, position)
	return err
}

func idSet(ctx context.Context, tx *sql.Tx, query string, args ...any) (map[string]bool, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// DeleteBoard removes the board and, through foreign keys, its categories,
// clues, and every game played against it.
func (s *SQLiteStore) DeleteBoard(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) BoardExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM boards WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *SQLiteStore) loadCategories(ctx context.Context, boardID string) ([]trivia.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, position FROM categories
		WHERE board_id = ?
		ORDER BY position
	`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := []trivia.Category{}
	for rows.Next() {
		var c trivia.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Position); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range cats {
		clues, err := s.loadClues(ctx, cats[i].ID)
		if err != nil {
			return nil, err
		}
		cats[i].Clues = clues
	}
	return cats, nil
}

func (s *SQLiteStore) loadClues(ctx context.Context, categoryID string) ([]trivia.Clue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, value, question, answer, position FROM clues
		WHERE category_id = ?
		ORDER BY position
	`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clues := []trivia.Clue{}
	for rows.Next() {
		var c trivia.Clue
		if err := rows.Scan(&c.ID, &c.Value, &c.Question, &c.Answer, &c.Position); err != nil {
			return nil, err
		}
		clues = append(clues, c)
	}
	return clues, rows.Err()
}

// --- Games ---

func (s *SQLiteStore) ListGames(ctx context.Context, boardID string, status trivia.GameStatus) ([]trivia.Game, error) {
	query := `SELECT id, board_id, name, status, created_at, updated_at FROM games`
	var conds []string
	var args []any
	if boardID != "" {
		conds = append(conds, `board_id = ?`)
		args = append(args, boardID)
	}
	if status != "" {
		conds = append(conds, `status = ?`)
		args = append(args, string(status))
	}
	for i, c := range conds {
		if i == 0 {
			query += ` WHERE ` + c
		} else {
			query += ` AND ` + c
		}
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []trivia.Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range games {
		if err := s.loadGameChildren(ctx, &games[i]); err != nil {
			return nil, err
		}
	}
	return games, nil
}

func (s *SQLiteStore) CreateGame(ctx context.Context, boardID string, name *string, playerNames []string) (trivia.Game, error) {
	exists, err := s.BoardExists(ctx, boardID)
	if err != nil {
		return trivia.Game{}, err
	}
	if !exists {
		return trivia.Game{}, ErrNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return trivia.Game{}, err
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO games (board_id, name) VALUES (?, ?) RETURNING id
	`, boardID, nullString(name)).Scan(&id)
	if err != nil {
		return trivia.Game{}, err
	}

	for i, playerName := range playerNames {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO game_players (game_id, name, position) VALUES (?, ?, ?)
		`, id, playerName, i)
		if err != nil {
			return trivia.Game{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return trivia.Game{}, err
	}
	return s.GetGame(ctx, id)
}

func (s *SQLiteStore) GetGame(ctx context.Context, id string) (trivia.Game, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, board_id, name, status, created_at, updated_at
		FROM games WHERE id = ?
	`, id)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return g, ErrNotFound
	}
	if err != nil {
		return g, err
	}
	return g, s.loadGameChildren(ctx, &g)
}

func (s *SQLiteStore) UpdateGame(ctx context.Context, id string, name *string, status *trivia.GameStatus) (trivia.Game, error) {
	var statusArg *string
	if status != nil {
		v := string(*status)
		statusArg = &v
	}

	var updated string
	err := s.db.QueryRowContext(ctx, `
		UPDATE games
		SET name = COALESCE(?, name),
			status = COALESCE(?, status),
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE id = ?
		RETURNING id
	`, nullString(name), nullString(statusArg), id).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return trivia.Game{}, ErrNotFound
	}
	if err != nil {
		return trivia.Game{}, err
	}
	return s.GetGame(ctx, id)
}

func (s *SQLiteStore) DeleteGame(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Players ---

// AddPlayer appends a player to the roster. The position subquery and the
// insert run as one statement, so concurrent adds cannot claim the same slot.
func (s *SQLiteStore) AddPlayer(ctx context.Context, gameID, name string) (trivia.GamePlayer, error) {
	exists, err := s.gameExists(ctx, gameID)
	if err != nil {
		return trivia.GamePlayer{}, err
	}
	if !exists {
		return trivia.GamePlayer{}, ErrNotFound
	}

	p := trivia.GamePlayer{GameID: gameID, Name: name}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO game_players (game_id, name, position)
		VALUES (?, ?, (SELECT COUNT(*) FROM game_players WHERE game_id = ?))
		RETURNING id, score, position
	`, gameID, name, gameID).Scan(&p.ID, &p.Score, &p.Position)
	return p, err
}

// SetPlayerScores applies each update independently: a bad entry is reported
// in its result slot and does not block the rest of the batch.
func (s *SQLiteStore) SetPlayerScores(ctx context.Context, gameID string, updates []ScoreUpdate) ([]ScoreUpdateResult, []trivia.GamePlayer, error) {
	exists, err := s.gameExists(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, ErrNotFound
	}

	results := make([]ScoreUpdateResult, 0, len(updates))
	for _, u := range updates {
		r := ScoreUpdateResult{PlayerID: u.PlayerID, OK: true}
		switch {
		case u.PlayerID == "" || u.Score == nil:
			r.OK = false
			r.Error = "id and score are required"
		default:
			res, err := s.db.ExecContext(ctx, `
				UPDATE game_players SET score = ? WHERE id = ? AND game_id = ?
			`, *u.Score, u.PlayerID, gameID)
			if err != nil {
				r.OK = false
				r.Error = "update failed"
			} else if n, _ := res.RowsAffected(); n == 0 {
				r.OK = false
				r.Error = "player not found"
			}
		}
		results = append(results, r)
	}

	players, err := s.loadPlayers(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	return results, players, nil
}

func (s *SQLiteStore) loadPlayers(ctx context.Context, gameID string) ([]trivia.GamePlayer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, game_id, name, score, position
		FROM game_players
		WHERE game_id = ?
		ORDER BY position
	`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []trivia.GamePlayer{}
	for rows.Next() {
		var p trivia.GamePlayer
		if err := rows.Scan(&p.ID, &p.GameID, &p.Name, &p.Score, &p.Position); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// --- Clue ledger ---

// ResolveClue records outcomes for a clue. Each entry upserts the single
// (game, clue) ledger row and applies its score delta in one transaction;
// entries are otherwise independent, so a failing entry (say, an unknown
// player) does not block the others. Entries with an unrecognized outcome
// are skipped. Because the ledger is keyed on (game, clue) alone, when a
// request carries several outcomes only the last one survives in the ledger,
// though every entry's score delta is applied.
func (s *SQLiteStore) ResolveClue(ctx context.Context, gameID, clueID string, outcomes []ClueOutcome) (trivia.Game, error) {
	exists, err := s.gameExists(ctx, gameID)
	if err != nil {
		return trivia.Game{}, err
	}
	if !exists {
		return trivia.Game{}, ErrNotFound
	}
	if _, err := s.ClueValue(ctx, clueID); err != nil {
		return trivia.Game{}, err
	}

	for _, oc := range outcomes {
		if !oc.Outcome.Valid() {
			continue
		}
		// Best-effort batch: an entry's error is deliberately dropped here;
		// its transaction rolled back without touching the ledger or scores.
		_ = s.applyOutcome(ctx, gameID, clueID, oc)
	}

	return s.GetGame(ctx, gameID)
}

func (s *SQLiteStore) applyOutcome(ctx context.Context, gameID, clueID string, oc ClueOutcome) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO clue_results (game_id, clue_id, player_id, outcome)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (game_id, clue_id)
		DO UPDATE SET player_id = excluded.player_id, outcome = excluded.outcome
	`, gameID, clueID, nullString(oc.PlayerID), string(oc.Outcome))
	if err != nil {
		return err
	}

	if oc.PlayerID != nil && oc.ScoreChange != nil {
		res, err := tx.ExecContext(ctx, `
			UPDATE game_players SET score = score + ? WHERE id = ? AND game_id = ?
		`, *oc.ScoreChange, *oc.PlayerID, gameID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
	}

	return tx.Commit()
}

// ReverseClue undoes a recorded clue result: the inverse score delta is
// recomputed from the stored outcome and the clue's canonical value, applied
// to the attributed player, and the ledger row deleted, all in one
// transaction. It never assumes the score is still what resolve left it at.
func (s *SQLiteStore) ReverseClue(ctx context.Context, gameID, clueID string) (trivia.Game, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return trivia.Game{}, err
	}
	defer tx.Rollback()

	var playerID sql.NullString
	var outcome string
	err = tx.QueryRowContext(ctx, `
		SELECT player_id, outcome FROM clue_results
		WHERE game_id = ? AND clue_id = ?
	`, gameID, clueID).Scan(&playerID, &outcome)
	if errors.Is(err, sql.ErrNoRows) {
		return trivia.Game{}, ErrNotFound
	}
	if err != nil {
		return trivia.Game{}, err
	}

	var value int
	err = tx.QueryRowContext(ctx, `SELECT value FROM clues WHERE id = ?`, clueID).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return trivia.Game{}, ErrNotFound
	}
	if err != nil {
		return trivia.Game{}, err
	}

	delta := trivia.ReverseDelta(trivia.Outcome(outcome), value)
	if playerID.Valid && delta != 0 {
		_, err = tx.ExecContext(ctx, `
			UPDATE game_players SET score = score + ? WHERE id = ?
		`, delta, playerID.String)
		if err != nil {
			return trivia.Game{}, err
		}
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM clue_results WHERE game_id = ? AND clue_id = ?
	`, gameID, clueID)
	if err != nil {
		return trivia.Game{}, err
	}

	if err := tx.Commit(); err != nil {
		return trivia.Game{}, err
	}
	return s.GetGame(ctx, gameID)
}

func (s *SQLiteStore) IsClueResolved(ctx context.Context, gameID, clueID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM clue_results WHERE game_id = ? AND clue_id = ?
	`, gameID, clueID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *SQLiteStore) ListResolvedClues(ctx context.Context, gameID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT clue_id FROM clue_results WHERE game_id = ?
	`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) ClueValue(ctx context.Context, clueID string) (int, error) {
	var value int
	err := s.db.QueryRowContext(ctx, `SELECT value FROM clues WHERE id = ?`, clueID).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return value, err
}

// --- helpers ---

func (s *SQLiteStore) gameExists(ctx context.Context, gameID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM games WHERE id = ?`, gameID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *SQLiteStore) loadGameChildren(ctx context.Context, g *trivia.Game) error {
	players, err := s.loadPlayers(ctx, g.ID)
	if err != nil {
		return err
	}
	g.Players = players

	rows, err := s.db.QueryContext(ctx, `
		SELECT game_id, clue_id, player_id, outcome
		FROM clue_results
		WHERE game_id = ?
	`, g.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	results := []trivia.ClueResult{}
	for rows.Next() {
		var r trivia.ClueResult
		var playerID sql.NullString
		if err := rows.Scan(&r.GameID, &r.ClueID, &playerID, &r.Outcome); err != nil {
			return err
		}
		if playerID.Valid {
			r.PlayerID = &playerID.String
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	g.ClueResults = results
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (trivia.Game, error) {
	var g trivia.Game
	var name sql.NullString
	err := row.Scan(&g.ID, &g.BoardID, &name, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return g, err
	}
	if name.Valid {
		g.Name = &name.String
	}
	return g, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
