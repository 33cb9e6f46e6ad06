package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"snake-scores/internal/domain"
	"snake-scores/internal/repository"
)

const createGamesTable = `
CREATE TABLE IF NOT EXISTS games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	score INTEGER NOT NULL DEFAULT 0,
	game_mode TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'playing',
	created_at DATETIME NOT NULL
);
`

type GameRepository struct {
	db *sql.DB
}

func NewGameRepository(db *sql.DB) repository.GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createGamesTable); err != nil {
		return fmt.Errorf("create games table: %w", err)
	}
	return nil
}

func (r *GameRepository) Create(ctx context.Context, game *domain.Game) (int64, error) {
	game.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO games (user_id, score, game_mode, status, created_at)
VALUES (?, ?, ?, ?, ?)`,
		game.UserID,
		game.Score,
		string(game.GameMode),
		string(game.Status),
		game.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert game: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("game last insert id: %w", err)
	}
	game.ID = id
	return id, nil
}

func (r *GameRepository) Get(ctx context.Context, id int64) (*domain.Game, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, score, game_mode, status, created_at
FROM games
WHERE id = ?`,
		id,
	)
	return scanGame(row)
}

func (r *GameRepository) UpdateScore(ctx context.Context, id int64, score int) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE games SET score = ? WHERE id = ?`,
		score, id,
	)
	if err != nil {
		return fmt.Errorf("update game score: %w", err)
	}
	return requireRow(res)
}

func (r *GameRepository) UpdateStatus(ctx context.Context, id int64, status domain.GameStatus) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE games SET status = ? WHERE id = ?`,
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("update game status: %w", err)
	}
	return requireRow(res)
}

// Leaderboard returns finished games ranked by score. Ties are broken by game
// id so equal scores list in creation order.
func (r *GameRepository) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT u.id, u.username, g.score
FROM games g
JOIN users u ON u.id = g.user_id
WHERE g.status = ?
ORDER BY g.score DESC, g.id ASC
LIMIT ?`,
		string(domain.GameStatusFinished), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []domain.LeaderboardEntry{}
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Score); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}
	return entries, nil
}

func (r *GameRepository) ActivePlayers(ctx context.Context) ([]domain.ActivePlayer, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT u.id, u.username, g.score, g.status, g.game_mode
FROM games g
JOIN users u ON u.id = g.user_id
WHERE g.status = ?
ORDER BY g.id ASC`,
		string(domain.GameStatusPlaying),
	)
	if err != nil {
		return nil, fmt.Errorf("query active players: %w", err)
	}
	defer rows.Close()

	players := []domain.ActivePlayer{}
	for rows.Next() {
		var p domain.ActivePlayer
		if err := rows.Scan(&p.UserID, &p.Username, &p.Score, &p.Status, &p.GameMode); err != nil {
			return nil, fmt.Errorf("scan active player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active players: %w", err)
	}
	return players, nil
}

func scanGame(row *sql.Row) (*domain.Game, error) {
	var game domain.Game
	if err := row.Scan(
		&game.ID,
		&game.UserID,
		&game.Score,
		&game.GameMode,
		&game.Status,
		&game.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("game: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan game: %w", err)
	}
	return &game, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("game: %w", repository.ErrNotFound)
	}
	return nil
}
