package repository

import (
	"context"

	"snake-scores/internal/domain"
)

// GameRepository exposes persistence operations for Game records.
type GameRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, game *domain.Game) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Game, error)
	UpdateScore(ctx context.Context, id int64, score int) error
	UpdateStatus(ctx context.Context, id int64, status domain.GameStatus) error
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	ActivePlayers(ctx context.Context) ([]domain.ActivePlayer, error)
}
