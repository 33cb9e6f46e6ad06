package service

import (
	"context"
	"errors"

	"snake-scores/internal/domain"
	"snake-scores/internal/repository"
)

const leaderboardLimit = 10

var (
	// ErrGameNotFound is returned when the referenced game does not exist.
	ErrGameNotFound = errors.New("game not found")
	// ErrInvalidGameMode is returned for a mode outside the supported set.
	ErrInvalidGameMode = errors.New("invalid game mode")
	// ErrInvalidStatus is returned for a status outside the supported set.
	ErrInvalidStatus = errors.New("invalid game status")
)

// GameService coordinates game lifecycle and ranking queries.
type GameService interface {
	StartGame(ctx context.Context, userID int64, mode domain.GameMode) (*domain.Game, error)
	GetGame(ctx context.Context, id int64) (*domain.Game, error)
	UpdateScore(ctx context.Context, id int64, score int) (*domain.Game, error)
	UpdateStatus(ctx context.Context, id int64, status domain.GameStatus) (*domain.Game, error)
	Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
	ActivePlayers(ctx context.Context) ([]domain.ActivePlayer, error)
}

type gameService struct {
	games repository.GameRepository
	users repository.UserRepository
}

func NewGameService(games repository.GameRepository, users repository.UserRepository) GameService {
	return &gameService{
		games: games,
		users: users,
	}
}

// StartGame inserts a fresh game for the user with score 0 in the playing
// state. The owning user must already exist.
func (s *gameService) StartGame(ctx context.Context, userID int64, mode domain.GameMode) (*domain.Game, error) {
	if !mode.Valid() {
		return nil, ErrInvalidGameMode
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	game := &domain.Game{
		UserID:   userID,
		Score:    0,
		GameMode: mode,
		Status:   domain.GameStatusPlaying,
	}
	if _, err := s.games.Create(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *gameService) GetGame(ctx context.Context, id int64) (*domain.Game, error) {
	game, err := s.games.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return game, nil
}

// UpdateScore overwrites the score unconditionally; a later call may lower it.
func (s *gameService) UpdateScore(ctx context.Context, id int64, score int) (*domain.Game, error) {
	if err := s.games.UpdateScore(ctx, id, score); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return s.GetGame(ctx, id)
}

// UpdateStatus overwrites the status unconditionally; no transition rules are
// enforced beyond membership in the status enum.
func (s *gameService) UpdateStatus(ctx context.Context, id int64, status domain.GameStatus) (*domain.Game, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.games.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return s.GetGame(ctx, id)
}

func (s *gameService) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	return s.games.Leaderboard(ctx, leaderboardLimit)
}

func (s *gameService) ActivePlayers(ctx context.Context) ([]domain.ActivePlayer, error) {
	return s.games.ActivePlayers(ctx)
}
