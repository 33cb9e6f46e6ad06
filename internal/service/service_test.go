package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"snake-scores/internal/domain"
	"snake-scores/internal/repository"
)

// In-memory repository implementations used across the service tests.

type mockUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*domain.User)}
}

func (m *mockUserRepo) Init(context.Context) error { return nil }

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	for _, u := range m.users {
		if u.Username == user.Username {
			return 0, fmt.Errorf("user %q: %w", user.Username, repository.ErrDuplicate)
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now().UTC()
	stored := *user
	m.users[user.ID] = &stored
	return user.ID, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			found := *u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
	}
	found := *u
	return &found, nil
}

type mockGameRepo struct {
	users  *mockUserRepo
	games  map[int64]*domain.Game
	nextID int64
}

func newMockGameRepo(users *mockUserRepo) *mockGameRepo {
	return &mockGameRepo{users: users, games: make(map[int64]*domain.Game)}
}

func (m *mockGameRepo) Init(context.Context) error { return nil }

func (m *mockGameRepo) Create(_ context.Context, game *domain.Game) (int64, error) {
	m.nextID++
	game.ID = m.nextID
	game.CreatedAt = time.Now().UTC()
	stored := *game
	m.games[game.ID] = &stored
	return game.ID, nil
}

func (m *mockGameRepo) Get(_ context.Context, id int64) (*domain.Game, error) {
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("game: %w", repository.ErrNotFound)
	}
	found := *g
	return &found, nil
}

func (m *mockGameRepo) UpdateScore(_ context.Context, id int64, score int) error {
	g, ok := m.games[id]
	if !ok {
		return fmt.Errorf("game: %w", repository.ErrNotFound)
	}
	g.Score = score
	return nil
}

func (m *mockGameRepo) UpdateStatus(_ context.Context, id int64, status domain.GameStatus) error {
	g, ok := m.games[id]
	if !ok {
		return fmt.Errorf("game: %w", repository.ErrNotFound)
	}
	g.Status = status
	return nil
}

func (m *mockGameRepo) Leaderboard(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	var finished []*domain.Game
	for _, g := range m.games {
		if g.Status == domain.GameStatusFinished {
			finished = append(finished, g)
		}
	}
	sort.Slice(finished, func(i, j int) bool {
		if finished[i].Score != finished[j].Score {
			return finished[i].Score > finished[j].Score
		}
		return finished[i].ID < finished[j].ID
	})
	if len(finished) > limit {
		finished = finished[:limit]
	}

	entries := make([]domain.LeaderboardEntry, 0, len(finished))
	for _, g := range finished {
		u := m.users.users[g.UserID]
		entries = append(entries, domain.LeaderboardEntry{
			UserID:   u.ID,
			Username: u.Username,
			Score:    g.Score,
		})
	}
	return entries, nil
}

func (m *mockGameRepo) ActivePlayers(context.Context) ([]domain.ActivePlayer, error) {
	var playing []*domain.Game
	for _, g := range m.games {
		if g.Status == domain.GameStatusPlaying {
			playing = append(playing, g)
		}
	}
	sort.Slice(playing, func(i, j int) bool { return playing[i].ID < playing[j].ID })

	players := make([]domain.ActivePlayer, 0, len(playing))
	for _, g := range playing {
		u := m.users.users[g.UserID]
		players = append(players, domain.ActivePlayer{
			UserID:   u.ID,
			Username: u.Username,
			Score:    g.Score,
			Status:   g.Status,
			GameMode: g.GameMode,
		})
	}
	return players, nil
}
