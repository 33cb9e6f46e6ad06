package domain

import "time"

type GameMode string

const (
	GameModePassThrough GameMode = "pass-through"
	GameModeWalls       GameMode = "walls"
)

// Valid reports whether the mode is one of the two supported rule sets.
func (m GameMode) Valid() bool {
	switch m {
	case GameModePassThrough, GameModeWalls:
		return true
	}
	return false
}

type GameStatus string

const (
	GameStatusPlaying  GameStatus = "playing"
	GameStatusIdle     GameStatus = "idle"
	GameStatusFinished GameStatus = "finished"
)

// Valid reports whether the status is a known lifecycle state.
func (s GameStatus) Valid() bool {
	switch s {
	case GameStatusPlaying, GameStatusIdle, GameStatusFinished:
		return true
	}
	return false
}

// Game is a single play session owned by a user. Score and status are
// overwritten in place as the client reports progress; nothing else mutates.
type Game struct {
	ID        int64
	UserID    int64
	Score     int
	GameMode  GameMode
	Status    GameStatus
	CreatedAt time.Time
}

// LeaderboardEntry is one row of the finished-games ranking.
type LeaderboardEntry struct {
	UserID   int64
	Username string
	Score    int
}

// ActivePlayer is a user with a game currently in the playing state.
type ActivePlayer struct {
	UserID   int64
	Username string
	Score    int
	Status   GameStatus
	GameMode GameMode
}
