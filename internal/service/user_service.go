package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"snake-scores/internal/domain"
	"snake-scores/internal/repository"
)

var (
	// ErrUserExists is returned when creating a user with a taken username.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameRequired is returned when a username is empty after trimming.
	ErrUsernameRequired = errors.New("username is required")
)

// Session carries the identity returned by a login. The token is an opaque
// placeholder derived from the username, not a credential.
type Session struct {
	User  *domain.User
	Token string
}

// UserService describes user identity operations.
type UserService interface {
	Login(ctx context.Context, username string) (*Session, error)
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// Login looks the user up by username, creating the account on first sight.
// Repeated logins with the same username resolve to the same user.
func (s *userService) Login(ctx context.Context, username string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		user = &domain.User{Username: username}
		if _, err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				// lost a create race; the row exists now
				user, err = s.users.GetByUsername(ctx, username)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, err
	}

	return &Session{User: user, Token: sessionToken(user.Username)}, nil
}

func (s *userService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	user := &domain.User{Username: username}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func sessionToken(username string) string {
	return fmt.Sprintf("mock_token_for_%s", username)
}
