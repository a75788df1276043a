package auth

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"foodcourt/internal/domain"
	"foodcourt/internal/session"
)

// ErrInvalidCredentials is returned when username/password do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service is the user-lookup collaborator: it verifies credentials
// against the users table and issues sessions.
type Service struct {
	users    userRepo
	sessions *session.Store
	logger   *log.Logger
}

type userRepo interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

func New(users userRepo, sessions *session.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{users: users, sessions: sessions, logger: logger}
}

// Login validates credentials and returns a fresh session. Unknown
// users and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*session.Session, error) {
	username = strings.TrimSpace(username)
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(u.Username, u.Role)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("login user=%s role=%s", u.Username, u.Role)
	return sess, nil
}

// Logout revokes the session, discarding its cart and checkout context.
func (s *Service) Logout(token string) {
	s.sessions.Revoke(token)
}
