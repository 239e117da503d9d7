package user

import (
	"log/slog"

	"github.com/fintrackhq/fintrack/internal"
	"github.com/fintrackhq/fintrack/internal/auth"
)

type UserGetter interface {
	GetUserByID(id int64) (*auth.User, error)
}

type Service struct {
	users  UserGetter
	logger *slog.Logger
}

func NewService(users UserGetter, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		logger: logger,
	}
}

func (s *Service) GetProfile(id int64) (*Profile, error) {
	u, err := s.users.GetUserByID(id)
	if err != nil {
		s.logger.Error("failed to load user profile", "error", err, "user_id", id)
		return nil, err
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return profileFromUser(u), nil
}
