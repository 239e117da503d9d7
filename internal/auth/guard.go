package auth

import (
	"context"
	"log/slog"

	"github.com/fintrackhq/fintrack/internal"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// Owned is implemented by every record that belongs to a single user.
type Owned interface {
	OwnedBy() int64
}

// Guard is the single authorization point for record access: every view or
// mutation of an owned record goes through Authorize instead of scattering
// inline owner comparisons across handlers.
type Guard struct {
	logger *slog.Logger
}

func NewGuard(logger *slog.Logger) *Guard {
	return &Guard{logger: logger}
}

// Authorize rejects access unless userID owns the record. The check runs
// before any mutation or data exposure.
func (g *Guard) Authorize(userID int64, record Owned) error {
	if userID == 0 || record == nil {
		return internal.ErrAccessDenied
	}
	if record.OwnedBy() != userID {
		g.logger.Warn("ownership check failed",
			"user_id", userID,
			"owner_id", record.OwnedBy())
		return internal.ErrAccessDenied
	}
	return nil
}
