package budget

import (
	"log/slog"
	"time"

	"github.com/fintrackhq/fintrack/internal"
	"github.com/fintrackhq/fintrack/internal/auth"
	budgetDatamodel "github.com/fintrackhq/fintrack/internal/core/datamodel/budget"
)

type RepositoryAPI interface {
	Create(b *budgetDatamodel.Budget) error
	GetByID(id int64) (*budgetDatamodel.Budget, error)
	ListByMonth(userID int64, year, month int) ([]*budgetDatamodel.Budget, error)
	ListByRange(userID int64, startYear, startMonth, endYear, endMonth int) ([]*budgetDatamodel.Budget, error)
	Update(b *budgetDatamodel.Budget) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	guard  *auth.Guard
	clock  internal.Clock
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, guard *auth.Guard, clock internal.Clock, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		guard:  guard,
		clock:  clock,
		logger: logger,
	}
}

func (s *Service) Create(userID int64, dto BudgetDTO) (*Budget, error) {
	amount, err := dto.Parse()
	if err != nil {
		return nil, err
	}

	dm := &budgetDatamodel.Budget{
		UserID:       userID,
		Name:         dto.Name,
		AmountCents:  amount.Cents(),
		Month:        dto.Month,
		Year:         dto.Year,
		CategoryName: dto.CategoryName,
		Description:  dto.Description,
	}
	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create budget", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("budget created",
		"budget_id", dm.ID,
		"user_id", userID,
		"month", dm.Month,
		"year", dm.Year)
	return FromDataModel(dm), nil
}

func (s *Service) GetByID(userID, id int64) (*Budget, error) {
	return s.fetchOwned(userID, id)
}

// ListForMonth returns the user's budgets for the given month. A zero
// year or month defaults to the current one.
func (s *Service) ListForMonth(userID int64, year, month int) ([]*Budget, error) {
	now := s.clock.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, internal.NewValidationFieldError("month", "month must be between 1 and 12", internal.ErrCodeInvalidMonth)
	}

	dms, err := s.repo.ListByMonth(userID, year, month)
	if err != nil {
		s.logger.Error("failed to list budgets", "error", err, "user_id", userID)
		return nil, err
	}
	return FromDataModelSlice(dms), nil
}

// ListForRange returns the user's budgets from the start month
// (inclusive) to the end month (exclusive), in chronological order.
func (s *Service) ListForRange(userID int64, start, end time.Time) ([]*Budget, error) {
	if !start.Before(end) {
		return nil, internal.NewValidationFieldError("to", "range end must be after range start", internal.ErrCodeValidationFailed)
	}

	dms, err := s.repo.ListByRange(userID, start.Year(), int(start.Month()), end.Year(), int(end.Month()))
	if err != nil {
		s.logger.Error("failed to list budgets by range", "error", err, "user_id", userID)
		return nil, err
	}
	return FromDataModelSlice(dms), nil
}

// Update replaces every editable field of the budget.
func (s *Service) Update(userID, id int64, dto BudgetDTO) (*Budget, error) {
	amount, err := dto.Parse()
	if err != nil {
		return nil, err
	}

	existing, err := s.fetchOwned(userID, id)
	if err != nil {
		return nil, err
	}

	existing.Name = dto.Name
	existing.Amount = amount
	existing.Month = dto.Month
	existing.Year = dto.Year
	existing.CategoryName = dto.CategoryName
	existing.Description = dto.Description

	if err := s.repo.Update(ToDataModel(existing)); err != nil {
		s.logger.Error("failed to update budget", "error", err, "budget_id", id)
		return nil, err
	}
	return existing, nil
}

func (s *Service) Delete(userID, id int64) error {
	if _, err := s.fetchOwned(userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete budget", "error", err, "budget_id", id)
		return err
	}

	s.logger.Info("budget deleted", "budget_id", id, "user_id", userID)
	return nil
}

func (s *Service) fetchOwned(userID, id int64) (*Budget, error) {
	dm, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dm == nil {
		return nil, internal.ErrBudgetNotFound
	}

	b := FromDataModel(dm)
	if err := s.guard.Authorize(userID, b); err != nil {
		return nil, err
	}
	return b, nil
}
