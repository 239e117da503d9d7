package transaction

import (
	"log/slog"
	"time"

	"github.com/fintrackhq/fintrack/internal"
	"github.com/fintrackhq/fintrack/internal/auth"
	transactionDatamodel "github.com/fintrackhq/fintrack/internal/core/datamodel/transaction"
	"github.com/fintrackhq/fintrack/internal/core/money"
)

type RepositoryAPI interface {
	Create(t *transactionDatamodel.Transaction) error
	GetByID(id int64) (*transactionDatamodel.JoinedRow, error)
	ListByDateRange(userID int64, start, end time.Time) ([]*transactionDatamodel.JoinedRow, error)
	ListRecent(userID int64, limit int) ([]*transactionDatamodel.JoinedRow, error)
	CategoryBelongsToUser(categoryID, userID int64) (bool, error)
	Update(t *transactionDatamodel.Transaction) error
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

func (s *Service) Create(userID int64, dto TransactionDTO) (*Transaction, error) {
	amount, date, err := dto.Parse()
	if err != nil {
		return nil, err
	}

	if err := s.checkCategory(dto.CategoryID, userID); err != nil {
		return nil, err
	}

	dm := &transactionDatamodel.Transaction{
		UserID:        userID,
		CategoryID:    dto.CategoryID,
		Title:         dto.Title,
		Description:   dto.Description,
		AmountCents:   amount.Cents(),
		Type:          dto.Type,
		Date:          date,
		PaymentMethod: dto.PaymentMethod,
		Notes:         dto.Notes,
	}
	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create transaction", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("transaction created",
		"transaction_id", dm.ID,
		"user_id", userID,
		"type", dm.Type,
		"amount", amount.String())
	return s.GetByID(userID, dm.ID)
}

func (s *Service) GetByID(userID, id int64) (*Transaction, error) {
	return s.fetchOwned(userID, id)
}

// ListForMonth returns the user's transactions for the given month,
// newest first. A zero year or month defaults to the current one.
func (s *Service) ListForMonth(userID int64, year, month int) ([]*Transaction, error) {
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

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := s.repo.ListByDateRange(userID, start, end)
	if err != nil {
		s.logger.Error("failed to list transactions", "error", err, "user_id", userID)
		return nil, err
	}
	return fromJoinedRows(rows), nil
}

// ListRecent returns the user's most recent transactions across all
// months, newest first.
func (s *Service) ListRecent(userID int64, limit int) ([]*Transaction, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.repo.ListRecent(userID, limit)
	if err != nil {
		s.logger.Error("failed to list recent transactions", "error", err, "user_id", userID)
		return nil, err
	}
	return fromJoinedRows(rows), nil
}

// Update replaces every editable field of the transaction.
func (s *Service) Update(userID, id int64, dto TransactionDTO) (*Transaction, error) {
	amount, date, err := dto.Parse()
	if err != nil {
		return nil, err
	}

	existing, err := s.fetchOwned(userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkCategory(dto.CategoryID, userID); err != nil {
		return nil, err
	}

	existing.CategoryID = dto.CategoryID
	existing.Title = dto.Title
	existing.Description = dto.Description
	existing.Amount = amount
	existing.Type = dto.Type
	existing.Date = date
	existing.PaymentMethod = dto.PaymentMethod
	existing.Notes = dto.Notes

	if err := s.repo.Update(ToDataModel(existing)); err != nil {
		s.logger.Error("failed to update transaction", "error", err, "transaction_id", id)
		return nil, err
	}
	return s.GetByID(userID, id)
}

func (s *Service) Delete(userID, id int64) error {
	if _, err := s.fetchOwned(userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete transaction", "error", err, "transaction_id", id)
		return err
	}

	s.logger.Info("transaction deleted", "transaction_id", id, "user_id", userID)
	return nil
}

func (s *Service) fetchOwned(userID, id int64) (*Transaction, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.ErrTransactionNotFound
	}

	t := fromJoinedRow(row)
	if err := s.guard.Authorize(userID, t); err != nil {
		return nil, err
	}
	return t, nil
}

// checkCategory rejects transactions pointing at a category the user
// does not own, which would otherwise leak another user's category
// name into their statistics.
func (s *Service) checkCategory(categoryID, userID int64) error {
	ok, err := s.repo.CategoryBelongsToUser(categoryID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return internal.ErrCategoryNotFound
	}
	return nil
}

func fromJoinedRow(row *transactionDatamodel.JoinedRow) *Transaction {
	return &Transaction{
		ID:            row.ID,
		UserID:        row.UserID,
		CategoryID:    row.CategoryID,
		CategoryName:  row.CategoryName,
		Title:         row.Title,
		Description:   row.Description,
		Amount:        money.FromCents(row.AmountCents),
		Type:          row.Type,
		Date:          row.Date,
		PaymentMethod: row.PaymentMethod,
		Notes:         row.Notes,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func fromJoinedRows(rows []*transactionDatamodel.JoinedRow) []*Transaction {
	result := make([]*Transaction, len(rows))
	for i, row := range rows {
		result[i] = fromJoinedRow(row)
	}
	return result
}
