package category

import (
	"log/slog"

	"github.com/fintrackhq/fintrack/internal"
	"github.com/fintrackhq/fintrack/internal/auth"
	categoryDatamodel "github.com/fintrackhq/fintrack/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	Create(c *categoryDatamodel.Category) error
	GetByID(id int64) (*categoryDatamodel.Category, error)
	ListByUser(userID int64) ([]*categoryDatamodel.Category, error)
	Update(c *categoryDatamodel.Category) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	guard  *auth.Guard
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, guard *auth.Guard, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		guard:  guard,
		logger: logger,
	}
}

func (s *Service) Create(userID int64, dto CategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dm := &categoryDatamodel.Category{
		UserID:      userID,
		Name:        dto.Name,
		Description: dto.Description,
		Type:        dto.Type,
		Color:       dto.Color,
		Icon:        dto.Icon,
	}
	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create category", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("category created", "category_id", dm.ID, "user_id", userID, "name", dm.Name)
	return FromDataModel(dm), nil
}

func (s *Service) GetByID(userID, id int64) (*Category, error) {
	c, err := s.fetchOwned(userID, id)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListForUser(userID int64) ([]*Category, error) {
	dms, err := s.repo.ListByUser(userID)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err, "user_id", userID)
		return nil, err
	}
	return FromDataModelSlice(dms), nil
}

// Update replaces every editable field of the category.
func (s *Service) Update(userID, id int64, dto CategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.fetchOwned(userID, id)
	if err != nil {
		return nil, err
	}

	existing.Name = dto.Name
	existing.Description = dto.Description
	existing.Type = dto.Type
	existing.Color = dto.Color
	existing.Icon = dto.Icon

	if err := s.repo.Update(ToDataModel(existing)); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id)
		return nil, err
	}
	return existing, nil
}

// Delete removes the category. Budgets referencing it by name are left
// untouched: the link is a weak string reference and simply stops
// matching any spending.
func (s *Service) Delete(userID, id int64) error {
	if _, err := s.fetchOwned(userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return err
	}

	s.logger.Info("category deleted", "category_id", id, "user_id", userID)
	return nil
}

func (s *Service) fetchOwned(userID, id int64) (*Category, error) {
	dm, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dm == nil {
		return nil, internal.ErrCategoryNotFound
	}

	c := FromDataModel(dm)
	if err := s.guard.Authorize(userID, c); err != nil {
		return nil, err
	}
	return c, nil
}
