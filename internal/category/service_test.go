package category_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fintrackhq/fintrack/internal"
	"github.com/fintrackhq/fintrack/internal/auth"
	"github.com/fintrackhq/fintrack/internal/category"
	categoryDatamodel "github.com/fintrackhq/fintrack/internal/core/datamodel/category"
)

func TestCategory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Suite")
}

type mockCategoryRepository struct {
	categories map[int64]*categoryDatamodel.Category
	createErr  error
	getErr     error
	nextID     int64
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories: make(map[int64]*categoryDatamodel.Category),
		nextID:     1,
	}
}

func (m *mockCategoryRepository) Create(c *categoryDatamodel.Category) error {
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = m.nextID
	m.nextID++
	c.CreatedAt = time.Now()
	m.categories[c.ID] = c
	return nil
}

func (m *mockCategoryRepository) GetByID(id int64) (*categoryDatamodel.Category, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.categories[id], nil
}

func (m *mockCategoryRepository) ListByUser(userID int64) ([]*categoryDatamodel.Category, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	var result []*categoryDatamodel.Category
	for _, c := range m.categories {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCategoryRepository) Update(c *categoryDatamodel.Category) error {
	m.categories[c.ID] = c
	return nil
}

func (m *mockCategoryRepository) Delete(id int64) error {
	delete(m.categories, id)
	return nil
}

var _ = Describe("Category Service", func() {
	var (
		repo    *mockCategoryRepository
		service *category.Service
		logger  *slog.Logger
	)

	const ownerID = int64(1)
	const strangerID = int64(2)

	BeforeEach(func() {
		repo = newMockCategoryRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(repo, auth.NewGuard(logger), logger)
	})

	validDTO := category.CategoryDTO{Name: "Food", Type: category.TypeExpense}

	Describe("Create", func() {
		It("should create a category for the user", func() {
			c, err := service.Create(ownerID, validDTO)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.ID).To(BeNumerically(">", 0))
			Expect(c.UserID).To(Equal(ownerID))
			Expect(c.Name).To(Equal("Food"))
		})

		It("should reject a missing name", func() {
			_, err := service.Create(ownerID, category.CategoryDTO{Type: category.TypeExpense})
			Expect(err).To(HaveOccurred())
			_, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
		})

		It("should reject an unknown type", func() {
			_, err := service.Create(ownerID, category.CategoryDTO{Name: "Food", Type: "transfer"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetByID", func() {
		It("should return the category to its owner", func() {
			created, err := service.Create(ownerID, validDTO)
			Expect(err).NotTo(HaveOccurred())

			got, err := service.GetByID(ownerID, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Food"))
		})

		It("should deny access to another user's category", func() {
			created, err := service.Create(ownerID, validDTO)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.GetByID(strangerID, created.ID)
			Expect(err).To(MatchError(internal.ErrAccessDenied))
		})

		It("should report not found for a missing category", func() {
			_, err := service.GetByID(ownerID, 999)
			Expect(err).To(MatchError(internal.ErrCategoryNotFound))
		})
	})

	Describe("Update", func() {
		It("should replace every editable field", func() {
			created, err := service.Create(ownerID, validDTO)
			Expect(err).NotTo(HaveOccurred())

			desc := "eating out"
			updated, err := service.Update(ownerID, created.ID, category.CategoryDTO{
				Name:        "Dining",
				Type:        category.TypeExpense,
				Description: &desc,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Dining"))
			Expect(*updated.Description).To(Equal("eating out"))
		})

		It("should clear optional fields omitted from the edit", func() {
			desc := "temporary"
			created, err := service.Create(ownerID, category.CategoryDTO{
				Name:        "Food",
				Type:        category.TypeExpense,
				Description: &desc,
			})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.Update(ownerID, created.ID, validDTO)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Description).To(BeNil())
		})

		It("should deny updates by another user", func() {
			created, err := service.Create(ownerID, validDTO)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Update(strangerID, created.ID, validDTO)
			Expect(err).To(MatchError(internal.ErrAccessDenied))
		})
	})

	Describe("Delete", func() {
		It("should delete the owner's category", func() {
			created, err := service.Create(ownerID, validDTO)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ownerID, created.ID)).To(Succeed())

			_, err = service.GetByID(ownerID, created.ID)
			Expect(err).To(MatchError(internal.ErrCategoryNotFound))
		})

		It("should deny deletes by another user", func() {
			created, err := service.Create(ownerID, validDTO)
			Expect(err).NotTo(HaveOccurred())

			err = service.Delete(strangerID, created.ID)
			Expect(err).To(MatchError(internal.ErrAccessDenied))
		})
	})

	Describe("ListForUser", func() {
		It("should only return the user's own categories", func() {
			_, err := service.Create(ownerID, validDTO)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(strangerID, category.CategoryDTO{Name: "Rent", Type: category.TypeExpense})
			Expect(err).NotTo(HaveOccurred())

			categories, err := service.ListForUser(ownerID)
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(HaveLen(1))
			Expect(categories[0].Name).To(Equal("Food"))
		})

		It("should propagate repository errors", func() {
			repo.getErr = errors.New("db down")

			_, err := service.ListForUser(ownerID)
			Expect(err).To(MatchError("db down"))
		})
	})
})
