package category_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/fintrackhq/fintrack/internal/auth"
	"github.com/fintrackhq/fintrack/internal/category"
	categoryPostgres "github.com/fintrackhq/fintrack/internal/category/postgres"
	categoryDatamodel "github.com/fintrackhq/fintrack/internal/core/datamodel/category"
)

var _ = Describe("Category Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    category.RepositoryAPI
		service *category.Service
		handler *category.Handler
		slogger *slog.Logger
	)

	owner := &auth.User{ID: 1, Email: "owner@mail.com"}
	stranger := &auth.User{ID: 2, Email: "stranger@mail.com"}

	authedRequest := func(user *auth.User, method, target, body string) *http.Request {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
		} else {
			req = httptest.NewRequest(method, target, nil)
		}
		return req.WithContext(auth.ContextWithUser(req.Context(), user))
	}

	withURLParam := func(req *http.Request, name, value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(name, value)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&categoryDatamodel.Category{})
		Expect(err).NotTo(HaveOccurred())

		repo = categoryPostgres.NewCategoryRepository(db)
		service = category.NewService(repo, auth.NewGuard(slogger), slogger)
		handler = category.NewHandler(service)
	})

	Describe("POST /categories", func() {
		It("should create a category and return 201", func() {
			req := authedRequest(owner, http.MethodPost, "/categories", `{"name":"Food","type":"expense"}`)
			w := httptest.NewRecorder()

			handler.CreateCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var created category.Category
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Name).To(Equal("Food"))
			Expect(created.UserID).To(Equal(owner.ID))
		})

		It("should return 400 for an invalid payload", func() {
			req := authedRequest(owner, http.MethodPost, "/categories", `{"name":"","type":"expense"}`)
			w := httptest.NewRecorder()

			handler.CreateCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 401 without an authenticated user", func() {
			req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Food","type":"expense"}`))
			w := httptest.NewRecorder()

			handler.CreateCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("GET /categories", func() {
		It("should only list the caller's categories", func() {
			for _, c := range []*categoryDatamodel.Category{
				{UserID: owner.ID, Name: "Food", Type: "expense"},
				{UserID: owner.ID, Name: "Salary", Type: "income"},
				{UserID: stranger.ID, Name: "Rent", Type: "expense"},
			} {
				Expect(repo.Create(c)).To(Succeed())
			}

			req := authedRequest(owner, http.MethodGet, "/categories", "")
			w := httptest.NewRecorder()

			handler.ListCategories(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Categories []*category.Category `json:"categories"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Categories).To(HaveLen(2))
		})
	})

	Describe("GET /categories/{id}", func() {
		It("should return 403 for another user's category", func() {
			c := &categoryDatamodel.Category{UserID: owner.ID, Name: "Food", Type: "expense"}
			Expect(repo.Create(c)).To(Succeed())

			req := withURLParam(authedRequest(stranger, http.MethodGet, "/categories/1", ""), "id", strconv.FormatInt(c.ID, 10))
			w := httptest.NewRecorder()

			handler.GetCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("should return 404 for a missing category", func() {
			req := withURLParam(authedRequest(owner, http.MethodGet, "/categories/999", ""), "id", "999")
			w := httptest.NewRecorder()

			handler.GetCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 400 for a malformed id", func() {
			req := withURLParam(authedRequest(owner, http.MethodGet, "/categories/abc", ""), "id", "abc")
			w := httptest.NewRecorder()

			handler.GetCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("DELETE /categories/{id}", func() {
		It("should delete and return 204", func() {
			c := &categoryDatamodel.Category{UserID: owner.ID, Name: "Food", Type: "expense"}
			Expect(repo.Create(c)).To(Succeed())

			req := withURLParam(authedRequest(owner, http.MethodDelete, "/categories/1", ""), "id", strconv.FormatInt(c.ID, 10))
			w := httptest.NewRecorder()

			handler.DeleteCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))

			got, err := repo.GetByID(c.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})
	})
})
