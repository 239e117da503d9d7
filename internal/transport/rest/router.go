package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/fintrackhq/fintrack/internal/auth"
	"github.com/fintrackhq/fintrack/internal/budget"
	"github.com/fintrackhq/fintrack/internal/category"
	"github.com/fintrackhq/fintrack/internal/stats"
	"github.com/fintrackhq/fintrack/internal/transaction"
	"github.com/fintrackhq/fintrack/internal/transport/middleware"
	"github.com/fintrackhq/fintrack/internal/transport/swagger"
	"github.com/fintrackhq/fintrack/internal/user"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	transactionHandler *transaction.Handler,
	categoryHandler *category.Handler,
	budgetHandler *budget.Handler,
	statsHandler *stats.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root, Swagger UI alongside it
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		// Everything else requires authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", userHandler.Me)

			pr.Route("/transactions", func(tr chi.Router) {
				tr.Post("/", transactionHandler.CreateTransaction)
				tr.Get("/", transactionHandler.ListTransactions)
				tr.Get("/{id}", transactionHandler.GetTransaction)
				tr.Put("/{id}", transactionHandler.UpdateTransaction)
				tr.Delete("/{id}", transactionHandler.DeleteTransaction)
			})

			pr.Route("/categories", func(cr chi.Router) {
				cr.Post("/", categoryHandler.CreateCategory)
				cr.Get("/", categoryHandler.ListCategories)
				cr.Get("/{id}", categoryHandler.GetCategory)
				cr.Put("/{id}", categoryHandler.UpdateCategory)
				cr.Delete("/{id}", categoryHandler.DeleteCategory)
			})

			pr.Route("/budgets", func(br chi.Router) {
				br.Post("/", budgetHandler.CreateBudget)
				br.Get("/", budgetHandler.ListBudgets)
				br.Get("/{id}", budgetHandler.GetBudget)
				br.Put("/{id}", budgetHandler.UpdateBudget)
				br.Delete("/{id}", budgetHandler.DeleteBudget)
			})

			pr.Route("/dashboard", func(dr chi.Router) {
				dr.Get("/", statsHandler.Dashboard)
				dr.Get("/report", statsHandler.Report)
				dr.Get("/trend", statsHandler.Trend)
			})
		})
	})
}
