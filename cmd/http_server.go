package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fintrackhq/fintrack/internal"
	"github.com/fintrackhq/fintrack/internal/auth"
	authPostgres "github.com/fintrackhq/fintrack/internal/auth/postgres"
	"github.com/fintrackhq/fintrack/internal/budget"
	budgetPostgres "github.com/fintrackhq/fintrack/internal/budget/postgres"
	"github.com/fintrackhq/fintrack/internal/category"
	categoryPostgres "github.com/fintrackhq/fintrack/internal/category/postgres"
	"github.com/fintrackhq/fintrack/internal/stats"
	"github.com/fintrackhq/fintrack/internal/transaction"
	transactionPostgres "github.com/fintrackhq/fintrack/internal/transaction/postgres"
	"github.com/fintrackhq/fintrack/internal/transport/rest"
	"github.com/fintrackhq/fintrack/internal/user"
	"github.com/fintrackhq/fintrack/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	log := deps.Logger
	clock := internal.SystemClock{}
	guard := auth.NewGuard(log)

	authRepo := authPostgres.NewRepository(deps.GormDB)
	categoryRepo := categoryPostgres.NewCategoryRepository(deps.GormDB)
	transactionRepo := transactionPostgres.NewTransactionRepository(deps.GormDB)
	budgetRepo := budgetPostgres.NewBudgetRepository(deps.GormDB)

	tokenGen := auth.NewJWTTokenGenerator(deps.Config.Security)
	authService := auth.NewService(authRepo, tokenGen, deps.Config.Security.BCryptCost, log)
	userService := user.NewService(authService, log)
	categoryService := category.NewService(categoryRepo, guard, log)
	transactionService := transaction.NewService(transactionRepo, guard, clock, log)
	budgetService := budget.NewService(budgetRepo, guard, clock, log)
	statsService := stats.NewService(transactionService, budgetService, clock, log)

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		auth.NewHandler(authService),
		user.NewHandler(userService),
		transaction.NewHandler(transactionService),
		category.NewHandler(categoryService),
		budget.NewHandler(budgetService),
		stats.NewHandler(statsService, transactionService),
		log,
	)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)

	db, gormDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the database connection and wraps it with gorm. The
// sqlite driver is supported for local development.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	if cfg.Driver == "sqlite" {
		gormDB, err := gorm.Open(sqlite.Open(cfg.Source), &gorm.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to unwrap sqlite connection: %w", err)
		}
		return sqlx.NewDb(sqlDB, "sqlite"), gormDB, nil
	}

	dbConn, err := sqlx.Connect("pgx", cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: dbConn.DB}), &gorm.Config{})
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to wrap db connection: %w", err)
	}

	return dbConn, gormDB, nil
}
