package stats

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fintrackhq/fintrack/internal/auth"
	"github.com/fintrackhq/fintrack/internal/transaction"
	"github.com/fintrackhq/fintrack/internal/transport"
	"github.com/fintrackhq/fintrack/pkg/logger"
)

type ServiceAPI interface {
	ComputeMonthlyStatistics(userID int64, year, month int) (*Statistics, error)
	GenerateMonthlyReport(userID int64, year, month int) (*Report, error)
	MonthlyTrend(userID int64, reference time.Time) ([]TrendPoint, error)
}

// RecentLister supplies the dashboard's recent-transactions panel.
type RecentLister interface {
	ListRecent(userID int64, limit int) ([]*transaction.Transaction, error)
}

const recentTransactionsLimit = 5

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Recent  RecentLister
}

func NewHandler(service ServiceAPI, recent RecentLister) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		Recent:      recent,
	}
}

// Dashboard serves the month's statistics together with the most
// recent transactions and the 12-month trend. Query params "year" and
// "month" default to the current month.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	statistics, err := h.Service.ComputeMonthlyStatistics(user.ID, queryInt(r, "year"), queryInt(r, "month"))
	if err != nil {
		h.Logger.Error("Dashboard: statistics error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	recent, err := h.Recent.ListRecent(user.ID, recentTransactionsLimit)
	if err != nil {
		h.Logger.Error("Dashboard: recent transactions error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	trend, err := h.Service.MonthlyTrend(user.ID, time.Time{})
	if err != nil {
		h.Logger.Error("Dashboard: trend error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"statistics":          statistics,
		"recent_transactions": recent,
		"trend":               trend,
	})
}

// Report serves the full monthly report.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	report, err := h.Service.GenerateMonthlyReport(user.ID, queryInt(r, "year"), queryInt(r, "month"))
	if err != nil {
		h.Logger.Error("Report: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, report)
}

// Trend serves the 12-month trend ending at the current month.
func (h *Handler) Trend(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	trend, err := h.Service.MonthlyTrend(user.ID, time.Time{})
	if err != nil {
		h.Logger.Error("Trend: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"trend": trend,
	})
}

func queryInt(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
