package budget

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/fintrackhq/fintrack/internal/auth"
	"github.com/fintrackhq/fintrack/internal/transport"
	"github.com/fintrackhq/fintrack/pkg/logger"
)

type ServiceAPI interface {
	Create(userID int64, dto BudgetDTO) (*Budget, error)
	GetByID(userID, id int64) (*Budget, error)
	ListForMonth(userID int64, year, month int) ([]*Budget, error)
	ListForRange(userID int64, start, end time.Time) ([]*Budget, error)
	Update(userID, id int64, dto BudgetDTO) (*Budget, error)
	Delete(userID, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.Service.Create(user.ID, dto)
	if err != nil {
		h.Logger.Error("CreateBudget: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, b)
}

func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid budget ID")
		return
	}

	b, err := h.Service.GetByID(user.ID, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, b)
}

// ListBudgets serves the month view. Query params "year" and "month"
// default to the current month when absent. Passing "from" and "to"
// (YYYY-MM, end exclusive) switches to a range view instead.
func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to"); from != "" || to != "" {
		h.listRange(w, r, user.ID, from, to)
		return
	}

	year := queryInt(r, "year")
	month := queryInt(r, "month")

	budgets, err := h.Service.ListForMonth(user.ID, year, month)
	if err != nil {
		h.Logger.Error("ListBudgets: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"budgets": budgets,
	})
}

func (h *Handler) listRange(w http.ResponseWriter, r *http.Request, userID int64, from, to string) {
	start, err := time.Parse("2006-01", from)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "from must be formatted as YYYY-MM")
		return
	}
	end, err := time.Parse("2006-01", to)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "to must be formatted as YYYY-MM")
		return
	}

	budgets, err := h.Service.ListForRange(userID, start, end)
	if err != nil {
		h.Logger.Error("ListBudgets: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"budgets": budgets,
	})
}

func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid budget ID")
		return
	}

	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.Service.Update(user.ID, id, dto)
	if err != nil {
		h.Logger.Error("UpdateBudget: service error", "error", err, "budget_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid budget ID")
		return
	}

	if err := h.Service.Delete(user.ID, id); err != nil {
		h.Logger.Error("DeleteBudget: service error", "error", err, "budget_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
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
