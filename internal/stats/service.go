package stats

import (
	"log/slog"
	"time"

	"github.com/fintrackhq/fintrack/internal"
	"github.com/fintrackhq/fintrack/internal/budget"
	"github.com/fintrackhq/fintrack/internal/core/money"
	"github.com/fintrackhq/fintrack/internal/transaction"
)

// TransactionStore is the slice of the transaction service the
// aggregation engine needs.
type TransactionStore interface {
	ListForMonth(userID int64, year, month int) ([]*transaction.Transaction, error)
}

// BudgetStore is the slice of the budget service the aggregation
// engine needs.
type BudgetStore interface {
	ListForMonth(userID int64, year, month int) ([]*budget.Budget, error)
}

const trendMonths = 12

type Service struct {
	transactions TransactionStore
	budgets      BudgetStore
	clock        internal.Clock
	logger       *slog.Logger
}

func NewService(transactions TransactionStore, budgets BudgetStore, clock internal.Clock, logger *slog.Logger) *Service {
	return &Service{
		transactions: transactions,
		budgets:      budgets,
		clock:        clock,
		logger:       logger,
	}
}

// ComputeMonthlyStatistics aggregates the user's transactions and
// budgets for the given month. A zero year or month defaults to the
// current one.
func (s *Service) ComputeMonthlyStatistics(userID int64, year, month int) (*Statistics, error) {
	year, month, err := s.resolveMonth(year, month)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactions.ListForMonth(userID, year, month)
	if err != nil {
		s.logger.Error("failed to load transactions for statistics", "error", err, "user_id", userID)
		return nil, err
	}

	budgets, err := s.budgets.ListForMonth(userID, year, month)
	if err != nil {
		s.logger.Error("failed to load budgets for statistics", "error", err, "user_id", userID)
		return nil, err
	}

	st := &Statistics{
		Year:              year,
		Month:             month,
		IncomeByCategory:  make(map[string]money.Money),
		ExpenseByCategory: make(map[string]money.Money),
		Budgets:           make([]BudgetUsage, 0, len(budgets)),
	}

	for _, t := range transactions {
		switch {
		case t.IsIncome():
			st.TotalIncome = st.TotalIncome.Add(t.Amount)
			st.IncomeByCategory[t.CategoryName] = st.IncomeByCategory[t.CategoryName].Add(t.Amount)
		case t.IsExpense():
			st.TotalExpense = st.TotalExpense.Add(t.Amount)
			st.ExpenseByCategory[t.CategoryName] = st.ExpenseByCategory[t.CategoryName].Add(t.Amount)
		}
	}
	st.Balance = st.TotalIncome.Sub(st.TotalExpense)

	for _, b := range budgets {
		spent := st.ExpenseByCategory[budgetCategoryRef(b)]
		st.Budgets = append(st.Budgets, BudgetUsage{
			Budget:     b,
			Spent:      spent,
			Remaining:  b.Amount.Sub(spent),
			Percentage: spent.PercentOf(b.Amount),
		})
	}

	return st, nil
}

// GenerateMonthlyReport builds the full monthly report: statistics,
// derived metrics and the month's transaction list.
func (s *Service) GenerateMonthlyReport(userID int64, year, month int) (*Report, error) {
	year, month, err := s.resolveMonth(year, month)
	if err != nil {
		return nil, err
	}

	st, err := s.ComputeMonthlyStatistics(userID, year, month)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactions.ListForMonth(userID, year, month)
	if err != nil {
		s.logger.Error("failed to load transactions for report", "error", err, "user_id", userID)
		return nil, err
	}

	return &Report{
		Statistics:   st,
		Metrics:      computeMetrics(st, transactions),
		Transactions: transactions,
	}, nil
}

// MonthlyTrend returns one point per month for the twelve months
// ending at the reference date, oldest first. Months without
// transactions appear with zero values. A zero reference defaults to
// the current time.
func (s *Service) MonthlyTrend(userID int64, reference time.Time) ([]TrendPoint, error) {
	if reference.IsZero() {
		reference = s.clock.Now()
	}

	points := make([]TrendPoint, 0, trendMonths)
	cursor := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(trendMonths - 1), 0)

	for i := 0; i < trendMonths; i++ {
		transactions, err := s.transactions.ListForMonth(userID, cursor.Year(), int(cursor.Month()))
		if err != nil {
			s.logger.Error("failed to load transactions for trend", "error", err, "user_id", userID)
			return nil, err
		}

		var income, expense money.Money
		for _, t := range transactions {
			switch {
			case t.IsIncome():
				income = income.Add(t.Amount)
			case t.IsExpense():
				expense = expense.Add(t.Amount)
			}
		}

		points = append(points, TrendPoint{
			Month:   cursor.Format("2006-01"),
			Income:  income,
			Expense: expense,
			Balance: income.Sub(expense),
		})
		cursor = cursor.AddDate(0, 1, 0)
	}

	return points, nil
}

func (s *Service) resolveMonth(year, month int) (int, int, error) {
	now := s.clock.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return 0, 0, internal.NewValidationFieldError("month", "month must be between 1 and 12", internal.ErrCodeInvalidMonth)
	}
	return year, month, nil
}

// computeMetrics derives report metrics from the month's data. The
// average is taken over expense transactions only, and the top
// category is the expense category with the highest total; ties keep
// the category first seen in transaction order.
func computeMetrics(st *Statistics, transactions []*transaction.Transaction) ReportMetrics {
	metrics := ReportMetrics{
		TotalTransactions: len(transactions),
	}

	expenseCount := 0
	seen := make(map[string]bool)
	order := make([]string, 0)
	for _, t := range transactions {
		if !t.IsExpense() {
			continue
		}
		expenseCount++
		if !seen[t.CategoryName] {
			seen[t.CategoryName] = true
			order = append(order, t.CategoryName)
		}
	}

	if expenseCount > 0 {
		metrics.AverageExpense = divideRounded(st.TotalExpense, expenseCount)
	}

	top := money.Money(-1)
	for _, name := range order {
		if total := st.ExpenseByCategory[name]; total > top {
			top = total
			metrics.TopExpenseCategory = name
			metrics.TopExpenseAmount = total
		}
	}

	return metrics
}

// divideRounded splits an amount over n with half-up rounding on the
// cent.
func divideRounded(total money.Money, n int) money.Money {
	if n <= 0 {
		return 0
	}
	cents := total.Cents()
	return money.FromCents((cents + int64(n)/2) / int64(n))
}

// budgetCategoryRef resolves the free-text category reference of a
// budget: the explicit category name when set, the budget's own name
// otherwise.
func budgetCategoryRef(b *budget.Budget) string {
	if b.CategoryName != nil && *b.CategoryName != "" {
		return *b.CategoryName
	}
	return b.Name
}
