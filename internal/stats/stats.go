package stats

import (
	"github.com/fintrackhq/fintrack/internal/budget"
	"github.com/fintrackhq/fintrack/internal/core/money"
	"github.com/fintrackhq/fintrack/internal/transaction"
)

// Statistics is the monthly aggregation of a user's transactions and
// budgets. Category breakdowns are keyed by category name and
// partitioned by transaction type, so an income category and an
// expense category sharing a name never mix.
type Statistics struct {
	Year              int                    `json:"year"`
	Month             int                    `json:"month"`
	TotalIncome       money.Money            `json:"total_income"`
	TotalExpense      money.Money            `json:"total_expense"`
	Balance           money.Money            `json:"balance"`
	IncomeByCategory  map[string]money.Money `json:"income_by_category"`
	ExpenseByCategory map[string]money.Money `json:"expense_by_category"`
	Budgets           []BudgetUsage          `json:"budgets"`
}

// BudgetUsage reports how much of a budget the month's expenses have
// consumed. Spending is matched by category name; a budget that
// matches no expense category reports zero spend. Remaining goes
// negative when the budget is exceeded.
type BudgetUsage struct {
	Budget     *budget.Budget `json:"budget"`
	Spent      money.Money    `json:"spent"`
	Remaining  money.Money    `json:"remaining"`
	Percentage float64        `json:"percentage"`
}

// Report extends the monthly statistics with derived metrics and the
// full transaction list for the month.
type Report struct {
	Statistics   *Statistics                `json:"statistics"`
	Metrics      ReportMetrics              `json:"metrics"`
	Transactions []*transaction.Transaction `json:"transactions"`
}

type ReportMetrics struct {
	TotalTransactions  int         `json:"total_transactions"`
	AverageExpense     money.Money `json:"average_expense"`
	TopExpenseCategory string      `json:"top_expense_category,omitempty"`
	TopExpenseAmount   money.Money `json:"top_expense_amount"`
}

// TrendPoint is one month of a trend series. Month is formatted as
// "YYYY-MM".
type TrendPoint struct {
	Month   string      `json:"month"`
	Income  money.Money `json:"income"`
	Expense money.Money `json:"expense"`
	Balance money.Money `json:"balance"`
}
