package stats_test

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fintrackhq/fintrack/internal"
	"github.com/fintrackhq/fintrack/internal/budget"
	"github.com/fintrackhq/fintrack/internal/core/money"
	"github.com/fintrackhq/fintrack/internal/stats"
	"github.com/fintrackhq/fintrack/internal/transaction"
)

func TestStats(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Stats Suite")
}

type mockTransactionStore struct {
	byMonth map[string][]*transaction.Transaction
	err     error
}

func newMockTransactionStore() *mockTransactionStore {
	return &mockTransactionStore{byMonth: make(map[string][]*transaction.Transaction)}
}

func monthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func (m *mockTransactionStore) add(year, month int, t *transaction.Transaction) {
	key := monthKey(year, month)
	m.byMonth[key] = append(m.byMonth[key], t)
}

func (m *mockTransactionStore) ListForMonth(userID int64, year, month int) ([]*transaction.Transaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byMonth[monthKey(year, month)], nil
}

type mockBudgetStore struct {
	byMonth map[string][]*budget.Budget
	err     error
}

func newMockBudgetStore() *mockBudgetStore {
	return &mockBudgetStore{byMonth: make(map[string][]*budget.Budget)}
}

func (m *mockBudgetStore) add(year, month int, b *budget.Budget) {
	key := monthKey(year, month)
	m.byMonth[key] = append(m.byMonth[key], b)
}

func (m *mockBudgetStore) ListForMonth(userID int64, year, month int) ([]*budget.Budget, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byMonth[monthKey(year, month)], nil
}

func amount(s string) money.Money {
	m, err := money.Parse(s)
	Expect(err).NotTo(HaveOccurred())
	return m
}

func expenseTx(categoryName, amt string) *transaction.Transaction {
	return &transaction.Transaction{
		UserID:       1,
		CategoryName: categoryName,
		Title:        categoryName,
		Amount:       amount(amt),
		Type:         transaction.TypeExpense,
	}
}

func incomeTx(categoryName, amt string) *transaction.Transaction {
	return &transaction.Transaction{
		UserID:       1,
		CategoryName: categoryName,
		Title:        categoryName,
		Amount:       amount(amt),
		Type:         transaction.TypeIncome,
	}
}

var _ = Describe("Stats Service", func() {
	var (
		transactions *mockTransactionStore
		budgets      *mockBudgetStore
		clock        internal.FixedClock
		service      *stats.Service
		logger       *slog.Logger
	)

	BeforeEach(func() {
		transactions = newMockTransactionStore()
		budgets = newMockBudgetStore()
		clock = internal.FixedClock{Instant: time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = stats.NewService(transactions, budgets, clock, logger)
	})

	Describe("ComputeMonthlyStatistics", func() {
		It("should return zero values for a month without data", func() {
			st, err := service.ComputeMonthlyStatistics(1, 2025, 6)
			Expect(err).NotTo(HaveOccurred())

			Expect(st.TotalIncome).To(Equal(money.Money(0)))
			Expect(st.TotalExpense).To(Equal(money.Money(0)))
			Expect(st.Balance).To(Equal(money.Money(0)))
			Expect(st.IncomeByCategory).To(BeEmpty())
			Expect(st.ExpenseByCategory).To(BeEmpty())
			Expect(st.Budgets).To(BeEmpty())
		})

		It("should aggregate totals, balance and per-category sums", func() {
			transactions.add(2025, 6, incomeTx("Salary", "1000.00"))
			transactions.add(2025, 6, expenseTx("Food", "50.00"))
			transactions.add(2025, 6, expenseTx("Food", "30.00"))

			st, err := service.ComputeMonthlyStatistics(1, 2025, 6)
			Expect(err).NotTo(HaveOccurred())

			Expect(st.TotalIncome.String()).To(Equal("1000.00"))
			Expect(st.TotalExpense.String()).To(Equal("80.00"))
			Expect(st.Balance.String()).To(Equal("920.00"))
			Expect(st.IncomeByCategory).To(HaveKeyWithValue("Salary", amount("1000.00")))
			Expect(st.ExpenseByCategory).To(HaveKeyWithValue("Food", amount("80.00")))
		})

		It("should keep income and expense categories with the same name apart", func() {
			transactions.add(2025, 6, incomeTx("Other", "200.00"))
			transactions.add(2025, 6, expenseTx("Other", "75.50"))

			st, err := service.ComputeMonthlyStatistics(1, 2025, 6)
			Expect(err).NotTo(HaveOccurred())

			Expect(st.IncomeByCategory).To(HaveKeyWithValue("Other", amount("200.00")))
			Expect(st.ExpenseByCategory).To(HaveKeyWithValue("Other", amount("75.50")))
		})

		It("should have category sums adding up to the totals", func() {
			transactions.add(2025, 6, expenseTx("Food", "12.34"))
			transactions.add(2025, 6, expenseTx("Transport", "45.67"))
			transactions.add(2025, 6, expenseTx("Housing", "890.01"))
			transactions.add(2025, 6, incomeTx("Salary", "2000.00"))
			transactions.add(2025, 6, incomeTx("Freelance", "150.25"))

			st, err := service.ComputeMonthlyStatistics(1, 2025, 6)
			Expect(err).NotTo(HaveOccurred())

			var expenseSum money.Money
			for _, v := range st.ExpenseByCategory {
				expenseSum = expenseSum.Add(v)
			}
			Expect(expenseSum).To(Equal(st.TotalExpense))

			var incomeSum money.Money
			for _, v := range st.IncomeByCategory {
				incomeSum = incomeSum.Add(v)
			}
			Expect(incomeSum).To(Equal(st.TotalIncome))
		})

		It("should compute budget usage against matching expense categories", func() {
			transactions.add(2025, 6, expenseTx("Food", "80.00"))
			budgets.add(2025, 6, &budget.Budget{UserID: 1, Name: "Food", Amount: amount("100.00"), Month: 6, Year: 2025})

			st, err := service.ComputeMonthlyStatistics(1, 2025, 6)
			Expect(err).NotTo(HaveOccurred())

			Expect(st.Budgets).To(HaveLen(1))
			usage := st.Budgets[0]
			Expect(usage.Spent.String()).To(Equal("80.00"))
			Expect(usage.Remaining.String()).To(Equal("20.00"))
			Expect(usage.Percentage).To(BeNumerically("~", 80.0, 0.001))
		})

		It("should prefer the explicit category name over the budget name", func() {
			transactions.add(2025, 6, expenseTx("Food", "40.00"))
			ref := "Food"
			budgets.add(2025, 6, &budget.Budget{UserID: 1, Name: "Groceries", CategoryName: &ref, Amount: amount("100.00"), Month: 6, Year: 2025})

			st, err := service.ComputeMonthlyStatistics(1, 2025, 6)
			Expect(err).NotTo(HaveOccurred())

			Expect(st.Budgets[0].Spent.String()).To(Equal("40.00"))
		})

		It("should report zero spend for a budget matching no category", func() {
			transactions.add(2025, 6, expenseTx("Food", "80.00"))
			budgets.add(2025, 6, &budget.Budget{UserID: 1, Name: "Travel", Amount: amount("500.00"), Month: 6, Year: 2025})

			st, err := service.ComputeMonthlyStatistics(1, 2025, 6)
			Expect(err).NotTo(HaveOccurred())

			usage := st.Budgets[0]
			Expect(usage.Spent).To(Equal(money.Money(0)))
			Expect(usage.Remaining.String()).To(Equal("500.00"))
			Expect(usage.Percentage).To(BeZero())
		})

		It("should report zero percent for a zero-amount budget", func() {
			transactions.add(2025, 6, expenseTx("Food", "80.00"))
			budgets.add(2025, 6, &budget.Budget{UserID: 1, Name: "Food", Amount: 0, Month: 6, Year: 2025})

			st, err := service.ComputeMonthlyStatistics(1, 2025, 6)
			Expect(err).NotTo(HaveOccurred())

			usage := st.Budgets[0]
			Expect(usage.Percentage).To(BeZero())
			Expect(usage.Remaining.String()).To(Equal("-80.00"))
		})

		It("should report a negative remaining when the budget is exceeded", func() {
			transactions.add(2025, 6, expenseTx("Food", "150.00"))
			budgets.add(2025, 6, &budget.Budget{UserID: 1, Name: "Food", Amount: amount("100.00"), Month: 6, Year: 2025})

			st, err := service.ComputeMonthlyStatistics(1, 2025, 6)
			Expect(err).NotTo(HaveOccurred())

			usage := st.Budgets[0]
			Expect(usage.Remaining.String()).To(Equal("-50.00"))
			Expect(usage.Percentage).To(BeNumerically("~", 150.0, 0.001))
		})

		It("should default to the current month when year and month are zero", func() {
			transactions.add(2025, 6, expenseTx("Food", "10.00"))

			st, err := service.ComputeMonthlyStatistics(1, 0, 0)
			Expect(err).NotTo(HaveOccurred())

			Expect(st.Year).To(Equal(2025))
			Expect(st.Month).To(Equal(6))
			Expect(st.TotalExpense.String()).To(Equal("10.00"))
		})

		It("should reject an out-of-range month", func() {
			_, err := service.ComputeMonthlyStatistics(1, 2025, 13)
			Expect(err).To(HaveOccurred())
		})

		It("should propagate store errors", func() {
			transactions.err = errors.New("db down")

			_, err := service.ComputeMonthlyStatistics(1, 2025, 6)
			Expect(err).To(MatchError("db down"))
		})
	})

	Describe("GenerateMonthlyReport", func() {
		It("should count all transactions but average over expenses only", func() {
			transactions.add(2025, 6, incomeTx("Salary", "1000.00"))
			transactions.add(2025, 6, expenseTx("Food", "50.00"))
			transactions.add(2025, 6, expenseTx("Food", "30.00"))

			report, err := service.GenerateMonthlyReport(1, 2025, 6)
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Metrics.TotalTransactions).To(Equal(3))
			Expect(report.Metrics.AverageExpense.String()).To(Equal("40.00"))
			Expect(report.Transactions).To(HaveLen(3))
		})

		It("should report a zero average when there are no expenses", func() {
			transactions.add(2025, 6, incomeTx("Salary", "1000.00"))

			report, err := service.GenerateMonthlyReport(1, 2025, 6)
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Metrics.TotalTransactions).To(Equal(1))
			Expect(report.Metrics.AverageExpense).To(Equal(money.Money(0)))
			Expect(report.Metrics.TopExpenseCategory).To(BeEmpty())
			Expect(report.Metrics.TopExpenseAmount).To(Equal(money.Money(0)))
		})

		It("should pick the expense category with the highest total", func() {
			transactions.add(2025, 6, expenseTx("Food", "50.00"))
			transactions.add(2025, 6, expenseTx("Transport", "80.00"))
			transactions.add(2025, 6, expenseTx("Food", "20.00"))

			report, err := service.GenerateMonthlyReport(1, 2025, 6)
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Metrics.TopExpenseCategory).To(Equal("Transport"))
			Expect(report.Metrics.TopExpenseAmount).To(Equal(amount("80.00")))
		})

		It("should break ties by first appearance in transaction order", func() {
			transactions.add(2025, 6, expenseTx("Transport", "50.00"))
			transactions.add(2025, 6, expenseTx("Food", "50.00"))

			report, err := service.GenerateMonthlyReport(1, 2025, 6)
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Metrics.TopExpenseCategory).To(Equal("Transport"))
		})

		It("should carry the statistics of the same month", func() {
			transactions.add(2025, 6, incomeTx("Salary", "1000.00"))
			transactions.add(2025, 6, expenseTx("Food", "80.00"))

			report, err := service.GenerateMonthlyReport(1, 2025, 6)
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Statistics.Balance.String()).To(Equal("920.00"))
		})
	})

	Describe("MonthlyTrend", func() {
		It("should return exactly twelve consecutive months ending at the reference", func() {
			reference := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)

			trend, err := service.MonthlyTrend(1, reference)
			Expect(err).NotTo(HaveOccurred())

			Expect(trend).To(HaveLen(12))
			Expect(trend[0].Month).To(Equal("2024-07"))
			Expect(trend[11].Month).To(Equal("2025-06"))

			for i := 1; i < len(trend); i++ {
				prev, err := time.Parse("2006-01", trend[i-1].Month)
				Expect(err).NotTo(HaveOccurred())
				Expect(trend[i].Month).To(Equal(prev.AddDate(0, 1, 0).Format("2006-01")))
			}
		})

		It("should zero-fill months without transactions", func() {
			transactions.add(2025, 3, incomeTx("Salary", "500.00"))

			trend, err := service.MonthlyTrend(1, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
			Expect(err).NotTo(HaveOccurred())

			for _, point := range trend {
				if point.Month == "2025-03" {
					Expect(point.Income.String()).To(Equal("500.00"))
					Expect(point.Balance.String()).To(Equal("500.00"))
				} else {
					Expect(point.Income).To(Equal(money.Money(0)))
					Expect(point.Expense).To(Equal(money.Money(0)))
					Expect(point.Balance).To(Equal(money.Money(0)))
				}
			}
		})

		It("should default to the clock when the reference is zero", func() {
			trend, err := service.MonthlyTrend(1, time.Time{})
			Expect(err).NotTo(HaveOccurred())

			Expect(trend[11].Month).To(Equal("2025-06"))
		})

		It("should span a year boundary correctly", func() {
			trend, err := service.MonthlyTrend(1, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC))
			Expect(err).NotTo(HaveOccurred())

			Expect(trend[0].Month).To(Equal("2024-02"))
			Expect(trend[10].Month).To(Equal("2024-12"))
			Expect(trend[11].Month).To(Equal("2025-01"))
		})
	})
})
