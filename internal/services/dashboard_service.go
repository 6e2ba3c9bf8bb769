package services

import (
	"gorm.io/gorm"

	apperrors "gramkosh/internal/errors"
	"gramkosh/internal/models"
	"gramkosh/internal/report"
)

// Series names served by the dashboard.
const (
	SeriesBudgetsByYear      = "budgets-by-year"
	SeriesBudgetsCumulative  = "budgets-cumulative"
	SeriesCategoryShares     = "category-shares"
	SeriesAllocationByYear   = "allocation-by-year"
	SeriesExpensesByCategory = "expenses-by-category"
	SeriesExpensesByMonth    = "expenses-by-month"
)

// dashboardService loads the raw collections and hands them to the report
// package for derivation, so the server and the client SDK share one set of
// aggregation rules.
type dashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB) DashboardServicer {
	return &dashboardService{db: db}
}

// GetSummary returns the flat dashboard figures across all loaded budgets and
// expenses.
func (s *dashboardService) GetSummary() (*DashboardSummary, error) {
	budgets, categories, expenses, err := s.loadRecords()
	if err != nil {
		return nil, err
	}

	totalAllocated := report.BudgetsByYear(budgets).Total()
	remaining := report.Remaining(budgets, expenses)

	summary := &DashboardSummary{
		TotalAllocated: totalAllocated,
		TotalSpent:     totalAllocated.Sub(remaining),
		Remaining:      remaining,
		Budgets:        int64(len(budgets)),
		Categories:     int64(len(categories)),
		Expenses:       int64(len(expenses)),
	}

	if err := s.db.Model(&models.Village{}).Count(&summary.Villages).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return summary, nil
}

// GetSeries derives the named chart series. Unknown names yield NOT_FOUND.
func (s *dashboardService) GetSeries(name string) (report.Series, error) {
	budgets, categories, expenses, err := s.loadRecords()
	if err != nil {
		return report.Series{}, err
	}

	switch name {
	case SeriesBudgetsByYear:
		return report.BudgetsByYear(budgets), nil
	case SeriesBudgetsCumulative:
		series := report.BudgetsByYear(budgets)
		series.Values = report.Cumulative(series.Values)
		return series, nil
	case SeriesCategoryShares:
		return report.CategoryShares(categories), nil
	case SeriesAllocationByYear:
		return report.AllocationByBudgetYear(categories, budgets), nil
	case SeriesExpensesByCategory:
		return report.ExpensesByCategory(expenses, categories), nil
	case SeriesExpensesByMonth:
		return report.ExpensesByMonth(expenses), nil
	default:
		return report.Series{}, apperrors.WithMessage(apperrors.ErrNotFound, "Unknown chart series: "+name)
	}
}

// loadRecords fetches all budgets, categories, and expenses and converts them
// to the report package's string-amount records.
func (s *dashboardService) loadRecords() ([]report.BudgetRecord, []report.CategoryRecord, []report.ExpenseRecord, error) {
	var budgets []models.Budget
	if err := s.db.Order("id").Find(&budgets).Error; err != nil {
		return nil, nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var categories []models.BudgetCategory
	if err := s.db.Order("id").Find(&categories).Error; err != nil {
		return nil, nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var expenses []models.Expense
	if err := s.db.Order("id").Find(&expenses).Error; err != nil {
		return nil, nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	budgetRecords := make([]report.BudgetRecord, len(budgets))
	for i, b := range budgets {
		budgetRecords[i] = report.BudgetRecord{
			ID:             b.ID,
			VillageID:      b.VillageID,
			Year:           b.Year,
			TotalAllocated: b.TotalAllocated.String(),
		}
	}
	categoryRecords := make([]report.CategoryRecord, len(categories))
	for i, c := range categories {
		categoryRecords[i] = report.CategoryRecord{
			ID:              c.ID,
			BudgetID:        c.BudgetID,
			CategoryName:    c.CategoryName,
			AllocatedAmount: c.AllocatedAmount.String(),
		}
	}
	expenseRecords := make([]report.ExpenseRecord, len(expenses))
	for i, e := range expenses {
		expenseRecords[i] = report.ExpenseRecord{
			ID:          e.ID,
			CategoryID:  e.CategoryID,
			Amount:      e.Amount.String(),
			ExpenseDate: e.ExpenseDate.Format("2006-01-02"),
		}
	}
	return budgetRecords, categoryRecords, expenseRecords, nil
}
