// Package report turns raw entity collections into chart-ready series and
// summary figures. Every function is pure: no network, no database, no
// side effects. Money fields stay decimal strings until the point of
// arithmetic, which runs on decimal.Decimal so repeated aggregation never
// accumulates binary floating point drift.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetRecord is a budget row as fetched from the API.
type BudgetRecord struct {
	ID             uint   `json:"id"`
	VillageID      uint   `json:"village_id"`
	Year           int    `json:"year"`
	TotalAllocated string `json:"total_allocated"`
}

// CategoryRecord is a budget category row as fetched from the API.
type CategoryRecord struct {
	ID              uint   `json:"id"`
	BudgetID        uint   `json:"budget_id"`
	CategoryName    string `json:"category_name"`
	AllocatedAmount string `json:"allocated_amount"`
}

// ExpenseRecord is an expense row as fetched from the API.
type ExpenseRecord struct {
	ID          uint   `json:"id"`
	CategoryID  uint   `json:"category_id"`
	Amount      string `json:"amount"`
	ExpenseDate string `json:"expense_date"`
}

// Series is a labelled sequence of values ready for charting. Labels and
// Values are parallel slices.
type Series struct {
	Labels []string
	Values []decimal.Decimal
}

// Total returns the sum of all values in the series.
func (s Series) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range s.Values {
		total = total.Add(v)
	}
	return total
}

// Floats converts the series values for renderers that take float64. Use only
// at the display boundary, after all aggregation is done.
func (s Series) Floats() []float64 {
	out := make([]float64, len(s.Values))
	for i, v := range s.Values {
		out[i] = v.InexactFloat64()
	}
	return out
}

// ParseAmount parses a decimal amount string. Empty or unparseable input
// yields zero, never an error: a bad row degrades to a neutral value instead
// of poisoning an aggregate.
func ParseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// BudgetsByYear partitions budgets by year and sums total_allocated per year.
// Year labels are sorted ascending; lexicographic order on the string form is
// fine since years are four digits.
func BudgetsByYear(budgets []BudgetRecord) Series {
	byYear := make(map[string]decimal.Decimal)
	for _, b := range budgets {
		label := strconv.Itoa(b.Year)
		byYear[label] = byYear[label].Add(ParseAmount(b.TotalAllocated))
	}
	return sortedSeries(byYear)
}

// Cumulative derives a running-total series from an ordered value sequence.
func Cumulative(values []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	running := decimal.Zero
	for i, v := range values {
		running = running.Add(v)
		out[i] = running
	}
	return out
}

// CategoryShares maps each category row to one series point. Categories with
// the same name are not merged.
func CategoryShares(categories []CategoryRecord) Series {
	s := Series{
		Labels: make([]string, 0, len(categories)),
		Values: make([]decimal.Decimal, 0, len(categories)),
	}
	for _, c := range categories {
		s.Labels = append(s.Labels, c.CategoryName)
		s.Values = append(s.Values, ParseAmount(c.AllocatedAmount))
	}
	return s
}

// AllocationByBudgetYear resolves each category's parent budget year and sums
// allocations per year, sorted ascending. Categories whose budget id has no
// match resolve to year 0 and are dropped from this view.
func AllocationByBudgetYear(categories []CategoryRecord, budgets []BudgetRecord) Series {
	yearByBudget := make(map[uint]int, len(budgets))
	for _, b := range budgets {
		yearByBudget[b.ID] = b.Year
	}

	byYear := make(map[string]decimal.Decimal)
	for _, c := range categories {
		year := yearByBudget[c.BudgetID]
		if year == 0 {
			continue
		}
		label := strconv.Itoa(year)
		byYear[label] = byYear[label].Add(ParseAmount(c.AllocatedAmount))
	}
	return sortedSeries(byYear)
}

// ExpensesByCategory resolves each expense's category name and sums amounts
// per label, preserving first-seen label order. Unresolved category ids fall
// back to a synthetic "Category {id}" label.
func ExpensesByCategory(expenses []ExpenseRecord, categories []CategoryRecord) Series {
	nameByID := make(map[uint]string, len(categories))
	for _, c := range categories {
		nameByID[c.ID] = c.CategoryName
	}

	byLabel := make(map[string]decimal.Decimal)
	var order []string
	for _, e := range expenses {
		label, ok := nameByID[e.CategoryID]
		if !ok {
			label = fmt.Sprintf("Category %d", e.CategoryID)
		}
		if _, seen := byLabel[label]; !seen {
			order = append(order, label)
		}
		byLabel[label] = byLabel[label].Add(ParseAmount(e.Amount))
	}

	s := Series{Labels: order, Values: make([]decimal.Decimal, len(order))}
	for i, label := range order {
		s.Values[i] = byLabel[label]
	}
	return s
}

// ExpensesByMonth buckets expenses by "YYYY-MM" key and sums amounts per
// bucket, sorted ascending by key. Expenses with an invalid date are skipped
// and do not affect any bucket.
func ExpensesByMonth(expenses []ExpenseRecord) Series {
	byMonth := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		t, ok := parseDate(e.ExpenseDate)
		if !ok {
			continue
		}
		key := fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
		byMonth[key] = byMonth[key].Add(ParseAmount(e.Amount))
	}
	return sortedSeries(byMonth)
}

// CategoryPercentages returns each category's share of the total allocation
// across all categories, rounded to one decimal place. When the total is zero
// every percentage is zero; the division-by-zero case never reaches a
// rendered label.
func CategoryPercentages(categories []CategoryRecord) []decimal.Decimal {
	total := decimal.Zero
	values := make([]decimal.Decimal, len(categories))
	for i, c := range categories {
		values[i] = ParseAmount(c.AllocatedAmount)
		total = total.Add(values[i])
	}

	out := make([]decimal.Decimal, len(categories))
	if total.IsZero() {
		for i := range out {
			out[i] = decimal.Zero
		}
		return out
	}
	hundred := decimal.NewFromInt(100)
	for i, v := range values {
		out[i] = v.Mul(hundred).DivRound(total, 1)
	}
	return out
}

// Remaining is the flat top-level dashboard figure: the sum of all loaded
// budget allocations minus the sum of all loaded expense amounts. It is not
// scoped per category.
func Remaining(budgets []BudgetRecord, expenses []ExpenseRecord) decimal.Decimal {
	allocated := decimal.Zero
	for _, b := range budgets {
		allocated = allocated.Add(ParseAmount(b.TotalAllocated))
	}
	spent := decimal.Zero
	for _, e := range expenses {
		spent = spent.Add(ParseAmount(e.Amount))
	}
	return allocated.Sub(spent)
}

// parseDate accepts the wire date form ("2006-01-02") and full RFC 3339
// timestamps, which some backends emit for date columns.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func sortedSeries(m map[string]decimal.Decimal) Series {
	labels := make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	s := Series{Labels: labels, Values: make([]decimal.Decimal, len(labels))}
	for i, label := range labels {
		s.Values[i] = m[label]
	}
	return s
}
