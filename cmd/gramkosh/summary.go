package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"gramkosh/internal/client"
	"gramkosh/internal/report"
)

// collections holds the raw records the dashboard derivations work from.
type collections struct {
	budgets    []client.Budget
	categories []client.Category
	expenses   []client.Expense
}

// fetchCollections loads budgets, categories, and expenses concurrently.
func fetchCollections(cmd *cobra.Command, c *client.Client) (*collections, error) {
	var data collections

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		data.budgets, err = c.ListBudgets(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.categories, err = c.ListCategories(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.expenses, err = c.ListExpenses(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the budget dashboard",
		Long: `Fetch budgets, categories, and expenses and print the dashboard views:
allocation by year, spending by category and month, and the remaining balance.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			data, err := fetchCollections(cmd, c)
			if err != nil {
				return err
			}

			budgets := client.BudgetRecords(data.budgets)
			categories := client.CategoryRecords(data.categories)
			expenses := client.ExpenseRecords(data.expenses)

			byYear := report.BudgetsByYear(budgets)
			cumulative := report.Cumulative(byYear.Values)
			byCategory := report.ExpensesByCategory(expenses, categories)
			byMonth := report.ExpensesByMonth(expenses)
			remaining := report.Remaining(budgets, expenses)

			fmt.Printf("Budgets: %d  Categories: %d  Expenses: %d\n\n",
				len(budgets), len(categories), len(expenses))

			printSeries("Allocation by year", byYear)
			printSeries("Cumulative allocation", report.Series{Labels: byYear.Labels, Values: cumulative})
			printSeries("Expenses by category", byCategory)
			printSeries("Expenses by month", byMonth)

			fmt.Printf("Total allocated: %s\n", report.FormatAmount(byYear.Total()))
			fmt.Printf("Total spent:     %s\n", report.FormatAmount(byCategory.Total()))
			fmt.Printf("Remaining:       %s\n", report.FormatAmount(remaining))
			return nil
		},
	}
}

func printSeries(title string, s report.Series) {
	fmt.Println(title)
	if len(s.Labels) == 0 {
		fmt.Println("  (no data)")
		fmt.Println()
		return
	}

	w := newTable()
	for i, label := range s.Labels {
		fmt.Fprintf(w, "  %s\t%s\n", label, report.FormatAmount(s.Values[i]))
	}
	w.Flush()
	fmt.Println()
}
