package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gramkosh/internal/charts"
	"gramkosh/internal/client"
	"gramkosh/internal/report"
)

func chartsCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Render the dashboard charts as PNG files",
		Long: `Fetch the raw collections and render each dashboard chart to a PNG file
in the output directory.`,
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
			renderer := charts.NewRenderer()

			files := []struct {
				name   string
				render func() ([]byte, error)
			}{
				{"budgets-by-year.png", func() ([]byte, error) {
					return renderer.Bar("Allocation by Year", byYear)
				}},
				{"budgets-cumulative.png", func() ([]byte, error) {
					cumulative := report.Series{Labels: byYear.Labels, Values: report.Cumulative(byYear.Values)}
					return renderer.Line("Cumulative Allocation", cumulative)
				}},
				{"category-shares.png", func() ([]byte, error) {
					return renderer.Pie("Allocation by Category", report.CategoryShares(categories))
				}},
				{"allocation-by-budget-year.png", func() ([]byte, error) {
					return renderer.Bar("Allocation by Budget Year", report.AllocationByBudgetYear(categories, budgets))
				}},
				{"expenses-by-category.png", func() ([]byte, error) {
					return renderer.Bar("Expenses by Category", report.ExpensesByCategory(expenses, categories))
				}},
				{"expenses-by-month.png", func() ([]byte, error) {
					return renderer.Line("Expenses Over Time", report.ExpensesByMonth(expenses))
				}},
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("creating output dir: %w", err)
			}

			rendered := 0
			for _, f := range files {
				png, err := f.render()
				if err != nil {
					return fmt.Errorf("rendering %s: %w", f.name, err)
				}
				if png == nil {
					continue
				}

				path := filepath.Join(outDir, f.name)
				if err := os.WriteFile(path, png, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
				fmt.Println("Wrote", path)
				rendered++
			}

			if rendered == 0 {
				fmt.Println("No data to chart.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "charts", "output directory for PNG files")

	return cmd
}
