package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gramkosh/internal/client"
	"gramkosh/internal/report"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage budget categories",
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(remainingCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var budgetID uint

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List budget categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			var categories []client.Category
			if budgetID != 0 {
				categories, err = c.ListBudgetCategories(cmd.Context(), budgetID)
			} else {
				categories, err = c.ListCategories(cmd.Context())
			}
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				fmt.Println("No categories found.")
				return nil
			}

			// Share percentages mirror the dashboard's category pie chart.
			records := client.CategoryRecords(categories)
			percentages := report.CategoryPercentages(records)

			w := newTable()
			defer w.Flush()
			fmt.Fprintln(w, "ID\tBUDGET\tNAME\tALLOCATED\tSHARE")
			for i, cat := range categories {
				allocated := report.FormatAmount(report.ParseAmount(cat.AllocatedAmount))
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s%%\n",
					cat.ID, cat.BudgetID, cat.CategoryName, allocated, percentages[i].String())
			}
			return nil
		},
	}

	cmd.Flags().UintVar(&budgetID, "budget", 0, "only categories of this budget")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var (
		budgetID uint
		name     string
		amount   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a budget category (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			category, err := c.CreateCategory(cmd.Context(), client.CreateCategoryInput{
				BudgetID:        budgetID,
				CategoryName:    name,
				AllocatedAmount: amount,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created category %q with id %d\n", category.CategoryName, category.ID)
			return nil
		},
	}

	cmd.Flags().UintVar(&budgetID, "budget", 0, "budget id")
	cmd.Flags().StringVar(&name, "name", "", "category name")
	cmd.Flags().StringVar(&amount, "amount", "", "allocated amount, e.g. 50000.00")
	_ = cmd.MarkFlagRequired("budget")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func remainingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remaining <id>",
		Short: "Show a category's unspent balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			c, err := newClient()
			if err != nil {
				return err
			}

			remaining, err := c.CategoryRemaining(cmd.Context(), id)
			if err != nil {
				return err
			}

			w := newTable()
			defer w.Flush()
			fmt.Fprintf(w, "Category\t%s\n", remaining.CategoryName)
			fmt.Fprintf(w, "Allocated\t%s\n", report.FormatAmount(report.ParseAmount(remaining.AllocatedAmount)))
			fmt.Fprintf(w, "Spent\t%s\n", report.FormatAmount(report.ParseAmount(remaining.TotalSpent)))
			fmt.Fprintf(w, "Remaining\t%s\n", report.FormatAmount(report.ParseAmount(remaining.Remaining)))
			return nil
		},
	}
}
