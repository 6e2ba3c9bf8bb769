package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gramkosh/internal/client"
	"gramkosh/internal/report"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Manage recorded expenses",
	}

	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(updateExpenseCmd())
	cmd.AddCommand(deleteExpenseCmd())

	return cmd
}

func listExpensesCmd() *cobra.Command {
	var categoryID uint

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			var expenses []client.Expense
			if categoryID != 0 {
				expenses, err = c.ListCategoryExpenses(cmd.Context(), categoryID)
			} else {
				expenses, err = c.ListExpenses(cmd.Context())
			}
			if err != nil {
				return err
			}
			if len(expenses) == 0 {
				fmt.Println("No expenses found.")
				return nil
			}

			w := newTable()
			defer w.Flush()
			fmt.Fprintln(w, "ID\tCATEGORY\tDATE\tAMOUNT\tVENDOR\tDESCRIPTION")
			for _, e := range expenses {
				amount := report.FormatAmount(report.ParseAmount(e.Amount))
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
					e.ID, e.CategoryID, e.ExpenseDate, amount, e.VendorName, e.Description)
			}
			return nil
		},
	}

	cmd.Flags().UintVar(&categoryID, "category", 0, "only expenses of this category")

	return cmd
}

func addExpenseCmd() *cobra.Command {
	var (
		categoryID          uint
		amount, date        string
		vendor, description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			expense, err := c.CreateExpense(cmd.Context(), client.CreateExpenseInput{
				CategoryID:  categoryID,
				Description: description,
				Amount:      amount,
				VendorName:  vendor,
				ExpenseDate: date,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Recorded expense %d of %s on %s\n",
				expense.ID, report.FormatAmount(report.ParseAmount(expense.Amount)), expense.ExpenseDate)
			return nil
		},
	}

	cmd.Flags().UintVar(&categoryID, "category", 0, "category id")
	cmd.Flags().StringVar(&amount, "amount", "", "expense amount, e.g. 1250.00")
	cmd.Flags().StringVar(&date, "date", "", "expense date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&vendor, "vendor", "", "vendor name")
	cmd.Flags().StringVar(&description, "description", "", "what the money was spent on")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func updateExpenseCmd() *cobra.Command {
	var amount, date, vendor, description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an expense (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var input client.UpdateExpenseInput
			if cmd.Flags().Changed("amount") {
				input.Amount = &amount
			}
			if cmd.Flags().Changed("date") {
				input.ExpenseDate = &date
			}
			if cmd.Flags().Changed("vendor") {
				input.VendorName = &vendor
			}
			if cmd.Flags().Changed("description") {
				input.Description = &description
			}
			if input.Amount == nil && input.ExpenseDate == nil && input.VendorName == nil && input.Description == nil {
				return fmt.Errorf("nothing to update")
			}

			c, err := newClient()
			if err != nil {
				return err
			}

			expense, err := c.UpdateExpense(cmd.Context(), id, input)
			if err != nil {
				return err
			}

			fmt.Printf("Updated expense %d\n", expense.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&date, "date", "", "new expense date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&vendor, "vendor", "", "new vendor name")
	cmd.Flags().StringVar(&description, "description", "", "new description")

	return cmd
}

func deleteExpenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ok, err := confirmDelete(cmd, fmt.Sprintf("expense %d", id))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.DeleteExpense(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted expense %d\n", id)
			return nil
		},
	}

	addYesFlag(cmd)

	return cmd
}
