package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gramkosh/internal/client"
	"gramkosh/internal/report"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage annual village budgets",
	}

	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(addBudgetCmd())
	cmd.AddCommand(updateBudgetCmd())
	cmd.AddCommand(deleteBudgetCmd())

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	var villageID uint

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		Long:  `List the budgets you can see. Admins see all villages, villagers their own.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			var budgets []client.Budget
			if villageID != 0 {
				budgets, err = c.ListVillageBudgets(cmd.Context(), villageID)
			} else {
				budgets, err = c.ListBudgets(cmd.Context())
			}
			if err != nil {
				return err
			}
			if len(budgets) == 0 {
				fmt.Println("No budgets found.")
				return nil
			}

			w := newTable()
			defer w.Flush()
			fmt.Fprintln(w, "ID\tVILLAGE\tYEAR\tALLOCATED")
			for _, b := range budgets {
				village := fmt.Sprintf("%d", b.VillageID)
				if b.Village != nil {
					village = b.Village.Name
				}
				allocated := report.FormatAmount(report.ParseAmount(b.TotalAllocated))
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", b.ID, village, b.Year, allocated)
			}
			return nil
		},
	}

	cmd.Flags().UintVar(&villageID, "village", 0, "only budgets of this village")

	return cmd
}

func addBudgetCmd() *cobra.Command {
	var (
		villageID uint
		year      int
		amount    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a budget (admin)",
		Long:  `Create an annual budget for a village. A village can have one budget per year.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			budget, err := c.CreateBudget(cmd.Context(), client.CreateBudgetInput{
				VillageID:      villageID,
				Year:           year,
				TotalAllocated: amount,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created budget %d for village %d year %d\n", budget.ID, budget.VillageID, budget.Year)
			return nil
		},
	}

	cmd.Flags().UintVar(&villageID, "village", 0, "village id")
	cmd.Flags().IntVar(&year, "year", 0, "budget year")
	cmd.Flags().StringVar(&amount, "amount", "", "total allocated amount, e.g. 500000.00")
	_ = cmd.MarkFlagRequired("village")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func updateBudgetCmd() *cobra.Command {
	var (
		year   int
		amount string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a budget (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var input client.UpdateBudgetInput
			if cmd.Flags().Changed("year") {
				input.Year = &year
			}
			if cmd.Flags().Changed("amount") {
				input.TotalAllocated = &amount
			}
			if input.Year == nil && input.TotalAllocated == nil {
				return fmt.Errorf("nothing to update, pass --year or --amount")
			}

			c, err := newClient()
			if err != nil {
				return err
			}

			budget, err := c.UpdateBudget(cmd.Context(), id, input)
			if err != nil {
				return err
			}

			fmt.Printf("Updated budget %d\n", budget.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "new budget year")
	cmd.Flags().StringVar(&amount, "amount", "", "new total allocated amount")

	return cmd
}

func deleteBudgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget and its categories (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ok, err := confirmDelete(cmd, fmt.Sprintf("budget %d and its categories", id))
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
			if err := c.DeleteBudget(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted budget %d\n", id)
			return nil
		},
	}

	addYesFlag(cmd)

	return cmd
}
