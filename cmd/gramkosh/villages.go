package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gramkosh/internal/client"
)

func villagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "villages",
		Short: "Manage villages",
	}

	cmd.AddCommand(listVillagesCmd())
	cmd.AddCommand(myVillageCmd())
	cmd.AddCommand(addVillageCmd())
	cmd.AddCommand(deleteVillageCmd())

	return cmd
}

func listVillagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all villages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			villages, err := c.ListVillages(cmd.Context())
			if err != nil {
				return err
			}
			if len(villages) == 0 {
				fmt.Println("No villages found.")
				return nil
			}

			w := newTable()
			defer w.Flush()
			fmt.Fprintln(w, "ID\tNAME\tDISTRICT\tSTATE")
			for _, v := range villages {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", v.ID, v.Name, v.District, v.State)
			}
			return nil
		},
	}
}

func myVillageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show your own village",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			village, err := c.MyVillage(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("%s (%s, %s) id=%d\n", village.Name, village.District, village.State, village.ID)
			return nil
		},
	}
}

func addVillageCmd() *cobra.Command {
	var district, state string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a village (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			village, err := c.CreateVillage(cmd.Context(), client.CreateVillageInput{
				Name:     args[0],
				District: district,
				State:    state,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created village %q with id %d\n", village.Name, village.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&district, "district", "", "district name")
	cmd.Flags().StringVar(&state, "state", "", "state name")

	return cmd
}

func deleteVillageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a village (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ok, err := confirmDelete(cmd, fmt.Sprintf("village %d", id))
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
			if err := c.DeleteVillage(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted village %d\n", id)
			return nil
		},
	}

	addYesFlag(cmd)

	return cmd
}
