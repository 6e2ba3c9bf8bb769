package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gramkosh/internal/client"
)

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store a session",
		Long:  `Authenticate against the API and persist the access token for later commands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			session, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Printf("Logged in as %s (%s)\n", session.User.Name, session.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	var (
		name, email, password, role string
		villageID                   uint
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create a new account. Villagers must name the village they belong to;
admins are not tied to a village.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			input := client.RegisterInput{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     role,
			}
			if villageID != 0 {
				input.VillageID = &villageID
			}

			session, err := c.Register(cmd.Context(), input)
			if err != nil {
				return err
			}

			fmt.Printf("Registered %s as %s\n", session.User.Email, session.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&role, "role", "villager", "account role (admin, villager)")
	cmd.Flags().UintVar(&villageID, "village", 0, "village id (required for villagers)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			user, err := c.Profile(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("%s <%s> role=%s", user.Name, user.Email, user.Role)
			if user.VillageID != nil {
				fmt.Printf(" village=%d", *user.VillageID)
			}
			fmt.Println()
			return nil
		},
	}
}
