package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "gramkosh",
		Short: "Village budget transparency dashboard",
		Long: `gramkosh is the command line dashboard for the Gramkosh village budget
API: browse villages, budgets, categories, and expenses, and render the
spending charts the web dashboard shows.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/gramkosh/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", "http://localhost:8080", "base URL of the Gramkosh API")
	rootCmd.PersistentFlags().String("session-file", "", "session file path (default: $HOME/.config/gramkosh/session.json)")

	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("session.path", rootCmd.PersistentFlags().Lookup("session-file"))

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(villagesCmd())
	rootCmd.AddCommand(budgetsCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(expensesCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(chartsCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}
		viper.AddConfigPath(fmt.Sprintf("%s/.config/gramkosh", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("GRAMKOSH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}
