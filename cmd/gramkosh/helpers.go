package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gramkosh/internal/client"
)

// newClient builds the API client from the resolved configuration.
func newClient() (*client.Client, error) {
	sessionPath := viper.GetString("session.path")
	if sessionPath == "" {
		var err error
		sessionPath, err = client.DefaultSessionPath()
		if err != nil {
			return nil, err
		}
	}

	store := client.NewFileStore(sessionPath)
	return client.New(viper.GetString("api.base_url"), store, nil), nil
}

// parseID parses a positive numeric id argument.
func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

// newTable returns a tabwriter for aligned table output on stdout.
func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

// addYesFlag registers the flag that skips delete confirmation prompts.
func addYesFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}

// confirmDelete prompts before a destructive command runs. The --yes flag
// answers for the user; anything but y/yes declines, including EOF.
func confirmDelete(cmd *cobra.Command, what string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true, nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Delete %s? [y/N]: ", what)

	input, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	response := strings.ToLower(strings.TrimSpace(input))
	return response == "y" || response == "yes", nil
}
