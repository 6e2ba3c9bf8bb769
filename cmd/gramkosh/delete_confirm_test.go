package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gramkosh/internal/client"
)

// setupDeleteTest points the CLI at a counting test server with a stored
// session, so delete commands can run end to end.
func setupDeleteTest(t *testing.T) *atomic.Int64 {
	t.Helper()

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"deleted successfully"}`))
	}))
	t.Cleanup(server.Close)

	sessionPath := filepath.Join(t.TempDir(), "session.json")
	store := client.NewFileStore(sessionPath)
	require.NoError(t, store.Save(&client.Session{Token: "test-token"}))

	viper.Set("api.base_url", server.URL)
	viper.Set("session.path", sessionPath)
	t.Cleanup(viper.Reset)

	return &requests
}

func runDelete(t *testing.T, cmd *cobra.Command, stdin string, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestDeleteDeclinedSendsNoRequest(t *testing.T) {
	requests := setupDeleteTest(t)

	out := runDelete(t, deleteExpenseCmd(), "n\n", "7")

	assert.Equal(t, int64(0), requests.Load())
	assert.Contains(t, out, "[y/N]")
	assert.Contains(t, out, "Aborted.")
}

func TestDeleteEmptyAnswerDeclines(t *testing.T) {
	requests := setupDeleteTest(t)

	out := runDelete(t, deleteBudgetCmd(), "\n", "3")

	assert.Equal(t, int64(0), requests.Load())
	assert.Contains(t, out, "Aborted.")
}

func TestDeleteConfirmedSendsRequest(t *testing.T) {
	requests := setupDeleteTest(t)

	out := runDelete(t, deleteVillageCmd(), "y\n", "5")

	assert.Equal(t, int64(1), requests.Load())
	assert.Contains(t, out, "Deleted village 5")
}

func TestDeleteYesFlagSkipsPrompt(t *testing.T) {
	requests := setupDeleteTest(t)

	out := runDelete(t, deleteExpenseCmd(), "", "7", "--yes")

	assert.Equal(t, int64(1), requests.Load())
	assert.NotContains(t, out, "[y/N]")
	assert.Contains(t, out, "Deleted expense 7")
}
