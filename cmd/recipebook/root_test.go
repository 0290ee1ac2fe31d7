package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = `<html><body>
<div class="recipe-card">
  <h3 class="recipe-card__title">Choco Bake Bars</h3>
  <p class="recipe-card__description">Fudgy.</p>
</div>
<div class="recipe-card">
  <h3 class="recipe-card__title">Lemon Tart</h3>
  <p class="recipe-card__description">Weekend baking at its best.</p>
</div>
<div class="recipe-card">
  <h3 class="recipe-card__title">Green Salad</h3>
  <p class="recipe-card__description">Crunchy.</p>
</div>
</body></html>`

func setupSource(t *testing.T, status int) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(listingPage))
	}))
	t.Cleanup(server.Close)

	t.Setenv("RECIPEBOOK_SERVER_ENVIRONMENT", "test")
	t.Setenv("RECIPEBOOK_SOURCE_URL", server.URL)
	t.Setenv("RECIPEBOOK_LOGGING_LEVEL", "error")
}

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "shell")
	assert.Contains(t, names, "serve")
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
}

func TestShellCommand_SearchesIngestedRecipes(t *testing.T) {
	setupSource(t, http.StatusOK)

	out, err := execute(t, "1\nbake\n3\n\n\n\n4\n", "shell")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Welcome to Ally's online Recipe Book!"))
	assert.Contains(t, out, "Recipe: Choco Bake Bars")
	assert.NotContains(t, out, "Recipe: Lemon Tart")
	assert.Contains(t, out, "Matching Recipes:\nChoco Bake Bars\nLemon Tart\n")
	assert.NotContains(t, out, "Green Salad")
	assert.Contains(t, out, "See you next time!")
}

func TestShellCommand_IsTheDefault(t *testing.T) {
	setupSource(t, http.StatusOK)

	out, err := execute(t, "4\n")

	require.NoError(t, err)
	assert.Contains(t, out, "See you next time!")
}

func TestShellCommand_SourceFailureLeavesEmptyBook(t *testing.T) {
	setupSource(t, http.StatusInternalServerError)

	out, err := execute(t, "1\n\n4\n", "shell")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Failed to get the webpage.\nWelcome to Ally's online Recipe Book!\n"))
	assert.Contains(t, out, "No recipes found matching the search query.")
}

func TestShellCommand_InvalidConfig(t *testing.T) {
	setupSource(t, http.StatusOK)
	t.Setenv("RECIPEBOOK_SOURCE_URL", "ftp://example.com")

	_, err := execute(t, "4\n", "shell")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestShellCommand_LogLevelFlag(t *testing.T) {
	setupSource(t, http.StatusOK)

	_, err := execute(t, "4\n", "shell", "--log-level", "verbose")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
