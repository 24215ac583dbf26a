package cli

import (
	"bytes"
	"testing"
	"time"

	"project-tracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs one pt invocation against app and returns its output and the final config
func execute(t *testing.T, app *App, out *bytes.Buffer, args ...string) (string, *config.Config, error) {
	t.Helper()
	out.Reset()

	var loaded *config.Config
	cleaned := false
	root := NewRootCommand(config.NewLoaderWithEnvFiles(), func(cfg *config.Config) (*App, func() error, error) {
		loaded = cfg
		app.config = cfg
		return app, func() error { cleaned = true; return nil }, nil
	})
	root.Command().SetArgs(args)

	err := root.Execute()
	if loaded != nil {
		assert.True(t, cleaned, "cleanup should run after the command")
	}
	return out.String(), loaded, err
}

func TestRootCommand_FlagOverrides(t *testing.T) {
	app, out := setupTestApp(t)

	_, cfg, err := execute(t, app, out, "--app-timeout", "5s", "--port", "9191", "--log-level", "debug", "migrate", "status")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 5*time.Second, cfg.Application.Timeout)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestRootCommand_InvalidOverride(t *testing.T) {
	app, out := setupTestApp(t)

	_, _, err := execute(t, app, out, "--port", "0", "migrate", "status")
	require.Error(t, err)

	var cfgErr *config.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "server.port", cfgErr.Field)
}

func TestRootCommand_Workflow(t *testing.T) {
	app, out := setupTestApp(t)
	output, _, err := execute(t, app, out, "register", "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	token := tokenFrom(t, output)

	output, _, err = execute(t, app, out, "--token", token, "project", "create", "Docs", "site")
	require.NoError(t, err)
	assert.Contains(t, output, "Docs site (DRAFT)")
	projectID := idFrom(t, output)

	output, _, err = execute(t, app, out, "--token", token, "task", "create", projectID, "Write", "intro")
	require.NoError(t, err)
	assert.Contains(t, output, "Write intro")

	output, _, err = execute(t, app, out, "--token", token, "project", "activate", projectID)
	require.NoError(t, err)
	assert.Contains(t, output, "Activated project")
}

func TestRootCommand_ArgumentValidation(t *testing.T) {
	app, out := setupTestApp(t)

	_, _, err := execute(t, app, out, "register", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 3 arg(s)")

	_, _, err = execute(t, app, out, "task", "complete")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}
