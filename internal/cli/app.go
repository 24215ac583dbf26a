package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"project-tracker/internal/api"
	"project-tracker/internal/config"
	"project-tracker/internal/errors"
	"project-tracker/internal/repository/sqlite/migrations"

	"github.com/sirupsen/logrus"
)

// TokenEnvVar supplies the bearer token when --token is not given
const TokenEnvVar = "PT_TOKEN"

// MigrationStatusSource reports applied schema migrations
type MigrationStatusSource interface {
	MigrationStatus(ctx context.Context) ([]migrations.Status, error)
}

// App represents the main CLI application
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	out         io.Writer
	log         logrus.FieldLogger
	migrations  MigrationStatusSource
	token       string
	registry    *CommandRegistry
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if out == nil {
		out = os.Stdout
	}
	app := &App{
		businessAPI: businessAPI,
		config:      cfg,
		out:         out,
		log:         logrus.StandardLogger(),
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// WithToken sets the bearer token used by authenticated commands
func (a *App) WithToken(token string) *App {
	a.token = token
	return a
}

func (a *App) WithLogger(log logrus.FieldLogger) *App {
	if log != nil {
		a.log = log
	}
	return a
}

func (a *App) WithMigrations(src MigrationStatusSource) *App {
	a.migrations = src
	return a
}

// Run dispatches args to a registered command. Two-word names such as
// "project create" take precedence over single-word ones.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}

	if len(args) >= 2 {
		name := args[0] + " " + args[1]
		if a.registry.Has(name) {
			return a.registry.Execute(ctx, name, args[2:])
		}
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

// authenticate attaches the principal of the configured token to ctx
func (a *App) authenticate(ctx context.Context) (context.Context, error) {
	token := a.token
	if token == "" {
		token = os.Getenv(TokenEnvVar)
	}
	if token == "" {
		return ctx, errors.NewUnauthenticatedError("authentication required: pass --token or set " + TokenEnvVar)
	}
	return a.businessAPI.Authenticate(ctx, token)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}
