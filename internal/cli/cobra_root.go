package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"project-tracker/internal/config"

	"github.com/spf13/cobra"
)

// AppFactory builds the application once configuration is final. cleanup
// releases whatever the app holds open.
type AppFactory func(cfg *config.Config) (app *App, cleanup func() error, err error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	factory AppFactory

	config  *config.Config
	app     *App
	cleanup func() error
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, factory AppFactory) *RootCommand {
	root := &RootCommand{
		loader:  loader,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "pt",
		Short: "A project and task tracker",
		Long: `Project Tracker (pt) manages projects and their tasks for registered users.

A project starts as a DRAFT and can be activated once it has at least one
open task. Tasks can only be completed while their project is ACTIVE.

EXAMPLES:
  pt register alice alice@example.com s3cret!     # Create an account and print a token
  pt login alice s3cret!                          # Print a fresh token
  export PT_TOKEN=<token>
  pt project create Website relaunch              # Create a DRAFT project
  pt task create <project-id> Design landing page # Add a task
  pt project activate <project-id>                # Activate the project
  pt task complete <task-id>                      # Complete a task
  pt serve                                        # Serve the HTTP API

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > .env > defaults

    PT_ENV                    development, testing or production (default: production)
    PT_DB_DIR                 Database directory (default: ~/.pt)
    PT_DB_FILENAME            Database filename (default: pt.db)
    PT_DB_QUERY_TIMEOUT       Query timeout (default: 10s)
    PT_AUTH_JWT_SECRET        Token signing secret (required in production)
    PT_AUTH_TOKEN_TTL         Token lifetime (default: 24h)
    PT_SERVER_HOST            HTTP host (default: 127.0.0.1)
    PT_SERVER_PORT            HTTP port (default: 8080)
    PT_LOG_LEVEL              Log level (default: info)
    PT_LOG_FORMAT             text or json (default: text)
    PT_APP_TIMEOUT            Command timeout (default: 60s)
    PT_TOKEN                  Bearer token for authenticated commands`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command and releases the app afterwards
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	defer r.close()
	return r.cmd.ExecuteContext(ctx)
}

// Command exposes the cobra command for argument and output redirection
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides PT_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides PT_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides PT_DB_QUERY_TIMEOUT)")

	flags.Duration("token-ttl", 0, "Token lifetime (overrides PT_AUTH_TOKEN_TTL)")

	flags.String("host", "", "HTTP host (overrides PT_SERVER_HOST)")
	flags.Int("port", 0, "HTTP port (overrides PT_SERVER_PORT)")

	flags.String("log-level", "", "Log level (overrides PT_LOG_LEVEL)")
	flags.String("log-format", "", "Log format, text or json (overrides PT_LOG_FORMAT)")

	flags.Duration("app-timeout", 0, "Command timeout (overrides PT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides PT_APP_VERBOSE)")

	flags.String("token", "", "Bearer token (overrides "+TokenEnvVar+")")
}

func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long:  "Serve the HTTP API on the configured host and port until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return r.app.registry.Execute(ctx, "serve", args)
		},
	}

	registerCmd := r.leaf("register <username> <email> <password>", "register",
		"Create an account and print its token", cobra.ExactArgs(3))
	loginCmd := r.leaf("login <username> <password>", "login",
		"Log in and print a token", cobra.ExactArgs(2))

	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	projectCmd.AddCommand(
		r.leaf("create <name>", "project create", "Create a DRAFT project", cobra.MinimumNArgs(1)),
		r.leaf("list", "project list", "List your projects", cobra.NoArgs),
		r.leaf("show <project-id>", "project show", "Show a project and its tasks", cobra.ExactArgs(1)),
		r.leaf("activate <project-id>", "project activate", "Activate a DRAFT project with an open task", cobra.ExactArgs(1)),
		r.leaf("delete <project-id>", "project delete", "Delete a project", cobra.ExactArgs(1)),
	)

	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	taskCmd.AddCommand(
		r.leaf("create <project-id> <title>", "task create", "Add a task to a project", cobra.MinimumNArgs(2)),
		r.leaf("list <project-id>", "task list", "List the tasks of a project", cobra.ExactArgs(1)),
		r.leaf("complete <task-id>", "task complete", "Complete a task of an ACTIVE project", cobra.ExactArgs(1)),
		r.leaf("delete <task-id>", "task delete", "Delete a task", cobra.ExactArgs(1)),
	)

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Inspect the database schema",
	}
	migrateCmd.AddCommand(
		r.leaf("status", "migrate status", "List schema migrations", cobra.NoArgs),
	)

	r.cmd.AddCommand(serveCmd, registerCmd, loginCmd, projectCmd, taskCmd, migrateCmd)
}

// leaf builds a subcommand that dispatches to the registered handler under name
func (r *RootCommand) leaf(use, name, short string, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()
			return r.app.registry.Execute(ctx, name, args)
		},
	}
}

// setup loads configuration with flag overrides and builds the app
func (r *RootCommand) setup() error {
	cfg, err := r.loader.LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return err
	}
	r.config = cfg

	app, cleanup, err := r.factory(cfg)
	if err != nil {
		return err
	}
	r.app = app
	r.cleanup = cleanup

	if token, _ := r.cmd.PersistentFlags().GetString("token"); token != "" {
		r.app.WithToken(token)
	}
	return nil
}

func (r *RootCommand) close() {
	if r.cleanup != nil {
		if err := r.cleanup(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		r.cleanup = nil
	}
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// overridesFromFlags collects the flags that were set explicitly
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("token-ttl") {
		v, _ := flags.GetDuration("token-ttl")
		overrides.TokenTTL = &v
	}
	if flags.Changed("host") {
		v, _ := flags.GetString("host")
		overrides.ServerHost = &v
	}
	if flags.Changed("port") {
		v, _ := flags.GetInt("port")
		overrides.ServerPort = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("log-format") {
		v, _ := flags.GetString("log-format")
		overrides.LogFormat = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}
