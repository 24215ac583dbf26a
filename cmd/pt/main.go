package main

import (
	"fmt"
	"os"

	"project-tracker/internal/api"
	"project-tracker/internal/cli"
	"project-tracker/internal/config"
	"project-tracker/internal/logging"
)

func main() {
	root := cli.NewRootCommand(config.NewLoader(), buildApp)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.NewErrorHandler().ExitCode(err))
	}
}

// buildApp wires the repository and API for the final configuration.
// The environment is read here so that PT_ENV may come from a .env file.
func buildApp(cfg *config.Config) (*cli.App, func() error, error) {
	env := config.GetEnvironment()

	level := cfg.Logging.Level
	if cfg.Application.Verbose {
		level = "debug"
	}
	if err := logging.ConfigureStd(logging.Options{Level: level, Format: cfg.Logging.Format}); err != nil {
		return nil, nil, err
	}

	if err := cfg.ValidateFor(env); err != nil {
		return nil, nil, err
	}
	cfg.Auth.JWTSecret = cfg.JWTSecretFor(env)

	// Create repository with dependency injection
	repo, err := config.NewRepositoryFactory(env, cfg).CreateRepository()
	if err != nil {
		return nil, nil, fmt.Errorf("error creating repository: %w", err)
	}

	businessAPI, err := api.New(repo, cfg, logging.Std())
	if err != nil {
		repo.Close()
		return nil, nil, err
	}

	app := cli.NewApp(businessAPI, cfg, os.Stdout).
		WithLogger(logging.Std()).
		WithMigrations(repo)

	return app, repo.Close, nil
}
