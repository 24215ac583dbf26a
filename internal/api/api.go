// Package api exposes the use cases through a validated facade and a gin
// HTTP server.
package api

import (
	"fmt"

	"project-tracker/internal/config"
	"project-tracker/internal/repository"
	"project-tracker/internal/repository/sqlite"
	"project-tracker/internal/security"
	"project-tracker/internal/services"
	"project-tracker/internal/sinks"
	"project-tracker/internal/validation"

	"github.com/sirupsen/logrus"
)

// New wires the stores, security adapters, sinks and use cases over repo.
// cfg.Auth.JWTSecret must already be resolved for the running environment.
func New(repo sqlite.Repository, cfg *config.Config, log logrus.FieldLogger) (BusinessAPI, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	tokens, err := security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	container := services.NewServiceContainer(services.Dependencies{
		Projects:    repository.NewProjectStore(repo),
		Tasks:       repository.NewTaskStore(repo),
		Users:       repository.NewUserStore(repo),
		CurrentUser: security.NewContextResolver(),
		Audit:       sinks.NewAuditLog(repository.NewAuditStore(repo), log),
		Notifier:    sinks.NewLogNotifier(log),
		Hasher:      security.NewBcryptHasher(cfg.Auth.BcryptCost),
		Tokens:      tokens,
		Logger:      log,
	})

	return NewBusinessAPI(container, validation.NewValidatorWithConfig(cfg), tokens), nil
}
