// Package logger constructs the zap loggers used across the module.
package logger

import (
	"go.uber.org/zap"
)

// New builds a production sugared logger tagged with the service name.
// Logging failures fall back to a nop logger rather than preventing
// the caller from starting.
func New(service string) *zap.SugaredLogger {
	config := zap.NewProductionConfig()
	config.DisableStacktrace = true

	log, err := config.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}

	return log.Sugar().With("service", service)
}

// NewNop returns a logger that discards everything. Sessions default
// to it when no logger is configured.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
