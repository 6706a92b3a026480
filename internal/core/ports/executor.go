// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/cargoc/internal/core/domain"
)

// Executor runs synthesized commands as child processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs cmd in cmd.Dir and blocks until it exits.
	//
	// It returns an error carrying the exit code when the process exits with a non-zero status.
	Execute(ctx context.Context, cmd domain.Command) error
}
