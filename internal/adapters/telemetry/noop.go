// Package telemetry provides telemetry adapters that need no external backend.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/cargoc/internal/core/ports"
)

var _ ports.Telemetry = (*NoOp)(nil)

// NoOp is a ports.Telemetry that discards everything.
type NoOp struct{}

// NewNoOp creates a new NoOp telemetry.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns ctx carrying a vertex that discards its output.
func (t *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	v := noOpVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Counts always reports zero steps.
func (t *NoOp) Counts() domain.StepCounts {
	return domain.StepCounts{}
}

// Close does nothing.
func (t *NoOp) Close() error {
	return nil
}

type noOpVertex struct{}

func (noOpVertex) Stdout() io.Writer               { return io.Discard }
func (noOpVertex) Stderr() io.Writer               { return io.Discard }
func (noOpVertex) Log(_ domain.LogLevel, _ string) {}
func (noOpVertex) Complete(_ error)                {}
func (noOpVertex) Cached()                         {}
