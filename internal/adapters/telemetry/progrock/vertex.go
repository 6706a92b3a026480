package progrock

import (
	"fmt"
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/cargoc/internal/core/domain"
)

// Vertex implements ports.Vertex for one compile, link or dependency step.
type Vertex struct {
	name   string
	vertex *progrock.VertexRecorder
	cached bool
	done   bool
}

// Name returns the step name the vertex was recorded with.
func (v *Vertex) Name() string {
	return v.name
}

// Stdout returns the writer receiving the standard output of the step's subprocess.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr returns the writer receiving the diagnostics of the step's subprocess.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log writes msg to the vertex. Warnings and errors go to the diagnostics stream.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.vertex.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", level, msg)
}

// Cached marks the step as up to date.
func (v *Vertex) Cached() {
	v.cached = true
	v.vertex.Cached()
}

// Complete finishes the step. A failure is echoed to the diagnostics stream first.
// Calls after the first are ignored.
func (v *Vertex) Complete(err error) {
	if v.done {
		return
	}
	v.done = true
	if err != nil {
		_, _ = fmt.Fprintf(v.vertex.Stderr(), "%s failed: %v\n", v.name, err)
	}
	v.vertex.Done(err)
}

// IsCached reports whether the step was skipped as up to date.
func (v *Vertex) IsCached() bool {
	return v.cached
}
