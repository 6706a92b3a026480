// Package progrock records build steps on a progrock tape.
package progrock

import (
	"context"
	"errors"
	"io"
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"fortio.org/safecast"
	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/cargoc/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry. Every recorded step gets its own vertex, even when
// two projects of one build share a step name such as "compile src/main.c".
type Recorder struct {
	session *session
	rec     *progrock.Recorder
	seq     atomic.Uint64
}

// New creates a Recorder writing to an in-memory tape.
func New() *Recorder {
	return NewRecorder()
}

// NewRecorder creates a Recorder writing to an in-memory tape and to every writer in sinks.
func NewRecorder(sinks ...progrock.Writer) *Recorder {
	s := &session{tape: progrock.NewTape(), sinks: sinks}
	return &Recorder{
		session: s,
		rec:     progrock.NewRecorder(s),
	}
}

// ShowProgress prints a line to out for every step that finishes from now on.
func (r *Recorder) ShowProgress(out io.Writer) {
	r.session.attach(NewProgress(out))
}

// Record starts a vertex for the build step name.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	id := digest.FromString(strconv.FormatUint(r.seq.Add(1), 10) + "\x00" + name)
	vertex := &Vertex{name: name, vertex: r.rec.Vertex(id, name)}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Counts reads the step tallies off the tape.
func (r *Recorder) Counts() domain.StepCounts {
	tape := r.session.tape
	return domain.StepCounts{
		Total:  tape.TotalCount(),
		Cached: tape.CachedCount(),
		Failed: tape.ErroredCount(),
	}
}

// Steps returns the number of vertices recorded so far.
func (r *Recorder) Steps() int {
	n, err := safecast.Conv[int](r.seq.Load())
	if err != nil {
		return math.MaxInt
	}
	return n
}

// Close closes the tape and every attached writer.
func (r *Recorder) Close() error {
	return r.rec.Close()
}

// session fans status updates out to the tape and the attached writers.
type session struct {
	mu    sync.RWMutex
	tape  *progrock.Tape
	sinks progrock.MultiWriter
}

func (s *session) attach(w progrock.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, w)
}

func (s *session) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.tape.WriteStatus(update); err != nil {
		return err
	}
	return s.sinks.WriteStatus(update)
}

func (s *session) Close() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return errors.Join(s.tape.Close(), s.sinks.Close())
}
