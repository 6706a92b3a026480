package progrock

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/vito/progrock"
)

var (
	completedColor = color.New(color.FgGreen)
	cachedColor    = color.New(color.FgHiBlack)
	failedColor    = color.New(color.FgRed, color.Bold)
)

// Progress is a progrock.Writer that prints one line for every step as it finishes.
type Progress struct {
	mu       sync.Mutex
	out      io.Writer
	finished map[string]bool
}

// NewProgress creates a Progress printing to out.
func NewProgress(out io.Writer) *Progress {
	return &Progress{
		out:      out,
		finished: make(map[string]bool),
	}
}

// WriteStatus prints the vertices of update that completed since the last update.
func (p *Progress) WriteStatus(update *progrock.StatusUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, v := range update.Vertexes {
		if err := p.processVertex(v); err != nil {
			return err
		}
	}
	return nil
}

func (p *Progress) processVertex(v *progrock.Vertex) error {
	if v.Completed == nil || p.finished[v.Id] {
		return nil
	}
	p.finished[v.Id] = true

	var line string
	switch {
	case v.Error != nil:
		line = failedColor.Sprint("✗") + " " + v.Name + ": " + v.GetError()
	case v.Canceled:
		line = failedColor.Sprint("✗") + " " + v.Name + " (canceled)"
	case v.Cached:
		line = cachedColor.Sprint("•") + " " + v.Name + " (cached)"
	default:
		line = completedColor.Sprint("✓") + " " + v.Name
	}
	_, err := fmt.Fprintln(p.out, line)
	return err
}

// Close does nothing; out is owned by the caller.
func (p *Progress) Close() error {
	return nil
}
