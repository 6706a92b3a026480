package progrock_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vito "github.com/vito/progrock"
	"go.trai.ch/cargoc/internal/adapters/telemetry/progrock"
	"go.trai.ch/cargoc/internal/core/domain"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func recordBuild(recorder *progrock.Recorder) {
	ctx := context.Background()

	_, cached := recorder.Record(ctx, "compile a.c")
	cached.Cached()
	cached.Complete(nil)

	_, compiled := recorder.Record(ctx, "compile b.c")
	_, _ = compiled.Stdout().Write([]byte("b.c:3: note: inlined\n"))
	compiled.Complete(nil)

	_, link := recorder.Record(ctx, "link ./app.exe")
	link.Complete(errors.New("undefined reference to `f'"))

	_, interrupted := recorder.Record(ctx, "compile c.c")
	interrupted.Complete(context.Canceled)
}

func TestRecorder_Counts(t *testing.T) {
	recorder := progrock.New()
	assert.Equal(t, domain.StepCounts{}, recorder.Counts())

	recordBuild(recorder)
	before := recorder.Counts()
	assert.Equal(t, domain.StepCounts{Total: 4, Cached: 1, Failed: 1}, before)

	_, v := recorder.Record(context.Background(), "compile a.c")
	v.Cached()
	v.Complete(nil)
	assert.Equal(t, domain.StepCounts{Total: 1, Cached: 1}, recorder.Counts().Since(before))

	require.NoError(t, recorder.Close())
}

func TestRecorder_ShowProgress(t *testing.T) {
	color.NoColor = true

	recorder := progrock.New()

	// Steps finished before progress was requested are not printed.
	_, early := recorder.Record(context.Background(), "dependency ../core")
	early.Complete(nil)

	var buf bytes.Buffer
	recorder.ShowProgress(&buf)
	recordBuild(recorder)
	require.NoError(t, recorder.Close())

	assert.Equal(t, "• compile a.c (cached)\n"+
		"✓ compile b.c\n"+
		"✗ link ./app.exe: undefined reference to `f'\n"+
		"✗ compile c.c (canceled)\n", buf.String())
}

func TestProgress_PrintsEachVertexOnce(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	sink := progrock.NewProgress(&buf)

	running := &vito.Vertex{Id: "v1", Name: "link ./libnet.lib", Started: timestamppb.Now()}
	require.NoError(t, sink.WriteStatus(&vito.StatusUpdate{Vertexes: []*vito.Vertex{running}}))
	assert.Empty(t, buf.String())

	done := &vito.Vertex{Id: "v1", Name: "link ./libnet.lib", Started: running.Started, Completed: timestamppb.Now()}
	require.NoError(t, sink.WriteStatus(&vito.StatusUpdate{Vertexes: []*vito.Vertex{done}}))
	require.NoError(t, sink.WriteStatus(&vito.StatusUpdate{Vertexes: []*vito.Vertex{done}}))

	assert.Equal(t, "✓ link ./libnet.lib\n", buf.String())
	require.NoError(t, sink.Close())
}
