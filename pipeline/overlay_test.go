package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvas-go/pipeline/queue"
	"github.com/vvas-go/pipeline/videobuf"
)

type recordingRasterizer struct {
	calls [][]OverlayPrimitive
}

func (r *recordingRasterizer) Rasterize(frame *videobuf.Frame, primitives []OverlayPrimitive) {
	r.calls = append(r.calls, primitives)
}

func TestOverlayRasterizesEnabledNodesAndFreesTree(t *testing.T) {
	raster := &recordingRasterizer{}
	in := queue.New(-1)
	out := queue.New(-1)
	o := NewOverlayStage(raster, in, out)

	tree := videobuf.NewPredictionTree()
	tree.AddChild(tree.Root(), videobuf.PredictionNode{Enabled: true, ClassLabel: "car"})
	tree.AddChild(tree.Root(), videobuf.PredictionNode{Enabled: false, ClassLabel: "hidden"})

	mainBuf := &videobuf.Buffer{}
	pb := &PipelineBuffer{StreamID: "a", MainBuffer: mainBuf, Tree: tree}
	mainBuf.UserData = tree

	in.Enqueue(pb)
	in.Enqueue(&PipelineBuffer{StreamID: "a", EOSType: EOSPipeline})

	o.Run()

	require.Len(t, raster.calls, 1)
	require.Len(t, raster.calls[0], 1)
	require.Equal(t, "car", raster.calls[0][0].Label)

	got, ok := out.Dequeue()
	require.True(t, ok)
	forwarded := got.(*PipelineBuffer)
	require.Nil(t, forwarded.Tree)
	require.Nil(t, forwarded.MainBuffer.UserData)

	eos, ok := out.Dequeue()
	require.True(t, ok)
	require.Equal(t, EOSPipeline, eos.(*PipelineBuffer).EOSType)
}

func TestOverlayReturnsImmediatelyOnStreamEOS(t *testing.T) {
	raster := &recordingRasterizer{}
	in := queue.New(-1)
	out := queue.New(-1)
	o := NewOverlayStage(raster, in, out)

	in.Enqueue(&PipelineBuffer{StreamID: "a", EOSType: EOSStream})
	in.Enqueue(&PipelineBuffer{StreamID: "a", MainBuffer: &videobuf.Buffer{}})

	o.Run()

	got, ok := out.Dequeue()
	require.True(t, ok)
	require.Equal(t, EOSStream, got.(*PipelineBuffer).EOSType)

	require.Equal(t, 1, in.Length())
}
