package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvas-go/pipeline/external"
	"github.com/vvas-go/pipeline/internal/errs"
	"github.com/vvas-go/pipeline/queue"
	"github.com/vvas-go/pipeline/videobuf"
)

type stubCropScaler struct {
	channelAdds int
	processed   int
}

func (s *stubCropScaler) ChannelAdd(src, dst external.Rect, srcBuf, dstBuf *videobuf.Buffer) errs.Kind {
	s.channelAdds++
	return errs.KindSuccess
}

func (s *stubCropScaler) ProcessFrame() errs.Kind {
	s.processed++
	return errs.KindSuccess
}

func (s *stubCropScaler) Destroy() {}

func TestCropScalerCropsEveryEnabledLevel1Detection(t *testing.T) {
	scaler := &stubCropScaler{}
	pool := newTestPool(t)
	in := queue.New(-1)
	out := queue.New(-1)
	cs := NewCropScalerStage(scaler, pool, 224, 224, in, out, newStreamState())

	tree := videobuf.NewPredictionTree()
	tree.AddChild(tree.Root(), videobuf.PredictionNode{Enabled: true})
	tree.AddChild(tree.Root(), videobuf.PredictionNode{Enabled: false})

	pb := &PipelineBuffer{
		StreamID:   "a",
		MainBuffer: &videobuf.Buffer{Frame: videobuf.Frame{Width: 1920, Height: 1080}},
		Tree:       tree,
	}
	in.Enqueue(pb)
	in.Enqueue(&PipelineBuffer{StreamID: "a", EOSType: EOSPipeline})

	cs.Run()

	got, ok := out.Dequeue()
	require.True(t, ok)
	outPB := got.(*PipelineBuffer)
	require.Len(t, outPB.Level2Cropped, 1)
	require.Equal(t, 1, scaler.channelAdds)
	require.Equal(t, 1, scaler.processed)

	eos, ok := out.Dequeue()
	require.True(t, ok)
	require.Equal(t, EOSPipeline, eos.(*PipelineBuffer).EOSType)

	require.Equal(t, 0, in.Length())
}
