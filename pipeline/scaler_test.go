package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvas-go/pipeline/external"
	"github.com/vvas-go/pipeline/internal/errs"
	"github.com/vvas-go/pipeline/queue"
	"github.com/vvas-go/pipeline/videobuf"
)

type stubScaler struct {
	channelAdds int
	processed   int
}

func (s *stubScaler) ChannelAdd(src, dst external.Rect, srcBuf, dstBuf *videobuf.Buffer) errs.Kind {
	s.channelAdds++
	return errs.KindSuccess
}

func (s *stubScaler) ProcessFrame() errs.Kind {
	s.processed++
	return errs.KindSuccess
}

func (s *stubScaler) Destroy() {}

func newTestPool(t *testing.T) *videobuf.BufferPool {
	t.Helper()
	return videobuf.NewBufferPool(videobuf.PoolConfig{
		Min: 1, Max: 2, Width: 320, Height: 240,
		Alloc: func(width, height uint32, format videobuf.Format, alignment uint32) []videobuf.Plane {
			return []videobuf.Plane{{Data: make([]byte, width*height)}}
		},
	})
}

func TestScalerSetsLevel1ScaledBufferAndForwards(t *testing.T) {
	scaler := &stubScaler{}
	pool := newTestPool(t)
	in := queue.New(-1)
	out := queue.New(-1)
	s := NewScalerStage("a", scaler, pool, 640, 480, in, out, newStreamState())

	pb := &PipelineBuffer{
		StreamID:   "a",
		MainBuffer: &videobuf.Buffer{Frame: videobuf.Frame{Width: 1920, Height: 1080}},
	}
	in.Enqueue(pb)
	in.Enqueue(&PipelineBuffer{StreamID: "a", EOSType: EOSPipeline})

	s.Run()

	got, ok := out.Dequeue()
	require.True(t, ok)
	outPB := got.(*PipelineBuffer)
	require.NotNil(t, outPB.Level1ScaledBuffer)
	require.Equal(t, 1, scaler.channelAdds)
	require.Equal(t, 1, scaler.processed)

	eos, ok := out.Dequeue()
	require.True(t, ok)
	require.Equal(t, EOSPipeline, eos.(*PipelineBuffer).EOSType)
}

func TestScalerForwardsStreamEOSWithoutStopping(t *testing.T) {
	scaler := &stubScaler{}
	pool := newTestPool(t)
	in := queue.New(-1)
	out := queue.New(-1)
	s := NewScalerStage("a", scaler, pool, 640, 480, in, out, newStreamState())

	in.Enqueue(&PipelineBuffer{StreamID: "a", EOSType: EOSStream})
	in.Enqueue(&PipelineBuffer{
		StreamID:   "a",
		MainBuffer: &videobuf.Buffer{Frame: videobuf.Frame{Width: 1920, Height: 1080}},
	})
	in.Enqueue(&PipelineBuffer{StreamID: "a", EOSType: EOSPipeline})

	s.Run()

	first, ok := out.Dequeue()
	require.True(t, ok)
	require.Equal(t, EOSStream, first.(*PipelineBuffer).EOSType)

	second, ok := out.Dequeue()
	require.True(t, ok)
	require.NotNil(t, second.(*PipelineBuffer).Level1ScaledBuffer)

	third, ok := out.Dequeue()
	require.True(t, ok)
	require.Equal(t, EOSPipeline, third.(*PipelineBuffer).EOSType)
}
