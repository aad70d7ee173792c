package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vvas-go/pipeline/external"
	"github.com/vvas-go/pipeline/internal/errs"
	"github.com/vvas-go/pipeline/queue"
	"github.com/vvas-go/pipeline/videobuf"
)

type stubDetectorDPU struct {
	calls [][]int // records batch sizes seen across calls
}

func (s *stubDetectorDPU) GetConfig() external.DPUOutCfg { return external.DPUOutCfg{} }

func (s *stubDetectorDPU) ProcessFrames(inputs []*videobuf.Buffer, predictions [][]external.Prediction) errs.Kind {
	s.calls = append(s.calls, []int{len(inputs)})
	for i := range inputs {
		predictions[i] = []external.Prediction{{
			ClassID: 1, ClassLabel: "car", ClassProb: 0.9,
			BBox: videobuf.BBox{X: 10, Y: 10, W: 20, H: 20},
		}}
	}
	return errs.KindSuccess
}

func (s *stubDetectorDPU) Destroy() {}

func mainBuffer(w, h uint32) *videobuf.Buffer {
	return &videobuf.Buffer{Frame: videobuf.Frame{Width: w, Height: h}}
}

func TestDetectorFlushesOnBatchSize(t *testing.T) {
	dpu := &stubDetectorDPU{}
	in := queue.New(-1)
	out := queue.New(-1)
	d := NewDetectorStage(dpu, 2, 0, 640, 480, in, out, newStreamState())

	pb1 := &PipelineBuffer{StreamID: "a", MainBuffer: mainBuffer(1920, 1080), Level1ScaledBuffer: mainBuffer(640, 480)}
	pb2 := &PipelineBuffer{StreamID: "a", MainBuffer: mainBuffer(1920, 1080), Level1ScaledBuffer: mainBuffer(640, 480)}
	in.Enqueue(pb1)
	in.Enqueue(pb2)
	in.Enqueue(&PipelineBuffer{StreamID: "a", EOSType: EOSPipeline})

	go d.Run()

	got1, ok := out.Dequeue()
	require.True(t, ok)
	got2, ok := out.Dequeue()
	require.True(t, ok)
	eos, ok := out.Dequeue()
	require.True(t, ok)

	require.Equal(t, EOSPipeline, eos.(*PipelineBuffer).EOSType)
	require.Len(t, dpu.calls, 1)
	require.Equal(t, 2, dpu.calls[0][0])

	for _, pb := range []*PipelineBuffer{got1.(*PipelineBuffer), got2.(*PipelineBuffer)} {
		require.NotNil(t, pb.Tree)
		require.Nil(t, pb.Level1ScaledBuffer)
		node := pb.Tree.Node(pb.Tree.Level1Nodes()[0])
		require.Equal(t, "car", node.ClassLabel)
		// bbox scaled from 640x480 detector input to 1920x1080 main frame.
		require.Equal(t, float64(30), node.BBox.X)
		require.Equal(t, float64(22.5), node.BBox.Y)
	}
}

func TestDetectorHoldsStreamEOSUntilBatchOutput(t *testing.T) {
	dpu := &stubDetectorDPU{}
	in := queue.New(-1)
	out := queue.New(-1)
	d := NewDetectorStage(dpu, 4, 50*time.Millisecond, 640, 480, in, out, newStreamState())

	in.Enqueue(&PipelineBuffer{StreamID: "a", MainBuffer: mainBuffer(640, 480), Level1ScaledBuffer: mainBuffer(640, 480)})
	in.Enqueue(&PipelineBuffer{StreamID: "a", EOSType: EOSStream})
	in.Enqueue(&PipelineBuffer{StreamID: "b", EOSType: EOSPipeline})

	d.Run()

	frame, ok := out.Dequeue()
	require.True(t, ok)
	require.Equal(t, EOSNone, frame.(*PipelineBuffer).EOSType)

	streamEOS, ok := out.Dequeue()
	require.True(t, ok)
	require.Equal(t, EOSStream, streamEOS.(*PipelineBuffer).EOSType)
}
