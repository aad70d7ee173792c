package pipeline

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vvas-go/pipeline/external"
	"github.com/vvas-go/pipeline/internal/errs"
	"github.com/vvas-go/pipeline/queue"
	"github.com/vvas-go/pipeline/videobuf"
)

// DetectorStage batches decoded+scaled frames for the level-1 (YOLOV3)
// model and attaches a PredictionTree to each frame's main buffer
// (spec.md §4.9).
type DetectorStage struct {
	DPU           external.DPU
	BatchSize     int
	BatchTimeout  time.Duration // 0 means wait indefinitely for a full batch
	InputWidth    uint32
	InputHeight   uint32
	In            *queue.Queue
	Out           *queue.Queue

	state *streamState
}

// NewDetectorStage constructs a detector batching up to batchSize frames
// (spec.md §4.9's model batch size) with the given level-1 input
// resolution, used to rescale bboxes back to the main frame.
func NewDetectorStage(dpu external.DPU, batchSize int, batchTimeout time.Duration, inputWidth, inputHeight uint32, in, out *queue.Queue, state *streamState) *DetectorStage {
	return &DetectorStage{
		DPU: dpu, BatchSize: batchSize, BatchTimeout: batchTimeout,
		InputWidth: inputWidth, InputHeight: inputHeight,
		In: in, Out: out, state: state,
	}
}

// Run assembles and dispatches batches until a PipelineEOS drains through,
// forwarding every frame in arrival order followed by any held EOS markers
// (spec.md §4.9).
func (d *DetectorStage) Run() {
	defer recoverStage("detector", "")

	var batch []*PipelineBuffer
	var heldEOS []*PipelineBuffer
	var batchDeadline time.Time

	for {
		var item interface{}
		var ok bool

		if len(batch) == 0 {
			item, ok = d.In.Dequeue()
		} else if d.BatchTimeout <= 0 {
			item, ok = d.In.Dequeue()
		} else {
			remaining := time.Until(batchDeadline)
			if remaining <= 0 {
				d.flush(batch, heldEOS)
				batch, heldEOS = nil, nil
				continue
			}
			item, ok = d.In.DequeueTimeout(remaining)
			if !ok {
				d.flush(batch, heldEOS)
				batch, heldEOS = nil, nil
				continue
			}
		}

		if !ok {
			d.flush(batch, heldEOS)
			return
		}

		pb := item.(*PipelineBuffer)
		if pb.EOSType != EOSNone {
			heldEOS = append(heldEOS, pb)
			if pb.EOSType == EOSPipeline {
				d.flush(batch, heldEOS)
				return
			}
			continue
		}

		if len(batch) == 0 {
			batchDeadline = time.Now().Add(d.BatchTimeout)
		}
		batch = append(batch, pb)

		if len(batch) >= d.BatchSize {
			d.flush(batch, heldEOS)
			batch, heldEOS = nil, nil
		}
	}
}

func (d *DetectorStage) flush(batch []*PipelineBuffer, heldEOS []*PipelineBuffer) {
	if len(batch) > 0 {
		d.infer(batch)
	}
	for _, pb := range batch {
		d.Out.Enqueue(pb)
	}
	for _, eos := range heldEOS {
		d.Out.Enqueue(eos)
	}
}

func (d *DetectorStage) infer(batch []*PipelineBuffer) {
	inputs := make([]*videobuf.Buffer, len(batch))
	for i, pb := range batch {
		inputs[i] = pb.Level1ScaledBuffer
	}
	predictions := make([][]external.Prediction, len(batch))

	kind := d.DPU.ProcessFrames(inputs, predictions)
	if kind != errs.KindSuccess {
		log.Error().Str("kind", kind.String()).Msg("detector inference failed")
		if d.state != nil {
			d.state.failPipeline()
		}
	}

	for i, pb := range batch {
		tree := videobuf.NewPredictionTree()
		for _, pred := range predictions[i] {
			bbox := pred.BBox.Scale(float64(d.InputWidth), float64(d.InputHeight), float64(pb.MainBuffer.Frame.Width), float64(pb.MainBuffer.Frame.Height))
			tree.AddChild(tree.Root(), videobuf.PredictionNode{
				BBox:       bbox,
				ClassID:    pred.ClassID,
				ClassProb:  pred.ClassProb,
				ClassLabel: pred.ClassLabel,
				Enabled:    true,
			})
		}
		pb.Tree = tree
		if pb.MainBuffer != nil {
			pb.MainBuffer.UserData = tree
		}
		if pb.Level1ScaledBuffer != nil {
			pb.Level1ScaledBuffer.Release()
			pb.Level1ScaledBuffer = nil
		}
	}
}
