package pipeline

import (
	"github.com/rs/zerolog/log"

	"github.com/vvas-go/pipeline/external"
	"github.com/vvas-go/pipeline/internal/errs"
	"github.com/vvas-go/pipeline/queue"
	"github.com/vvas-go/pipeline/videobuf"
)

// classifierCarry tracks how many of a pipeline buffer's crop buffers a
// ClassifierStage has already dispatched, so a buffer whose crops straddle
// two batches ("partial buffer") resumes from the right offset.
type classifierCarry struct {
	pb       *PipelineBuffer
	consumed int
}

func (c *classifierCarry) done() bool {
	return c.consumed >= len(c.pb.Level2Cropped)
}

// ClassifierStage is one stage of the color->make->type cascade
// (spec.md §4.10). Each instance batches crop buffers across adjacent
// pipeline buffers up to its model's batch size, carrying an unfinished
// buffer's remaining crops into the next batch.
type ClassifierStage struct {
	Name      string
	DPU       external.DPU
	BatchSize int
	// IsLast frees pb.Level2Cropped once a buffer's crops have all been
	// classified, since by then every cascade stage has updated the
	// shared prediction tree in place (spec.md §4.10).
	IsLast bool
	In     *queue.Queue
	Out    *queue.Queue

	state *streamState
}

// NewClassifierStage constructs one stage of the cascade.
func NewClassifierStage(name string, dpu external.DPU, batchSize int, isLast bool, in, out *queue.Queue, state *streamState) *ClassifierStage {
	return &ClassifierStage{Name: name, DPU: dpu, BatchSize: batchSize, IsLast: isLast, In: in, Out: out, state: state}
}

// Run drains In, classifying crop buffers in fixed-size batches and
// forwarding pipeline buffers once every one of their crops has been
// classified, preserving arrival order (spec.md §4.10).
func (s *ClassifierStage) Run() {
	defer recoverStage("classifier-"+s.Name, "")

	var carry []*classifierCarry
	var heldEOS []*PipelineBuffer
	var noObjectStreak int

	forwardDone := func() {
		for len(carry) > 0 && carry[0].done() {
			s.forward(carry[0].pb)
			carry = carry[1:]
		}
	}

	pendingCrops := func() int {
		n := 0
		for _, c := range carry {
			n += len(c.pb.Level2Cropped) - c.consumed
		}
		return n
	}

	dispatchOne := func() {
		var batch []*videobuf.Buffer
		for _, c := range carry {
			crops := c.pb.Level2Cropped
			for c.consumed < len(crops) && len(batch) < s.BatchSize {
				batch = append(batch, crops[c.consumed])
				c.consumed++
			}
			if len(batch) >= s.BatchSize {
				break
			}
		}
		noObjectStreak = 0
		if len(batch) == 0 {
			return
		}
		s.infer(batch)
	}

	for {
		forwardDone()

		// Heuristic: flush early once BatchSize no-object buffers are cached.
		if pendingCrops() < s.BatchSize && noObjectStreak < s.BatchSize {
			item, ok := s.In.Dequeue()
			if !ok {
				dispatchOne()
				forwardDone()
				for _, c := range carry {
					s.forward(c.pb)
				}
				return
			}
			pb := item.(*PipelineBuffer)

			if pb.EOSType != EOSNone {
				heldEOS = append(heldEOS, pb)
				if pb.EOSType == EOSPipeline {
					for pendingCrops() > 0 {
						dispatchOne()
					}
					forwardDone()
					for _, c := range carry {
						s.forward(c.pb)
					}
					for _, eos := range heldEOS {
						s.Out.Enqueue(eos)
					}
					return
				}
				continue
			}

			carry = append(carry, &classifierCarry{pb: pb})
			if len(pb.Level2Cropped) == 0 {
				noObjectStreak++
			}
			continue
		}

		dispatchOne()
	}
}

func (s *ClassifierStage) forward(pb *PipelineBuffer) {
	if s.IsLast {
		for _, crop := range pb.Level2Cropped {
			crop.Release()
		}
		pb.Level2Cropped = nil
	}
	s.Out.Enqueue(pb)
}

func (s *ClassifierStage) infer(batch []*videobuf.Buffer) {
	predictions := make([][]external.Prediction, len(batch))
	kind := s.DPU.ProcessFrames(batch, predictions)
	if kind != errs.KindSuccess {
		log.Error().Str("classifier", s.Name).Str("kind", kind.String()).Msg("classifier inference failed")
		return
	}

	for i, crop := range batch {
		node, ok := crop.UserData.(*videobuf.PredictionNode)
		if !ok || len(predictions[i]) == 0 {
			continue
		}
		best := predictions[i][0]
		node.ClassLabel = best.ClassLabel
		node.ClassProb = best.ClassProb
	}
}
