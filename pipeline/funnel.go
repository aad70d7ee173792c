package pipeline

import (
	"time"

	"github.com/vvas-go/pipeline/queue"
)

// FunnelWaitTime is the per-queue poll budget the funnel spends waiting
// for a buffer before moving to the next stream, chosen to roughly match
// 30fps frame cadence (spec.md §4.8).
const FunnelWaitTime = 36 * time.Millisecond

// Funnel performs a fair round-robin merge of N per-stream input queues
// into a single shared queue for the detector (spec.md §4.8).
type Funnel struct {
	Ins map[string]*queue.Queue
	Out *queue.Queue
}

// NewFunnel returns a Funnel merging ins into out.
func NewFunnel(ins map[string]*queue.Queue, out *queue.Queue) *Funnel {
	active := make(map[string]*queue.Queue, len(ins))
	for id, q := range ins {
		active[id] = q
	}
	return &Funnel{Ins: active, Out: out}
}

// Run polls every active input in turn until none is left. An input that
// signals PipelineEOS is dropped and the marker forwarded as EOSStream, or
// as PipelineEOS (after which Run exits) if it was the last active input.
// An input that signals EOSStream is also dropped and the marker forwarded
// unchanged; if that empties the active set, Run returns without
// forwarding a PipelineEOS.
func (f *Funnel) Run() {
	defer recoverStage("funnel", "")

	for len(f.Ins) > 0 {
		for id, q := range f.Ins {
			item, ok := q.DequeueTimeout(FunnelWaitTime)
			if !ok {
				continue
			}
			pb := item.(*PipelineBuffer)

			switch pb.EOSType {
			case EOSNone:
				f.Out.Enqueue(pb)
			case EOSPipeline:
				delete(f.Ins, id)
				if len(f.Ins) == 0 {
					f.Out.Enqueue(&PipelineBuffer{StreamID: id, EOSType: EOSPipeline})
					return
				}
				f.Out.Enqueue(&PipelineBuffer{StreamID: id, EOSType: EOSStream})
			case EOSStream:
				delete(f.Ins, id)
				f.Out.Enqueue(pb)
			}
		}
	}
}
