package pipeline

import (
	"github.com/vvas-go/pipeline/queue"
)

// DeFunnel routes pipeline buffers from the shared classifier-cascade
// output back to per-stream output queues by StreamID (spec.md §4.8).
type DeFunnel struct {
	In  *queue.Queue
	Outs map[string]*queue.Queue
}

// NewDeFunnel returns a DeFunnel routing In into outs keyed by stream id.
func NewDeFunnel(in *queue.Queue, outs map[string]*queue.Queue) *DeFunnel {
	return &DeFunnel{In: in, Outs: outs}
}

// Run drains In, forwarding each buffer to its stream's output queue,
// converting StreamEOS back to PipelineEOS on that one queue, until a
// PipelineEOS is observed on the input, which it broadcasts to every
// still-active output before exiting.
func (d *DeFunnel) Run() {
	defer recoverStage("defunnel", "")

	ended := make(map[string]bool)
	for {
		item, ok := d.In.Dequeue()
		if !ok {
			return
		}
		pb := item.(*PipelineBuffer)

		switch pb.EOSType {
		case EOSPipeline:
			for id, q := range d.Outs {
				if ended[id] {
					continue
				}
				q.Enqueue(&PipelineBuffer{StreamID: id, EOSType: EOSPipeline})
			}
			return
		case EOSStream:
			if q, ok := d.Outs[pb.StreamID]; ok {
				q.Enqueue(&PipelineBuffer{StreamID: pb.StreamID, EOSType: EOSPipeline})
				ended[pb.StreamID] = true
			}
		default:
			if q, ok := d.Outs[pb.StreamID]; ok {
				q.Enqueue(pb)
			}
		}
	}
}
