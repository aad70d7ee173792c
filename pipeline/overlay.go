package pipeline

import (
	"github.com/vvas-go/pipeline/queue"
	"github.com/vvas-go/pipeline/videobuf"
)

// OverlayPrimitive is one rasterization instruction derived from a
// PredictionNode (spec.md §4.11). buildPrimitives emits one labeled box per
// enabled node; disabled nodes produce no primitive, and Mask is never set.
type OverlayPrimitive struct {
	BBox   videobuf.BBox
	Label  string
	Mask   bool
}

// Rasterizer draws OverlayPrimitive values onto a main frame; production
// wiring supplies a DPU/host-side blitter, tests a stub that records calls.
type Rasterizer interface {
	Rasterize(frame *videobuf.Frame, primitives []OverlayPrimitive)
}

// OverlayStage converts a buffer's prediction tree into overlay
// primitives, rasterizes them onto the main frame, then frees the tree
// (spec.md §4.11 — the tree has no further readers once overlay runs).
type OverlayStage struct {
	Rasterizer Rasterizer
	In         *queue.Queue
	Out        *queue.Queue
}

// NewOverlayStage constructs an overlay stage.
func NewOverlayStage(r Rasterizer, in, out *queue.Queue) *OverlayStage {
	return &OverlayStage{Rasterizer: r, In: in, Out: out}
}

// Run drains In, rasterizing and forwarding every buffer until EOS.
func (o *OverlayStage) Run() {
	defer recoverStage("overlay", "")

	for {
		item, ok := o.In.Dequeue()
		if !ok {
			return
		}
		pb := item.(*PipelineBuffer)

		if pb.EOSType != EOSNone {
			o.Out.Enqueue(pb)
			return
		}

		if pb.Tree != nil {
			primitives := buildPrimitives(pb.Tree)
			if o.Rasterizer != nil {
				o.Rasterizer.Rasterize(&pb.MainBuffer.Frame, primitives)
			}
			pb.Tree = nil
			if pb.MainBuffer != nil {
				pb.MainBuffer.UserData = nil
			}
		}
		o.Out.Enqueue(pb)
	}
}

func buildPrimitives(tree *videobuf.PredictionTree) []OverlayPrimitive {
	var primitives []OverlayPrimitive
	tree.Walk(tree.Root(), func(idx, depth int) bool {
		if depth == 0 {
			return true
		}
		node := tree.Node(idx)
		if !node.Enabled {
			return true
		}
		primitives = append(primitives, OverlayPrimitive{
			BBox:  node.BBox,
			Label: node.ClassLabel,
		})
		return true
	})
	return primitives
}
