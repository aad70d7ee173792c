// Package pipeline wires the per-stream and shared stages of the cascaded
// inference pipeline together: parser, decoder, scaler, funnel, detector,
// crop-scaler, classifier cascade, de-funnel, overlay and sink (spec.md
// §4.7-§4.11), connected by queue.Queue and driven by a Launcher modeled
// on the teacher's cobra-command process lifecycle.
package pipeline

import (
	"github.com/vvas-go/pipeline/external"
	"github.com/vvas-go/pipeline/videobuf"
)

// EOSType distinguishes an ordinary end of one stream from the
// pipeline-wide shutdown signal a failed shared stage broadcasts
// downstream (spec.md §3, §7).
type EOSType int

const (
	EOSNone EOSType = iota
	EOSStream
	EOSPipeline
)

// ParserBuffer is what the parser stage hands to the decoder stage: one
// parsed access unit, an optional decoder reconfiguration sidecar, and an
// EOS marker (spec.md §3 ParserBuffer, §4.7).
type ParserBuffer struct {
	StreamID    string
	ParsedFrame []byte
	DecCfg      *external.DecoderInCfg
	EOSType     EOSType
}

// PipelineBuffer is the unit of work from the funnel onward: the decoded
// frame under inference, its batch-scaled copy, and the per-object crops
// produced for the classifier cascade (spec.md §3 PipelineBuffer).
type PipelineBuffer struct {
	StreamID string
	EOSType  EOSType

	MainBuffer         *videobuf.Buffer
	Level1ScaledBuffer *videobuf.Buffer
	Level2Cropped      []*videobuf.Buffer

	// Tree is the prediction tree attached to MainBuffer.UserData once the
	// detector has run; kept here too so downstream stages that only see
	// a copy of the pipeline buffer (funnel output) don't need to reach
	// back into the pool buffer to find it.
	Tree *videobuf.PredictionTree
}

// Release returns every buffer this PipelineBuffer holds to its pool. Safe
// to call on a buffer that only carries an EOS marker.
func (pb *PipelineBuffer) Release() {
	if pb.MainBuffer != nil {
		pb.MainBuffer.Release()
	}
	if pb.Level1ScaledBuffer != nil {
		pb.Level1ScaledBuffer.Release()
	}
	for _, c := range pb.Level2Cropped {
		c.Release()
	}
}
