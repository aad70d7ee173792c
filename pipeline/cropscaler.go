package pipeline

import (
	"github.com/rs/zerolog/log"

	"github.com/vvas-go/pipeline/external"
	"github.com/vvas-go/pipeline/internal/errs"
	"github.com/vvas-go/pipeline/queue"
	"github.com/vvas-go/pipeline/videobuf"
)

// CropScalerStage produces one crop buffer per level-1 detection, scaled
// to the first classifier's input resolution, for buffers that carry a
// prediction tree (spec.md §4.10).
type CropScalerStage struct {
	Scaler        external.Scaler
	Pool          *videobuf.BufferPool
	ClassifierW   uint32
	ClassifierH   uint32
	In            *queue.Queue
	Out           *queue.Queue

	state *streamState
}

// NewCropScalerStage wires a crop-scaler between the detector output and
// the first classifier stage.
func NewCropScalerStage(scaler external.Scaler, pool *videobuf.BufferPool, classifierW, classifierH uint32, in, out *queue.Queue, state *streamState) *CropScalerStage {
	return &CropScalerStage{Scaler: scaler, Pool: pool, ClassifierW: classifierW, ClassifierH: classifierH, In: in, Out: out, state: state}
}

// Run drains In, cropping every level-1 detection of each buffer into
// pb.Level2Cropped, committing one scaler batch per pipeline buffer.
func (c *CropScalerStage) Run() {
	defer recoverStage("crop-scaler", "")

	for {
		item, ok := c.In.Dequeue()
		if !ok {
			return
		}
		pb := item.(*PipelineBuffer)

		if pb.EOSType != EOSNone {
			c.Out.Enqueue(pb)
			if pb.EOSType == EOSPipeline {
				return
			}
			continue
		}

		if pb.Tree != nil {
			c.cropDetections(pb)
		}
		c.Out.Enqueue(pb)
	}
}

func (c *CropScalerStage) cropDetections(pb *PipelineBuffer) {
	anyChannel := false
	for _, idx := range pb.Tree.Level1Nodes() {
		node := pb.Tree.Node(idx)
		if !node.Enabled {
			continue
		}

		crop, ok := c.Pool.Acquire()
		if !ok {
			log.Warn().Str("stream_id", pb.StreamID).Msg("crop-scaler pool exhausted, dropping detection")
			continue
		}
		crop.UserData = node

		srcRect := external.Rect{X: uint32(node.BBox.X), Y: uint32(node.BBox.Y), W: uint32(node.BBox.W), H: uint32(node.BBox.H)}
		dstRect := external.Rect{W: c.ClassifierW, H: c.ClassifierH}
		if kind := c.Scaler.ChannelAdd(srcRect, dstRect, pb.MainBuffer, crop); kind != errs.KindSuccess {
			log.Warn().Str("stream_id", pb.StreamID).Msg("crop-scaler channel_add failed")
			crop.Release()
			continue
		}
		anyChannel = true
		pb.Level2Cropped = append(pb.Level2Cropped, crop)
	}

	if anyChannel {
		if kind := c.Scaler.ProcessFrame(); kind != errs.KindSuccess {
			log.Error().Str("stream_id", pb.StreamID).Msg("crop-scaler process_frame failed")
		}
	}
}
