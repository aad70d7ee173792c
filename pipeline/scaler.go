package pipeline

import (
	"github.com/rs/zerolog/log"

	"github.com/vvas-go/pipeline/external"
	"github.com/vvas-go/pipeline/internal/errs"
	"github.com/vvas-go/pipeline/queue"
	"github.com/vvas-go/pipeline/videobuf"
)

// ScalerStage pre-processes each decoded frame into the level-1
// detector's required resolution and color format, using the scaler's
// PPE (mean/scale per channel baked into Scaler.ChannelAdd by the
// caller-supplied param), per spec.md §4.7.
type ScalerStage struct {
	StreamID string
	Scaler   external.Scaler
	Pool     *videobuf.BufferPool
	DstW     uint32
	DstH     uint32
	In       *queue.Queue
	Out      *queue.Queue

	state *streamState
}

// NewScalerStage wires a scaler between the decoder and the funnel.
func NewScalerStage(streamID string, scaler external.Scaler, pool *videobuf.BufferPool, dstW, dstH uint32, in, out *queue.Queue, state *streamState) *ScalerStage {
	return &ScalerStage{StreamID: streamID, Scaler: scaler, Pool: pool, DstW: dstW, DstH: dstH, In: in, Out: out, state: state}
}

// Run drains In, setting Level1ScaledBuffer on every non-EOS buffer.
func (s *ScalerStage) Run() {
	defer recoverStage("scaler", s.StreamID)
	errFlag := s.state.errorFlagFor(s.StreamID)

	for {
		item, ok := s.In.Dequeue()
		if !ok {
			return
		}
		pb := item.(*PipelineBuffer)

		if pb.EOSType != EOSNone {
			s.Out.Enqueue(pb)
			if pb.EOSType == EOSPipeline {
				return
			}
			continue
		}

		scaled, ok := s.Pool.Acquire()
		if !ok {
			log.Error().Str("stream_id", pb.StreamID).Msg("scaler pool exhausted")
			errFlag.Set()
			pb.Release()
			continue
		}

		srcRect := external.Rect{W: pb.MainBuffer.Frame.Width, H: pb.MainBuffer.Frame.Height}
		dstRect := external.Rect{W: s.DstW, H: s.DstH}
		if kind := s.Scaler.ChannelAdd(srcRect, dstRect, pb.MainBuffer, scaled); kind != errs.KindSuccess {
			log.Error().Str("stream_id", pb.StreamID).Str("kind", kind.String()).Msg("scaler channel_add failed")
			scaled.Release()
			pb.Release()
			continue
		}
		if kind := s.Scaler.ProcessFrame(); kind != errs.KindSuccess {
			log.Error().Str("stream_id", pb.StreamID).Str("kind", kind.String()).Msg("scaler process_frame failed")
			scaled.Release()
			pb.Release()
			continue
		}

		pb.Level1ScaledBuffer = scaled
		s.Out.Enqueue(pb)
	}
}
