package pipeline

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vvas-go/pipeline/external"
	"github.com/vvas-go/pipeline/internal/errs"
	"github.com/vvas-go/pipeline/queue"
	"github.com/vvas-go/pipeline/videobuf"
)

// decoderResubmitWait approximates spec.md §4.7's formula
// `resubmit_us ~= 15_000_000 / (4K60_pixel_rate / stream_pixel_rate)`: the
// wait before resubmitting on SEND_AGAIN grows in proportion to the
// stream's pixel rate relative to a 4K60 baseline. The result is not
// clamped; 15ms is used when the geometry or frame rate is unknown.
func decoderResubmitWait(streamWidth, streamHeight, fpsNum, fpsDen uint32) time.Duration {
	const baseline4K60PixelRate = 3840 * 2160 * 60
	if fpsDen == 0 || streamWidth == 0 || streamHeight == 0 {
		return 15 * time.Millisecond
	}
	streamPixelRate := uint64(streamWidth) * uint64(streamHeight) * uint64(fpsNum) / uint64(fpsDen)
	if streamPixelRate == 0 {
		return 15 * time.Millisecond
	}
	us := 15_000_000.0 / (float64(baseline4K60PixelRate) / float64(streamPixelRate))
	return time.Duration(us) * time.Microsecond
}

// DecoderStage owns one decode session: it drains the parser's output
// queue, submits access units for decode, retries on SEND_AGAIN with a
// pixel-rate-scaled backoff, and forwards decoded frames as
// PipelineBuffer values (spec.md §4.7).
type DecoderStage struct {
	StreamID string
	Dec      external.Decoder
	Pool     *videobuf.BufferPool
	In       *queue.Queue
	Out      *queue.Queue

	state *streamState

	streamWidth, streamHeight uint32
	fpsNum, fpsDen             uint32
}

// NewDecoderStage wires a decoder session between a parser's output queue
// and the funnel's input queue.
func NewDecoderStage(streamID string, dec external.Decoder, pool *videobuf.BufferPool, in, out *queue.Queue, state *streamState) *DecoderStage {
	return &DecoderStage{StreamID: streamID, Dec: dec, Pool: pool, In: in, Out: out, state: state}
}

// Run drains In until a stream or pipeline EOS, submitting every access
// unit to the decoder and forwarding every frame it produces.
func (d *DecoderStage) Run() {
	defer recoverStage("decoder", d.StreamID)
	errFlag := d.state.errorFlagFor(d.StreamID)

	for {
		if errFlag.IsSet() || d.state.pipelineFailed() {
			d.drain()
			return
		}

		item, ok := d.In.Dequeue()
		if !ok {
			return
		}
		pb := item.(*ParserBuffer)

		if pb.EOSType != EOSNone {
			d.submitAU(nil, errFlag)
			d.Out.Enqueue(&PipelineBuffer{StreamID: d.StreamID, EOSType: pb.EOSType})
			return
		}

		if pb.DecCfg != nil {
			out, kind := d.Dec.Configure(*pb.DecCfg)
			if kind != errs.KindSuccess {
				d.fail(errFlag, "decoder configure failed")
				return
			}
			d.streamWidth, d.streamHeight = out.Width, out.Height
			d.fpsNum, d.fpsDen = pb.DecCfg.FrameRateNum, pb.DecCfg.FrameRateDen
		}

		if !d.submitAU(pb.ParsedFrame, errFlag) {
			return
		}
		d.drainDecoded()
	}
}

// submitAU submits au (nil at end of stream), retrying while the decoder
// reports SEND_AGAIN, and reports false if it hit an unrecoverable error.
func (d *DecoderStage) submitAU(au []byte, errFlag *ErrorFlag) bool {
	for {
		free, _ := d.Pool.Acquire()
		var freeFrames []*videobuf.Buffer
		if free != nil {
			freeFrames = []*videobuf.Buffer{free}
		}
		kind := d.Dec.Submit(au, freeFrames)
		switch kind {
		case errs.KindSuccess, errs.KindEOS:
			return true
		case errs.KindSendAgain:
			if free != nil {
				free.Release()
			}
			time.Sleep(decoderResubmitWait(d.streamWidth, d.streamHeight, d.fpsNum, d.fpsDen))
			continue
		default:
			d.fail(errFlag, "decoder submit failed")
			return false
		}
	}
}

func (d *DecoderStage) drainDecoded() {
	for {
		buf, kind := d.Dec.GetDecoded()
		switch kind {
		case errs.KindSuccess:
			d.Out.Enqueue(&PipelineBuffer{StreamID: d.StreamID, MainBuffer: buf})
		case errs.KindNeedMoreData, errs.KindEOS:
			return
		default:
			log.Error().Str("stream_id", d.StreamID).Str("kind", kind.String()).Msg("decoder get_decoded failed")
			return
		}
	}
}

func (d *DecoderStage) fail(errFlag *ErrorFlag, msg string) {
	log.Error().Str("stream_id", d.StreamID).Msg(msg)
	errFlag.Set()
	d.drain()
	// EOSPipeline, not EOSStream: this is this stream's own terminal
	// marker into the funnel's per-stream Ins queue, and the funnel is
	// what downgrades it to EOSStream unless this is the last stream
	// (funnel.go).
	d.Out.Enqueue(&PipelineBuffer{StreamID: d.StreamID, EOSType: EOSPipeline})
}

// drain empties In, releasing nothing (ParserBuffer carries no pool
// buffer) so downstream stages see no further work for this stream.
func (d *DecoderStage) drain() {
	for {
		item, ok := d.In.Dequeue()
		if !ok {
			return
		}
		if pb := item.(*ParserBuffer); pb.EOSType != EOSNone {
			return
		}
	}
}
