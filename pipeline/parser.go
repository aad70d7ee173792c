package pipeline

import (
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/vvas-go/pipeline/external"
	"github.com/vvas-go/pipeline/h264"
	"github.com/vvas-go/pipeline/h265"
	"github.com/vvas-go/pipeline/internal/errs"
	"github.com/vvas-go/pipeline/nal"
	"github.com/vvas-go/pipeline/queue"
	"github.com/vvas-go/pipeline/streaminfo"
)

// Codec selects which codec-specific NAL decoder a ParserStage drives.
type Codec int

const (
	CodecH264 Codec = iota
	CodecH265
)

const parserReadChunkSize = 64 * 1024

// ParserStage owns one elementary stream: it pulls raw bytes from src,
// assembles access units via nal.Assembler, and derives a DecoderInCfg
// sidecar whenever the active parameter set changes (spec.md §4.7).
type ParserStage struct {
	StreamID string
	Codec    Codec
	Src      io.Reader
	Out      *queue.Queue

	// RepeatCount is the total number of times Src is played before the
	// stream's terminal EOSPipeline is emitted (spec.md §4.7, §6
	// repeat-count). Values <= 1 play Src exactly once. Every repeat but
	// the last rewinds Src (which must implement io.Seeker) and
	// re-creates the parser/tracker state, without emitting any EOS
	// marker in between.
	RepeatCount int

	state *streamState

	assembler *nal.Assembler
	tracker   streaminfo.Tracker
	h264p     *h264.Parser
	h265p     *h265.Parser
}

// NewParserStage constructs a ParserStage reading src and pushing
// ParserBuffer values onto out, repeating src repeatCount times
// (<= 1 meaning once) before its terminal EOSPipeline.
func NewParserStage(streamID string, codec Codec, src io.Reader, repeatCount int, out *queue.Queue, state *streamState) *ParserStage {
	p := &ParserStage{StreamID: streamID, Codec: codec, Src: src, RepeatCount: repeatCount, Out: out, state: state}
	p.resetCodecState()
	return p
}

func (p *ParserStage) resetCodecState() {
	switch p.Codec {
	case CodecH264:
		p.h264p = h264.NewParser()
		p.assembler = nal.NewAssembler(p.h264p)
	case CodecH265:
		p.h265p = h265.NewParser()
		p.assembler = nal.NewAssembler(p.h265p)
	}
	p.tracker = streaminfo.Tracker{}
}

// Run drives the stage to completion: it reads Src until EOF RepeatCount
// times, emitting one ParserBuffer per access unit, then the stream's
// terminal EOSPipeline marker (spec.md §4.7, §4.8 — the funnel downgrades
// this to EOSStream unless it is the last active stream), and returns once
// that has been enqueued or the stream's error flag is set.
func (p *ParserStage) Run() {
	defer recoverStage("parser", p.StreamID)

	errFlag := p.state.errorFlagFor(p.StreamID)

	plays := p.RepeatCount
	if plays < 1 {
		plays = 1
	}

	for play := 0; play < plays; play++ {
		if !p.runOnce(errFlag, play == plays-1) {
			return
		}
	}
}

// runOnce reads Src to EOF once, emitting one ParserBuffer per access
// unit, and returns false once the stage should stop entirely (an error,
// or the final play emitting the stream's terminal EOSPipeline).
func (p *ParserStage) runOnce(errFlag *ErrorFlag, last bool) bool {
	buf := make([]byte, parserReadChunkSize)

	for {
		if errFlag.IsSet() {
			return false
		}

		n, readErr := p.Src.Read(buf)
		eof := readErr == io.EOF
		if readErr != nil && !eof {
			log.Error().Str("stream_id", p.StreamID).Err(readErr).Msg("parser stage read failed")
			errFlag.Set()
			p.Out.Enqueue(&ParserBuffer{StreamID: p.StreamID, EOSType: EOSPipeline})
			return false
		}

		chunk := buf[:n]
		for {
			au, kind := p.assembler.Feed(chunk, eof)
			chunk = nil // only the first Feed call in this inner loop carries new bytes

			if kind == errs.KindNeedMoreData {
				break
			}
			if au != nil {
				p.emit(au)
			}
			if kind == errs.KindEOS {
				return p.finishPlay(last)
			}
		}

		if eof {
			return p.finishPlay(last)
		}
	}
}

// finishPlay ends one playthrough of Src: on the last repeat it emits the
// stream's terminal EOSPipeline and stops; otherwise it rewinds Src and
// resets parser state for another pass with no EOS emitted in between.
func (p *ParserStage) finishPlay(last bool) bool {
	if last {
		p.Out.Enqueue(&ParserBuffer{StreamID: p.StreamID, EOSType: EOSPipeline})
		return false
	}
	if err := p.rewind(); err != nil {
		log.Error().Str("stream_id", p.StreamID).Err(err).Msg("parser stage repeat rewind failed")
		p.Out.Enqueue(&ParserBuffer{StreamID: p.StreamID, EOSType: EOSPipeline})
		return false
	}
	return true
}

func (p *ParserStage) rewind() error {
	seeker, ok := p.Src.(io.Seeker)
	if !ok {
		return errors.New("repeat-count requires a seekable source")
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "seek to start of source for repeat")
	}
	p.resetCodecState()
	return nil
}

func (p *ParserStage) emit(au []byte) {
	var info streaminfo.Info
	switch p.Codec {
	case CodecH264:
		info = streaminfo.FromH264(p.h264p)
	case CodecH265:
		info = streaminfo.FromH265(p.h265p)
	}

	var cfg *external.DecoderInCfg
	if sidecar := p.tracker.Update(info); sidecar != nil {
		cfg = &external.DecoderInCfg{
			Width:        sidecar.Width,
			Height:       sidecar.Height,
			ProfileIDC:   sidecar.ProfileIDC,
			LevelIDC:     sidecar.LevelIDC,
			BitDepthLuma: sidecar.BitDepthLuma,
			FrameRateNum: sidecar.FrameRateNum,
			FrameRateDen: sidecar.FrameRateDen,
		}
	}

	p.Out.Enqueue(&ParserBuffer{
		StreamID:    p.StreamID,
		ParsedFrame: au,
		DecCfg:      cfg,
	})
}
