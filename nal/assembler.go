package nal

import "github.com/vvas-go/pipeline/internal/errs"

// Assembler implements the access-unit assembly algorithm of spec.md §4.2:
// it scans Annex-B start codes, dispatches each NAL to a codec-specific
// Decoder, and emits exactly one complete access unit per Feed call that
// finds a frame boundary, buffering partial input and partial output
// across calls with bounded copying.
//
// Feed must be called in a loop: after a call returns a non-terminal
// status with an access unit, the caller should call Feed again (with
// empty new input once all file data has been supplied) to drain any
// further access units already fully buffered before reading more input.
type Assembler struct {
	codec Decoder

	partialInbuf  []byte // bytes from the tail of a previous call awaiting more input
	partialOutbuf []byte // NALs of the access unit currently under construction

	hasSlice bool // a VCL NAL has been appended to the current AU
	haveSPS  bool // at least one SPS has been successfully decoded
	finished bool // the final AU has been emitted; Feed now only returns EOS
}

// NewAssembler returns an Assembler that dispatches NAL decode and
// frame-boundary decisions to codec.
func NewAssembler(codec Decoder) *Assembler {
	return &Assembler{codec: codec}
}

// Feed supplies newInput (which may be empty, to drain already-buffered
// NALs) to the assembler. eos signals that no further bytes will ever be
// supplied for this stream. It returns (au, errs.KindSuccess) or
// (au, errs.KindEOS) when an access unit has been emitted, or
// (nil, errs.KindNeedMoreData) when the caller must supply more bytes, or
// (nil, errs.KindEOS) once the stream is fully drained.
func (a *Assembler) Feed(newInput []byte, eos bool) ([]byte, errs.Kind) {
	if a.finished {
		return nil, errs.KindEOS
	}

	var cur []byte
	if len(a.partialInbuf) > 0 || len(newInput) > 0 {
		cur = make([]byte, 0, len(a.partialInbuf)+len(newInput))
		cur = append(cur, a.partialInbuf...)
		cur = append(cur, newInput...)
	}
	a.partialInbuf = nil

	pos := 0
	for {
		if pos >= len(cur) {
			return a.finalize(eos)
		}

		searchFrom := pos + 2
		nextOff, found := FindStartCode(cur, searchFrom)
		if !found {
			if !eos {
				a.partialInbuf = append([]byte{}, cur[pos:]...)
				return nil, errs.KindNeedMoreData
			}
			return a.finalizeTail(cur[pos:])
		}

		nalBytes := cur[pos:nextOff]
		auOut, didEmit := a.consider(nalBytes)
		if didEmit {
			return auOut, errs.KindSuccess
		}
		pos = nextOff
	}
}

// finalize is reached once every byte of cur has been consumed into
// partial_outbuf (or discarded) without finding a further NAL to scan.
func (a *Assembler) finalize(eos bool) ([]byte, errs.Kind) {
	if !eos {
		return nil, errs.KindNeedMoreData
	}
	if len(a.partialOutbuf) > 0 {
		out := a.partialOutbuf
		a.partialOutbuf = nil
		a.finished = true
		return out, errs.KindEOS
	}
	a.finished = true
	return nil, errs.KindEOS
}

// finalizeTail is reached at EOS when scanning for the NAL following tail
// fails to find a start code: tail is bounded by the true end of the
// stream instead of a following NAL.
func (a *Assembler) finalizeTail(tail []byte) ([]byte, errs.Kind) {
	auOut, didEmit := a.consider(tail)
	if didEmit {
		// The previous AU closes now; tail itself was reseeded into
		// partial_outbuf and will be flushed by the next (empty-input)
		// Feed call.
		return auOut, errs.KindSuccess
	}
	if len(a.partialOutbuf) > 0 {
		out := a.partialOutbuf
		a.partialOutbuf = nil
		a.finished = true
		return out, errs.KindEOS
	}
	a.finished = true
	return nil, errs.KindEOS
}

// consider dispatches one NAL (with its start code still attached, so it
// can be appended byte-for-byte to partial_outbuf) to the codec decoder
// and applies the generic state machine of spec.md §4.2 steps 3-5.
func (a *Assembler) consider(nalBytes []byte) (au []byte, didEmit bool) {
	payload := StripStartCode(nalBytes)
	d := a.codec.ProcessNAL(payload, a.hasSlice)

	if d.IsVCL && !a.haveSPS {
		// Step 5: discard VCL NALs seen before any SPS, resetting the
		// access unit under construction.
		a.partialOutbuf = nil
		a.hasSlice = false
		return nil, false
	}
	if d.Discard {
		return nil, false
	}
	if d.IsSPS {
		a.haveSPS = true
	}

	if d.Boundary && len(a.partialOutbuf) > 0 {
		auOut := a.partialOutbuf
		a.partialOutbuf = append([]byte{}, nalBytes...)
		a.hasSlice = d.IsVCL
		return auOut, true
	}

	a.partialOutbuf = append(a.partialOutbuf, nalBytes...)
	if d.IsVCL {
		a.hasSlice = true
	}
	return nil, false
}
