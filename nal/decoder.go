package nal

// Decision is the codec-specific verdict for a single NAL unit, returned
// by a Decoder's ProcessNAL so the Assembler's generic state machine can
// decide whether to append the NAL to the access unit under construction
// or close it and start a new one.
type Decision struct {
	// IsVCL reports whether this NAL carries slice data.
	IsVCL bool
	// IsSPS reports whether this NAL was a successfully decoded sequence
	// parameter set, satisfying the HAVE_SPS gate for subsequent VCL NALs.
	IsSPS bool
	// Boundary reports whether this NAL starts a new access unit and so
	// should close whatever has been accumulated so far.
	Boundary bool
	// Discard reports that this individual NAL is malformed or otherwise
	// unusable (e.g. a slice referencing an invalid PPS/SPS) and should
	// be dropped without disturbing the access unit under construction.
	Discard bool
}

// Decoder is implemented by the codec-specific (H.264/H.265) parameter-set
// and slice-header decoders. ProcessNAL is given the NAL's header+RBSP
// bytes with the Annex-B start code already stripped, plus whether a VCL
// NAL has already been appended to the access unit under construction, and
// returns the generic state machine's verdict for that NAL. Implementations
// are expected to maintain their own parameter-set tables and "last slice
// header" state across calls.
type Decoder interface {
	ProcessNAL(nal []byte, hasSlice bool) Decision
}
