// Package h265 decodes H.265/HEVC video parameter sets, sequence/picture
// parameter sets, and slice headers far enough to reconstruct picture
// parameters and detect access-unit boundaries, without decoding pixel
// data.
package h265

// NAL unit types relevant to the core parser, per Rec. ITU-T H.265 Table 7-1.
const (
	NALTypeTrailN = 0
	NALTypeTrailR = 1
	NALTypeTSA_N  = 2
	NALTypeTSA_R  = 3
	NALTypeSTSA_N = 4
	NALTypeSTSA_R = 5
	NALTypeRADL_N = 6
	NALTypeRADL_R = 7
	NALTypeRASL_N = 8
	NALTypeRASL_R = 9

	NALTypeBLA_W_LP   = 16
	NALTypeBLA_W_RADL = 17
	NALTypeBLA_N_LP   = 18
	NALTypeIDR_W_RADL = 19
	NALTypeIDR_N_LP   = 20
	NALTypeCRA_NUT    = 21

	NALTypeReservedVCL22 = 22
	NALTypeReservedVCL23 = 23

	NALTypeVPS       = 32
	NALTypeSPS       = 33
	NALTypePPS       = 34
	NALTypeAUD       = 35
	NALTypeEOSNUT    = 36
	NALTypeEOBNUT    = 37
	NALTypeFDNUT     = 38
	NALTypeSEIPrefix = 39
	NALTypeSEISuffix = 40
)

// IsVCL reports whether nalType carries coded slice data.
func IsVCL(nalType uint32) bool {
	return nalType <= NALTypeReservedVCL23
}

// maxShortTermRPS bounds the short-term reference picture sets an SPS may
// carry, matching the static array sizing of VvasHevcSeqParamSet.
const maxShortTermRPS = 64

// maxDeltaPocs bounds the delta_poc/used arrays of one short-term RPS.
const maxDeltaPocs = 16

// ShortTermRPS is one decoded short_term_ref_pic_set(), per spec.md §3.
type ShortTermRPS struct {
	NumNegativePics int32
	NumDeltaPocs    int32
	DeltaPoc        [maxDeltaPocs]int32
	Used            [maxDeltaPocs]bool
}

// SPS is a decoded sequence parameter set, keyed by id.
type SPS struct {
	ID    uint32
	Valid bool

	ProfileIDC         uint32
	LevelIDC           uint32
	ChromaFormatIDC    uint32
	Width, Height      uint32
	BitDepthLumaMinus8 uint32
	Log2MaxPicOrderCntLsb uint32

	NumShortTermRPS int32
	ShortTermRPS    [maxShortTermRPS]ShortTermRPS

	// FrameRateNum/FrameRateDen are reduced by GCD; both zero when the SPS
	// carries no VUI timing information.
	FrameRateNum uint32
	FrameRateDen uint32
}

// PPS is a decoded picture parameter set, keyed by id.
type PPS struct {
	ID                uint32
	Valid             bool
	SeqParameterSetID uint32
}

// LastSliceHeader holds the fields used for H.265 frame-boundary detection.
type LastSliceHeader struct {
	Set bool

	FirstSliceSegmentInPicFlag uint32
	NoOutputOfPriorPicsFlag    uint32
	PPSID                      uint32
}
