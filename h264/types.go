// Package h264 decodes H.264 sequence/picture parameter sets and slice
// headers far enough to reconstruct picture parameters and detect
// access-unit boundaries (spec.md §4.3), without decoding pixel data.
package h264

// NAL unit types relevant to the core parser.
const (
	NALTypeNonIDR    = 1
	NALTypeDataPartA = 2
	NALTypeDataPartB = 3
	NALTypeDataPartC = 4
	NALTypeIDR       = 5
	NALTypeSEI       = 6
	NALTypeSPS       = 7
	NALTypePPS       = 8
	NALTypeAUD       = 9
	NALTypeEndSeq    = 10
	NALTypeEndStream = 11
	NALTypeFiller    = 12
	NALTypeSPSExt    = 13
	NALTypePrefix    = 14
	NALTypeSubSPS    = 15
	NALTypeReserved1 = 16
	NALTypeReserved2 = 17
	NALTypeReserved3 = 18
	NALTypeAuxSlice  = 19
	NALTypeExt1      = 20
	NALTypeExt2      = 21

	VCLLowBound  = NALTypeNonIDR
	VCLHighBound = NALTypeIDR
)

// IsVCL reports whether nalType identifies a slice of coded picture data.
func IsVCL(nalType uint32) bool {
	return nalType >= VCLLowBound && nalType <= VCLHighBound
}

// SPS is a decoded sequence parameter set, keyed by id, per spec.md §3.
type SPS struct {
	ID    uint32
	Valid bool

	ProfileIDC                    uint32
	LevelIDC                      uint32
	BitDepthLumaMinus8            uint32
	ChromaFormatIDC               uint32
	Log2MaxFrameNumMinus4         uint32
	PicOrderCntType               uint32
	Log2MaxPicOrderCntLsbMinus4   uint32
	DeltaPicOrderAlwaysZeroFlag   uint32
	FrameMbsOnlyFlag              uint32
	FrameCroppingFlag             uint32
	PicWidthInMbsMinus1           uint32
	PicHeightInMapUnitsMinus1     uint32
	CropLeft, CropRight           uint32
	CropTop, CropBottom           uint32

	// FrameRateNum/FrameRateDen are reduced by GCD; both zero when the
	// SPS carries no timing information.
	FrameRateNum uint32
	FrameRateDen uint32
}

// PPS is a decoded picture parameter set, keyed by id, per spec.md §3.
type PPS struct {
	ID                  uint32
	Valid               bool
	SeqParameterSetID   uint32
	PicOrderPresentFlag uint32
}

// LastSliceHeader holds the fields used for H.264 frame-boundary detection
// (spec.md §3).
type LastSliceHeader struct {
	Set bool

	FrameNum               uint32
	PicParameterSetID      uint32
	FieldPicFlag           uint32
	BottomFieldFlag        uint32
	NalRefIdc              uint32
	NalUnitType            uint32
	PicOrderCntLsb         uint32
	DeltaPicOrderCntBottom int32
	DeltaPicOrderCnt       [2]int32
	IdrPicID               uint32
}

// highProfiles lists profile_idc values for which chroma_format_idc and
// the extended bit-depth/scaling-list fields are present, per spec.md §4.3.
var highProfiles = map[uint32]bool{
	100: true, 110: true, 122: true, 244: true, 44: true,
	83: true, 86: true, 118: true, 128: true, 138: true,
	139: true, 134: true, 135: true,
}

func isHighProfile(profileIDC uint32) bool {
	return highProfiles[profileIDC]
}
