package h265

import "github.com/vvas-go/pipeline/bitio"

// ParseSliceHeader decodes first_slice_segment_in_pic_flag and pps_id from
// a slice segment header RBSP, per Rec. ITU-T H.265 §7.3.6.1. nalType
// selects whether the no_output_of_prior_pics_flag is present (IRAP types).
func ParseSliceHeader(rbsp []byte, nalType uint32) (LastSliceHeader, bool) {
	r := bitio.NewReader(bitio.Unescape(rbsp))

	var h LastSliceHeader
	h.FirstSliceSegmentInPicFlag = r.ReadBit()

	if nalType >= NALTypeBLA_W_LP && nalType <= NALTypeReservedVCL23 {
		h.NoOutputOfPriorPicsFlag = r.ReadBit()
	}

	h.PPSID = r.ReadUE()

	if r.EOF() {
		return LastSliceHeader{}, false
	}
	h.Set = true
	return h, true
}
