package h264

import "github.com/vvas-go/pipeline/bitio"

// ParseSliceHeader decodes the slice_header() fields needed for frame
// boundary detection (Rec. ITU-T H.264 §7.3.3), given the SPS/PPS it
// references. rbsp has the start code and NAL header already stripped.
func ParseSliceHeader(rbsp []byte, nalRefIdc, nalUnitType uint32, sps *SPS, pps *PPS) (LastSliceHeader, bool) {
	r := bitio.NewReader(bitio.Unescape(rbsp))

	var h LastSliceHeader
	h.NalRefIdc = nalRefIdc
	h.NalUnitType = nalUnitType

	r.ReadUE() // first_mb_in_slice
	r.ReadUE() // slice_type
	h.PicParameterSetID = r.ReadUE()

	frameNumBits := sps.Log2MaxFrameNumMinus4 + 4
	h.FrameNum = r.ReadBits(uint(frameNumBits))

	if sps.FrameMbsOnlyFlag == 0 {
		h.FieldPicFlag = r.ReadBit()
		if h.FieldPicFlag == 1 {
			h.BottomFieldFlag = r.ReadBit()
		}
	}

	if nalUnitType == NALTypeIDR {
		h.IdrPicID = r.ReadUE()
	}

	if sps.PicOrderCntType == 0 {
		pocLsbBits := sps.Log2MaxPicOrderCntLsbMinus4 + 4
		h.PicOrderCntLsb = r.ReadBits(uint(pocLsbBits))
		if pps.PicOrderPresentFlag == 1 && h.FieldPicFlag == 0 {
			h.DeltaPicOrderCntBottom = r.ReadSE()
		}
	} else if sps.PicOrderCntType == 1 && sps.DeltaPicOrderAlwaysZeroFlag == 0 {
		h.DeltaPicOrderCnt[0] = r.ReadSE()
		if pps.PicOrderPresentFlag == 1 && h.FieldPicFlag == 0 {
			h.DeltaPicOrderCnt[1] = r.ReadSE()
		}
	}

	if r.EOF() {
		return LastSliceHeader{}, false
	}
	h.Set = true
	return h, true
}

// isNewAccessUnit implements the first_VCL_NAL_in_AU detection of
// Rec. ITU-T H.264 §7.4.1.2.4: cur starts a new access unit relative to
// prev whenever any of the listed fields differ.
func isNewAccessUnit(prev, cur LastSliceHeader) bool {
	if !prev.Set {
		return false
	}
	switch {
	case cur.FrameNum != prev.FrameNum:
		return true
	case cur.PicParameterSetID != prev.PicParameterSetID:
		return true
	case cur.FieldPicFlag != prev.FieldPicFlag:
		return true
	case cur.FieldPicFlag == 1 && prev.FieldPicFlag == 1 && cur.BottomFieldFlag != prev.BottomFieldFlag:
		return true
	case (cur.NalRefIdc == 0) != (prev.NalRefIdc == 0):
		return true
	case cur.PicOrderCntLsb != prev.PicOrderCntLsb:
		return true
	case cur.DeltaPicOrderCntBottom != prev.DeltaPicOrderCntBottom:
		return true
	case cur.DeltaPicOrderCnt != prev.DeltaPicOrderCnt:
		return true
	case (cur.NalUnitType == NALTypeIDR) != (prev.NalUnitType == NALTypeIDR):
		return true
	case cur.NalUnitType == NALTypeIDR && prev.NalUnitType == NALTypeIDR && cur.IdrPicID != prev.IdrPicID:
		return true
	}
	return false
}
