package h264

import "github.com/vvas-go/pipeline/bitio"

// ParseSPS decodes a sequence parameter set RBSP (start code and NAL header
// already stripped) following the field order of Rec. ITU-T H.264 §7.3.2.1,
// the same order the teacher's ParseSPS walks.
func ParseSPS(rbsp []byte) (SPS, bool) {
	r := bitio.NewReader(bitio.Unescape(rbsp))

	var sps SPS
	sps.ProfileIDC = r.ReadBits(8)
	r.ReadBits(8) // constraint flags + reserved
	sps.LevelIDC = r.ReadBits(8)
	sps.ID = r.ReadUE()

	sps.ChromaFormatIDC = 1 // inferred default when absent
	sps.BitDepthLumaMinus8 = 0
	if isHighProfile(sps.ProfileIDC) {
		sps.ChromaFormatIDC = r.ReadUE()
		if sps.ChromaFormatIDC == 3 {
			r.ReadBit() // separate_colour_plane_flag
		}
		sps.BitDepthLumaMinus8 = r.ReadUE()
		r.ReadUE() // bit_depth_chroma_minus8
		r.ReadBit() // qpprime_y_zero_transform_bypass_flag
		if r.ReadBit() == 1 {
			skipScalingLists(r, sps.ChromaFormatIDC)
		}
	}

	sps.Log2MaxFrameNumMinus4 = r.ReadUE()
	sps.PicOrderCntType = r.ReadUE()
	switch sps.PicOrderCntType {
	case 0:
		sps.Log2MaxPicOrderCntLsbMinus4 = r.ReadUE()
	case 1:
		sps.DeltaPicOrderAlwaysZeroFlag = r.ReadBit()
		r.ReadSE() // offset_for_non_ref_pic
		r.ReadSE() // offset_for_top_to_bottom_field
		n := r.ReadUE()
		for i := uint32(0); i < n; i++ {
			r.ReadSE()
		}
	}

	r.ReadUE() // max_num_ref_frames
	r.ReadBit() // gaps_in_frame_num_value_allowed_flag

	sps.PicWidthInMbsMinus1 = r.ReadUE()
	sps.PicHeightInMapUnitsMinus1 = r.ReadUE()
	sps.FrameMbsOnlyFlag = r.ReadBit()
	if sps.FrameMbsOnlyFlag == 0 {
		r.ReadBit() // mb_adaptive_frame_field_flag
	}
	r.ReadBit() // direct_8x8_inference_flag

	sps.FrameCroppingFlag = r.ReadBit()
	if sps.FrameCroppingFlag == 1 {
		sps.CropLeft = r.ReadUE()
		sps.CropRight = r.ReadUE()
		sps.CropTop = r.ReadUE()
		sps.CropBottom = r.ReadUE()
	}

	// vui_parameters_present_flag
	if r.ReadBit() == 1 {
		num, den, ok := parseVUITiming(r)
		if !ok {
			// timing_info_present_flag was set but num_units_in_tick or
			// time_scale was zero: an undefined frame rate per H.264 Annex
			// E.2.1, so the whole SPS is rejected rather than stored with
			// FrameRateNum/FrameRateDen == 0 (spec.md §4.3).
			return SPS{}, false
		}
		sps.FrameRateNum, sps.FrameRateDen = num, den
	}

	if r.EOF() {
		return SPS{}, false
	}
	sps.Valid = true
	return sps, true
}

func skipScalingLists(r *bitio.Reader, chromaFormatIDC uint32) {
	n := 8
	if chromaFormatIDC == 3 {
		n = 12
	}
	for i := 0; i < n; i++ {
		if r.ReadBit() == 1 {
			size := 16
			if i >= 6 {
				size = 64
			}
			skipScalingList(r, size)
		}
	}
}

// skipScalingList consumes one scaling_list() of the given size without
// retaining its contents, per H.264 §7.3.2.1.1.1.
func skipScalingList(r *bitio.Reader, size int) {
	lastScale := int32(8)
	nextScale := int32(8)
	for j := 0; j < size; j++ {
		if nextScale != 0 {
			delta := r.ReadSE()
			nextScale = (lastScale + delta + 256) % 256
		}
		if nextScale != 0 {
			lastScale = nextScale
		}
	}
}

// parseVUITiming reads just enough of vui_parameters() to recover
// timing_info, skipping aspect-ratio and overscan/color fields in between,
// per H.264 Annex E.1.1. ok is false only when timing_info_present_flag is
// set but num_units_in_tick or time_scale is zero, an undefined frame rate
// the caller must treat as a parse failure rather than a missing one.
func parseVUITiming(r *bitio.Reader) (num, den uint32, ok bool) {
	if r.ReadBit() == 1 { // aspect_ratio_info_present_flag
		idc := r.ReadBits(8)
		if idc == 255 { // Extended_SAR
			r.ReadBits(16)
			r.ReadBits(16)
		}
	}
	if r.ReadBit() == 1 { // overscan_info_present_flag
		r.ReadBit()
	}
	if r.ReadBit() == 1 { // video_signal_type_present_flag
		r.ReadBits(3)
		r.ReadBit()
		if r.ReadBit() == 1 { // colour_description_present_flag
			r.ReadBits(8)
			r.ReadBits(8)
			r.ReadBits(8)
		}
	}
	if r.ReadBit() == 1 { // chroma_loc_info_present_flag
		r.ReadUE()
		r.ReadUE()
	}
	if r.ReadBit() == 1 { // timing_info_present_flag
		numUnitsInTick := r.ReadBits(32)
		timeScale := r.ReadBits(32)
		if numUnitsInTick == 0 || timeScale == 0 {
			return 0, 0, false
		}
		num, den = reduceFrameRate(timeScale, numUnitsInTick)
		return num, den, true
	}
	return 0, 0, true
}

func reduceFrameRate(timeScale, numUnitsInTick uint32) (num, den uint32) {
	if timeScale == 0 || numUnitsInTick == 0 {
		return 0, 0
	}
	// H.264 defines frame rate as time_scale / (2 * num_units_in_tick).
	num, den = timeScale, numUnitsInTick*2
	g := gcd(num, den)
	if g == 0 {
		return 0, 0
	}
	return num / g, den / g
}

func gcd(a, b uint32) uint32 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
