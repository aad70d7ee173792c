package h265

import "github.com/vvas-go/pipeline/bitio"

// ParseSPS decodes a sequence parameter set RBSP (start code and 2-byte NAL
// header already stripped) following the field order of
// Rec. ITU-T H.265 §7.3.2.2, the same order the original VVAS parser walks.
func ParseSPS(rbsp []byte) (SPS, bool) {
	r := bitio.NewReader(bitio.Unescape(rbsp))

	var sps SPS
	r.ReadBits(4) // vps_id
	maxSubLayers := r.ReadBits(3) + 1
	r.ReadBit() // temporal_id_nesting_flag

	sps.ProfileIDC = parseProfileTierLevel(r)
	sps.LevelIDC = normalizeLevelIDC(r.ReadBits(8))

	subLayerProfilePresent := make([]bool, maxSubLayers)
	subLayerLevelPresent := make([]bool, maxSubLayers)
	for i := uint32(0); i < maxSubLayers-1; i++ {
		subLayerProfilePresent[i] = r.ReadBit() == 1
		subLayerLevelPresent[i] = r.ReadBit() == 1
	}
	if maxSubLayers > 1 {
		for i := maxSubLayers - 1; i < 8; i++ {
			r.ReadBits(2)
		}
	}
	for i := uint32(0); i < maxSubLayers-1; i++ {
		if subLayerProfilePresent[i] {
			parseProfileTierLevel(r)
		}
		if subLayerLevelPresent[i] {
			r.ReadBits(8)
		}
	}

	sps.ID = r.ReadUE()
	chromaFormatIDC := r.ReadUE()
	if chromaFormatIDC == 3 {
		if r.ReadBit() == 1 { // separate_colour_plane_flag
			chromaFormatIDC = 0
		}
	}
	sps.ChromaFormatIDC = chromaFormatIDC

	codedWidth := r.ReadUE()
	codedHeight := r.ReadUE()
	sps.Width, sps.Height = codedWidth, codedHeight

	if r.ReadBit() == 1 { // conformance_window_flag
		vertMult := uint32(1)
		if chromaFormatIDC < 2 {
			vertMult = 2
		}
		horizMult := uint32(1)
		if chromaFormatIDC < 3 {
			horizMult = 2
		}
		left := r.ReadUE() * horizMult
		right := r.ReadUE() * horizMult
		top := r.ReadUE() * vertMult
		bottom := r.ReadUE() * vertMult
		sps.Width = codedWidth - (left + right)
		sps.Height = codedHeight - (top + bottom)
	}

	sps.BitDepthLumaMinus8 = r.ReadUE()
	r.ReadUE() // bit_depth_chroma_minus8
	sps.Log2MaxPicOrderCntLsb = r.ReadUE() + 4

	subLayerOrderingInfo := r.ReadBit() == 1
	start := maxSubLayers - 1
	if subLayerOrderingInfo {
		start = 0
	}
	for i := start; i < maxSubLayers; i++ {
		r.ReadUE() // max_dec_pic_buffering_minus1
		r.ReadUE() // num_reorder_pics
		r.ReadUE() // max_latency_increase_plus1
	}

	r.ReadUE() // log2_min_luma_coding_block_size_minus3
	r.ReadUE() // log2_diff_max_min_luma_coding_block_size
	r.ReadUE() // log2_min_luma_transform_block_size_minus2
	r.ReadUE() // log2_diff_max_min_luma_transform_block_size
	r.ReadUE() // max_transform_hierarchy_depth_inter
	r.ReadUE() // max_transform_hierarchy_depth_intra

	if r.ReadBit() == 1 { // scaling_list_enabled_flag
		if r.ReadBit() == 1 { // sps_scaling_list_data_present_flag
			skipScalingListData(r)
		}
	}

	r.ReadBit() // amp_enabled_flag
	r.ReadBit() // sample_adaptive_offset_enabled_flag
	if r.ReadBit() == 1 { // pcm_enabled_flag
		r.ReadBits(4) // pcm_sample_bit_depth_luma_minus1
		r.ReadBits(4) // pcm_sample_bit_depth_chroma_minus1
		r.ReadUE()    // log2_min_pcm_luma_coding_block_size_minus3
		r.ReadUE()    // log2_diff_max_min_pcm_luma_coding_block_size
		r.ReadBit()   // pcm_loop_filter_disabled_flag
	}

	numShortTermRPS := r.ReadUE()
	if int(numShortTermRPS) > maxShortTermRPS {
		return SPS{}, false
	}
	sps.NumShortTermRPS = int32(numShortTermRPS)
	for i := uint32(0); i < numShortTermRPS; i++ {
		if !decodeShortTermRPS(r, &sps, int(i)) {
			return SPS{}, false
		}
	}

	if r.ReadBit() == 1 { // long_term_ref_pics_present_flag
		numLongTerm := r.ReadUE()
		for i := uint32(0); i < numLongTerm; i++ {
			r.ReadBits(uint(sps.Log2MaxPicOrderCntLsb)) // lt_ref_pic_poc_lsb_sps
			r.ReadBit()                                 // used_by_curr_pic_lt_sps_flag
		}
	}

	r.ReadBit() // sps_temporal_mvp_enabled_flag
	r.ReadBit() // strong_intra_smoothing_enabled_flag

	if r.ReadBit() == 1 { // vui_parameters_present_flag
		sps.FrameRateNum, sps.FrameRateDen = parseVUI(r, chromaFormatIDC, codedWidth, codedHeight, &sps)
	}

	if r.EOF() {
		return SPS{}, false
	}
	sps.Valid = true
	return sps, true
}

// parseProfileTierLevel reads one profile_tier_level() general or sub-layer
// profile/level block and returns the general profile_idc (discarded for
// sub-layer calls).
func parseProfileTierLevel(r *bitio.Reader) uint32 {
	r.ReadBits(2) // profile_space
	r.ReadBit()   // tier_flag
	profileIDC := r.ReadBits(5)
	r.ReadBits(32) // profile_compatibility_flags
	r.ReadBit()    // progressive_source_flag
	r.ReadBit()    // interlaced_source_flag
	r.ReadBit()    // non_packed_constraint_flag
	r.ReadBit()    // frame_only_constraint_flag
	r.ReadBits(32)
	r.ReadBits(12)
	return profileIDC
}

// normalizeLevelIDC folds the raw level_idc (30x the real level, e.g. 150
// for level 5.0) to 10x the level (150 -> 50, 93 -> 31): the whole levels
// become the tens and the remainder over 30, divided by 3, the units.
func normalizeLevelIDC(raw uint32) uint32 {
	rem := raw % 30
	if rem != 0 {
		return raw/30*10 + rem/3
	}
	return raw / 3
}

func skipScalingListData(r *bitio.Reader) {
	for sizeID := 0; sizeID < 4; sizeID++ {
		step := 1
		if sizeID == 3 {
			step = 3
		}
		for matrixID := 0; matrixID < 6; matrixID += step {
			if r.ReadBit() == 0 {
				r.ReadSE() // scaling_list_pred_matrix_id_delta
				continue
			}
			coefNum := 1 << uint(4+sizeID*2)
			if coefNum > 64 {
				coefNum = 64
			}
			if sizeID > 1 {
				r.ReadSE() // scaling_list_dc_coef_minus8
			}
			for i := 0; i < coefNum; i++ {
				r.ReadSE() // scaling_list_delta_coef
			}
		}
	}
}

// decodeShortTermRPS decodes short_term_ref_pic_set(idx) into
// &sps.ShortTermRPS[idx], following the predictive and explicit forms of
// H.265 §7.3.7.
func decodeShortTermRPS(r *bitio.Reader, sps *SPS, idx int) bool {
	rps := &sps.ShortTermRPS[idx]

	predict := false
	if idx != 0 {
		predict = r.ReadBit() == 1
	}

	if predict {
		refIdx := idx - 1
		if refIdx < 0 || refIdx >= maxShortTermRPS {
			return false
		}
		refRPS := &sps.ShortTermRPS[refIdx]

		deltaRPSSign := r.ReadBit()
		absDeltaRPS := int32(r.ReadUE())
		sign := int32(1)
		if deltaRPSSign == 1 {
			sign = -1
		}
		deltaRPS := sign * absDeltaRPS

		k, k0 := 0, 0
		for i := 0; i <= int(refRPS.NumDeltaPocs); i++ {
			if k >= maxDeltaPocs {
				return false
			}
			used := r.ReadBit() == 1
			rps.Used[k] = used
			useDelta := false
			if !used {
				useDelta = r.ReadBit() == 1
			}
			if used || useDelta {
				var deltaPoc int32
				if i < int(refRPS.NumDeltaPocs) {
					deltaPoc = deltaRPS + refRPS.DeltaPoc[i]
				} else {
					deltaPoc = deltaRPS
				}
				rps.DeltaPoc[k] = deltaPoc
				if deltaPoc < 0 {
					k0++
				}
				k++
			}
		}
		rps.NumDeltaPocs = int32(k)
		rps.NumNegativePics = int32(k0)

		for i := 1; i < k; i++ {
			dp := rps.DeltaPoc[i]
			used := rps.Used[i]
			j := i - 1
			for j >= 0 && dp < rps.DeltaPoc[j] {
				rps.DeltaPoc[j+1] = rps.DeltaPoc[j]
				rps.Used[j+1] = rps.Used[j]
				j--
			}
			rps.DeltaPoc[j+1] = dp
			rps.Used[j+1] = used
		}

		half := int(rps.NumNegativePics) / 2
		last := int(rps.NumNegativePics) - 1
		for i := 0; i < half; i++ {
			rps.DeltaPoc[i], rps.DeltaPoc[last] = rps.DeltaPoc[last], rps.DeltaPoc[i]
			rps.Used[i], rps.Used[last] = rps.Used[last], rps.Used[i]
			last--
		}
		return true
	}

	numNeg := r.ReadUE()
	numPos := r.ReadUE()
	if int(numNeg)+int(numPos) > maxDeltaPocs {
		return false
	}
	rps.NumNegativePics = int32(numNeg)
	rps.NumDeltaPocs = int32(numNeg + numPos)

	var prev int32
	for i := uint32(0); i < numNeg; i++ {
		delta := int32(r.ReadUE()) + 1
		prev -= delta
		rps.DeltaPoc[i] = prev
		rps.Used[i] = r.ReadBit() == 1
	}
	prev = 0
	for i := uint32(0); i < numPos; i++ {
		delta := int32(r.ReadUE()) + 1
		prev += delta
		rps.DeltaPoc[numNeg+i] = prev
		rps.Used[numNeg+i] = r.ReadBit() == 1
	}
	return true
}

// parseVUI reads vui_parameters() far enough to recover timing_info and the
// default display window (folded into width/height like the conformance
// window), skipping every field in between.
func parseVUI(r *bitio.Reader, chromaFormatIDC, codedWidth, codedHeight uint32, sps *SPS) (num, den uint32) {
	if r.ReadBit() == 1 { // aspect_ratio_info_present_flag
		idc := r.ReadBits(8)
		if idc == 255 {
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
		if r.ReadBit() == 1 {
			r.ReadBits(8)
			r.ReadBits(8)
			r.ReadBits(8)
		}
	}
	if r.ReadBit() == 1 { // chroma_loc_info_present_flag
		r.ReadUE()
		r.ReadUE()
	}
	r.ReadBit() // neutral_chroma_indication_flag
	r.ReadBit() // field_seq_flag
	r.ReadBit() // frame_field_info_present_flag

	if r.ReadBit() == 1 { // default_display_window_flag
		vertMult := uint32(1)
		if chromaFormatIDC < 2 {
			vertMult = 2
		}
		horizMult := uint32(1)
		if chromaFormatIDC < 3 {
			horizMult = 2
		}
		left := r.ReadUE() * horizMult
		right := r.ReadUE() * horizMult
		top := r.ReadUE() * vertMult
		bottom := r.ReadUE() * vertMult
		sps.Width = codedWidth - (left + right)
		sps.Height = codedHeight - (top + bottom)
	}

	if r.ReadBit() == 1 { // vui_timing_info_present_flag
		unitsInTick := r.ReadBits(32)
		timeScale := r.ReadBits(32)
		if unitsInTick == 0 {
			return 0, 0
		}
		if timeScale == 0 {
			return 0, 0
		}
		g := gcd(timeScale, unitsInTick)
		return timeScale / g, unitsInTick / g
	}
	return 0, 0
}

func gcd(a, b uint32) uint32 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
