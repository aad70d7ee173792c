package h264

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildSPSWithVUITiming builds a baseline-profile SPS RBSP carrying a VUI
// with timing_info_present_flag=1 and the given raw num_units_in_tick/
// time_scale fields, and nothing else in the VUI (aspect ratio, overscan,
// video signal type and chroma loc all absent).
func buildSPSWithVUITiming(numUnitsInTick, timeScale uint32) []byte {
	bits := ue(0) // seq_parameter_set_id
	bits += ue(0) // log2_max_frame_num_minus4
	bits += ue(0) // pic_order_cnt_type
	bits += ue(0) // log2_max_pic_order_cnt_lsb_minus4
	bits += ue(0) // max_num_ref_frames
	bits += "0"   // gaps_in_frame_num_value_allowed_flag
	bits += ue(9) // pic_width_in_mbs_minus1
	bits += ue(7) // pic_height_in_map_units_minus1
	bits += "1"   // frame_mbs_only_flag
	bits += "0"   // direct_8x8_inference_flag
	bits += "0"   // frame_cropping_flag
	bits += "1"   // vui_parameters_present_flag
	bits += "0"   // aspect_ratio_info_present_flag
	bits += "0"   // overscan_info_present_flag
	bits += "0"   // video_signal_type_present_flag
	bits += "0"   // chroma_loc_info_present_flag
	bits += "1"   // timing_info_present_flag
	bits += toFixedBits(numUnitsInTick, 32)
	bits += toFixedBits(timeScale, 32)
	bits += "1" // stop bit
	body := bitsToBytes(bits)
	return append([]byte{66, 0, 30}, body...)
}

func TestParseSPSRejectsZeroNumUnitsInTick(t *testing.T) {
	_, ok := ParseSPS(buildSPSWithVUITiming(0, 60000))
	require.False(t, ok)
}

func TestParseSPSRejectsZeroTimeScale(t *testing.T) {
	_, ok := ParseSPS(buildSPSWithVUITiming(1000, 0))
	require.False(t, ok)
}

func TestParseSPSAcceptsNonZeroVUITiming(t *testing.T) {
	sps, ok := ParseSPS(buildSPSWithVUITiming(1, 50))
	require.True(t, ok)
	require.True(t, sps.Valid)
	require.NotEqual(t, uint32(0), sps.FrameRateDen)
	require.NotEqual(t, uint32(0), sps.FrameRateNum)
}
