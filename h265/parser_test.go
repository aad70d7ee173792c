package h265

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvas-go/pipeline/internal/errs"
	"github.com/vvas-go/pipeline/nal"
)

func bitsToBytes(s string) []byte {
	var out []byte
	var cur byte
	var n uint
	for _, c := range s {
		cur <<= 1
		if c == '1' {
			cur |= 1
		}
		n++
		if n == 8 {
			out = append(out, cur)
			cur, n = 0, 0
		}
	}
	if n > 0 {
		cur <<= (8 - n)
		out = append(out, cur)
	}
	return out
}

func ue(v uint32) string {
	v++
	nbits := 0
	for tmp := v; tmp > 1; tmp >>= 1 {
		nbits++
	}
	s := ""
	for i := 0; i < nbits; i++ {
		s += "0"
	}
	for i := nbits; i >= 0; i-- {
		if v&(1<<uint(i)) != 0 {
			s += "1"
		} else {
			s += "0"
		}
	}
	return s
}

func bits(n int, v uint32) string {
	s := ""
	for i := n - 1; i >= 0; i-- {
		if v&(1<<uint(i)) != 0 {
			s += "1"
		} else {
			s += "0"
		}
	}
	return s
}

// hevcNALHeader builds a 2-byte H.265 NAL header for the given nal_unit_type.
func hevcNALHeader(nalType uint32) []byte {
	b0 := byte((nalType << 1) & 0x7E)
	b1 := byte(0x01) // layer_id=0, temporal_id_plus1=1
	return []byte{b0, b1}
}

func withStartCode(header []byte, rbsp []byte) []byte {
	out := append([]byte{0x00, 0x00, 0x00, 0x01}, header...)
	return append(out, rbsp...)
}

// buildSPS constructs a minimal main-profile SPS RBSP (profile_space=0,
// tier_flag=0, profile_idc=1) with a single sub-layer, no scaling lists, no
// short-term RPS, no long-term RPS and no VUI.
func buildSPS(id, width, height uint32) []byte {
	b := ""
	b += bits(4, 0) // vps_id
	b += bits(3, 0) // max_sub_layers_minus1 -> maxSubLayers=1
	b += "0"        // temporal_id_nesting_flag

	// profile_tier_level general profile
	b += bits(2, 0) // profile_space
	b += "0"        // tier_flag
	b += bits(5, 1) // profile_idc
	b += bits(32, 0)
	b += "0000" // progressive/interlaced/non_packed/frame_only
	b += bits(32, 0)
	b += bits(12, 0)

	b += bits(8, 90) // level_idc raw=90 -> normalized 30

	// maxSubLayers==1 so no sub-layer profile/level loops

	b += ue(id)
	b += ue(1) // chroma_format_idc = 4:2:0
	b += ue(width)
	b += ue(height)
	b += "0"        // conformance_window_flag
	b += ue(0)      // bit_depth_luma_minus8
	b += ue(0)      // bit_depth_chroma_minus8
	b += ue(0)      // log2_max_pic_order_cnt_lsb_minus4
	b += "1"        // sps_sub_layer_ordering_info_present_flag
	b += ue(0)      // max_dec_pic_buffering_minus1
	b += ue(0)      // num_reorder_pics
	b += ue(0)      // max_latency_increase_plus1
	b += ue(0)      // log2_min_luma_coding_block_size_minus3
	b += ue(0)      // log2_diff_max_min_luma_coding_block_size
	b += ue(0)      // log2_min_luma_transform_block_size_minus2
	b += ue(0)      // log2_diff_max_min_luma_transform_block_size
	b += ue(0)      // max_transform_hierarchy_depth_inter
	b += ue(0)      // max_transform_hierarchy_depth_intra
	b += "0"        // scaling_list_enabled_flag
	b += "0"        // amp_enabled_flag
	b += "0"        // sao_enabled_flag
	b += "0"        // pcm_enabled_flag
	b += ue(0)      // num_short_term_ref_pic_sets
	b += "0"        // long_term_ref_pics_present_flag
	b += "0"        // sps_temporal_mvp_enabled_flag
	b += "0"        // strong_intra_smoothing_enabled_flag
	b += "0"        // vui_parameters_present_flag
	b += "1"        // stop bit
	return bitsToBytes(b)
}

func TestParseSPSRecoversDimensionsAndLevel(t *testing.T) {
	rbsp := buildSPS(0, 1920, 1080)
	sps, ok := ParseSPS(rbsp)
	require.True(t, ok)
	require.Equal(t, uint32(0), sps.ID)
	require.Equal(t, uint32(1920), sps.Width)
	require.Equal(t, uint32(1080), sps.Height)
	require.Equal(t, uint32(30), sps.LevelIDC)
}

func TestNormalizeLevelIDC(t *testing.T) {
	require.Equal(t, uint32(50), normalizeLevelIDC(150))
	require.Equal(t, uint32(31), normalizeLevelIDC(93))
}

func buildPPS(id, spsID uint32) []byte {
	b := ue(id) + ue(spsID) + "1"
	return bitsToBytes(b)
}

func TestParsePPSRecoversSeqParameterSetID(t *testing.T) {
	pps, ok := ParsePPS(buildPPS(2, 0))
	require.True(t, ok)
	require.Equal(t, uint32(2), pps.ID)
	require.Equal(t, uint32(0), pps.SeqParameterSetID)
}

// buildSlice constructs a slice_segment_header bit string for an IRAP
// (IDR/BLA/CRA) NAL, which carries no_output_of_prior_pics_flag before
// pps_id per the BLA_W_LP..RESERVED_VCL23 range check in ParseSliceHeader.
func buildSlice(first bool, ppsID uint32) []byte {
	flag := "0"
	if first {
		flag = "1"
	}
	b := flag + "0" /* no_output_of_prior_pics_flag */ + ue(ppsID) + "1"
	return bitsToBytes(b)
}

// TestTwoIDRPicturesEachStartingWithFirstSliceFlag covers two back-to-back
// IDR slices, each with first_slice_segment_in_pic_flag=1, and confirms no
// empty access unit is ever emitted for the very first one.
func TestTwoIDRPicturesEachStartingWithFirstSliceFlag(t *testing.T) {
	p := NewParser()
	asm := nal.NewAssembler(p)

	vps := withStartCode(hevcNALHeader(NALTypeVPS), []byte{0x80})
	sps := withStartCode(hevcNALHeader(NALTypeSPS), buildSPS(0, 64, 64))
	pps := withStartCode(hevcNALHeader(NALTypePPS), buildPPS(0, 0))
	idr1 := withStartCode(hevcNALHeader(NALTypeIDR_W_RADL), buildSlice(true, 0))
	idr2 := withStartCode(hevcNALHeader(NALTypeIDR_W_RADL), buildSlice(true, 0))

	var stream []byte
	stream = append(stream, vps...)
	stream = append(stream, sps...)
	stream = append(stream, pps...)
	stream = append(stream, idr1...)
	stream = append(stream, idr2...)

	au1, kind := asm.Feed(stream, true)
	require.Equal(t, errs.KindSuccess, kind)
	require.NotEmpty(t, au1)

	au2, kind := asm.Feed(nil, true)
	require.Equal(t, errs.KindEOS, kind)
	require.NotEmpty(t, au2)
}
