package h264

import "github.com/vvas-go/pipeline/bitio"

// ParsePPS decodes a picture parameter set RBSP far enough to recover the
// seq_parameter_set_id back-reference and pic_order_present_flag, which is
// all the boundary-detection and stream-info logic needs from it.
func ParsePPS(rbsp []byte) (PPS, bool) {
	r := bitio.NewReader(bitio.Unescape(rbsp))

	var pps PPS
	pps.ID = r.ReadUE()
	pps.SeqParameterSetID = r.ReadUE()
	r.ReadBit() // entropy_coding_mode_flag
	pps.PicOrderPresentFlag = r.ReadBit()

	if r.EOF() {
		return PPS{}, false
	}
	pps.Valid = true
	return pps, true
}
