package h265

import "github.com/vvas-go/pipeline/bitio"

// ParsePPS decodes a picture parameter set RBSP far enough to recover the
// seq_parameter_set_id back-reference, all that boundary detection and
// stream-info need from it.
func ParsePPS(rbsp []byte) (PPS, bool) {
	r := bitio.NewReader(bitio.Unescape(rbsp))

	var pps PPS
	pps.ID = r.ReadUE()
	pps.SeqParameterSetID = r.ReadUE()

	if r.EOF() {
		return PPS{}, false
	}
	pps.Valid = true
	return pps, true
}
