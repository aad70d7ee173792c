package nal

// FindStartCode searches buf, starting at offset from, for the next Annex-B
// start code (00 00 01 or 00 00 00 01). It returns the offset of the first
// byte of the start code (backed up one byte from a 00 00 01 match when
// the preceding byte is 00, so a 4-byte start code is kept intact) and
// true, or (0, false) if no start code is found before the end of buf.
func FindStartCode(buf []byte, from int) (int, bool) {
	if from < 0 {
		from = 0
	}
	i := from
	for i+2 < len(buf) {
		if buf[i] == 0x00 && buf[i+1] == 0x00 && buf[i+2] == 0x01 {
			if i > 0 && buf[i-1] == 0x00 {
				return i - 1, true
			}
			return i, true
		}
		i++
	}
	return 0, false
}

// StartCodeLen reports the length (3 or 4) of the start code beginning at
// offset off in buf. It assumes off was produced by FindStartCode.
func StartCodeLen(buf []byte, off int) int {
	if off+3 < len(buf) && buf[off] == 0x00 && buf[off+1] == 0x00 && buf[off+2] == 0x00 && buf[off+3] == 0x01 {
		return 4
	}
	return 3
}

// NALStart returns the offset of the first byte of the NAL header that
// follows the start code at off (i.e. off + the start code's length).
func NALStart(buf []byte, off int) int {
	return off + StartCodeLen(buf, off)
}

// StripStartCode returns the portion of nal after its leading Annex-B
// start code (3 or 4 bytes).
func StripStartCode(nalUnit []byte) []byte {
	if len(nalUnit) >= 4 && nalUnit[0] == 0x00 && nalUnit[1] == 0x00 && nalUnit[2] == 0x00 && nalUnit[3] == 0x01 {
		return nalUnit[4:]
	}
	if len(nalUnit) >= 3 && nalUnit[0] == 0x00 && nalUnit[1] == 0x00 && nalUnit[2] == 0x01 {
		return nalUnit[3:]
	}
	return nalUnit
}
