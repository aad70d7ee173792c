package bitio

// Unescape removes NAL emulation-prevention bytes (the sequence 00 00 03
// is rewritten to 00 00) from src, returning a freshly allocated RBSP
// buffer owned by the caller. The state machine has four states:
//
//	0 = last byte nonzero
//	1 = one zero seen
//	2 = two zeros seen
//	3 = saw 00 00 03 (the 03 is dropped, state resets to 0)
func Unescape(src []byte) []byte {
	dst := make([]byte, 0, len(src))
	state := 0
	for _, b := range src {
		switch state {
		case 2:
			if b == 0x03 {
				// Drop the emulation-prevention byte; state 3 behaves
				// like state 0 for the next byte.
				state = 0
				continue
			}
			if b == 0x00 {
				// Stay at "two zeros seen".
				dst = append(dst, b)
				continue
			}
			dst = append(dst, b)
			state = 0
		case 1:
			if b == 0x00 {
				state = 2
			} else {
				state = 0
			}
			dst = append(dst, b)
		default: // state 0
			if b == 0x00 {
				state = 1
			} else {
				state = 0
			}
			dst = append(dst, b)
		}
	}
	return dst
}
