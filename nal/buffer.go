// Package nal implements Annex-B start-code scanning and access-unit
// assembly shared by the H.264 and H.265 parsers (spec.md §4.2).
package nal

// Buffer is an owned byte span with an offset cursor, mirroring
// VvasParserBuffer / ParserBuffer from spec.md §3. Assembler does not use
// it: its carried-over partial input and access unit under construction
// are plain byte slices.
type Buffer struct {
	Data   []byte
	Offset int
}

// Len returns the number of unread bytes from Offset to the end of Data.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Data) - b.Offset
}

// Remaining returns the unread tail of Data.
func (b *Buffer) Remaining() []byte {
	if b == nil || b.Offset >= len(b.Data) {
		return nil
	}
	return b.Data[b.Offset:]
}

// Reset clears the buffer to empty.
func (b *Buffer) Reset() {
	b.Data = nil
	b.Offset = 0
}

// Append copies p onto the end of Data, growing the backing array only as
// needed so repeated appends across calls stay bounded-copy.
func (b *Buffer) Append(p []byte) {
	b.Data = append(b.Data, p...)
}
