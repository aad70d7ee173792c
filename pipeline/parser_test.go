package pipeline

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvas-go/pipeline/queue"
)

func TestParserStageEmitsPipelineEOSOnPlainEOF(t *testing.T) {
	out := queue.New(-1)
	p := NewParserStage("a", CodecH264, strings.NewReader(""), 1, out, newStreamState())

	p.Run()

	item, ok := out.Dequeue()
	require.True(t, ok)
	pb := item.(*ParserBuffer)
	require.Equal(t, EOSPipeline, pb.EOSType)
}

// seekableStringReader is an io.Reader+io.Seeker over a fixed byte slice,
// so ParserStage.rewind can exercise a real Seek(0, io.SeekStart).
type seekableStringReader struct {
	data []byte
	pos  int
}

func (r *seekableStringReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func (r *seekableStringReader) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart || offset != 0 {
		return 0, errors.New("unsupported seek")
	}
	r.pos = 0
	return 0, nil
}

func TestParserStageRepeatsWithoutIntermediateEOS(t *testing.T) {
	out := queue.New(-1)
	src := &seekableStringReader{data: []byte{}}
	p := NewParserStage("a", CodecH264, src, 3, out, newStreamState())

	p.Run()

	// Three empty plays, none of them emitting an EOS marker except the
	// last: only one ParserBuffer ever reaches Out.
	item, ok := out.Dequeue()
	require.True(t, ok)
	pb := item.(*ParserBuffer)
	require.Equal(t, EOSPipeline, pb.EOSType)
	require.Equal(t, 0, out.Length())
}

func TestParserStageFailsRepeatOnUnseekableSource(t *testing.T) {
	out := queue.New(-1)
	p := NewParserStage("a", CodecH264, onlyReader{}, 2, out, newStreamState())

	p.Run()

	item, ok := out.Dequeue()
	require.True(t, ok)
	pb := item.(*ParserBuffer)
	require.Equal(t, EOSPipeline, pb.EOSType)
	require.Equal(t, 0, out.Length())
}

// onlyReader implements io.Reader but deliberately not io.Seeker.
type onlyReader struct{}

func (onlyReader) Read(p []byte) (int, error) { return 0, io.EOF }
