package nal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vvas-go/pipeline/internal/errs"
)

// scriptedDecoder returns one pre-recorded Decision per ProcessNAL call, in
// order, regardless of the NAL bytes — it isolates Assembler's generic
// state machine from any codec-specific parsing.
type scriptedDecoder struct {
	decisions []Decision
	calls     int
}

func (d *scriptedDecoder) ProcessNAL(nal []byte, hasSlice bool) Decision {
	dec := d.decisions[d.calls]
	d.calls++
	return dec
}

func startCode3(payload byte) []byte {
	return []byte{0x00, 0x00, 0x01, payload}
}

func TestAssemblerEmitsOneAccessUnitPerBoundary(t *testing.T) {
	// SPS, then two VCL NALs of the same picture (no boundary between
	// them), then a VCL NAL starting the next picture.
	dec := &scriptedDecoder{decisions: []Decision{
		{IsSPS: true},
		{IsVCL: true},
		{IsVCL: true},
		{IsVCL: true, Boundary: true},
	}}
	a := NewAssembler(dec)

	var stream []byte
	stream = append(stream, startCode3('S')...)
	stream = append(stream, startCode3('V')...)
	stream = append(stream, startCode3('V')...)
	stream = append(stream, startCode3('V')...)

	au, kind := a.Feed(stream, true)
	require.Equal(t, errs.KindSuccess, kind)
	// first AU is SPS + first two VCL NALs, byte-for-byte, start codes
	// included: golden-AU comparison via go-cmp rather than just a length
	// check, since a truncated-but-same-length AU would otherwise pass.
	wantAU1 := append(append(startCode3('S'), startCode3('V')...), startCode3('V')...)
	if diff := cmp.Diff(wantAU1, au); diff != "" {
		t.Fatalf("first access unit mismatch (-want +got):\n%s", diff)
	}

	au2, kind2 := a.Feed(nil, true)
	require.Equal(t, errs.KindEOS, kind2)
	if diff := cmp.Diff(startCode3('V'), au2); diff != "" {
		t.Fatalf("second access unit mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemblerDiscardsVCLBeforeSPS(t *testing.T) {
	dec := &scriptedDecoder{decisions: []Decision{
		{IsVCL: true}, // no SPS yet: discarded
		{IsSPS: true},
		{IsVCL: true},
	}}
	a := NewAssembler(dec)

	var stream []byte
	stream = append(stream, startCode3('V')...)
	stream = append(stream, startCode3('S')...)
	stream = append(stream, startCode3('V')...)

	au, kind := a.Feed(stream, true)
	require.Equal(t, errs.KindEOS, kind)
	// only SPS + the post-SPS VCL NAL survive
	require.Equal(t, 8, len(au))
}

func TestAssemblerNeedsMoreDataOnPartialInput(t *testing.T) {
	dec := &scriptedDecoder{decisions: []Decision{{IsSPS: true}}}
	a := NewAssembler(dec)

	// A start code with no following start code and eos=false: Assembler
	// must hold the bytes and ask for more.
	au, kind := a.Feed(startCode3('S'), false)
	require.Nil(t, au)
	require.Equal(t, errs.KindNeedMoreData, kind)
}

func TestAssemblerDropsDiscardedNALWithoutDisturbingCurrentAU(t *testing.T) {
	dec := &scriptedDecoder{decisions: []Decision{
		{IsSPS: true},
		{IsVCL: true},
		{Discard: true},
	}}
	a := NewAssembler(dec)

	var stream []byte
	stream = append(stream, startCode3('S')...)
	stream = append(stream, startCode3('V')...)
	stream = append(stream, startCode3('X')...)

	au, kind := a.Feed(stream, true)
	require.Equal(t, errs.KindEOS, kind)
	// the discarded NAL contributes nothing; SPS + VCL remain (8 bytes)
	require.Equal(t, 8, len(au))
}
