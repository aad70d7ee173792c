package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvas-go/pipeline/external"
	"github.com/vvas-go/pipeline/internal/errs"
	"github.com/vvas-go/pipeline/queue"
	"github.com/vvas-go/pipeline/videobuf"
)

type stubDecoder struct {
	configureCalls int
	submits        [][]byte
	sendAgainLeft  int
	decodedQueue   []*videobuf.Buffer
}

func (s *stubDecoder) Configure(cfg external.DecoderInCfg) (external.DecoderOutCfg, errs.Kind) {
	s.configureCalls++
	return external.DecoderOutCfg{Width: cfg.Width, Height: cfg.Height}, errs.KindSuccess
}

func (s *stubDecoder) Submit(au []byte, freeFrames []*videobuf.Buffer) errs.Kind {
	if s.sendAgainLeft > 0 {
		s.sendAgainLeft--
		return errs.KindSendAgain
	}
	s.submits = append(s.submits, au)
	return errs.KindSuccess
}

func (s *stubDecoder) GetDecoded() (*videobuf.Buffer, errs.Kind) {
	if len(s.decodedQueue) == 0 {
		return nil, errs.KindNeedMoreData
	}
	buf := s.decodedQueue[0]
	s.decodedQueue = s.decodedQueue[1:]
	return buf, errs.KindSuccess
}

func (s *stubDecoder) Destroy() {}

func TestDecoderConfiguresSubmitsAndForwardsDecodedFrames(t *testing.T) {
	decoded := &videobuf.Buffer{}
	dec := &stubDecoder{decodedQueue: []*videobuf.Buffer{decoded}}
	pool := newTestPool(t)
	in := queue.New(-1)
	out := queue.New(-1)
	d := NewDecoderStage("a", dec, pool, in, out, newStreamState())

	cfg := &external.DecoderInCfg{Width: 1920, Height: 1080, FrameRateNum: 30, FrameRateDen: 1}
	in.Enqueue(&ParserBuffer{StreamID: "a", ParsedFrame: []byte{0, 1, 2}, DecCfg: cfg})
	in.Enqueue(&ParserBuffer{StreamID: "a", EOSType: EOSPipeline})

	d.Run()

	require.Equal(t, 1, dec.configureCalls)
	// the access unit, then the nil end-of-stream submit
	require.Len(t, dec.submits, 2)

	got, ok := out.Dequeue()
	require.True(t, ok)
	pb := got.(*PipelineBuffer)
	require.Same(t, decoded, pb.MainBuffer)

	eos, ok := out.Dequeue()
	require.True(t, ok)
	require.Equal(t, EOSPipeline, eos.(*PipelineBuffer).EOSType)
}

func TestDecoderRetriesOnSendAgain(t *testing.T) {
	dec := &stubDecoder{sendAgainLeft: 2}
	pool := newTestPool(t)
	in := queue.New(-1)
	out := queue.New(-1)
	d := NewDecoderStage("a", dec, pool, in, out, newStreamState())

	in.Enqueue(&ParserBuffer{StreamID: "a", ParsedFrame: []byte{9}})
	in.Enqueue(&ParserBuffer{StreamID: "a", EOSType: EOSPipeline})

	d.Run()

	// the access unit once the retries succeed, then the nil end-of-stream submit
	require.Len(t, dec.submits, 2)
	require.Equal(t, 0, dec.sendAgainLeft)
}
