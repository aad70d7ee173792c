package pipeline

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// ErrorFlag is a sticky, concurrency-safe latch a stage sets when it fails
// unrecoverably, read by sibling stages deciding whether to keep draining
// (spec.md §5, §7).
type ErrorFlag struct {
	failed int32
}

func (f *ErrorFlag) Set() { atomic.StoreInt32(&f.failed, 1) }

func (f *ErrorFlag) IsSet() bool { return atomic.LoadInt32(&f.failed) != 0 }

// streamState is the shared per-pipeline bookkeeping a stage consults to
// decide whether a stream-level or pipeline-level failure should widen the
// EOS it forwards (spec.md §7: a shared-stage failure tears down the
// whole pipeline, a per-stream stage failure does not).
type streamState struct {
	mu           sync.Mutex
	streamErrors map[string]*ErrorFlag
	pipelineErr  ErrorFlag
}

func newStreamState() *streamState {
	return &streamState{streamErrors: make(map[string]*ErrorFlag)}
}

func (s *streamState) errorFlagFor(streamID string) *ErrorFlag {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.streamErrors[streamID]
	if !ok {
		f = &ErrorFlag{}
		s.streamErrors[streamID] = f
	}
	return f
}

func (s *streamState) failStream(streamID string) {
	s.errorFlagFor(streamID).Set()
}

func (s *streamState) failPipeline() {
	s.pipelineErr.Set()
}

func (s *streamState) pipelineFailed() bool {
	return s.pipelineErr.IsSet()
}

// recoverStage is a small convenience wrapper the stage goroutines use so a
// panic inside one stage is reported with its name and stream instead of
// crashing the process silently, following the teacher's defer-based
// panic containment (utils.PanicRecover) but scoped to one stage.
func recoverStage(stage, streamID string) {
	if r := recover(); r != nil {
		log.Error().
			Str("stage", stage).
			Str("stream_id", streamID).
			Interface("panic", r).
			Msg("pipeline stage panicked")
	}
}
