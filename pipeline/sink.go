package pipeline

import (
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/vvas-go/pipeline/config"
	"github.com/vvas-go/pipeline/queue"
)

// FrameWriter writes one rendered main frame somewhere (a file, a screen
// surface, or /dev/null), selected by config.SinkType (spec.md §4.11).
type FrameWriter interface {
	WriteFrame(streamID string, pixelData []byte) error
	Close() error
}

// nullWriter backs config.SinkNull: every frame is discarded.
type nullWriter struct{}

func (nullWriter) WriteFrame(string, []byte) error { return nil }
func (nullWriter) Close() error                    { return nil }

// fileWriter backs config.SinkFile: frames are appended to one file per
// stream under dir.
type fileWriter struct {
	dir   string
	files map[string]*os.File
}

// NewFileWriter returns a FrameWriter that appends each stream's rendered
// frames to "<dir>/<stream_id>.raw".
func NewFileWriter(dir string) FrameWriter {
	return &fileWriter{dir: dir, files: make(map[string]*os.File)}
}

func (w *fileWriter) WriteFrame(streamID string, pixelData []byte) error {
	f, ok := w.files[streamID]
	if !ok {
		var err error
		f, err = os.OpenFile(w.dir+"/"+streamID+".raw", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return errors.Wrapf(err, "open sink file for stream %q", streamID)
		}
		w.files[streamID] = f
	}
	_, err := f.Write(pixelData)
	return err
}

func (w *fileWriter) Close() error {
	var firstErr error
	for _, f := range w.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewFrameWriter builds the FrameWriter named by sink (spec.md §6
// sink-type), with dir used only by SinkFile.
func NewFrameWriter(sink config.SinkType, dir string) FrameWriter {
	switch sink {
	case config.SinkFile:
		return NewFileWriter(dir)
	case config.SinkScreen:
		// No in-process display surface in this module; route to the
		// same discard path as /dev/null rather than fabricate one.
		return nullWriter{}
	default:
		return nullWriter{}
	}
}

// RenderCounters tracks the per-stream render count the launcher samples
// to compute rolling FPS (spec.md §4.11).
type RenderCounters struct {
	mu     sync.Mutex
	counts map[string]uint64
}

// NewRenderCounters returns an empty counter set.
func NewRenderCounters() *RenderCounters {
	return &RenderCounters{counts: make(map[string]uint64)}
}

func (r *RenderCounters) increment(streamID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[streamID]++
}

// Snapshot returns the current count for streamID.
func (r *RenderCounters) Snapshot(streamID string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[streamID]
}

// SinkStage writes each rendered main frame out, releases the main
// buffer, and increments the stream's render counter (spec.md §4.11).
type SinkStage struct {
	StreamID string
	Writer   FrameWriter
	Counters *RenderCounters
	In       *queue.Queue
}

// NewSinkStage constructs a sink for one stream.
func NewSinkStage(streamID string, w FrameWriter, counters *RenderCounters, in *queue.Queue) *SinkStage {
	return &SinkStage{StreamID: streamID, Writer: w, Counters: counters, In: in}
}

// Run drains In until EOS, writing, releasing, and counting every frame.
func (s *SinkStage) Run() {
	defer recoverStage("sink", s.StreamID)

	for {
		item, ok := s.In.Dequeue()
		if !ok {
			return
		}
		pb := item.(*PipelineBuffer)

		if pb.EOSType != EOSNone {
			return
		}

		if pb.MainBuffer != nil {
			if err := s.writeFrame(pb); err != nil && !errors.Is(err, io.ErrClosedPipe) {
				log.Error().Str("stream_id", s.StreamID).Err(err).Msg("sink write failed")
			}
			pb.MainBuffer.Release()
		}
		s.Counters.increment(s.StreamID)
	}
}

func (s *SinkStage) writeFrame(pb *PipelineBuffer) error {
	var data []byte
	for _, p := range pb.MainBuffer.Frame.Planes {
		data = append(data, p.Data...)
	}
	return s.Writer.WriteFrame(s.StreamID, data)
}
