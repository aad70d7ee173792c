package pipeline

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/vvas-go/pipeline/statistics"
)

// InterruptFlag is the process-singleton SIGINT latch spec.md §9 requires
// be passed explicitly rather than held as a package-level global: the
// Launcher owns exactly one and sets it on SIGINT. No stage in this package
// reads it, so an interrupt does not stop the parser stages or make them
// emit EOS.
type InterruptFlag struct {
	mu   sync.Mutex
	set  bool
}

// Set marks the flag, idempotently.
func (f *InterruptFlag) Set() {
	f.mu.Lock()
	f.set = true
	f.mu.Unlock()
}

// IsSet reports whether Set has been called.
func (f *InterruptFlag) IsSet() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set
}

// StreamPipeline is one stream's set of stage goroutines, from parser
// through sink, registered with a Launcher so it can be joined and have
// its FPS sampled.
type StreamPipeline struct {
	StreamID string
	Stages   []func()
}

// Launcher runs every registered stream's stages plus the shared funnel,
// detector, classifier cascade and de-funnel, joins them all, and
// periodically samples render counters to report FPS (spec.md §4.11 "the
// launcher thread periodically samples the counter...").
type Launcher struct {
	Interrupt InterruptFlag

	streams  []*StreamPipeline
	shared   []func()
	counters *RenderCounters
	interval time.Duration

	group errgroup.Group
}

// NewLauncher returns a Launcher sampling FPS every interval using
// counters (spec.md §6 fps-display-interval).
func NewLauncher(counters *RenderCounters, interval time.Duration) *Launcher {
	return &Launcher{counters: counters, interval: interval}
}

// AddStream registers one stream's stage goroutines.
func (l *Launcher) AddStream(sp *StreamPipeline) {
	l.streams = append(l.streams, sp)
}

// AddShared registers one shared-stage goroutine (funnel, detector,
// classifier cascade member, or de-funnel).
func (l *Launcher) AddShared(run func()) {
	l.shared = append(l.shared, run)
}

// Run starts every registered stage on its own goroutine, installs a
// SIGINT handler that sets Interrupt, runs the FPS sampler, and blocks
// until every stage has returned.
func (l *Launcher) Run() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)
	go func() {
		if _, ok := <-sigCh; ok {
			log.Warn().Msg("interrupt received, setting interrupt flag")
			l.Interrupt.Set()
		}
	}()
	defer signal.Stop(sigCh)

	stop := make(chan struct{})
	if l.counters != nil && l.interval > 0 {
		go l.sampleFPS(stop)
		defer close(stop)
	}

	for _, sp := range l.streams {
		for _, stage := range sp.Stages {
			stage := stage
			l.group.Go(func() error {
				stage()
				return nil
			})
		}
	}
	for _, run := range l.shared {
		run := run
		l.group.Go(func() error {
			run()
			return nil
		})
	}

	l.group.Wait()
}

func (l *Launcher) sampleFPS(stop chan struct{}) {
	gridPeriod := int64(l.interval.Seconds())
	if gridPeriod < 1 {
		gridPeriod = 1
	}

	fpsByStream := make(map[string]*statistics.FPS)
	rollingByStream := make(map[string]*statistics.PeriodicStatistic)
	for _, sp := range l.streams {
		fpsByStream[sp.StreamID] = statistics.NewFPS()
		rollingByStream[sp.StreamID] = statistics.NewPeriodicStatistic(statistics.DefaultStatGridNum, gridPeriod)
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	lastCount := make(map[string]uint64)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			for id, f := range fpsByStream {
				cur := l.counters.Snapshot(id)
				delta := cur - lastCount[id]
				for i := uint64(0); i < delta; i++ {
					f.Add()
				}
				lastCount[id] = cur

				rolling := rollingByStream[id]
				rolling.Stat(int64(delta))
				log.Info().
					Str("stream_id", id).
					Uint32("fps", f.GetFPS()).
					Int64("rolling_avg_frames", rolling.Avg()).
					Int64("rolling_max_frames", rolling.Max()).
					Msg("render fps")
			}
		}
	}
}
