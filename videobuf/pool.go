package videobuf

import (
	"sync"
)

// MemoryBank identifies where a pool's frames are physically allocated.
type MemoryBank uint8

const (
	MemoryBankHost MemoryBank = iota
	MemoryBankDevice
)

// PoolConfig describes a BufferPool's fixed shape: every frame the pool
// ever allocates shares VideoInfo, MemoryBank and Alignment (spec.md §4.5).
type PoolConfig struct {
	Min, Max      int
	Width, Height uint32
	Format        Format
	Alignment     uint32
	MemoryBank    MemoryBank

	// BlockOnEmpty makes Acquire block instead of returning nil when the
	// pool is at Max and every buffer is on loan.
	BlockOnEmpty bool

	// Alloc is called to populate a newly grown buffer's planes. Tests
	// supply a stub; production wiring supplies a device- or host-memory
	// allocator (external.FrameAllocator).
	Alloc func(width, height uint32, format Format, alignment uint32) []Plane
}

// BufferPool is a fixed-capacity free list of Buffer that lazily grows from
// Min to Max on demand, per spec.md §4.5. Modeled on the teacher's
// mutex+condvar blocking-queue idiom (media/av/queue.Queue) rather than a
// raw release callback, per the re-architecture note in spec.md §9.
type BufferPool struct {
	mu   sync.Mutex
	cond *sync.Cond

	cfg PoolConfig

	free     []*Buffer
	total    int
	closed   bool
	onEmpty  bool // not set or read by any pool method
	notifyFn func(*Buffer)
}

// NewBufferPool allocates Min buffers up front and returns a pool ready to
// serve Acquire calls.
func NewBufferPool(cfg PoolConfig) *BufferPool {
	p := &BufferPool{cfg: cfg}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < cfg.Min; i++ {
		p.free = append(p.free, p.allocBuffer())
		p.total++
	}
	return p
}

func (p *BufferPool) allocBuffer() *Buffer {
	var planes []Plane
	if p.cfg.Alloc != nil {
		planes = p.cfg.Alloc(p.cfg.Width, p.cfg.Height, p.cfg.Format, p.cfg.Alignment)
	}
	return &Buffer{
		Frame: Frame{
			Width:        p.cfg.Width,
			Height:       p.cfg.Height,
			Format:       p.cfg.Format,
			Planes:       planes,
			Alignment:    p.cfg.Alignment,
			DeviceBacked: p.cfg.MemoryBank == MemoryBankDevice,
		},
		pool: p,
	}
}

// SetReleaseNotify installs a callback invoked every time a buffer returns
// to the free list, after it has been relinked and before any blocked
// Acquire is woken, on the goroutine that called Release (spec.md §4.5).
// It must be set before the pool is shared across goroutines.
func (p *BufferPool) SetReleaseNotify(fn func(*Buffer)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifyFn = fn
}

// Acquire removes a buffer from the free list, growing the pool first if
// below Max. When the pool is exhausted at Max, Acquire returns (nil, false)
// unless BlockOnEmpty is set, in which case it blocks until a buffer is
// released or the pool is closed.
func (p *BufferPool) Acquire() (*Buffer, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for {
		if n := len(p.free); n > 0 {
			buf := p.free[n-1]
			p.free = p.free[:n-1]
			buf.UserData = nil
			return buf, true
		}
		if p.total < p.cfg.Max {
			buf := p.allocBuffer()
			p.total++
			return buf, true
		}
		if p.closed {
			return nil, false
		}
		if !p.cfg.BlockOnEmpty {
			return nil, false
		}
		p.cond.Wait()
	}
}

// release is invoked by Buffer.Release; it relinks buf onto the free list,
// fires the release-notify callback, then wakes one blocked Acquire.
func (p *BufferPool) release(buf *Buffer) {
	p.mu.Lock()
	for _, f := range p.free {
		if f == buf {
			p.mu.Unlock()
			return
		}
	}
	p.free = append(p.free, buf)
	notify := p.notifyFn
	p.mu.Unlock()

	if notify != nil {
		notify(buf)
	}
	buf.UserData = nil

	p.mu.Lock()
	p.cond.Signal()
	p.mu.Unlock()
}

// Close wakes every blocked Acquire so callers can unwind; a closed pool's
// Acquire never blocks again and returns (nil, false) once drained.
func (p *BufferPool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
}

// Len reports the number of buffers currently on the free list, for tests
// and diagnostics.
func (p *BufferPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Total reports how many buffers the pool has allocated so far (<= Max).
func (p *BufferPool) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}
