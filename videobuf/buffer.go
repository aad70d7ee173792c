package videobuf

// Buffer is a pool-owned Frame plus the bookkeeping a pipeline needs to
// pass it through the cascade: a back-reference to the pool it must be
// released to, and an opaque user-data slot used to carry a PredictionTree
// alongside the pixels it was predicted from (spec.md §3 VideoBuffer, §9).
type Buffer struct {
	Frame Frame

	pool *BufferPool

	// UserData is reset to nil by the owning pool on Release, after any
	// release-notify callback has run (spec.md §4.5).
	UserData interface{}
}

// Release returns buf to the pool it was acquired from. Releasing a buffer
// not currently on loan from a pool is a no-op.
func (buf *Buffer) Release() {
	if buf.pool == nil {
		return
	}
	buf.pool.release(buf)
}
