package engine

import "sync"

// buffer is a reusable message buffer. Its bytes are only valid until putBuf.
type buffer struct{ b []byte }

const (
	defaultBufCap = 256
	maxPooledCap  = 64 * 1024
)

var bufPool = sync.Pool{New: func() any { return &buffer{b: make([]byte, 0, defaultBufCap)} }}

func getBuf() *buffer {
	buf := bufPool.Get().(*buffer)
	buf.b = buf.b[:0]
	return buf
}

// putBuf zeroes the whole backing array before pooling it. Log functions must not
// retain the bytes they were handed.
func putBuf(buf *buffer) {
	clear(buf.b[:cap(buf.b)])
	if cap(buf.b) <= maxPooledCap {
		bufPool.Put(buf)
	}
}
