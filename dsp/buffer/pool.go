package buffer

import "sync"

// Pool provides sync.Pool-based SampleBuffer reuse for offline rendering
// loops. It is not meant for the real-time callback itself.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &SampleBuffer{}
			},
		},
	}
}

// Get returns a zeroed buffer with the requested shape.
// Callers must return it via Put when done.
func (p *Pool) Get(channels, length int) *SampleBuffer {
	b := p.pool.Get().(*SampleBuffer)
	b.Reshape(channels, length)
	b.Zero()

	return b
}

// Put returns a buffer to the pool. The caller must not use it afterwards.
func (p *Pool) Put(b *SampleBuffer) {
	if b == nil {
		return
	}

	p.pool.Put(b)
}
