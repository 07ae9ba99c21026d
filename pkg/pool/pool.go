// Package pool provides typed object pooling for tvpstage. The bulk loader
// reuses row-value buffers through it so that staging large files does not
// allocate one scratch slice per row.
package pool

import (
	"sync"
	"sync/atomic"
)

// Pool is a generic object pool wrapping sync.Pool with statistics and an
// optional reset function applied before objects are returned for reuse. It
// is safe for concurrent use.
type Pool[T any] struct {
	pool  sync.Pool
	new   func() T
	reset func(T)
	stats struct {
		allocated int64
		inUse     int64
		hits      int64
	}
}

// New creates a pool with custom allocation and reset functions. The reset
// function may be nil.
func New[T any](newFn func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{
		new:   newFn,
		reset: reset,
	}
	p.pool.New = func() interface{} {
		atomic.AddInt64(&p.stats.allocated, 1)
		return newFn()
	}
	return p
}

// Get retrieves an object from the pool, allocating one if the pool is
// empty.
func (p *Pool[T]) Get() T {
	atomic.AddInt64(&p.stats.inUse, 1)
	atomic.AddInt64(&p.stats.hits, 1)
	return p.pool.Get().(T)
}

// Put returns an object to the pool, applying the reset function first.
func (p *Pool[T]) Put(obj T) {
	if p.reset != nil {
		p.reset(obj)
	}
	atomic.AddInt64(&p.stats.inUse, -1)
	p.pool.Put(obj)
}

// Stats returns the number of objects allocated, currently checked out, and
// total Get calls served.
func (p *Pool[T]) Stats() (allocated, inUse, hits int64) {
	return atomic.LoadInt64(&p.stats.allocated),
		atomic.LoadInt64(&p.stats.inUse),
		atomic.LoadInt64(&p.stats.hits)
}

// ValueBuffer is a reusable positional row of raw values, sized by the
// caller and handed to Table.AddRow. AddRow copies cells into its own
// storage, so the buffer can go straight back to the pool afterwards.
type ValueBuffer struct {
	Values []interface{}
}

var valueBufferPool = New(
	func() *ValueBuffer {
		return &ValueBuffer{Values: make([]interface{}, 0, 16)}
	},
	func(b *ValueBuffer) {
		for i := range b.Values {
			b.Values[i] = nil
		}
		b.Values = b.Values[:0]
	},
)

// GetValueBuffer retrieves a cleared value buffer from the global pool.
func GetValueBuffer() *ValueBuffer {
	return valueBufferPool.Get()
}

// PutValueBuffer returns a value buffer to the global pool.
func PutValueBuffer(b *ValueBuffer) {
	if b != nil {
		valueBufferPool.Put(b)
	}
}
