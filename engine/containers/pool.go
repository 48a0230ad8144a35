package containers

// Pool hands out reusable instances for one frame at a time. Items checked out
// with GetItem stay owned by the caller until FinishedUsingAllItems returns
// every one of them to the idle list. It is not safe for concurrent use.
type Pool[T any] struct {
	idle        []*T
	outstanding []*T
	newFn       func() *T
	resetFn     func(*T)
}

// NewPool creates a pool. newFn allocates a fresh instance (nil means new(T));
// resetFn, if set, runs on every instance handed out again.
func NewPool[T any](newFn func() *T, resetFn func(*T)) *Pool[T] {
	if newFn == nil {
		newFn = func() *T { return new(T) }
	}
	return &Pool[T]{
		newFn:   newFn,
		resetFn: resetFn,
	}
}

// GetItem returns an idle instance when one exists, allocating otherwise.
func (p *Pool[T]) GetItem() *T {
	var item *T
	if n := len(p.idle); n > 0 {
		item = p.idle[n-1]
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]
		if p.resetFn != nil {
			p.resetFn(item)
		}
	} else {
		item = p.newFn()
	}
	p.outstanding = append(p.outstanding, item)
	return item
}

// FinishedUsingAllItems moves every checked-out instance back to idle.
func (p *Pool[T]) FinishedUsingAllItems() {
	p.idle = append(p.idle, p.outstanding...)
	clear(p.outstanding)
	p.outstanding = p.outstanding[:0]
}

func (p *Pool[T]) Outstanding() int {
	return len(p.outstanding)
}

func (p *Pool[T]) Idle() int {
	return len(p.idle)
}

// Allocated is the total number of instances the pool owns.
func (p *Pool[T]) Allocated() int {
	return len(p.idle) + len(p.outstanding)
}
