package sequence

import "sync"

// loader runs one background load: resolve the folder listing, then decode
// every frame into the cache. At most one loader is bound to a sequence at a
// time.
//
// The cancellation flag is the only state shared with the caller while the
// worker runs; it is guarded by mu. done is closed when the worker exits and
// is the join point for cancel.
type loader struct {
	mu        sync.Mutex
	cancelled bool

	done chan struct{}
	err  error // written by the worker before done is closed
}

func newLoader() *loader {
	return &loader{done: make(chan struct{})}
}

// run is the worker body. It never touches the texture or the cursor; the
// caller finalizes those from Update once done is closed.
func (l *loader) run(s *Sequence) {
	defer close(l.done)

	if err := s.resolveFolder(); err != nil {
		l.err = err
		return
	}
	if l.cancelRequested() {
		return
	}
	s.preloadFrames(l)
}

// cancelRequested reports whether cancel has been called. The worker checks
// it before every frame.
func (l *loader) cancelRequested() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancelled
}

// cancel sets the cancellation flag and blocks until the worker has exited.
// A decode already in flight runs to completion first. Safe to call more
// than once.
func (l *loader) cancel() {
	l.mu.Lock()
	l.cancelled = true
	l.mu.Unlock()
	<-l.done
}

// finished reports whether the worker has exited.
func (l *loader) finished() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// loadErr returns the resolution error, if any. Valid once finished.
func (l *loader) loadErr() error {
	return l.err
}
