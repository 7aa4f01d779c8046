package imageio

import (
	"image"
	"sync"
)

// Result is the outcome of one background load.
type Result struct {
	Path  string
	Image image.Image
	Err   error
}

// Loader decodes images off the frame goroutine. The frame loop polls Ready
// and collects the result with Take; nothing is delivered concurrently.
type Loader struct {
	load func(string) (image.Image, error)

	mu      sync.Mutex
	pending *Result
	busy    bool
}

// NewLoader returns a Loader that decodes with Load.
func NewLoader() *Loader {
	return &Loader{load: Load}
}

// Start begins loading path in the background. It returns false if a load
// is already in flight.
func (l *Loader) Start(path string) bool {
	return l.StartFunc(func() (string, error) { return path, nil })
}

// StartFunc resolves a path with choose, then loads it, all in the
// background. Used with Select so the dialog does not block frames.
func (l *Loader) StartFunc(choose func() (string, error)) bool {
	l.mu.Lock()
	if l.busy {
		l.mu.Unlock()
		return false
	}
	l.busy = true
	l.mu.Unlock()

	go func() {
		res := &Result{}
		res.Path, res.Err = choose()
		if res.Err == nil {
			res.Image, res.Err = l.load(res.Path)
		}
		l.mu.Lock()
		l.pending = res
		l.busy = false
		l.mu.Unlock()
	}()
	return true
}

// Ready reports whether a result is waiting.
func (l *Loader) Ready() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending != nil
}

// Busy reports whether a load is in flight.
func (l *Loader) Busy() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.busy
}

// Take returns and clears the waiting result.
func (l *Loader) Take() (Result, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending == nil {
		return Result{}, false
	}
	res := *l.pending
	l.pending = nil
	return res, true
}
