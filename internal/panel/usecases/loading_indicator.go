package usecases

import (
	"sync"
	"sync/atomic"
)

// LoadingIndicator reports whether a workflow has a remote call outstanding.
type LoadingIndicator struct {
	active atomic.Int64
}

// Begin marks the workflow as loading until the returned release func runs.
// Use it as `defer indicator.Begin()()`.
func (l *LoadingIndicator) Begin() func() {
	l.active.Add(1)

	var once sync.Once
	return func() {
		once.Do(func() {
			l.active.Add(-1)
		})
	}
}

func (l *LoadingIndicator) Active() bool {
	return l.active.Load() > 0
}
