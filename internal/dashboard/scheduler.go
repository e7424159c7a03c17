package dashboard

import (
	"sync"
	"time"
)

// Cancel stops a scheduled callback. It is safe to call more than once
// and from inside the callback itself.
type Cancel func()

type Scheduler interface {
	// Every calls fn repeatedly, d apart, until cancelled.
	Every(d time.Duration, fn func()) Cancel

	// After calls fn once after d unless cancelled first.
	After(d time.Duration, fn func()) Cancel
}

type clockScheduler struct{}

// NewScheduler returns a Scheduler backed by the wall clock.
func NewScheduler() Scheduler {
	return clockScheduler{}
}

func (clockScheduler) Every(d time.Duration, fn func()) Cancel {
	ticker := time.NewTicker(d)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

func (clockScheduler) After(d time.Duration, fn func()) Cancel {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
