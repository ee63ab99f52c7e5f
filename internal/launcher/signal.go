package launcher

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// forwardSignals registers handlers for the two OS termination requests,
// scoped to a single run: installed after spawn, removed by the returned
// function once the completion fires. Both signals request cancellation;
// repeats after the first are absorbed by RequestCancel.
func (l *Launcher) forwardSignals() func() {
	if !l.forwarding {
		return func() {}
	}

	ch := make(chan os.Signal, 2)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	quit := make(chan struct{})

	go func() {
		for {
			select {
			case <-ch:
				l.RequestCancel()
			case <-quit:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(quit)
		})
	}
}
