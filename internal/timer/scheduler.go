package timer

import (
	"sync"
	"time"
)

// TickerScheduler runs callbacks on a time.Ticker in a background goroutine.
type TickerScheduler struct{}

// Every starts a ticker goroutine calling fn every d. The returned cancel
// func stops the ticker and waits for the goroutine to exit, so fn is never
// called after cancel returns.
func (TickerScheduler) Every(d time.Duration, fn func()) func() {
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(d)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				select {
				case <-stop:
					return
				default:
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
		})
	}
}
