package workflow

import (
	"sync"
	"time"
)

// Countdown is a single cancellable scheduled task: it emits tick events
// while running and exactly one terminal fire event when the delay elapses.
// Stop cancels both together, so a stale timer can never fire against a
// discarded draft.
type Countdown struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartCountdown runs the task in its own goroutine. onTick receives the
// remaining duration after each interval; onFire runs once at zero unless
// Stop wins the race.
func StartCountdown(delay, interval time.Duration, onTick func(remaining time.Duration), onFire func()) *Countdown {
	c := &Countdown{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go c.run(delay, interval, onTick, onFire)
	return c
}

func (c *Countdown) run(delay, interval time.Duration, onTick func(time.Duration), onFire func()) {
	defer close(c.done)

	timer := time.NewTimer(delay)
	defer timer.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	remaining := delay
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			remaining -= interval
			if onTick != nil && remaining > 0 {
				onTick(remaining)
			}
		case <-timer.C:
			if onFire != nil {
				onFire()
			}
			return
		}
	}
}

// Stop cancels the task and waits for it to wind down. Safe to call more
// than once and after the fire already happened.
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
	<-c.done
}
