package generator

import (
	"context"
	"time"
)

// SequentialGenerator emits a refresh tick every interval, like `watch`.
// The next interval starts only after Done is called for the previous tick.
type SequentialGenerator struct {
	interval time.Duration
	out      chan int64
	finish   chan struct{}
}

func NewSequentialGenerator(interval time.Duration) *SequentialGenerator {
	return &SequentialGenerator{
		interval: interval,
		out:      make(chan int64),
		finish:   make(chan struct{}, 1),
	}
}

func (g *SequentialGenerator) Run(ctx context.Context) {
	go func() {
		var tick int64

		timer := time.NewTimer(g.interval)
		defer timer.Stop()

		for {
			select {
			case <-timer.C:
			case <-ctx.Done():
				return
			}

			tick++

			select {
			case g.out <- tick:
			case <-ctx.Done():
				return
			}

			select {
			case <-g.finish:
			case <-ctx.Done():
				return
			}

			timer.Reset(g.interval)
		}
	}()
}

func (g *SequentialGenerator) Out() <-chan int64 {
	return g.out
}

// Done reports that the refresh for the last tick has finished.
func (g *SequentialGenerator) Done() {
	select {
	case g.finish <- struct{}{}:
	default:
	}
}
