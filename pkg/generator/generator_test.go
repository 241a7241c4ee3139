package generator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestSequentialGenerator(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := NewSequentialGenerator(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g.Run(ctx)

	assert.Equal(t, int64(1), <-g.Out())

	select {
	case <-g.Out():
		t.Fatal("tick emitted before the previous one was done")
	case <-time.After(100 * time.Millisecond):
	}

	g.Done()
	assert.Equal(t, int64(2), <-g.Out())

	cancel()
}

func TestSequentialGeneratorStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := NewSequentialGenerator(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	g.Run(ctx)
	cancel()
}
