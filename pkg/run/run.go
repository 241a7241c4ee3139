package run

import (
	"context"
	"time"

	"github.com/sachaos/launchy/pkg/launch"
)

// Result is the outcome of one submitted search.
type Result struct {
	ID         int64
	SearchText string

	Launches []launch.Launch
	Err      error

	Start time.Time
	End   time.Time
}

type Fetcher interface {
	FetchLaunches(ctx context.Context, searchText string) ([]launch.Launch, error)
}

// Func returns a run handler that fetches launches for every task. A timeout
// of zero means no timeout.
func Func(f Fetcher, timeout time.Duration) func(ctx context.Context, id int64, searchText string, finished chan<- *Result) error {
	return func(ctx context.Context, id int64, searchText string, finished chan<- *Result) error {
		fetchCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		r := Result{ID: id, SearchText: searchText, Start: time.Now()}
		r.Launches, r.Err = f.FetchLaunches(fetchCtx, searchText)
		r.End = time.Now()

		// A timed out fetch is still a result. Only the caller's ctx may drop it.
		select {
		case finished <- &r:
		case <-ctx.Done():
			return ctx.Err()
		}

		return nil
	}
}
