package worker

import (
	"context"

	"github.com/sachaos/launchy/pkg/run"
	"go.uber.org/zap"
)

type Task struct {
	ID         int64
	SearchText string
}

type RunFunc func(ctx context.Context, id int64, searchText string, finished chan<- *run.Result) error

type Worker struct {
	queue       chan *Task
	finished    chan *run.Result
	concurrency int

	runHandler RunFunc
	logger     *zap.Logger
}

func NewWorker(concurrency int, runHandler RunFunc, logger *zap.Logger) *Worker {
	return &Worker{
		queue:       make(chan *Task, 10),
		finished:    make(chan *run.Result, 10),
		concurrency: concurrency,

		runHandler: runHandler,
		logger:     logger,
	}
}

// Run starts the workers. They stop when ctx is done.
func (w *Worker) Run(ctx context.Context) {
	for i := 0; i < w.concurrency; i++ {
		go func() {
			for {
				select {
				case t := <-w.queue:
					if t == nil {
						continue
					}

					if err := w.runHandler(ctx, t.ID, t.SearchText, w.finished); err != nil {
						w.logger.Debug("task failed", zap.Int64("id", t.ID), zap.Error(err))
					}
				case <-ctx.Done():
					return
				}
			}
		}()
	}
}

func (w *Worker) In() chan<- *Task {
	return w.queue
}

func (w *Worker) Finished() <-chan *run.Result {
	return w.finished
}
