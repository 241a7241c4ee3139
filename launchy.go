package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sachaos/launchy/pkg/generator"
	"github.com/sachaos/launchy/pkg/keymap"
	"github.com/sachaos/launchy/pkg/launch"
	"github.com/sachaos/launchy/pkg/run"
	"github.com/sachaos/launchy/pkg/store"
	"github.com/sachaos/launchy/pkg/view"
	"github.com/sachaos/launchy/pkg/worker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Launchy struct {
	keymap keymap.KeyMapping
	logger *zap.Logger

	state     *view.State
	view      *view.View
	store     *store.Store
	worker    *worker.Worker
	generator *generator.SequentialGenerator

	// ctx is the lifetime of Run. Tasks queued after it is done are dropped.
	ctx context.Context

	// refreshID is the request id of the last auto refresh.
	refreshID int64

	isDebug bool
}

func NewLaunchy(conf *config, f run.Fetcher, v *view.View, logger *zap.Logger) *Launchy {
	l := &Launchy{
		keymap: conf.keymap,
		logger: logger,

		state:  view.NewState(launch.NewSorter(conf.general.locale)),
		view:   v,
		store:  store.NewStore(),
		worker: worker.NewWorker(conf.general.concurrency, run.Func(f, conf.general.timeout), logger),

		ctx:       context.Background(),
		refreshID: -1,

		isDebug: conf.general.debug,
	}

	if conf.runtime.interval > 0 {
		l.generator = generator.NewSequentialGenerator(conf.runtime.interval)
	}

	search := v.Search()
	search.SetChangedFunc(l.onInputChange)
	search.SetSubmitFunc(func() {
		l.submit()
	})
	search.SetLeaveFunc(v.FocusBody)
	search.SetText(conf.runtime.searchText)

	v.SetNoTitle(conf.general.noTitle)
	v.App().SetInputCapture(l.inputCapture)

	return l
}

func (l *Launchy) onInputChange(text string) {
	l.state.SetSearchText(text)
	l.view.Render(l.state)
	l.updateStatus()
}

// submit issues a request for the current search text. It must be called on
// the UI goroutine.
func (l *Launchy) submit() int64 {
	id, searchText := l.state.Submit()

	rec := &store.Record{ID: id, SearchText: searchText, Start: time.Now()}
	l.store.Set(rec)
	l.view.History().Append(rec)

	l.view.Render(l.state)
	l.updateStatus()

	l.logger.Debug("submit", zap.Int64("id", id), zap.String("search", searchText))

	ctx := l.ctx
	go func() {
		select {
		case l.worker.In() <- &worker.Task{ID: id, SearchText: searchText}:
		case <-ctx.Done():
		}
	}()

	return id
}

// finish applies a finished request. It must be called on the UI goroutine.
func (l *Launchy) finish(r *run.Result) {
	rec := l.store.Get(r.ID)
	if rec == nil {
		return
	}

	rec.Result = r

	if r.Err != nil {
		l.logger.Debug("fetch failed", zap.Int64("id", r.ID), zap.Error(r.Err))
	} else {
		compareFromBefore(l.store.PreviousSuccessful(rec), rec)
		l.logger.Debug("fetched",
			zap.Int64("id", r.ID),
			zap.Int("launches", len(r.Launches)),
			zap.Duration("took", r.End.Sub(r.Start)))
	}

	l.view.History().Finish(rec)

	if l.state.Resolve(r.ID, r.Launches, r.Err) {
		l.view.Render(l.state)
	} else {
		l.logger.Debug("stale response dropped", zap.Int64("id", r.ID), zap.Int64("latest", l.state.LatestID()))
	}

	if r.ID == l.refreshID && l.generator != nil {
		l.generator.Done()
	}

	l.updateStatus()
}

// restore puts the search text of the selected history entry back into the
// search field and submits it again.
func (l *Launchy) restore() {
	rec := l.store.Get(l.view.History().Selected())
	if rec == nil {
		return
	}

	l.view.Search().SetText(rec.SearchText)
	l.submit()
}

func (l *Launchy) updateStatus() {
	l.view.SetStatus(fmt.Sprintf("Fetching %s  Refresh %s  Rows %d",
		convertToOnOrOff(l.state.InFlight()),
		convertToOnOrOff(l.generator != nil),
		len(l.state.Rows())))
}

func convertToOnOrOff(on bool) string {
	if on {
		return "[green]◯[-:-:-]"
	}

	return "[red]◯[-:-:-]"
}

//nolint:cyclop
func (l *Launchy) inputCapture(event *tcell.EventKey) *tcell.EventKey {
	l.logger.Debug("key", zap.String("name", event.Name()))

	if l.view.Search().Editing() {
		return event
	}

	if l.view.ShowHelp() {
		switch {
		case event.Key() == tcell.KeyEsc, event.Rune() == 'q', event.Rune() == '?':
			l.view.SetShowHelp(false)
		case event.Rune() == 'Q':
			l.view.Stop()
		}

		return nil
	}

	stroke := keymap.FromEvent(event)

	switch {
	case l.keymap.FocusSearch.Has(stroke):
		l.view.Search().FocusInput()
		return nil
	case l.keymap.Resubmit.Has(stroke):
		l.submit()
		return nil
	case l.keymap.ToggleHistory.Has(stroke):
		l.view.SetShowHistory(!l.view.ShowHistory())
		return nil
	case l.keymap.HistoryGoToPast.Has(stroke):
		if !l.view.ShowHistory() {
			return event
		}

		l.view.History().GoToPast()

		return nil
	case l.keymap.HistoryGoToFuture.Has(stroke):
		if !l.view.ShowHistory() {
			return event
		}

		l.view.History().GoToFuture()

		return nil
	case l.keymap.HistoryRestore.Has(stroke):
		if !l.view.ShowHistory() {
			return event
		}

		l.restore()

		return nil
	}

	switch event.Rune() {
	case 'q', 'Q':
		l.view.Stop()
		return nil
	case 't':
		l.view.SetNoTitle(!l.view.NoTitle())
		return nil
	case 'x':
		if l.isDebug {
			l.view.SetShowLog(!l.view.ShowLog())
		}

		return nil
	case '?':
		l.view.SetShowHelp(true)
		return nil
	}

	return event
}

func (l *Launchy) queueHandler(ctx context.Context, ticks <-chan int64) error {
	app := l.view.App()

	for {
		select {
		case <-ctx.Done():
			return nil
		case r := <-l.worker.Finished():
			app.QueueUpdateDraw(func() {
				l.finish(r)
			})
		case tick := <-ticks:
			l.logger.Debug("refresh", zap.Int64("tick", tick))
			app.QueueUpdateDraw(func() {
				l.refreshID = l.submit()
			})
		}
	}
}

// Run is entry point to run launchy. It returns when the UI is stopped or ctx
// is done.
func (l *Launchy) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	l.ctx = gctx

	l.worker.Run(gctx)

	var ticks <-chan int64
	if l.generator != nil {
		l.generator.Run(gctx)
		ticks = l.generator.Out()
	}

	g.Go(func() error {
		return l.queueHandler(gctx, ticks)
	})

	g.Go(func() error {
		<-gctx.Done()
		l.view.Stop()

		return nil
	})

	l.submit()

	g.Go(func() error {
		defer cancel()

		return l.view.Run()
	})

	return g.Wait()
}
