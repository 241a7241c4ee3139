package view

import (
	"fmt"
	"io"

	"github.com/rivo/tview"
)

type View struct {
	app *tview.Application

	endpoint *tview.TextView
	refresh  *tview.TextView
	search   *SearchView
	table    *LaunchTable
	message  *tview.TextView
	history  *HistoryView
	status   *tview.TextView
	log      *tview.TextView
	help     *tview.TextView

	phase Phase

	showHelpView bool
	noTitle      bool
	showHistory  bool
	showLog      bool
}

const title = "SpaceX Launches"

func NewView(endpoint string, refresh string, helpPage string) *View {
	app := tview.NewApplication()

	e := tview.NewTextView()
	e.SetBorder(true).SetTitle(title)
	e.SetTitleAlign(tview.AlignLeft)
	e.SetText(endpoint)

	r := tview.NewTextView()
	r.SetBorder(true).SetTitle("Every")
	r.SetTitleAlign(tview.AlignLeft)
	r.SetText(refresh)

	m := tview.NewTextView()
	m.SetDynamicColors(true)
	m.SetBorder(true)

	s := tview.NewTextView()
	s.SetDynamicColors(true)

	l := tview.NewTextView()
	l.SetBorder(true).SetTitle("Log")
	l.ScrollToEnd()

	h := tview.NewTextView()
	h.SetDynamicColors(true)
	_, _ = io.WriteString(h, helpPage)

	v := &View{
		app:      app,
		endpoint: e,
		refresh:  r,
		search:   NewSearchView(),
		table:    NewLaunchTable(),
		message:  m,
		history:  NewHistoryView(),
		status:   s,
		log:      l,
		help:     h,
	}
	v.search.focus = func(p tview.Primitive) {
		app.SetFocus(p)
	}

	return v
}

func (v *View) App() *tview.Application {
	return v.app
}

func (v *View) Search() *SearchView {
	return v.search
}

func (v *View) Table() *LaunchTable {
	return v.table
}

func (v *View) History() *HistoryView {
	return v.history
}

// LogWriter returns the writer backing the log pane.
func (v *View) LogWriter() io.Writer {
	return v.log
}

func (v *View) Run() error {
	v.arrange()
	v.search.FocusInput()

	return v.app.Run()
}

func (v *View) Stop() {
	v.app.Stop()
}

// Render shows state in the body of the view.
func (v *View) Render(state *State) {
	v.phase = state.Phase()

	switch v.phase {
	case PhaseLoading:
		v.message.SetText("Loading...")
	case PhaseError:
		v.message.SetText(tview.Escape(fmt.Sprintf("Error! %s", state.Err())))
	case PhaseLoaded:
		v.table.SetLaunches(state.Rows(), state.SearchText())
	case PhaseIdle:
		v.message.SetText("")
	}

	v.arrange()
}

func (v *View) SetStatus(text string) {
	v.status.SetText(text)
}

func (v *View) Body() tview.Primitive {
	if v.phase == PhaseLoaded {
		return v.table
	}

	return v.message
}

func (v *View) ShowHelp() bool {
	return v.showHelpView
}

func (v *View) SetShowHelp(b bool) {
	v.showHelpView = b
	v.arrange()
}

func (v *View) NoTitle() bool {
	return v.noTitle
}

func (v *View) SetNoTitle(b bool) {
	v.noTitle = b
	v.arrange()
}

func (v *View) ShowHistory() bool {
	return v.showHistory
}

func (v *View) SetShowHistory(b bool) {
	v.showHistory = b
	v.arrange()
}

func (v *View) ShowLog() bool {
	return v.showLog
}

func (v *View) SetShowLog(b bool) {
	v.showLog = b
	v.arrange()
}

// FocusBody moves focus from the search form to the table.
func (v *View) FocusBody() {
	v.app.SetFocus(v.Body())
}

func (v *View) arrange() {
	if v.showHelpView {
		v.app.SetRoot(v.help, true)

		return
	}

	editing := v.search.Editing()
	focused := v.app.GetFocus()

	flex := tview.NewFlex().SetDirection(tview.FlexRow)

	if !v.noTitle {
		title := tview.NewFlex().SetDirection(tview.FlexColumn).
			AddItem(v.endpoint, 0, 1, false).
			AddItem(v.refresh, 10, 1, false)

		flex.AddItem(title, 3, 1, false)
	}

	flex.AddItem(v.search, 3, 1, false)

	middle := tview.NewFlex().SetDirection(tview.FlexColumn)
	middle.AddItem(v.Body(), 0, 1, false)

	if v.showHistory {
		middle.AddItem(v.history, 36, 1, false)
	}

	flex.AddItem(middle, 0, 1, false)
	flex.AddItem(v.status, 1, 1, false)

	if v.showLog {
		flex.AddItem(v.log, 10, 1, false)
	}

	v.app.SetRoot(flex, true)

	if editing {
		v.app.SetFocus(focused)
	} else {
		v.app.SetFocus(v.Body())
	}
}
