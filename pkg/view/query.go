package view

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const searchPlaceholder = "Enter the rocket name here"

// SearchView is the search form: a text field and a Search button.
type SearchView struct {
	*tview.Flex

	input  *tview.InputField
	button *tview.Button

	focus    func(p tview.Primitive)
	onChange func(text string)
	onSubmit func()
	onLeave  func()
}

func NewSearchView() *SearchView {
	s := &SearchView{
		onChange: func(string) {},
		onSubmit: func() {},
		onLeave:  func() {},
	}

	q := tview.NewInputField().SetLabel("/ ")
	q.SetPlaceholder(searchPlaceholder)
	q.SetChangedFunc(func(text string) {
		s.onChange(text)
	})
	q.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			s.onSubmit()
		case tcell.KeyTab:
			s.FocusButton()
		case tcell.KeyEscape, tcell.KeyBacktab:
			s.onLeave()
		}
	})
	s.input = q

	b := tview.NewButton("Search")
	b.SetSelectedFunc(func() {
		s.onSubmit()
	})
	b.SetBlurFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyBacktab:
			s.FocusInput()
		case tcell.KeyEscape, tcell.KeyTab:
			s.onLeave()
		}
	})
	s.button = b

	s.Flex = tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(q, 0, 1, true).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(b, 10, 0, false)
	s.SetBorder(true).SetTitle("Search")
	s.SetTitleAlign(tview.AlignLeft)

	return s
}

// SetChangedFunc is called on every keystroke in the search field.
func (s *SearchView) SetChangedFunc(f func(text string)) {
	s.onChange = f
}

// SetSubmitFunc is called on Enter in the search field and when Search is pressed.
func (s *SearchView) SetSubmitFunc(f func()) {
	s.onSubmit = f
}

// SetLeaveFunc is called when focus should move away from the form.
func (s *SearchView) SetLeaveFunc(f func()) {
	s.onLeave = f
}

func (s *SearchView) Text() string {
	return s.input.GetText()
}

// SetText replaces the search text. The changed func is called.
func (s *SearchView) SetText(text string) {
	s.input.SetText(text)
}

func (s *SearchView) FocusInput() {
	if s.focus != nil {
		s.focus(s.input)
	}
}

func (s *SearchView) FocusButton() {
	if s.focus != nil {
		s.focus(s.button)
	}
}

func (s *SearchView) Editing() bool {
	return s.input.HasFocus() || s.button.HasFocus()
}
