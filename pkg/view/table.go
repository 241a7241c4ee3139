package view

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sachaos/launchy/pkg/launch"
)

var launchColumns = []string{"Rocket Name", "Mission Name", "Rocket Type"}

// LaunchTable shows one row per launch below a fixed header row.
type LaunchTable struct {
	*tview.Table

	keys []string
}

func NewLaunchTable() *LaunchTable {
	t := &LaunchTable{
		Table: tview.NewTable(),
	}
	t.SetFixed(1, 0)
	t.SetSelectable(true, false)
	t.SetSelectedStyle(tcell.StyleDefault.Background(tcell.ColorGray))
	t.SetBorder(true).SetTitle("Launches")
	t.SetTitleAlign(tview.AlignLeft)
	t.SetLaunches(nil, "")

	return t
}

// SetLaunches replaces every row. Occurrences of searchText in rocket names
// are highlighted.
func (t *LaunchTable) SetLaunches(launches []launch.Launch, searchText string) {
	t.Clear()
	t.keys = t.keys[:0]

	for i, name := range launchColumns {
		t.SetCell(0, i, tview.NewTableCell(name).
			SetTextColor(tview.Styles.SecondaryTextColor).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false).
			SetExpansion(1))
	}

	for i, l := range launches {
		row := i + 1
		t.SetCell(row, 0, tview.NewTableCell(highlight(l.Rocket.RocketName, searchText)).SetExpansion(1))
		t.SetCell(row, 1, tview.NewTableCell(tview.Escape(l.MissionName)).SetExpansion(1))
		t.SetCell(row, 2, tview.NewTableCell(tview.Escape(l.Rocket.RocketType)).SetExpansion(1))
		t.keys = append(t.keys, l.Key())
	}

	t.SetTitle(fmt.Sprintf("Launches (%d)", len(launches)))

	if len(launches) > 0 {
		t.Select(1, 0)
	}
}

// Keys returns the row keys in display order.
func (t *LaunchTable) Keys() []string {
	return t.keys
}

func highlight(text, searchText string) string {
	lower := strings.ToLower(text)
	needle := strings.ToLower(searchText)

	// Byte offsets of the lowered text only line up when lowering keeps lengths.
	if needle == "" || len(lower) != len(text) || len(needle) != len(searchText) {
		return tview.Escape(text)
	}

	// Splitting text with brackets could turn part of it into a color tag.
	if strings.Contains(text, "[") {
		return tview.Escape(text)
	}

	var b strings.Builder

	for {
		i := strings.Index(lower, needle)
		if i < 0 {
			b.WriteString(tview.Escape(text))
			break
		}

		b.WriteString(tview.Escape(text[:i]))
		b.WriteString("[black:yellow]")
		b.WriteString(tview.Escape(text[i : i+len(needle)]))
		b.WriteString("[-:-:-]")

		text = text[i+len(needle):]
		lower = lower[i+len(needle):]
	}

	return b.String()
}
