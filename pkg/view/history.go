package view

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sachaos/launchy/pkg/store"
)

// HistoryView lists submitted searches, newest first.
type HistoryView struct {
	*tview.Table
	index map[int64]*HistoryRow
}

func NewHistoryView() *HistoryView {
	table := tview.NewTable()

	v := &HistoryView{
		Table: table,
		index: map[int64]*HistoryRow{},
	}
	v.SetTitle("History")
	v.SetTitleAlign(tview.AlignLeft)
	v.SetBorder(true)
	v.ScrollToBeginning()
	v.SetSelectable(true, false)
	v.SetSelectedStyle(tcell.StyleDefault.Background(tcell.ColorGray))

	return v
}

func (h *HistoryView) Append(r *store.Record) {
	hr := NewHistoryRow(r)

	h.InsertRow(0)
	h.SetCell(0, 0, hr.id)
	h.SetCell(0, 1, hr.search)
	h.SetCell(0, 2, hr.rows)
	h.SetCell(0, 3, hr.addition)
	h.SetCell(0, 4, hr.deletion)
	h.SetCell(0, 5, hr.status)

	h.index[r.ID] = hr
	h.Select(0, 0)
}

// Finish updates the row of a completed record.
func (h *HistoryView) Finish(r *store.Record) {
	hr, ok := h.index[r.ID]
	if !ok {
		return
	}

	hr.Finish(r)
}

// Selected returns the id of the selected row, or -1.
func (h *HistoryView) Selected() int64 {
	row, _ := h.GetSelection()
	if row < 0 || row >= h.GetRowCount() {
		return -1
	}

	id, err := strconv.ParseInt(h.GetCell(row, 0).Text, 10, 64)
	if err != nil {
		return -1
	}

	return id
}

func (h *HistoryView) GoToPast() {
	row, _ := h.GetSelection()
	h.goToRow(row + 1)
}

func (h *HistoryView) GoToFuture() {
	row, _ := h.GetSelection()
	h.goToRow(row - 1)
}

func (h *HistoryView) goToRow(row int) {
	count := h.GetRowCount()
	if count == 0 {
		return
	}

	if row < 0 {
		row = 0
	} else if row >= count {
		row = count - 1
	}

	h.Select(row, 0)
}

type HistoryRow struct {
	id       *tview.TableCell
	search   *tview.TableCell
	rows     *tview.TableCell
	addition *tview.TableCell
	deletion *tview.TableCell
	status   *tview.TableCell
}

func NewHistoryRow(r *store.Record) *HistoryRow {
	idCell := tview.NewTableCell(strconv.FormatInt(r.ID, 10)).SetTextColor(tview.Styles.SecondaryTextColor)
	searchCell := tview.NewTableCell(tview.Escape(strconv.Quote(r.SearchText))).SetMaxWidth(16)
	rowsCell := tview.NewTableCell("")
	additionCell := tview.NewTableCell("").SetTextColor(tcell.ColorGreen)
	deletionCell := tview.NewTableCell("").SetTextColor(tcell.ColorRed)
	statusCell := tview.NewTableCell("…").SetTextColor(tcell.ColorYellow)

	return &HistoryRow{
		id:       idCell,
		search:   searchCell,
		rows:     rowsCell,
		addition: additionCell,
		deletion: deletionCell,
		status:   statusCell,
	}
}

func (r *HistoryRow) Finish(rec *store.Record) {
	r.id.SetTextColor(tview.Styles.PrimaryTextColor)

	if rec.Failed() {
		r.status.SetText("E").SetTextColor(tcell.ColorRed)
		return
	}

	r.status.SetText("")
	r.rows.SetText(strconv.Itoa(len(rec.Result.Launches)))

	if rec.DiffPrepared {
		r.addition.SetText("+" + strconv.Itoa(rec.Additions))
		r.deletion.SetText("-" + strconv.Itoa(rec.Deletions))
	}
}
