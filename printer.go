package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/moby/term"
	"github.com/sachaos/launchy/pkg/launch"
	"github.com/sachaos/launchy/pkg/run"
	"go.uber.org/zap"
)

const columnGap = 2

var tableHeader = []string{"Rocket Name", "Mission Name", "Rocket Type"}

type printer struct {
	w       io.Writer
	width   int
	noColor bool
}

func newPrinter(w io.Writer, width int, noColor bool) *printer {
	return &printer{
		w:       w,
		width:   width,
		noColor: noColor,
	}
}

func (p *printer) print(launches []launch.Launch) error {
	rows := make([][]string, 0, len(launches))
	for _, l := range launches {
		rows = append(rows, []string{l.Rocket.RocketName, l.MissionName, l.Rocket.RocketType})
	}

	widths := p.columnWidths(rows)

	header := color.New(color.Bold, color.FgCyan)
	if p.noColor {
		header.DisableColor()
	}

	if _, err := fmt.Fprintln(p.w, header.Sprint(formatRow(tableHeader, widths))); err != nil {
		return err
	}

	for _, row := range rows {
		if _, err := fmt.Fprintln(p.w, formatRow(row, widths)); err != nil {
			return err
		}
	}

	return nil
}

// columnWidths fits the columns into the printer width, shrinking the widest
// column first.
func (p *printer) columnWidths(rows [][]string) []int {
	widths := make([]int, len(tableHeader))
	for i, h := range tableHeader {
		widths[i] = runewidth.StringWidth(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	if p.width <= 0 {
		return widths
	}

	available := p.width - columnGap*(len(widths)-1)

	for sum(widths) > available {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}

		if widths[widest] <= 1 {
			break
		}

		widths[widest]--
	}

	return widths
}

func formatRow(cells []string, widths []int) string {
	var b strings.Builder

	for i, cell := range cells {
		cell = runewidth.Truncate(cell, widths[i], "…")

		if i == len(cells)-1 {
			b.WriteString(cell)
			break
		}

		b.WriteString(runewidth.FillRight(cell, widths[i]))
		b.WriteString(strings.Repeat(" ", columnGap))
	}

	return b.String()
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}

	return total
}

func terminalWidth() int {
	width := 80
	if winsize, err := term.GetWinsize(os.Stdout.Fd()); err == nil && winsize.Width > 0 {
		width = int(winsize.Width)
	}

	return width
}

// printOnce fetches launches once and prints the derived rows to stdout. On
// failure the error is printed to stderr the way the view shows it.
//
//nolint:lll
func printOnce(ctx context.Context, f run.Fetcher, sorter *launch.Sorter, searchText string, timeout time.Duration, p *printer, stderr io.Writer, logger *zap.Logger) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logger.Debug("fetch", zap.String("search", searchText))

	launches, err := f.FetchLaunches(ctx, searchText)
	if err != nil {
		logger.Debug("fetch failed", zap.Error(err))
		_, _ = fmt.Fprintf(stderr, "Error! %s\n", err)

		return err
	}

	rows := launch.Derive(launches, searchText, sorter)
	logger.Debug("fetched", zap.Int("launches", len(launches)), zap.Int("rows", len(rows)))

	return p.print(rows)
}
