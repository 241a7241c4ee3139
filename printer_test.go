package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/sachaos/launchy/pkg/launch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

type fetcherFunc func(ctx context.Context, searchText string) ([]launch.Launch, error)

func (f fetcherFunc) FetchLaunches(ctx context.Context, searchText string) ([]launch.Launch, error) {
	return f(ctx, searchText)
}

func Test_printer(t *testing.T) {
	var b bytes.Buffer

	p := newPrinter(&b, 80, true)
	require.NoError(t, p.print([]launch.Launch{alpha, zeta}))

	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Rocket Name   Mission Name  Rocket Type", lines[0])
	assert.Equal(t, "Falcon Heavy  Alpha         FH", lines[1])
	assert.Equal(t, "Falcon 9      Zeta          F9", lines[2])
}

func Test_printerEmpty(t *testing.T) {
	var b bytes.Buffer

	p := newPrinter(&b, 80, true)
	require.NoError(t, p.print(nil))

	assert.Equal(t, "Rocket Name  Mission Name  Rocket Type\n", b.String())
}

func Test_printerNarrow(t *testing.T) {
	var b bytes.Buffer

	long := launch.Launch{
		MissionName: "Commercial Resupply Services 20",
		Rocket:      launch.Rocket{RocketName: "Falcon 9", RocketType: "FT"},
	}

	p := newPrinter(&b, 30, true)
	require.NoError(t, p.print([]launch.Launch{long}))

	for _, line := range strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 30, line)
	}

	assert.Contains(t, b.String(), "…")
}

func Test_printOnce(t *testing.T) {
	sorter := launch.NewSorter(language.English)

	t.Run("rows", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		var sent string
		f := fetcherFunc(func(ctx context.Context, searchText string) ([]launch.Launch, error) {
			sent = searchText
			return []launch.Launch{zeta, alpha, delta}, nil
		})

		err := printOnce(context.Background(), f, sorter, "falcon", 0, newPrinter(&stdout, 80, true), &stderr, zap.NewNop())
		require.NoError(t, err)

		assert.Equal(t, "falcon", sent)
		assert.Empty(t, stderr.String())

		lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[1], "Falcon Heavy"))
		assert.True(t, strings.HasPrefix(lines[2], "Falcon 9"))
	})

	t.Run("error", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		f := fetcherFunc(func(ctx context.Context, searchText string) ([]launch.Launch, error) {
			return nil, &launch.QueryError{Message: "network error"}
		})

		err := printOnce(context.Background(), f, sorter, "", 0, newPrinter(&stdout, 80, true), &stderr, zap.NewNop())
		require.Error(t, err)

		assert.Equal(t, "Error! network error\n", stderr.String())
		assert.Empty(t, stdout.String())
	})

	t.Run("timeout", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		f := fetcherFunc(func(ctx context.Context, searchText string) ([]launch.Launch, error) {
			_, ok := ctx.Deadline()
			assert.True(t, ok)
			return nil, nil
		})

		err := printOnce(context.Background(), f, sorter, "", time.Second, newPrinter(&stdout, 80, true), &stderr, zap.NewNop())
		require.NoError(t, err)
	})
}
