package main

import (
	"strings"

	"github.com/sachaos/launchy/pkg/launch"
	"github.com/sachaos/launchy/pkg/store"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var dmp = diffmatchpatch.New()

// rowLines renders one line per launch, keyed the same way table rows are.
func rowLines(launches []launch.Launch) string {
	var b strings.Builder

	for _, l := range launches {
		b.WriteString(l.Key())
		b.WriteByte('\t')
		b.WriteString(l.Rocket.RocketType)
		b.WriteByte('\n')
	}

	return b.String()
}

// compareFromBefore counts the rows added and removed by r relative to before.
// A nil before compares against an empty result.
func compareFromBefore(before, r *store.Record) {
	if !r.Completed() || r.Failed() {
		return
	}

	var beforeLines string
	if before != nil && before.Completed() {
		beforeLines = rowLines(before.Result.Launches)
	}

	a, b, lines := dmp.DiffLinesToChars(beforeLines, rowLines(r.Result.Launches))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	addition := 0
	deletion := 0

	for _, diff := range diffs {
		//nolint:exhaustive
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			addition += strings.Count(diff.Text, "\n")
		case diffmatchpatch.DiffDelete:
			deletion += strings.Count(diff.Text, "\n")
		}
	}

	r.Additions = addition
	r.Deletions = deletion
	r.DiffPrepared = true
}
