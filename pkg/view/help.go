package view

import (
	"bytes"
	"text/template"

	"github.com/sachaos/launchy/pkg/keymap"
)

const helpTemplate = `Press ESC or q to go back

 [::b]Key Bindings[-:-:-]

   [::u]General[-:-:-]

   Focus search field        : [yellow]{{ .FocusSearch }}[-:-:-]
   Submit search             : [yellow]Enter[-:-:-] in the search field
   Re-submit current search  : [yellow]{{ .Resubmit }}[-:-:-]
   Leave search field        : [yellow]ESC[-:-:-]
   Toggle header display     : [yellow]t[-:-:-]
   Toggle help view          : [yellow]?[-:-:-]
   Toggle log view (debug)   : [yellow]x[-:-:-]
   Quit                      : [yellow]q[-:-:-] or [yellow]Q[-:-:-]

   [::u]Table[-:-:-]

   Move to next row          : [yellow]j[-:-:-]
   Move to previous row      : [yellow]k[-:-:-]
   Page down                 : [yellow]Ctrl-F[-:-:-]
   Page up                   : [yellow]Ctrl-B[-:-:-]
   Go to first row           : [yellow]g[-:-:-]
   Go to last row            : [yellow]G[-:-:-]

   [::u]History[-:-:-]

   Toggle history            : [yellow]{{ .ToggleHistory }}[-:-:-]
   Go to older search        : [yellow]{{ .GoToPast }}[-:-:-]
   Go to newer search        : [yellow]{{ .GoToFuture }}[-:-:-]
   Restore selected search   : [yellow]{{ .Restore }}[-:-:-]
`

var helpTpl = template.Must(template.New("help").Parse(helpTemplate))

func HelpPage(m keymap.KeyMapping) string {
	value := struct {
		FocusSearch   string
		Resubmit      string
		ToggleHistory string
		GoToPast      string
		GoToFuture    string
		Restore       string
	}{
		FocusSearch:   m.FocusSearch.String(),
		Resubmit:      m.Resubmit.String(),
		ToggleHistory: m.ToggleHistory.String(),
		GoToPast:      m.HistoryGoToPast.String(),
		GoToFuture:    m.HistoryGoToFuture.String(),
		Restore:       m.HistoryRestore.String(),
	}

	var b bytes.Buffer

	_ = helpTpl.Execute(&b, value)

	return b.String()
}
