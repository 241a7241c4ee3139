package keymap

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

type KeyStroke struct {
	Key     tcell.Key
	Rune    rune
	ModMask tcell.ModMask
}

// FromEvent returns the key stroke of a key event.
func FromEvent(event *tcell.EventKey) KeyStroke {
	return KeyStroke{
		Key:     event.Key(),
		Rune:    event.Rune(),
		ModMask: event.Modifiers(),
	}
}

type Keys map[KeyStroke]struct{}

func (k Keys) Has(stroke KeyStroke) bool {
	_, ok := k[stroke]
	return ok
}

func (k Keys) String() string {
	str := make([]string, 0, len(k))
	for stroke := range k {
		str = append(str, Format(stroke))
	}

	sort.Strings(str)

	return strings.Join(str, ", ")
}

type KeyMapping struct {
	FocusSearch       Keys
	Resubmit          Keys
	ToggleHistory     Keys
	HistoryGoToPast   Keys
	HistoryGoToFuture Keys
	HistoryRestore    Keys
}

type parseKeyStrokeError struct {
	key string
}

func (e parseKeyStrokeError) Error() string {
	return fmt.Sprintf("cannot parse key: %q", e.key)
}

// namedKeys maps tcell key names such as "Up" or "F5" back to their keys.
var namedKeys = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[name] = k
	}

	return m
}()

var modifiers = []struct {
	prefix string
	mask   tcell.ModMask
}{
	{"Ctrl-", tcell.ModCtrl},
	{"Alt-", tcell.ModAlt},
	{"Shift-", tcell.ModShift},
}

// Parse parses a string describing a key, such as "Shift-J" or "Ctrl-Up".
// Shift on a printable key yields the upper case rune without a modifier.
func Parse(key string) (KeyStroke, error) {
	name := key

	var mod tcell.ModMask
	for _, m := range modifiers {
		if strings.HasPrefix(name, m.prefix) {
			mod |= m.mask
			name = name[len(m.prefix):]
		}
	}

	if k, ok := namedKeys[name]; ok {
		return KeyStroke{Key: k, ModMask: mod}, nil
	}

	if name == "SPACE" {
		name = " "
	}

	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || size != len(name) || r == utf8.RuneError {
		return KeyStroke{}, parseKeyStrokeError{key: key}
	}

	if mod&tcell.ModShift != 0 {
		r = unicode.ToUpper(r)
	} else {
		r = unicode.ToLower(r)
	}

	return KeyStroke{Key: tcell.KeyRune, Rune: r, ModMask: mod &^ tcell.ModShift}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(key string) KeyStroke {
	stroke, err := Parse(key)
	if err != nil {
		panic(err)
	}

	return stroke
}

func Format(stroke KeyStroke) string {
	var b strings.Builder
	if stroke.ModMask&tcell.ModCtrl != 0 {
		b.WriteString("Ctrl-")
	}

	if stroke.ModMask&tcell.ModAlt != 0 {
		b.WriteString("Alt-")
	}

	if stroke.ModMask&tcell.ModShift != 0 {
		b.WriteString("Shift-")
	}

	if stroke.Key == tcell.KeyRune {
		if stroke.Rune == ' ' {
			b.WriteString("SPACE")
		} else {
			b.WriteString(string(stroke.Rune))
		}
	} else {
		b.WriteString(tcell.KeyNames[stroke.Key])
	}

	return b.String()
}
