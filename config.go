package main

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sachaos/launchy/pkg/keymap"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

const defaultEndpoint = "https://spacex-production.up.railway.app/"

var (
	errIntervalTooSmall    = errors.New("interval too small")
	errInvalidConcurrency  = errors.New("concurrency must be at least 1")
	errUnsupportedEndpoint = errors.New("endpoint must be an http, https, ws or wss URL")
	errInvalidHeader       = errors.New(`header must look like "Key: Value"`)
)

type config struct {
	runtime runtimeConfig
	general general
	theme   theme
	keymap  keymap.KeyMapping
}

type runtimeConfig struct {
	searchText string
	interval   time.Duration
	once       bool
	help       bool
	version    bool
}

type general struct {
	endpoint     string
	headers      []header
	timeout      time.Duration
	concurrency  int
	locale       language.Tag
	serverFilter bool
	debug        bool
	noTitle      bool
	noColor      bool
}

type header struct {
	key   string
	value string
}

type theme struct {
	tview.Theme
}

func newFlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("launchy", pflag.ContinueOnError)

	// runtimeConfig
	flagSet.StringP("interval", "n", "0", "refresh the search every interval (0 disables)")
	flagSet.BoolP("once", "o", false, "print the launches once and exit")
	flagSet.BoolP("help", "h", false, "display this help and exit")
	flagSet.BoolP("version", "v", false, "output version information and exit")

	// general
	flagSet.StringP("endpoint", "e", defaultEndpoint, "GraphQL endpoint (http, https, ws or wss)")
	flagSet.StringArrayP("header", "H", nil, `extra request header "Key: Value"`)
	flagSet.Duration("timeout", 30*time.Second, "timeout of each request")
	flagSet.Int("concurrency", 4, "number of concurrent requests")
	flagSet.String("locale", "en", "locale used to sort mission names")
	flagSet.Bool("no-server-filter", false, "do not send the search text to the server")
	flagSet.BoolP("no-title", "t", false, "turn off header")
	flagSet.Bool("no-color", false, "disable colors in --once output")
	flagSet.Bool("debug", false, "")

	flagSet.SetInterspersed(true)

	return flagSet
}

//nolint:funlen,cyclop
func newConfig(v *viper.Viper, args []string) (*config, error) {
	flagSet := newFlagSet()

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}

	var conf config

	intervalStr, _ := flagSet.GetString("interval")

	interval, err := parseInterval(intervalStr)
	if err != nil {
		return nil, err
	}

	conf.runtime.interval = interval
	conf.runtime.once, _ = flagSet.GetBool("once")
	conf.runtime.help, _ = flagSet.GetBool("help")
	conf.runtime.version, _ = flagSet.GetBool("version")
	conf.runtime.searchText = strings.Join(flagSet.Args(), " ")

	bindings := map[string]string{
		"general.endpoint":    "endpoint",
		"general.timeout":     "timeout",
		"general.concurrency": "concurrency",
		"general.locale":      "locale",
		"general.debug":       "debug",
		"general.no_title":    "no-title",
		"general.no_color":    "no-color",
	}

	for key, name := range bindings {
		if err := v.BindPFlag(key, flagSet.Lookup(name)); err != nil {
			return nil, err
		}
	}

	v.SetDefault("general.server_filter", true)

	conf.general.endpoint = v.GetString("general.endpoint")
	conf.general.timeout = v.GetDuration("general.timeout")
	conf.general.concurrency = v.GetInt("general.concurrency")
	conf.general.debug = v.GetBool("general.debug")
	conf.general.noTitle = v.GetBool("general.no_title")
	conf.general.noColor = v.GetBool("general.no_color")

	conf.general.serverFilter = v.GetBool("general.server_filter")
	if ok, _ := flagSet.GetBool("no-server-filter"); ok {
		conf.general.serverFilter = false
	}

	headers := v.GetStringSlice("general.headers")
	if isFlagSet("header", flagSet) {
		headers, _ = flagSet.GetStringArray("header")
	}

	for _, h := range headers {
		parsed, err := parseHeader(h)
		if err != nil {
			return nil, err
		}

		conf.general.headers = append(conf.general.headers, parsed)
	}

	locale, err := language.Parse(v.GetString("general.locale"))
	if err != nil {
		return nil, fmt.Errorf("invalid locale: %w", err)
	}

	conf.general.locale = locale

	conf.theme.Theme = tview.Theme{
		PrimitiveBackgroundColor:    tcell.GetColor(v.GetString("color.background")),
		ContrastBackgroundColor:     tcell.GetColor(v.GetString("color.contrast_background")),
		MoreContrastBackgroundColor: tcell.GetColor(v.GetString("color.more_contrast_background")),
		BorderColor:                 tcell.GetColor(v.GetString("color.border")),
		TitleColor:                  tcell.GetColor(v.GetString("color.title")),
		GraphicsColor:               tcell.GetColor(v.GetString("color.graphics")),
		PrimaryTextColor:            tcell.GetColor(v.GetString("color.text")),
		SecondaryTextColor:          tcell.GetColor(v.GetString("color.secondary_text")),
		TertiaryTextColor:           tcell.GetColor(v.GetString("color.tertiary_text")),
		InverseTextColor:            tcell.GetColor(v.GetString("color.inverse_text")),
		ContrastSecondaryTextColor:  tcell.GetColor(v.GetString("color.contrast_secondary_text")),
	}

	conf.keymap.FocusSearch = getKeymapDefault(v, "keymap.focus_search",
		keymap.Keys{keymap.MustParse("/"): {}})
	conf.keymap.Resubmit = getKeymapDefault(v, "keymap.resubmit",
		keymap.Keys{keymap.MustParse("r"): {}})
	conf.keymap.ToggleHistory = getKeymapDefault(v, "keymap.toggle_history",
		keymap.Keys{keymap.MustParse("Shift-H"): {}})
	conf.keymap.HistoryGoToPast = getKeymapDefault(v, "keymap.history_go_to_past",
		keymap.Keys{keymap.MustParse("Shift-J"): {}})
	conf.keymap.HistoryGoToFuture = getKeymapDefault(v, "keymap.history_go_to_future",
		keymap.Keys{keymap.MustParse("Shift-K"): {}})
	conf.keymap.HistoryRestore = getKeymapDefault(v, "keymap.history_restore",
		keymap.Keys{keymap.MustParse("Shift-R"): {}})

	if conf.runtime.interval != 0 && conf.runtime.interval < time.Second {
		return &conf, errIntervalTooSmall
	}

	if conf.general.concurrency < 1 {
		return &conf, errInvalidConcurrency
	}

	u, err := url.Parse(conf.general.endpoint)
	if err != nil || u.Host == "" {
		return &conf, errUnsupportedEndpoint
	}

	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return &conf, errUnsupportedEndpoint
	}

	return &conf, nil
}

func parseInterval(intervalStr string) (time.Duration, error) {
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		intervalFloat, err := strconv.ParseFloat(intervalStr, 64)
		if err != nil {
			return 0, err
		}

		interval = time.Duration(intervalFloat * float64(time.Second))
	}

	return interval, nil
}

func parseHeader(s string) (header, error) {
	key, value, ok := strings.Cut(s, ":")
	key = strings.TrimSpace(key)

	if !ok || key == "" {
		return header{}, errInvalidHeader
	}

	return header{key: key, value: strings.TrimSpace(value)}, nil
}

func getKeymapDefault(v *viper.Viper, key string, d keymap.Keys) keymap.Keys {
	keys, err := getKeymap(v, key)
	if err != nil || keys == nil {
		return d
	}

	return keys
}

type cannotFindKeyError struct {
	key string
}

func (e cannotFindKeyError) Error() string {
	return fmt.Sprintf("could not find the key: %q", e.key)
}

func getKeymap(v *viper.Viper, key string) (keymap.Keys, error) {
	value := v.Get(key)
	if value == nil {
		return nil, cannotFindKeyError{key: key}
	}

	if k, err := cast.ToStringE(value); err == nil {
		stroke, err := keymap.Parse(k)
		if err != nil {
			return nil, err
		}

		return keymap.Keys{stroke: {}}, nil
	}

	if keys, err := cast.ToStringSliceE(value); err == nil {
		m := keymap.Keys{}

		for _, k := range keys {
			stroke, err := keymap.Parse(k)
			if err != nil {
				return nil, err
			}

			m[stroke] = struct{}{}
		}

		return m, nil
	}

	return nil, nil
}

func isFlagSet(str string, flagSet *pflag.FlagSet) bool {
	res := false
	flagSet.Visit(func(f *pflag.Flag) {
		if f.Name == str {
			res = true
		}
	})

	return res
}
