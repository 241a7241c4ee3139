package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/rivo/tview"
	"github.com/sachaos/launchy/pkg/graphql"
	"github.com/sachaos/launchy/pkg/launch"
	"github.com/sachaos/launchy/pkg/view"
	"github.com/spf13/viper"
	"github.com/tcnksm/go-latest"
	"go.uber.org/zap"
)

var version = "unset"

func main() {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigName("config")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, "launchy"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	conf, err := newConfig(v, os.Args[1:])

	if conf != nil && conf.runtime.help {
		help()
		os.Exit(0)
	}

	if conf != nil && conf.runtime.version {
		printVersion()
		os.Exit(0)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	tview.Styles = conf.theme.Theme

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if conf.runtime.once {
		err = runOnce(ctx, conf)
	} else {
		err = runTUI(ctx, conf)
	}

	if err != nil {
		stop()
		os.Exit(1)
	}
}

func runOnce(ctx context.Context, conf *config) error {
	logger := newLogger(conf.general.debug, os.Stderr)
	defer func() {
		_ = logger.Sync()
	}()

	p := newPrinter(os.Stdout, terminalWidth(), conf.general.noColor)
	sorter := launch.NewSorter(conf.general.locale)

	return printOnce(ctx, newClient(conf, logger), sorter, conf.runtime.searchText, conf.general.timeout, p, os.Stderr, logger)
}

func runTUI(ctx context.Context, conf *config) error {
	refresh := "off"
	if conf.runtime.interval > 0 {
		refresh = conf.runtime.interval.String()
	}

	vw := view.NewView(conf.general.endpoint, refresh, view.HelpPage(conf.keymap))
	logger := newLogger(conf.general.debug, vw.LogWriter())

	l := NewLaunchy(conf, newClient(conf, logger), vw, logger)
	if err := l.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	return nil
}

func newClient(conf *config, logger *zap.Logger) *launch.Client {
	opts := []graphql.ClientOption{graphql.WithLogger(logger)}
	for _, h := range conf.general.headers {
		opts = append(opts, graphql.WithHeader(h.key, h.value))
	}

	return launch.NewClient(
		graphql.NewClient(conf.general.endpoint, opts...),
		launch.WithServerFilter(conf.general.serverFilter),
		launch.WithTimeout(conf.general.timeout),
		launch.WithLogger(logger),
	)
}

func help() {
	fmt.Println("Usage:")
	fmt.Println(" launchy [options] [search text]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Print(newFlagSet().FlagUsages())
	fmt.Println()
	fmt.Printf("Config file: %s\n", filepath.Join(xdg.ConfigHome, "launchy", "config.toml"))
}

func printVersion() {
	fmt.Printf("launchy version: %s\n", version)

	res, err := latest.Check(&latest.GithubTag{
		Owner:      "sachaos",
		Repository: "launchy",
	}, version)
	if err != nil {
		return
	}

	if res.Outdated {
		fmt.Printf("%s is not latest, you should upgrade to %s\n", version, res.Current)
	}
}
