// Command smedit edits SevenMark files in the terminal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/smedit"
	"github.com/iw2rmb/smedit/engine"
	"github.com/iw2rmb/smedit/internal/config"
	"github.com/iw2rmb/smedit/session"
)

func main() {
	cfgPath := flag.String("config", "", "config file (.toml or .yaml)")
	logPath := flag.String("log", "", "write JSON logs to this file")
	version := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *version {
		fmt.Println(smedit.Describe("smedit"))
		return
	}
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: smedit [-config file] [-log file] file...")
		os.Exit(2)
	}

	log := slog.New(slog.DiscardHandler)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		log = slog.New(slog.NewJSONHandler(f, nil))
	}

	cfg, err := config.Load(*cfgPath)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	reg := session.NewRegistry(engine.NewCached(cfg.EngineCommand()), session.Options{
		HistoryLimit:      cfg.HistoryLimit,
		TableHistoryLimit: cfg.TableHistoryLimit,
		Logger:            log,
	})

	a, err := newApp(reg, cfg, log, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
