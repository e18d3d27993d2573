package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func initialModel() model {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	mode := detectCapability(cwd)
	st := newFSStorage(mode, cwd)
	cfg := loadConfig(defaultConfigPath())

	m := model{
		cfg:               cfg,
		st:                st,
		watch:             newWatcher(),
		pipe:              newRenderPipeline(),
		selectedFileIndex: -1,
		splitWidth:        cfg.SplitWidth,
	}
	m.exp = exporter{st: st}
	return m
}

func (m model) Init() tea.Cmd {
	return m.watch.wait()
}

func main() {
	if os.Getenv("DIATERM_DEBUG") != "" {
		f, err := tea.LogToFile("diaterm.log", "debug")
		if err != nil {
			fmt.Fprintln(os.Stderr, "could not open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
