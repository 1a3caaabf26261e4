// Command site is the terminal rendition of the personal site: home, blog,
// podcast and projects, navigated with the same routes as the web build.
//
// Usage:
//
//	site [path]     Start on path, e.g. /blog/my-post or /podcast
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jasonroy7dct/site/internal/config"
	"github.com/jasonroy7dct/site/internal/content"
	"github.com/jasonroy7dct/site/internal/logging"
	"github.com/jasonroy7dct/site/internal/ui"
)

func main() {
	if err := logging.Init("site"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		logging.Warn("config unreadable, using defaults", "error", err)
		cfg = config.DefaultConfig()
		cfg.AutoPopulateFromEnv()
	}

	path := cfg.UI.StartPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	timeout := time.Duration(cfg.API.TimeoutMs) * time.Millisecond
	client := content.NewClient(cfg.API.BaseURL, timeout)

	app := ui.NewApp(ui.Options{
		Path:        path,
		DrawerBreak: cfg.UI.DrawerBreakCols,
		Load: func() tea.Cmd {
			return func() tea.Msg {
				return ui.ContentLoaded{Catalog: content.Load(ctx, client, content.LocalPosts())}
			}
		},
	})

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		logging.Error("program exited", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
