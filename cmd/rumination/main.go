// Command rumination is the terminal Rumination Breaker journal. Entries
// are kept in the configured local store; analysis goes to the rb_agent
// endpoint of siteproxy.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jasonroy7dct/site/internal/agent"
	"github.com/jasonroy7dct/site/internal/config"
	"github.com/jasonroy7dct/site/internal/journal"
	"github.com/jasonroy7dct/site/internal/kv"
	"github.com/jasonroy7dct/site/internal/logging"
	"github.com/jasonroy7dct/site/internal/ui/rumination"
)

func main() {
	endpoint := flag.String("endpoint", "", "agent endpoint (default <api base>/rb_agent)")
	exportPath := flag.String("file", rumination.DefaultExportFile, "export/import file")
	flag.Parse()

	if err := logging.Init("rumination"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		logging.Warn("config unreadable, using defaults", "error", err)
		cfg = config.DefaultConfig()
		cfg.AutoPopulateFromEnv()
	}

	local, err := kv.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer local.Close()

	url := *endpoint
	if url == "" {
		url = strings.TrimRight(cfg.API.BaseURL, "/") + "/rb_agent"
	}

	// The draft lives as long as the process.
	session := kv.NewMemory(0)

	model := rumination.New(rumination.Options{
		Store:      journal.NewStore(local),
		Prefs:      journal.NewPrefs(local, session),
		Analyzer:   agent.NewClient(url),
		ExportPath: *exportPath,
	})

	logging.Info("rumination starting", "backend", cfg.Storage.Backend, "endpoint", url)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		logging.Error("program exited", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
