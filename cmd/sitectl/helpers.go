package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jasonroy7dct/site/internal/config"
	"github.com/jasonroy7dct/site/internal/content"
	"github.com/jasonroy7dct/site/internal/journal"
	"github.com/jasonroy7dct/site/internal/kv"
)

// loadConfig returns the saved config or fatals.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// openJournal opens the configured slots. The caller closes them.
func openJournal() (kv.Slots, *journal.Store, *journal.Prefs) {
	cfg := loadConfig()
	slots, err := kv.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	return slots, journal.NewStore(slots), journal.NewPrefs(slots, kv.NewMemory(0))
}

// contentClient returns a client for the configured proxy.
func contentClient() *content.Client {
	cfg := loadConfig()
	return content.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutMs)*time.Millisecond)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
