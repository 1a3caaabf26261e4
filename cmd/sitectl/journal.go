package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jasonroy7dct/site/internal/agent"
	"github.com/jasonroy7dct/site/internal/journal"
	"github.com/jasonroy7dct/site/internal/similarity"
	"github.com/jasonroy7dct/site/internal/ui/rumination"
)

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Parse(os.Args[1:])

	slots, store, prefs := openJournal()
	defer slots.Close()

	entries := store.Load()
	lastRun, _ := prefs.LastRun()
	k := journal.ComputeKPIs(entries, lastRun, time.Now())

	fmt.Printf("Entries:      %d / %d\n", k.Total, journal.MaxEntries)
	fmt.Printf("Top pattern:  %s\n", k.TopPattern)
	fmt.Printf("Last run:     %s\n", k.LastRun)
	fmt.Printf("Done today:   %d\n", k.DoneToday)

	counts := map[string]int{}
	pinned, done := 0, 0
	for _, e := range entries {
		counts[e.Pattern]++
		if e.Pinned {
			pinned++
		}
		if e.Done() {
			done++
		}
	}
	fmt.Printf("Pinned:       %d\n", pinned)
	fmt.Printf("Done:         %d\n", done)

	if len(counts) == 0 {
		return
	}
	fmt.Println("\nBy pattern:")
	for _, p := range agent.Patterns {
		if n := counts[string(p)]; n > 0 {
			fmt.Printf("  %-20s %d\n", p, n)
		}
	}
	if n := counts[journal.UnknownPattern]; n > 0 {
		fmt.Printf("  %-20s %d\n", journal.UnknownPattern, n)
	}
}

func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", rumination.DefaultExportFile, "Output file, - for stdout")
	fs.Parse(os.Args[1:])

	slots, store, _ := openJournal()
	defer slots.Close()

	if *out == "-" {
		if err := store.ExportJSON(os.Stdout); err != nil {
			exportFailed(err)
		}
		return
	}

	f, err := os.Create(*out)
	if err != nil {
		fail("create %s: %v", *out, err)
	}
	err = store.ExportJSON(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		exportFailed(err)
		return
	}
	fmt.Printf("Exported %d entries to %s\n", len(store.Load()), *out)
}

func exportFailed(err error) {
	if errors.Is(err, journal.ErrNothingToExport) {
		fmt.Fprintln(os.Stderr, "No entries to export.")
		return
	}
	fail("%v", err)
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	fs.Parse(os.Args[1:])
	if fs.NArg() != 1 {
		fail("usage: sitectl import <file>")
	}

	slots, store, _ := openJournal()
	defer slots.Close()

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fail("open %s: %v", fs.Arg(0), err)
	}
	defer f.Close()

	n, err := store.ImportJSON(f)
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("Imported %d.\n", n)
}

func runWipe() {
	fs := flag.NewFlagSet("wipe", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Confirm deleting every entry")
	fs.Parse(os.Args[1:])
	if !*yes {
		fail("wipe deletes all local history; rerun with -yes")
	}

	slots, store, _ := openJournal()
	defer slots.Close()

	if err := store.Wipe(); err != nil {
		fail("%v", err)
	}
	fmt.Println("Local history wiped.")
}

func runSimilar() {
	fs := flag.NewFlagSet("similar", flag.ExitOnError)
	k := fs.Int("k", 3, "How many entries to show")
	mode := fs.String("mode", "", "Tokenizer: mixed, zh or en (default: saved preference)")
	fs.Parse(os.Args[1:])

	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		fail("usage: sitectl similar [-k n] [-mode m] <text>")
	}

	slots, store, prefs := openJournal()
	defer slots.Close()

	m := prefs.SimMode()
	if *mode != "" {
		m = similarity.ParseMode(*mode)
	}

	mems := journal.Memories(text, store.Load(), m, *k)
	if len(mems) == 0 {
		fmt.Println("No similar entries.")
		return
	}
	fmt.Printf("Tokens (%s): %s\n\n", m, strings.Join(similarity.Tokenize(text, m), " "))
	for _, mem := range mems {
		fmt.Printf("  %.3f  %-18s %s\n", mem.Score, mem.Pattern, mem.Summary)
	}
}

func runTheme() {
	fs := flag.NewFlagSet("theme", flag.ExitOnError)
	reset := fs.Bool("reset", false, "Forget the saved theme")
	fs.Parse(os.Args[1:])

	slots, _, prefs := openJournal()
	defer slots.Close()

	switch {
	case *reset:
		prefs.ResetTheme()
		fmt.Println("Theme reset.")
		return
	case fs.NArg() == 2:
		t := prefs.SetTheme(fs.Arg(0), fs.Arg(1))
		fmt.Printf("Saved: primary %s · primary2 %s · accent %s\n", t.Primary, t.Primary2, t.Accent)
		return
	case fs.NArg() != 0:
		fail("usage: sitectl theme [primary accent | -reset]")
	}

	t, saved := prefs.Theme()
	source := "default"
	if saved {
		source = "saved"
	}
	fmt.Printf("Theme (%s): primary %s · primary2 %s · accent %s\n", source, t.Primary, t.Primary2, t.Accent)
}
