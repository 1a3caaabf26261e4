// Command sitectl is the maintenance CLI for the site and the local
// Rumination Breaker journal.
//
// Usage:
//
//	sitectl                      Show help
//	sitectl stats                Journal KPIs and pattern counts
//	sitectl export [-o file]     Write the journal as JSON
//	sitectl import <file>        Merge a JSON export into the journal
//	sitectl wipe -yes            Delete every journal entry
//	sitectl similar <text>       Past entries most similar to text
//	sitectl theme [primary accent | -reset]
//	sitectl posts                Blog posts, newest first
//	sitectl episodes             Podcast episodes
package main

import (
	"fmt"
	"os"
)

const usage = `sitectl - site and journal maintenance CLI

Usage:
  sitectl <command> [flags]

Commands:
  stats       Journal KPIs and pattern counts
  export      Write the journal as JSON (default rumination_history.json)
  import      Merge a JSON export into the journal
  wipe        Delete every journal entry (requires -yes)
  similar     Past entries most similar to the given text
  theme       Show, set or reset the journal theme
  posts       List blog posts from the proxy and the local set
  episodes    List podcast episodes from the proxy

Environment:
  SITE_API_BASE   Proxy functions base URL
  SITE_STORAGE    Journal backend: sqlite, badger or memory
  SITE_DB         Journal database path

Run 'sitectl <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	os.Args = os.Args[1:]

	switch cmd {
	case "stats":
		runStats()
	case "export":
		runExport()
	case "import":
		runImport()
	case "wipe":
		runWipe()
	case "similar":
		runSimilar()
	case "theme":
		runTheme()
	case "posts":
		runPosts()
	case "episodes":
		runEpisodes()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "sitectl: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
