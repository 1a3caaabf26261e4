package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jasonroy7dct/site/internal/content"
	"github.com/jasonroy7dct/site/internal/route"
)

func runPosts() {
	fs := flag.NewFlagSet("posts", flag.ExitOnError)
	local := fs.Bool("local", false, "Only the bundled posts, skip the proxy")
	fs.Parse(os.Args[1:])

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var cat *content.Catalog
	if *local {
		cat = content.NewCatalog(content.LocalPosts(), nil)
	} else {
		cat = content.Load(ctx, contentClient(), content.LocalPosts())
	}

	groups := cat.ByYear()
	if len(groups) == 0 {
		fmt.Println("No posts yet.")
		return
	}
	for _, g := range groups {
		fmt.Printf("%s\n", g.Year)
		for _, p := range g.Posts {
			fmt.Printf("  %-14s %-8s %-50s %s\n", p.Date, p.Source, p.DisplayTitle(), route.Intent{Page: route.Post, ID: p.ID}.Path())
		}
	}
}

func runEpisodes() {
	fs := flag.NewFlagSet("episodes", flag.ExitOnError)
	fs.Parse(os.Args[1:])

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	episodes := contentClient().FetchEpisodes(ctx)
	if len(episodes) == 0 {
		fmt.Println("No episodes yet.")
		return
	}
	for _, e := range episodes {
		num := "   "
		if e.Number != nil {
			num = fmt.Sprintf("EP%d", *e.Number)
		}
		fmt.Printf("  %-5s %-40s %s  %s\n", num, e.Title, e.Meta(), route.Intent{Page: route.Episode, ID: e.ID}.Path())
	}
}
