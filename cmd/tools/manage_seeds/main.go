package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sotkon/dre-radar/internal/config"
	"github.com/sotkon/dre-radar/internal/models"
	"github.com/sotkon/dre-radar/internal/seeds"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	tags := flag.String("tags", "", "comma-separated general tags (add)")
	titleTags := flag.String("title-tags", "", "comma-separated title tags (add)")
	district := flag.String("district", "", "district filter (add)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := seeds.Open(cfg.Data.SeedStorePath)
	if err != nil {
		log.Fatalf("Failed to open seed store: %v", err)
	}
	defer store.Close()

	switch flag.Arg(0) {
	case "", "list":
		listSeeds(store)
	case "add":
		addSeed(store, *tags, *titleTags, *district)
	case "show":
		showSeed(store, flag.Arg(1))
	default:
		log.Fatalf("Unknown command %q (want list, add or show)", flag.Arg(0))
	}
}

func listSeeds(store *seeds.Store) {
	list, err := store.Load()
	if err != nil {
		log.Fatalf("Failed to load seeds: %v", err)
	}
	if len(list) == 0 {
		fmt.Println("No seeds stored.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Code", "Name", "Tags", "Title Tags", "District", "Created"})
	for _, s := range list {
		t.AppendRow(table.Row{
			s.Code, s.Name,
			strings.Join(s.Tags, ", "),
			strings.Join(s.TitleTags, ", "),
			s.District, s.Created,
		})
	}
	t.Render()
}

func addSeed(store *seeds.Store, tags, titleTags, district string) {
	seed, err := seeds.New(splitCSV(tags), splitCSV(titleTags), district)
	if err != nil {
		log.Fatalf("Invalid seed: %v", err)
	}
	if err := store.Append(seed); err != nil {
		log.Fatalf("Failed to save seed: %v", err)
	}
	fmt.Printf("Created seed %s (%s)\n", seed.Code, seed.Name)
}

func showSeed(store *seeds.Store, code string) {
	if code == "" {
		log.Fatal("Usage: manage_seeds show <code>")
	}
	seed, ok, err := store.Find(code)
	if err != nil {
		log.Fatalf("Failed to load seeds: %v", err)
	}
	if !ok {
		log.Fatalf("Seed %s not found", strings.ToUpper(strings.TrimSpace(code)))
	}
	printSeed(seed)
}

func printSeed(s models.Seed) {
	fmt.Printf("Code:       %s\n", s.Code)
	fmt.Printf("Name:       %s\n", s.Name)
	fmt.Printf("Tags:       %s\n", strings.Join(s.Tags, ", "))
	fmt.Printf("Title tags: %s\n", strings.Join(s.TitleTags, ", "))
	fmt.Printf("District:   %s\n", s.District)
	fmt.Printf("Created:    %s\n", s.Created)
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
