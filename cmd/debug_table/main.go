package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"table-pack-maker/core/config"
	"table-pack-maker/core/observer"
	"table-pack-maker/core/reconcile"
	"table-pack-maker/feature/table"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debug_table <table url>")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	loader := table.NewLoader(cfg.Table)
	t, err := loader.Load(context.Background(), os.Args[1], observer.NewWriter(os.Stdout, "  "))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Header ===")
	fmt.Printf("header: %s\n", t.HeaderURL)
	fmt.Printf("data:   %s\n", t.DataURL)
	fmt.Printf("symbol: %q\n", t.Meta.Symbol)
	if t.Meta.HasLevelOrder {
		fmt.Printf("level_order: %v\n", t.Meta.LevelOrder)
	} else {
		fmt.Println("level_order: (none, natural sort)")
	}

	fmt.Println("\n=== Entries ===")
	fmt.Printf("raw: %d, distinct: %d, skipped: %d\n", t.RawCount, len(t.Charts), t.Skipped)

	counts := make(map[string]int)
	for _, c := range t.Charts {
		counts[c.Level]++
	}
	levels := make([]string, 0, len(counts))
	for l := range counts {
		levels = append(levels, l)
	}
	order := reconcile.NewLevelOrder(t.LevelOrder())
	sort.SliceStable(levels, func(i, j int) bool {
		return order.Compare(levels[i], levels[j]) < 0
	})

	fmt.Println("\n=== Levels ===")
	for _, l := range levels {
		fmt.Printf("%s%s: %d\n", t.Meta.Symbol, l, counts[l])
	}
}
