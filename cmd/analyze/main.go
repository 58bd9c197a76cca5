// Command analyze reads the transaction snapshot, categorizes every
// transaction by description keywords and prints per-category totals plus
// the most frequent uncategorized descriptions.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/ortiq01/financial-dashboard/internal/categorize"
	"github.com/ortiq01/financial-dashboard/internal/config"
	applog "github.com/ortiq01/financial-dashboard/internal/log"
	"github.com/ortiq01/financial-dashboard/internal/storage"
)

type categoryStats struct {
	count int
	total float64
}

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	topN := flag.Int("top", 20, "number of uncategorized descriptions to show")
	flag.Parse()

	cfg := config.Load()

	rules := categorize.Default()
	if cfg.CategoryRulesPath != "" {
		loaded, err := categorize.LoadFile(cfg.CategoryRulesPath)
		if err != nil {
			logger.Error("Failed to load category rules", "error", err, "path", cfg.CategoryRulesPath)
			os.Exit(1)
		}
		rules = loaded
	}

	snap := storage.NewSnapshotFile(cfg.SnapshotPath).Load(context.Background())
	if len(snap.Transactions) == 0 {
		fmt.Println("no transactions in snapshot")
		return
	}

	stats := make(map[string]*categoryStats)
	uncategorized := make(map[string]int)

	for _, tx := range snap.Transactions {
		desc := tx.Description()
		category := rules.Categorize(desc)

		st := stats[category]
		if st == nil {
			st = &categoryStats{}
			stats[category] = st
		}
		st.count++
		if amount, err := strconv.ParseFloat(tx.Amount(), 64); err == nil {
			st.total += amount
		}

		if category == rules.Fallback() && desc != "" {
			uncategorized[desc]++
		}
	}

	categories := make([]string, 0, len(stats))
	for name := range stats {
		categories = append(categories, name)
	}
	sort.Slice(categories, func(i, j int) bool {
		return stats[categories[i]].count > stats[categories[j]].count
	})

	fmt.Printf("%d transactions in %s\n\n", len(snap.Transactions), cfg.SnapshotPath)
	fmt.Println("Per category:")
	for _, name := range categories {
		st := stats[name]
		fmt.Printf("  %-20s %5d  %10.2f\n", name, st.count, st.total)
	}

	if len(uncategorized) > 0 {
		type descCount struct {
			desc  string
			count int
		}
		descs := make([]descCount, 0, len(uncategorized))
		for d, c := range uncategorized {
			descs = append(descs, descCount{d, c})
		}
		sort.Slice(descs, func(i, j int) bool {
			if descs[i].count != descs[j].count {
				return descs[i].count > descs[j].count
			}
			return descs[i].desc < descs[j].desc
		})

		fmt.Printf("\nTop uncategorized descriptions (max %d):\n", *topN)
		for i, dc := range descs {
			if i >= *topN {
				break
			}
			fmt.Printf("  %4dx  %s\n", dc.count, dc.desc)
		}
	}
}
