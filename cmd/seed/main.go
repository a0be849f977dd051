// File: cmd/seed/main.go
// Seeds the catalog with a few starter products. Safe to re-run: it does
// nothing when products already exist.
package main

import (
	"context"
	"flag"
	"log"

	"telegram-stars-store/internal/config"
	"telegram-stars-store/internal/domain/model"
	pg "telegram-stars-store/internal/infra/db/postgres"
)

func main() {
	ctx := context.Background()

	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 2)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()
	if err := pg.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("schema: %v", err)
	}

	repo := pg.NewProductRepo(pool)
	existing, err := repo.ListAll(ctx)
	if err != nil {
		log.Fatalf("list products: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("catalog already has %d products, nothing to do", len(existing))
		return
	}

	seeds := []struct {
		title       string
		description string
		amount      int64
		days        int
	}{
		{"Premium · 1 month", "Full access for 30 days", 100, 30},
		{"Premium · 3 months", "Full access for 90 days", 250, 90},
		{"Premium · 1 year", "Full access for 365 days", 800, 365},
	}
	for _, s := range seeds {
		p, err := model.NewProduct(s.title, s.description, s.amount, cfg.Payment.Currency, s.days)
		if err != nil {
			log.Fatalf("build product %q: %v", s.title, err)
		}
		if err := repo.Save(ctx, p); err != nil {
			log.Fatalf("save product %q: %v", s.title, err)
		}
		log.Printf("seeded product #%d %q (%d %s, %d days)", p.ID, p.Title, p.Amount, p.Currency, p.DurationDays)
	}
}
