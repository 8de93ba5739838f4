package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kvv7ma/bento-order-system/api"
	"github.com/kvv7ma/bento-order-system/bot"
	"github.com/kvv7ma/bento-order-system/config"
	"github.com/kvv7ma/bento-order-system/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.Telegram.Token == "" {
		fmt.Fprintln(os.Stderr, "TOKEN not set")
		os.Exit(1)
	}

	ctx := context.Background()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(ctx, cfg)
		return
	}

	if err := db.Init(ctx, cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	// Optional auto-migration for fresh databases. Set AUTO_MIGRATE=1 to enable.
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := applyMigrations(ctx, false); err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
	}

	client := api.New(cfg.API)
	b, err := bot.New(cfg, client)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bot:", err)
		os.Exit(1)
	}

	fmt.Println("Bot started.")
	b.Start()
}

func runMigrate(ctx context.Context, cfg *config.Config) {
	if err := db.Init(ctx, cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := applyMigrations(ctx, true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
