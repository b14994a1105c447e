package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/khoahotran/portfolio-admin/internal/bootstrap"
	"github.com/khoahotran/portfolio-admin/internal/config"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

func main() {
	email := flag.String("email", envOr("ADMIN_EMAIL", bootstrap.DefaultAdminEmail), "admin email")
	password := flag.String("password", envOr("ADMIN_PASSWORD", bootstrap.DefaultAdminPassword), "admin password")
	reset := flag.Bool("reset", false, "replace the password of an existing admin")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	if cfg.DB.Driver == config.DriverMemory {
		log.Fatal("the memory driver seeds itself on server start; nothing to do")
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stores, err := bootstrap.OpenStores(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("cannot open store: %v", err)
	}
	defer stores.Close()

	result, err := bootstrap.EnsureAdmin(ctx, stores.Users, *email, *password, *reset, appLogger)
	if err != nil {
		log.Fatalf("cannot seed admin: %v", err)
	}
	fmt.Printf("admin '%s': %s\n", *email, result)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
