package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"taskmanager/internal/app"
	"taskmanager/internal/config"
)

func main() {
	defaultPath := "config.yml"
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		defaultPath = env
	}
	configPath := flag.String("config", defaultPath, "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg)
	if err := application.Init(ctx); err != nil {
		log.Fatalf("initializing app: %v", err)
	}
	if err := application.Run(ctx); err != nil {
		log.Fatalf("running app: %v", err)
	}
}
