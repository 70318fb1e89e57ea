package main

import (
	"flag"
	"log"
	"os"

	"PriceBoard/pkg/config"
	"PriceBoard/pkg/server"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s db=%s feed=%s", cfg.Environment, cfg.Database.Path, cfg.Ingest.CSVPath)

	app, err := server.New(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
