package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"foodcourt/internal/config"
	"foodcourt/internal/db"
	"foodcourt/internal/importer"
	menurepo "foodcourt/internal/repository/menu"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to menu CSV (item, price_cents, image columns)")
	flag.Parse()

	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	if filePath == "" {
		flag.Usage()
		logger.Fatal("missing -file")
	}

	cfg := config.FromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	repo := menurepo.NewPostgres(pool, logger)
	imp := importer.NewCSVImporter(f, repo)
	n, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import: %v (imported %d before failure)", err, n)
	}

	logger.Printf("imported %d menu items", n)
}
