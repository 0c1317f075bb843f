package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/sortetech/recarga-sorte-backend/internal/config"
	mongorepo "github.com/sortetech/recarga-sorte-backend/internal/repositories/mongodb"
	"github.com/sortetech/recarga-sorte-backend/internal/utils"
	"github.com/sortetech/recarga-sorte-backend/pkg/mongodb"
)

func main() {
	entriesFile := flag.String("entries", "", "Path to the entries CSV file")
	rechargesFile := flag.String("recharges", "", "Path to the recharges CSV file")
	flag.Parse()

	if *entriesFile == "" && *rechargesFile == "" {
		log.Fatal("Provide -entries and/or -recharges CSV file paths")
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)
	entryRepo := mongorepo.NewEntryRepository(db)
	rechargeRepo := mongorepo.NewRechargeRepository(db)
	importer := utils.NewCSVImporter(entryRepo, rechargeRepo)

	ctx := context.Background()

	if *entriesFile != "" {
		result, err := importer.ImportEntries(ctx, *entriesFile)
		if err != nil {
			log.Fatalf("Entries import failed: %v", err)
		}
		log.Printf("Entries import: %d rows, %d created, %d errors", result.TotalRows, result.Created, len(result.Errors))
		for _, msg := range result.Errors {
			log.Printf("  %s", msg)
		}
	}

	if *rechargesFile != "" {
		result, err := importer.ImportRecharges(ctx, *rechargesFile)
		if err != nil {
			log.Fatalf("Recharges import failed: %v", err)
		}
		log.Printf("Recharges import: %d rows, %d created, %d errors", result.TotalRows, result.Created, len(result.Errors))
		for _, msg := range result.Errors {
			log.Printf("  %s", msg)
		}
	}
}
