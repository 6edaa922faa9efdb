package main

import (
	"context"

	"github.com/mytheresa/product-catalog/config"
	"github.com/mytheresa/product-catalog/database"
	"github.com/mytheresa/product-catalog/seed"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := cfg.NewLogger()

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	category, product, err := seed.Populate(context.Background(), db, seed.DefaultFixture)
	if err != nil {
		log.WithError(err).Fatal("Seeding failed, nothing was written")
	}

	log.WithFields(logrus.Fields{
		"category_id": category.ID,
		"product_id":  product.ID,
		"vendor":      product.Vendor,
	}).Info("Catalog seeded")
}
