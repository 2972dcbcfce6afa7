package seeders

import (
	"context"
	"log"

	"fleet-rental/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedUsers creates the bootstrap admin account.
func SeedUsers(db *pgxpool.Pool, cfg *config.Config) {
	ctx := context.Background()
	log.Println("▶️  Seeding users...")

	if err := seedAdmin(ctx, db, cfg); err != nil {
		log.Fatalf("❌ seeding admin user: %v", err)
	}
	log.Println("✅ Users seeded")
}

// SeedFleet fills in demo units and sites. Rows that already exist are left alone.
func SeedFleet(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Seeding fleet...")

	if err := seedUnits(ctx, db); err != nil {
		log.Fatalf("❌ seeding units: %v", err)
	}
	if err := seedSites(ctx, db); err != nil {
		log.Fatalf("❌ seeding sites: %v", err)
	}
	log.Println("✅ Fleet seeded")
}
