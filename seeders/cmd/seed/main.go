package main

import (
	"context"
	"log"
	"os"

	"fleet-rental/pkg/config"
	"fleet-rental/pkg/database/postgresql"
	"fleet-rental/seeders"

	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	runUsers := flags.Bool("users", false, "create the bootstrap admin user")
	runFleet := flags.Bool("fleet", false, "create demo units and sites")
	runAll := flags.BoolP("all", "a", false, "run every seeder (same as --users --fleet)")
	migrate := flags.Bool("migrate", true, "apply pending migrations first")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		log.Fatalf("❌ %v", err)
	}

	if !*runUsers && !*runFleet && !*runAll {
		log.Println("❌ no seeder selected")
		log.Println("")
		flags.PrintDefaults()
		log.Println("")
		log.Println("examples:")
		log.Println("  go run ./seeders/cmd/seed --users")
		log.Println("  go run ./seeders/cmd/seed --all")
		return
	}

	cfg := config.New()
	ctx := context.Background()

	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer dbPool.Close()

	if *migrate {
		if err := postgresql.Migrate(ctx, dbPool); err != nil {
			log.Fatalf("❌ migrate: %v", err)
		}
	}

	if *runAll || *runUsers {
		seeders.SeedUsers(dbPool, cfg)
	}
	if *runAll || *runFleet {
		seeders.SeedFleet(dbPool)
	}

	log.Println("✅ done")
}
