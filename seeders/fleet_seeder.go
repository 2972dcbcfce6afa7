package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/bradfitz/latlong"
	"github.com/jackc/pgx/v5/pgxpool"
)

type seedUnit struct {
	code, family, category, brand, model, serial string
	dailyRate                                    int64
}

var demoUnits = []seedUnit{
	{"E-101", "excavator", "earthmoving", "Caterpillar", "320", "CAT0320K101", 450},
	{"E-102", "excavator", "earthmoving", "Komatsu", "PC210", "KMT0210L102", 420},
	{"E-103", "crane", "lifting", "Liebherr", "LTM 1060", "LBH1060M103", 900},
	{"E-104", "loader", "earthmoving", "Volvo", "L60H", "VLV060H104", 300},
}

type seedSite struct {
	lead, address string
	lat, lng      float64
}

var demoSites = []seedSite{
	{"Marie Laurent", "12 Rue de Rivoli, Paris", 48.8559, 2.3592},
	{"Jonas Weber", "Alexanderplatz 1, Berlin", 52.5219, 13.4132},
	{"Ana Costa", "Avenida da Liberdade 100, Lisbon", 38.7197, -9.1454},
}

func seedUnits(ctx context.Context, db *pgxpool.Pool) error {
	query := `
		INSERT INTO units (code, family, category, brand, model, serial, status, daily_rate, maintenance_interval_months)
		VALUES ($1, $2, $3, $4, $5, $6, 'available', $7, 6)
		ON CONFLICT (code) DO NOTHING`

	for _, u := range demoUnits {
		tag, err := db.Exec(ctx, query, u.code, u.family, u.category, u.brand, u.model, u.serial, u.dailyRate)
		if err != nil {
			return fmt.Errorf("insert unit %s: %w", u.code, err)
		}
		if tag.RowsAffected() == 0 {
			log.Printf("    - unit %s already exists, skipping", u.code)
			continue
		}
		log.Printf("  - unit %s", u.code)
	}
	return nil
}

func seedSites(ctx context.Context, db *pgxpool.Pool) error {
	for _, s := range demoSites {
		var exists bool
		if err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM sites WHERE address = $1)", s.address).Scan(&exists); err != nil {
			return fmt.Errorf("check site %q: %w", s.address, err)
		}
		if exists {
			log.Printf("    - site %q already exists, skipping", s.address)
			continue
		}

		var zone *string
		if name := latlong.LookupZoneName(s.lat, s.lng); name != "" {
			zone = &name
		}
		_, err := db.Exec(ctx, `
			INSERT INTO sites (project_lead, address, latitude, longitude, time_zone, status)
			VALUES ($1, $2, $3, $4, $5, 'active')`,
			s.lead, s.address, s.lat, s.lng, zone)
		if err != nil {
			return fmt.Errorf("insert site %q: %w", s.address, err)
		}
		log.Printf("  - site %q", s.address)
	}
	return nil
}
