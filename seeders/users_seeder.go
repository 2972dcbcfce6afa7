package seeders

import (
	"context"
	"fmt"
	"log"

	"fleet-rental/internal/entities"
	"fleet-rental/internal/repositories"
	"fleet-rental/pkg/config"
	"fleet-rental/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func seedAdmin(ctx context.Context, db *pgxpool.Pool, cfg *config.Config) error {
	username := cfg.Seed.AdminUsername
	log.Printf("  - admin user %q", username)

	hash, err := utils.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	users := repositories.NewUserRepository(db)
	return repositories.WithTx(ctx, db, func(tx pgx.Tx) error {
		user := &entities.User{
			Username:     username,
			PasswordHash: hash,
			Role:         entities.RoleAdmin,
		}
		if err := users.UpsertUser(ctx, tx, user); err != nil {
			return fmt.Errorf("upsert %s: %w", username, err)
		}
		return nil
	})
}
