package repositories

import (
	"context"
	"errors"
	"fmt"

	"fleet-rental/internal/entities"
	db "fleet-rental/internal/infrastructure/bd"
	apperrors "fleet-rental/pkg/errors"
	"fleet-rental/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const siteTable = "sites"
const siteFields = "id, project_lead, address, latitude, longitude, time_zone, status, created_at"

var siteFilterColumns = map[string]string{
	"status":       "status",
	"project_lead": "project_lead",
	"created_at":   "created_at",
}

type SiteRepositoryInterface interface {
	GetSites(ctx context.Context, filter types.Filter) ([]entities.Site, uint64, error)
	FindSite(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Site, error)
	CreateSite(ctx context.Context, tx pgx.Tx, site *entities.Site) error
	UpdateSite(ctx context.Context, tx pgx.Tx, site *entities.Site) error
}

type SiteRepository struct {
	storage *pgxpool.Pool
}

func NewSiteRepository(storage *pgxpool.Pool) SiteRepositoryInterface {
	return &SiteRepository{storage: storage}
}

func scanSite(row pgx.Row) (*entities.Site, error) {
	var s entities.Site
	err := row.Scan(&s.ID, &s.ProjectLead, &s.Address, &s.Latitude, &s.Longitude, &s.TimeZone, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SiteRepository) GetSites(ctx context.Context, filter types.Filter) ([]entities.Site, uint64, error) {
	search := []string{"project_lead", "address"}

	countQuery, countArgs, err := db.ApplyFilters(sq.Select("COUNT(*)").From(siteTable), filter, siteFilterColumns, search).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sites: %w", err)
	}

	query, args, err := db.ApplyListParams(sq.Select(siteFields).From(siteTable), filter, siteFilterColumns, search, "id ASC").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()

	sites := make([]entities.Site, 0)
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, 0, err
		}
		sites = append(sites, *s)
	}
	return sites, total, rows.Err()
}

func (r *SiteRepository) FindSite(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Site, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", siteFields, siteTable)
	return scanSite(pick(r.storage, tx).QueryRow(ctx, query, id))
}

func (r *SiteRepository) CreateSite(ctx context.Context, tx pgx.Tx, site *entities.Site) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_lead, address, latitude, longitude, time_zone, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`, siteTable)

	return pick(r.storage, tx).QueryRow(ctx, query,
		site.ProjectLead, site.Address, site.Latitude, site.Longitude, site.TimeZone, site.Status,
	).Scan(&site.ID, &site.CreatedAt)
}

func (r *SiteRepository) UpdateSite(ctx context.Context, tx pgx.Tx, site *entities.Site) error {
	query := fmt.Sprintf(`
		UPDATE %s SET project_lead = $2, address = $3, latitude = $4, longitude = $5, time_zone = $6, status = $7
		WHERE id = $1`, siteTable)

	tag, err := pick(r.storage, tx).Exec(ctx, query,
		site.ID, site.ProjectLead, site.Address, site.Latitude, site.Longitude, site.TimeZone, site.Status,
	)
	if err != nil {
		return fmt.Errorf("update site %d: %w", site.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
