package services

import (
	"context"
	"fmt"

	"fleet-rental/internal/dto"
	"fleet-rental/internal/entities"
	"fleet-rental/internal/repositories"
	"fleet-rental/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/bradfitz/latlong"
	"github.com/jackc/pgx/v5"
)

type SiteServiceInterface interface {
	GetSites(ctx context.Context, filter types.Filter) ([]entities.Site, uint64, error)
	FindSite(ctx context.Context, id uint64) (*entities.Site, error)
	CreateSite(ctx context.Context, actor string, req dto.CreateSiteDTO) (*entities.Site, error)
	UpdateSite(ctx context.Context, actor string, id uint64, req dto.UpdateSiteDTO) (*entities.Site, error)
	ArchiveSite(ctx context.Context, actor string, id uint64) error
}

type SiteService struct {
	*BaseService
	siteRepo repositories.SiteRepositoryInterface
}

func NewSiteService(base *BaseService, siteRepo repositories.SiteRepositoryInterface) SiteServiceInterface {
	return &SiteService{BaseService: base, siteRepo: siteRepo}
}

// setCoordinates stores the pair and the IANA zone it falls in; both nil clears them.
func setCoordinates(site *entities.Site, lat, lng *float64) {
	if lat == nil || lng == nil {
		site.Latitude = null.Float64{}
		site.Longitude = null.Float64{}
		site.TimeZone = null.String{}
		return
	}
	site.Latitude = null.Float64From(*lat)
	site.Longitude = null.Float64From(*lng)
	if zone := latlong.LookupZoneName(*lat, *lng); zone != "" {
		site.TimeZone = null.StringFrom(zone)
	} else {
		site.TimeZone = null.String{}
	}
}

func (s *SiteService) GetSites(ctx context.Context, filter types.Filter) ([]entities.Site, uint64, error) {
	var sites []entities.Site
	var total uint64
	err := s.txManager.RunQuery(ctx, func(ctx context.Context) error {
		var err error
		sites, total, err = s.siteRepo.GetSites(ctx, filter)
		return err
	})
	return sites, total, err
}

func (s *SiteService) FindSite(ctx context.Context, id uint64) (*entities.Site, error) {
	var site *entities.Site
	err := s.txManager.RunQuery(ctx, func(ctx context.Context) error {
		var err error
		site, err = s.siteRepo.FindSite(ctx, nil, id)
		return err
	})
	return site, err
}

func (s *SiteService) CreateSite(ctx context.Context, actor string, req dto.CreateSiteDTO) (*entities.Site, error) {
	site := &entities.Site{
		ProjectLead: req.ProjectLead,
		Address:     req.Address,
		Status:      entities.SiteActive,
	}
	setCoordinates(site, req.Latitude, req.Longitude)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.siteRepo.CreateSite(ctx, tx, site); err != nil {
			return fmt.Errorf("create site: %w", err)
		}
		return s.audit(ctx, tx, actor, "site.create", fmt.Sprintf("Site #%d (%s) created", site.ID, site.Address))
	})
	if err != nil {
		return nil, err
	}
	return site, nil
}

func (s *SiteService) UpdateSite(ctx context.Context, actor string, id uint64, req dto.UpdateSiteDTO) (*entities.Site, error) {
	var site *entities.Site
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		site, err = s.siteRepo.FindSite(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("site %d: %w", id, err)
		}

		if req.ProjectLead.Valid {
			site.ProjectLead = req.ProjectLead.String
		}
		if req.Address.Valid {
			site.Address = req.Address.String
		}
		if req.Latitude != nil && req.Longitude != nil {
			setCoordinates(site, req.Latitude, req.Longitude)
		}
		if req.Status.Valid {
			site.Status = entities.SiteStatus(req.Status.String)
		}

		if err := s.siteRepo.UpdateSite(ctx, tx, site); err != nil {
			return err
		}
		return s.audit(ctx, tx, actor, "site.update", fmt.Sprintf("Site #%d updated", site.ID))
	})
	if err != nil {
		return nil, err
	}
	return site, nil
}

// ArchiveSite marks the site inactive; bookings keep referring to it.
func (s *SiteService) ArchiveSite(ctx context.Context, actor string, id uint64) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		site, err := s.siteRepo.FindSite(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("site %d: %w", id, err)
		}
		if site.Status == entities.SiteInactive {
			return nil
		}
		site.Status = entities.SiteInactive
		if err := s.siteRepo.UpdateSite(ctx, tx, site); err != nil {
			return err
		}
		return s.audit(ctx, tx, actor, "site.archive", fmt.Sprintf("Site #%d archived", site.ID))
	})
}
