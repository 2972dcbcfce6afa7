package services

import (
	"context"
	"testing"

	"fleet-rental/internal/dto"
	"fleet-rental/internal/entities"
	apperrors "fleet-rental/pkg/errors"
	"fleet-rental/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitService_CreateAndUpdate(t *testing.T) {
	f := newFixture(t)
	svc := NewUnitService(f.base, f.store)
	ctx := context.Background()

	unit, err := svc.CreateUnit(ctx, "admin", dto.CreateUnitDTO{
		Code: " E-201 ", Family: "Excavator", Serial: "SN-1", DailyRate: decimal.NewFromInt(450),
	})
	require.NoError(t, err)
	assert.Equal(t, "E-201", unit.Code)
	assert.Equal(t, "excavator", unit.Family)
	assert.Equal(t, entities.UnitAvailable, unit.Status)
	assert.Equal(t, entities.DefaultMaintenanceIntervalMonths, unit.MaintenanceIntervalMonths)

	updated, err := svc.UpdateUnit(ctx, "admin", unit.ID, dto.UpdateUnitDTO{
		Brand:                     null.StringFrom("Volvo"),
		DailyRate:                 decimal.NewNullDecimal(decimal.NewFromInt(480)),
		MaintenanceIntervalMonths: null.IntFrom(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "Volvo", updated.Brand)
	assert.Equal(t, "E-201", updated.Code)
	assert.True(t, updated.DailyRate.Equal(decimal.NewFromInt(480)))
	assert.Equal(t, 3, updated.MaintenanceIntervalMonths)

	found, err := svc.FindUnit(ctx, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, "Volvo", found.Brand)

	_, err = svc.UpdateUnit(ctx, "admin", 999, dto.UpdateUnitDTO{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	list, total, err := svc.GetUnits(ctx, types.Filter{})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.Len(t, list, 1)
	assert.Equal(t, []string{"unit.create", "unit.update"}, f.store.auditActions())
}

func TestSiteService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	svc := NewSiteService(f.base, f.store)
	ctx := context.Background()
	lat, lng := 48.8566, 2.3522

	site, err := svc.CreateSite(ctx, "admin", dto.CreateSiteDTO{
		ProjectLead: "Durand", Address: "Paris", Latitude: &lat, Longitude: &lng,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.SiteActive, site.Status)
	assert.Equal(t, null.StringFrom("Europe/Paris"), site.TimeZone)

	noCoords, err := svc.CreateSite(ctx, "admin", dto.CreateSiteDTO{ProjectLead: "Petit", Address: "Somewhere"})
	require.NoError(t, err)
	assert.False(t, noCoords.Latitude.Valid)
	assert.False(t, noCoords.TimeZone.Valid)

	updated, err := svc.UpdateSite(ctx, "admin", site.ID, dto.UpdateSiteDTO{ProjectLead: null.StringFrom("Bernard")})
	require.NoError(t, err)
	assert.Equal(t, "Bernard", updated.ProjectLead)
	assert.Equal(t, "Paris", updated.Address)
	assert.True(t, updated.Latitude.Valid, "coordinates are kept when not sent")

	require.NoError(t, svc.ArchiveSite(ctx, "admin", site.ID))
	archived, err := svc.FindSite(ctx, site.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.SiteInactive, archived.Status)
	require.NoError(t, svc.ArchiveSite(ctx, "admin", site.ID))

	assert.ErrorIs(t, svc.ArchiveSite(ctx, "admin", 999), apperrors.ErrNotFound)

	sites, total, err := svc.GetSites(ctx, types.Filter{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Len(t, sites, 2)
	assert.Equal(t, []string{"site.create", "site.create", "site.update", "site.archive"}, f.store.auditActions())
}

func TestAuditLogService_NewestFirst(t *testing.T) {
	f := newFixture(t)
	units := NewUnitService(f.base, f.store)
	ctx := context.Background()
	for _, code := range []string{"A", "B"} {
		_, err := units.CreateUnit(ctx, "admin", dto.CreateUnitDTO{Code: code, Family: "truck", Serial: code})
		require.NoError(t, err)
	}

	logs, err := NewAuditLogService(f.tx, f.store).GetLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Contains(t, logs[0].Description, "Unit B")
	assert.Equal(t, "admin", logs[0].Actor)
}
