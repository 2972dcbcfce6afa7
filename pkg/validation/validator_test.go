package validation

import (
	"testing"

	"fleet-rental/internal/dto"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failedTags(t *testing.T, err error) []string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	tags := make([]string, 0, len(verrs))
	for _, e := range verrs {
		tags = append(tags, e.Tag())
	}
	return tags
}

func TestValidator_BookingStatus(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(dto.UpdateBookingStatusDTO{Status: "completed"}))
	assert.NoError(t, v.Validate(dto.UpdateBookingStatusDTO{Status: "cancelled"}))

	err := v.Validate(dto.UpdateBookingStatusDTO{Status: "ongoing"})
	assert.Equal(t, []string{"booking_status"}, failedTags(t, err))
}

func TestValidator_MaintenanceKindAndSeverity(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(dto.CreateMaintenanceDTO{UnitID: 1, Kind: "Part Replacement"}))
	err := v.Validate(dto.CreateMaintenanceDTO{UnitID: 1, Kind: "paint job"})
	assert.Equal(t, []string{"maintenance_kind"}, failedTags(t, err))

	assert.NoError(t, v.Validate(dto.CreateFaultDTO{UnitID: 1, Description: "hydraulic leak", Severity: "critical"}))
	err = v.Validate(dto.CreateFaultDTO{UnitID: 1, Description: "hydraulic leak", Severity: "severe"})
	assert.Equal(t, []string{"fault_severity"}, failedTags(t, err))
}

func TestValidator_Coordinates(t *testing.T) {
	v := New()
	lat, lon := 43.6, 3.88

	assert.NoError(t, v.Validate(dto.CreateSiteDTO{ProjectLead: "Martin", Address: "Montpellier"}))
	assert.NoError(t, v.Validate(dto.CreateSiteDTO{ProjectLead: "Martin", Address: "Montpellier", Latitude: &lat, Longitude: &lon}))

	err := v.Validate(dto.CreateSiteDTO{ProjectLead: "Martin", Address: "Montpellier", Latitude: &lat})
	assert.Equal(t, []string{"coordinates"}, failedTags(t, err))

	err = v.Validate(dto.CreateSiteDTO{ProjectLead: "Martin", Address: "Montpellier", Longitude: &lon})
	assert.Equal(t, []string{"coordinates"}, failedTags(t, err))
}

func TestValidator_NullTypes(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(dto.UpdateSiteDTO{}))
	assert.NoError(t, v.Validate(dto.UpdateSiteDTO{Status: null.StringFrom("inactive")}))

	err := v.Validate(dto.UpdateSiteDTO{Status: null.StringFrom("closed")})
	assert.Equal(t, []string{"oneof"}, failedTags(t, err))
}
