package validation

import (
	"reflect"

	"fleet-rental/internal/entities"

	"github.com/go-playground/validator/v10"
)

func registerRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"booking_status":   isBookingStatus,
		"maintenance_kind": isMaintenanceKind,
		"fault_severity":   isFaultSeverity,
		"unit_status":      isUnitStatus,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	// runs on nil pointers too, a missing latitude is half of the check
	return v.RegisterValidation("coordinates", validateCoordinatesPair, true)
}

// isBookingStatus accepts only the statuses a booking can be closed with.
func isBookingStatus(fl validator.FieldLevel) bool {
	return entities.BookingStatus(fl.Field().String()).IsTerminal()
}

func isMaintenanceKind(fl validator.FieldLevel) bool {
	return entities.NormalizeMaintenanceKind(fl.Field().String()).IsValid()
}

func isFaultSeverity(fl validator.FieldLevel) bool {
	return entities.FaultSeverity(fl.Field().String()).IsValid()
}

func isUnitStatus(fl validator.FieldLevel) bool {
	return entities.UnitStatus(fl.Field().String()).IsValid()
}

// validateCoordinatesPair is placed on Latitude: latitude and longitude are
// either both present or both absent.
func validateCoordinatesPair(fl validator.FieldLevel) bool {
	lon := fl.Parent().FieldByName("Longitude")
	if !lon.IsValid() {
		return true
	}
	return present(fl.Field()) == present(lon)
}

func present(field reflect.Value) bool {
	switch field.Kind() {
	case reflect.Invalid:
		return false
	case reflect.Ptr, reflect.Interface:
		return !field.IsNil()
	case reflect.Struct:
		valid := field.FieldByName("Valid")
		return valid.IsValid() && valid.Bool()
	}
	return true
}
