package services

import (
	"context"
	"fmt"

	"fleet-rental/pkg/types"
	"fleet-rental/pkg/utils"

	"github.com/xuri/excelize/v2"
)

const exportDateFmt = "2006-01-02"

var (
	bookingHeaders     = []interface{}{"ID", "Unit", "Family", "Site lead", "Site address", "Start", "End", "Planned end", "Status", "Total cost", "Notes"}
	maintenanceHeaders = []interface{}{"ID", "Date", "Unit", "Family", "Kind", "Technician", "Cost", "Notes"}
)

type ExportServiceInterface interface {
	ExportBookings(ctx context.Context, filter types.Filter) (*excelize.File, error)
	ExportMaintenance(ctx context.Context, filter types.Filter) (*excelize.File, error)
}

type ExportService struct {
	bookings    BookingServiceInterface
	maintenance MaintenanceServiceInterface
}

func NewExportService(bookings BookingServiceInterface, maintenance MaintenanceServiceInterface) ExportServiceInterface {
	return &ExportService{bookings: bookings, maintenance: maintenance}
}

// ExportBookings writes every booking matching filter, ignoring pagination.
func (s *ExportService) ExportBookings(ctx context.Context, filter types.Filter) (*excelize.File, error) {
	filter.WithPagination = false
	list, _, err := s.bookings.GetBookings(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(list))
	for _, b := range list {
		rows = append(rows, []interface{}{
			b.ID, b.UnitCode, b.UnitFamily, b.ProjectLead, b.SiteAddress,
			b.Start.Format(exportDateFmt),
			utils.FormatTimePtr(b.End, exportDateFmt),
			utils.FormatTimePtr(b.PlannedEnd, exportDateFmt),
			string(b.Status), b.TotalCost.InexactFloat64(), b.Notes,
		})
	}
	return buildWorkbook("Bookings", bookingHeaders, rows)
}

func (s *ExportService) ExportMaintenance(ctx context.Context, filter types.Filter) (*excelize.File, error) {
	filter.WithPagination = false
	list, _, err := s.maintenance.GetMaintenance(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(list))
	for _, m := range list {
		rows = append(rows, []interface{}{
			m.ID, m.Date.Format(exportDateFmt), m.UnitCode, m.UnitFamily,
			string(m.Kind), m.Technician, m.Cost.InexactFloat64(), m.Notes,
		})
	}
	return buildWorkbook("Maintenance", maintenanceHeaders, rows)
}

func buildWorkbook(sheet string, headers []interface{}, rows [][]interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, style); err != nil {
		return nil, err
	}

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetColWidth(sheet, "B", lastCol, 18)
	return f, nil
}
