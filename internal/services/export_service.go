package services

import (
	"fmt"

	"github.com/homescope/homescope/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportService renders property comparisons as xlsx workbooks
type ExportService struct {
	propertyService *PropertyService
}

func NewExportService(propertyService *PropertyService) *ExportService {
	return &ExportService{propertyService: propertyService}
}

const comparisonSheet = "Comparison"

// ComparisonWorkbook builds a side-by-side workbook for the selected
// properties, one column per property.
func (s *ExportService) ComparisonWorkbook(ids []string) (*excelize.File, error) {
	if len(ids) == 0 {
		return nil, &models.ValidationError{Field: "ids", Message: "at least one property id is required"}
	}

	properties, err := s.propertyService.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(properties) == 0 {
		return nil, &models.NotFoundError{Resource: "properties", Identifier: fmt.Sprintf("%v", ids)}
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(comparisonSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Field"},
		{"Address"},
		{"City"},
		{"State"},
		{"Price"},
		{"Beds"},
		{"Baths"},
		{"Sqft"},
		{"Price / Sqft"},
		{"Year Built"},
		{"Status"},
		{"Listed"},
	}

	for i, property := range properties {
		rows[0] = append(rows[0], fmt.Sprintf("Property %d", i+1))
		rows[1] = append(rows[1], property.Address)
		rows[2] = append(rows[2], property.City)
		rows[3] = append(rows[3], property.State)
		rows[4] = append(rows[4], property.Price)
		rows[5] = append(rows[5], property.Beds)
		rows[6] = append(rows[6], property.Baths)
		rows[7] = append(rows[7], property.Sqft)
		rows[8] = append(rows[8], fmt.Sprintf("%.0f", property.PricePerSqft()))
		rows[9] = append(rows[9], property.YearBuilt)
		rows[10] = append(rows[10], property.Status)
		rows[11] = append(rows[11], property.ListedAt.Format("2006-01-02"))
	}

	for rowIdx, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", rowIdx+1, err)
		}
		if err := f.SetSheetRow(comparisonSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", rowIdx+1, err)
		}
	}

	return f, nil
}
