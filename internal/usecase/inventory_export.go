package usecase

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/breska/backoffice/internal/domain"
)

// ExportXLSX renders the current inventory as a spreadsheet, one row per
// simple product and one per variant.
func (uc *StockUC) ExportXLSX(ctx context.Context) ([]byte, error) {
	products, err := uc.Products.ListWithVariants(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Inventory"
	f.SetSheetName("Sheet1", sheet)
	headers := []string{"Product", "Variant", "SKU", "Status", "Stock", "Low stock threshold"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	row := 2
	writeRow := func(values []any) error {
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		row++
		return nil
	}

	for _, p := range products {
		if !p.HasVariants() {
			if err := writeRow([]any{p.Name, "", p.SKU, string(p.Status), p.Stock, p.LowStock}); err != nil {
				return nil, err
			}
			continue
		}
		for _, v := range p.Variants {
			if err := writeRow([]any{p.Name, v.Name, v.SKU, string(p.Status), v.Stock, domain.DefaultLowStock}); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write inventory workbook: %w", err)
	}
	return buf.Bytes(), nil
}
