package trafficgen

import (
	"github.com/xuri/excelize/v2"

	"gotraffic/internal/errors"
)

// WriteXLSX writes the three tables as sheets of a single workbook.
func WriteXLSX(path string, t Tables) error {
	f := excelize.NewFile()

	sheets := []struct {
		name    string
		headers []string
		rows    [][]string
	}{
		{"orders", orderHeaders, nil},
		{"spots", spotHeaders, nil},
		{"inventory", inventoryHeaders, nil},
	}

	for _, o := range t.Orders {
		sheets[0].rows = append(sheets[0].rows, orderRow(o))
	}
	for _, s := range t.Spots {
		sheets[1].rows = append(sheets[1].rows, spotRow(s))
	}
	for _, inv := range t.Inventory {
		sheets[2].rows = append(sheets[2].rows, inventoryRow(inv))
	}

	for i, sheet := range sheets {
		idx, err := f.NewSheet(sheet.name)
		if err != nil {
			return errors.Wrapf(err, "create sheet %s", sheet.name)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}

		for c, h := range sheet.headers {
			cell, _ := excelize.CoordinatesToCellName(c+1, 1)
			if err := f.SetCellValue(sheet.name, cell, h); err != nil {
				return errors.Wrapf(err, "write header to %s", sheet.name)
			}
		}
		for r, row := range sheet.rows {
			for c, v := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				if err := f.SetCellValue(sheet.name, cell, v); err != nil {
					return errors.Wrapf(err, "write row to %s", sheet.name)
				}
			}
		}
	}

	// Drop the default sheet so only the three tables remain.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.Wrap(err, "remove default sheet")
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}
