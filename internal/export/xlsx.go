package export

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const clientSheet = "Clients"

var xlsxHeader = []interface{}{
	"ID", "Name", "Industry", "Address", "Latitude", "Longitude", "Revenue", "Notes",
}

func writeXLSX(w io.Writer, data Data) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(clientSheet); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(clientSheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", xlsxHeader); err != nil {
		return err
	}
	for i, c := range data.Clients {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			c.ID, c.Name, c.Industry, c.Address, c.Latitude, c.Longitude, c.Revenue, c.Notes,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	f.DeleteSheet("Sheet1")
	index, err := f.GetSheetIndex(clientSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	return f.Write(w)
}
