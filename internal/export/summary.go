// Package export writes derived tables as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"github.com/transitstats/mta-ridership/internal/logging"
	"github.com/transitstats/mta-ridership/internal/ridership"
)

// SummaryColumns are the header cells of an exported period summary.
var SummaryColumns = []string{"Year", "Weekday", "Weekend", "Sunday", "Total"}

// SummaryFrame lays the rows out as a dataframe, one row per year.
func SummaryFrame(rows []ridership.PeriodSummary) dataframe.DataFrame {
	cols := make([][]int, len(SummaryColumns))
	for _, r := range rows {
		vals := []int64{int64(r.Year), r.Weekday, r.Weekend, r.Sunday, r.Total}
		for i, v := range vals {
			cols[i] = append(cols[i], int(v))
		}
	}

	s := make([]series.Series, len(SummaryColumns))
	for i, name := range SummaryColumns {
		if cols[i] == nil {
			cols[i] = []int{}
		}
		s[i] = series.New(cols[i], series.Int, name)
	}
	return dataframe.New(s...)
}

// SheetName is the worksheet title for a mode; Excel caps titles at 31 characters.
func SheetName(mode ridership.Mode) string {
	name := mode.String()
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

// WriteSummaryXLSX writes the mode's period summary as a single-sheet workbook.
func WriteSummaryXLSX(w io.Writer, mode ridership.Mode, rows []ridership.PeriodSummary) (err error) {
	f := excelize.NewFile()
	defer logging.HandleDeferredError(&err, f.Close, nil, "closing workbook")

	sheet := SheetName(mode)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	df := SummaryFrame(rows)
	colNames := df.Names()
	for i, name := range colNames {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("error writing header %s: %w", name, err)
		}
	}

	for rowIdx := 0; rowIdx < df.Nrow(); rowIdx++ {
		for colIdx, colName := range colNames {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, df.Col(colName).Val(rowIdx)); err != nil {
				return fmt.Errorf("error writing cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}
