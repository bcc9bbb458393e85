package department

import (
	"fmt"

	"github.com/cmlabs-hris/wfh-web/internal/domain/department"
	"github.com/cmlabs-hris/wfh-web/internal/domain/schedule"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/validator"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	memberSheet  = "Members"
)

// writeWeekWorkbook renders a department week as two sheets: slot counts
// and a per-member location table.
func writeWeekWorkbook(d department.Department, people []schedule.Person, r schedule.Range) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(memberSheet); err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	// Summary: one row per (day, shift).
	grid := schedule.BuildGrid(schedule.Schedule{Team: people}, r.Start)
	week := r.Start.Format(validator.DateLayout) + " - " + r.End.Format(validator.DateLayout)
	if err := setRows(f, summarySheet, map[int][]any{
		1: {"Department", d.Name},
		2: {"Week", week},
		4: {"Date", "Day", "Shift", "Office", "Home"},
	}); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(summarySheet, "A4", "E4", header); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	row := 5
	for _, day := range grid.Days {
		for _, c := range day.Cells {
			if err := setRow(f, summarySheet, row, c.Date.Format(validator.DateLayout), c.Date.Weekday().String(), c.Shift.String(), c.InOffice, c.AtHome); err != nil {
				return nil, err
			}
			row++
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 14); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	// Members: one row per person, one column per slot.
	cols := []any{"Staff ID", "Name"}
	for _, date := range schedule.WeekDays(r.Start) {
		for _, shift := range schedule.Shifts {
			cols = append(cols, date.Format("Mon 02")+" "+shift.String())
		}
	}
	if err := setRow(f, memberSheet, 1, cols...); err != nil {
		return nil, err
	}
	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return nil, fmt.Errorf("header range: %w", err)
	}
	if err := f.SetCellStyle(memberSheet, "A1", last, header); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	for i, p := range people {
		values := []any{p.StaffID, p.Name}
		for _, date := range schedule.WeekDays(r.Start) {
			for _, shift := range schedule.Shifts {
				values = append(values, string(p.LocationOn(date, shift)))
			}
		}
		if err := setRow(f, memberSheet, i+2, values...); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(memberSheet, "B", "B", 24); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func setRows(f *excelize.File, sheet string, rows map[int][]any) error {
	for row, values := range rows {
		if err := setRow(f, sheet, row, values...); err != nil {
			return err
		}
	}
	return nil
}
