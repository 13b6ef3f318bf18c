package export

import (
	"fmt"
	"io"
	"time"

	"shareit/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Bookings"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	timeLayout  = "02.01.2006 15:04"
)

var headers = []string{"ID", "Item", "Booker", "Start", "End", "Status"}

// WriteBookings renders bookings as a single-sheet workbook into w.
// Times are written in loc.
func WriteBookings(w io.Writer, title string, bookings []*models.Booking, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("error removing default sheet: %w", err)
	}

	_ = f.SetCellValue(SheetName, "A1", title)
	_ = f.MergeCell(SheetName, "A1", "F1")
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(SheetName, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(SheetName, cell, header)
		_ = f.SetCellStyle(SheetName, cell, cell, headerStyle)
	}

	styles := make(map[models.BookingStatus]int)
	for status, color := range statusColors {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("error creating style: %w", err)
		}
		styles[status] = id
	}

	for i, booking := range bookings {
		row := i + 3
		values := []interface{}{
			booking.ID,
			booking.ItemName,
			booking.BookerName,
			booking.Start.In(loc).Format(timeLayout),
			booking.End.In(loc).Format(timeLayout),
			string(booking.Status),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(SheetName, cell, value)
		}
		if style, ok := styles[booking.Status]; ok {
			cell, _ := excelize.CoordinatesToCellName(len(values), row)
			_ = f.SetCellStyle(SheetName, cell, cell, style)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 8)
	_ = f.SetColWidth(SheetName, "B", "C", 25)
	_ = f.SetColWidth(SheetName, "D", "F", 18)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

var statusColors = map[models.BookingStatus]string{
	models.StatusWaiting:  "#FFF2CC",
	models.StatusApproved: "#E2EFDA",
	models.StatusRejected: "#F8CBAD",
}
