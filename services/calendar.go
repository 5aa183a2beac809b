package services

import (
	"context"
	"fmt"
	"image/color"
	"time"
)

// Canvas is the drawing surface the calendar renders onto. Implementations
// own pixels, fonts and encoding; the service only issues primitives.
type Canvas interface {
	Rectangle(x1, y1, x2, y2 int, fill, outline color.RGBA, width int) error
	Text(x, y int, text string, fontSize int) error
}

// Calendar layout. 7 columns x 6 rows covers any month, Monday first.
const (
	calCellSize    = 80
	calPadding     = 40
	calTitleHeight = 80
	calCols        = 7
	calRows        = 6
)

var (
	calSignedFill   = color.RGBA{R: 112, G: 196, B: 112, A: 255}
	calUnsignedFill = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	calOutline      = color.RGBA{A: 255}
)

// CalendarSize returns the canvas dimensions RenderCalendar draws into.
func CalendarSize() (width, height int) {
	return calCellSize*calCols + calPadding*2,
		calCellSize*calRows + calPadding*2 + calTitleHeight
}

// RenderCalendar draws the month grid for uid onto canvas, coloring each day
// by SignLog membership. The log is the source of truth here, not the
// summary, since the summary does not enumerate individual days.
func (s *Service) RenderCalendar(ctx context.Context, uid string, year int, month time.Month, canvas Canvas) error {
	signed, err := s.SignedDaysOfMonth(ctx, uid, year, month)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%d年%d月签到表", year, int(month))
	if err := canvas.Text(calPadding, 20, title, 36); err != nil {
		return err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	firstWeekday := (int(first.Weekday()) + 6) % 7 // Monday = 0
	totalDays := first.AddDate(0, 1, -1).Day()

	for day := 1; day <= totalDays; day++ {
		index := day + firstWeekday - 1
		row := index / calCols
		col := index % calCols
		x1 := calPadding + col*calCellSize
		y1 := calPadding + calTitleHeight + row*calCellSize
		x2 := x1 + calCellSize - 10
		y2 := y1 + calCellSize - 10

		fill := calUnsignedFill
		if signed[day] {
			fill = calSignedFill
		}
		if err := canvas.Rectangle(x1, y1, x2, y2, fill, calOutline, 2); err != nil {
			return err
		}
		if err := canvas.Text(x1+10, y1+10, fmt.Sprintf("%d", day), 24); err != nil {
			return err
		}
	}
	return nil
}
