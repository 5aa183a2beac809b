package services_test

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/dailysign/services"
)

type rectOp struct {
	x1, y1, x2, y2 int
	fill           color.RGBA
}

type textOp struct {
	x, y     int
	text     string
	fontSize int
}

type fakeCanvas struct {
	rects []rectOp
	texts []textOp
}

func (c *fakeCanvas) Rectangle(x1, y1, x2, y2 int, fill, outline color.RGBA, width int) error {
	c.rects = append(c.rects, rectOp{x1, y1, x2, y2, fill})
	return nil
}

func (c *fakeCanvas) Text(x, y int, text string, fontSize int) error {
	c.texts = append(c.texts, textOp{x, y, text, fontSize})
	return nil
}

func TestCalendarSize(t *testing.T) {
	w, h := services.CalendarSize()
	assert.Equal(t, 80*7+40*2, w)
	assert.Equal(t, 80*6+40*2+80, h)
}

func TestRenderCalendar(t *testing.T) {
	svc, _, _ := newTestService(t, "2025-05-20")
	ctx := context.Background()

	for _, d := range []string{"2025-05-01", "2025-05-15"} {
		_, err := svc.Sign(ctx, "u1", d)
		require.NoError(t, err)
	}

	canvas := &fakeCanvas{}
	require.NoError(t, svc.RenderCalendar(ctx, "u1", 2025, time.May, canvas))

	// One cell per day of May, one label per day plus the title.
	assert.Len(t, canvas.rects, 31)
	require.Len(t, canvas.texts, 32)
	assert.Contains(t, canvas.texts[0].text, "2025")
	assert.Equal(t, 36, canvas.texts[0].fontSize)

	signedFill := color.RGBA{R: 112, G: 196, B: 112, A: 255}
	unsignedFill := color.RGBA{R: 220, G: 220, B: 220, A: 255}
	assert.Equal(t, signedFill, canvas.rects[0].fill, "day 1 is signed")
	assert.Equal(t, signedFill, canvas.rects[14].fill, "day 15 is signed")
	assert.Equal(t, unsignedFill, canvas.rects[1].fill, "day 2 is not signed")

	// 2025-05-01 falls on a Thursday: column 3 of a Monday-first grid.
	assert.Equal(t, 40+3*80, canvas.rects[0].x1)
	assert.Equal(t, 40+80, canvas.rects[0].y1)
}

func TestRenderCalendar_EmptyMonth(t *testing.T) {
	svc, _, _ := newTestService(t, "2025-05-20")

	canvas := &fakeCanvas{}
	require.NoError(t, svc.RenderCalendar(context.Background(), "nobody", 2025, time.February, canvas))

	assert.Len(t, canvas.rects, 28)
	for _, r := range canvas.rects {
		assert.Equal(t, color.RGBA{R: 220, G: 220, B: 220, A: 255}, r.fill)
	}
}
