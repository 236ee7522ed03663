package export

import (
	"asteria/internal/domains/quote/model/dto"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	cardWidth  = 640
	cardMargin = 36
	lineHeight = 30
)

var (
	colorInk    = color.RGBA{R: 33, G: 37, B: 41, A: 255}
	colorMuted  = color.RGBA{R: 108, G: 117, B: 125, A: 255}
	colorAccent = color.RGBA{R: 13, G: 110, B: 253, A: 255}
	colorRule   = color.RGBA{R: 222, G: 226, B: 230, A: 255}
)

// renderer rasterizes a quote into the summary-card layout at base scale.
type renderer struct {
	title   font.Face
	label   font.Face
	value   font.Face
	total   font.Face
	regular font.Face
}

func newRenderer() (*renderer, error) {
	regularFont, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}

	boldFont, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}

	newFace := func(src *opentype.Font, size float64) (font.Face, error) {
		return opentype.NewFace(src, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	r := &renderer{}

	if r.title, err = newFace(boldFont, 26); err != nil {
		return nil, fmt.Errorf("failed to build title face: %w", err)
	}

	if r.label, err = newFace(regularFont, 15); err != nil {
		return nil, fmt.Errorf("failed to build label face: %w", err)
	}

	if r.value, err = newFace(boldFont, 16); err != nil {
		return nil, fmt.Errorf("failed to build value face: %w", err)
	}

	if r.total, err = newFace(boldFont, 21); err != nil {
		return nil, fmt.Errorf("failed to build total face: %w", err)
	}

	if r.regular, err = newFace(regularFont, 16); err != nil {
		return nil, fmt.Errorf("failed to build text face: %w", err)
	}

	return r, nil
}

// Render draws the card at base resolution. Scaling to a quality preset
// happens afterwards.
func (r *renderer) Render(quote dto.QuoteResponse) image.Image {
	rows := r.detailRows(quote)

	height := cardMargin*2 + lineHeight*4 + len(rows)*lineHeight + lineHeight*5
	img := image.NewRGBA(image.Rect(0, 0, cardWidth, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	y := cardMargin + lineHeight

	r.drawText(img, r.title, cardMargin, y, colorInk, "Booking Quote")
	y += lineHeight

	r.drawText(img, r.label, cardMargin, y, colorMuted, "Ref "+quote.BookingID)
	y += lineHeight * 2

	for _, row := range rows {
		r.drawText(img, r.label, cardMargin, y, colorMuted, row.label)
		r.drawTextRight(img, r.value, cardWidth-cardMargin, y, colorInk, row.value)
		y += lineHeight
	}

	y += lineHeight / 2
	r.drawRule(img, cardMargin, cardWidth-cardMargin, y)
	y += lineHeight

	r.drawText(img, r.label, cardMargin, y, colorMuted, fmt.Sprintf("Room cost (%d nights)", quote.Nights))
	r.drawTextRight(img, r.value, cardWidth-cardMargin, y, colorInk, quote.TotalRoomCostText)
	y += lineHeight

	r.drawText(img, r.label, cardMargin, y, colorMuted, "Additional fees")
	r.drawTextRight(img, r.value, cardWidth-cardMargin, y, colorInk, quote.AdditionalFeesText)
	y += lineHeight + lineHeight/2

	r.drawText(img, r.total, cardMargin, y, colorInk, "Grand total")
	r.drawTextRight(img, r.total, cardWidth-cardMargin, y, colorAccent, quote.GrandTotalText)

	return img
}

type detailRow struct {
	label string
	value string
}

func (r *renderer) detailRows(quote dto.QuoteResponse) []detailRow {
	rows := []detailRow{
		{"Guest", quote.GuestName},
		{"Email", quote.Email},
		{"Phone", quote.Phone},
		{"Check-in", quote.CheckIn},
		{"Check-out", quote.CheckOut},
		{"Room", quote.RoomType},
		{"Guests", fmt.Sprintf("%d adults, %d children", quote.Adults, quote.Children)},
		{"Rate per night", quote.PricePerNightText},
	}

	if quote.ChildrenDetails != "" {
		rows = append(rows, detailRow{"Children", quote.ChildrenDetails})
	}

	if quote.SpecialRequests != "" {
		rows = append(rows, detailRow{"Requests", quote.SpecialRequests})
	}

	if quote.AdditionalServices != "" {
		rows = append(rows, detailRow{"Services", quote.AdditionalServices})
	}

	return rows
}

func (r *renderer) drawText(img draw.Image, face font.Face, x, y int, clr color.Color, text string) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(clr),
		Face: face,
		Dot:  fixed.P(x, y),
	}

	drawer.DrawString(text)
}

func (r *renderer) drawTextRight(img draw.Image, face font.Face, right, y int, clr color.Color, text string) {
	width := font.MeasureString(face, text).Ceil()

	r.drawText(img, face, right-width, y, clr, text)
}

func (r *renderer) drawRule(img draw.Image, x1, x2, y int) {
	for x := x1; x < x2; x++ {
		img.Set(x, y, colorRule)
	}
}
