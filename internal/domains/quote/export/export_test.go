package export_test

import (
	"bytes"
	"context"
	"image/png"
	"reflect"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asteria/config"
	"asteria/infras/otel/mocks"
	"asteria/internal/domains/quote/export"
	"asteria/internal/domains/quote/model"
	"asteria/shared/constant"
)

func testQuote() model.Quote {
	return model.Quote{
		ID:             "test-id",
		BookingID:      "BKK-123456",
		GuestName:      "Nguyễn Văn An",
		Email:          "an@example.com",
		Phone:          "0912345678",
		CheckIn:        time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:       time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		Nights:         2,
		Adults:         2,
		Children:       1,
		RoomType:       "Deluxe Ocean View",
		PricePerNight:  2200000,
		AdditionalFees: 100000,
	}
}

func newExporter(t *testing.T) export.Export {
	t.Helper()

	cfg := &config.Config{}

	exporter, err := export.New(cfg, mocks.NewOtel(), nil)
	require.NoError(t, err)

	return exporter
}

func TestPresetFor(t *testing.T) {
	tests := []struct {
		name      string
		preset    string
		wantName  string
		wantScale int
	}{
		{name: "normal", preset: export.PresetNormal, wantName: export.PresetNormal, wantScale: 2},
		{name: "high", preset: export.PresetHigh, wantName: export.PresetHigh, wantScale: 3},
		{name: "ultra", preset: export.PresetUltra, wantName: export.PresetUltra, wantScale: 4},
		{name: "unknown falls back to normal", preset: "extreme", wantName: export.PresetNormal, wantScale: 2},
		{name: "empty falls back to normal", preset: "", wantName: export.PresetNormal, wantScale: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preset := export.PresetFor(tt.preset)

			assert.Equal(t, tt.wantName, preset.Name)
			assert.Equal(t, tt.wantScale, preset.Scale)
		})
	}
}

func TestRenderPNG(t *testing.T) {
	exporter := newExporter(t)

	normal, err := exporter.RenderPNG(context.Background(), testQuote(), export.PresetNormal, constant.LanguageEnglish)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(normal, []byte("\x89PNG")))

	ultra, err := exporter.RenderPNG(context.Background(), testQuote(), export.PresetUltra, constant.LanguageEnglish)
	require.NoError(t, err)

	normalImg, err := png.Decode(bytes.NewReader(normal))
	require.NoError(t, err)

	ultraImg, err := png.Decode(bytes.NewReader(ultra))
	require.NoError(t, err)

	assert.Equal(t, normalImg.Bounds().Dx()*2, ultraImg.Bounds().Dx())
}

func TestRenderPNGFilters(t *testing.T) {
	// Each preset pairs its scale with a different resampling filter.
	// ResampleFilter holds a func field, which reflect.DeepEqual (and thus
	// assert.Equal) always reports as unequal, so compare Support and the
	// kernel's function pointer instead.
	assertSameFilter := func(want, got imaging.ResampleFilter) {
		t.Helper()
		assert.Equal(t, want.Support, got.Support)
		assert.Equal(t, reflect.ValueOf(want.Kernel).Pointer(), reflect.ValueOf(got.Kernel).Pointer())
	}

	assertSameFilter(imaging.Linear, export.PresetFor(export.PresetNormal).Filter)
	assertSameFilter(imaging.CatmullRom, export.PresetFor(export.PresetHigh).Filter)
	assertSameFilter(imaging.Lanczos, export.PresetFor(export.PresetUltra).Filter)
}

func TestRenderPDF(t *testing.T) {
	exporter := newExporter(t)

	data, err := exporter.RenderPDF(context.Background(), testQuote(), export.PresetNormal, constant.LanguageEnglish)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
