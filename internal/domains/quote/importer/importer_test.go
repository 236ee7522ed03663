package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"asteria/internal/domains/quote/importer"
	"asteria/shared/constant"
	"asteria/shared/failure"
)

func sampleFields() []string {
	return []string{
		"BKK-123456",
		"Nguyễn Văn An",
		"an@example.com",
		"0912345678",
		"10/01/2025",
		"12/01/2025",
		"Deluxe Ocean View",
		"2",
		"1",
		"Ages 4 and 7",
		"Late check-out if possible",
		"₫2,200,000",
		"₫4,400,000",
		"₫100,000",
		"Breakfast buffet",
		"₫4,500,000",
	}
}

func TestParseLine(t *testing.T) {
	t.Run("maps the canonical column order", func(t *testing.T) {
		req, err := importer.ParseLine(strings.Join(sampleFields(), "\t"))

		assert.NoError(t, err)
		assert.Equal(t, "BKK-123456", req.BookingID)
		assert.Equal(t, "Nguyễn Văn An", req.GuestName)
		assert.Equal(t, "an@example.com", req.Email)
		assert.Equal(t, "0912345678", req.Phone)
		assert.Equal(t, "10/01/2025", req.CheckIn)
		assert.Equal(t, "12/01/2025", req.CheckOut)
		assert.Equal(t, "Deluxe Ocean View", req.RoomType)
		assert.Equal(t, "2", req.Adults)
		assert.Equal(t, "1", req.Children)
		assert.Equal(t, "Ages 4 and 7", req.ChildrenDetails)
		assert.Equal(t, "Late check-out if possible", req.SpecialRequests)
		assert.Equal(t, "₫2,200,000", req.PricePerNight)
		assert.Equal(t, "₫100,000", req.AdditionalFees)
		assert.Equal(t, "Breakfast buffet", req.AdditionalServices)
	})

	t.Run("accepts a line without the grand total column", func(t *testing.T) {
		fields := sampleFields()[:15]

		req, err := importer.ParseLine(strings.Join(fields, "\t"))

		assert.NoError(t, err)
		assert.Equal(t, "Breakfast buffet", req.AdditionalServices)
	})

	t.Run("rejects a line with too few fields", func(t *testing.T) {
		fields := sampleFields()[:14]

		_, err := importer.ParseLine(strings.Join(fields, "\t"))

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("trims surrounding whitespace per field", func(t *testing.T) {
		fields := sampleFields()
		fields[1] = "  Nguyễn Văn An  "

		req, err := importer.ParseLine(strings.Join(fields, "\t"))

		assert.NoError(t, err)
		assert.Equal(t, "Nguyễn Văn An", req.GuestName)
	})

	t.Run("keeps an unparseable date as raw text", func(t *testing.T) {
		fields := sampleFields()
		fields[4] = "not-a-date"

		req, err := importer.ParseLine(strings.Join(fields, "\t"))

		assert.NoError(t, err)
		assert.Equal(t, "not-a-date", req.CheckIn)
	})
}

func TestSampleLine(t *testing.T) {
	for range 20 {
		line := importer.SampleLine(constant.LanguageEnglish)

		fields := strings.Split(line, "\t")
		assert.Len(t, fields, 16)

		req, err := importer.ParseLine(line)

		assert.NoError(t, err)
		assert.NotEmpty(t, req.BookingID)
		assert.NotEmpty(t, req.GuestName)
		assert.Contains(t, req.Email, "@")
		assert.NotContains(t, req.Phone, "@")
	}
}
