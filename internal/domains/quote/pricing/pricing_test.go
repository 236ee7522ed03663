package pricing_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"asteria/internal/domains/quote/model"
	"asteria/internal/domains/quote/pricing"
	"asteria/shared/constant"
	"asteria/shared/timezone"
)

func date(value string) time.Time {
	parsed, err := timezone.Parse(constant.DisplayDateFormat, value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{
			name:     "two nights",
			checkIn:  date("10/01/2025"),
			checkOut: date("12/01/2025"),
			want:     2,
		},
		{
			name:     "same day floors to one night",
			checkIn:  date("10/01/2025"),
			checkOut: date("10/01/2025"),
			want:     1,
		},
		{
			name:     "check-out before check-in floors to one night",
			checkIn:  date("10/01/2025"),
			checkOut: date("08/01/2025"),
			want:     1,
		},
		{
			name:     "partial day rounds up",
			checkIn:  date("10/01/2025"),
			checkOut: date("11/01/2025").Add(6 * time.Hour),
			want:     2,
		},
		{
			name: "missing dates count one night",
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int64
	}{
		{name: "comma grouped", raw: "2,200,000", want: 2200000},
		{name: "dot grouped", raw: "2.200.000", want: 2200000},
		{name: "currency symbol", raw: "₫100,000", want: 100000},
		{name: "plain digits", raw: "35000", want: 35000},
		{name: "surrounding text", raw: "about 1,500 dong", want: 1500},
		{name: "empty", raw: "", want: 0},
		{name: "no digits", raw: "free", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.ParseAmount(tt.raw))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		lang   string
		want   string
	}{
		{name: "english grouping", amount: 2200000, lang: constant.LanguageEnglish, want: "₫2,200,000"},
		{name: "vietnamese grouping", amount: 2200000, lang: constant.LanguageVietnamese, want: "₫2.200.000"},
		{name: "small amount", amount: 500, lang: constant.LanguageEnglish, want: "₫500"},
		{name: "zero", amount: 0, lang: constant.LanguageEnglish, want: "₫0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.FormatAmount(tt.amount, tt.lang))
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, amount := range []int64{0, 999, 1000, 2200000, 123456789} {
		for _, lang := range []string{constant.LanguageEnglish, constant.LanguageVietnamese} {
			assert.Equal(t, amount, pricing.ParseAmount(pricing.FormatAmount(amount, lang)))
		}
	}
}

func TestGenerateBookingID(t *testing.T) {
	id := pricing.GenerateBookingID()

	assert.True(t, strings.HasPrefix(id, constant.BookingIDPrefix+"-"))
	assert.Len(t, id, len(constant.BookingIDPrefix)+7)
}

func TestNormalize(t *testing.T) {
	t.Run("swaps transposed email and phone", func(t *testing.T) {
		quote := model.Quote{
			GuestName: "Nguyen Van A",
			Email:     "0912345678",
			Phone:     "guest@example.com",
		}

		pricing.Normalize(&quote)

		assert.Equal(t, "guest@example.com", quote.Email)
		assert.Equal(t, "0912345678", quote.Phone)
	})

	t.Run("leaves correctly placed contacts alone", func(t *testing.T) {
		quote := model.Quote{
			Email: "guest@example.com",
			Phone: "0912345678",
		}

		pricing.Normalize(&quote)

		assert.Equal(t, "guest@example.com", quote.Email)
		assert.Equal(t, "0912345678", quote.Phone)
	})

	t.Run("leaves a free-text email alone even when phone holds an address", func(t *testing.T) {
		quote := model.Quote{
			Email: "see reception desk",
			Phone: "guest@example.com",
		}

		pricing.Normalize(&quote)

		assert.Equal(t, "see reception desk", quote.Email)
		assert.Equal(t, "guest@example.com", quote.Phone)
	})

	t.Run("swaps a spaced phone number out of the email field", func(t *testing.T) {
		quote := model.Quote{
			Email: "091 234 5678",
			Phone: "guest@example.com",
		}

		pricing.Normalize(&quote)

		assert.Equal(t, "guest@example.com", quote.Email)
		assert.Equal(t, "091 234 5678", quote.Phone)
	})

	t.Run("leaves an empty email in place", func(t *testing.T) {
		quote := model.Quote{
			Email: "",
			Phone: "guest@example.com",
		}

		pricing.Normalize(&quote)

		assert.Equal(t, "", quote.Email)
		assert.Equal(t, "guest@example.com", quote.Phone)
	})

	t.Run("corrects check-out on or before check-in", func(t *testing.T) {
		quote := model.Quote{
			CheckIn:  date("10/01/2025"),
			CheckOut: date("09/01/2025"),
		}

		pricing.Normalize(&quote)

		assert.Equal(t, date("11/01/2025"), quote.CheckOut)
		assert.Equal(t, 1, quote.Nights)
	})

	t.Run("derives nights from the stay", func(t *testing.T) {
		quote := model.Quote{
			CheckIn:  date("10/01/2025"),
			CheckOut: date("13/01/2025"),
		}

		pricing.Normalize(&quote)

		assert.Equal(t, 3, quote.Nights)
	})

	t.Run("floors adults and children", func(t *testing.T) {
		quote := model.Quote{Adults: 0, Children: -2}

		pricing.Normalize(&quote)

		assert.Equal(t, 1, quote.Adults)
		assert.Equal(t, 0, quote.Children)
	})

	t.Run("generates a booking reference when missing", func(t *testing.T) {
		quote := model.Quote{}

		pricing.Normalize(&quote)

		assert.True(t, strings.HasPrefix(quote.BookingID, constant.BookingIDPrefix+"-"))
	})

	t.Run("keeps an existing booking reference", func(t *testing.T) {
		quote := model.Quote{BookingID: "BKK-123456"}

		pricing.Normalize(&quote)

		assert.Equal(t, "BKK-123456", quote.BookingID)
	})
}

func TestQuoteTotals(t *testing.T) {
	quote := model.Quote{
		CheckIn:        date("10/01/2025"),
		CheckOut:       date("11/01/2025"),
		PricePerNight:  2200000,
		AdditionalFees: 100000,
	}

	pricing.Normalize(&quote)

	assert.Equal(t, int64(2200000), quote.TotalRoomCost())
	assert.Equal(t, int64(2300000), quote.GrandTotal())
	assert.Equal(t, "₫2,300,000", pricing.FormatAmount(quote.GrandTotal(), constant.LanguageEnglish))
}
