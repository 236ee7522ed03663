package pricing

import (
	"asteria/internal/domains/quote/model"
	"asteria/shared/constant"
	"asteria/shared/timezone"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	nightDuration  = 24 * time.Hour
	currencySymbol = "₫"
)

// Nights returns the number of nights between check-in and check-out,
// floored at 1. Missing dates count as a single night.
func Nights(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 1
	}

	nights := int(math.Ceil(float64(checkOut.Sub(checkIn)) / float64(nightDuration)))
	if nights < 1 {
		return 1
	}

	return nights
}

// ParseAmount extracts the integer value from formatted currency text by
// stripping every non-digit character. An empty result parses to 0.
func ParseAmount(raw string) int64 {
	var digits strings.Builder

	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if digits.Len() == 0 {
		return 0
	}

	amount, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}

	return amount
}

// FormatAmount renders an amount with locale-aware thousands grouping and
// the dong symbol. Formatting is presentation only, the stored value stays
// a plain integer.
func FormatAmount(amount int64, lang string) string {
	tag := language.English
	if lang == constant.LanguageVietnamese {
		tag = language.Vietnamese
	}

	printer := message.NewPrinter(tag)

	return currencySymbol + printer.Sprintf("%v", number.Decimal(amount))
}

// GenerateBookingID builds a reference from the last six digits of the
// current epoch millis. Not guaranteed unique, it only needs to be a
// readable handle for staff.
func GenerateBookingID() string {
	millis := timezone.Now().UnixMilli()

	return fmt.Sprintf("%s-%06d", constant.BookingIDPrefix, millis%1000000)
}

// Normalize derives the display-ready quote from raw form input in place:
// transposed email/phone fields are swapped back, the check-out date is
// corrected to land after check-in, nights are recomputed, and a missing
// booking reference is generated.
func Normalize(quote *model.Quote) {
	if !strings.Contains(quote.Email, "@") && mostlyDigits(quote.Email) && strings.Contains(quote.Phone, "@") {
		quote.Email, quote.Phone = quote.Phone, quote.Email
	}

	if !quote.CheckIn.IsZero() && !quote.CheckOut.After(quote.CheckIn) {
		quote.CheckOut = quote.CheckIn.AddDate(0, 0, 1)
	}

	quote.Nights = Nights(quote.CheckIn, quote.CheckOut)

	if quote.Adults < 1 {
		quote.Adults = 1
	}

	if quote.Children < 0 {
		quote.Children = 0
	}

	if quote.BookingID == constant.Empty {
		quote.BookingID = GenerateBookingID()
	}
}

// mostlyDigits reports whether more than half of the non-space runes are
// digits, the signature of a phone number typed into the email field.
// Free text without a digit majority is left where the guest put it.
func mostlyDigits(value string) bool {
	total, digits := 0, 0

	for _, r := range value {
		if unicode.IsSpace(r) {
			continue
		}

		total++

		if r >= '0' && r <= '9' {
			digits++
		}
	}

	return total > 0 && digits*2 > total
}
