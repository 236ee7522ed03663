package importer

import (
	"asteria/internal/domains/quote/model/dto"
	"asteria/shared/failure"
	"strings"
)

// Canonical column order for a pasted line. Earlier data sources shuffled
// email and phone around, this order is the only one accepted:
//
//	0  booking id
//	1  guest name
//	2  email
//	3  phone
//	4  check-in (DD/MM/YYYY)
//	5  check-out (DD/MM/YYYY)
//	6  room type
//	7  adults
//	8  children
//	9  children details
//	10 special requests
//	11 price per night (formatted currency)
//	12 total room cost (informational, recomputed)
//	13 additional fees (formatted currency)
//	14 additional services
//	15 grand total (informational, optional)
const MinFields = 15

// ParseLine splits one tab-separated line into a quote request. Fewer than
// the required field count rejects the whole line, nothing is partially
// applied. Totals columns are informational and always recomputed.
func ParseLine(line string) (dto.QuoteRequest, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")

	if len(fields) < MinFields {
		return dto.QuoteRequest{}, failure.BadRequestFromString("bulk import requires at least 15 tab-separated fields") //nolint:wrapcheck
	}

	for i, field := range fields {
		fields[i] = strings.TrimSpace(field)
	}

	return dto.QuoteRequest{
		BookingID:          fields[0],
		GuestName:          fields[1],
		Email:              fields[2],
		Phone:              fields[3],
		CheckIn:            fields[4],
		CheckOut:           fields[5],
		RoomType:           fields[6],
		Adults:             fields[7],
		Children:           fields[8],
		ChildrenDetails:    fields[9],
		SpecialRequests:    fields[10],
		PricePerNight:      fields[11],
		AdditionalFees:     fields[13],
		AdditionalServices: fields[14],
	}, nil
}
