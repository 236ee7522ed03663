package dto

import (
	"asteria/internal/domains/quote/model"
	"asteria/internal/domains/quote/pricing"
	"asteria/shared"
	"asteria/shared/constant"
	gDto "asteria/shared/dto"
	gModel "asteria/shared/model"
	"asteria/shared/timezone"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// QuoteRequest carries the raw form fields. Counts and amounts arrive as
// text the way the form submits them, numeric extraction happens during
// derivation.
type QuoteRequest struct {
	BookingID          string `json:"booking_id"          validate:"omitempty,max=50"`
	GuestName          string `json:"guest_name"          validate:"required,max=100"`
	Email              string `json:"email"               validate:"omitempty,max=100"`
	Phone              string `json:"phone"               validate:"omitempty,max=30"`
	CheckIn            string `json:"check_in"            validate:"omitempty"`
	CheckOut           string `json:"check_out"           validate:"omitempty"`
	RoomType           string `json:"room_type"           validate:"omitempty,max=100"`
	Adults             string `json:"adults"              validate:"omitempty"`
	Children           string `json:"children"            validate:"omitempty"`
	ChildrenDetails    string `json:"children_details"    validate:"omitempty"`
	PricePerNight      string `json:"price_per_night"     validate:"omitempty"`
	AdditionalFees     string `json:"additional_fees"     validate:"omitempty"`
	SpecialRequests    string `json:"special_requests"    validate:"omitempty"`
	AdditionalServices string `json:"additional_services" validate:"omitempty"`
	Notes              string `json:"notes"               validate:"omitempty"`
}

func (c *QuoteRequest) ToModel() model.Quote {
	quote := model.Quote{
		ID:                 uuid.NewString(),
		BookingID:          c.BookingID,
		GuestName:          c.GuestName,
		Email:              c.Email,
		Phone:              c.Phone,
		CheckIn:            parseDisplayDate(c.CheckIn),
		CheckOut:           parseDisplayDate(c.CheckOut),
		RoomType:           c.RoomType,
		Adults:             parseCount(c.Adults),
		Children:           parseCount(c.Children),
		ChildrenDetails:    c.ChildrenDetails,
		PricePerNight:      pricing.ParseAmount(c.PricePerNight),
		AdditionalFees:     pricing.ParseAmount(c.AdditionalFees),
		SpecialRequests:    c.SpecialRequests,
		AdditionalServices: c.AdditionalServices,
		Notes:              c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
		},
	}

	pricing.Normalize(&quote)

	return quote
}

// parseDisplayDate parses DD/MM/YYYY. A bad date is logged and left unset
// rather than rejecting the whole request.
func parseDisplayDate(value string) time.Time {
	if value == constant.Empty {
		return time.Time{}
	}

	parsed, err := timezone.Parse(constant.DisplayDateFormat, value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Msg("failed to parse quote date, leaving unset")

		return time.Time{}
	}

	return parsed
}

func parseCount(value string) int {
	if value == constant.Empty {
		return 0
	}

	count, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Msg("failed to parse count field, defaulting to 0")

		return 0
	}

	return count
}

// UpdateQuoteRequest carries partial edits. Date and amount fields stay
// text so the same lenient parsing applies, the service re-derives nights
// and totals from the merged row.
type UpdateQuoteRequest struct {
	BookingID          string `json:"booking_id"          validate:"omitempty,max=50"`
	GuestName          string `json:"guest_name"          validate:"omitempty,max=100"`
	Email              string `json:"email"               validate:"omitempty,max=100"`
	Phone              string `json:"phone"               validate:"omitempty,max=30"`
	CheckIn            string `json:"check_in"            validate:"omitempty"`
	CheckOut           string `json:"check_out"           validate:"omitempty"`
	RoomType           string `json:"room_type"           validate:"omitempty,max=100"`
	Adults             string `json:"adults"              validate:"omitempty"`
	Children           string `json:"children"            validate:"omitempty"`
	ChildrenDetails    string `json:"children_details"    validate:"omitempty"`
	PricePerNight      string `json:"price_per_night"     validate:"omitempty"`
	AdditionalFees     string `json:"additional_fees"     validate:"omitempty"`
	SpecialRequests    string `json:"special_requests"    validate:"omitempty"`
	AdditionalServices string `json:"additional_services" validate:"omitempty"`
	Notes              string `json:"notes"               validate:"omitempty"`
}

// ApplyTo overlays the non-empty request fields onto an existing quote and
// re-normalizes the result.
func (u *UpdateQuoteRequest) ApplyTo(quote *model.Quote) {
	if u.BookingID != constant.Empty {
		quote.BookingID = u.BookingID
	}

	if u.GuestName != constant.Empty {
		quote.GuestName = u.GuestName
	}

	if u.Email != constant.Empty {
		quote.Email = u.Email
	}

	if u.Phone != constant.Empty {
		quote.Phone = u.Phone
	}

	if u.CheckIn != constant.Empty {
		quote.CheckIn = parseDisplayDate(u.CheckIn)
	}

	if u.CheckOut != constant.Empty {
		quote.CheckOut = parseDisplayDate(u.CheckOut)
	}

	if u.RoomType != constant.Empty {
		quote.RoomType = u.RoomType
	}

	if u.Adults != constant.Empty {
		quote.Adults = parseCount(u.Adults)
	}

	if u.Children != constant.Empty {
		quote.Children = parseCount(u.Children)
	}

	if u.ChildrenDetails != constant.Empty {
		quote.ChildrenDetails = u.ChildrenDetails
	}

	if u.PricePerNight != constant.Empty {
		quote.PricePerNight = pricing.ParseAmount(u.PricePerNight)
	}

	if u.AdditionalFees != constant.Empty {
		quote.AdditionalFees = pricing.ParseAmount(u.AdditionalFees)
	}

	if u.SpecialRequests != constant.Empty {
		quote.SpecialRequests = u.SpecialRequests
	}

	if u.AdditionalServices != constant.Empty {
		quote.AdditionalServices = u.AdditionalServices
	}

	if u.Notes != constant.Empty {
		quote.Notes = u.Notes
	}

	pricing.Normalize(quote)
}

// ImportQuoteRequest wraps the pasted tab-separated booking line.
type ImportQuoteRequest struct {
	Text string `json:"text" validate:"required"`
}

type SampleLineResponse struct {
	Line string `json:"line"`
}

type QuoteResponse struct {
	ID                 string `json:"id"`
	BookingID          string `json:"booking_id"`
	GuestName          string `json:"guest_name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	CheckIn            string `json:"check_in"`
	CheckOut           string `json:"check_out"`
	Nights             int    `json:"nights"`
	Adults             int    `json:"adults"`
	Children           int    `json:"children"`
	ChildrenDetails    string `json:"children_details"`
	RoomType           string `json:"room_type"`
	PricePerNight      int64  `json:"price_per_night"`
	AdditionalFees     int64  `json:"additional_fees"`
	TotalRoomCost      int64  `json:"total_room_cost"`
	GrandTotal         int64  `json:"grand_total"`
	PricePerNightText  string `json:"price_per_night_text"`
	AdditionalFeesText string `json:"additional_fees_text"`
	TotalRoomCostText  string `json:"total_room_cost_text"`
	GrandTotalText     string `json:"grand_total_text"`
	SpecialRequests    string `json:"special_requests"`
	AdditionalServices string `json:"additional_services"`
	Notes              string `json:"notes"`
	gDto.Metadata
}

func (r *QuoteResponse) FromModel(quote model.Quote, lang string) {
	r.ID = quote.ID
	r.BookingID = quote.BookingID
	r.GuestName = quote.GuestName
	r.Email = quote.Email
	r.Phone = quote.Phone
	r.Nights = quote.Nights
	r.Adults = quote.Adults
	r.Children = quote.Children
	r.ChildrenDetails = quote.ChildrenDetails
	r.RoomType = quote.RoomType
	r.PricePerNight = quote.PricePerNight
	r.AdditionalFees = quote.AdditionalFees
	r.TotalRoomCost = quote.TotalRoomCost()
	r.GrandTotal = quote.GrandTotal()
	r.PricePerNightText = pricing.FormatAmount(quote.PricePerNight, lang)
	r.AdditionalFeesText = pricing.FormatAmount(quote.AdditionalFees, lang)
	r.TotalRoomCostText = pricing.FormatAmount(quote.TotalRoomCost(), lang)
	r.GrandTotalText = pricing.FormatAmount(quote.GrandTotal(), lang)
	r.SpecialRequests = quote.SpecialRequests
	r.AdditionalServices = quote.AdditionalServices
	r.Notes = quote.Notes

	if !quote.CheckIn.IsZero() {
		r.CheckIn = timezone.Format(quote.CheckIn, constant.DisplayDateFormat)
	}

	if !quote.CheckOut.IsZero() {
		r.CheckOut = timezone.Format(quote.CheckOut, constant.DisplayDateFormat)
	}

	r.Metadata.FromModel(quote.Metadata)
}

type GetQuotesResponse struct {
	Quotes    []QuoteResponse `json:"quotes"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetQuotesResponse) FromModels(models []model.Quote, totalData, limit int, lang string) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Quotes = make([]QuoteResponse, len(models))
	for i, mod := range models {
		r.Quotes[i].FromModel(mod, lang)
	}
}
