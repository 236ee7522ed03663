package model

import (
	"asteria/shared/model"
	"time"
)

const (
	TableName  = "quotes"
	EntityName = "quote"

	FieldID                 = "id"
	FieldBookingID          = "booking_id"
	FieldGuestName          = "guest_name"
	FieldEmail              = "email"
	FieldPhone              = "phone"
	FieldCheckIn            = "check_in"
	FieldCheckOut           = "check_out"
	FieldNights             = "nights"
	FieldAdults             = "adults"
	FieldChildren           = "children"
	FieldChildrenDetails    = "children_details"
	FieldRoomType           = "room_type"
	FieldPricePerNight      = "price_per_night"
	FieldAdditionalFees     = "additional_fees"
	FieldSpecialRequests    = "special_requests"
	FieldAdditionalServices = "additional_services"
	FieldNotes              = "notes"
)

type Quote struct {
	ID                 string    `db:"id"`
	BookingID          string    `db:"booking_id"`
	GuestName          string    `db:"guest_name"`
	Email              string    `db:"email"`
	Phone              string    `db:"phone"`
	CheckIn            time.Time `db:"check_in"`
	CheckOut           time.Time `db:"check_out"`
	Nights             int       `db:"nights"`
	Adults             int       `db:"adults"`
	Children           int       `db:"children"`
	ChildrenDetails    string    `db:"children_details"`
	RoomType           string    `db:"room_type"`
	PricePerNight      int64     `db:"price_per_night"`
	AdditionalFees     int64     `db:"additional_fees"`
	SpecialRequests    string    `db:"special_requests"`
	AdditionalServices string    `db:"additional_services"`
	Notes              string    `db:"notes"`
	model.Metadata
}

// TotalRoomCost is the room price for the whole stay.
func (q *Quote) TotalRoomCost() int64 {
	return q.PricePerNight * int64(q.Nights)
}

// GrandTotal is the room cost for the full stay plus additional fees.
func (q *Quote) GrandTotal() int64 {
	return q.TotalRoomCost() + q.AdditionalFees
}
