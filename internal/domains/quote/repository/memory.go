package repository

import (
	"asteria/internal/domains/quote/model"
	gDto "asteria/shared/dto"
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryImpl is the self-contained storage backend for demos and local
// development without database credentials. It interprets the filter
// shapes the quote service actually builds (equality and LIKE on quote
// columns) over a map guarded by one mutex.
type memoryImpl struct {
	mu     sync.RWMutex
	quotes map[string]model.Quote
}

func NewMemory() Quote {
	return &memoryImpl{
		quotes: make(map[string]model.Quote),
	}
}

func (repo *memoryImpl) Insert(_ context.Context, quote model.Quote) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.quotes[quote.ID] = quote

	return nil
}

func (repo *memoryImpl) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Quote, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, quote := range repo.sorted() {
		if matches(quote, filter) {
			return quote, nil
		}
	}

	return model.Quote{}, nil
}

func (repo *memoryImpl) GetAll(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Quote, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	matched := []model.Quote{}
	for _, quote := range repo.sorted() {
		if matches(quote, filter) {
			matched = append(matched, quote)
		}
	}

	if params.Limit > 0 {
		offset := 0
		if params.Page > 0 {
			offset = (params.Page - 1) * params.Limit
		}

		if offset >= len(matched) {
			return []model.Quote{}, nil
		}

		end := offset + params.Limit
		if end > len(matched) {
			end = len(matched)
		}

		matched = matched[offset:end]
	}

	return matched, nil
}

func (repo *memoryImpl) Exist(_ context.Context, filter gDto.FilterGroup) (bool, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, quote := range repo.quotes {
		if matches(quote, filter) {
			return true, nil
		}
	}

	return false, nil
}

func (repo *memoryImpl) Count(_ context.Context, filter gDto.FilterGroup) (int, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	count := 0
	for _, quote := range repo.quotes {
		if matches(quote, filter) {
			count++
		}
	}

	return count, nil
}

func (repo *memoryImpl) Update(_ context.Context, req map[string]any, filter gDto.FilterGroup) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for id, quote := range repo.quotes {
		if matches(quote, filter) {
			applyColumns(&quote, req)
			repo.quotes[id] = quote
		}
	}

	return nil
}

func (repo *memoryImpl) Delete(_ context.Context, filter gDto.FilterGroup) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for id, quote := range repo.quotes {
		if matches(quote, filter) {
			delete(repo.quotes, id)
		}
	}

	return nil
}

// sorted returns quotes by creation time, newest first, matching the
// default listing order of the live backend.
func (repo *memoryImpl) sorted() []model.Quote {
	quotes := make([]model.Quote, 0, len(repo.quotes))
	for _, quote := range repo.quotes {
		quotes = append(quotes, quote)
	}

	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].CreatedAt.After(quotes[j].CreatedAt)
	})

	return quotes
}

func matches(quote model.Quote, group gDto.FilterGroup) bool {
	if len(group.Filters) == 0 {
		return true
	}

	anyOf := group.Operator == gDto.FilterGroupOperatorOr

	for _, raw := range group.Filters {
		var ok bool

		switch filter := raw.(type) {
		case gDto.Filter:
			ok = matchFilter(quote, filter)
		case gDto.FilterGroup:
			ok = matches(quote, filter)
		default:
			ok = false
		}

		if anyOf && ok {
			return true
		}

		if !anyOf && !ok {
			return false
		}
	}

	return !anyOf
}

func matchFilter(quote model.Quote, filter gDto.Filter) bool {
	value := columnValue(quote, filter.Field)
	want, _ := filter.Value.(string)

	switch filter.Operator {
	case gDto.FilterOperatorEq:
		return value == want
	case gDto.FilterOperatorNotEq:
		return value != want
	case gDto.FilterOperatorLike:
		return strings.Contains(strings.ToLower(value), strings.ToLower(want))
	default:
		return false
	}
}

func columnValue(quote model.Quote, field string) string {
	switch field {
	case model.FieldID:
		return quote.ID
	case model.FieldBookingID:
		return quote.BookingID
	case model.FieldGuestName:
		return quote.GuestName
	case model.FieldEmail:
		return quote.Email
	case model.FieldPhone:
		return quote.Phone
	case model.FieldRoomType:
		return quote.RoomType
	default:
		return ""
	}
}

func applyColumns(quote *model.Quote, req map[string]any) {
	for column, raw := range req {
		switch column {
		case model.FieldBookingID:
			quote.BookingID, _ = raw.(string)
		case model.FieldGuestName:
			quote.GuestName, _ = raw.(string)
		case model.FieldEmail:
			quote.Email, _ = raw.(string)
		case model.FieldPhone:
			quote.Phone, _ = raw.(string)
		case model.FieldCheckIn:
			quote.CheckIn, _ = raw.(time.Time)
		case model.FieldCheckOut:
			quote.CheckOut, _ = raw.(time.Time)
		case model.FieldNights:
			quote.Nights, _ = raw.(int)
		case model.FieldAdults:
			quote.Adults, _ = raw.(int)
		case model.FieldChildren:
			quote.Children, _ = raw.(int)
		case model.FieldChildrenDetails:
			quote.ChildrenDetails, _ = raw.(string)
		case model.FieldRoomType:
			quote.RoomType, _ = raw.(string)
		case model.FieldPricePerNight:
			quote.PricePerNight, _ = raw.(int64)
		case model.FieldAdditionalFees:
			quote.AdditionalFees, _ = raw.(int64)
		case model.FieldSpecialRequests:
			quote.SpecialRequests, _ = raw.(string)
		case model.FieldAdditionalServices:
			quote.AdditionalServices, _ = raw.(string)
		case model.FieldNotes:
			quote.Notes, _ = raw.(string)
		}
	}
}
