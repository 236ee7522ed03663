package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"asteria/config"
	"asteria/infras/otel/mocks"
	"asteria/internal/domains/quote/display"
	"asteria/internal/domains/quote/export"
	"asteria/internal/domains/quote/importer"
	quoteMocks "asteria/internal/domains/quote/mocks"
	"asteria/internal/domains/quote/model"
	"asteria/internal/domains/quote/model/dto"
	"asteria/internal/domains/quote/service"
	cacheMocks "asteria/shared/cache/mocks"
	"asteria/shared/constant"
	gDto "asteria/shared/dto"
	gModel "asteria/shared/model"
	"asteria/shared/timezone"
)

type fixture struct {
	repo    *quoteMocks.MockQuote
	cache   *cacheMocks.MockRedisCache
	store   display.Store
	service service.Quote
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := quoteMocks.NewMockQuote(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	store := display.NewStore()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.Language = constant.LanguageEnglish

	exporter, err := export.New(cfg, mocks.NewOtel(), nil)
	require.NoError(t, err)

	return fixture{
		repo:    mockRepo,
		cache:   mockCache,
		store:   store,
		service: service.New(mockRepo, cfg, mockCache, mocks.NewOtel(), store, exporter),
	}
}

func TestQuoteService_Preview(t *testing.T) {
	f := newFixture(t)

	req := dto.QuoteRequest{
		GuestName:     "Nguyễn Văn An",
		Email:         "0912345678",
		Phone:         "an@example.com",
		CheckIn:       "10/01/2025",
		CheckOut:      "12/01/2025",
		PricePerNight: "2,200,000",
	}

	res, err := f.service.Preview(context.Background(), req, constant.LanguageEnglish)

	assert.NoError(t, err)
	assert.Equal(t, "an@example.com", res.Email)
	assert.Equal(t, "0912345678", res.Phone)
	assert.Equal(t, 2, res.Nights)
	assert.Equal(t, int64(4400000), res.TotalRoomCost)
	assert.Equal(t, "₫4,400,000", res.TotalRoomCostText)

	latest, ok := f.store.Latest()
	assert.True(t, ok)
	assert.Equal(t, "an@example.com", latest.Email)
}

func TestQuoteService_Latest(t *testing.T) {
	f := newFixture(t)

	t.Run("empty display", func(t *testing.T) {
		_, err := f.service.Latest(context.Background(), constant.LanguageEnglish)

		assert.Error(t, err)
	})

	t.Run("after a preview", func(t *testing.T) {
		_, err := f.service.Preview(context.Background(), dto.QuoteRequest{GuestName: "Guest"}, constant.LanguageEnglish)
		require.NoError(t, err)

		res, err := f.service.Latest(context.Background(), constant.LanguageEnglish)

		assert.NoError(t, err)
		assert.Equal(t, "Guest", res.GuestName)
	})
}

func TestQuoteService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "successful creation",
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				f.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			req := dto.QuoteRequest{GuestName: "Guest", PricePerNight: "1,500,000"}

			res, err := f.service.Create(context.Background(), req, constant.LanguageEnglish)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.True(t, strings.HasPrefix(res.BookingID, constant.BookingIDPrefix+"-"))
			}
		})
	}
}

func TestQuoteService_Import(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{
			name:    "valid sample line",
			text:    importer.SampleLine(constant.LanguageEnglish),
			wantErr: false,
		},
		{
			name:    "empty text",
			text:    "   ",
			wantErr: true,
		},
		{
			name:    "too few fields",
			text:    "only\tthree\tfields",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			res, err := f.service.Import(context.Background(), tt.text, constant.LanguageEnglish)

			if tt.wantErr {
				assert.Error(t, err)

				_, ok := f.store.Latest()
				assert.False(t, ok, "a rejected line must not reach the display")
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.GuestName)
			}
		})
	}
}

func TestQuoteService_SampleLine(t *testing.T) {
	f := newFixture(t)

	line := f.service.SampleLine(context.Background(), constant.LanguageEnglish)

	assert.Len(t, strings.Split(line, "\t"), 16)
}

func TestQuoteService_Get(t *testing.T) {
	quote := model.Quote{
		ID:        "test-id",
		BookingID: "BKK-123456",
		GuestName: "Guest",
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
		},
	}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "cache hit",
			setupMock: func(f fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, found in repository",
			setupMock: func(f fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(quote, nil)

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Quote{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.service.Get(context.Background(), "test-id", constant.LanguageEnglish)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Quote{{ID: "test-id", GuestName: "Guest"}}, nil)

	f.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := f.service.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{}, constant.LanguageEnglish)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Quotes, 1)
}

func TestQuoteService_Update(t *testing.T) {
	stored := model.Quote{
		ID:            "test-id",
		BookingID:     "BKK-123456",
		GuestName:     "Guest",
		PricePerNight: 1500000,
	}

	tests := []struct {
		name      string
		req       dto.UpdateQuoteRequest
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name:      "empty request",
			req:       dto.UpdateQuoteRequest{},
			setupMock: func(f fixture) {},
			wantErr:   true,
		},
		{
			name: "not found",
			req:  dto.UpdateQuoteRequest{GuestName: "Renamed"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Quote{}, nil)
			},
			wantErr: true,
		},
		{
			name: "successful merge",
			req:  dto.UpdateQuoteRequest{PricePerNight: "2,000,000"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				f.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				f.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.service.Update(context.Background(), tt.req, "test-id", constant.LanguageEnglish)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(2000000), res.PricePerNight)
				assert.Equal(t, "Guest", res.GuestName)
			}
		})
	}
}

func TestQuoteService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "successful delete",
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				f.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				f.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.service.Delete(context.Background(), "test-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteService_Export(t *testing.T) {
	f := newFixture(t)

	quote := model.Quote{ID: "test-id", BookingID: "BKK-123456", GuestName: "Guest"}

	f.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(quote, nil).
		Times(2)

	f.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	png, err := f.service.ExportPNG(context.Background(), "test-id", "high", constant.LanguageEnglish)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(png), "\x89PNG"))

	pdf, err := f.service.ExportPDF(context.Background(), "test-id", "normal", constant.LanguageEnglish)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
}
