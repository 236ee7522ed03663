package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asteria/internal/domains/quote/model"
	"asteria/internal/domains/quote/repository"
	gDto "asteria/shared/dto"
	gModel "asteria/shared/model"
)

func seedQuote(t *testing.T, repo repository.Quote, id, guestName string, createdAt time.Time) {
	t.Helper()

	err := repo.Insert(context.Background(), model.Quote{
		ID:        id,
		BookingID: "BKK-" + id,
		GuestName: guestName,
		Email:     id + "@example.com",
		Nights:    2,
		Adults:    2,
		Metadata:  gModel.Metadata{CreatedAt: createdAt},
	})
	require.NoError(t, err)
}

func idFilter(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
		},
	}
}

func TestMemoryQuoteRepository_CRUD(t *testing.T) {
	repo := repository.NewMemory()
	ctx := context.Background()

	now := time.Now()
	seedQuote(t, repo, "q1", "Nguyễn Văn An", now.Add(-time.Hour))
	seedQuote(t, repo, "q2", "Trần Thị Bình", now)

	quote, err := repo.Get(ctx, idFilter("q1"))
	assert.NoError(t, err)
	assert.Equal(t, "BKK-q1", quote.BookingID)

	missing, err := repo.Get(ctx, idFilter("missing"))
	assert.NoError(t, err)
	assert.Empty(t, missing.ID)

	exists, err := repo.Exist(ctx, idFilter("q2"))
	assert.NoError(t, err)
	assert.True(t, exists)

	count, err := repo.Count(ctx, gDto.FilterGroup{})
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	err = repo.Delete(ctx, idFilter("q1"))
	assert.NoError(t, err)

	count, err = repo.Count(ctx, gDto.FilterGroup{})
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemoryQuoteRepository_GetAll(t *testing.T) {
	repo := repository.NewMemory()
	ctx := context.Background()

	now := time.Now()
	seedQuote(t, repo, "q1", "Nguyễn Văn An", now.Add(-2*time.Hour))
	seedQuote(t, repo, "q2", "Trần Thị Bình", now.Add(-time.Hour))
	seedQuote(t, repo, "q3", "Lê Văn Cường", now)

	t.Run("orders newest first", func(t *testing.T) {
		quotes, err := repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})

		assert.NoError(t, err)
		require.Len(t, quotes, 3)
		assert.Equal(t, "q3", quotes[0].ID)
		assert.Equal(t, "q1", quotes[2].ID)
	})

	t.Run("paginates", func(t *testing.T) {
		quotes, err := repo.GetAll(ctx, gDto.QueryParams{Page: 2, Limit: 2}, gDto.FilterGroup{})

		assert.NoError(t, err)
		require.Len(t, quotes, 1)
		assert.Equal(t, "q1", quotes[0].ID)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		quotes, err := repo.GetAll(ctx, gDto.QueryParams{Page: 5, Limit: 2}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Empty(t, quotes)
	})

	t.Run("filters by guest name substring", func(t *testing.T) {
		quotes, err := repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldGuestName,
					Operator: gDto.FilterOperatorLike,
					Value:    "bình",
					Table:    model.TableName,
				},
			},
		})

		assert.NoError(t, err)
		require.Len(t, quotes, 1)
		assert.Equal(t, "q2", quotes[0].ID)
	})
}

func TestMemoryQuoteRepository_Update(t *testing.T) {
	repo := repository.NewMemory()
	ctx := context.Background()

	seedQuote(t, repo, "q1", "Nguyễn Văn An", time.Now())

	checkIn := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	err := repo.Update(ctx, map[string]any{
		model.FieldGuestName:     "Renamed Guest",
		model.FieldCheckIn:       checkIn,
		model.FieldNights:        3,
		model.FieldPricePerNight: int64(2500000),
	}, idFilter("q1"))
	assert.NoError(t, err)

	quote, err := repo.Get(ctx, idFilter("q1"))
	assert.NoError(t, err)
	assert.Equal(t, "Renamed Guest", quote.GuestName)
	assert.Equal(t, checkIn, quote.CheckIn)
	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, int64(2500000), quote.PricePerNight)
	assert.Equal(t, "BKK-q1", quote.BookingID)
}
