package service

import (
	"asteria/config"
	"asteria/infras/otel"
	"asteria/internal/domains/quote/display"
	"asteria/internal/domains/quote/export"
	"asteria/internal/domains/quote/importer"
	"asteria/internal/domains/quote/model"
	"asteria/internal/domains/quote/model/dto"
	"asteria/internal/domains/quote/repository"
	"asteria/shared"
	"asteria/shared/cache"
	"asteria/shared/constant"
	gDto "asteria/shared/dto"
	"asteria/shared/failure"
	"asteria/shared/validator"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetQuote    = "quote:get"
	cacheGetAllQuote = "quote:gets"
	cacheCountQuote  = "quote:count"
)

type Quote interface {
	Preview(ctx context.Context, req dto.QuoteRequest, lang string) (dto.QuoteResponse, error)
	Latest(ctx context.Context, lang string) (dto.QuoteResponse, error)
	Create(ctx context.Context, req dto.QuoteRequest, lang string) (dto.QuoteResponse, error)
	Import(ctx context.Context, text, lang string) (dto.QuoteResponse, error)
	SampleLine(ctx context.Context, lang string) string
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, lang string) (dto.GetQuotesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id, lang string) (dto.QuoteResponse, error)
	Update(ctx context.Context, req dto.UpdateQuoteRequest, id, lang string) (dto.QuoteResponse, error)
	Delete(ctx context.Context, id string) error
	ExportPNG(ctx context.Context, id, preset, lang string) ([]byte, error)
	ExportPDF(ctx context.Context, id, preset, lang string) ([]byte, error)
}

type serviceImpl struct {
	repo     repository.Quote
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	display  display.Store
	exporter export.Export
}

func New(repo repository.Quote, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, store display.Store, exporter export.Export) Quote {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		display:  store,
		exporter: exporter,
	}
}

func (s *serviceImpl) lang(lang string) string {
	if lang == constant.LanguageEnglish || lang == constant.LanguageVietnamese {
		return lang
	}

	return s.cfg.App.Language
}

// Preview derives the display-ready quote without persisting anything and
// publishes it to the summary display.
func (s *serviceImpl) Preview(ctx context.Context, req dto.QuoteRequest, lang string) (res dto.QuoteResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Preview")
	defer scope.End()
	defer scope.TraceIfError(err)

	quote := req.ToModel()
	s.display.Publish(quote)

	res.FromModel(quote, s.lang(lang))

	return res, nil
}

// Latest returns the most recently previewed or saved quote.
func (s *serviceImpl) Latest(ctx context.Context, lang string) (res dto.QuoteResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Latest")
	defer scope.End()
	defer scope.TraceIfError(err)

	quote, ok := s.display.Latest()
	if !ok {
		return res, failure.NotFound("no quote has been computed yet") // nolint:wrapcheck
	}

	res.FromModel(quote, s.lang(lang))

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.QuoteRequest, lang string) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	quote := req.ToModel()

	if err = s.repo.Insert(ctx, quote); err != nil {
		log.Error().Err(err).Msg("failed to create quote")

		return res, fmt.Errorf("failed to create quote: %w", err)
	}

	s.display.Publish(quote)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllQuote)
		shared.InvalidateCaches(c, s.cache, cacheCountQuote)
	}()

	res.FromModel(quote, s.lang(lang))

	return res, nil
}

// Import parses one pasted tab-separated line into a full quote preview.
// Nothing is persisted, a malformed line leaves no partial state behind.
func (s *serviceImpl) Import(ctx context.Context, text, lang string) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Import")
	defer scope.End()
	defer scope.TraceIfError(err)

	line := strings.TrimSpace(text)
	if line == constant.Empty {
		return res, failure.BadRequestFromString("import text cannot be empty") // nolint:wrapcheck
	}

	req, err := importer.ParseLine(line)
	if err != nil {
		log.Warn().Err(err).Msg("rejected bulk import line")

		return res, err
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	return s.Preview(ctx, req, lang)
}

// SampleLine produces a demo guest profile in the import format.
func (s *serviceImpl) SampleLine(ctx context.Context, lang string) string {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SampleLine")
	defer scope.End()

	return importer.SampleLine(s.lang(lang))
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, lang string) (res dto.GetQuotesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllQuote, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for quotes")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count quotes")

		return res, fmt.Errorf("failed to count quotes: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get quotes")

		return res, fmt.Errorf("failed to get quotes: %w", err)
	}

	res.FromModels(models, total, req.Limit, s.lang(lang))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save quotes to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountQuote, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for quote count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count quotes")

		return res, fmt.Errorf("failed to count quotes: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save quote count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id, lang string) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	quote, err := s.fetch(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(quote, s.lang(lang))

	return res, nil
}

// fetch loads a quote by id through the cache.
func (s *serviceImpl) fetch(ctx context.Context, id string) (quote model.Quote, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetQuote, id)

	err = s.cache.Get(ctx, cacheKey, &quote)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for quote")

		return quote, nil
	}

	quote, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get quote")

		return quote, fmt.Errorf("failed to get quote: %w", err)
	}

	if quote.ID == constant.Empty {
		return quote, failure.NotFound("quote not found") // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, quote, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save quote to cache")
		}
	}()

	return quote, nil
}

// Update merges the partial edit onto the stored row and re-derives
// nights and the corrected check-out so the persisted quote stays
// internally consistent.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateQuoteRequest, id, lang string) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateQuoteRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	quote, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get quote for update")

		return res, fmt.Errorf("failed to get quote for update: %w", err)
	}

	if quote.ID == constant.Empty {
		return res, failure.NotFound("quote not found") // nolint:wrapcheck
	}

	req.ApplyTo(&quote)

	if err = s.repo.Update(ctx, quoteColumns(quote), filter); err != nil {
		log.Error().Err(err).Msg("failed to update quote")

		return res, fmt.Errorf("failed to update quote: %w", err)
	}

	s.display.Publish(quote)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetQuote, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete quote from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllQuote)
		shared.InvalidateCaches(c, s.cache, cacheCountQuote)
	}()

	res.FromModel(quote, s.lang(lang))

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if quote exists")

		return fmt.Errorf("failed to check if quote exists: %w", err)
	}

	if !exist {
		log.Error().Msg("quote not found")

		return failure.NotFound("quote not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete quote")

		return fmt.Errorf("failed to delete quote: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetQuote, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete quote from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllQuote)
		shared.InvalidateCaches(c, s.cache, cacheCountQuote)
	}()

	return nil
}

func (s *serviceImpl) ExportPNG(ctx context.Context, id, preset, lang string) (data []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExportPNG")
	defer scope.End()
	defer scope.TraceIfError(err)

	quote, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.exporter.RenderPNG(ctx, quote, preset, s.lang(lang))
}

func (s *serviceImpl) ExportPDF(ctx context.Context, id, preset, lang string) (data []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExportPDF")
	defer scope.End()
	defer scope.TraceIfError(err)

	quote, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.exporter.RenderPDF(ctx, quote, preset, s.lang(lang))
}

// quoteColumns flattens a quote into the column map used by partial
// updates so every derived field lands in the same write.
func quoteColumns(quote model.Quote) map[string]any {
	return map[string]any{
		model.FieldBookingID:          quote.BookingID,
		model.FieldGuestName:          quote.GuestName,
		model.FieldEmail:              quote.Email,
		model.FieldPhone:              quote.Phone,
		model.FieldCheckIn:            quote.CheckIn,
		model.FieldCheckOut:           quote.CheckOut,
		model.FieldNights:             quote.Nights,
		model.FieldAdults:             quote.Adults,
		model.FieldChildren:           quote.Children,
		model.FieldChildrenDetails:    quote.ChildrenDetails,
		model.FieldRoomType:           quote.RoomType,
		model.FieldPricePerNight:      quote.PricePerNight,
		model.FieldAdditionalFees:     quote.AdditionalFees,
		model.FieldSpecialRequests:    quote.SpecialRequests,
		model.FieldAdditionalServices: quote.AdditionalServices,
		model.FieldNotes:              quote.Notes,
	}
}
