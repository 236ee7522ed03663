package quote

import (
	"asteria/infras/otel"
	"asteria/internal/domains/quote/model"
	"asteria/internal/domains/quote/model/dto"
	"asteria/internal/domains/quote/service"
	"asteria/shared/constant"
	gDto "asteria/shared/dto"
	"asteria/shared/validator"
	"asteria/transport/http/response"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Quote
	otel    otel.Otel
}

func New(service service.Quote, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/quotes", func(routerGroup chi.Router) {
		routerGroup.Post("/preview", handler.PreviewQuote)
		routerGroup.Get("/preview/latest", handler.GetLatestQuote)
		routerGroup.Post("/import", handler.ImportQuote)
		routerGroup.Get("/import/sample", handler.GetImportSample)
		routerGroup.Post("/", handler.CreateQuote)
		routerGroup.Get("/", handler.GetQuotes)
		routerGroup.Get("/{id}", handler.GetQuoteByID)
		routerGroup.Patch("/{id}", handler.UpdateQuote)
		routerGroup.Delete("/{id}", handler.DeleteQuote)
		routerGroup.Get("/{id}/export/png", handler.ExportQuotePNG)
		routerGroup.Get("/{id}/export/pdf", handler.ExportQuotePDF)
	})
}

// PreviewQuote derives a full quote from the raw form fields without
// persisting it.
// @Summary Preview a quote
// @Description Compute nights, totals and formatted amounts from raw form fields.
// @Tags Quote
// @Accept json
// @Produce json
// @Param lang query string false "Locale for formatted amounts (en or vi)"
// @Param request body dto.QuoteRequest true "Quote Request"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Derived quote"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quotes/preview [post]
func (handler *Handler) PreviewQuote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PreviewQuote")
	defer scope.End()

	req := dto.QuoteRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Preview(ctx, req, r.URL.Query().Get(constant.RequestParamLang))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to preview quote")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quote previewed successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetLatestQuote returns the most recently previewed or saved quote for
// the summary display.
// @Summary Get the latest quote
// @Description Retrieve the quote most recently published to the summary display.
// @Tags Quote
// @Produce json
// @Param lang query string false "Locale for formatted amounts (en or vi)"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Latest quote"
// @Failure 404 {object} response.Error
// @Router /v1/quotes/preview/latest [get]
func (handler *Handler) GetLatestQuote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLatestQuote")
	defer scope.End()

	res, err := handler.service.Latest(ctx, r.URL.Query().Get(constant.RequestParamLang))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get latest quote")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Latest quote retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// ImportQuote parses one pasted tab-separated booking line into a quote
// preview.
// @Summary Import a booking line
// @Description Parse a tab-separated booking line into a derived quote preview.
// @Tags Quote
// @Accept json
// @Produce json
// @Param lang query string false "Locale for formatted amounts (en or vi)"
// @Param request body dto.ImportQuoteRequest true "Import Request"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Imported quote"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quotes/import [post]
// @Security BearerAuth
func (handler *Handler) ImportQuote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ImportQuote")
	defer scope.End()

	req := dto.ImportQuoteRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Import(ctx, req.Text, r.URL.Query().Get(constant.RequestParamLang))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to import quote")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quote imported successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetImportSample returns a demo booking line in the import format.
// @Summary Get a sample import line
// @Description Produce a demo guest profile in the tab-separated import format.
// @Tags Quote
// @Produce json
// @Param lang query string false "Locale for formatted amounts (en or vi)"
// @Success 200 {object} response.Data[dto.SampleLineResponse] "Sample line"
// @Router /v1/quotes/import/sample [get]
func (handler *Handler) GetImportSample(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImportSample")
	defer scope.End()

	res := dto.SampleLineResponse{
		Line: handler.service.SampleLine(ctx, r.URL.Query().Get(constant.RequestParamLang)),
	}

	scope.AddEvent("Sample line generated successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// CreateQuote persists a new quote.
// @Summary Create a new quote
// @Description Derive and persist a quote from the raw form fields.
// @Tags Quote
// @Accept json
// @Produce json
// @Param lang query string false "Locale for formatted amounts (en or vi)"
// @Param request body dto.QuoteRequest true "Quote Request"
// @Success 201 {object} response.Data[dto.QuoteResponse] "Created quote"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quotes [post]
// @Security BearerAuth
func (handler *Handler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateQuote")
	defer scope.End()

	req := dto.QuoteRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req, r.URL.Query().Get(constant.RequestParamLang))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create quote")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quote created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetQuotes retrieves all quotes based on query parameters.
// @Summary Get all quotes
// @Description Retrieve all quotes with optional filtering and pagination.
// @Tags Quote
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_id query string false "Filter by booking reference"
// @Param guest_name query string false "Filter by guest name"
// @Param email query string false "Filter by email"
// @Param lang query string false "Locale for formatted amounts (en or vi)"
// @Success 200 {object} response.Data[dto.GetQuotesResponse] "List of quotes"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quotes [get]
// @Security BearerAuth
func (handler *Handler) GetQuotes(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQuotes")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if bookingID := r.URL.Query().Get(model.FieldBookingID); bookingID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBookingID,
			Operator: gDto.FilterOperatorEq,
			Value:    bookingID,
			Table:    model.TableName,
		})
	}

	if guestName := r.URL.Query().Get(model.FieldGuestName); guestName != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldGuestName,
			Operator: gDto.FilterOperatorLike,
			Value:    guestName,
			Table:    model.TableName,
		})
	}

	if email := r.URL.Query().Get(model.FieldEmail); email != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorEq,
			Value:    email,
			Table:    model.TableName,
		})
	}

	quotes, err := handler.service.GetAll(ctx, queryParams, filterGroup, r.URL.Query().Get(constant.RequestParamLang))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get quotes")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quotes retrieved successfully")

	response.WithJSON(w, http.StatusOK, quotes)
}

// GetQuoteByID retrieves a quote by its ID.
// @Summary Get a quote by ID
// @Description Retrieve a quote by its unique identifier.
// @Tags Quote
// @Produce json
// @Param id path string true "Quote ID"
// @Param lang query string false "Locale for formatted amounts (en or vi)"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Quote details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quotes/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetQuoteByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQuoteByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	quote, err := handler.service.Get(ctx, id, r.URL.Query().Get(constant.RequestParamLang))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get quote by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quote retrieved successfully")

	response.WithJSON(w, http.StatusOK, quote)
}

// UpdateQuote updates an existing quote by its ID.
// @Summary Update a quote by ID
// @Description Merge partial edits onto a stored quote and re-derive its totals.
// @Tags Quote
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param lang query string false "Locale for formatted amounts (en or vi)"
// @Param request body dto.UpdateQuoteRequest true "Update Quote Request"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Updated quote"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quotes/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateQuote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateQuote")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateQuoteRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Update(ctx, req, id, r.URL.Query().Get(constant.RequestParamLang))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update quote")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quote updated successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteQuote deletes a quote by its ID.
// @Summary Delete a quote by ID
// @Description Delete a quote using its unique identifier.
// @Tags Quote
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.Message "Quote deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quotes/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteQuote")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete quote")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quote deleted successfully")

	response.WithMessage(w, http.StatusOK, "Quote deleted successfully")
}

// ExportQuotePNG renders the quote card as a downloadable PNG.
// @Summary Export a quote as PNG
// @Description Render the quote card as a PNG at the requested quality preset.
// @Tags Quote
// @Produce png
// @Param id path string true "Quote ID"
// @Param quality query string false "Quality preset (normal, high or ultra)"
// @Param lang query string false "Locale for formatted amounts (en or vi)"
// @Success 200 {file} binary "PNG image"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quotes/{id}/export/png [get]
// @Security BearerAuth
func (handler *Handler) ExportQuotePNG(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportQuotePNG")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	preset := r.URL.Query().Get(constant.RequestParamQuality)

	data, err := handler.service.ExportPNG(ctx, id, preset, r.URL.Query().Get(constant.RequestParamLang))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export quote as PNG")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quote exported as PNG successfully")

	writeAttachment(w, data, constant.ContentTypePNG, fmt.Sprintf("quote-%s.png", id))
}

// ExportQuotePDF renders the quote card as a downloadable PDF.
// @Summary Export a quote as PDF
// @Description Render the quote card as an A4 PDF at the requested quality preset.
// @Tags Quote
// @Produce application/pdf
// @Param id path string true "Quote ID"
// @Param quality query string false "Quality preset (normal, high or ultra)"
// @Param lang query string false "Locale for formatted amounts (en or vi)"
// @Success 200 {file} binary "PDF document"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quotes/{id}/export/pdf [get]
// @Security BearerAuth
func (handler *Handler) ExportQuotePDF(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportQuotePDF")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	preset := r.URL.Query().Get(constant.RequestParamQuality)

	data, err := handler.service.ExportPDF(ctx, id, preset, r.URL.Query().Get(constant.RequestParamLang))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export quote as PDF")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quote exported as PDF successfully")

	writeAttachment(w, data, constant.ContentTypePDF, fmt.Sprintf("quote-%s.pdf", id))
}

func writeAttachment(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set(constant.RequestHeaderContentType, contentType)
	w.Header().Set(constant.RequestHeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(data); err != nil {
		log.Error().Err(err).Msg("failed to write export payload")
	}
}
