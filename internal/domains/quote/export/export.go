package export

import (
	"asteria/config"
	"asteria/infras/otel"
	"asteria/infras/s3"
	"asteria/internal/domains/quote/model"
	"asteria/internal/domains/quote/model/dto"
	"asteria/shared/constant"
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/johnfercher/maroto/v2"
	marotoImage "github.com/johnfercher/maroto/v2/pkg/components/image"
	marotoConfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/rs/zerolog/log"
)

const (
	PresetNormal = "normal"
	PresetHigh   = "high"
	PresetUltra  = "ultra"
)

// Preset pairs a raster scale factor with the resampling filter used to
// reach it. PNG output is lossless, so quality is decided by how the base
// card is upscaled.
type Preset struct {
	Name   string
	Scale  int
	Filter imaging.ResampleFilter
}

var presets = map[string]Preset{
	PresetNormal: {Name: PresetNormal, Scale: 2, Filter: imaging.Linear},
	PresetHigh:   {Name: PresetHigh, Scale: 3, Filter: imaging.CatmullRom},
	PresetUltra:  {Name: PresetUltra, Scale: 4, Filter: imaging.Lanczos},
}

// PresetFor resolves a preset by name, falling back to normal.
func PresetFor(name string) Preset {
	if preset, ok := presets[name]; ok {
		return preset
	}

	return presets[PresetNormal]
}

type Export interface {
	RenderPNG(ctx context.Context, quote model.Quote, presetName, lang string) ([]byte, error)
	RenderPDF(ctx context.Context, quote model.Quote, presetName, lang string) ([]byte, error)
}

type exportImpl struct {
	cfg      *config.Config
	otel     otel.Otel
	s3       s3.S3
	renderer *renderer
}

func New(cfg *config.Config, otl otel.Otel, s3Client s3.S3) (Export, error) {
	r, err := newRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize quote renderer: %w", err)
	}

	return &exportImpl{
		cfg:      cfg,
		otel:     otl,
		s3:       s3Client,
		renderer: r,
	}, nil
}

// RenderPNG rasterizes the quote card and upscales it per the preset.
func (e *exportImpl) RenderPNG(ctx context.Context, quote model.Quote, presetName, lang string) (data []byte, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelExportScopeName, constant.OtelExportScopeName+".RenderPNG")
	defer scope.End()
	defer scope.TraceIfError(err)

	preset := PresetFor(presetName)
	scope.SetAttribute("preset", preset.Name)

	var view dto.QuoteResponse
	view.FromModel(quote, lang)

	base := e.renderer.Render(view)
	scaled := imaging.Resize(base, base.Bounds().Dx()*preset.Scale, 0, preset.Filter)

	buf := new(bytes.Buffer)
	if err = imaging.Encode(buf, scaled, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode quote PNG: %w", err)
	}

	data = buf.Bytes()

	e.archive(ctx, quote, preset, "png", constant.ContentTypePNG, data)

	return data, nil
}

// RenderPDF wraps the rendered PNG centered on a portrait A4 page.
func (e *exportImpl) RenderPDF(ctx context.Context, quote model.Quote, presetName, lang string) (data []byte, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelExportScopeName, constant.OtelExportScopeName+".RenderPDF")
	defer scope.End()
	defer scope.TraceIfError(err)

	pngData, err := e.RenderPNG(ctx, quote, presetName, lang)
	if err != nil {
		return nil, err
	}

	cfg := marotoConfig.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRows(
		marotoImage.NewFromBytesRow(250, pngData, extension.Png, props.Rect{
			Center:  true,
			Percent: 92,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote PDF: %w", err)
	}

	data = doc.GetBytes()

	e.archive(ctx, quote, PresetFor(presetName), "pdf", constant.ContentTypePDF, data)

	return data, nil
}

// archive pushes a copy of the artifact to object storage when enabled.
// Uploads run in the background, a failed upload never fails the export.
func (e *exportImpl) archive(ctx context.Context, quote model.Quote, preset Preset, ext, contentType string, data []byte) {
	if !e.cfg.Export.S3.Enable {
		return
	}

	fileName := fmt.Sprintf("%s-%s.%s", quote.BookingID, preset.Name, ext)

	go func() {
		c := context.WithoutCancel(ctx)

		url, err := e.s3.UploadFileBytes(c, e.cfg.Export.S3.BucketName, e.cfg.Export.S3.Directory, fileName, contentType, data)
		if err != nil {
			log.Error().Err(err).Str("fileName", fileName).Msg("failed to archive export artifact")

			return
		}

		log.Info().Str("url", url).Msg("archived export artifact")
	}()
}
