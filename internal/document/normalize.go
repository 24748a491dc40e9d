package document

import (
	"context"
	"fmt"
	"log/slog"

	"go-mergesign/internal/office"
	"go-mergesign/internal/raster"
	"go-mergesign/internal/utils"
)

// NormalizerConfig tunes the source normalizer.
type NormalizerConfig struct {
	// MaxImageEdge caps a raster source's long edge in pixels before it
	// becomes a page; larger images are downsampled and re-encoded.
	// Zero disables the cap.
	MaxImageEdge int

	// JPEGQuality is the re-encode quality used when downsampling.
	JPEGQuality int

	Logger *slog.Logger
}

func (c *NormalizerConfig) defaults() {
	if c.JPEGQuality <= 0 {
		c.JPEGQuality = 80
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Normalizer converts raw source buffers into page-addressable documents.
// PDFs are introspected in place, images become single full-bleed pages,
// and office sources are rendered to pages through the Rasterizer.
type Normalizer struct {
	pages  PageSource
	render Rasterizer // nil when office rendering is not configured
	cfg    NormalizerConfig
}

// NewNormalizer creates a Normalizer on top of the given container codec
// and office rasterizer. render may be nil; office sources then fail.
func NewNormalizer(pages PageSource, render Rasterizer, cfg NormalizerConfig) *Normalizer {
	cfg.defaults()
	return &Normalizer{pages: pages, render: render, cfg: cfg}
}

// Normalize converts one source file into a Document. The returned
// document carries its container bytes in Data; committing them to disk is
// the caller's concern.
func (n *Normalizer) Normalize(ctx context.Context, src SourceFile) (*Document, error) {
	format, err := DetectFormat(src.Declared, src.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name, err)
	}

	var (
		data  []byte
		pages []Page
	)
	switch {
	case format.IsImage():
		data, pages, err = n.normalizeImage(ctx, src)
	case format == FormatPDF:
		data = src.Data
		pages, err = n.pages.Inspect(ctx, src.Data)
		if err != nil {
			err = fmt.Errorf("%s: %w: %v", src.Name, ErrCorruptSource, err)
		}
	default:
		data, pages, err = n.normalizeOffice(ctx, src, format)
	}
	if err != nil {
		return nil, err
	}

	n.cfg.Logger.Debug("source normalized",
		"name", src.Name, "format", format, "pages", len(pages))

	return &Document{
		ID:     utils.GenerateUUID(),
		Name:   src.Name,
		Format: format,
		Size:   int64(len(src.Data)),
		Pages:  pages,
		Config: NewConfigStore(len(pages)),
		Data:   data,
	}, nil
}

// normalizeImage turns a raster buffer into a one-page document sized one
// point per pixel. The optional downsampling pass only shrinks bytes; it
// never changes the page count.
func (n *Normalizer) normalizeImage(ctx context.Context, src SourceFile) ([]byte, []Page, error) {
	data, info, err := raster.Downsample(src.Data, n.cfg.MaxImageEdge, n.cfg.JPEGQuality)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w: %v", src.Name, ErrCorruptSource, err)
	}
	container, err := n.pages.FromImage(ctx, data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: import image: %w", src.Name, err)
	}
	page := Page{Index: 0, Width: float64(info.Width), Height: float64(info.Height)}
	return container, []Page{page}, nil
}

// normalizeOffice renders a DOCX or XLSX source into paginated form via
// print HTML. Pagination is the rasterizer's, sized to a fixed page format.
func (n *Normalizer) normalizeOffice(ctx context.Context, src SourceFile, format Format) ([]byte, []Page, error) {
	if n.render == nil {
		return nil, nil, fmt.Errorf("%s: office rendering not configured", src.Name)
	}

	var (
		html string
		err  error
	)
	if format == FormatDOCX {
		html, err = office.DocxHTML(src.Data)
	} else {
		html, err = office.XlsxHTML(src.Data)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w: %v", src.Name, ErrCorruptSource, err)
	}

	data, err := n.render.RenderPDF(ctx, html)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: render: %w", src.Name, err)
	}
	pages, err := n.pages.Inspect(ctx, data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: inspect rendered output: %w", src.Name, err)
	}
	return data, pages, nil
}
