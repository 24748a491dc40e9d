// Package document implements the assembly core: normalizing heterogeneous
// sources into page-addressable documents, per-page selection and rotation,
// deterministic merging, and signature placement mapping.
//
// The package has no knowledge of any concrete PDF library or renderer.
// Container encoding/decoding and office-format rasterization are consumed
// through the PageSource and Rasterizer capability interfaces; see
// internal/pdf and internal/office for the production implementations.
package document

import (
	"context"
	"path/filepath"
	"strings"
)

// Format identifies a supported source encoding.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatDOCX Format = "docx"
	FormatXLSX Format = "xlsx"
)

// IsImage reports whether the format is one of the raster encodings.
func (f Format) IsImage() bool { return f == FormatPNG || f == FormatJPEG }

// IsOffice reports whether the format requires rasterization before it can
// be addressed page by page.
func (f Format) IsOffice() bool { return f == FormatDOCX || f == FormatXLSX }

// mimeFormats is the declared-type half of the ingestion allow-list.
var mimeFormats = map[string]Format{
	"application/pdf": FormatPDF,
	"image/png":       FormatPNG,
	"image/jpeg":      FormatJPEG,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDOCX,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       FormatXLSX,
}

// extFormats is the filename-suffix half of the allow-list.
var extFormats = map[string]Format{
	".pdf":  FormatPDF,
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".docx": FormatDOCX,
	".xlsx": FormatXLSX,
}

// DetectFormat resolves a source's format from its declared MIME type or,
// failing that, its filename suffix. Both checks are case-insensitive.
// Returns ErrUnsupportedFormat when neither matches.
func DetectFormat(declared, filename string) (Format, error) {
	mime := strings.ToLower(strings.TrimSpace(declared))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if f, ok := mimeFormats[mime]; ok {
		return f, nil
	}
	if f, ok := extFormats[strings.ToLower(filepath.Ext(filename))]; ok {
		return f, nil
	}
	return "", ErrUnsupportedFormat
}

// SourceFile is a raw ingested buffer plus its declared identity.
// Immutable once handed to the normalizer.
type SourceFile struct {
	Name     string // original display name
	Declared string // declared MIME type, may be empty
	Data     []byte
}

// Page is one addressable page of a normalized document. Width and Height
// are the intrinsic size in points; Rotation is the rotation already baked
// into the container (multiple of 90, normalized to [0,360)).
type Page struct {
	Index    int     `json:"index"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation int     `json:"rotation"`
}

// Document is a normalized, page-addressable document. Its content is
// always container-encoded: Data holds the bytes until the owning session
// commits them to disk, after which StoredPath is authoritative.
type Document struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"` // original display name
	Format Format       `json:"format"`
	Size   int64        `json:"size"` // ingested byte length
	Pages  []Page       `json:"pages"`
	Config *ConfigStore `json:"-"`

	Data       []byte `json:"-"`
	StoredPath string `json:"-"`
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.Pages) }

// SignatureAsset is a raster image to be stamped onto pages. Transient,
// scoped to one stamping invocation.
type SignatureAsset struct {
	Name   string
	Format Format // FormatPNG or FormatJPEG
	Width  int    // intrinsic pixel width
	Height int    // intrinsic pixel height
	Path   string // stored raster bytes
}

// ComposePage is one page of a merge plan: a 0-based source index plus the
// rotation to add on top of whatever the container already records.
type ComposePage struct {
	Index  int
	Rotate int // degrees to add, one of 0/90/180/270
}

// ComposeDoc is one document's contribution to a merge plan, pages in
// ascending index order.
type ComposeDoc struct {
	Path  string
	Pages []ComposePage
}

// ComposeSpec is a fully resolved merge plan handed to the container
// encoder. Document order is output order.
type ComposeSpec struct {
	Docs          []ComposeDoc
	ObjectStreams bool // permit the denser cross-reference representation
}

// PageSource is the container codec capability. Implementations read and
// write the paginated output format, copy pages between documents, and
// apply rotation and image drawing to pages.
type PageSource interface {
	// Inspect reads page count, intrinsic sizes and rotations from a
	// container byte stream without re-encoding it.
	Inspect(ctx context.Context, data []byte) ([]Page, error)

	// FromImage builds a single-page container from a raster image, the
	// page sized one point per pixel with the image drawn full-bleed.
	FromImage(ctx context.Context, image []byte) ([]byte, error)

	// Compose materializes a merge plan into one container byte stream.
	Compose(ctx context.Context, spec ComposeSpec) ([]byte, error)

	// Stamp draws the signature asset onto the given pages of the stored
	// container, one placement rectangle per 0-based page index.
	Stamp(ctx context.Context, path string, asset *SignatureAsset, placements map[int]Rect) ([]byte, error)
}

// Rasterizer renders print-oriented HTML into a paginated container.
// Office sources pass through here on their way to page addressability.
type Rasterizer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}
