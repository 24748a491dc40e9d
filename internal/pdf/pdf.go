// Package pdf implements the paginated container codec on top of pdfcpu.
//
// It is the only package that knows the output format is PDF: page
// introspection, image import, merge composition and signature stamping
// all funnel through here. The assembly core consumes it through the
// document.PageSource interface.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"go-mergesign/internal/document"
)

// Encoder reads and writes the container format via pdfcpu. Stateless and
// safe for concurrent use.
type Encoder struct{}

// NewEncoder returns the pdfcpu-backed container codec.
func NewEncoder() *Encoder { return &Encoder{} }

// Inspect parses the container and reports each page's intrinsic size and
// rotation without re-encoding anything.
func (e *Encoder) Inspect(ctx context.Context, data []byte) ([]document.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conf := model.NewDefaultConfiguration()
	pctx, err := pdfapi.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	if err := pctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}

	pages := make([]document.Page, 0, pctx.PageCount)
	for nr := 1; nr <= pctx.PageCount; nr++ {
		_, _, inh, err := pctx.PageDict(nr, false)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", nr, err)
		}
		box := inh.CropBox
		if box == nil {
			box = inh.MediaBox
		}
		if box == nil {
			return nil, fmt.Errorf("page %d: no media box", nr)
		}
		rot := inh.Rotate % 360
		if rot < 0 {
			rot += 360
		}
		pages = append(pages, document.Page{
			Index:    nr - 1,
			Width:    box.Width(),
			Height:   box.Height(),
			Rotation: rot,
		})
	}
	return pages, nil
}

// FromImage builds a single-page container around a raster image. The
// default import sizes the page to the image at one point per pixel and
// draws it full-bleed at the origin.
func (e *Encoder) FromImage(ctx context.Context, image []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	imp := pdfcpu.DefaultImportConfig()
	if err := pdfapi.ImportImages(nil, &buf, []io.Reader{bytes.NewReader(image)}, imp, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("import image: %w", err)
	}
	return buf.Bytes(), nil
}

// Compose materializes a merge plan. Per document, pages gaining rotation
// are rotated in grouped passes over the full file so page numbering stays
// stable, then the selection is trimmed out, and finally all segments are
// concatenated. Outline entries generated by the concatenation are
// stripped from the result; a single-segment plan keeps its source's own
// outline and skips the concatenation entirely.
func (e *Encoder) Compose(ctx context.Context, spec document.ComposeSpec) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.WriteObjectStream = spec.ObjectStreams
	conf.WriteXRefStream = spec.ObjectStreams

	segments := make([][]byte, 0, len(spec.Docs))
	for _, d := range spec.Docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(d.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", document.ErrSourceUnreadable, d.Path, err)
		}

		byRotation := make(map[int][]string)
		selected := make([]string, 0, len(d.Pages))
		for _, p := range d.Pages {
			nr := strconv.Itoa(p.Index + 1)
			selected = append(selected, nr)
			if p.Rotate != 0 {
				byRotation[p.Rotate] = append(byRotation[p.Rotate], nr)
			}
		}

		for _, rot := range []int{90, 180, 270} {
			pages := byRotation[rot]
			if len(pages) == 0 {
				continue
			}
			var rotated bytes.Buffer
			if err := pdfapi.Rotate(bytes.NewReader(data), &rotated, rot, pages, conf); err != nil {
				return nil, fmt.Errorf("rotate pages %v by %d: %w", pages, rot, err)
			}
			data = rotated.Bytes()
		}

		var trimmed bytes.Buffer
		if err := pdfapi.Trim(bytes.NewReader(data), &trimmed, selected, conf); err != nil {
			return nil, fmt.Errorf("select pages %v: %w", selected, err)
		}
		segments = append(segments, trimmed.Bytes())
	}

	switch len(segments) {
	case 0:
		return nil, fmt.Errorf("compose: empty plan")
	case 1:
		return segments[0], nil
	}

	readers := make([]io.ReadSeeker, len(segments))
	for i, seg := range segments {
		readers[i] = bytes.NewReader(seg)
	}
	var merged bytes.Buffer
	if err := pdfapi.MergeRaw(readers, &merged, false, conf); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}

	var clean bytes.Buffer
	if err := pdfapi.RemoveBookmarks(bytes.NewReader(merged.Bytes()), &clean, conf); err != nil {
		return nil, fmt.Errorf("remove merge bookmarks: %w", err)
	}
	return clean.Bytes(), nil
}

// Stamp draws the signature asset onto each placed page. The watermark is
// parsed with absolute scaling so the drawn footprint matches the placement
// rectangle, then anchored bottom-left and shifted to the rectangle's
// corner through the Dx/Dy offsets.
func (e *Encoder) Stamp(ctx context.Context, path string, asset *document.SignatureAsset, placements map[int]document.Rect) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", document.ErrSourceUnreadable, path, err)
	}
	if len(placements) == 0 {
		return data, nil
	}

	conf := model.NewDefaultConfiguration()
	for _, idx := range sortedPageIndices(placements) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rect := placements[idx]
		scale := rect.W / float64(asset.Width)
		desc := fmt.Sprintf("scale:%.6f abs, pos:bl, rot:0, op:1", scale)

		wm, err := pdfcpu.ParseImageWatermarkDetails(asset.Path, desc, true, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", document.ErrEmbedFailure, err)
		}
		wm.Dx = rect.X
		wm.Dy = rect.Y

		var stamped bytes.Buffer
		pages := []string{strconv.Itoa(idx + 1)}
		if err := pdfapi.AddWatermarks(bytes.NewReader(data), &stamped, pages, wm, conf); err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", document.ErrEmbedFailure, idx+1, err)
		}
		data = stamped.Bytes()
	}
	return data, nil
}

func sortedPageIndices(m map[int]document.Rect) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
