package document

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log/slog"
)

// StampSpec describes one signing run: the target documents in output
// order, the signature asset, and the committed placement.
type StampSpec struct {
	Documents []*Document
	Asset     *SignatureAsset
	Placement Placement
}

// Stamper draws a signature asset onto the resolved pages of one or more
// documents, producing a single signed container or a zip of them.
type Stamper struct {
	pages  PageSource
	logger *slog.Logger
}

// NewStamper creates a Stamper over the given container codec.
func NewStamper(pages PageSource, logger *slog.Logger) *Stamper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stamper{pages: pages, logger: logger}
}

// Stamp processes the targets strictly one at a time: a document is fully
// stamped and serialized before the next begins, bounding peak memory and
// fixing the archive's entry order. Any failure aborts the whole batch
// with no partial output. One target yields the raw signed container;
// several yield a zip with one entry per target, in target order.
func (s *Stamper) Stamp(ctx context.Context, spec StampSpec) (*Artifact, error) {
	if len(spec.Documents) == 0 {
		return nil, fmt.Errorf("stamp: no documents")
	}
	if spec.Asset == nil || !spec.Asset.Format.IsImage() {
		return nil, fmt.Errorf("stamp: %w", ErrEmbedFailure)
	}

	type signed struct {
		name string
		data []byte
	}
	outputs := make([]signed, 0, len(spec.Documents))

	for _, doc := range spec.Documents {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("stamp: %w", ErrAborted)
		}

		placements := make(map[int]Rect)
		for _, idx := range spec.Placement.Pages.Pages(doc.PageCount()) {
			pg := doc.Pages[idx]
			placements[idx] = spec.Placement.PlaceOn(pg.Width, pg.Height, spec.Asset)
		}

		data, err := s.pages.Stamp(ctx, doc.StoredPath, spec.Asset, placements)
		if err != nil {
			if Aborted(err) {
				return nil, fmt.Errorf("stamp: %w", ErrAborted)
			}
			return nil, fmt.Errorf("stamp %s: %w", doc.Name, err)
		}
		outputs = append(outputs, signed{name: SignedName(doc.Name), data: data})
	}

	if len(outputs) == 1 {
		s.logger.Info("document signed", "name", outputs[0].name, "bytes", len(outputs[0].data))
		return &Artifact{Name: outputs[0].name, MIME: PDFMediaType, Data: outputs[0].data}, nil
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, out := range outputs {
		w, err := zw.Create(out.name)
		if err != nil {
			return nil, fmt.Errorf("stamp: archive entry %s: %w", out.name, err)
		}
		if _, err := w.Write(out.data); err != nil {
			return nil, fmt.Errorf("stamp: archive entry %s: %w", out.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("stamp: close archive: %w", err)
	}

	s.logger.Info("documents signed", "count", len(outputs), "bytes", buf.Len())
	return &Artifact{Name: DefaultArchiveName, MIME: ZipMediaType, Data: buf.Bytes()}, nil
}
