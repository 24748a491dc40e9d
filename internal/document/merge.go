package document

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// PDFMediaType is the media type of every produced artifact except the
// multi-document signing archive.
const PDFMediaType = "application/pdf"

// ZipMediaType is the media type of the signing archive.
const ZipMediaType = "application/zip"

// Artifact is a finished output: bytes plus the suggested filename the
// save collaborator should offer.
type Artifact struct {
	Name string
	MIME string
	Data []byte
}

// MergeSpec describes one merge run: documents in output order, each with
// its own page configuration, plus the resolved artifact name and whether
// the container encoder may use the denser cross-reference representation.
type MergeSpec struct {
	Documents  []*Document
	OutputName string
	Compress   bool
}

// Merger concatenates selected, rotated pages from a document list into
// one output container.
type Merger struct {
	pages  PageSource
	logger *slog.Logger
}

// NewMerger creates a Merger over the given container codec.
func NewMerger(pages PageSource, logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Merger{pages: pages, logger: logger}
}

// Merge produces the output artifact. Output page order is exactly the
// concatenation of each document's selected pages in ascending index
// order, documents visited in list order; each selected page's output
// rotation is its intrinsic rotation plus the configured one, mod 360.
// The first unreadable document aborts the whole merge; no partial
// artifact is ever returned.
func (m *Merger) Merge(ctx context.Context, spec MergeSpec) (*Artifact, error) {
	plan := ComposeSpec{ObjectStreams: spec.Compress}
	total := 0

	for _, doc := range spec.Documents {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("merge: %w", ErrAborted)
		}
		if _, err := os.Stat(doc.StoredPath); err != nil {
			return nil, fmt.Errorf("merge %s: %w: %v", doc.Name, ErrSourceUnreadable, err)
		}

		cd := ComposeDoc{Path: doc.StoredPath}
		for i := 0; i < doc.PageCount(); i++ {
			cfg := doc.Config.Get(i)
			if !cfg.Selected {
				continue
			}
			cd.Pages = append(cd.Pages, ComposePage{Index: i, Rotate: cfg.Rotation})
		}
		if len(cd.Pages) == 0 {
			// A fully deselected document contributes nothing.
			continue
		}
		total += len(cd.Pages)
		plan.Docs = append(plan.Docs, cd)
	}

	if total == 0 {
		return nil, fmt.Errorf("merge: %w", ErrEmptySelection)
	}

	data, err := m.pages.Compose(ctx, plan)
	if err != nil {
		if Aborted(err) {
			return nil, fmt.Errorf("merge: %w", ErrAborted)
		}
		return nil, fmt.Errorf("merge: %w", err)
	}

	m.logger.Info("merge complete",
		"documents", len(plan.Docs), "pages", total, "bytes", len(data))

	return &Artifact{Name: spec.OutputName, MIME: PDFMediaType, Data: data}, nil
}
