package document

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"testing"
)

// fakePages implements PageSource with per-test closures. A nil closure
// makes the corresponding call fail loudly.
type fakePages struct {
	inspectFn func(data []byte) ([]Page, error)
	imageFn   func(img []byte) ([]byte, error)
	composeFn func(spec ComposeSpec) ([]byte, error)
	stampFn   func(path string, asset *SignatureAsset, placements map[int]Rect) ([]byte, error)
}

func (f *fakePages) Inspect(_ context.Context, data []byte) ([]Page, error) {
	if f.inspectFn == nil {
		return nil, errors.New("unexpected Inspect call")
	}
	return f.inspectFn(data)
}

func (f *fakePages) FromImage(_ context.Context, img []byte) ([]byte, error) {
	if f.imageFn == nil {
		return nil, errors.New("unexpected FromImage call")
	}
	return f.imageFn(img)
}

func (f *fakePages) Compose(_ context.Context, spec ComposeSpec) ([]byte, error) {
	if f.composeFn == nil {
		return nil, errors.New("unexpected Compose call")
	}
	return f.composeFn(spec)
}

func (f *fakePages) Stamp(_ context.Context, path string, asset *SignatureAsset, placements map[int]Rect) ([]byte, error) {
	if f.stampFn == nil {
		return nil, errors.New("unexpected Stamp call")
	}
	return f.stampFn(path, asset, placements)
}

// fakeRender implements Rasterizer.
type fakeRender struct {
	renderFn func(html string) ([]byte, error)
}

func (f *fakeRender) RenderPDF(_ context.Context, html string) ([]byte, error) {
	if f.renderFn == nil {
		return nil, errors.New("unexpected RenderPDF call")
	}
	return f.renderFn(html)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func makePages(n int) []Page {
	pages := make([]Page, n)
	for i := range pages {
		pages[i] = Page{Index: i, Width: 595, Height: 842}
	}
	return pages
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name     string
		declared string
		filename string
		want     Format
	}{
		{"pdf mime", "application/pdf", "whatever.bin", FormatPDF},
		{"mime with parameters", "image/png; charset=binary", "x", FormatPNG},
		{"mime case insensitive", "IMAGE/JPEG", "x", FormatJPEG},
		{"docx mime", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "r.docx", FormatDOCX},
		{"extension fallback", "application/octet-stream", "scan.PNG", FormatPNG},
		{"jpg extension", "", "photo.JPG", FormatJPEG},
		{"xlsx extension", "", "informe.xlsx", FormatXLSX},
		{"mime wins over extension", "application/pdf", "file.png", FormatPDF},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectFormat(tc.declared, tc.filename)
			if err != nil {
				t.Fatalf("DetectFormat: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDetectFormatUnsupported(t *testing.T) {
	for _, tc := range []struct{ declared, filename string }{
		{"text/plain", "notes.txt"},
		{"", "README"},
		{"application/zip", "archive.zip"},
	} {
		if _, err := DetectFormat(tc.declared, tc.filename); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("DetectFormat(%q, %q): expected ErrUnsupportedFormat, got %v", tc.declared, tc.filename, err)
		}
	}
}

func TestFormatKind(t *testing.T) {
	if !FormatPNG.IsImage() || !FormatJPEG.IsImage() {
		t.Error("png and jpeg should be images")
	}
	if FormatPDF.IsImage() || FormatDOCX.IsImage() {
		t.Error("pdf and docx are not images")
	}
	if !FormatDOCX.IsOffice() || !FormatXLSX.IsOffice() {
		t.Error("docx and xlsx should be office formats")
	}
	if FormatPDF.IsOffice() || FormatPNG.IsOffice() {
		t.Error("pdf and png are not office formats")
	}
}

func TestAborted(t *testing.T) {
	if !Aborted(ErrAborted) {
		t.Error("ErrAborted should count as aborted")
	}
	if !Aborted(context.Canceled) {
		t.Error("context.Canceled should count as aborted")
	}
	if Aborted(errors.New("boom")) {
		t.Error("arbitrary errors are not aborts")
	}
}
