package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// batchPages keys page counts off the source bytes so completion order
// cannot influence the assertions.
func batchPages() *fakePages {
	return &fakePages{
		inspectFn: func(data []byte) ([]Page, error) {
			if bytes.Contains(data, []byte("bad")) {
				return nil, fmt.Errorf("damaged stream")
			}
			return makePages(len(data)), nil
		},
	}
}

func pdfSource(name, payload string) SourceFile {
	return SourceFile{Name: name, Declared: "application/pdf", Data: []byte(payload)}
}

func TestNormalizeAllEmpty(t *testing.T) {
	n := newTestNormalizer(batchPages(), nil, NormalizerConfig{})
	docs, err := n.NormalizeAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("NormalizeAll: %v", err)
	}
	if docs != nil {
		t.Errorf("empty batch should yield no documents, got %d", len(docs))
	}
}

func TestNormalizeAllKeepsSubmissionOrder(t *testing.T) {
	n := newTestNormalizer(batchPages(), nil, NormalizerConfig{})
	sources := []SourceFile{
		pdfSource("uno.pdf", "aa"),
		pdfSource("dos.pdf", "bbbb"),
		pdfSource("tres.pdf", "c"),
	}

	docs, err := n.NormalizeAll(context.Background(), sources)
	if err != nil {
		t.Fatalf("NormalizeAll: %v", err)
	}
	if len(docs) != len(sources) {
		t.Fatalf("got %d documents, want %d", len(docs), len(sources))
	}
	for i, src := range sources {
		if docs[i].Name != src.Name {
			t.Errorf("docs[%d] = %q, want %q", i, docs[i].Name, src.Name)
		}
		if docs[i].PageCount() != len(src.Data) {
			t.Errorf("%s: page count = %d, want %d", src.Name, docs[i].PageCount(), len(src.Data))
		}
	}
}

func TestNormalizeAllFirstFailureWins(t *testing.T) {
	n := newTestNormalizer(batchPages(), nil, NormalizerConfig{})
	sources := []SourceFile{
		pdfSource("bien.pdf", "ok"),
		pdfSource("primero-bad.pdf", "bad"),
		pdfSource("segundo-bad.pdf", "bad"),
	}

	docs, err := n.NormalizeAll(context.Background(), sources)
	if err == nil {
		t.Fatal("expected the batch to fail")
	}
	if docs != nil {
		t.Error("a failed batch must not hand out documents")
	}
	if !strings.Contains(err.Error(), "primero-bad.pdf") {
		t.Errorf("error should name the first failing source, got %v", err)
	}
	if strings.Contains(err.Error(), "segundo-bad.pdf") {
		t.Errorf("later failures should not leak into the error: %v", err)
	}
}

func TestNormalizeAllAborted(t *testing.T) {
	pages := batchPages()
	pages.imageFn = func([]byte) ([]byte, error) { return nil, context.Canceled }
	n := newTestNormalizer(pages, nil, NormalizerConfig{})
	sources := []SourceFile{
		pdfSource("bien.pdf", "ok"),
		{Name: "foto.png", Declared: "image/png", Data: encodePNG(t, 4, 4)},
	}

	docs, err := n.NormalizeAll(context.Background(), sources)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if docs != nil {
		t.Error("an aborted batch must not hand out documents")
	}
}
