package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func storedDoc(t *testing.T, dir, name string, pages int) *Document {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("%PDF-stub"), 0o644); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return &Document{
		ID:         name,
		Name:       name,
		Format:     FormatPDF,
		Pages:      makePages(pages),
		Config:     NewConfigStore(pages),
		StoredPath: path,
	}
}

func TestMergeBuildsPlan(t *testing.T) {
	dir := t.TempDir()
	docA := storedDoc(t, dir, "a.pdf", 3)
	docB := storedDoc(t, dir, "b.pdf", 2)
	docC := storedDoc(t, dir, "c.pdf", 1)

	docA.Config.Set(1, PageConfigPatch{Selected: boolPtr(false)})
	docA.Config.Set(2, PageConfigPatch{Rotation: intPtr(90)})
	docB.Config.DeselectAll()

	var captured ComposeSpec
	fake := &fakePages{composeFn: func(spec ComposeSpec) ([]byte, error) {
		captured = spec
		return []byte("%PDF-merged"), nil
	}}

	art, err := NewMerger(fake, testLogger()).Merge(context.Background(), MergeSpec{
		Documents:  []*Document{docA, docB, docC},
		OutputName: "todo.pdf",
		Compress:   true,
	})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	if len(captured.Docs) != 2 {
		t.Fatalf("plan has %d documents, want 2 (fully deselected skipped)", len(captured.Docs))
	}
	if captured.Docs[0].Path != docA.StoredPath || captured.Docs[1].Path != docC.StoredPath {
		t.Errorf("plan order wrong: %v", captured.Docs)
	}

	wantPages := []ComposePage{{Index: 0, Rotate: 0}, {Index: 2, Rotate: 90}}
	if len(captured.Docs[0].Pages) != len(wantPages) {
		t.Fatalf("doc a pages: %v", captured.Docs[0].Pages)
	}
	for i, want := range wantPages {
		if captured.Docs[0].Pages[i] != want {
			t.Errorf("doc a page %d: got %+v, want %+v", i, captured.Docs[0].Pages[i], want)
		}
	}
	if !captured.ObjectStreams {
		t.Error("compress flag not carried into the plan")
	}

	if art.Name != "todo.pdf" || art.MIME != PDFMediaType {
		t.Errorf("artifact: %q %q", art.Name, art.MIME)
	}
	if string(art.Data) != "%PDF-merged" {
		t.Errorf("artifact data: %q", art.Data)
	}
}

func TestMergeEmptySelection(t *testing.T) {
	dir := t.TempDir()
	doc := storedDoc(t, dir, "solo.pdf", 2)
	doc.Config.DeselectAll()

	fake := &fakePages{composeFn: func(ComposeSpec) ([]byte, error) {
		t.Fatal("Compose must not run for an empty selection")
		return nil, nil
	}}

	_, err := NewMerger(fake, testLogger()).Merge(context.Background(), MergeSpec{
		Documents: []*Document{doc},
	})
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}

func TestMergeUnreadableSource(t *testing.T) {
	dir := t.TempDir()
	good := storedDoc(t, dir, "good.pdf", 1)
	gone := storedDoc(t, dir, "gone.pdf", 1)
	os.Remove(gone.StoredPath)

	composed := false
	fake := &fakePages{composeFn: func(ComposeSpec) ([]byte, error) {
		composed = true
		return nil, nil
	}}

	_, err := NewMerger(fake, testLogger()).Merge(context.Background(), MergeSpec{
		Documents: []*Document{good, gone},
	})
	if !errors.Is(err, ErrSourceUnreadable) {
		t.Fatalf("expected ErrSourceUnreadable, got %v", err)
	}
	if composed {
		t.Error("merge produced output despite unreadable source")
	}
}

func TestMergeAborted(t *testing.T) {
	dir := t.TempDir()
	doc := storedDoc(t, dir, "a.pdf", 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMerger(&fakePages{}, testLogger()).Merge(ctx, MergeSpec{Documents: []*Document{doc}})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestMergeComposeCancellationMapped(t *testing.T) {
	dir := t.TempDir()
	doc := storedDoc(t, dir, "a.pdf", 1)

	fake := &fakePages{composeFn: func(ComposeSpec) ([]byte, error) {
		return nil, fmt.Errorf("write interrupted: %w", context.Canceled)
	}}

	_, err := NewMerger(fake, testLogger()).Merge(context.Background(), MergeSpec{Documents: []*Document{doc}})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("cancellation inside the codec must surface as ErrAborted, got %v", err)
	}
}
