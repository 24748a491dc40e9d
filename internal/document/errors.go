package document

import (
	"context"
	"errors"
)

// Failure taxonomy for the assembly pipeline. Handlers translate these to
// HTTP statuses; everything else is wrapped infrastructure detail.
var (
	// ErrUnsupportedFormat marks a source whose declared type and filename
	// suffix both fall outside the ingestion allow-list.
	ErrUnsupportedFormat = errors.New("unsupported source format")

	// ErrCorruptSource marks a source that matched the allow-list but could
	// not be decoded structurally.
	ErrCorruptSource = errors.New("corrupt source")

	// ErrSourceUnreadable marks a normalized document whose stored content
	// could not be re-read at merge or stamp time.
	ErrSourceUnreadable = errors.New("source unreadable")

	// ErrEmbedFailure marks a signature asset that is not one of the
	// supported raster encodings.
	ErrEmbedFailure = errors.New("signature asset not embeddable")

	// ErrEmptySelection marks a merge whose combined page selection is
	// empty. No valid artifact exists for it.
	ErrEmptySelection = errors.New("no pages selected")

	// ErrAborted marks a user cancellation. It is not a failure: callers
	// must treat it as a silent no-op, never as an error message.
	ErrAborted = errors.New("aborted by user")
)

// Aborted reports whether err represents a user cancellation, including
// context cancellation bubbling up from an in-flight operation.
func Aborted(err error) bool {
	return errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled)
}
