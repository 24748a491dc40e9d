package document

import (
	"context"
	"fmt"
	"sync"
)

// NormalizeAll normalizes a batch of sources concurrently, one task per
// source, and joins all results before returning. Results come back in
// submission order regardless of completion order. The batch is
// all-or-nothing: if any source fails, the first failure (in submission
// order) is returned and no documents are handed out, leaving the
// caller's working set untouched.
func (n *Normalizer) NormalizeAll(ctx context.Context, sources []SourceFile) ([]*Document, error) {
	if len(sources) == 0 {
		return nil, nil
	}

	docs := make([]*Document, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src SourceFile) {
			defer wg.Done()
			docs[i], errs[i] = n.Normalize(ctx, src)
		}(i, src)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			if Aborted(err) {
				return nil, fmt.Errorf("normalize batch: %w", ErrAborted)
			}
			return nil, fmt.Errorf("normalize batch: %w", err)
		}
	}
	return docs, nil
}
