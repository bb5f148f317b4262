package alphamap

import (
	"context"
	"fmt"
	"io"

	"github.com/triekit/alphamap/dictstore"
)

// Load reads a named textual alphabet definition through a storage
// collaborator. An unavailable resource propagates the store's
// not-found error and never yields a partially built map; a resource
// that opens but contains mostly garbage still yields every valid range
// it defines, per ReadText.
func Load(ctx context.Context, store dictstore.Store, name string, optFns ...Option) (*Map, error) {
	o := applyOptions(optFns)

	blob, err := store.Open(ctx, name)
	if err != nil {
		o.logger.LogLoad(ctx, name, 0, err)
		return nil, fmt.Errorf("failed to open alphabet %q: %w", name, err)
	}
	defer blob.Close()

	m, err := ReadText(io.NewSectionReader(blob, 0, blob.Size()), optFns...)
	if err != nil {
		o.logger.LogLoad(ctx, name, 0, err)
		return nil, fmt.Errorf("failed to load alphabet %q: %w", name, err)
	}
	o.logger.LogLoad(ctx, name, m.RangeCount(), nil)
	return m, nil
}
