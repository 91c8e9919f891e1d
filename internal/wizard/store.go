package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/evcraddock/kwartayo/internal/kv"
)

// DraftKey is the storage key of the in-progress listing.
const DraftKey = "listing_draft"

// Load returns the persisted wizard, or a new one when none is stored or
// the stored value is unreadable.
func Load(ctx context.Context, storage kv.Store) (*Wizard, error) {
	raw, err := storage.Get(ctx, DraftKey)
	if errors.Is(err, kv.ErrNotFound) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading draft: %w", err)
	}

	w := New()
	if err := json.Unmarshal([]byte(raw), w); err != nil || w.State < BasicInfo || w.State > Submitted {
		return New(), nil
	}
	return w, nil
}

// Save persists the wizard.
func Save(ctx context.Context, storage kv.Store, w *Wizard) error {
	b, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	if err := storage.Set(ctx, DraftKey, string(b), 0); err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

// Reset discards the persisted wizard.
func Reset(ctx context.Context, storage kv.Store) error {
	if err := storage.Delete(ctx, DraftKey); err != nil {
		return fmt.Errorf("clearing draft: %w", err)
	}
	return nil
}
