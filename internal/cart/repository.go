package cart

import (
	"context"
	"errors"
	"fmt"

	"quickcart/internal/logger"
	"quickcart/internal/storage"

	"go.uber.org/zap"
)

// StorageKey is the slot the cart snapshot lives in.
const StorageKey = "quickcart_cart"

type Repository interface {
	Load(ctx context.Context) (Items, error)
	Save(ctx context.Context, items Items) error
}

type repository struct {
	store storage.Storage
}

func NewRepository(store storage.Storage) Repository {
	return &repository{store: store}
}

// Load returns the persisted cart. A missing snapshot is an empty cart with
// no error; a corrupt or unreadable one is an empty cart plus the error.
func (r *repository) Load(ctx context.Context) (Items, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Load"),
	)

	raw, err := r.store.GetItem(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		log.Debug("no cart snapshot stored")
		return Items{}, nil
	}
	if err != nil {
		log.Warn("failed to read cart snapshot", zap.Error(err))
		return Items{}, fmt.Errorf("%w: %v", ErrFailedLoadCart, err)
	}

	items, err := Decode(raw)
	if err != nil {
		log.Warn("discarding corrupt cart snapshot", zap.Error(err))
		return Items{}, err
	}

	log.Debug("cart snapshot loaded", zap.Int("entries", len(items)))
	return items, nil
}

func (r *repository) Save(ctx context.Context, items Items) error {
	raw, err := Encode(items)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}

	if err := r.store.SetItem(ctx, StorageKey, raw); err != nil {
		logger.FromCtx(ctx).Warn("failed to write cart snapshot",
			zap.String("layer", "repository"),
			zap.String("method", "Save"),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	return nil
}
