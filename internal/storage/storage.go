// Package storage provides the durable string-keyed slots the storefront
// keeps its cart snapshot in.
package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("storage key not found")
	ErrInvalidKey  = errors.New("invalid storage key")
	ErrUnavailable = errors.New("storage unavailable")
)

// Storage mirrors a browser's local storage: opaque string values under
// string keys.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

type prefixed struct {
	next   Storage
	prefix string
}

// WithPrefix namespaces every key of s under prefix. Keys are checked
// before the prefix is added.
func WithPrefix(s Storage, prefix string) Storage {
	return &prefixed{next: s, prefix: prefix}
}

func (p *prefixed) GetItem(ctx context.Context, key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	return p.next.GetItem(ctx, p.prefix+key)
}

func (p *prefixed) SetItem(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return p.next.SetItem(ctx, p.prefix+key, value)
}

func (p *prefixed) RemoveItem(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return p.next.RemoveItem(ctx, p.prefix+key)
}

func checkKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	return nil
}
