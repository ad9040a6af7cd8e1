package tokenstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tripcal/internal/client/repositories/metadata"
)

// PlainStore keeps values unencrypted. It is the fallback used when the
// device key cannot be loaded or created.
type PlainStore struct {
	repo metadata.Repository
}

func NewPlainStore(repo metadata.Repository) *PlainStore {
	return &PlainStore{repo: repo}
}

func (s *PlainStore) Save(ctx context.Context, key, value string) error {
	if err := s.repo.Set(ctx, key, []byte(value)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *PlainStore) Load(ctx context.Context, key string) (string, error) {
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return string(v), nil
}

func (s *PlainStore) Delete(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
