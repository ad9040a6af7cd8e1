package tokenstore

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/tripcal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tripcal/internal/common"
	"github.com/dmitrijs2005/tripcal/internal/cryptox"
	"github.com/dmitrijs2005/tripcal/internal/dbx"
)

// sealedPrefix namespaces sealed values so they never collide with plain ones
// in the shared table.
const sealedPrefix = "sealed/"

// DeviceKeyFile is the key file name inside the data directory.
const DeviceKeyFile = "device.key"

var loadKey = cryptox.LoadOrCreateKey

// SecureStore seals values with XChaCha20-Poly1305 under a device key kept in
// a 0600 file. The key is read lazily on first use and cached.
type SecureStore struct {
	db      *sql.DB
	repo    metadata.Repository
	keyPath string

	mu  sync.Mutex
	key []byte
}

func NewSecureStore(db *sql.DB, keyPath string) *SecureStore {
	return &SecureStore{
		db:      db,
		repo:    metadata.NewSQLiteRepository(db),
		keyPath: keyPath,
	}
}

func (s *SecureStore) deviceKey() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != nil {
		return s.key, nil
	}
	k, err := loadKey(s.keyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	s.key = k
	return k, nil
}

// Available reports whether the device key can be used.
func (s *SecureStore) Available(_ context.Context) bool {
	_, err := s.deviceKey()
	return err == nil
}

func (s *SecureStore) Save(ctx context.Context, key, value string) error {
	k, err := s.deviceKey()
	if err != nil {
		return err
	}
	return saveSealed(ctx, s.repo, k, key, value)
}

func (s *SecureStore) Load(ctx context.Context, key string) (string, error) {
	k, err := s.deviceKey()
	if err != nil {
		return "", err
	}

	sealed, err := s.repo.Get(ctx, sealedPrefix+key)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	if sealed == nil {
		return "", nil
	}

	plain, err := cryptox.Open(k, sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", common.ErrCorruptValue, key, err)
	}
	return string(plain), nil
}

func (s *SecureStore) Delete(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, sealedPrefix+key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// adopt moves values written by the plain fallback into sealed storage, in a
// single transaction per call.
func (s *SecureStore) adopt(ctx context.Context, keys ...string) (int, error) {
	k, err := s.deviceKey()
	if err != nil {
		return 0, err
	}

	moved := 0
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, key := range keys {
			v, err := repo.Get(ctx, key)
			if err != nil {
				return err
			}
			if v == nil {
				continue
			}
			if err := saveSealed(ctx, repo, k, key, string(v)); err != nil {
				return err
			}
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
			moved++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

func saveSealed(ctx context.Context, repo metadata.Repository, deviceKey []byte, key, value string) error {
	sealed, err := cryptox.Seal(deviceKey, []byte(value))
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	if err := repo.Set(ctx, sealedPrefix+key, sealed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
