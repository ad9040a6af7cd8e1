package tokenstore

import (
	"context"

	"github.com/dmitrijs2005/tripcal/internal/common"
	"github.com/dmitrijs2005/tripcal/internal/logging"
)

// Select returns secure when its device key is usable and fallback
// otherwise. A token left behind by an earlier fallback run is moved into
// secure storage; failing to move it is logged and does not stop start-up.
func Select(ctx context.Context, secure *SecureStore, fallback *PlainStore, logger logging.Logger) Store {
	if !secure.Available(ctx) {
		logger.Warn(ctx, "secure token storage unavailable, using plain storage", "key_path", secure.keyPath)
		return fallback
	}

	moved, err := secure.adopt(ctx, common.TokenKey)
	if err != nil {
		logger.Warn(ctx, "could not move plain token into secure storage", "error", err)
	} else if moved > 0 {
		logger.Info(ctx, "moved plain token into secure storage")
	}
	return secure
}
