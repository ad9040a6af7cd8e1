//go:build !unix

package cli

import (
	"context"
	"io"

	"github.com/dmitrijs2005/tripcal/internal/logging"
)

// watchLifecycle is a no-op where there is no job control; the session is
// still checked on start and recorded on exit.
func watchLifecycle(context.Context, Lifecycle, io.Writer, logging.Logger) (stop func()) {
	return func() {}
}
