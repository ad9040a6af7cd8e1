//go:build unix

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"github.com/dmitrijs2005/tripcal/internal/client/services"
	"github.com/dmitrijs2005/tripcal/internal/logging"
)

// suspend stops the process after the background time is saved; the shell
// resumes it with SIGCONT.
var suspend = func() error {
	return unix.Kill(unix.Getpid(), unix.SIGSTOP)
}

// watchLifecycle maps job control onto the session: Ctrl-Z is background,
// fg is foreground. The returned func stops watching.
func watchLifecycle(ctx context.Context, sess Lifecycle, out io.Writer, logger logging.Logger) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTSTP, unix.SIGCONT)

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigs:
				handleSignal(ctx, sig, sess, out, logger)
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		cancel()
		<-done
	}
}

func handleSignal(ctx context.Context, sig os.Signal, sess Lifecycle, out io.Writer, logger logging.Logger) {
	switch sig {
	case unix.SIGTSTP:
		if err := sess.Background(ctx); err != nil {
			logger.Warn(ctx, "record background time", "error", err)
		}
		if err := suspend(); err != nil {
			logger.Error(ctx, "suspend failed", "error", err)
		}
	case unix.SIGCONT:
		expired, err := sess.Foreground(ctx)
		if err != nil {
			logger.Warn(ctx, "inactivity check failed", "error", err)
			return
		}
		if expired {
			fmt.Fprintln(out, services.MsgSessionExpired)
		}
	}
}
