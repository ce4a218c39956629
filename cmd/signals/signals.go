package signals

import (
	"context"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"go.uber.org/zap"
)

// NotifySignals cancels on SIGINT and SIGTERM until ctx is done.
// SIGUSR2 dumps the goroutines, useful on a stuck batch.
func NotifySignals(ctx context.Context, cancel context.CancelFunc) {
	signals := make(chan os.Signal, 1)
	defer signal.Stop(signals)

	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR2)
	for {
		select {
		case <-ctx.Done():
			zap.L().Debug("end of system signal handling")
			return

		case sig := <-signals:
			zap.L().Info("signal received", zap.String("signal", sig.String()))
			switch sig {
			case syscall.SIGUSR2:
				_ = pprof.Lookup("goroutine").WriteTo(os.Stderr, 2)

			default:
				cancel()
			}
		}
	}
}
