package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/comms-client/internal/constants"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger comms.Logger) error {
	if logger == nil {
		logger = comms.NoopLogger{}
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       constants.WebhookReadTimeout,
		ReadHeaderTimeout: constants.WebhookReadTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("Webhook server listening", map[string]interface{}{"addr": addr})
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serving webhooks: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.ShutdownTimeout)
	defer cancel()

	logger.Info("Webhook server shutting down", nil)

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutting down webhook server: %w", err)
	}

	return nil
}
