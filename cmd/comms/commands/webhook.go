package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/comms-client/internal/constants"
	"github.com/fivetwenty-io/comms-client/pkg/eventbus"
	"github.com/fivetwenty-io/comms-client/pkg/events"
	"github.com/fivetwenty-io/comms-client/pkg/webhook"
)

// NewWebhookCommand creates the webhook command group.
func NewWebhookCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Receive event webhooks",
		Long:  "Run a webhook receiver for conversation events",
	}

	cmd.AddCommand(newWebhookServeCommand())

	return cmd
}

func newWebhookServeCommand() *cobra.Command {
	var (
		addr          string
		natsURL       string
		subjectPrefix string
		forward       bool
		unsigned      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the webhook endpoint",
		Long: `Serve POST /events and GET /health.

Requests must carry a token signed with the signature secret unless --unsigned
is given. Events are printed to stdout, or published to NATS with --forward.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if forward && natsURL == "" {
				return constants.ErrNATSURLRequired
			}

			logger := newLogger().WithComponent("webhook")

			handle := printEvents(cmd.OutOrStdout())

			if forward {
				conn, err := eventbus.Connect(natsURL, nats.MaxReconnects(-1))
				if err != nil {
					return err
				}
				defer conn.Close()

				publisher, err := eventbus.NewPublisher(conn,
					eventbus.WithSubjectPrefix(subjectPrefix),
					eventbus.WithFlush(true),
					eventbus.WithLogger(logger),
				)
				if err != nil {
					return err
				}

				handle = publisher.Publish
			}

			opts := []webhook.Option{webhook.WithLogger(logger)}
			if !unsigned {
				secret := viper.GetString(KeySignatureSecret)
				if secret == "" {
					return fmt.Errorf("%w: signature secret is required, or pass --unsigned", constants.ErrNoCredentials)
				}

				opts = append(opts, webhook.WithSignatureSecret(secret))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return webhook.Serve(ctx, addr, webhook.NewHandler(handle, opts...), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&natsURL, "nats-url", nats.DefaultURL, "NATS server URL")
	cmd.Flags().StringVar(&subjectPrefix, "subject-prefix", constants.DefaultSubjectPrefix, "NATS subject prefix")
	cmd.Flags().BoolVar(&forward, "forward", false, "publish events to NATS instead of printing them")
	cmd.Flags().BoolVar(&unsigned, "unsigned", false, "accept requests without a signature")

	return cmd
}

// printEvents writes each event as one line of JSON.
func printEvents(w io.Writer) webhook.HandlerFunc {
	var mu sync.Mutex

	return func(_ context.Context, event events.Event) error {
		data, err := events.Encode(event)
		if err != nil {
			return fmt.Errorf("encoding event: %w", err)
		}

		mu.Lock()
		defer mu.Unlock()

		_, err = fmt.Fprintln(w, string(data))

		return err
	}
}
