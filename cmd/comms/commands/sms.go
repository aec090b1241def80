package commands

import (
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/comms-client/pkg/api"
)

// Static errors for err113 compliance.
var (
	ErrSMSRejected = errors.New("one or more message parts were rejected")
)

// NewSMSCommand creates the sms command group.
func NewSMSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sms",
		Short: "Send SMS messages",
		Long:  "Send SMS messages through the REST API",
	}

	cmd.AddCommand(newSMSSendCommand())

	return cmd
}

func newSMSSendCommand() *cobra.Command {
	var (
		from      string
		to        string
		text      string
		unicode   bool
		clientRef string
		callback  string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a text message",
		Long:  "Send a text message. A non-zero status on any part is reported as an error.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			builder := api.NewSMS(from, to, text).WithClientRef(clientRef).WithCallback(callback)
			if unicode {
				builder = builder.WithUnicode()
			}

			req, err := builder.Build()
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			resp, err := client.SMS().Send(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to send SMS: %w", err)
			}

			err = writeOutput(cmd.OutOrStdout(), resp, func(table *tablewriter.Table) {
				table.Header("To", "Message ID", "Status", "Error")

				for _, message := range resp.Messages {
					_ = table.Append(message.To, valueOr(message.MessageID), message.Status, valueOr(message.ErrorText))
				}
			})
			if err != nil {
				return err
			}

			if failed := resp.Failed(); len(failed) > 0 {
				return fmt.Errorf("%w: %s", ErrSMSRejected, failed[0].ErrorText)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "sender id or number")
	cmd.Flags().StringVar(&to, "to", "", "recipient number")
	cmd.Flags().StringVar(&text, "text", "", "message text")
	cmd.Flags().BoolVar(&unicode, "unicode", false, "send as unicode")
	cmd.Flags().StringVar(&clientRef, "client-ref", "", "reference echoed in delivery receipts")
	cmd.Flags().StringVar(&callback, "callback", "", "delivery receipt URL")

	return cmd
}
