package commands

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/comms-client/pkg/api"
)

// NewCallsCommand creates the calls command group.
func NewCallsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "calls",
		Aliases: []string{"call"},
		Short:   "Manage voice calls",
		Long:    "Inspect and control voice calls",
	}

	cmd.AddCommand(newCallsGetCommand())
	cmd.AddCommand(newCallsListCommand())
	cmd.AddCommand(newCallsHangupCommand())

	return cmd
}

func newCallsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <uuid>",
		Short: "Get call details",
		Long:  "Display the details of a single call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			call, err := client.Voice().GetCall(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get call: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), call, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("UUID", call.UUID)
				_ = table.Append("Conversation", valueOr(call.ConversationUUID))
				_ = table.Append("Status", valueOr(call.Status))
				_ = table.Append("Direction", valueOr(call.Direction))
				_ = table.Append("From", valueOr(call.From.Address()))
				_ = table.Append("To", valueOr(call.To.Address()))
				_ = table.Append("Duration", valueOr(call.Duration))
				_ = table.Append("Started", formatTime(call.StartTime))
				_ = table.Append("Ended", formatTime(call.EndTime))
			})
		},
	}
}

func newCallsListCommand() *cobra.Command {
	var (
		status           string
		pageSize         int
		recordIndex      int
		order            string
		conversationUUID string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List calls",
		Long:  "List one page of calls with optional filtering",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			req := &api.ListCallsRequest{
				Status:           status,
				Order:            api.Order(order),
				ConversationUUID: conversationUUID,
			}

			if cmd.Flags().Changed("page-size") {
				req.PageSize = &pageSize
			}

			if cmd.Flags().Changed("record-index") {
				req.RecordIndex = &recordIndex
			}

			page, err := client.Voice().ListCalls(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to list calls: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), page, func(table *tablewriter.Table) {
				table.Header("UUID", "Status", "Direction", "To", "Started")

				for _, call := range page.Embedded.Calls {
					_ = table.Append(call.UUID, valueOr(call.Status), valueOr(call.Direction), valueOr(call.To.Address()), formatTime(call.StartTime))
				}
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by call status")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "calls per page (1-100)")
	cmd.Flags().IntVar(&recordIndex, "record-index", 0, "index of the first record")
	cmd.Flags().StringVar(&order, "order", "", "sort order (asc, desc)")
	cmd.Flags().StringVar(&conversationUUID, "conversation", "", "filter by conversation uuid")

	return cmd
}

func newCallsHangupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hangup <uuid>",
		Short: "Hang up a call",
		Long:  "Terminate an in-progress call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := api.NewUpdateCall(args[0], api.CallActionHangup).Build()
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			err = client.Voice().UpdateCall(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to hang up call: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Call %s hung up\n", args[0])

			return nil
		},
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}

	return t.Format(time.RFC3339)
}
