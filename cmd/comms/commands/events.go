package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/comms-client/internal/constants"
	"github.com/fivetwenty-io/comms-client/pkg/api"
	"github.com/fivetwenty-io/comms-client/pkg/events"
)

// NewEventsCommand creates the events command group.
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event", "ev"},
		Short:   "Work with conversation events",
		Long:    "Decode event payloads and read or send events in a conversation",
	}

	cmd.AddCommand(newEventsDecodeCommand())
	cmd.AddCommand(newEventsGetCommand())
	cmd.AddCommand(newEventsListCommand())
	cmd.AddCommand(newEventsSendCommand())

	return cmd
}

func newEventsDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode an event payload",
		Long: `Decode an event object or array of events from a file or stdin.

Unknown event types are shown as-is; malformed payloads report the offending field.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			decoded, err := decodeEvents(data)
			if err != nil {
				return fmt.Errorf("failed to decode events: %w", err)
			}

			return outputEvents(cmd.OutOrStdout(), decoded)
		},
	}
}

func newEventsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <conversation-id> <event-id>",
		Short: "Get an event",
		Long:  "Retrieve a single event from a conversation",
		Args:  cobra.ExactArgs(2), //nolint:mnd // conversation and event id
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			event, err := client.Conversations().GetEvent(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to get event: %w", err)
			}

			return outputEvents(cmd.OutOrStdout(), events.List{event})
		},
	}
}

func newEventsListCommand() *cobra.Command {
	var (
		pageSize       int
		order          string
		eventType      string
		cursor         string
		excludeDeleted bool
	)

	cmd := &cobra.Command{
		Use:   "list <conversation-id>",
		Short: "List events",
		Long:  "List one page of events in a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			req := &api.ListEventsRequest{
				ConversationID: args[0],
				EventType:      eventType,
				Order:          api.Order(order),
				Cursor:         cursor,
			}

			if cmd.Flags().Changed("page-size") {
				req.PageSize = &pageSize
			}

			if excludeDeleted {
				req.ExcludeDeleted = &excludeDeleted
			}

			page, err := client.Conversations().ListEvents(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to list events: %w", err)
			}

			err = outputEvents(cmd.OutOrStdout(), page.Embedded.Events)
			if err != nil {
				return err
			}

			if next, ok := page.Links.Next(); ok {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Next page: %s\n", next)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", 0, "events per page")
	cmd.Flags().StringVar(&order, "order", "", "sort order (asc, desc)")
	cmd.Flags().StringVar(&eventType, "event-type", "", "filter by event type")
	cmd.Flags().StringVar(&cursor, "cursor", "", "page cursor from a previous listing")
	cmd.Flags().BoolVar(&excludeDeleted, "exclude-deleted", false, "omit deleted events")

	return cmd
}

func newEventsSendCommand() *cobra.Command {
	var (
		text string
		from string
	)

	cmd := &cobra.Command{
		Use:   "send <conversation-id> [file]",
		Short: "Send an event",
		Long: `Send an event to a conversation.

With --text a text message is sent; otherwise the event is read from a file or stdin.`,
		Args: cobra.RangeArgs(1, 2), //nolint:mnd // conversation id and optional file
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := eventToSend(cmd, args[1:], text, from)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			created, err := client.Conversations().CreateEvent(cmd.Context(), args[0], event)
			if err != nil {
				return fmt.Errorf("failed to send event: %w", err)
			}

			return outputEvents(cmd.OutOrStdout(), events.List{created})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "send a text message with this text")
	cmd.Flags().StringVar(&from, "from", "", "member id the event is sent as")

	return cmd
}

func eventToSend(cmd *cobra.Command, args []string, text, from string) (events.Event, error) {
	if text != "" {
		event, err := events.NewTextMessage(text).WithFrom(from).Build()
		if err != nil {
			return nil, fmt.Errorf("invalid message: %w", err)
		}

		return event, nil
	}

	data, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}

	event, err := events.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}

	return event, nil
}

// readInput reads args[0] or, without arguments, stdin when it is not a terminal.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", args[0], err)
		}

		return data, nil
	}

	in := cmd.InOrStdin()
	if isTerminal(in) {
		return nil, constants.ErrNoInput
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, constants.ErrNoInput
	}

	return data, nil
}

func decodeEvents(data []byte) (events.List, error) {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list events.List

		err := json.Unmarshal(trimmed, &list)
		if err != nil {
			return nil, err
		}

		return list, nil
	}

	event, err := events.Decode(trimmed)
	if err != nil {
		return nil, err
	}

	return events.List{event}, nil
}

func outputEvents(w io.Writer, list events.List) error {
	view, err := jsonView(list)
	if err != nil {
		return err
	}

	return writeOutput(w, view, func(table *tablewriter.Table) {
		table.Header("ID", "Type", "From", "Timestamp")

		for _, event := range list {
			header := event.Header()

			id := NotAvailable
			if header.ID != nil {
				id = strconv.FormatInt(*header.ID, 10)
			}

			timestamp := NotAvailable
			if header.Timestamp != nil {
				timestamp = header.Timestamp.Format(time.RFC3339)
			}

			_ = table.Append(id, event.Type(), valueOr(header.From), timestamp)
		}
	})
}
