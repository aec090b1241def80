package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/comms-client/internal/constants"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	// JSON formatting.
	defaultJSONIndent = 2

	NotAvailable = "N/A"
)

// outputFormat returns the configured format. Without one it is table on a
// terminal and JSON otherwise.
func outputFormat(w io.Writer) (string, error) {
	format := strings.ToLower(viper.GetString(KeyOutput))

	switch format {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return format, nil
	case "":
		if isTerminal(w) {
			return OutputFormatTable, nil
		}

		return OutputFormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, format)
	}
}

func isTerminal(v any) bool {
	file, ok := v.(*os.File)

	return ok && term.IsTerminal(int(file.Fd()))
}

// writeOutput renders v as JSON or YAML, or fills a table with render.
func writeOutput(w io.Writer, v any, render func(table *tablewriter.Table)) error {
	format, err := outputFormat(w)
	if err != nil {
		return err
	}

	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

		return encoder.Encode(v)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(v)
	default:
		table := tablewriter.NewWriter(w)
		render(table)

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// jsonView converts a value with custom JSON encoding into plain maps and
// slices so the YAML encoder renders the same shape.
func jsonView(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding output: %w", err)
	}

	var view any

	err = json.Unmarshal(data, &view)
	if err != nil {
		return nil, fmt.Errorf("encoding output: %w", err)
	}

	return view, nil
}

func valueOr(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}
