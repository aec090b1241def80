package commands

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/comms-client/internal/constants"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display the CLI build and the library version it embeds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			type VersionInfo struct {
				Version        string `json:"version"         yaml:"version"`
				Commit         string `json:"commit"          yaml:"commit"`
				Built          string `json:"built"           yaml:"built"`
				LibraryVersion string `json:"library_version" yaml:"library_version"`
			}

			versionInfo := VersionInfo{
				Version:        version,
				Commit:         commit,
				Built:          date,
				LibraryVersion: constants.Version,
			}

			return writeOutput(cmd.OutOrStdout(), versionInfo, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Version", version)
				_ = table.Append("Commit", commit)
				_ = table.Append("Built", date)
				_ = table.Append("Library", constants.Version)
			})
		},
	}
}
