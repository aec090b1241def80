package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/comms-client/internal/constants"
	"github.com/fivetwenty-io/comms-client/internal/logging"
	"github.com/fivetwenty-io/comms-client/pkg/api"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
	"github.com/fivetwenty-io/comms-client/pkg/commsclient"
)

// Viper keys. Environment variables are the upper-cased key with a COMMS_ prefix.
const (
	KeyConfig             = "config"
	KeyAPIBaseURL         = "api_base_url"
	KeyRESTBaseURL        = "rest_base_url"
	KeyAPIKey             = "api_key"
	KeyAPISecret          = "api_secret"
	KeySignatureSecret    = "signature_secret"
	KeySignatureAlgorithm = "signature_algorithm"
	KeyApplicationID      = "application_id"
	KeyPrivateKeyPath     = "private_key_path"
	KeyAccessToken        = "access_token"
	KeyOutput             = "output"
	KeyVerbose            = "verbose"
	KeyLogFormat          = "log_format"
)

// Masked replaces secrets in config output.
const Masked = "***"

// Static errors for err113 compliance.
var (
	ErrUnknownConfigKey = errors.New("unknown config key")
)

//nolint:gochecknoglobals // Fixed key sets
var (
	configKeys = []string{
		KeyAPIBaseURL, KeyRESTBaseURL, KeyAPIKey, KeyAPISecret, KeySignatureSecret,
		KeySignatureAlgorithm, KeyApplicationID, KeyPrivateKeyPath, KeyAccessToken,
		KeyOutput, KeyLogFormat,
	}
	secretKeys = []string{KeyAPISecret, KeySignatureSecret, KeyAccessToken}
)

// loadClientConfig builds a comms.Config from flags, environment and the config file.
func loadClientConfig() *comms.Config {
	config := &comms.Config{
		APIBaseURL:         viper.GetString(KeyAPIBaseURL),
		RESTBaseURL:        viper.GetString(KeyRESTBaseURL),
		APIKey:             viper.GetString(KeyAPIKey),
		APISecret:          viper.GetString(KeyAPISecret),
		SignatureSecret:    viper.GetString(KeySignatureSecret),
		SignatureAlgorithm: comms.SignatureAlgorithm(viper.GetString(KeySignatureAlgorithm)),
		ApplicationID:      viper.GetString(KeyApplicationID),
		PrivateKeyPath:     viper.GetString(KeyPrivateKeyPath),
		AccessToken:        viper.GetString(KeyAccessToken),
		UserAgent:          "comms-cli/" + constants.Version,
	}

	if viper.GetBool(KeyVerbose) {
		config.Debug = true
		config.Logger = newLogger()
	}

	return config
}

// CreateClient creates an API client from the CLI configuration.
func CreateClient(ctx context.Context) (api.Client, error) {
	config := loadClientConfig()

	if config.APIKey == "" && config.AccessToken == "" && config.ApplicationID == "" {
		return nil, constants.ErrNoCredentials
	}

	client, err := commsclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func newLogger() *logging.Logger {
	level := "info"
	if viper.GetBool(KeyVerbose) {
		level = "debug"
	}

	return logging.New(logging.Config{
		Level:     level,
		Format:    viper.GetString(KeyLogFormat),
		Timestamp: true,
		Output:    os.Stderr,
	})
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change values stored in the CLI configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long:  "Show the configuration after flags, environment and file are merged. Secrets are masked.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			values := make(map[string]string, len(configKeys))

			for _, key := range configKeys {
				value := viper.GetString(key)
				if value != "" && slices.Contains(secretKeys, key) {
					value = Masked
				}

				values[key] = value
			}

			return writeOutput(cmd.OutOrStdout(), values, func(table *tablewriter.Table) {
				table.Header("Key", "Value")

				keys := make([]string, 0, len(values))
				for key := range values {
					keys = append(keys, key)
				}

				sort.Strings(keys)

				for _, key := range keys {
					_ = table.Append(key, values[key])
				}
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Persist a configuration value to the CLI configuration file",
		Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !slices.Contains(configKeys, key) {
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}

			viper.Set(key, value)

			path := viper.ConfigFileUsed()
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("finding home directory: %w", err)
				}

				path = filepath.Join(home, ".comms", "config.yml")
			}

			err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
			if err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}

			err = viper.WriteConfigAs(path)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			err = os.Chmod(path, constants.ConfigFilePerm)
			if err != nil {
				return fmt.Errorf("securing config file: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)

			return nil
		},
	}
}
