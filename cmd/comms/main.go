package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/comms-client/cmd/comms/commands"
	"github.com/fivetwenty-io/comms-client/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "comms",
	Short: "Communications API CLI",
	Long: `A command-line interface for the voice, conversation, account and SMS APIs.

It can also decode event payloads offline and run a webhook receiver that
forwards events to NATS.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.comms/config.yml)")
	flags.String("api-base-url", "", "base URL of the voice and conversation APIs")
	flags.String("rest-base-url", "", "base URL of the account and SMS APIs")
	flags.String("api-key", "", "account API key")
	flags.String("api-secret", "", "account API secret")
	flags.String("signature-secret", "", "secret for signed requests and webhooks")
	flags.String("application-id", "", "application id for minted bearer tokens")
	flags.String("private-key-path", "", "PEM private key of the application")
	flags.StringP("token", "t", "", "static bearer token")
	flags.StringP("output", "o", "", "output format (table, json, yaml); defaults to table on a terminal")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	for key, flag := range map[string]string{
		commands.KeyConfig:          "config",
		commands.KeyAPIBaseURL:      "api-base-url",
		commands.KeyRESTBaseURL:     "rest-base-url",
		commands.KeyAPIKey:          "api-key",
		commands.KeyAPISecret:       "api-secret",
		commands.KeySignatureSecret: "signature-secret",
		commands.KeyApplicationID:   "application-id",
		commands.KeyPrivateKeyPath:  "private-key-path",
		commands.KeyAccessToken:     "token",
		commands.KeyOutput:          "output",
		commands.KeyVerbose:         "verbose",
		commands.KeyLogFormat:       "log-format",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewEventsCommand())
	rootCmd.AddCommand(commands.NewCallsCommand())
	rootCmd.AddCommand(commands.NewBalanceCommand())
	rootCmd.AddCommand(commands.NewSMSCommand())
	rootCmd.AddCommand(commands.NewWebhookCommand())
}

func initConfig() {
	cfgFile := viper.GetString(commands.KeyConfig)

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.comms/config.yml
		configDir := filepath.Join(home, ".comms")
		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		}

		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("COMMS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err == nil && viper.GetBool(commands.KeyVerbose) {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
