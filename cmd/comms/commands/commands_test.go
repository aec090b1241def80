package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/comms-client/cmd/comms/commands"
	"github.com/fivetwenty-io/comms-client/internal/constants"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// run executes cmd with args and stdin, returning stdout.
func run(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

// useConfig sets viper keys for one test and resets viper afterwards.
func useConfig(t *testing.T, values map[string]string) {
	t.Helper()

	viper.Reset()

	for key, value := range values {
		viper.Set(key, value)
	}

	t.Cleanup(viper.Reset)
}

//nolint:paralleltest // viper global state
func TestCommandGroups(t *testing.T) {
	tests := []struct {
		cmd         *cobra.Command
		use         string
		subcommands []string
	}{
		{cmd: commands.NewEventsCommand(), use: "events", subcommands: []string{"decode", "get", "list", "send"}},
		{cmd: commands.NewCallsCommand(), use: "calls", subcommands: []string{"get", "list", "hangup"}},
		{cmd: commands.NewConfigCommand(), use: "config", subcommands: []string{"show", "set"}},
		{cmd: commands.NewSMSCommand(), use: "sms", subcommands: []string{"send"}},
		{cmd: commands.NewWebhookCommand(), use: "webhook", subcommands: []string{"serve"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.Len(t, tt.cmd.Commands(), len(tt.subcommands))

			for _, name := range tt.subcommands {
				assert.NotNil(t, findSubcommand(tt.cmd, name), name)
			}
		})
	}
}

//nolint:paralleltest // viper global state
func TestEventsDecode(t *testing.T) {
	useConfig(t, nil)

	stdin := `[
		{"id": 1, "type": "member:joined", "from": "MEM-1", "body": {}},
		{"id": 2, "type": "brand:new:thing", "anything": [1, 2]}
	]`

	out, err := run(t, commands.NewEventsCommand(), stdin, "decode")
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "member:joined", decoded[0]["type"])
	assert.Equal(t, "brand:new:thing", decoded[1]["type"])
	assert.Equal(t, []any{1.0, 2.0}, decoded[1]["anything"])
}

//nolint:paralleltest // viper global state
func TestEventsDecode_YAML(t *testing.T) {
	useConfig(t, map[string]string{commands.KeyOutput: commands.OutputFormatYAML})

	out, err := run(t, commands.NewEventsCommand(), `{"type":"rtc:hangup","body":{"reason":"normal"}}`, "decode")
	require.NoError(t, err)
	assert.Contains(t, out, "type: rtc:hangup")
	assert.Contains(t, out, "reason: normal")
}

//nolint:paralleltest // viper global state
func TestEventsDecode_Errors(t *testing.T) {
	useConfig(t, nil)

	_, err := run(t, commands.NewEventsCommand(), `{"id": 1}`, "decode")
	require.ErrorIs(t, err, comms.ErrMalformedPayload)

	_, err = run(t, commands.NewEventsCommand(), "  ", "decode")
	require.ErrorIs(t, err, constants.ErrNoInput)

	useConfig(t, map[string]string{commands.KeyOutput: "xml"})

	_, err = run(t, commands.NewEventsCommand(), `{"type":"rtc:hangup","body":{}}`, "decode")
	require.ErrorIs(t, err, constants.ErrInvalidOutputFormat)
}

//nolint:paralleltest // viper global state
func TestBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/account/get-balance", request.URL.Path)
		assert.Contains(t, request.Header.Get("User-Agent"), "comms-cli/")

		_, _ = writer.Write([]byte(`{"value": 12.5, "autoReload": true}`))
	}))
	defer server.Close()

	useConfig(t, map[string]string{
		commands.KeyRESTBaseURL: server.URL,
		commands.KeyAPIKey:      "key",
		commands.KeyAPISecret:   "secret",
	})

	out, err := run(t, commands.NewBalanceCommand(), "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"value": 12.5, "autoReload": true}`, out)
}

//nolint:paralleltest // viper global state
func TestCreateClient_NoCredentials(t *testing.T) {
	useConfig(t, nil)

	_, err := run(t, commands.NewBalanceCommand(), "")
	require.ErrorIs(t, err, constants.ErrNoCredentials)
}

//nolint:paralleltest // viper global state
func TestCallsHangup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPut, request.Method)
		assert.Equal(t, "/v1/calls/CALL-1", request.URL.Path)
		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	useConfig(t, map[string]string{
		commands.KeyAPIBaseURL:  server.URL,
		commands.KeyAccessToken: "token",
	})

	out, err := run(t, commands.NewCallsCommand(), "", "hangup", "CALL-1")
	require.NoError(t, err)
	assert.Equal(t, "Call CALL-1 hung up\n", out)
}

//nolint:paralleltest // viper global state
func TestConfigShow_MasksSecrets(t *testing.T) {
	useConfig(t, map[string]string{
		commands.KeyAPIKey:    "key",
		commands.KeyAPISecret: "very-secret",
	})

	out, err := run(t, commands.NewConfigCommand(), "", "show")
	require.NoError(t, err)

	var values map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &values))
	assert.Equal(t, "key", values[commands.KeyAPIKey])
	assert.Equal(t, commands.Masked, values[commands.KeyAPISecret])
	assert.Empty(t, values[commands.KeyAccessToken])
}

//nolint:paralleltest // viper global state
func TestVersion(t *testing.T) {
	useConfig(t, nil)

	out, err := run(t, commands.NewVersionCommand("1.2.3", "abc", "today"), "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.2.3","commit":"abc","built":"today","library_version":"`+constants.Version+`"}`, out)
}
