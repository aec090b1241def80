//go:build integration

package integration

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	APIKey         string
	APISecret      string
	ConversationID string
	CommsPath      string
	Verbose        bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIKey:         os.Getenv("COMMS_API_KEY"),
		APISecret:      os.Getenv("COMMS_API_SECRET"),
		ConversationID: os.Getenv("COMMS_CONVERSATION_ID"),
		CommsPath:      getCommsPath(),
		Verbose:        os.Getenv("COMMS_TEST_VERBOSE") == "true",
	}
}

// getCommsPath determines the path to the comms binary.
func getCommsPath() string {
	if path := os.Getenv("COMMS_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../comms",
		"./comms",
		"../comms",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "comms"
}

// SkipIfMissingBinary skips the test when the comms binary cannot be found.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.CommsPath); err != nil {
		t.Skipf("comms binary not found at %s, skipping integration test", config.CommsPath)
	}
}

// SkipIfMissingCredentials skips the test when no live account is configured.
func (config *TestConfig) SkipIfMissingCredentials(t *testing.T) {
	t.Helper()
	config.SkipIfMissingBinary(t)

	if config.APIKey == "" || config.APISecret == "" {
		t.Skip("COMMS_API_KEY or COMMS_API_SECRET not set, skipping integration test")
	}
}

// CommandRunner runs comms commands against an isolated home directory.
type CommandRunner struct {
	config *TestConfig
	home   string
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config: config,
		home:   t.TempDir(),
		t:      t,
	}
}

func (runner *CommandRunner) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, runner.config.CommsPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+runner.home)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.CommsPath, strings.Join(args, " "))
	}

	return cmd
}

// Run executes a comms command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a comms command with stdin input.
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	cmd := runner.command(context.Background(), args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// Start launches a long running comms command. The process is killed when
// the test ends.
func (runner *CommandRunner) Start(stdout *SyncBuffer, args ...string) error {
	ctx, cancel := context.WithCancel(context.Background())

	cmd := runner.command(ctx, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stdout

	if err := cmd.Start(); err != nil {
		cancel()

		return fmt.Errorf("failed to start %s: %w", strings.Join(args, " "), err)
	}

	runner.t.Cleanup(func() {
		cancel()
		_ = cmd.Wait()
	})

	return nil
}

// FreeAddr returns a loopback address with a port nothing listens on.
func FreeAddr(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve a port: %v", err)
	}

	addr := listener.Addr().String()
	_ = listener.Close()

	return addr
}

// WaitForCondition waits for a condition to be met with timeout.
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	t.Helper()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	timeoutChan := time.After(timeout)

	for {
		select {
		case <-ticker.C:
			if condition() {
				return
			}
		case <-timeoutChan:
			t.Fatalf("Timeout waiting for condition: %s", message)
		}
	}
}

// AssertJSONOutput verifies command output looks like JSON.
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	output = strings.TrimSpace(output)
	if !strings.HasPrefix(output, "{") && !strings.HasPrefix(output, "[") {
		t.Errorf("Output does not appear to be JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output looks like YAML.
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	output = strings.TrimSpace(output)
	if strings.Contains(output, "---") || strings.Contains(output, ":") {
		return
	}

	t.Errorf("Output does not appear to be YAML: %s", output)
}

// SyncBuffer is a bytes.Buffer safe for a process writer and a test reader.
type SyncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SyncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *SyncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}
