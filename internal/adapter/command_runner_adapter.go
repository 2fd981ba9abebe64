package adapter

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// DefaultCommandTimeout bounds a verification command when no timeout is set.
const DefaultCommandTimeout = 5 * time.Minute

// commandWaitDelay is how long Run waits for the output pipes to close after
// the command was killed.
const commandWaitDelay = 2 * time.Second

// CommandRunnerAdapter runs the verification command after files were
// rewritten, e.g. a type checker or the project's test suite.
type CommandRunnerAdapter interface {
	// Run executes command through the shell in workDir and returns the
	// combined stdout/stderr output.
	Run(ctx context.Context, workDir, command string) (output string, err error)
}

// LocalCommandRunnerAdapter provides a concrete implementation using os/exec.
type LocalCommandRunnerAdapter struct {
	timeout time.Duration
}

// NewLocalCommandRunnerAdapter constructs a LocalCommandRunnerAdapter. A
// non-positive timeout selects DefaultCommandTimeout.
func NewLocalCommandRunnerAdapter(timeout time.Duration) *LocalCommandRunnerAdapter {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}

	return &LocalCommandRunnerAdapter{timeout: timeout}
}

// Run implements CommandRunnerAdapter.
func (a *LocalCommandRunnerAdapter) Run(ctx context.Context, workDir, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	// #nosec G204 - the command comes from the user's own configuration
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = workDir
	cmd.WaitDelay = commandWaitDelay

	// The shell's children inherit the output pipes, so cancellation has to
	// reach the whole process group.
	killProcessGroupOnCancel(cmd)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	output := stdout.String() + stderr.String()

	return output, err
}
