package cmd

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vuexpurge.dev/pkg/vuexpurge/internal/domain"
	domainmocks "vuexpurge.dev/pkg/vuexpurge/internal/domain/mocks"
	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
)

func newTestRunRoot(t *testing.T) (*cobra.Command, *domainmocks.MockWorkflow) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	return cmd, mockWorkflow
}

func TestRunCmd_Defaults(t *testing.T) {
	cmd, mockWorkflow := newTestRunRoot(t)

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Threads == defaultRunParallel &&
			args.Reports == m.Path(".vuexpurge-reports") &&
			!args.DryRun &&
			args.Backup &&
			!args.ShowDiffs &&
			args.Verify == "" &&
			args.VerifyTimeout == defaultVerifyTimeout &&
			args.WorkDir != "" &&
			assert.ObjectsAreEqual([]string{"actions", "mutations"}, args.Flavors)
	})).Return(nil)

	cmd.SetArgs([]string{"run", "./..."})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_Flags(t *testing.T) {
	cmd, mockWorkflow := newTestRunRoot(t)

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Threads == 2 &&
			args.DryRun &&
			args.ShowDiffs &&
			args.Verify == "npm test" &&
			args.VerifyTimeout == 90*time.Second &&
			assert.ObjectsAreEqual([]string{"mutations"}, args.Flavors)
	})).Return(nil)

	cmd.SetArgs([]string{
		"run", "--parallel", "2", "-n", "--diff",
		"--flavor", "mutations",
		"--verify", "npm test", "--verify-timeout", "90s",
		"./...",
	})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_MultiplePaths(t *testing.T) {
	cmd, mockWorkflow := newTestRunRoot(t)

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return len(args.Paths) == 3 &&
			args.Paths[0] == m.Path("./src") &&
			args.Paths[1] == m.Path("./lib/...") &&
			args.Paths[2] == m.Path("App.vue")
	})).Return(nil)

	cmd.SetArgs([]string{"run", "./src", "./lib/...", "App.vue"})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_WithExcludePatterns(t *testing.T) {
	cmd, mockWorkflow := newTestRunRoot(t)

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return len(args.Exclude) == 2 &&
			args.Exclude[0] == "^legacy/" &&
			args.Exclude[1] == "\\.spec\\.ts$"
	})).Return(nil)

	cmd.SetArgs([]string{"run", "-x", "^legacy/", "-x", "\\.spec\\.ts$", "./..."})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_NoBackup(t *testing.T) {
	cmd, mockWorkflow := newTestRunRoot(t)

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return !args.Backup
	})).Return(nil)

	cmd.SetArgs([]string{"run", "--backup=false"})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_PropagatesWorkflowError(t *testing.T) {
	cmd, mockWorkflow := newTestRunRoot(t)

	mockWorkflow.On("Run", mock.Anything, mock.Anything).Return(domain.ErrFilesFailed)

	cmd.SetArgs([]string{"run"})
	err := cmd.Execute()
	assert.True(t, errors.Is(err, domain.ErrFilesFailed))
}

func TestNewRunCmd(t *testing.T) {
	cmd := newRunCmd()

	assert.Equal(t, "run [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, runLongDescription, cmd.Long)

	for _, name := range []string{runDryRunFlagName, runBackupFlagName, runDiffFlagName, verifyFlagName, verifyTimeoutFlagName} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
