package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vuexpurge.dev/pkg/vuexpurge/internal/domain"
	domainmocks "vuexpurge.dev/pkg/vuexpurge/internal/domain/mocks"
	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
)

func TestRestoreCmd(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		force bool
		dir   m.Path
	}{
		{name: "defaults", args: []string{"restore"}, dir: ".vuexpurge-reports"},
		{name: "force and output", args: []string{"restore", "--force", "-o", "./out"}, force: true, dir: "./out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorkflow := domainmocks.NewMockWorkflow(t)

			cmd := newRootCmd()
			cmd.AddCommand(newRestoreCmd())
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			originalWorkflow := workflow
			workflow = mockWorkflow
			defer func() { workflow = originalWorkflow }()

			mockWorkflow.On("Restore", mock.Anything, domain.RestoreArgs{Reports: tt.dir, Force: tt.force}).Return(nil)

			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
		})
	}
}

func TestRestoreCmd_PositionalArgsAreRejected(t *testing.T) {
	cmd := newRootCmd()
	cmd.AddCommand(newRestoreCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"restore", "backup.gob"})
	require.Error(t, cmd.Execute())
}
