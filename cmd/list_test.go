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

func TestListCmd_PassesPathsAndFlavors(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("List", mock.Anything, mock.MatchedBy(func(args domain.ListArgs) bool {
		return len(args.Paths) == 1 &&
			args.Paths[0] == m.Path("./src/...") &&
			len(args.Flavors) == 1 &&
			args.Flavors[0] == "actions"
	})).Return(nil)

	cmd.SetArgs([]string{"list", "-f", "actions", "./src/..."})
	require.NoError(t, cmd.Execute())
}
