package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/gorald/internal/model"
)

func TestRulesCmd(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)

	infos := []m.RuleInfo{
		{Key: "bool-literal-compare", Name: "Boolean literal comparison"},
		{Key: "self-assignment", Name: "Self assignment"},
	}
	mockWorkflow.On("Rules").Return(infos)
	mockUI.On("DisplayRules", infos).Return(nil)

	cmd, _ := newTestRootCmd("rules")

	require.NoError(t, cmd.Execute())
}

func TestRulesCmd_RejectsArgs(t *testing.T) {
	withMocks(t)

	cmd, _ := newTestRootCmd("rules", "extra")

	require.Error(t, cmd.Execute())
}
