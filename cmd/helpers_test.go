package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	controllermocks "github.com/mouse-blink/gorald/internal/controller/mocks"
	domainmocks "github.com/mouse-blink/gorald/internal/domain/mocks"
)

// withMocks swaps the package-level workflow and ui for mocks for the
// duration of the test.
func withMocks(t *testing.T) (*domainmocks.MockWorkflow, *controllermocks.MockUI) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)
	mockUI := controllermocks.NewMockUI(t)

	originalWorkflow, originalUI := workflow, ui
	workflow, ui = mockWorkflow, mockUI

	t.Cleanup(func() { workflow, ui = originalWorkflow, originalUI })

	return mockWorkflow, mockUI
}

func newTestRootCmd(args ...string) (*cobra.Command, *bytes.Buffer) {
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	return cmd, out
}
