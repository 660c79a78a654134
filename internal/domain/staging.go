package domain

import m "github.com/mouse-blink/gorald/internal/model"

// Workspace is the directory layout a run writes to.
type Workspace struct {
	Root         m.Path
	Intermediate m.Path
	FinalOutput  m.Path
	Patches      m.Path
}

// NewWorkspace lays out a workspace below root.
func NewWorkspace(root m.Path) Workspace {
	return Workspace{
		Root:         root,
		Intermediate: root.Join("intermediate"),
		FinalOutput:  root.Join("final-output"),
		Patches:      root.Join("patches"),
	}
}

// StageTask selects the input and output directory of rule i of n.
//
//	in-place:      target -> target for every rule
//	single rule:   target -> final output
//	first of n:    target -> intermediate
//	middle:        intermediate -> intermediate
//	last of n:     intermediate -> final output
func StageTask(i, n int, ruleKey string, strategy m.OutputStrategy, target m.Path, ws Workspace) m.RuleTask {
	task := m.RuleTask{Index: i, RuleKey: ruleKey, InputDir: target, OutputDir: target}

	if strategy == m.OutputInPlace {
		return task
	}

	if i > 0 {
		task.InputDir = ws.Intermediate
	}

	if i == n-1 {
		task.OutputDir = ws.FinalOutput
	} else {
		task.OutputDir = ws.Intermediate
		task.Intermediate = true
	}

	return task
}
