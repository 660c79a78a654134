package domain

import (
	"context"
	"fmt"

	"github.com/mouse-blink/gorald/internal/domain/rules"
	m "github.com/mouse-blink/gorald/internal/model"
)

// ViolationOracle resolves the violations a rule should repair in a stage.
type ViolationOracle struct {
	scanner   Scanner
	notifier  *Notifier
	pinned    m.ViolationSet
	targetDir m.Path
}

// NewViolationOracle creates an oracle. pinned holds violations given up front,
// located below targetDir; when non-empty they replace the mined ones.
func NewViolationOracle(scanner Scanner, notifier *Notifier, pinned m.ViolationSet, targetDir m.Path) *ViolationOracle {
	return &ViolationOracle{scanner: scanner, notifier: notifier, pinned: pinned, targetDir: targetDir}
}

// Violations returns the violations of rule among files of inputDir. Mining
// runs whenever someone listens for ViolationMined or nothing was pinned.
func (o *ViolationOracle) Violations(ctx context.Context, rule rules.Rule, inputDir m.Path, files []m.Path) (m.ViolationSet, error) {
	var mined m.ViolationSet

	if o.notifier.HasObservers() || len(o.pinned) == 0 {
		var err error

		mined, err = o.scanner.Scan(ctx, rule, files)
		if err != nil {
			return nil, fmt.Errorf("failed to mine violations of %s: %w", rule.Key(), err)
		}

		for _, v := range mined.Sorted() {
			o.notifier.Fire(ctx, m.Event{Type: m.EventViolationMined, RuleKey: rule.Key(), Segment: -1, Violation: &v})
		}
	}

	if len(o.pinned) > 0 {
		return o.pinned.ForRule(rule.Key()).Rebase(o.targetDir, inputDir), nil
	}

	return mined, nil
}
