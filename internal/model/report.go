package model

// RuleReport summarizes the processing of one rule.
type RuleReport struct {
	RuleKey         string
	RuleName        string
	Mined           int
	Fixed           int
	Segments        int
	Processed       int
	Crashes         int
	BudgetExhausted bool
}

// RunReport summarizes a pipeline run.
type RunReport struct {
	RunID     string
	Rules     []RuleReport
	Written   []Path
	Patches   []Path
	OutputDir Path
}

// TotalFixes returns the number of repairs over all rules.
func (r RunReport) TotalFixes() int {
	total := 0
	for _, rule := range r.Rules {
		total += rule.Fixed
	}

	return total
}

// TotalCrashes returns the number of crashed segments over all rules.
func (r RunReport) TotalCrashes() int {
	total := 0
	for _, rule := range r.Rules {
		total += rule.Crashes
	}

	return total
}
