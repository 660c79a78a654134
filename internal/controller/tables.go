package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"

	m "github.com/mouse-blink/gorald/internal/model"
)

func newTable(buf *bytes.Buffer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	return table
}

func reportTable(report m.RunReport) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Rule", "Mined", "Fixed", "Segments", "Crashes", "Budget"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})

	mined := 0

	for _, rule := range report.Rules {
		budget := ""
		if rule.BudgetExhausted {
			budget = "exhausted"
		}

		mined += rule.Mined
		table.Append([]string{
			rule.RuleKey,
			fmt.Sprintf("%d", rule.Mined),
			fmt.Sprintf("%d", rule.Fixed),
			fmt.Sprintf("%d/%d", rule.Processed, rule.Segments),
			fmt.Sprintf("%d", rule.Crashes),
			budget,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Rules %d", len(report.Rules)),
		fmt.Sprintf("%d", mined),
		fmt.Sprintf("%d", report.TotalFixes()),
		"",
		fmt.Sprintf("%d", report.TotalCrashes()),
		"",
	})
	table.Render()

	return buf.String()
}

func violationsTable(violations []m.Violation, base m.Path) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Violation", "Message"})

	for _, v := range violations {
		table.Append([]string{v.Spec(base), v.Message})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Violations %d", len(violations)), ""})
	table.Render()

	return buf.String()
}

func rulesTable(rules []m.RuleInfo) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Key", "Name", "Description"})

	for _, r := range rules {
		table.Append([]string{r.Key, r.Name, r.Description})
	}

	table.Render()

	return buf.String()
}
