package reporter

import (
	"fmt"
	"strings"
)

// TextReporter は人間が読みやすいテキスト形式で結果を出力する。
type TextReporter struct{}

// NewTextReporter は新しい TextReporter を作成する。
func NewTextReporter() *TextReporter {
	return &TextReporter{}
}

// Render はレポートをテキストとしてレンダリングする。
func (r *TextReporter) Render(report *Report) (string, error) {
	var sb strings.Builder

	sb.WriteString(headColor.Sprint("=== Table Mutation Report ===") + "\n")

	for i, res := range report.Results {
		if i > 0 {
			sb.WriteString("\n---\n")
		}
		fmt.Fprintf(&sb, "\nTable: %s\n", res.Table)
		fmt.Fprintf(&sb, "Mode:  %s\n", modeString(res.Executed))

		for _, p := range res.PreSteps {
			fmt.Fprintf(&sb, "\n  Pre-step  : %s\n", stmtColor.Sprint(p))
		}
		if res.Statement != "" {
			fmt.Fprintf(&sb, "\n  Statement : %s\n", stmtColor.Sprint(res.Statement))
		}
		if res.Partition != "" {
			fmt.Fprintf(&sb, "\n  Partition : %s\n", stmtColor.Sprint(res.Partition))
		}

		if len(res.FollowUpErrs) > 0 {
			sb.WriteString("\n" + warnColor.Sprint("  Follow-up failures:") + "\n")
			for _, err := range res.FollowUpErrs {
				fmt.Fprintf(&sb, "    - %v\n", err)
			}
		}
	}

	return sb.String(), nil
}

func modeString(executed bool) string {
	if executed {
		return "executed"
	}
	return "preview"
}
