package reporter

import (
	"encoding/json"
	"fmt"
)

// JSONReporter は機械可読なJSON形式で結果を出力する。
type JSONReporter struct{}

// NewJSONReporter は新しい JSONReporter を作成する。
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{}
}

type jsonResult struct {
	Table        string   `json:"table"`
	PreSteps     []string `json:"pre_steps,omitempty"`
	Statement    string   `json:"statement,omitempty"`
	Partition    string   `json:"partition_statement,omitempty"`
	Executed     bool     `json:"executed"`
	FollowUpErrs []string `json:"follow_up_errors,omitempty"`
}

// Render はレポートをJSONとしてレンダリングする。
func (r *JSONReporter) Render(report *Report) (string, error) {
	results := make([]jsonResult, 0, len(report.Results))
	for _, res := range report.Results {
		jr := jsonResult{
			Table:     res.Table,
			PreSteps:  res.PreSteps,
			Statement: res.Statement,
			Partition: res.Partition,
			Executed:  res.Executed,
		}
		for _, err := range res.FollowUpErrs {
			jr.FollowUpErrs = append(jr.FollowUpErrs, err.Error())
		}
		results = append(results, jr)
	}

	data, err := json.MarshalIndent(map[string][]jsonResult{"results": results}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data), nil
}
