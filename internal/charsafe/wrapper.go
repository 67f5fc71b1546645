// Package charsafe wraps risky collation changes in a two-phase protocol:
// affected columns are first retyped to a generic binary type, and a single
// corrective statement can rebuild them from pre-mutation captures if the
// real alteration fails.
package charsafe

import (
	"strings"

	"github.com/Glider2355/table-mutator/internal/alter"
	"github.com/Glider2355/table-mutator/internal/meta"
)

// Pair は1カラムの変更前と変更後の定義の組。
type Pair struct {
	Original meta.ColumnDescriptor
	Desired  meta.ColumnDescriptor
}

// PreConversion は事前変換1件を表す。Original は変更前の完全なキャプチャ。
type PreConversion struct {
	Original  meta.ColumnDescriptor
	Statement string
}

// PlanPreSteps はコレーション変更のうち事前変換が必要なカラムを選び、
// 中間文を組み立てる。主キー/ユニークインデックスに属するカラムは
// 対象外で、ストアのネイティブな挙動に任せる。
func PlanPreSteps(table string, pairs []Pair, membership meta.IndexMembership) []PreConversion {
	var pre []PreConversion
	for _, p := range pairs {
		if !needsPreStep(p, membership) {
			continue
		}
		pre = append(pre, PreConversion{
			Original:  p.Original,
			Statement: intermediateStatement(table, p.Original),
		})
	}
	return pre
}

func needsPreStep(p Pair, membership meta.IndexMembership) bool {
	if p.Original.Collation == "" || p.Desired.Collation == "" {
		return false
	}
	if p.Original.Collation == p.Desired.Collation {
		return false
	}
	return !membership.InPrimaryOrUnique(p.Original.Name)
}

// intermediateStatement はカラムを汎用のラージバイナリ型へ変換する文を返す。
// 生成列の場合は生成式と種別を保持する。
func intermediateStatement(table string, original meta.ColumnDescriptor) string {
	var sb strings.Builder
	sb.WriteString("ALTER TABLE ")
	sb.WriteString(meta.QuoteIdentifier(table))
	sb.WriteString(" MODIFY ")
	sb.WriteString(meta.QuoteIdentifier(original.Name))
	sb.WriteString(" BLOB")
	if original.IsGenerated() {
		sb.WriteString(" AS (")
		sb.WriteString(original.Expression)
		sb.WriteString(") ")
		sb.WriteString(string(original.Virtuality))
	}
	return sb.String()
}

// RevertStatement は事前変換された全カラムを変更前の状態へ戻す1文を
// 組み立てる。定義は事前キャプチャのみから導出し、再取得はしない。
func RevertStatement(table string, pre []PreConversion) string {
	if len(pre) == 0 {
		return ""
	}
	clauses := make([]string, 0, len(pre))
	for _, p := range pre {
		capture := p.Original
		capture.OriginalName = ""
		capture.Move = meta.MoveTarget{}
		clauses = append(clauses,
			"CHANGE "+meta.QuoteIdentifier(capture.Name)+" "+alter.RenderDefinition(capture))
	}
	return "ALTER TABLE " + meta.QuoteIdentifier(table) + " " + strings.Join(clauses, ", ")
}
