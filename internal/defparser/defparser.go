// Package defparser wraps the TiDB SQL parser for the two places the
// engine needs real SQL parsing: isolating the partition clause of a
// table definition and syntax-checking planned statements.
package defparser

import (
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/format"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"

	"github.com/Glider2355/table-mutator/internal/meta"
)

// PartitionClause parses definition text as CREATE TABLE and returns the
// text of its partition clause. A table without partitioning returns ""
// with no error. Undecomposable text returns a ParseError; callers treat
// that as "no partitioning present" or fall back to direct scanning.
func PartitionClause(definition string) (string, error) {
	p := parser.New()
	stmts, _, err := p.Parse(definition, "", "")
	if err != nil {
		return "", &meta.ParseError{Reason: err.Error()}
	}
	for _, stmt := range stmts {
		create, ok := stmt.(*ast.CreateTableStmt)
		if !ok {
			continue
		}
		if create.Partition == nil {
			return "", nil
		}
		var sb strings.Builder
		ctx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
		if err := create.Partition.Restore(ctx); err != nil {
			return "", &meta.ParseError{Reason: err.Error()}
		}
		return sb.String(), nil
	}
	return "", &meta.ParseError{Reason: "no CREATE TABLE statement found"}
}

// ValidateStatement parses a planned statement and reports a ParseError
// when the statement would be rejected on syntax alone. Preview mode runs
// every planned statement through this before reporting it.
func ValidateStatement(statement string) error {
	p := parser.New()
	if _, _, err := p.Parse(statement, "", ""); err != nil {
		return &meta.ParseError{Reason: err.Error()}
	}
	return nil
}
