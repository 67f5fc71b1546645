// Package alter builds column-level ALTER TABLE clause fragments from
// pairs of original/desired column definitions.
package alter

import (
	"strings"

	"github.com/Glider2355/table-mutator/internal/meta"
)

// Changed reports whether any tracked field of desired differs from original.
// Index membership is never part of this comparison; index changes are
// issued as independent statements.
func Changed(original, desired meta.ColumnDescriptor) bool {
	switch {
	case original.Name != desired.Name,
		original.Type != desired.Type,
		original.Length != desired.Length,
		original.Attribute != desired.Attribute,
		original.Collation != desired.Collation,
		original.Nullable != desired.Nullable,
		original.DefaultKind != desired.DefaultKind,
		original.DefaultValue != desired.DefaultValue,
		original.Extra != desired.Extra,
		original.Comment != desired.Comment,
		original.Virtuality != desired.Virtuality,
		original.Expression != desired.Expression,
		!desired.Move.IsZero():
		return true
	}
	return false
}

// BuildClause builds one CHANGE clause for the column, or returns
// ok=false when nothing tracked differs and no move was requested.
func BuildClause(original, desired meta.ColumnDescriptor) (clause string, ok bool) {
	if !Changed(original, desired) {
		return "", false
	}
	var sb strings.Builder
	sb.WriteString("CHANGE ")
	sb.WriteString(meta.QuoteIdentifier(desired.SourceName()))
	sb.WriteString(" ")
	sb.WriteString(RenderDefinition(desired))
	return sb.String(), true
}

// RenderDefinition renders the full column definition unconditionally,
// starting with the (new) column name. The collation safety wrapper uses
// this to rebuild a column from its pre-mutation capture.
func RenderDefinition(col meta.ColumnDescriptor) string {
	parts := []string{meta.QuoteIdentifier(col.Name), typeSpec(col)}

	if col.Attribute != "" {
		parts = append(parts, col.Attribute)
	}
	if col.Collation != "" {
		parts = append(parts, "COLLATE "+col.Collation)
	}
	// The generation clause must precede the nullability clause.
	if col.IsGenerated() {
		parts = append(parts, "AS ("+col.Expression+") "+string(col.Virtuality))
	}
	if col.Nullable {
		parts = append(parts, "NULL")
	} else {
		parts = append(parts, "NOT NULL")
	}
	if d := renderDefault(col); d != "" {
		parts = append(parts, d)
	}
	if col.Extra != "" {
		parts = append(parts, col.Extra)
	}
	if col.Comment != "" {
		parts = append(parts, "COMMENT "+meta.QuoteLiteral(col.Comment))
	}
	if !col.Move.IsZero() {
		parts = append(parts, renderMove(col.Move))
	}
	return strings.Join(parts, " ")
}

func typeSpec(col meta.ColumnDescriptor) string {
	if col.Length == "" {
		return col.Type
	}
	return col.Type + "(" + col.Length + ")"
}

// renderDefault resolves the default-kind before rendering any value.
// Generated columns take no DEFAULT clause.
func renderDefault(col meta.ColumnDescriptor) string {
	if col.IsGenerated() {
		return ""
	}
	switch col.DefaultKind {
	case meta.DefaultNull:
		if !col.Nullable {
			return ""
		}
		return "DEFAULT NULL"
	case meta.DefaultCurrentTimestamp:
		if !col.IsTemporal() {
			return ""
		}
		return "DEFAULT " + meta.NowMarker
	case meta.DefaultUserDefined:
		if meta.IsNumericType(col.Type) {
			return "DEFAULT " + col.DefaultValue
		}
		return "DEFAULT " + meta.QuoteLiteral(col.DefaultValue)
	default:
		return ""
	}
}

func renderMove(m meta.MoveTarget) string {
	if m.First {
		return "FIRST"
	}
	return "AFTER " + meta.QuoteIdentifier(m.After)
}
