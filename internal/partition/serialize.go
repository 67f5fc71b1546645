package partition

import (
	"fmt"
	"strings"

	"github.com/Glider2355/table-mutator/internal/meta"
)

// Clause reconstructs a PARTITION BY clause from a descriptor.
func Clause(d meta.PartitionDescriptor) string {
	if d.IsEmpty() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("PARTITION BY ")
	sb.WriteString(strings.ToUpper(d.Method))
	sb.WriteString(" (")
	sb.WriteString(d.Expression)
	sb.WriteString(")")

	if d.Count > 0 && !d.ValuesEnabled() {
		fmt.Fprintf(&sb, " PARTITIONS %d", d.Count)
	}
	if d.SubMethod != "" {
		sb.WriteString(" SUBPARTITION BY ")
		sb.WriteString(strings.ToUpper(d.SubMethod))
		sb.WriteString(" (")
		sb.WriteString(d.SubExpression)
		sb.WriteString(")")
		if d.SubCount > 0 {
			fmt.Fprintf(&sb, " SUBPARTITIONS %d", d.SubCount)
		}
	}
	if d.ValuesEnabled() && len(d.Slots) > 0 {
		defs := make([]string, len(d.Slots))
		for i, slot := range d.Slots {
			defs[i] = slotSQL(slot)
		}
		sb.WriteString(" (")
		sb.WriteString(strings.Join(defs, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

func slotSQL(slot meta.PartitionSlot) string {
	var sb strings.Builder
	sb.WriteString("PARTITION ")
	sb.WriteString(meta.QuoteIdentifier(slot.Name))
	switch {
	case strings.HasSuffix(slot.ValueType, maxValueMarker):
		sb.WriteString(" VALUES LESS THAN MAXVALUE")
	case slot.ValueType != "":
		fmt.Fprintf(&sb, " VALUES %s (%s)", slot.ValueType, slot.Value)
	}
	writeOptions(&sb, slot.Options)
	if len(slot.Subpartitions) > 0 {
		subs := make([]string, len(slot.Subpartitions))
		for i, sub := range slot.Subpartitions {
			var sp strings.Builder
			sp.WriteString("SUBPARTITION ")
			sp.WriteString(meta.QuoteIdentifier(sub.Name))
			writeOptions(&sp, sub.Options)
			subs[i] = sp.String()
		}
		sb.WriteString(" (")
		sb.WriteString(strings.Join(subs, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

func writeOptions(sb *strings.Builder, opts meta.SlotOptions) {
	if opts.Engine != "" {
		sb.WriteString(" ENGINE = " + opts.Engine)
	}
	if opts.Comment != "" {
		sb.WriteString(" COMMENT = " + meta.QuoteLiteral(opts.Comment))
	}
	if opts.DataDirectory != "" {
		sb.WriteString(" DATA DIRECTORY = " + meta.QuoteLiteral(opts.DataDirectory))
	}
	if opts.IndexDirectory != "" {
		sb.WriteString(" INDEX DIRECTORY = " + meta.QuoteLiteral(opts.IndexDirectory))
	}
	if opts.MaxRows != "" {
		sb.WriteString(" MAX_ROWS = " + opts.MaxRows)
	}
	if opts.MinRows != "" {
		sb.WriteString(" MIN_ROWS = " + opts.MinRows)
	}
	if opts.Tablespace != "" {
		sb.WriteString(" TABLESPACE = " + opts.Tablespace)
	}
	if opts.NodeGroup != "" {
		sb.WriteString(" NODEGROUP = " + opts.NodeGroup)
	}
}

// AlterStatement builds the statement that repartitions a table. Partition
// alterations always travel as their own statement, never combined with
// column alterations.
func AlterStatement(table string, d meta.PartitionDescriptor) string {
	if d.IsEmpty() {
		return ""
	}
	return "ALTER TABLE " + meta.QuoteIdentifier(table) + " " + Clause(d)
}

// RemoveStatement builds the statement that drops the partitioning
// structure while keeping the data.
func RemoveStatement(table string) string {
	return "ALTER TABLE " + meta.QuoteIdentifier(table) + " REMOVE PARTITIONING"
}

// DropSlotStatement builds the maintenance statement that drops one
// partition slot together with its data.
func DropSlotStatement(table, slot string) string {
	return "ALTER TABLE " + meta.QuoteIdentifier(table) + " DROP PARTITION " + meta.QuoteIdentifier(slot)
}

// TruncateSlotStatement builds the maintenance statement that empties one
// partition slot without dropping it.
func TruncateSlotStatement(table, slot string) string {
	return "ALTER TABLE " + meta.QuoteIdentifier(table) + " TRUNCATE PARTITION " + meta.QuoteIdentifier(slot)
}
