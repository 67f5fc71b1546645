// Package partition decomposes the partition clause of a table definition
// into a structured descriptor, and serializes descriptors back to SQL.
package partition

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Glider2355/table-mutator/internal/defparser"
	"github.com/Glider2355/table-mutator/internal/meta"
)

// maxValueMarker is the boundary catch-all of RANGE partitioning.
const maxValueMarker = "MAXVALUE"

// Extract parses the literal current definition text of a table into a
// PartitionDescriptor. No partition clause, or a clause that cannot be
// decomposed, yields the empty descriptor; that is the common case, not
// an error.
func Extract(definition string) meta.PartitionDescriptor {
	if strings.TrimSpace(definition) == "" {
		return meta.PartitionDescriptor{}
	}
	clause, err := defparser.PartitionClause(definition)
	if err != nil {
		// Text the SQL parser cannot decompose is scanned directly.
		clause = locateClause(definition)
	}
	if strings.TrimSpace(clause) == "" {
		return meta.PartitionDescriptor{}
	}
	return parseClause(clause)
}

// locateClause finds the PARTITION BY clause inside raw definition text.
// SHOW CREATE TABLE may wrap it in a versioned comment.
func locateClause(definition string) string {
	from := 0
	for {
		i := indexKeyword(definition[from:], "PARTITION")
		if i < 0 {
			return ""
		}
		i += from
		tail := definition[i+len("PARTITION"):]
		sc := &scanner{s: tail}
		if t := sc.next(); t.kind == tokWord && strings.EqualFold(t.text, "BY") {
			return strings.TrimSuffix(strings.TrimSpace(definition[i:]), "*/")
		}
		from = i + len("PARTITION")
	}
}

func parseClause(clause string) meta.PartitionDescriptor {
	var d meta.PartitionDescriptor

	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(clause), "*/"))
	s = stripWord(s, "PARTITION")
	s = stripWord(s, "BY")

	var rest string
	d.Method, d.Expression, rest = methodAndExpr(s)
	if n, r, ok := takeCount(rest, "PARTITIONS"); ok {
		d.Count, rest = n, r
	}

	// The subpartition clause recurses through the same extraction.
	if i := indexKeyword(rest, "SUBPARTITION"); i >= 0 {
		sub := stripWord(stripWord(rest[i:], "SUBPARTITION"), "BY")
		d.SubMethod, d.SubExpression, rest = methodAndExpr(sub)
		if n, r, ok := takeCount(rest, "SUBPARTITIONS"); ok {
			d.SubCount, rest = n, r
		}
	}

	decls := parseDeclarations(rest)
	if d.Count == 0 {
		d.Count = len(decls)
	}
	if d.SubMethod != "" && d.SubCount == 0 {
		for _, dec := range decls {
			if len(dec.Subpartitions) > d.SubCount {
				d.SubCount = len(dec.Subpartitions)
			}
		}
	}

	// Declared slots fill their positions, defaults fill the rest, so the
	// slot list length always equals the declared count.
	for i := 0; i < d.Count; i++ {
		slot := meta.PartitionSlot{Name: fmt.Sprintf("p%d", i)}
		if i < len(decls) {
			slot = decls[i]
		}
		if d.SubCount > 1 {
			subs := make([]meta.SubpartitionSlot, d.SubCount)
			for j := range subs {
				if j < len(slot.Subpartitions) {
					subs[j] = slot.Subpartitions[j]
				} else {
					subs[j] = meta.SubpartitionSlot{Name: fmt.Sprintf("%s_s%d", slot.Name, j)}
				}
			}
			slot.Subpartitions = subs
		}
		d.Slots = append(d.Slots, slot)
	}
	return d
}

// methodAndExpr isolates the method token and the parenthesized expression
// of one BY segment: everything before the segment's first '(' is the
// method, everything up to the paren closing it is the expression.
func methodAndExpr(s string) (method, expr, rest string) {
	open := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '`', '\'', '"':
			i = skipQuoted(s, i)
		case '(':
			open = i
		}
		if open >= 0 {
			break
		}
	}
	if open < 0 {
		return normalizeMethod(s), "", ""
	}
	closing := matchingParen(s, open)
	if closing < 0 {
		closing = len(s) - 1
	}
	method = normalizeMethod(s[:open])
	expr = strings.TrimSpace(s[open+1 : closing])
	if closing+1 < len(s) {
		rest = s[closing+1:]
	}
	return method, expr, rest
}

func normalizeMethod(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

// stripWord removes one leading keyword from s when present.
func stripWord(s, word string) string {
	s = strings.TrimSpace(s)
	if len(s) >= len(word) && strings.EqualFold(s[:len(word)], word) {
		if len(s) == len(word) || !isWordChar(s[len(word)]) {
			return strings.TrimSpace(s[len(word):])
		}
	}
	return s
}

// takeCount consumes "<kw> <n>" from the head of s.
func takeCount(s, kw string) (int, string, bool) {
	sc := &scanner{s: strings.TrimSpace(s)}
	t := sc.next()
	if t.kind != tokWord || !strings.EqualFold(t.text, kw) {
		return 0, s, false
	}
	v := sc.next()
	n, err := strconv.Atoi(v.text)
	if err != nil {
		return 0, s, false
	}
	return n, sc.s[sc.pos:], true
}

// parseDeclarations finds the enumerated slot list, if any.
func parseDeclarations(s string) []meta.PartitionSlot {
	sc := &scanner{s: s}
	for {
		t := sc.next()
		switch t.kind {
		case tokEOF:
			return nil
		case tokGroup:
			inner := strings.TrimSpace(t.text)
			if hasPrefixKeyword(inner, "PARTITION") {
				return parseSlotList(inner)
			}
		}
	}
}

func parseSlotList(inner string) []meta.PartitionSlot {
	var slots []meta.PartitionSlot
	for _, part := range splitTopLevel(inner, ',') {
		if slot, ok := parseSlot(part); ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

func parseSlot(s string) (meta.PartitionSlot, bool) {
	sc := &scanner{s: strings.TrimSpace(s)}
	t := sc.next()
	if t.kind != tokWord || !strings.EqualFold(t.text, "PARTITION") {
		return meta.PartitionSlot{}, false
	}
	name := sc.next()
	slot := meta.PartitionSlot{Name: name.text}
	for {
		t = sc.next()
		switch {
		case t.kind == tokEOF:
			return slot, true
		case t.kind == tokGroup:
			inner := strings.TrimSpace(t.text)
			if hasPrefixKeyword(inner, "SUBPARTITION") {
				slot.Subpartitions = parseSubSlots(inner)
			}
		case t.kind == tokWord && strings.EqualFold(t.text, "VALUES"):
			parseValues(sc, &slot)
		case t.kind == tokWord:
			applyOption(sc, t.text, &slot.Options)
		}
	}
}

// parseValues reads the boundary clause after VALUES. A boundary that is
// exactly the catch-all marker appends the MAXVALUE suffix to the value
// type and clears the value expression.
func parseValues(sc *scanner, slot *meta.PartitionSlot) {
	t := sc.next()
	switch {
	case t.kind == tokWord && strings.EqualFold(t.text, "LESS"):
		sc.next() // THAN
		slot.ValueType = "LESS THAN"
		v := sc.next()
		switch {
		case v.kind == tokWord && strings.EqualFold(v.text, maxValueMarker):
			slot.ValueType += " " + maxValueMarker
			slot.Value = ""
		case v.kind == tokGroup:
			raw := strings.TrimSpace(v.text)
			if strings.EqualFold(raw, maxValueMarker) {
				slot.ValueType += " " + maxValueMarker
				slot.Value = ""
			} else {
				slot.Value = raw
			}
		}
	case t.kind == tokWord && strings.EqualFold(t.text, "IN"):
		slot.ValueType = "IN"
		if v := sc.next(); v.kind == tokGroup {
			slot.Value = strings.TrimSpace(v.text)
		}
	}
}

func parseSubSlots(inner string) []meta.SubpartitionSlot {
	var subs []meta.SubpartitionSlot
	for _, part := range splitTopLevel(inner, ',') {
		sc := &scanner{s: strings.TrimSpace(part)}
		t := sc.next()
		if t.kind != tokWord || !strings.EqualFold(t.text, "SUBPARTITION") {
			continue
		}
		name := sc.next()
		sub := meta.SubpartitionSlot{Name: name.text}
		for {
			t = sc.next()
			if t.kind == tokEOF {
				break
			}
			if t.kind == tokWord {
				applyOption(sc, t.text, &sub.Options)
			}
		}
		subs = append(subs, sub)
	}
	return subs
}

// applyOption consumes one storage option. String values come back with
// their surrounding quotes already stripped by the scanner.
func applyOption(sc *scanner, word string, opts *meta.SlotOptions) {
	switch strings.ToUpper(word) {
	case "STORAGE":
		// STORAGE ENGINE — the next word restarts option handling.
	case "ENGINE":
		opts.Engine = optionValue(sc)
	case "COMMENT":
		opts.Comment = optionValue(sc)
	case "DATA":
		if nextWordIs(sc, "DIRECTORY") {
			opts.DataDirectory = optionValue(sc)
		}
	case "INDEX":
		if nextWordIs(sc, "DIRECTORY") {
			opts.IndexDirectory = optionValue(sc)
		}
	case "MAX_ROWS":
		opts.MaxRows = optionValue(sc)
	case "MIN_ROWS":
		opts.MinRows = optionValue(sc)
	case "TABLESPACE":
		opts.Tablespace = optionValue(sc)
	case "NODEGROUP":
		opts.NodeGroup = optionValue(sc)
	}
}

// optionValue skips an optional '=' and returns the next token's text.
func optionValue(sc *scanner) string {
	t := sc.next()
	if t.kind == tokSym && t.text == "=" {
		t = sc.next()
	}
	return t.text
}

func nextWordIs(sc *scanner, word string) bool {
	if t := sc.peek(); t.kind == tokWord && strings.EqualFold(t.text, word) {
		sc.next()
		return true
	}
	return false
}

func hasPrefixKeyword(s, kw string) bool {
	sc := &scanner{s: s}
	t := sc.next()
	return t.kind == tokWord && strings.EqualFold(t.text, kw)
}
