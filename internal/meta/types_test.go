package meta

import "testing"

func TestMoveTarget(t *testing.T) {
	if !(MoveTarget{}).IsZero() {
		t.Error("zero value should report no move")
	}
	if (MoveTarget{First: true}).IsZero() {
		t.Error("FIRST move should not be zero")
	}
	if got := (MoveTarget{First: true}).String(); got != "FIRST" {
		t.Errorf("got %q", got)
	}
	if got := (MoveTarget{After: "id"}).String(); got != "AFTER id" {
		t.Errorf("got %q", got)
	}
	if got := (MoveTarget{}).String(); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestSourceName(t *testing.T) {
	// リネーム時は変更前の名前で既存カラムを引く。
	c := ColumnDescriptor{Name: "mail", OriginalName: "email"}
	if got := c.SourceName(); got != "email" {
		t.Errorf("got %q", got)
	}
	c.OriginalName = ""
	if got := c.SourceName(); got != "mail" {
		t.Errorf("got %q", got)
	}
}

func TestIsTemporal(t *testing.T) {
	for typ, want := range map[string]bool{
		"TIMESTAMP": true,
		"datetime":  true,
		"DATE":      false,
		"VARCHAR":   false,
	} {
		if got := (ColumnDescriptor{Type: typ}).IsTemporal(); got != want {
			t.Errorf("IsTemporal(%s) = %v", typ, got)
		}
	}
}

func TestQuoteIdentifier(t *testing.T) {
	if got := QuoteIdentifier("users"); got != "`users`" {
		t.Errorf("got %q", got)
	}
	// 識別子内のバッククォートは二重化する。
	if got := QuoteIdentifier("we`ird"); got != "`we``ird`" {
		t.Errorf("got %q", got)
	}
}

func TestQuoteLiteral(t *testing.T) {
	if got := QuoteLiteral("it's"); got != "'it''s'" {
		t.Errorf("got %q", got)
	}
	if got := QuoteLiteral(`a\b`); got != `'a\\b'` {
		t.Errorf("got %q", got)
	}
}

func TestIndexMembership(t *testing.T) {
	m := MembershipFromIndexes([]IndexDescriptor{
		{Name: "PRIMARY", Columns: []string{"id"}, IsPrimary: true, IsUnique: true},
		{Name: "uq_email", Columns: []string{"email"}, IsUnique: true},
		{Name: "ix_created", Columns: []string{"created"}},
	})
	if !m.InPrimaryOrUnique("id") || !m.InPrimaryOrUnique("email") {
		t.Error("primary/unique columns should match")
	}
	if m.InPrimaryOrUnique("created") {
		t.Error("plain index column should not match primary/unique")
	}
	if !m.InAnyIndex("created") {
		t.Error("plain index column should match any-index lookup")
	}
	// 照合は大文字小文字を無視する。
	if !m.InPrimaryOrUnique("ID") {
		t.Error("membership lookup should be case-insensitive")
	}
	if m.InAnyIndex("ghost") {
		t.Error("unindexed column should not match")
	}
}
