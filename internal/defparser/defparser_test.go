package defparser

import (
	"errors"
	"strings"
	"testing"

	"github.com/Glider2355/table-mutator/internal/meta"
)

func TestPartitionClause(t *testing.T) {
	definition := "CREATE TABLE `sales` (" +
		"`id` int NOT NULL" +
		") ENGINE=InnoDB PARTITION BY HASH (`id`) PARTITIONS 4"

	clause, err := PartitionClause(definition)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, fragment := range []string{"PARTITION BY", "HASH", "PARTITIONS 4"} {
		if !strings.Contains(clause, fragment) {
			t.Errorf("clause misses %q: %s", fragment, clause)
		}
	}
}

func TestPartitionClauseAbsent(t *testing.T) {
	// 区画のないテーブルは空文字かつエラーなしで返ることを検証
	clause, err := PartitionClause("CREATE TABLE `t` (`id` int NOT NULL)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clause != "" {
		t.Errorf("expected empty clause, got %q", clause)
	}
}

func TestPartitionClauseUnparseable(t *testing.T) {
	for _, definition := range []string{
		"this is not sql",
		"SELECT 1",
	} {
		_, err := PartitionClause(definition)
		var pe *meta.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%s: expected ParseError, got %v", definition, err)
		}
	}
}

func TestValidateStatement(t *testing.T) {
	if err := ValidateStatement("ALTER TABLE `t` CHANGE `a` `b` INT NOT NULL"); err != nil {
		t.Errorf("valid statement rejected: %v", err)
	}
	err := ValidateStatement("ALTER TABLE `t` CHANGE CHANGE CHANGE")
	var pe *meta.ParseError
	if !errors.As(err, &pe) {
		t.Errorf("expected ParseError, got %v", err)
	}
}
