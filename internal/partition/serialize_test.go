package partition

import (
	"testing"

	"github.com/Glider2355/table-mutator/internal/meta"
)

func TestClauseRange(t *testing.T) {
	d := meta.PartitionDescriptor{
		Method:     "RANGE",
		Expression: "`id`",
		Count:      3,
		Slots: []meta.PartitionSlot{
			{Name: "p0", ValueType: "LESS THAN", Value: "10"},
			{Name: "p1", ValueType: "LESS THAN", Value: "20"},
			{Name: "p2", ValueType: "LESS THAN MAXVALUE"},
		},
	}
	want := "PARTITION BY RANGE (`id`) " +
		"(PARTITION `p0` VALUES LESS THAN (10), " +
		"PARTITION `p1` VALUES LESS THAN (20), " +
		"PARTITION `p2` VALUES LESS THAN MAXVALUE)"
	if got := Clause(d); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestClauseHashCount(t *testing.T) {
	// 境界値を持たない方式は区画数だけを書き出す。
	d := meta.PartitionDescriptor{Method: "HASH", Expression: "`id`", Count: 4}
	want := "PARTITION BY HASH (`id`) PARTITIONS 4"
	if got := Clause(d); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestClauseSubpartitions(t *testing.T) {
	d := meta.PartitionDescriptor{
		Method:        "RANGE",
		Expression:    "TO_DAYS(`d`)",
		Count:         1,
		SubMethod:     "HASH",
		SubExpression: "`id`",
		SubCount:      2,
		Slots: []meta.PartitionSlot{
			{
				Name:      "p0",
				ValueType: "LESS THAN",
				Value:     "100",
				Subpartitions: []meta.SubpartitionSlot{
					{Name: "s0"},
					{Name: "s1", Options: meta.SlotOptions{Engine: "InnoDB"}},
				},
			},
		},
	}
	want := "PARTITION BY RANGE (TO_DAYS(`d`)) " +
		"SUBPARTITION BY HASH (`id`) SUBPARTITIONS 2 " +
		"(PARTITION `p0` VALUES LESS THAN (100) " +
		"(SUBPARTITION `s0`, SUBPARTITION `s1` ENGINE = InnoDB))"
	if got := Clause(d); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestClauseSlotOptions(t *testing.T) {
	d := meta.PartitionDescriptor{
		Method:     "LIST",
		Expression: "`region`",
		Count:      1,
		Slots: []meta.PartitionSlot{
			{
				Name:      "north",
				ValueType: "IN",
				Value:     "1,2",
				Options:   meta.SlotOptions{
					Engine:  "InnoDB",
					Comment: "it's north",
					MaxRows: "100",
				},
			},
		},
	}
	want := "PARTITION BY LIST (`region`) " +
		"(PARTITION `north` VALUES IN (1,2) ENGINE = InnoDB COMMENT = 'it''s north' MAX_ROWS = 100)"
	if got := Clause(d); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestClauseEmpty(t *testing.T) {
	if got := Clause(meta.PartitionDescriptor{}); got != "" {
		t.Errorf("expected empty clause, got %q", got)
	}
}

func TestClauseRoundTrip(t *testing.T) {
	// 直列化した区画句を再度分解すると同じ記述子に戻ることを検証
	clauses := []string{
		"PARTITION BY RANGE (`id`) " +
			"(PARTITION `p0` VALUES LESS THAN (10), PARTITION `p1` VALUES LESS THAN MAXVALUE)",
		"PARTITION BY KEY (`id`) PARTITIONS 2",
		"PARTITION BY LIST (`c`) (PARTITION `a` VALUES IN (1,2) ENGINE = InnoDB)",
	}
	for _, clause := range clauses {
		d := Extract(clause)
		if d.IsEmpty() {
			t.Errorf("%s: extraction came back empty", clause)
			continue
		}
		if got := Clause(Extract(Clause(d))); got != Clause(d) {
			t.Errorf("%s: round trip drifted: %q", clause, got)
		}
	}
}

func TestStatements(t *testing.T) {
	d := meta.PartitionDescriptor{Method: "HASH", Expression: "`id`", Count: 2}
	if got, want := AlterStatement("t", d), "ALTER TABLE `t` PARTITION BY HASH (`id`) PARTITIONS 2"; got != want {
		t.Errorf("alter: got %q, want %q", got, want)
	}
	if got := AlterStatement("t", meta.PartitionDescriptor{}); got != "" {
		t.Errorf("alter on empty descriptor: got %q", got)
	}
	if got, want := RemoveStatement("t"), "ALTER TABLE `t` REMOVE PARTITIONING"; got != want {
		t.Errorf("remove: got %q, want %q", got, want)
	}
	if got, want := DropSlotStatement("t", "p0"), "ALTER TABLE `t` DROP PARTITION `p0`"; got != want {
		t.Errorf("drop: got %q, want %q", got, want)
	}
	if got, want := TruncateSlotStatement("t", "p0"), "ALTER TABLE `t` TRUNCATE PARTITION `p0`"; got != want {
		t.Errorf("truncate: got %q, want %q", got, want)
	}
}
