package meta

import "strings"

// SlotOptions はパーティション/サブパーティションの格納オプションを保持する。
type SlotOptions struct {
	Engine         string `json:"engine,omitempty"`
	Comment        string `json:"comment,omitempty"`
	DataDirectory  string `json:"data_directory,omitempty"`
	IndexDirectory string `json:"index_directory,omitempty"`
	MaxRows        string `json:"max_rows,omitempty"`
	MinRows        string `json:"min_rows,omitempty"`
	Tablespace     string `json:"tablespace,omitempty"`
	NodeGroup      string `json:"node_group,omitempty"`
}

// SubpartitionSlot は1つのサブパーティション区画を表す。
type SubpartitionSlot struct {
	Name    string      `json:"name"`
	Options SlotOptions `json:"options,omitempty"`
}

// PartitionSlot は1つのパーティション区画を表す。
// ValueType は "LESS THAN" / "LESS THAN MAXVALUE" / "IN" のいずれか。
type PartitionSlot struct {
	Name          string             `json:"name"`
	ValueType     string             `json:"value_type,omitempty"`
	Value         string             `json:"value,omitempty"`
	Options       SlotOptions        `json:"options,omitempty"`
	Subpartitions []SubpartitionSlot `json:"subpartitions,omitempty"`
}

// PartitionDescriptor はテーブルのパーティション構成全体を表す。
// ゼロ値はパーティションなしを意味する。
type PartitionDescriptor struct {
	Method        string          `json:"method,omitempty"`
	Expression    string          `json:"expression,omitempty"`
	Count         int             `json:"count,omitempty"`
	SubMethod     string          `json:"sub_method,omitempty"`
	SubExpression string          `json:"sub_expression,omitempty"`
	SubCount      int             `json:"sub_count,omitempty"`
	Slots         []PartitionSlot `json:"slots,omitempty"`
}

// IsEmpty はパーティション構成が存在しないかを判定する。
func (d PartitionDescriptor) IsEmpty() bool {
	return d.Method == ""
}

// ValuesEnabled はスロットごとのVALUES句を取るメソッドかを判定する。
func (d PartitionDescriptor) ValuesEnabled() bool {
	return methodTakesValues(d.Method)
}

// CanHaveSubpartitions はサブパーティション定義が可能かを判定する。
func (d PartitionDescriptor) CanHaveSubpartitions() bool {
	return d.Count > 1 && methodTakesValues(d.Method)
}

func methodTakesValues(method string) bool {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case "RANGE", "RANGE COLUMNS", "LIST", "LIST COLUMNS":
		return true
	default:
		return false
	}
}
