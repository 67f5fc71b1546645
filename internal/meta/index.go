package meta

import "strings"

// IndexDescriptor はインデックスのメタデータを保持する。
type IndexDescriptor struct {
	Name      string   `json:"name"`
	Columns   []string `json:"columns"`
	IsUnique  bool     `json:"is_unique"`
	IsPrimary bool     `json:"is_primary"`
	IndexType string   `json:"index_type,omitempty"`
}

// IndexMembership はカラム名からインデックス所属を引くための読み取り専用ビュー。
type IndexMembership struct {
	primaryOrUnique map[string]bool
	any             map[string]bool
}

// MembershipFromIndexes はインデックス一覧から所属ビューを構築する。
func MembershipFromIndexes(indexes []IndexDescriptor) IndexMembership {
	m := IndexMembership{
		primaryOrUnique: make(map[string]bool),
		any:             make(map[string]bool),
	}
	for _, idx := range indexes {
		for _, col := range idx.Columns {
			key := strings.ToLower(col)
			m.any[key] = true
			if idx.IsPrimary || idx.IsUnique {
				m.primaryOrUnique[key] = true
			}
		}
	}
	return m
}

// InPrimaryOrUnique はカラムが主キーまたはユニークインデックスに含まれるかを返す。
func (m IndexMembership) InPrimaryOrUnique(column string) bool {
	return m.primaryOrUnique[strings.ToLower(column)]
}

// InAnyIndex はカラムが何らかのインデックスに含まれるかを返す。
func (m IndexMembership) InAnyIndex(column string) bool {
	return m.any[strings.ToLower(column)]
}
