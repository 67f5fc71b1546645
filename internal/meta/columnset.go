package meta

import "fmt"

// ColumnSet は名前で一意な順序付きカラム列を保持する。
// 並び順は物理カラム順として意味を持つ。
type ColumnSet struct {
	cols  []ColumnDescriptor
	index map[string]int
}

// NewColumnSet は重複名を検証しつつColumnSetを構築する。
// 重複がある場合はValidationErrorを返す。
func NewColumnSet(cols ...ColumnDescriptor) (*ColumnSet, error) {
	s := &ColumnSet{
		cols:  make([]ColumnDescriptor, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for _, c := range cols {
		if c.Name == "" {
			return nil, &ValidationError{Reason: "column with empty name"}
		}
		if _, dup := s.index[c.Name]; dup {
			return nil, &ValidationError{Reason: fmt.Sprintf("duplicate column name %q", c.Name)}
		}
		s.index[c.Name] = len(s.cols)
		s.cols = append(s.cols, c)
	}
	return s, nil
}

// Len はカラム数を返す。
func (s *ColumnSet) Len() int {
	return len(s.cols)
}

// At はi番目のカラムを返す。
func (s *ColumnSet) At(i int) ColumnDescriptor {
	return s.cols[i]
}

// Get は名前でカラムを検索する。
func (s *ColumnSet) Get(name string) (ColumnDescriptor, bool) {
	i, ok := s.index[name]
	if !ok {
		return ColumnDescriptor{}, false
	}
	return s.cols[i], true
}

// Names はカラム名を物理順で返す。
func (s *ColumnSet) Names() []string {
	names := make([]string, len(s.cols))
	for i, c := range s.cols {
		names[i] = c.Name
	}
	return names
}

// Columns は全カラムのコピーを物理順で返す。
func (s *ColumnSet) Columns() []ColumnDescriptor {
	out := make([]ColumnDescriptor, len(s.cols))
	copy(out, s.cols)
	return out
}
