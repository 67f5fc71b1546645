package meta

import (
	"encoding/json"
	"fmt"
	"os"
)

// TableSnapshot はオフライン利用のためのテーブル構造スナップショット。
type TableSnapshot struct {
	Table      string             `json:"table"`
	Columns    []ColumnDescriptor `json:"columns"`
	Indexes    []IndexDescriptor  `json:"indexes,omitempty"`
	Definition string             `json:"definition,omitempty"`
}

// FileStore はJSONスナップショットからメタデータを提供するStore実装。
// Execute は文を記録するのみで、何も変更しない。プレビューとテストに使う。
type FileStore struct {
	tables   map[string]TableSnapshot
	executed []string
}

// NewFileStore はスナップショットファイルからFileStoreを作成する。
func NewFileStore(path string) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	var snapshots []TableSnapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}
	return NewMemoryStore(snapshots), nil
}

// NewMemoryStore はスナップショット列から直接FileStoreを作成する。
func NewMemoryStore(snapshots []TableSnapshot) *FileStore {
	fs := &FileStore{tables: make(map[string]TableSnapshot, len(snapshots))}
	for _, s := range snapshots {
		fs.tables[s.Table] = s
	}
	return fs
}

func (fs *FileStore) snapshot(table string) (TableSnapshot, error) {
	s, ok := fs.tables[table]
	if !ok {
		return TableSnapshot{}, fmt.Errorf("table %q not found in snapshot", table)
	}
	return s, nil
}

// DescribeColumns は指定テーブルの全カラム定義を返す。
func (fs *FileStore) DescribeColumns(table string) ([]ColumnDescriptor, error) {
	s, err := fs.snapshot(table)
	if err != nil {
		return nil, err
	}
	cols := make([]ColumnDescriptor, len(s.Columns))
	copy(cols, s.Columns)
	return cols, nil
}

// ColumnOrder は物理カラム名順を返す。
func (fs *FileStore) ColumnOrder(table string) ([]string, error) {
	s, err := fs.snapshot(table)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names, nil
}

// DescribeIndexes はインデックス一覧を返す。
func (fs *FileStore) DescribeIndexes(table string) ([]IndexDescriptor, error) {
	s, err := fs.snapshot(table)
	if err != nil {
		return nil, err
	}
	return s.Indexes, nil
}

// GenerationExpression は生成列の生成式を名前引きで返す。
func (fs *FileStore) GenerationExpression(table, column string) (string, error) {
	s, err := fs.snapshot(table)
	if err != nil {
		return "", err
	}
	for _, c := range s.Columns {
		if c.Name == column {
			return c.Expression, nil
		}
	}
	return "", fmt.Errorf("column %q not found in snapshot of %q", column, table)
}

// DefinitionText はスナップショットの定義テキストを返す。
func (fs *FileStore) DefinitionText(table string) (string, error) {
	s, err := fs.snapshot(table)
	if err != nil {
		return "", err
	}
	return s.Definition, nil
}

// Execute は文を記録する。スナップショットは変更されない。
func (fs *FileStore) Execute(statement string) error {
	fs.executed = append(fs.executed, statement)
	return nil
}

// Executed はこれまでに記録された文を返す。
func (fs *FileStore) Executed() []string {
	return fs.executed
}
