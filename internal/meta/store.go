package meta

import (
	"database/sql"
	"fmt"
	"strings"
)

// Store はテーブル構造の読み取りと文の実行を提供するコラボレーター。
type Store interface {
	DescribeColumns(table string) ([]ColumnDescriptor, error)
	ColumnOrder(table string) ([]string, error)
	DescribeIndexes(table string) ([]IndexDescriptor, error)
	GenerationExpression(table, column string) (string, error)
	DefinitionText(table string) (string, error)
	Execute(statement string) error
}

// DBStore はMySQL接続からメタデータを取得し、文を実行する。
type DBStore struct {
	db       *sql.DB
	database string
}

// NewDBStore は新しい DBStore を作成する。
func NewDBStore(db *sql.DB, database string) (*DBStore, error) {
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}
	return &DBStore{db: db, database: database}, nil
}

// DescribeColumns は指定テーブルの全カラム定義を物理順で取得する。
func (s *DBStore) DescribeColumns(table string) ([]ColumnDescriptor, error) {
	query := `SELECT COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE, COLUMN_DEFAULT,
		EXTRA, COLLATION_NAME, COLUMN_COMMENT, GENERATION_EXPRESSION
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION`
	rows, err := s.db.Query(query, s.database, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cols []ColumnDescriptor
	for rows.Next() {
		var name, isNullable, extra string
		var columnType, defaultVal, collation, comment, expression sql.NullString
		if err := rows.Scan(&name, &columnType, &isNullable, &defaultVal,
			&extra, &collation, &comment, &expression); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		col := columnFromRow(name, columnType.String, isNullable, defaultVal, extra)
		col.Collation = collation.String
		col.Comment = comment.String
		col.Expression = expression.String
		cols = append(cols, col)
	}
	return cols, rows.Err()
}

// columnFromRow はinformation_schemaの1行からColumnDescriptorを組み立てる。
func columnFromRow(name, columnType, isNullable string, defaultVal sql.NullString, extra string) ColumnDescriptor {
	typ, length, attribute := ParseColumnType(columnType)
	col := ColumnDescriptor{
		Name:      name,
		Type:      typ,
		Length:    length,
		Attribute: attribute,
		Nullable:  strings.EqualFold(isNullable, "YES"),
	}

	extraUpper := strings.ToUpper(extra)
	switch {
	case strings.Contains(extraUpper, "VIRTUAL GENERATED"):
		col.Virtuality = VirtualityVirtual
	case strings.Contains(extraUpper, "STORED GENERATED"):
		col.Virtuality = VirtualityStored
	}
	if i := strings.Index(extraUpper, "ON UPDATE"); i >= 0 {
		if col.Attribute != "" {
			col.Attribute += " "
		}
		col.Attribute += strings.TrimSpace(extra[i:])
	}
	if strings.Contains(extraUpper, "AUTO_INCREMENT") {
		col.Extra = "AUTO_INCREMENT"
	}

	col.DefaultKind, col.DefaultValue = resolveDefault(col, defaultVal)
	return col
}

// resolveDefault はストアが報告したデフォルト値をデフォルト種別へ分類する。
func resolveDefault(col ColumnDescriptor, defaultVal sql.NullString) (DefaultKind, string) {
	if col.IsGenerated() {
		return DefaultNone, ""
	}
	if !defaultVal.Valid {
		if col.Nullable {
			return DefaultNull, ""
		}
		return DefaultNone, ""
	}
	v := defaultVal.String
	if col.IsTemporal() && IsNowMarker(v) {
		return DefaultCurrentTimestamp, NowMarker
	}
	return DefaultUserDefined, v
}

// IsNowMarker はデフォルト値が現在時刻マーカーかを判定する。
// MySQL 8.0 は "CURRENT_TIMESTAMP"、MariaDB は "current_timestamp()" を返す。
func IsNowMarker(v string) bool {
	v = strings.ToUpper(strings.TrimSpace(v))
	return v == NowMarker || v == NowMarker+"()"
}

// ParseColumnType はCOLUMN_TYPE文字列を型・長さ・属性に分解する。
// 例: "int(10) unsigned" -> ("INT", "10", "UNSIGNED")
func ParseColumnType(columnType string) (typ, length, attribute string) {
	ct := strings.TrimSpace(columnType)
	if ct == "" {
		return "", "", ""
	}
	open := strings.Index(ct, "(")
	if open < 0 {
		parts := strings.SplitN(ct, " ", 2)
		typ = strings.ToUpper(parts[0])
		if len(parts) == 2 {
			attribute = strings.ToUpper(strings.TrimSpace(parts[1]))
		}
		return typ, "", attribute
	}
	closing := strings.LastIndex(ct, ")")
	if closing < open {
		return strings.ToUpper(ct), "", ""
	}
	typ = strings.ToUpper(strings.TrimSpace(ct[:open]))
	length = ct[open+1 : closing]
	attribute = strings.ToUpper(strings.TrimSpace(ct[closing+1:]))
	return typ, length, attribute
}

// ColumnOrder は現在の物理カラム名順を取得する。
func (s *DBStore) ColumnOrder(table string) ([]string, error) {
	query := `SELECT COLUMN_NAME
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION`
	rows, err := s.db.Query(query, s.database, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query column order: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DescribeIndexes は指定テーブルのインデックス一覧を取得する。
func (s *DBStore) DescribeIndexes(table string) ([]IndexDescriptor, error) {
	query := `SELECT INDEX_NAME, COLUMN_NAME, NON_UNIQUE, INDEX_TYPE
		FROM information_schema.STATISTICS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY INDEX_NAME, SEQ_IN_INDEX`
	rows, err := s.db.Query(query, s.database, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query indexes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	indexMap := make(map[string]*IndexDescriptor)
	var indexOrder []string
	for rows.Next() {
		var indexName, colName, indexType string
		var nonUnique int
		if err := rows.Scan(&indexName, &colName, &nonUnique, &indexType); err != nil {
			return nil, fmt.Errorf("failed to scan index: %w", err)
		}
		idx, ok := indexMap[indexName]
		if !ok {
			idx = &IndexDescriptor{
				Name:      indexName,
				IsUnique:  nonUnique == 0,
				IsPrimary: indexName == "PRIMARY",
				IndexType: indexType,
			}
			indexMap[indexName] = idx
			indexOrder = append(indexOrder, indexName)
		}
		idx.Columns = append(idx.Columns, colName)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	indexes := make([]IndexDescriptor, 0, len(indexOrder))
	for _, name := range indexOrder {
		indexes = append(indexes, *indexMap[name])
	}
	return indexes, nil
}

// GenerationExpression は生成列の生成式を名前引きで取得する。
// カラム一覧のメタデータには式が含まれない場合があるため、移動時はここで引き直す。
func (s *DBStore) GenerationExpression(table, column string) (string, error) {
	query := `SELECT GENERATION_EXPRESSION
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND COLUMN_NAME = ?`
	var expr sql.NullString
	if err := s.db.QueryRow(query, s.database, table, column).Scan(&expr); err != nil {
		return "", fmt.Errorf("failed to query generation expression: %w", err)
	}
	return expr.String, nil
}

// DefinitionText はテーブルの現在の定義テキストを取得する。
func (s *DBStore) DefinitionText(table string) (string, error) {
	var name, ddl string
	query := "SHOW CREATE TABLE " + QuoteIdentifier(table)
	if err := s.db.QueryRow(query).Scan(&name, &ddl); err != nil {
		return "", fmt.Errorf("failed to read table definition: %w", err)
	}
	return ddl, nil
}

// Execute は文をストアに対して実行する。
func (s *DBStore) Execute(statement string) error {
	if _, err := s.db.Exec(statement); err != nil {
		return err
	}
	return nil
}
