package meta

import "strings"

// QuoteIdentifier はMySQLの識別子規約で名前をクォートする。
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// QuoteLiteral は文字列リテラルをシングルクォートでクォートする。
func QuoteLiteral(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `''`)
	return "'" + r.Replace(value) + "'"
}

// numericTypes はリテラルをクォートせずに埋め込む型の集合。
var numericTypes = map[string]bool{
	"TINYINT": true, "SMALLINT": true, "MEDIUMINT": true, "INT": true,
	"INTEGER": true, "BIGINT": true, "DECIMAL": true, "NUMERIC": true,
	"FLOAT": true, "DOUBLE": true, "REAL": true, "BIT": true,
	"BOOLEAN": true, "SERIAL": true, "YEAR": true,
}

// IsNumericType は型名が数値型かを判定する。
func IsNumericType(typeName string) bool {
	return numericTypes[strings.ToUpper(strings.TrimSpace(typeName))]
}
