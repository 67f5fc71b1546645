package meta

import "fmt"

// ValidationError は要求された目標状態が不正な場合のエラー。
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid desired state: " + e.Reason
}

// NoChangeError は差分計算が何も生まなかったことを示す。
// 失敗ではなく、変更不要の通知として扱う。
type NoChangeError struct {
	Table string
}

func (e *NoChangeError) Error() string {
	if e.Table == "" {
		return "no change required"
	}
	return fmt.Sprintf("no change required for table %q", e.Table)
}

// StoreExecutionError はストアが文を拒否したことを表す。
// 実行した文と、ストアのエラーをそのまま保持する。
type StoreExecutionError struct {
	Statement string
	Err       error
}

func (e *StoreExecutionError) Error() string {
	return fmt.Sprintf("statement failed: %v (statement: %s)", e.Err, e.Statement)
}

func (e *StoreExecutionError) Unwrap() error {
	return e.Err
}

// RevertExecutionError は事前変換の巻き戻し文が失敗したことを表す。
// 元のStoreExecutionErrorと併せて報告され、置き換えることはない。
type RevertExecutionError struct {
	Statement string
	Err       error
}

func (e *RevertExecutionError) Error() string {
	return fmt.Sprintf("revert statement failed: %v (statement: %s)", e.Err, e.Statement)
}

func (e *RevertExecutionError) Unwrap() error {
	return e.Err
}

// ParseError は定義テキストを分解できなかったことを表す。
// パーティション抽出では「パーティションなし」として局所的に解決される。
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "definition parse error: " + e.Reason
}
