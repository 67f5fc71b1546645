package meta

import "strings"

// DefaultKind はカラムのDEFAULT句の由来を表す。
type DefaultKind string

const (
	DefaultNone             DefaultKind = "NONE"
	DefaultNull             DefaultKind = "NULL"
	DefaultCurrentTimestamp DefaultKind = "CURRENT_TIMESTAMP"
	DefaultUserDefined      DefaultKind = "USER_DEFINED"
)

// Virtuality は生成列の種別を表す。空文字列は通常の格納カラム。
type Virtuality string

const (
	VirtualityNone    Virtuality = ""
	VirtualityVirtual Virtuality = "VIRTUAL"
	VirtualityStored  Virtuality = "STORED"
)

// NowMarker はストアがtimestamp/datetimeの現在時刻デフォルトとして
// 報告するマーカー文字列。
const NowMarker = "CURRENT_TIMESTAMP"

// MoveTarget はカラムの移動先を表す。ゼロ値は移動なし。
type MoveTarget struct {
	First bool   `json:"first,omitempty"`
	After string `json:"after,omitempty"`
}

// IsZero は移動が要求されていないかを判定する。
func (m MoveTarget) IsZero() bool {
	return !m.First && m.After == ""
}

func (m MoveTarget) String() string {
	switch {
	case m.First:
		return "FIRST"
	case m.After != "":
		return "AFTER " + m.After
	default:
		return ""
	}
}

// ColumnDescriptor は1カラムの完全な構造定義を保持する。
// Name はColumnSet内で一意であり、並び順が物理カラム順を意味する。
type ColumnDescriptor struct {
	Name         string      `json:"name"`
	OriginalName string      `json:"original_name,omitempty"`
	Type         string      `json:"type"`
	Length       string      `json:"length,omitempty"`
	Attribute    string      `json:"attribute,omitempty"`
	Collation    string      `json:"collation,omitempty"`
	Nullable     bool        `json:"nullable"`
	DefaultKind  DefaultKind `json:"default_kind,omitempty"`
	DefaultValue string      `json:"default_value,omitempty"`
	Extra        string      `json:"extra,omitempty"`
	Comment      string      `json:"comment,omitempty"`
	Virtuality   Virtuality  `json:"virtuality,omitempty"`
	Expression   string      `json:"expression,omitempty"`
	Move         MoveTarget  `json:"move,omitempty"`
}

// SourceName は変更前のカラム名を返す。リネームがない場合は現在名。
func (c ColumnDescriptor) SourceName() string {
	if c.OriginalName != "" {
		return c.OriginalName
	}
	return c.Name
}

// IsTemporal は型がCURRENT_TIMESTAMPデフォルトを取り得るかを判定する。
func (c ColumnDescriptor) IsTemporal() bool {
	t := strings.ToUpper(c.Type)
	return t == "TIMESTAMP" || t == "DATETIME"
}

// IsGenerated はカラムが生成列かを判定する。
func (c ColumnDescriptor) IsGenerated() bool {
	return c.Virtuality != VirtualityNone
}

// ExecutionOptions は1回の変更要求に対する実行オプション。
type ExecutionOptions struct {
	PreviewOnly bool `json:"preview_only,omitempty"`
	OnlineHint  bool `json:"online_hint,omitempty"`
}

// MutationRequest は1テーブルに対する変更要求の全体を保持する。
// エンジンはこの値のみから目標状態を読み取り、プロセス全体の状態は参照しない。
type MutationRequest struct {
	Table              string               `json:"table"`
	Desired            *ColumnSet           `json:"-"`
	Partitioning       *PartitionDescriptor `json:"partitioning,omitempty"`
	RemovePartitioning bool                 `json:"remove_partitioning,omitempty"`
	Options            ExecutionOptions     `json:"options,omitempty"`
}
