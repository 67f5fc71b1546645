// Package executor orchestrates one table mutation request: planning all
// statements, running the collation pre-steps, executing the combined
// column alteration, and recovering from partial failure.
package executor

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Glider2355/table-mutator/internal/alter"
	"github.com/Glider2355/table-mutator/internal/charsafe"
	"github.com/Glider2355/table-mutator/internal/defparser"
	"github.com/Glider2355/table-mutator/internal/meta"
	"github.com/Glider2355/table-mutator/internal/partition"
	"github.com/Glider2355/table-mutator/internal/reorder"
)

// onlineHint annotates the combined statement when the caller opts in.
const onlineHint = ", ALGORITHM=INPLACE, LOCK=NONE"

// FollowUp は成功後に実行されるベストエフォートの後続処理。
// 失敗してもスキーマ変更は巻き戻さない。
type FollowUp func() error

// Executor は1テーブルの変更要求を1本の逐次パイプラインとして実行する。
type Executor struct {
	store  meta.Store
	logger *zap.Logger
}

// New は新しい Executor を作成する。loggerがnilの場合はログを出さない。
func New(store meta.Store, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{store: store, logger: logger}
}

// Result は1回の変更要求の計画と実行結果を保持する。
type Result struct {
	Table     string   `json:"table"`
	PreSteps  []string `json:"pre_steps,omitempty"`
	Statement string   `json:"statement,omitempty"`
	Partition string   `json:"partition_statement,omitempty"`
	Executed  bool     `json:"executed"`

	// FollowUpErrs は後続処理の失敗。スキーマ変更自体の成否とは独立。
	FollowUpErrs []error `json:"-"`
}

// Statements は計画された文を実行順で返す。
func (r *Result) Statements() []string {
	out := make([]string, 0, len(r.PreSteps)+2)
	out = append(out, r.PreSteps...)
	if r.Statement != "" {
		out = append(out, r.Statement)
	}
	if r.Partition != "" {
		out = append(out, r.Partition)
	}
	return out
}

// Run は変更要求を計画し、PreviewOnlyでなければ実行する。
// 変更が何も生じない場合はNoChangeErrorを返す。
func (e *Executor) Run(req meta.MutationRequest, followUps ...FollowUp) (*Result, error) {
	if req.Table == "" {
		return nil, &meta.ValidationError{Reason: "empty table name"}
	}

	res := &Result{Table: req.Table}

	var pre []charsafe.PreConversion
	if req.Desired != nil && req.Desired.Len() > 0 {
		clauses, planned, err := e.planColumns(req)
		if err != nil {
			return nil, err
		}
		pre = planned
		if len(clauses) > 0 {
			stmt := "ALTER TABLE " + meta.QuoteIdentifier(req.Table) + " " + strings.Join(clauses, ", ")
			if req.Options.OnlineHint {
				stmt += onlineHint
			}
			res.Statement = stmt
			for _, p := range pre {
				res.PreSteps = append(res.PreSteps, p.Statement)
			}
		}
	}

	// パーティション変更は必ずカラム変更とは別の文で実行する。
	switch {
	case req.RemovePartitioning:
		res.Partition = partition.RemoveStatement(req.Table)
	case req.Partitioning != nil && !req.Partitioning.IsEmpty():
		res.Partition = partition.AlterStatement(req.Table, *req.Partitioning)
	}

	if res.Statement == "" && res.Partition == "" {
		return nil, &meta.NoChangeError{Table: req.Table}
	}

	if req.Options.PreviewOnly {
		for _, stmt := range res.Statements() {
			if err := defparser.ValidateStatement(stmt); err != nil {
				return res, err
			}
		}
		return res, nil
	}

	return res, e.execute(req.Table, res, pre, followUps)
}

// planColumns は差分・並べ替え・事前変換を1つの計画にまとめる。
func (e *Executor) planColumns(req meta.MutationRequest) ([]string, []charsafe.PreConversion, error) {
	originals, err := e.store.DescribeColumns(req.Table)
	if err != nil {
		return nil, nil, err
	}
	currentOrder, err := e.store.ColumnOrder(req.Table)
	if err != nil {
		return nil, nil, err
	}
	indexes, err := e.store.DescribeIndexes(req.Table)
	if err != nil {
		return nil, nil, err
	}
	membership := meta.MembershipFromIndexes(indexes)

	origByName := make(map[string]meta.ColumnDescriptor, len(originals))
	for _, c := range originals {
		origByName[c.Name] = c
	}

	desired := req.Desired.Columns()

	// 目標順は変更前の名前で表す。リネームはこの後のCHANGE句が担う。
	target := make([]string, len(desired))
	for i, c := range desired {
		target[i] = c.SourceName()
	}
	moves, err := reorder.PlanMoves(currentOrder, target)
	if err != nil {
		var noChange *meta.NoChangeError
		if !errors.As(err, &noChange) {
			return nil, nil, err
		}
	}
	moveByColumn := make(map[string]meta.MoveTarget, len(moves))
	for _, m := range moves {
		moveByColumn[m.Column] = m.Target
	}

	var clauses []string
	pairs := make([]charsafe.Pair, 0, len(desired))
	for _, c := range desired {
		orig, ok := origByName[c.SourceName()]
		if !ok {
			return nil, nil, &meta.ValidationError{Reason: "unknown column " + c.SourceName()}
		}
		if mv, moved := moveByColumn[c.SourceName()]; moved {
			c.Move = mv
			// カラム一覧のメタデータは生成式を含まないことがあるため、
			// 移動する生成列は式を名前引きで引き直す。
			if c.IsGenerated() && c.Expression == "" {
				expr, err := e.store.GenerationExpression(req.Table, c.SourceName())
				if err != nil {
					return nil, nil, err
				}
				c.Expression = expr
			}
			// 現在時刻マーカーのデフォルトはリテラルにしない。
			if c.IsTemporal() && meta.IsNowMarker(c.DefaultValue) {
				c.DefaultKind = meta.DefaultCurrentTimestamp
				c.DefaultValue = meta.NowMarker
			}
		}
		pairs = append(pairs, charsafe.Pair{Original: orig, Desired: c})
		if clause, ok := alter.BuildClause(orig, c); ok {
			clauses = append(clauses, clause)
		}
	}

	return clauses, charsafe.PlanPreSteps(req.Table, pairs, membership), nil
}

// execute は計画された文を順に実行する。結合文が失敗した場合、
// 事前変換済みのカラムを1文で巻き戻し、元のエラーを必ず報告する。
func (e *Executor) execute(table string, res *Result, pre []charsafe.PreConversion, followUps []FollowUp) error {
	converted := make([]charsafe.PreConversion, 0, len(pre))
	for _, p := range pre {
		e.logger.Info("executing pre-conversion",
			zap.String("table", table), zap.String("statement", p.Statement))
		if err := e.store.Execute(p.Statement); err != nil {
			storeErr := &meta.StoreExecutionError{Statement: p.Statement, Err: err}
			return e.failWithRevert(table, storeErr, converted)
		}
		converted = append(converted, p)
	}

	if res.Statement != "" {
		e.logger.Info("executing alteration",
			zap.String("table", table), zap.String("statement", res.Statement))
		if err := e.store.Execute(res.Statement); err != nil {
			storeErr := &meta.StoreExecutionError{Statement: res.Statement, Err: err}
			return e.failWithRevert(table, storeErr, converted)
		}
	}

	if res.Partition != "" {
		e.logger.Info("executing partition alteration",
			zap.String("table", table), zap.String("statement", res.Partition))
		if err := e.store.Execute(res.Partition); err != nil {
			return &meta.StoreExecutionError{Statement: res.Partition, Err: err}
		}
	}

	res.Executed = true

	for _, f := range followUps {
		if err := f(); err != nil {
			e.logger.Warn("follow-up failed", zap.String("table", table), zap.Error(err))
			res.FollowUpErrs = append(res.FollowUpErrs, err)
		}
	}
	return nil
}

// failWithRevert は元のエラーを保持したまま巻き戻しを試みる。
// 巻き戻しの失敗は元のエラーに追加して報告し、置き換えない。
func (e *Executor) failWithRevert(table string, storeErr error, converted []charsafe.PreConversion) error {
	if len(converted) == 0 {
		return storeErr
	}
	stmt := charsafe.RevertStatement(table, converted)
	e.logger.Warn("reverting pre-converted columns",
		zap.String("table", table), zap.String("statement", stmt))
	if err := e.store.Execute(stmt); err != nil {
		return errors.Join(storeErr, &meta.RevertExecutionError{Statement: stmt, Err: err})
	}
	return storeErr
}
