// Package reorder computes the move sequence that transforms the current
// physical column order into a desired order.
package reorder

import (
	"fmt"

	"github.com/Glider2355/table-mutator/internal/meta"
)

// Move は1カラムの再配置を表す。
type Move struct {
	Column string          `json:"column"`
	Target meta.MoveTarget `json:"target"`
}

// PlanMoves は現在順を目標順へ変換する最小の移動列を計算する。
// current と target は同一名集合の順列でなければならない。
// 移動が不要な場合は NoChangeError を返す。これは失敗ではない。
func PlanMoves(current, target []string) ([]Move, error) {
	if err := validatePermutation(current, target); err != nil {
		return nil, err
	}

	// 作業コピーは1回の計画呼び出しの間だけ専有される。
	working := make([]string, len(current))
	copy(working, current)

	var moves []Move
	for i, want := range target {
		if working[i] == want {
			continue
		}
		// 位置0..i-1は確定済みなので、位置iへの挿入だけで正しい。
		var t meta.MoveTarget
		if i == 0 {
			t = meta.MoveTarget{First: true}
		} else {
			t = meta.MoveTarget{After: target[i-1]}
		}
		moves = append(moves, Move{Column: want, Target: t})
		reposition(working, want, i)
	}

	if len(moves) == 0 {
		return nil, &meta.NoChangeError{}
	}
	return moves, nil
}

// reposition は作業コピー内でnameを位置toへ移す。集合の要素は増減しない。
func reposition(working []string, name string, to int) {
	from := -1
	for i, n := range working {
		if n == name {
			from = i
			break
		}
	}
	if from < 0 || from == to {
		return
	}
	if from > to {
		copy(working[to+1:from+1], working[to:from])
	} else {
		copy(working[from:to], working[from+1:to+1])
	}
	working[to] = name
}

func validatePermutation(current, target []string) error {
	if len(current) != len(target) {
		return &meta.ValidationError{
			Reason: fmt.Sprintf("order length mismatch: current=%d target=%d", len(current), len(target)),
		}
	}
	seen := make(map[string]bool, len(current))
	for _, n := range current {
		if seen[n] {
			return &meta.ValidationError{Reason: fmt.Sprintf("duplicate column %q in current order", n)}
		}
		seen[n] = true
	}
	targetSeen := make(map[string]bool, len(target))
	for _, n := range target {
		if targetSeen[n] {
			return &meta.ValidationError{Reason: fmt.Sprintf("duplicate column %q in target order", n)}
		}
		targetSeen[n] = true
		if !seen[n] {
			return &meta.ValidationError{Reason: fmt.Sprintf("column %q in target order does not exist", n)}
		}
	}
	return nil
}
