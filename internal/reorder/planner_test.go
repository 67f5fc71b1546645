package reorder

import (
	"errors"
	"testing"

	"github.com/Glider2355/table-mutator/internal/meta"
)

// applyMoves は移動列を順に適用した結果の並びを返す。
func applyMoves(current []string, moves []Move) []string {
	out := make([]string, len(current))
	copy(out, current)
	for _, m := range moves {
		// 旧位置から取り除く
		for i, n := range out {
			if n == m.Column {
				out = append(out[:i], out[i+1:]...)
				break
			}
		}
		// 新位置へ挿入する
		if m.Target.First {
			out = append([]string{m.Column}, out...)
			continue
		}
		for i, n := range out {
			if n == m.Target.After {
				rest := append([]string{m.Column}, out[i+1:]...)
				out = append(out[:i+1], rest...)
				break
			}
		}
	}
	return out
}

func equalOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPlanMovesSingleMoveToFirst(t *testing.T) {
	// [a,b,c]→[c,a,b] はcをFIRSTへ動かす1手だけで済むことを検証
	moves, err := PlanMoves([]string{"a", "b", "c"}, []string{"c", "a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(moves) != 1 {
		t.Fatalf("expected exactly 1 move, got %d", len(moves))
	}
	if moves[0].Column != "c" || !moves[0].Target.First {
		t.Errorf("expected move of c to FIRST, got %+v", moves[0])
	}
	got := applyMoves([]string{"a", "b", "c"}, moves)
	if !equalOrder(got, []string{"c", "a", "b"}) {
		t.Errorf("applying moves did not reach target: %v", got)
	}
}

func TestPlanMovesReachesTarget(t *testing.T) {
	// 任意の順列で、移動を順に適用すると目標順に一致することを検証
	cases := []struct {
		name    string
		current []string
		target  []string
	}{
		{"reverse", []string{"a", "b", "c", "d"}, []string{"d", "c", "b", "a"}},
		{"rotate", []string{"a", "b", "c", "d", "e"}, []string{"b", "c", "d", "e", "a"}},
		{"swap middle", []string{"a", "b", "c", "d"}, []string{"a", "c", "b", "d"}},
		{"single", []string{"x"}, []string{"x"}},
		{"interleave", []string{"a", "b", "c", "d", "e", "f"}, []string{"f", "a", "e", "b", "d", "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			moves, err := PlanMoves(tc.current, tc.target)
			if err != nil {
				var noChange *meta.NoChangeError
				if errors.As(err, &noChange) && equalOrder(tc.current, tc.target) {
					return
				}
				t.Fatalf("unexpected error: %v", err)
			}
			got := applyMoves(tc.current, moves)
			if !equalOrder(got, tc.target) {
				t.Errorf("got order %v, want %v (moves=%v)", got, tc.target, moves)
			}
		})
	}
}

func TestPlanMovesAfterTargets(t *testing.T) {
	// FIRST以外の移動先は直前の目標カラムのAFTERになることを検証
	moves, err := PlanMoves([]string{"a", "b", "c", "d"}, []string{"a", "d", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d: %v", len(moves), moves)
	}
	if moves[0].Column != "d" || moves[0].Target.After != "a" {
		t.Errorf("expected d AFTER a, got %+v", moves[0])
	}
}

func TestPlanMovesNoChange(t *testing.T) {
	// 並びが一致している場合はNoChangeErrorになることを検証
	_, err := PlanMoves([]string{"a", "b"}, []string{"a", "b"})
	var noChange *meta.NoChangeError
	if !errors.As(err, &noChange) {
		t.Fatalf("expected NoChangeError, got %v", err)
	}
}

func TestPlanMovesValidation(t *testing.T) {
	cases := []struct {
		name    string
		current []string
		target  []string
	}{
		{"length mismatch", []string{"a", "b"}, []string{"a"}},
		{"unknown column", []string{"a", "b"}, []string{"a", "c"}},
		{"duplicate in target", []string{"a", "b"}, []string{"a", "a"}},
		{"duplicate in current", []string{"a", "a"}, []string{"a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PlanMoves(tc.current, tc.target)
			var v *meta.ValidationError
			if !errors.As(err, &v) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}
