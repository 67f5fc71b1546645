package reporter

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/Glider2355/table-mutator/internal/executor"
)

// Report は全テーブルの変更結果を保持する。
type Report struct {
	Results []*executor.Result `json:"results"`
}

// Reporter は変更計画/結果をフォーマットして出力する。
type Reporter interface {
	Render(report *Report) (string, error)
}

var (
	stmtColor = color.New(color.FgCyan)
	headColor = color.New(color.FgWhite, color.Bold)
	warnColor = color.New(color.FgMagenta, color.Bold)
)

// AutoColor は出力先が端末でない場合に色付けを無効にする。
func AutoColor() {
	color.NoColor = os.Getenv("TERM") == "dumb" ||
		(!isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

// NeverColor は色付けを無効にする。
func NeverColor() {
	color.NoColor = true
}
