package cmd

import (
	"github.com/pingcap/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "table-mutator",
	Short: "Apply declarative MySQL table structure changes",
	Long:  "table-mutator converts a desired column/partition state for one table into correctly ordered ALTER TABLE statements, executes them, and recovers on partial failure.",
}

var flagLogLevel string

// Execute はルートコマンドを実行する。
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug|info|warn|error")
	cobra.OnInitialize(initLogger)
	rootCmd.AddCommand(mutateCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLogger() {
	lg, props, err := log.InitLogger(&log.Config{Level: flagLogLevel})
	if err != nil {
		return
	}
	log.ReplaceGlobals(lg, props)
}
