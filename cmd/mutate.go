package cmd

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pingcap/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Glider2355/table-mutator/internal/executor"
	"github.com/Glider2355/table-mutator/internal/meta"
	"github.com/Glider2355/table-mutator/internal/reporter"
)

var (
	flagConfig             string
	flagHost               string
	flagPort               int
	flagUser               string
	flagPassword           string
	flagDatabase           string
	flagTable              string
	flagDesired            string
	flagSnapshot           string
	flagRemovePartitioning bool
	flagPreview            bool
	flagOnline             bool
	flagFormat             string
)

var mutateCmd = &cobra.Command{
	Use:   "mutate",
	Short: "Plan and execute structure changes for one table",
	RunE:  runMutate,
}

func init() {
	f := mutateCmd.Flags()
	f.StringVar(&flagConfig, "config", "", "Config file with connection defaults (JSON)")
	f.StringVar(&flagHost, "host", "localhost", "MySQL host")
	f.IntVar(&flagPort, "port", 3306, "MySQL port")
	f.StringVar(&flagUser, "user", "", "MySQL user")
	f.StringVar(&flagPassword, "password", "", "MySQL password")
	f.StringVar(&flagDatabase, "database", "", "Database name")
	f.StringVar(&flagTable, "table", "", "Table to mutate")
	f.StringVar(&flagDesired, "desired", "", "JSON file describing the desired column/partition state")
	f.StringVar(&flagSnapshot, "snapshot", "", "Offline metadata snapshot file (implies --preview)")
	f.BoolVar(&flagRemovePartitioning, "remove-partitioning", false, "Remove the partitioning structure, keeping the data")
	f.BoolVar(&flagPreview, "preview", false, "Plan and validate statements without executing them")
	f.BoolVar(&flagOnline, "online", false, "Annotate the combined statement with an online algorithm/lock hint")
	f.StringVar(&flagFormat, "format", "text", "Output format: text|json")
}

// desiredState は--desiredファイルの形。
type desiredState struct {
	Columns      []meta.ColumnDescriptor   `json:"columns"`
	Partitioning *meta.PartitionDescriptor `json:"partitioning,omitempty"`
}

func runMutate(cmd *cobra.Command, _ []string) error {
	reporter.AutoColor()

	if err := applyConfigDefaults(cmd); err != nil {
		return err
	}
	if flagTable == "" {
		return fmt.Errorf("--table must be specified")
	}
	if flagDesired == "" && !flagRemovePartitioning {
		return fmt.Errorf("--desired or --remove-partitioning must be specified")
	}

	store, err := initStore()
	if err != nil {
		return err
	}

	req := meta.MutationRequest{
		Table:              flagTable,
		RemovePartitioning: flagRemovePartitioning,
		Options: meta.ExecutionOptions{
			PreviewOnly: flagPreview || flagSnapshot != "",
			OnlineHint:  flagOnline,
		},
	}
	if flagDesired != "" {
		data, err := os.ReadFile(flagDesired)
		if err != nil {
			return fmt.Errorf("failed to read desired state: %w", err)
		}
		var ds desiredState
		if err := json.Unmarshal(data, &ds); err != nil {
			return fmt.Errorf("failed to parse desired state: %w", err)
		}
		set, err := meta.NewColumnSet(ds.Columns...)
		if err != nil {
			return err
		}
		req.Desired = set
		req.Partitioning = ds.Partitioning
	}

	exec := executor.New(store, log.L())
	res, err := exec.Run(req)
	if err != nil {
		var noChange *meta.NoChangeError
		if errors.As(err, &noChange) {
			fmt.Println(noChange.Error())
			return nil
		}
		return err
	}

	var rep reporter.Reporter
	switch flagFormat {
	case "json":
		rep = reporter.NewJSONReporter()
	default:
		rep = reporter.NewTextReporter()
	}
	output, err := rep.Render(&reporter.Report{Results: []*executor.Result{res}})
	if err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	fmt.Println(output)
	return nil
}

// applyConfigDefaults は設定ファイルと環境変数から接続の既定値を補う。
// 明示的に指定されたフラグが常に優先される。
func applyConfigDefaults(cmd *cobra.Command) error {
	viper.SetEnvPrefix("TABLE_MUTATOR")
	viper.AutomaticEnv()
	if flagConfig != "" {
		viper.SetConfigFile(flagConfig)
		viper.SetConfigType("json")
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	f := cmd.Flags()
	if !f.Changed("host") && viper.GetString("host") != "" {
		flagHost = viper.GetString("host")
	}
	if !f.Changed("port") && viper.GetInt("port") != 0 {
		flagPort = viper.GetInt("port")
	}
	if !f.Changed("user") && viper.GetString("user") != "" {
		flagUser = viper.GetString("user")
	}
	if !f.Changed("password") && viper.GetString("password") != "" {
		flagPassword = viper.GetString("password")
	}
	if !f.Changed("database") && viper.GetString("database") != "" {
		flagDatabase = viper.GetString("database")
	}
	return nil
}

func initStore() (meta.Store, error) {
	if flagSnapshot != "" {
		return meta.NewFileStore(flagSnapshot)
	}
	if flagUser == "" || flagDatabase == "" {
		return nil, fmt.Errorf("--user and --database must be specified")
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", flagUser, flagPassword, flagHost, flagPort, flagDatabase)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	return meta.NewDBStore(db, flagDatabase)
}
