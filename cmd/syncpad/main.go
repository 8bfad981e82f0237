// Command syncpad is an offline-first task list for the terminal.
//
// Run without arguments it opens the interactive list; subcommands expose
// the same operations for scripts. Mutations are accepted immediately and
// persisted locally, and a per-item pending marker tracks what has not
// been propagated since the last loss of connectivity.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/idilsaglam/syncpad/internal/cliui"
	"github.com/idilsaglam/syncpad/internal/config"
	"github.com/idilsaglam/syncpad/internal/connectivity"
	"github.com/idilsaglam/syncpad/internal/logging"
	"github.com/idilsaglam/syncpad/internal/reconcile"
	"github.com/idilsaglam/syncpad/internal/store"
	"github.com/idilsaglam/syncpad/internal/store/sqlitestore"
	"github.com/idilsaglam/syncpad/internal/task"
	"github.com/idilsaglam/syncpad/internal/tasklist"
	"github.com/idilsaglam/syncpad/internal/tui"
)

var (
	cfg       config.Config
	logger    *zap.Logger
	taskStore store.Store
	monitor   *connectivity.Monitor

	jsonOutput bool

	rootCtx    context.Context
	rootCancel context.CancelFunc
)

// usageError marks errors that should exit with the usage code. An
// optional hint is printed after the error line.
type usageError struct {
	msg  string
	hint string
}

func (e usageError) Error() string { return e.msg }

var rootCmd = &cobra.Command{
	Use:   "syncpad",
	Short: "Offline-first task list for the terminal",
	Long: `syncpad is a single-user task list that persists locally and mirrors
mutations to a simulated remote when the network allows. Items changed
while offline are marked pending and settle automatically once
connectivity returns.

Run without arguments to open the interactive list. Subcommands offer the
same operations for scripts:

  syncpad add "Buy milk"
  syncpad list
  syncpad done 2
  syncpad remove 3
  syncpad status`,
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) > 0 {
			return usageError{
				msg:  fmt.Sprintf("unknown command %q", args[0]),
				hint: "Hint: run `syncpad --help` for the command list",
			}
		}
		return nil
	},
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(*cobra.Command, []string) error {
		return runTUI()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("data-dir", "", "directory holding the task database and logs (default ~/.syncpad)")
	pf.Bool("offline", false, "pin the connectivity signal to offline")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&jsonOutput, "json", false, "machine-readable output where supported")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{msg: err.Error(), hint: "Hint: run `syncpad --help` for usage"}
	})

	rootCmd.AddCommand(addCmd, listCmd, doneCmd, removeCmd, statusCmd, syncCmd, exportCmd, versionCmd)
}

func main() {
	os.Exit(run())
}

func run() int {
	defer teardown()
	if err := rootCmd.Execute(); err != nil {
		cliui.Fail(err.Error())
		var ue usageError
		if errors.As(err, &ue) {
			if ue.hint != "" {
				cliui.Hint(ue.hint)
			}
			return 2
		}
		return 1
	}
	return 0
}

// setup resolves configuration and opens the shared collaborators. It
// runs before every command except version. Flags are looked up through
// the command parameter; referencing rootCmd here would make its
// initializer self-referential.
func setup(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	flags := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"data_dir":  "data-dir",
		"offline":   "offline",
		"log_level": "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}

	var err error
	cfg, err = config.Load(v)
	if err != nil {
		return err
	}

	logger, err = logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	logger.Debug("configuration resolved",
		zap.String("data_dir", cfg.DataDir),
		zap.Bool("offline", cfg.Offline),
		zap.Duration("sync_latency", cfg.SyncLatency),
		zap.Duration("poll_interval", cfg.PollInterval))

	taskStore, err = sqlitestore.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	probe := connectivity.SystemProbe
	if cfg.Offline {
		probe = connectivity.Offline
	}
	monitor = connectivity.New(probe, cfg.PollInterval, logger.Named("connectivity"))

	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return nil
}

func teardown() {
	if taskStore != nil {
		if err := taskStore.Close(); err != nil && logger != nil {
			logger.Error("close store", zap.Error(err))
		}
	}
	if rootCancel != nil {
		rootCancel()
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

// loadList builds the state container over the open store and populates
// it. CLI commands drive the container synchronously, so the monitor's
// probe at construction time is the connectivity signal for the whole
// command.
func loadList() (*tasklist.List, error) {
	lst := tasklist.New(tasklist.Config{
		Store:  taskStore,
		Online: monitor.Online,
		Logger: logger.Named("tasklist"),
	})
	if err := lst.Reload(rootCtx); err != nil {
		return nil, err
	}
	return lst, nil
}

func runTUI() error {
	lst, err := loadList()
	if err != nil {
		return err
	}
	go monitor.Run(rootCtx)
	return tui.Run(rootCtx, tui.Config{
		Tasks:      lst,
		Monitor:    monitor,
		Reconciler: reconcile.New(cfg.SyncLatency, logger.Named("reconcile")),
		DataDir:    cfg.DataDir,
		Logger:     logger.Named("tui"),
	})
}

// itemAtIndex resolves a 1-based index against the list ordering.
func itemAtIndex(lst *tasklist.List, name, arg string) (task.Item, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return task.Item{}, usageError{msg: name + ": not a number: " + arg}
	}
	items := lst.Items()
	if n < 1 || n > len(items) {
		return task.Item{}, usageError{
			msg:  fmt.Sprintf("index out of range: have %d, got %d", len(items), n),
			hint: "Hint: run `syncpad list` to see valid indexes",
		}
	}
	return items[n-1], nil
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError{msg: "usage: " + usage}
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return usageError{msg: "usage: " + usage}
		}
		return nil
	}
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
