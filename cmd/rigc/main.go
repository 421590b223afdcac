package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"minebot.ai/internal/logging"
	"minebot.ai/internal/planning/temporal"
	"minebot.ai/internal/planning/temporal/mcadapter"
	"minebot.ai/internal/sim/catalogs"
	"minebot.ai/internal/sim/tuning"
)

var (
	configDir   string
	tuningPath  string
	environment string

	logger zerolog.Logger
	env    *runtimeEnv
)

// runtimeEnv is what every subcommand needs after flags are parsed.
type runtimeEnv struct {
	registry       *temporal.Registry
	adapter        *mcadapter.Adapter
	tune           tuning.Tuning
	catalogDigests map[string]string
}

var rootCmd = &cobra.Command{
	Use:   "rigc",
	Short: "Temporal scheduling pre-checks for the Minecraft planner",
	Long: `rigc builds canonical time/resource states from world observations,
generates furnace operator rules and runs the pre-solve deadlock and batch
checks a planner performs before handing a state to the solver.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.Setup(environment)
		e, err := loadEnv(configDir, tuningPath, logger)
		if err != nil {
			return err
		}
		env = e
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "configs", "./configs", "config directory (catalog JSON files and tuning.yaml)")
	rootCmd.PersistentFlags().StringVar(&tuningPath, "tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
	rootCmd.PersistentFlags().StringVar(&environment, "env", "production", "log environment (development|production|quiet)")

	rootCmd.AddCommand(stateCmd, rulesCmd, checkCmd, scheduleCmd, catalogsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadEnv reads tuning and catalogs. A missing tuning file or a directory
// with no catalog files falls back to the built-ins; a partial catalog set or
// a malformed file is an error.
func loadEnv(dir, tp string, logger zerolog.Logger) (*runtimeEnv, error) {
	tp = strings.TrimSpace(tp)
	if tp == "" {
		tp = filepath.Join(dir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load tuning: %w", err)
		}
		logger.Debug().Str("path", tp).Msg("tuning not found; using defaults")
		tune = tuning.Defaults()
	}

	e := &runtimeEnv{
		tune: tune,
		adapter: mcadapter.New(mcadapter.Options{
			BatchThreshold: tune.BatchThreshold,
			MaxWaitBuckets: tune.MaxWaitBuckets,
		}),
		registry: temporal.DefaultRegistry(),
	}

	present, err := catalogs.Present(dir)
	if err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}
	if !present {
		logger.Debug().Str("dir", dir).Msg("catalogs not found; using built-in tables")
		return e, nil
	}
	cats, err := catalogs.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}
	e.registry = cats.Registry
	e.catalogDigests = cats.Digests()
	logger.Debug().Str("dir", dir).Msg("catalogs loaded")
	return e, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
