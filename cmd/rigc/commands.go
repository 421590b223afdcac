package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"minebot.ai/internal/persistence/indexdb"
	persistlog "minebot.ai/internal/persistence/log"
	"minebot.ai/internal/planning/precheck"
	"minebot.ai/internal/planning/temporal"
)

var (
	requestPath string
	recordPath  string
	indexPath   string
	itemsFlag   string
	furnaces    int
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Build the canonical temporal state for a request",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := readRequest(requestPath, cmd.InOrStdin())
		if err != nil {
			return err
		}
		st, err := env.registry.MakeTemporalState(env.tune.ApplyStateDefaults(req.State), env.adapter)
		if err != nil {
			return fmt.Errorf("make state: %w", err)
		}
		return writeJSON(cmd.OutOrStdout(), st)
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Generate furnace scheduling rules for a list of items",
	RunE: func(cmd *cobra.Command, args []string) error {
		items := splitItems(itemsFlag)
		rules := env.registry.BuildFurnaceRules(items, furnaces)
		logger.Debug().Strs("items", items).Int("rules", len(rules)).Msg("furnace rules built")
		return writeJSON(cmd.OutOrStdout(), rules)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the pre-solve deadlock and batch checks for a request",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := readRequest(requestPath, cmd.InOrStdin())
		if err != nil {
			return err
		}

		cfg := precheck.Config{
			Registry:       env.registry,
			Adapter:        env.adapter,
			Tuning:         env.tune,
			CatalogDigests: env.catalogDigests,
		}
		if indexPath != "" {
			idx, err := indexdb.OpenSQLite(indexPath)
			if err != nil {
				return fmt.Errorf("open index: %w", err)
			}
			defer idx.Close()
			if err := idx.UpsertCatalogs(cmd.Context(), env.catalogDigests, env.tune); err != nil {
				return fmt.Errorf("index catalogs: %w", err)
			}
			cfg.Index = idx
		}
		if recordPath != "" {
			rec, err := persistlog.OpenAssessmentLog(recordPath)
			if err != nil {
				return fmt.Errorf("open record log: %w", err)
			}
			defer rec.Close()
			cfg.Record = rec
		}

		res, err := precheck.New(cfg, logger).Check(cmd.Context(), req.AssessInput)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), res)
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Place a request's operations on the slot timeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := readRequest(requestPath, cmd.InOrStdin())
		if err != nil {
			return err
		}
		st, err := env.registry.MakeTemporalState(env.tune.ApplyStateDefaults(req.State), env.adapter)
		if err != nil {
			return fmt.Errorf("make state: %w", err)
		}
		sched, next := env.registry.ScheduleOperations(env.adapter, st, req.Operations)
		if len(sched.Unplaced) > 0 {
			logger.Warn().Strs("unplaced", sched.Unplaced).Msg("operations without a slot")
		}
		return writeJSON(cmd.OutOrStdout(), struct {
			Schedule temporal.Schedule      `json:"schedule"`
			State    temporal.TemporalState `json:"state"`
		}{sched, next})
	},
}

var catalogsCmd = &cobra.Command{
	Use:   "catalogs",
	Short: "Print the active registries and their digests",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := env.registry
		smelt := make(map[string]temporal.SmeltEntry)
		for _, in := range r.SmeltableInputs() {
			e, _ := r.Smeltable(in)
			smelt[in] = e
		}
		return writeJSON(cmd.OutOrStdout(), struct {
			Durations      []temporal.OperatorDuration    `json:"durations"`
			Smeltables     map[string]temporal.SmeltEntry `json:"smeltables"`
			BatchOperators []temporal.BatchOperator       `json:"batchOperators"`
			Digests        map[string]string              `json:"digests,omitempty"`
		}{r.Durations(), smelt, r.BatchOperators(), env.catalogDigests})
	},
}

func init() {
	for _, c := range []*cobra.Command{stateCmd, checkCmd, scheduleCmd} {
		c.Flags().StringVar(&requestPath, "request", "-", "request YAML/JSON file, - for stdin")
	}
	checkCmd.Flags().StringVar(&recordPath, "record", "", "append the assessment to this .jsonl.zst log")
	checkCmd.Flags().StringVar(&indexPath, "index", "", "record the attempt in this SQLite index")

	rulesCmd.Flags().StringVar(&itemsFlag, "items", "", "comma-separated item names")
	rulesCmd.Flags().IntVar(&furnaces, "furnaces", 1, "number of furnaces available")
}

func splitItems(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
