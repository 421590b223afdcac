package catalogs

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"minebot.ai/internal/planning/temporal"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

const schemaBaseURL = "https://minebot.ai/schemas/"

// Catalogs is the on-disk form of the scheduling registries plus the digest
// of every source file, so a solve bundle can record which tables it used.
type Catalogs struct {
	Registry *temporal.Registry

	DurationsDigest      string
	SmeltablesDigest     string
	SlotBlocksDigest     string
	BatchOperatorsDigest string
}

type SmeltableDef struct {
	Input         string `json:"input"`
	Output        string `json:"output"`
	DurationTicks int    `json:"duration_ticks"`
}

type SlotBlockDef struct {
	Block    string `json:"block"`
	SlotType string `json:"slot_type"`
}

// Files are the catalog file names Load reads from a config directory.
var Files = []string{"durations.json", "smeltables.json", "slot_blocks.json", "batch_operators.json"}

// Present reports whether any catalog file exists in configDir. A directory
// with some but not all of them is a broken config, not an absent one.
func Present(configDir string) (bool, error) {
	for _, name := range Files {
		_, err := os.Stat(filepath.Join(configDir, name))
		if err == nil {
			return true, nil
		}
		if !os.IsNotExist(err) {
			return false, err
		}
	}
	return false, nil
}

func Load(configDir string) (*Catalogs, error) {
	var (
		c   Catalogs
		cfg temporal.RegistryConfig
		err error
	)

	if c.DurationsDigest, err = loadDurations(filepath.Join(configDir, "durations.json"), &cfg); err != nil {
		return nil, err
	}
	if c.SmeltablesDigest, err = loadSmeltables(filepath.Join(configDir, "smeltables.json"), &cfg); err != nil {
		return nil, err
	}
	if c.SlotBlocksDigest, err = loadSlotBlocks(filepath.Join(configDir, "slot_blocks.json"), &cfg); err != nil {
		return nil, err
	}
	if c.BatchOperatorsDigest, err = loadBatchOperators(filepath.Join(configDir, "batch_operators.json"), &cfg); err != nil {
		return nil, err
	}

	c.Registry = temporal.NewRegistry(cfg)
	return &c, nil
}

// Digests returns file name -> sha256 hex, for logging and bundle records.
func (c *Catalogs) Digests() map[string]string {
	return map[string]string{
		"durations.json":       c.DurationsDigest,
		"smeltables.json":      c.SmeltablesDigest,
		"slot_blocks.json":     c.SlotBlocksDigest,
		"batch_operators.json": c.BatchOperatorsDigest,
	}
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// readValidated reads name, checks it against its embedded schema and
// returns the raw bytes.
func readValidated(path, schemaName string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	schema, err := compileSchema(schemaName)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return raw, nil
}

func compileSchema(name string) (*jsonschema.Schema, error) {
	b, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, err
	}
	url := schemaBaseURL + name
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}
	return c.Compile(url)
}

func loadDurations(path string, out *temporal.RegistryConfig) (string, error) {
	raw, err := readValidated(path, "durations.schema.json")
	if err != nil {
		return "", err
	}
	var defs []temporal.OperatorDuration
	if err := json.Unmarshal(raw, &defs); err != nil {
		return "", fmt.Errorf("durations.json: %w", err)
	}
	out.Durations = defs
	return sha256Hex(raw), nil
}

func loadSmeltables(path string, out *temporal.RegistryConfig) (string, error) {
	raw, err := readValidated(path, "smeltables.schema.json")
	if err != nil {
		return "", err
	}
	var defs []SmeltableDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return "", fmt.Errorf("smeltables.json: %w", err)
	}
	out.Smeltables = make(map[string]temporal.SmeltEntry, len(defs))
	for _, d := range defs {
		if _, dup := out.Smeltables[d.Input]; dup {
			return "", fmt.Errorf("smeltables.json: duplicate input %q", d.Input)
		}
		out.Smeltables[d.Input] = temporal.SmeltEntry{Output: d.Output, DurationTicks: d.DurationTicks}
	}
	return sha256Hex(raw), nil
}

func loadSlotBlocks(path string, out *temporal.RegistryConfig) (string, error) {
	raw, err := readValidated(path, "slot_blocks.schema.json")
	if err != nil {
		return "", err
	}
	var defs []SlotBlockDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return "", fmt.Errorf("slot_blocks.json: %w", err)
	}
	out.SlotBlocks = make(map[string]string, len(defs))
	for _, d := range defs {
		if _, dup := out.SlotBlocks[d.Block]; dup {
			return "", fmt.Errorf("slot_blocks.json: duplicate block %q", d.Block)
		}
		out.SlotBlocks[d.Block] = d.SlotType
	}
	return sha256Hex(raw), nil
}

func loadBatchOperators(path string, out *temporal.RegistryConfig) (string, error) {
	raw, err := readValidated(path, "batch_operators.schema.json")
	if err != nil {
		return "", err
	}
	var defs []temporal.BatchOperator
	if err := json.Unmarshal(raw, &defs); err != nil {
		return "", fmt.Errorf("batch_operators.json: %w", err)
	}
	seen := map[string]struct{}{}
	for _, d := range defs {
		if _, dup := seen[d.OpID]; dup {
			return "", fmt.Errorf("batch_operators.json: duplicate op_id %q", d.OpID)
		}
		seen[d.OpID] = struct{}{}
	}
	out.BatchOperators = defs
	return sha256Hex(raw), nil
}
