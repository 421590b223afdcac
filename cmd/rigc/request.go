package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"minebot.ai/internal/planning/temporal"
)

// request is the YAML document accepted by state, check and schedule. Keys
// are the same camelCase names the commands print, so JSON output can be
// fed back in. Unknown keys are rejected.
type request struct {
	temporal.AssessInput `yaml:",inline"`

	Operations []temporal.OperationRequest `yaml:"operations,omitempty"`
}

func readRequest(path string, stdin io.Reader) (request, error) {
	var (
		raw []byte
		err error
	)
	if path == "" || path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return request{}, err
	}
	return parseRequest(raw)
}

func parseRequest(raw []byte) (request, error) {
	var r request
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		if errors.Is(err, io.EOF) {
			return request{}, fmt.Errorf("request: empty document")
		}
		return request{}, fmt.Errorf("request: %w", err)
	}
	if r.GoalCount < 0 || r.FurnaceSlotCount < 0 {
		return request{}, fmt.Errorf("request: counts must be >= 0")
	}
	return r, nil
}
