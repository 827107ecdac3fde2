package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var schemaSource string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("config.schema.json", schemaSource)
	})
	return schema, schemaErr
}

// Load reads a JSON or YAML config file and overlays it on Default().
// The document is validated against the embedded schema before decoding.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err = yamlToJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
	}

	cfg, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Parse validates a JSON document and overlays it on Default().
func Parse(raw []byte) (*Config, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	cfg := Default()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	// encoding/json replaces map entries wholesale, so table rows are decoded
	// a second time on top of their defaults.
	var tables struct {
		Archetypes map[string]json.RawMessage `json:"archetypes"`
		Compliance struct {
			Regulations map[string]json.RawMessage `json:"regulations"`
		} `json:"compliance"`
		City struct {
			Neighborhoods map[string]json.RawMessage `json:"neighborhoods"`
		} `json:"city"`
	}
	if err := json.Unmarshal(raw, &tables); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	defaults := Default()
	if err := overlayRows(cfg.Archetypes, defaults.Archetypes, tables.Archetypes); err != nil {
		return nil, fmt.Errorf("archetypes: %w", err)
	}
	if err := overlayRows(cfg.Compliance.Regulations, defaults.Compliance.Regulations, tables.Compliance.Regulations); err != nil {
		return nil, fmt.Errorf("regulations: %w", err)
	}
	if err := overlayRows(cfg.City.Neighborhoods, defaults.City.Neighborhoods, tables.City.Neighborhoods); err != nil {
		return nil, fmt.Errorf("neighborhoods: %w", err)
	}
	return cfg, nil
}

// overlayRows decodes each raw row onto its default value and stores it in dst.
func overlayRows[T any](dst, defaults map[string]T, rows map[string]json.RawMessage) error {
	for key, row := range rows {
		v := defaults[key]
		if err := json.Unmarshal(row, &v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		dst[key] = v
	}
	return nil
}

// Validate checks a JSON document against the config schema.
func Validate(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// LoadOrDefault never fails: a missing or malformed file logs a warning and
// yields the defaults.
func LoadOrDefault(path string) *Config {
	if path == "" {
		return Default()
	}
	cfg, err := Load(path)
	if err != nil {
		slog.Warn("config unavailable, using defaults", "path", path, "error", err)
		return Default()
	}
	slog.Info("config loaded", "path", path, "version", cfg.Version)
	return cfg
}

func yamlToJSON(raw []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return json.Marshal(doc)
}
