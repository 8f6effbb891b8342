// Package source builds strictconf providers from configuration files
// and raw YAML/JSON documents.
//
// Parsing happens here, at construction time, and never inside the
// validation core: a loader returns an immutable Static provider and
// the accessor stays a pure type-checking boundary in front of it.
//
// Nested documents are indexed under dotted keys, so
//
//	database:
//	  host: localhost
//
// is readable both as the map "database" and as the scalar
// "database.host". The int/float distinction of the document survives
// loading: JSON and YAML integers come back as ints, never floats.
package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/strictconf/strictconf/pkg/strictconf"
	"gopkg.in/yaml.v3"
)

// FromFile loads a provider from a file, auto-detecting the format by
// extension. Supported extensions: .yaml, .yml, .json
func FromFile(path string) (*strictconf.Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported config file extension: %s", ext)
	}
}

// FromYAML parses a YAML document into a provider.
func FromYAML(data []byte) (*strictconf.Static, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return fromDocument(m), nil
}

// FromJSON parses a JSON document into a provider. Numbers are decoded
// through json.Number so that 42 loads as an integer and 42.0 as a
// float.
func FromJSON(data []byte) (*strictconf.Static, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return fromDocument(m), nil
}

// fromDocument indexes a decoded document under dotted keys.
func fromDocument(m map[string]any) *strictconf.Static {
	values := make(map[string]strictconf.Value)
	index(values, "", m)
	return strictconf.NewStatic(values)
}

// index stores every node of the document: each key maps to its own
// value, and string-keyed sub-documents are additionally walked with a
// dotted prefix.
func index(values map[string]strictconf.Value, prefix string, m map[string]any) {
	for k, raw := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		values[key] = strictconf.FromAny(raw)

		if nested, ok := raw.(map[string]any); ok {
			index(values, key, nested)
		}
	}
}
