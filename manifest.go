package depmode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	"gopkg.in/yaml.v3"
)

// Format selects the manifest encoding.
type Format int

const (
	// FormatYAML decodes manifests with gopkg.in/yaml.v3.
	FormatYAML Format = iota

	// FormatJSON decodes manifests with encoding/json.
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// Manifest is a set of service declaration lists loaded from configuration.
// Identifiers in a manifest are strings.
//
//	services:
//	  userService:
//	    - database
//	    - [logger, 2]
//	    - [plugin, {many: true}]
type Manifest struct {
	Services map[string][]any `json:"services" yaml:"services"`
}

// LoadManifest decodes a manifest from r. Entries are normalized to the
// dynamic shapes ParseDeclaration accepts; identifiers must be strings.
func LoadManifest(r io.Reader, format Format) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ManifestError{Cause: err}
	}

	var m Manifest
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, ManifestError{Cause: err}
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&m); err != nil {
			return nil, ManifestError{Cause: err}
		}
	default:
		return nil, ManifestError{Cause: fmt.Errorf("unsupported format %s", format)}
	}

	for name, entries := range m.Services {
		for i, entry := range entries {
			normalized, err := normalizeManifestEntry(entry)
			if err != nil {
				return nil, ManifestError{
					Service: name,
					Cause:   MalformedDeclarationError{Service: name, Index: i, Entry: entry, Cause: err},
				}
			}
			entries[i] = normalized
		}
	}

	return &m, nil
}

// Names returns the service names in sorted order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Services))
	for name := range m.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply registers every service of the manifest on reg, in name order. The
// first failure stops the pass and is returned as a ManifestError; services
// registered before it remain registered.
func (m *Manifest) Apply(reg *Registry) error {
	if reg == nil {
		return ManifestError{Cause: ErrRegistryNil}
	}

	for _, name := range m.Names() {
		if _, err := reg.Register(name, m.Services[name]...); err != nil {
			return ManifestError{Service: name, Cause: err}
		}
	}

	return nil
}

// normalizeManifestEntry converts decoder-specific values: json.Number
// becomes int64, and YAML/JSON lists become []any pairs.
func normalizeManifestEntry(entry any) (any, error) {
	list, ok := entry.([]any)
	if !ok {
		if _, isString := entry.(string); !isString {
			return nil, fmt.Errorf("identifier must be a string, got %T", entry)
		}
		return entry, nil
	}

	if len(list) != 2 {
		return nil, fmt.Errorf("pair must have exactly 2 elements, got %d", len(list))
	}

	if _, isString := list[0].(string); !isString {
		return nil, fmt.Errorf("identifier must be a string, got %T", list[0])
	}

	second := list[1]
	switch v := second.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: mask %s is not an integer", ErrUnknownShape, v)
		}
		second = n
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("%w: mask %v is not an integer", ErrUnknownShape, v)
		}
		second = int64(v)
	case map[string]any:
		if mode, ok := v["mode"].(json.Number); ok {
			n, err := mode.Int64()
			if err != nil {
				return nil, fmt.Errorf("%w: mode %s is not an integer", ErrUnknownShape, mode)
			}
			fields := make(map[string]any, len(v))
			for k, val := range v {
				fields[k] = val
			}
			fields["mode"] = n
			second = fields
		}
	}

	return []any{list[0], second}, nil
}
