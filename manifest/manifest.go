// Copyright 2025 The Resto Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package manifest loads declarative resource declarations from YAML or TOML
// files. A manifest is the route table as reviewable data: which resources
// exist, under which namespace, nested or plain, and which action kinds each
// one exposes.
//
//	namespace: Api::V1
//	defaults:
//	  only: [index, show]
//	resources:
//	  - name: Users
//	    only: [index, show, create]
//	  - name: Projects::Users
//	    nested: true
//
// Files are validated against an embedded JSON Schema before decoding, and
// every action kind is checked against the recognized set — a manifest that
// names an unknown kind fails to load. Nothing here touches a router;
// Router.MountManifest consumes the resolved declarations.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/cast"

	"github.com/resto-dev/resto/action"
)

var (
	// ErrUnsupportedFormat indicates a manifest file extension outside
	// .yaml/.yml/.toml.
	ErrUnsupportedFormat = errors.New("unsupported manifest format")

	// ErrInvalidManifest indicates a manifest that fails schema validation.
	ErrInvalidManifest = errors.New("invalid manifest")
)

// Manifest is a decoded resource manifest.
type Manifest struct {
	// Namespace is prepended to every resource name ("Api::V1").
	Namespace string `mapstructure:"namespace"`

	// Defaults supplies Only/Except rules for resources that declare none.
	Defaults Rules `mapstructure:"defaults"`

	// Resources lists the declared resources in order.
	Resources []Declaration `mapstructure:"resources"`
}

// Rules restricts which action kinds a resource exposes.
type Rules struct {
	Only   []string `mapstructure:"only"`
	Except []string `mapstructure:"except"`
}

// Declaration declares one resource.
type Declaration struct {
	// Name is the resource name, optionally with its own namespace
	// ("Users", "Projects::Users").
	Name string `mapstructure:"name"`

	// Nested resolves the resource nested under its parent segment.
	Nested bool `mapstructure:"nested"`

	Rules `mapstructure:",squash"`
}

// Resource is a resolved declaration: the fully qualified base name, the
// resolution mode, and the concrete action kinds to register.
type Resource struct {
	// Name is the declaration name as written in the manifest; it keys the
	// controller lookup when mounting.
	Name string

	// Base is the namespace-qualified name handed to the resolver.
	Base string

	Mode  action.Mode
	Kinds []action.Kind
}

// Load reads, validates, and decodes a manifest file. The format is chosen by
// extension: .yaml/.yml or .toml.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	format := strings.TrimPrefix(filepath.Ext(path), ".")

	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	return m, nil
}

// Parse validates and decodes manifest data in the given format
// ("yaml", "yml", or "toml").
func Parse(data []byte, format string) (*Manifest, error) {
	raw, err := decodeRaw(data, format)
	if err != nil {
		return nil, err
	}

	if err := validateSchema(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	var m Manifest
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &m,
		DecodeHook: stringToSliceHook,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	// Reject unknown kinds at load time, before any router sees the manifest.
	if _, err := m.Resolve(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Resolve merges defaults into each declaration and resolves the action
// kinds. Unknown kinds fail with action.ErrUnrecognizedActionKind.
func (m *Manifest) Resolve() ([]Resource, error) {
	resources := make([]Resource, 0, len(m.Resources))

	for _, decl := range m.Resources {
		rules := decl.Rules
		// Manifest-wide defaults apply only to declarations without rules of
		// their own: a resource's except must not be overridden by a default
		// only.
		if len(rules.Only) == 0 && len(rules.Except) == 0 {
			if err := mergo.Merge(&rules, m.Defaults); err != nil {
				return nil, err
			}
		}

		kinds, err := resolveKinds(rules)
		if err != nil {
			return nil, fmt.Errorf("resource %q: %w", decl.Name, err)
		}

		mode := action.Plain
		if decl.Nested {
			mode = action.Nested
		}

		base := decl.Name
		if m.Namespace != "" {
			base = m.Namespace + "::" + decl.Name
		}

		resources = append(resources, Resource{
			Name:  decl.Name,
			Base:  base,
			Mode:  mode,
			Kinds: kinds,
		})
	}

	return resources, nil
}

func resolveKinds(rules Rules) ([]action.Kind, error) {
	if len(rules.Only) > 0 {
		kinds := make([]action.Kind, 0, len(rules.Only))
		for _, s := range rules.Only {
			k, err := action.ParseKind(s)
			if err != nil {
				return nil, err
			}
			kinds = append(kinds, k)
		}

		return kinds, nil
	}

	except := make(map[action.Kind]bool, len(rules.Except))
	for _, s := range rules.Except {
		k, err := action.ParseKind(s)
		if err != nil {
			return nil, err
		}
		except[k] = true
	}

	var kinds []action.Kind
	for _, k := range action.Kinds() {
		if !except[k] {
			kinds = append(kinds, k)
		}
	}

	return kinds, nil
}

func decodeRaw(data []byte, format string) (map[string]any, error) {
	var raw map[string]any

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return raw, nil
}

// stringToSliceHook lets "only: index" stand in for "only: [index]".
func stringToSliceHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to == reflect.TypeOf([]string(nil)) {
		return cast.ToStringSliceE(data)
	}

	return data, nil
}

// manifestSchema is the structural contract for manifest files. Kind values
// are validated separately so the error can name the offending kind.
const manifestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "namespace": {"type": "string"},
    "defaults": {"$ref": "#/$defs/rules"},
    "resources": {
      "type": "array",
      "items": {"$ref": "#/$defs/resource"},
      "minItems": 1
    }
  },
  "required": ["resources"],
  "additionalProperties": false,
  "$defs": {
    "kinds": {
      "anyOf": [
        {"type": "string"},
        {"type": "array", "items": {"type": "string"}}
      ]
    },
    "rules": {
      "type": "object",
      "properties": {
        "only": {"$ref": "#/$defs/kinds"},
        "except": {"$ref": "#/$defs/kinds"}
      },
      "additionalProperties": false
    },
    "resource": {
      "type": "object",
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "nested": {"type": "boolean"},
        "only": {"$ref": "#/$defs/kinds"},
        "except": {"$ref": "#/$defs/kinds"}
      },
      "required": ["name"],
      "additionalProperties": false
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(manifestSchema))
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("manifest.schema.json", doc); err != nil {
		return nil, err
	}

	return compiler.Compile("manifest.schema.json")
})

func validateSchema(raw map[string]any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	return schema.Validate(normalizeForSchema(raw))
}

// normalizeForSchema converts decoder output into the JSON-shaped values the
// schema validator expects (string-keyed maps and []any throughout).
func normalizeForSchema(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeForSchema(item)
		}

		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeForSchema(item)
		}

		return out
	case []map[string]any:
		// BurntSushi/toml decodes arrays of tables this way.
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeForSchema(item)
		}

		return out
	default:
		return v
	}
}
