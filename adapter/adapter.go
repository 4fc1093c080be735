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

// Package adapter holds the pieces shared by the gin and echo binders:
// action-kind selection for a registration and a PathSet that keeps the
// route-name helpers working on routers that have no naming of their own.
package adapter

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/resto-dev/resto"
	"github.com/resto-dev/resto/action"
)

// Config carries the per-registration settings the binders expose through
// their option functions.
type Config struct {
	Mode       action.Mode
	Only       []action.Kind
	Except     map[action.Kind]bool
	AllowPatch bool
}

// Kinds determines which action kinds a registration covers. With Only set,
// every listed kind must be implemented; otherwise all implemented kinds are
// taken. Except filters the result in both cases.
func (cfg *Config) Kinds(implements func(action.Kind) bool) ([]action.Kind, error) {
	if len(cfg.Only) > 0 {
		for _, k := range cfg.Only {
			if !implements(k) {
				return nil, fmt.Errorf("%w: %s", resto.ErrActionNotImplemented, k)
			}
		}

		return cfg.filter(cfg.Only), nil
	}

	var implemented []action.Kind
	for _, k := range action.Kinds() {
		if implements(k) {
			implemented = append(implemented, k)
		}
	}

	kinds := cfg.filter(implemented)
	if len(kinds) == 0 {
		return nil, resto.ErrNoActions
	}

	return kinds, nil
}

func (cfg *Config) filter(kinds []action.Kind) []action.Kind {
	if len(cfg.Except) == 0 {
		return kinds
	}
	out := make([]action.Kind, 0, len(kinds))
	for _, k := range kinds {
		if !cfg.Except[k] {
			out = append(out, k)
		}
	}

	return out
}

// Methods returns the HTTP methods to register for a binding: the pattern's
// own method, plus PATCH when the registration allows it for Update.
func (cfg *Config) Methods(b action.Binding) []string {
	methods := []string{b.Pattern.Method}
	if cfg.AllowPatch && b.Name.Kind() == action.Update {
		methods = append(methods, "PATCH")
	}

	return methods
}

// PathSet maps route names to their resolved patterns and builds concrete
// paths from them. It is safe for concurrent reads after registration;
// registration itself is serialized.
type PathSet struct {
	mu       sync.RWMutex
	patterns map[string]action.Pattern
}

// NewPathSet returns an empty PathSet.
func NewPathSet() *PathSet {
	return &PathSet{patterns: make(map[string]action.Pattern)}
}

// Add records a named pattern. Names are unique per set.
func (ps *PathSet) Add(name string, pattern action.Pattern) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if _, ok := ps.patterns[name]; ok {
		return fmt.Errorf("%w: %s", resto.ErrDuplicateRouteName, name)
	}
	ps.patterns[name] = pattern

	return nil
}

// Pattern returns the pattern registered under name.
func (ps *PathSet) Pattern(name string) (action.Pattern, bool) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	p, ok := ps.patterns[name]

	return p, ok
}

// Names returns all registered route names, sorted.
func (ps *PathSet) Names() []string {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	names := make([]string, 0, len(ps.patterns))
	for name := range ps.patterns {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// PathFor builds the path for a named route, substituting the given values
// for its parameters in order of appearance.
//
//	ps.PathFor("projects.users.show", "7", "42")
//	// "/projects/7/users/42"
func (ps *PathSet) PathFor(name string, values ...string) (string, error) {
	pattern, ok := ps.Pattern(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", resto.ErrRouteNotFound, name)
	}

	var b strings.Builder
	i := 0
	for seg := range strings.SplitSeq(strings.TrimPrefix(pattern.Path, "/"), "/") {
		b.WriteByte('/')
		if param, ok := strings.CutPrefix(seg, ":"); ok {
			if i >= len(values) {
				return "", fmt.Errorf("%w: %s needs %q", resto.ErrMissingRouteParameter, name, param)
			}
			b.WriteString(url.PathEscape(values[i]))
			i++

			continue
		}
		b.WriteString(seg)
	}
	if i < len(values) {
		return "", fmt.Errorf("%w: %s takes %d", resto.ErrTooManyRouteParameters, name, i)
	}

	return b.String(), nil
}

// URLFor builds the path for a named route from a parameter map and appends
// an optional query string.
func (ps *PathSet) URLFor(name string, params map[string]string, query url.Values) (string, error) {
	pattern, ok := ps.Pattern(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", resto.ErrRouteNotFound, name)
	}

	values := make([]string, 0, len(params))
	for _, param := range pattern.Params() {
		v, ok := params[param]
		if !ok {
			return "", fmt.Errorf("%w: %s needs %q", resto.ErrMissingRouteParameter, name, param)
		}
		values = append(values, v)
	}

	path, err := ps.PathFor(name, values...)
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	return path, nil
}
