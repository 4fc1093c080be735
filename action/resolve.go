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

package action

import (
	"fmt"
	"strings"

	"github.com/jinzhu/inflection"
)

// Mode selects between plain and nested resolution.
type Mode uint8

const (
	// Plain resolves the resource directly under its namespace.
	Plain Mode = iota

	// Nested treats the segment immediately before the resource as a parent
	// resource: its singular form contributes a :<parent>_id path parameter
	// inserted ahead of the resource segment.
	Nested
)

// String returns "plain" or "nested".
func (m Mode) String() string {
	if m == Nested {
		return "nested"
	}

	return "plain"
}

// Pattern is a resolved route: an HTTP method and a path template containing
// literal segments and :param placeholders.
type Pattern struct {
	Method string
	Path   string
}

// Params returns the names of the path parameters in order of appearance,
// e.g. ["project_id", "id"] for "/projects/:project_id/users/:id".
func (p Pattern) Params() []string {
	var params []string
	for seg := range strings.SplitSeq(strings.Trim(p.Path, "/"), "/") {
		if strings.HasPrefix(seg, ":") {
			params = append(params, seg[1:])
		}
	}

	return params
}

// String returns "METHOD /path".
func (p Pattern) String() string {
	return p.Method + " " + p.Path
}

// Resolve translates a name into its route pattern.
//
// Resolution is pure: it depends only on the name and mode, has no side
// effects, and is idempotent. The mapping is total over the seven recognized
// kinds; names carrying any other terminal segment cannot be constructed
// (ParseName and NewName reject them with ErrUnrecognizedActionKind), and the
// zero Name fails with the same error here.
//
//	Resolve(MustParseName("Users.Index"), Plain)             → GET  /users
//	Resolve(MustParseName("Api.V1.Users.Show"), Plain)       → GET  /api/v1/users/:id
//	Resolve(MustParseName("Projects.Users.Update"), Nested)  → PUT  /projects/:project_id/users/:id
func Resolve(n Name, mode Mode) (Pattern, error) {
	if n.IsZero() {
		return Pattern{}, ErrUnrecognizedActionKind
	}
	if mode == Nested && n.Parent() == "" {
		return Pattern{}, fmt.Errorf("resolve %q: %w", n.String(), ErrMissingParent)
	}

	var b strings.Builder
	for _, seg := range n.segments[:len(n.segments)-1] {
		b.WriteByte('/')
		b.WriteString(snakeWords(seg))
	}

	if mode == Nested {
		b.WriteString("/:")
		b.WriteString(ParamName(n.Parent()))
	}

	b.WriteByte('/')
	b.WriteString(snakeWords(n.Resource()))
	b.WriteString(n.kind.pathSuffix())

	return Pattern{Method: n.kind.Method(), Path: b.String()}, nil
}

// ParamName derives the identifier parameter name contributed by a parent
// resource segment: the lower snake_case singular form suffixed with "_id",
// e.g. "Projects" -> "project_id". Singularization follows the inflection
// package's rule set; this is a documented assumption, not behavior the
// conventions prescribe beyond their examples.
func ParamName(segment string) string {
	return inflection.Singular(snakeWords(segment)) + "_id"
}

// Binding pairs a name with its resolved pattern. Bindings are what route
// registrars consume: the route name keys helper lookup, the pattern is wired
// into the underlying router.
type Binding struct {
	Name    Name
	Pattern Pattern
}

// Expand resolves one binding per kind for the resource identified by base,
// a qualified name without a terminal kind ("Users", "Api::V1::Users").
// Expansion fails, before any binding is produced, if the base is malformed
// or nested mode lacks a parent segment.
func Expand(base string, kinds []Kind, mode Mode) ([]Binding, error) {
	normalized := strings.ReplaceAll(base, "::", ".")

	segments := strings.Split(normalized, ".")
	if len(segments) == 1 && segments[0] == "" {
		return nil, ErrEmptyName
	}

	bindings := make([]Binding, 0, len(kinds))
	for _, kind := range kinds {
		name, err := NewName(kind, segments...)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", base, err)
		}

		pattern, err := Resolve(name, mode)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", base, err)
		}

		bindings = append(bindings, Binding{Name: name, Pattern: pattern})
	}

	return bindings, nil
}
