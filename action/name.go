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
	"unicode"
)

// Name is a route name: an ordered, immutable sequence of namespace segments,
// a resource segment, and a terminal action kind.
//
// Names are value types; the zero Name is invalid. Construct one with
// ParseName or NewName.
type Name struct {
	segments []string // namespaces followed by the resource segment
	kind     Kind
}

// ParseName parses a qualified action name such as "Api::V1::Users::Show" or
// "Api.V1.Users.Show". The final segment must be a recognized action kind and
// at least one segment (the resource) must precede it.
func ParseName(s string) (Name, error) {
	normalized := strings.ReplaceAll(s, "::", ".")

	raw := strings.Split(normalized, ".")
	if len(raw) == 0 || (len(raw) == 1 && raw[0] == "") {
		return Name{}, ErrEmptyName
	}

	kind, err := ParseKind(raw[len(raw)-1])
	if err != nil {
		return Name{}, fmt.Errorf("parse %q: %w", s, err)
	}

	segments := raw[:len(raw)-1]
	if len(segments) == 0 {
		return Name{}, fmt.Errorf("parse %q: %w", s, ErrMissingResource)
	}

	return NewName(kind, segments...)
}

// NewName builds a Name from a kind and its segments. The last segment is the
// resource; any preceding segments are namespaces. Segments must be non-empty
// identifiers (letters and digits, starting with a letter).
func NewName(kind Kind, segments ...string) (Name, error) {
	if kind == KindInvalid {
		return Name{}, ErrUnrecognizedActionKind
	}
	if len(segments) == 0 {
		return Name{}, ErrMissingResource
	}

	for _, seg := range segments {
		if !validSegment(seg) {
			return Name{}, fmt.Errorf("%w: %q", ErrInvalidSegment, seg)
		}
	}

	// Copy to keep the Name immutable even if the caller mutates its slice.
	owned := make([]string, len(segments))
	copy(owned, segments)

	return Name{segments: owned, kind: kind}, nil
}

// MustParseName is like ParseName but panics on error. Intended for route
// tables built from literals at program start.
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(fmt.Sprintf("action: %v", err))
	}

	return n
}

// Kind returns the terminal action kind.
func (n Name) Kind() Kind { return n.kind }

// Resource returns the resource segment (the segment immediately preceding
// the kind), in its original CamelCase spelling.
func (n Name) Resource() string {
	if len(n.segments) == 0 {
		return ""
	}

	return n.segments[len(n.segments)-1]
}

// Namespace returns the namespace segments in order, excluding the resource.
// The returned slice is a copy.
func (n Name) Namespace() []string {
	if len(n.segments) <= 1 {
		return nil
	}
	ns := make([]string, len(n.segments)-1)
	copy(ns, n.segments[:len(n.segments)-1])

	return ns
}

// Parent returns the segment immediately preceding the resource, or "" when
// the name has no such segment. In nested resolution the parent contributes
// the :<parent>_id path parameter.
func (n Name) Parent() string {
	if len(n.segments) < 2 {
		return ""
	}

	return n.segments[len(n.segments)-2]
}

// IsZero reports whether the name is the invalid zero value.
func (n Name) IsZero() bool { return n.kind == KindInvalid }

// String returns the canonical dotted form, e.g. "Api.V1.Users.Show".
func (n Name) String() string {
	if n.IsZero() {
		return ""
	}

	return strings.Join(n.segments, ".") + "." + n.kind.String()
}

// RouteName returns the lower snake_case dotted identifier used for named
// route lookup, e.g. "api.v1.users.show".
func (n Name) RouteName() string {
	if n.IsZero() {
		return ""
	}

	parts := make([]string, 0, len(n.segments)+1)
	for _, seg := range n.segments {
		parts = append(parts, snakeWords(seg))
	}
	parts = append(parts, strings.ToLower(n.kind.String()))

	return strings.Join(parts, ".")
}

// validSegment reports whether seg is a usable identifier segment.
func validSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for i, r := range seg {
		switch {
		case unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}

	return true
}

// snakeWords converts a CamelCase segment into lower snake_case words:
// "MyAdminSection" -> "my_admin_section", "V1" -> "v1", "HTTPStatus" -> "http_status".
// A new word starts at a lower-to-upper transition, and at the last capital of
// an acronym run when it is followed by a lower-case letter.
func snakeWords(seg string) string {
	runes := []rune(seg)

	var b strings.Builder
	b.Grow(len(seg) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
