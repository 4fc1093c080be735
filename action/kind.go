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
	"net/http"
	"strings"
)

// Kind is one of the seven recognized action kinds. The kind of a name
// deterministically fixes the HTTP method of the resolved route and whether
// an :id parameter is appended to the path.
type Kind uint8

const (
	// KindInvalid is the zero value; it is never resolved.
	KindInvalid Kind = iota

	// Index lists a collection: GET /<resource>.
	Index
	// Show fetches a single record: GET /<resource>/:id.
	Show
	// New renders the creation form: GET /<resource>/new.
	New
	// Create adds a record: POST /<resource>.
	Create
	// Edit renders the edit form: GET /<resource>/:id/edit.
	Edit
	// Update replaces a record: PUT /<resource>/:id.
	Update
	// Delete removes a record: DELETE /<resource>/:id.
	Delete
)

// Kinds returns all recognized kinds in declaration order.
func Kinds() []Kind {
	return []Kind{Index, Show, New, Create, Edit, Update, Delete}
}

// String returns the canonical CamelCase spelling of the kind.
func (k Kind) String() string {
	switch k {
	case Index:
		return "Index"
	case Show:
		return "Show"
	case New:
		return "New"
	case Create:
		return "Create"
	case Edit:
		return "Edit"
	case Update:
		return "Update"
	case Delete:
		return "Delete"
	}

	return "Invalid"
}

// Method returns the HTTP method fixed by the kind.
func (k Kind) Method() string {
	switch k {
	case Index, Show, New, Edit:
		return http.MethodGet
	case Create:
		return http.MethodPost
	case Update:
		return http.MethodPut
	case Delete:
		return http.MethodDelete
	}

	return ""
}

// pathSuffix returns the path tail appended after the resource segment.
func (k Kind) pathSuffix() string {
	switch k {
	case Show, Update, Delete:
		return "/:id"
	case New:
		return "/new"
	case Edit:
		return "/:id/edit"
	}

	return ""
}

// ParseKind parses a kind from its name. Matching is case-insensitive so that
// manifest files can spell kinds in lower case ("index") while code uses the
// canonical CamelCase form ("Index").
//
// Returns ErrUnrecognizedActionKind for anything outside the recognized set.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "index":
		return Index, nil
	case "show":
		return Show, nil
	case "new":
		return New, nil
	case "create":
		return Create, nil
	case "edit":
		return Edit, nil
	case "update":
		return Update, nil
	case "delete":
		return Delete, nil
	}

	return KindInvalid, fmt.Errorf("%w: %q", ErrUnrecognizedActionKind, s)
}
