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

package resto

import (
	"fmt"
	"net/http"
	"strings"
)

// Param is a single path parameter captured during matching.
type Param struct {
	Key   string
	Value string
}

// edge is a per-segment static child. Children are kept in a slice and
// scanned linearly: route fan-out per segment is small and the scan avoids
// map hashing on the hot path.
type edge struct {
	label string
	node  *node
}

// paramChild captures a dynamic :key segment.
type paramChild struct {
	key  string
	node *node
}

// node is a segment-tree node. Static segments live in edges; at most one
// parameter child exists per node. Full-path static routes are additionally
// indexed in the root's staticPaths map so parameterless lookups skip the
// walk entirely.
//
// Thread safety: trees are built during the registration phase and are
// immutable once the router starts serving, so reads take no locks.
type node struct {
	handlers    []HandlerFunc
	edges       []edge
	param       *paramChild
	pattern     string // registered path template, "" when not a terminal
	staticPaths map[string]*node
}

func (n *node) findChild(segment string) *node {
	for i := range n.edges {
		if n.edges[i].label == segment {
			return n.edges[i].node
		}
	}

	return nil
}

func (n *node) findOrCreateChild(segment string) *node {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := &node{}
	n.edges = append(n.edges, edge{label: segment, node: child})

	return child
}

// addRoute inserts a path template. Templates use :param syntax; two routes
// may not declare different parameter names at the same position, and a
// method/path pair may only be registered once.
func (n *node) addRoute(path string, handlers []HandlerFunc) error {
	current := n

	if path != "/" {
		for segment := range strings.SplitSeq(strings.Trim(path, "/"), "/") {
			if segment == "" {
				continue
			}

			if key, ok := strings.CutPrefix(segment, ":"); ok {
				if current.param == nil {
					current.param = &paramChild{key: key, node: &node{}}
				} else if current.param.key != key {
					return fmt.Errorf("%w: :%s vs :%s in %s",
						ErrParamConflict, current.param.key, key, path)
				}
				current = current.param.node

				continue
			}

			current = current.findOrCreateChild(segment)
		}
	}

	if current.handlers != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateRoute, path)
	}
	current.handlers = handlers
	current.pattern = path

	// Parameterless routes also go into the root's full-path index.
	if !strings.Contains(path, ":") {
		if n.staticPaths == nil {
			n.staticPaths = make(map[string]*node)
		}
		n.staticPaths[path] = current
	}

	return nil
}

// conflicts reports the error addRoute would return for path, without
// mutating the tree. Batch registrations validate every path up front so a
// collision leaves the tree untouched.
func (n *node) conflicts(path string) error {
	current := n

	if path != "/" {
		for segment := range strings.SplitSeq(strings.Trim(path, "/"), "/") {
			if segment == "" {
				continue
			}

			if key, ok := strings.CutPrefix(segment, ":"); ok {
				if current.param == nil {
					return nil
				}
				if current.param.key != key {
					return fmt.Errorf("%w: :%s vs :%s in %s",
						ErrParamConflict, current.param.key, key, path)
				}
				current = current.param.node

				continue
			}

			child := current.findChild(segment)
			if child == nil {
				return nil
			}
			current = child
		}
	}

	if current.handlers != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateRoute, path)
	}

	return nil
}

// search matches a request path, appending captured parameters to params.
// Static children win over the parameter child at every position; there is
// no backtracking. Convention-generated routes never need it: a literal
// segment and a parameter never compete for the same role at the same depth.
func (n *node) search(path string, params *[]Param) *node {
	if target, ok := n.staticPaths[path]; ok {
		return target
	}

	current := n
	if path != "/" {
		for segment := range strings.SplitSeq(strings.Trim(path, "/"), "/") {
			if segment == "" {
				continue
			}

			if child := current.findChild(segment); child != nil {
				current = child

				continue
			}

			if current.param != nil {
				*params = append(*params, Param{Key: current.param.key, Value: segment})
				current = current.param.node

				continue
			}

			return nil
		}
	}

	if current.handlers == nil {
		return nil
	}

	return current
}

// methodTrees holds per-method roots. A switch on the method string avoids
// map hashing on the hot path.
type methodTrees struct {
	get     *node
	post    *node
	put     *node
	delete  *node
	patch   *node
	head    *node
	options *node
}

func newMethodTrees() *methodTrees {
	return &methodTrees{
		get:     &node{},
		post:    &node{},
		put:     &node{},
		delete:  &node{},
		patch:   &node{},
		head:    &node{},
		options: &node{},
	}
}

func (m *methodTrees) tree(method string) *node {
	switch method {
	case http.MethodGet:
		return m.get
	case http.MethodPost:
		return m.post
	case http.MethodPut:
		return m.put
	case http.MethodDelete:
		return m.delete
	case http.MethodPatch:
		return m.patch
	case http.MethodHead:
		return m.head
	case http.MethodOptions:
		return m.options
	default:
		return nil
	}
}

func (m *methodTrees) iterate(fn func(method string, tree *node)) {
	fn(http.MethodGet, m.get)
	fn(http.MethodPost, m.post)
	fn(http.MethodPut, m.put)
	fn(http.MethodDelete, m.delete)
	fn(http.MethodPatch, m.patch)
	fn(http.MethodHead, m.head)
	fn(http.MethodOptions, m.options)
}
