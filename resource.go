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

	"github.com/resto-dev/resto/action"
)

// Controllers implement any subset of the seven action interfaces. Each
// implemented action becomes one route when the controller is registered
// with Resources.
type (
	// Indexer handles GET /<resource>.
	Indexer interface{ Index(*Context) }
	// Shower handles GET /<resource>/:id.
	Shower interface{ Show(*Context) }
	// Newer handles GET /<resource>/new.
	Newer interface{ New(*Context) }
	// Creator handles POST /<resource>.
	Creator interface{ Create(*Context) }
	// Editor handles GET /<resource>/:id/edit.
	Editor interface{ Edit(*Context) }
	// Updater handles PUT /<resource>/:id.
	Updater interface{ Update(*Context) }
	// Deleter handles DELETE /<resource>/:id.
	Deleter interface{ Delete(*Context) }
)

// ResourceOption configures a Resources registration.
type ResourceOption func(*resourceConfig)

type resourceConfig struct {
	mode       action.Mode
	only       []action.Kind
	except     map[action.Kind]bool
	allowPatch bool
}

// Nested registers the resource nested under its parent segment: the parent's
// singular form contributes a :<parent>_id path parameter.
//
//	r.Resources("Projects::Users", ctrl, resto.Nested())
//	// GET /projects/:project_id/users, ...
func Nested() ResourceOption {
	return func(cfg *resourceConfig) {
		cfg.mode = action.Nested
	}
}

// Only restricts registration to the given kinds. Every listed kind must be
// implemented by the controller; a missing one is a definition-time error.
func Only(kinds ...action.Kind) ResourceOption {
	return func(cfg *resourceConfig) {
		cfg.only = kinds
	}
}

// Except registers every implemented action except the given kinds.
func Except(kinds ...action.Kind) ResourceOption {
	return func(cfg *resourceConfig) {
		if cfg.except == nil {
			cfg.except = make(map[action.Kind]bool, len(kinds))
		}
		for _, k := range kinds {
			cfg.except[k] = true
		}
	}
}

// AllowPatch additionally registers PATCH alongside PUT for Update. The
// convention table maps Update to PUT only; PATCH is opt-in.
func AllowPatch() ResourceOption {
	return func(cfg *resourceConfig) {
		cfg.allowPatch = true
	}
}

// Resources registers routes for every action the controller implements,
// following the naming conventions. The base name is the namespace-qualified
// resource without a terminal kind, e.g. "Users" or "Api::V1::Users".
//
// Each registered route is named "<namespace>.<resource>.<kind>" in lower
// snake form ("api.v1.users.show") for the PathFor/URLFor/RouteFor helpers.
//
// All failures — malformed names, unknown kinds in Only, controllers without
// actions, duplicate routes — are reported here, at definition time. Nothing
// is registered when an error is returned.
//
// Example:
//
//	type usersController struct{ store *UserStore }
//
//	func (u *usersController) Index(c *resto.Context) { ... }
//	func (u *usersController) Show(c *resto.Context)  { ... }
//
//	err := r.Resources("Api::V1::Users", &usersController{store})
//	// GET /api/v1/users      → Index (named api.v1.users.index)
//	// GET /api/v1/users/:id  → Show  (named api.v1.users.show)
func (r *Router) Resources(base string, controller any, opts ...ResourceOption) error {
	return r.resources("", nil, base, controller, opts)
}

// resources implements Resources for the router itself (empty prefix) and for
// groups (prefix + group middleware ahead of the action handler).
func (r *Router) resources(prefix string, middleware []HandlerFunc, base string, controller any, opts []ResourceOption) error {
	cfg := resourceConfig{mode: action.Plain}
	for _, opt := range opts {
		opt(&cfg)
	}

	kinds, err := resourceKinds(controller, &cfg)
	if err != nil {
		return fmt.Errorf("resources %q: %w", base, err)
	}

	bindings, err := action.Expand(base, kinds, cfg.mode)
	if err != nil {
		return err
	}

	// Probe all handlers before registering anything so interface errors
	// leave the router untouched.
	regs := make([]pendingAction, 0, len(bindings))
	for _, b := range bindings {
		handler, ok := handlerFor(controller, b.Name.Kind())
		if !ok {
			return fmt.Errorf("resources %q: %w: %s", base, ErrActionNotImplemented, b.Name.Kind())
		}

		methods := []string{b.Pattern.Method}
		if cfg.allowPatch && b.Name.Kind() == action.Update {
			methods = append(methods, http.MethodPatch)
		}
		regs = append(regs, pendingAction{binding: b, handler: handler, methods: methods})
	}

	// Validate the whole expansion against the trees and the name registry
	// before registering anything, so a collision with an existing route
	// leaves the router unchanged.
	if err := r.validatePending(prefix, regs); err != nil {
		return fmt.Errorf("resources %q: %w", base, err)
	}

	for _, p := range regs {
		chain := make([]HandlerFunc, 0, len(middleware)+1)
		chain = append(chain, middleware...)
		chain = append(chain, p.handler)

		for i, method := range p.methods {
			rt, err := r.addRoute(method, joinPaths(prefix, p.binding.Pattern.Path), chain)
			if err != nil {
				return fmt.Errorf("resources %q: %w", base, err)
			}

			// The PATCH alias shares the PUT route's handler but not its name.
			if i == 0 {
				if err := r.registerNamedRoute(p.binding.Name.RouteName(), rt); err != nil {
					return fmt.Errorf("resources %q: %w", base, err)
				}
				rt.name = p.binding.Name.RouteName()
			}
		}
	}

	return nil
}

// pendingAction is one staged registration of a resource expansion: the
// action binding, its probed handler, and every method it will serve.
type pendingAction struct {
	binding action.Binding
	handler HandlerFunc
	methods []string
}

// validatePending checks a staged expansion against the route trees and the
// name registry without registering anything. Entries within one expansion
// cannot collide with each other, so only existing state is consulted.
func (r *Router) validatePending(prefix string, regs []pendingAction) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range regs {
		path := joinPaths(prefix, p.binding.Pattern.Path)
		for _, method := range p.methods {
			if err := r.trees.tree(method).conflicts(path); err != nil {
				return err
			}
		}
		name := p.binding.Name.RouteName()
		if _, ok := r.namedRoutes[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateRouteName, name)
		}
	}
	return nil
}

// MustResources is like Resources but panics on error, for route tables
// wired up in main.
func (r *Router) MustResources(base string, controller any, opts ...ResourceOption) {
	if err := r.Resources(base, controller, opts...); err != nil {
		panic(fmt.Sprintf("resto: %v", err))
	}
}

// resourceKinds determines which kinds to register for a controller.
func resourceKinds(controller any, cfg *resourceConfig) ([]action.Kind, error) {
	if len(cfg.only) > 0 {
		for _, k := range cfg.only {
			if _, ok := handlerFor(controller, k); !ok {
				return nil, fmt.Errorf("%w: %s", ErrActionNotImplemented, k)
			}
		}

		return filterKinds(cfg.only, cfg.except), nil
	}

	var implemented []action.Kind
	for _, k := range action.Kinds() {
		if _, ok := handlerFor(controller, k); ok {
			implemented = append(implemented, k)
		}
	}
	if len(implemented) == 0 {
		return nil, ErrNoActions
	}

	kinds := filterKinds(implemented, cfg.except)
	if len(kinds) == 0 {
		return nil, ErrNoActions
	}

	return kinds, nil
}

func filterKinds(kinds []action.Kind, except map[action.Kind]bool) []action.Kind {
	if len(except) == 0 {
		return kinds
	}
	out := make([]action.Kind, 0, len(kinds))
	for _, k := range kinds {
		if !except[k] {
			out = append(out, k)
		}
	}

	return out
}

// handlerFor returns the controller method handling the given kind.
func handlerFor(controller any, kind action.Kind) (HandlerFunc, bool) {
	switch kind {
	case action.Index:
		if ctrl, ok := controller.(Indexer); ok {
			return ctrl.Index, true
		}
	case action.Show:
		if ctrl, ok := controller.(Shower); ok {
			return ctrl.Show, true
		}
	case action.New:
		if ctrl, ok := controller.(Newer); ok {
			return ctrl.New, true
		}
	case action.Create:
		if ctrl, ok := controller.(Creator); ok {
			return ctrl.Create, true
		}
	case action.Edit:
		if ctrl, ok := controller.(Editor); ok {
			return ctrl.Edit, true
		}
	case action.Update:
		if ctrl, ok := controller.(Updater); ok {
			return ctrl.Update, true
		}
	case action.Delete:
		if ctrl, ok := controller.(Deleter); ok {
			return ctrl.Delete, true
		}
	}

	return nil, false
}
