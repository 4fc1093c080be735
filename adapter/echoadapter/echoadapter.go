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

// Package echoadapter registers convention-named resources on an echo router.
//
// Controllers implement any subset of the seven action interfaces with echo's
// native handler signature; Resources resolves the routes and registers them
// on an *echo.Echo or *echo.Group. Path parameters use echo's :param syntax,
// which matches the resolved patterns directly. Registered routes carry their
// route name, so echo's own Reverse works alongside the binder's PathFor.
//
//	b := echoadapter.New(e)
//	if err := b.Resources("Projects::Users", &usersController{}, echoadapter.Nested()); err != nil { ... }
//	path, _ := b.PathFor("projects.users.index", "7") // "/projects/7/users"
package echoadapter

import (
	"fmt"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/resto-dev/resto/action"
	"github.com/resto-dev/resto/adapter"
)

// Controllers implement any subset of these with echo handlers.
type (
	// Indexer handles GET /<resource>.
	Indexer interface{ Index(echo.Context) error }
	// Shower handles GET /<resource>/:id.
	Shower interface{ Show(echo.Context) error }
	// Newer handles GET /<resource>/new.
	Newer interface{ New(echo.Context) error }
	// Creator handles POST /<resource>.
	Creator interface{ Create(echo.Context) error }
	// Editor handles GET /<resource>/:id/edit.
	Editor interface{ Edit(echo.Context) error }
	// Updater handles PUT /<resource>/:id.
	Updater interface{ Update(echo.Context) error }
	// Deleter handles DELETE /<resource>/:id.
	Deleter interface{ Delete(echo.Context) error }
)

// Registrar is the subset of echo's API the binder needs. *echo.Echo and
// *echo.Group both satisfy it.
type Registrar interface {
	Add(method, path string, handler echo.HandlerFunc, middleware ...echo.MiddlewareFunc) *echo.Route
}

// Option configures a Resources registration.
type Option func(*adapter.Config)

// Nested registers the resource nested under its parent segment.
func Nested() Option {
	return func(cfg *adapter.Config) { cfg.Mode = action.Nested }
}

// Only restricts registration to the given kinds.
func Only(kinds ...action.Kind) Option {
	return func(cfg *adapter.Config) { cfg.Only = kinds }
}

// Except registers every implemented action except the given kinds.
func Except(kinds ...action.Kind) Option {
	return func(cfg *adapter.Config) {
		if cfg.Except == nil {
			cfg.Except = make(map[action.Kind]bool, len(kinds))
		}
		for _, k := range kinds {
			cfg.Except[k] = true
		}
	}
}

// AllowPatch additionally registers PATCH alongside PUT for Update.
func AllowPatch() Option {
	return func(cfg *adapter.Config) { cfg.AllowPatch = true }
}

// Binder registers resources on an echo router and tracks route names for
// the path helpers.
type Binder struct {
	routes Registrar
	paths  *adapter.PathSet
}

// New returns a Binder for the given echo instance or group.
func New(r Registrar) *Binder {
	return &Binder{routes: r, paths: adapter.NewPathSet()}
}

// Resources registers routes for every action the controller implements.
// The base name is the namespace-qualified resource without a terminal kind.
// Nothing is registered when an error is returned.
func (b *Binder) Resources(base string, controller any, opts ...Option) error {
	var cfg adapter.Config
	for _, opt := range opts {
		opt(&cfg)
	}

	kinds, err := cfg.Kinds(func(k action.Kind) bool {
		_, ok := handlerFor(controller, k)

		return ok
	})
	if err != nil {
		return fmt.Errorf("resources %q: %w", base, err)
	}

	bindings, err := action.Expand(base, kinds, cfg.Mode)
	if err != nil {
		return err
	}

	type pending struct {
		binding action.Binding
		handler echo.HandlerFunc
	}
	regs := make([]pending, 0, len(bindings))
	for _, bd := range bindings {
		handler, ok := handlerFor(controller, bd.Name.Kind())
		if !ok {
			return fmt.Errorf("resources %q: missing %s handler", base, bd.Name.Kind())
		}
		regs = append(regs, pending{binding: bd, handler: handler})
	}

	for _, p := range regs {
		name := p.binding.Name.RouteName()
		if err := b.paths.Add(name, p.binding.Pattern); err != nil {
			return fmt.Errorf("resources %q: %w", base, err)
		}
		for i, method := range cfg.Methods(p.binding) {
			rt := b.routes.Add(method, p.binding.Pattern.Path, p.handler)
			// The PATCH alias shares the handler but not the name.
			if i == 0 {
				rt.Name = name
			}
		}
	}

	return nil
}

// MustResources is like Resources but panics on error.
func (b *Binder) MustResources(base string, controller any, opts ...Option) {
	if err := b.Resources(base, controller, opts...); err != nil {
		panic(fmt.Sprintf("echoadapter: %v", err))
	}
}

// PathFor builds the path for a named route from positional parameter values.
func (b *Binder) PathFor(name string, values ...string) (string, error) {
	return b.paths.PathFor(name, values...)
}

// URLFor builds the path for a named route from a parameter map plus an
// optional query string.
func (b *Binder) URLFor(name string, params map[string]string, query url.Values) (string, error) {
	return b.paths.URLFor(name, params, query)
}

// Paths exposes the underlying name-to-pattern set.
func (b *Binder) Paths() *adapter.PathSet { return b.paths }

func handlerFor(controller any, kind action.Kind) (echo.HandlerFunc, bool) {
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
