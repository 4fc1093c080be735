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

import "errors"

var (
	// ErrRouteNotFound indicates that no route is registered under the given name.
	ErrRouteNotFound = errors.New("route not found")

	// ErrDuplicateRouteName indicates that a route name is already taken.
	ErrDuplicateRouteName = errors.New("duplicate route name")

	// ErrDuplicateRoute indicates that a method/path pair is already registered.
	ErrDuplicateRoute = errors.New("duplicate route")

	// ErrMissingRouteParameter indicates that a required parameter for the
	// route is missing when building a path.
	ErrMissingRouteParameter = errors.New("missing required parameter")

	// ErrTooManyRouteParameters indicates that more positional values were
	// supplied than the route has parameters.
	ErrTooManyRouteParameters = errors.New("too many parameter values")

	// ErrRoutesFrozen indicates that registration was attempted after the
	// router started serving requests.
	ErrRoutesFrozen = errors.New("routes are frozen")

	// ErrParamConflict indicates that two routes declare different parameter
	// names at the same path position.
	ErrParamConflict = errors.New("conflicting parameter names at same position")

	// ErrNoActions indicates that a controller implements none of the seven
	// action interfaces.
	ErrNoActions = errors.New("controller implements no actions")

	// ErrActionNotImplemented indicates that an explicitly requested action
	// kind has no matching method on the controller.
	ErrActionNotImplemented = errors.New("controller does not implement requested action")
)
