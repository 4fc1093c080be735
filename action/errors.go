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

import "errors"

var (
	// ErrUnrecognizedActionKind indicates that a name's terminal segment is not
	// one of the seven recognized action kinds. This is a definition-time error:
	// resolution cannot proceed and no route may be registered for the name.
	ErrUnrecognizedActionKind = errors.New("unrecognized action kind")

	// ErrEmptyName indicates that a name contains no segments.
	ErrEmptyName = errors.New("action name must not be empty")

	// ErrMissingResource indicates that a name has a kind but no resource segment.
	ErrMissingResource = errors.New("action name must contain a resource segment")

	// ErrMissingParent indicates that nested resolution was requested for a name
	// with no segment ahead of the resource to act as the parent.
	ErrMissingParent = errors.New("nested resolution requires a parent segment")

	// ErrInvalidSegment indicates that a name segment is empty or contains
	// characters outside the identifier set.
	ErrInvalidSegment = errors.New("invalid name segment")
)
