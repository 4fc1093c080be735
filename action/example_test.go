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

package action_test

import (
	"fmt"

	"github.com/resto-dev/resto/action"
)

// ExampleResolve demonstrates plain resolution of a namespaced action name.
func ExampleResolve() {
	name := action.MustParseName("Api::V1::Users::Show")

	pattern, err := action.Resolve(name, action.Plain)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(pattern)
	// Output: GET /api/v1/users/:id
}

// ExampleResolve_nested demonstrates nested resolution: the parent resource
// contributes a :project_id parameter ahead of the resource segment.
func ExampleResolve_nested() {
	name := action.MustParseName("Projects::Users::Update")

	pattern, err := action.Resolve(name, action.Nested)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(pattern)
	// Output: PUT /projects/:project_id/users/:id
}

// ExampleExpand demonstrates expanding a resource into bindings for a subset
// of action kinds.
func ExampleExpand() {
	bindings, err := action.Expand("Users", []action.Kind{action.Index, action.Create}, action.Plain)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, b := range bindings {
		fmt.Printf("%s %s → %s\n", b.Pattern.Method, b.Pattern.Path, b.Name.RouteName())
	}
	// Output:
	// GET /users → users.index
	// POST /users → users.create
}

// ExampleParseName demonstrates the definition-time failure for a terminal
// segment outside the recognized action kinds.
func ExampleParseName_unrecognizedKind() {
	_, err := action.ParseName("Users::Destroy")
	fmt.Println(err)
	// Output: parse "Users::Destroy": unrecognized action kind: "Destroy"
}
