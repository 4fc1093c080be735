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

	"github.com/resto-dev/resto/action"
	"github.com/resto-dev/resto/manifest"
)

// ControllerMap associates manifest resource names with their controllers.
// Keys are declaration names as written in the manifest ("Users",
// "Projects::Users").
type ControllerMap map[string]any

// MountManifest registers every resource a manifest declares, looking up
// controllers by declaration name. Manifest kinds act like Only: a controller
// missing a declared action is a definition-time error.
//
// Example:
//
//	m, err := manifest.Load("routes.yaml")
//	if err != nil { ... }
//	err = r.MountManifest(m, resto.ControllerMap{
//	    "Users":           &usersController{},
//	    "Projects::Users": &projectUsersController{},
//	})
func (r *Router) MountManifest(m *manifest.Manifest, controllers ControllerMap) error {
	resources, err := m.Resolve()
	if err != nil {
		return err
	}

	for _, res := range resources {
		controller, ok := controllers[res.Name]
		if !ok {
			return fmt.Errorf("mount manifest: no controller for resource %q", res.Name)
		}

		opts := []ResourceOption{Only(res.Kinds...)}
		if res.Mode == action.Nested {
			opts = append(opts, Nested())
		}

		if err := r.Resources(res.Base, controller, opts...); err != nil {
			return fmt.Errorf("mount manifest: %w", err)
		}
	}

	return nil
}
