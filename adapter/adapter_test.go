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

package adapter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resto-dev/resto"
	"github.com/resto-dev/resto/action"
)

func TestConfigKinds(t *testing.T) {
	implements := func(kinds ...action.Kind) func(action.Kind) bool {
		set := make(map[action.Kind]bool, len(kinds))
		for _, k := range kinds {
			set[k] = true
		}

		return func(k action.Kind) bool { return set[k] }
	}

	t.Run("implemented kinds by default", func(t *testing.T) {
		var cfg Config
		kinds, err := cfg.Kinds(implements(action.Index, action.Show))
		require.NoError(t, err)
		assert.Equal(t, []action.Kind{action.Index, action.Show}, kinds)
	})

	t.Run("only requires implementation", func(t *testing.T) {
		cfg := Config{Only: []action.Kind{action.Index, action.Delete}}
		_, err := cfg.Kinds(implements(action.Index))
		assert.ErrorIs(t, err, resto.ErrActionNotImplemented)
	})

	t.Run("except filters", func(t *testing.T) {
		cfg := Config{Except: map[action.Kind]bool{action.Delete: true}}
		kinds, err := cfg.Kinds(implements(action.Index, action.Delete))
		require.NoError(t, err)
		assert.Equal(t, []action.Kind{action.Index}, kinds)
	})

	t.Run("nothing implemented", func(t *testing.T) {
		var cfg Config
		_, err := cfg.Kinds(implements())
		assert.ErrorIs(t, err, resto.ErrNoActions)
	})
}

func TestConfigMethods(t *testing.T) {
	binding := action.Binding{
		Name:    action.MustParseName("Users.Update"),
		Pattern: action.Pattern{Method: "PUT", Path: "/users/:id"},
	}

	var cfg Config
	assert.Equal(t, []string{"PUT"}, cfg.Methods(binding))

	cfg.AllowPatch = true
	assert.Equal(t, []string{"PUT", "PATCH"}, cfg.Methods(binding))
}

func TestPathSet(t *testing.T) {
	ps := NewPathSet()
	require.NoError(t, ps.Add("projects.users.show", action.Pattern{
		Method: "GET",
		Path:   "/projects/:project_id/users/:id",
	}))

	t.Run("duplicate name", func(t *testing.T) {
		err := ps.Add("projects.users.show", action.Pattern{Method: "GET", Path: "/x"})
		assert.ErrorIs(t, err, resto.ErrDuplicateRouteName)
	})

	t.Run("path for", func(t *testing.T) {
		path, err := ps.PathFor("projects.users.show", "7", "42")
		require.NoError(t, err)
		assert.Equal(t, "/projects/7/users/42", path)
	})

	t.Run("values are escaped", func(t *testing.T) {
		path, err := ps.PathFor("projects.users.show", "a/b", "42")
		require.NoError(t, err)
		assert.Equal(t, "/projects/a%2Fb/users/42", path)
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := ps.PathFor("projects.users.show", "7")
		assert.ErrorIs(t, err, resto.ErrMissingRouteParameter)
	})

	t.Run("extra value", func(t *testing.T) {
		_, err := ps.PathFor("projects.users.show", "7", "42", "9")
		assert.ErrorIs(t, err, resto.ErrTooManyRouteParameters)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ps.PathFor("users.index")
		assert.ErrorIs(t, err, resto.ErrRouteNotFound)
	})

	t.Run("url for", func(t *testing.T) {
		u, err := ps.URLFor("projects.users.show",
			map[string]string{"project_id": "7", "id": "42"},
			url.Values{"expand": {"profile"}},
		)
		require.NoError(t, err)
		assert.Equal(t, "/projects/7/users/42?expand=profile", u)
	})

	t.Run("url for missing param", func(t *testing.T) {
		_, err := ps.URLFor("projects.users.show", map[string]string{"id": "42"}, nil)
		assert.ErrorIs(t, err, resto.ErrMissingRouteParameter)
	})

	t.Run("names sorted", func(t *testing.T) {
		require.NoError(t, ps.Add("a.index", action.Pattern{Method: "GET", Path: "/a"}))
		assert.Equal(t, []string{"a.index", "projects.users.show"}, ps.Names())
	})
}
