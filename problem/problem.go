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

// Package problem formats HTTP errors as RFC 9457 Problem Details.
//
// The router uses this package for its default 404/405 responses and for
// Context.Problem; it is equally usable standalone:
//
//	formatter := problem.NewFormatter("https://api.example.com/problems")
//	_ = formatter.Write(w, req, http.StatusNotFound, errors.New("no such user"))
package problem

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ContentType is the media type for problem detail responses.
const ContentType = "application/problem+json"

// Detail is an RFC 9457 problem detail. Extensions are marshaled inline
// alongside the standard fields; reserved field names in Extensions are
// ignored to keep the standard members authoritative.
type Detail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"-"`
}

// MarshalJSON merges extension members into the standard problem object.
func (d Detail) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"type":   d.Type,
		"title":  d.Title,
		"status": d.Status,
	}
	if d.Detail != "" {
		m["detail"] = d.Detail
	}
	if d.Instance != "" {
		m["instance"] = d.Instance
	}
	for k, v := range d.Extensions {
		switch k {
		case "type", "title", "status", "detail", "instance":
		default:
			m[k] = v
		}
	}

	return json.Marshal(m)
}

// Formatter builds problem details for errors surfaced at the HTTP boundary.
type Formatter struct {
	// BaseURL is prepended to problem type slugs to form full type URIs.
	// Empty BaseURL produces "about:blank" types.
	BaseURL string

	// TypeResolver overrides the problem type URI for an error.
	// When nil, the type is derived from the status code slug.
	TypeResolver func(err error) string
}

// NewFormatter returns a Formatter rooted at baseURL.
func NewFormatter(baseURL string) *Formatter {
	return &Formatter{BaseURL: strings.TrimSuffix(baseURL, "/")}
}

// Format builds the problem detail for an error with the given status.
// A nil error produces a detail carrying only the status metadata.
func (f *Formatter) Format(req *http.Request, status int, err error) Detail {
	d := Detail{
		Type:   f.typeURI(status, err),
		Title:  http.StatusText(status),
		Status: status,
	}
	if err != nil {
		d.Detail = err.Error()
	}
	if req != nil && req.URL != nil {
		d.Instance = req.URL.Path
	}

	return d
}

// Write formats the error and writes it as an application/problem+json
// response with the given status code.
func (f *Formatter) Write(w http.ResponseWriter, req *http.Request, status int, err error) error {
	d := f.Format(req, status, err)

	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(d)
}

func (f *Formatter) typeURI(status int, err error) string {
	if f.TypeResolver != nil && err != nil {
		if uri := f.TypeResolver(err); uri != "" {
			return uri
		}
	}
	if f.BaseURL == "" {
		return "about:blank"
	}

	return f.BaseURL + "/" + statusSlug(status)
}

// statusSlug converts a status text to a URI slug: 404 -> "not-found".
func statusSlug(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "error"
	}

	return strings.ReplaceAll(strings.ToLower(text), " ", "-")
}
