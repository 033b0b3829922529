// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package redirect

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/updatecenter/ucredirect/pkg/defaults"
	"github.com/updatecenter/ucredirect/pkg/errors"
	"github.com/updatecenter/ucredirect/pkg/header"
	"github.com/updatecenter/ucredirect/pkg/router"
	"github.com/updatecenter/ucredirect/pkg/version"
)

// Query parameter names read by RequestFromQuery.
const (
	ParamVersion = "version"
	ParamPath    = "path"
)

// Hosts holds the two redirect host prefixes.
type Hosts struct {
	Secure string `json:"secure" yaml:"secure"`
	Plain  string `json:"plain" yaml:"plain"`
}

// DefaultHosts returns the update site and mirror network prefixes.
func DefaultHosts() Hosts {
	return Hosts{
		Secure: defaults.SecureHost,
		Plain:  defaults.PlainHost,
	}
}

// For returns the prefix matching the request transport.
func (h Hosts) For(secure bool) string {
	if secure {
		return h.Secure
	}
	return h.Plain
}

// Request is the routing input taken from a client request.
type Request struct {
	Version string `json:"version" yaml:"version"`
	Path    string `json:"path" yaml:"path"`
	Secure  bool   `json:"secure" yaml:"secure"`
}

// RequestFromQuery builds a Request from URL query values. Missing parameters
// are left empty, matching how the redirect endpoint has always treated them.
func RequestFromQuery(values url.Values, secure bool) Request {
	return Request{
		Version: values.Get(ParamVersion),
		Path:    values.Get(ParamPath),
		Secure:  secure,
	}
}

// Location joins host, bucket and path into a redirect target. The host is
// normalized to end with exactly one slash and leading slashes on path are
// dropped; the path is otherwise passed through untouched.
func Location(host, bucket, path string) string {
	return strings.TrimRight(host, "/") + "/" + bucket + "/" + strings.TrimLeft(path, "/")
}

// Resolution records one routing decision.
type Resolution struct {
	ID       string `json:"id" yaml:"id"`
	Version  string `json:"version" yaml:"version"`
	Bucket   string `json:"bucket" yaml:"bucket"`
	Matched  bool   `json:"matched" yaml:"matched"`
	Location string `json:"location" yaml:"location"`
}

// Resolutions is a batch of Resolution records with a document header.
type Resolutions struct {
	header.Header `json:",inline" yaml:",inline"`

	Items []Resolution `json:"items" yaml:"items"`
}

// NewResolutions wraps items in a Resolutions document.
func NewResolutions(items []Resolution) *Resolutions {
	return &Resolutions{
		Header: *header.New(
			header.WithKind(header.KindResolutions),
			header.WithAPIVersion(defaults.RulesAPIVersion),
		),
		Items: items,
	}
}

// TableHeader implements serializer.Tabular.
func (r *Resolutions) TableHeader() []string {
	return []string{"VERSION", "BUCKET", "MATCHED", "LOCATION"}
}

// TableRows implements serializer.Tabular.
func (r *Resolutions) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Items))
	for _, it := range r.Items {
		rows = append(rows, []string{it.Version, it.Bucket, strconv.FormatBool(it.Matched), it.Location})
	}
	return rows
}

// Resolver routes requests and builds their redirect targets.
type Resolver struct {
	router *router.Router
	hosts  Hosts
	strict bool
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithStrictVersions makes Resolve reject versions that only parse leniently.
func WithStrictVersions(strict bool) ResolverOption {
	return func(r *Resolver) {
		r.strict = strict
	}
}

// NewResolver creates a Resolver over r. Empty host prefixes fall back to
// DefaultHosts.
func NewResolver(r *router.Router, hosts Hosts, opts ...ResolverOption) *Resolver {
	def := DefaultHosts()
	if hosts.Secure == "" {
		hosts.Secure = def.Secure
	}
	if hosts.Plain == "" {
		hosts.Plain = def.Plain
	}

	res := &Resolver{router: r, hosts: hosts}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Resolve routes req and returns its Resolution. It only fails in strict mode,
// with an INVALID_REQUEST error for versions that do not parse strictly.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Resolution, error) {
	var v version.Vector
	if r.strict {
		var err error
		v, err = version.ParseStrict(req.Version)
		if err != nil {
			return Resolution{}, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid version", err,
				map[string]any{"version": req.Version})
		}
	} else {
		v = version.Parse(req.Version)
	}

	result := r.router.RouteVector(req.Version, v)
	res := Resolution{
		ID:       uuid.New().String(),
		Version:  req.Version,
		Bucket:   result.Bucket,
		Matched:  result.Matched,
		Location: Location(r.hosts.For(req.Secure), result.Bucket, req.Path),
	}

	slog.DebugContext(ctx, "version resolved",
		"id", res.ID,
		"version", res.Version,
		"bucket", res.Bucket,
		"matched", res.Matched,
		"location", res.Location)

	return res, nil
}
