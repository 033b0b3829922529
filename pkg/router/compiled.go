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

package router

import (
	"log/slog"

	"github.com/updatecenter/ucredirect/pkg/defaults"
	"github.com/updatecenter/ucredirect/pkg/version"
)

// Observer is notified of every routing decision.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveRoute(input string, result Result)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(input string, result Result)

// ObserveRoute calls f(input, result).
func (f ObserverFunc) ObserveRoute(input string, result Result) {
	f(input, result)
}

// Option is a functional option for configuring Router instances.
type Option func(*Router)

// WithFallback sets the bucket returned when no rule matches.
func WithFallback(fallback string) Option {
	return func(r *Router) {
		r.fallback = fallback
	}
}

// WithObserver registers an observer for routing decisions.
func WithObserver(o Observer) Option {
	return func(r *Router) {
		r.observer = o
	}
}

// Router routes versions against a table fixed at construction time.
// It holds no mutable state and is safe for concurrent use.
type Router struct {
	rules    Table
	ceilings []version.Vector
	fallback string
	observer Observer
}

// New creates a Router over a copy of rules. The fallback defaults to
// defaults.FallbackBucket.
func New(rules Table, opts ...Option) *Router {
	r := &Router{
		rules:    rules.Clone(),
		fallback: defaults.FallbackBucket,
	}

	for _, opt := range opts {
		opt(r)
	}

	// Ceilings are parsed once so Route only parses the input.
	r.ceilings = make([]version.Vector, len(r.rules))
	for i, rule := range r.rules {
		r.ceilings[i] = rule.Ceiling()
	}

	slog.Debug("router initialized",
		"rules", len(r.rules),
		"fallback", r.fallback)

	return r
}

// Rules returns a copy of the routing table.
func (r *Router) Rules() Table {
	return r.rules.Clone()
}

// Fallback returns the bucket used when no rule matches.
func (r *Router) Fallback() string {
	return r.fallback
}

// Route resolves v against the router's table.
func (r *Router) Route(v string) Result {
	return r.RouteVector(v, version.Parse(v))
}

// RouteVector resolves an already parsed version. The input string is only
// passed through to the observer.
func (r *Router) RouteVector(input string, v version.Vector) Result {
	res := Result{Bucket: r.fallback, Index: -1}
	for i, ceiling := range r.ceilings {
		if v.Compare(ceiling) <= 0 {
			res = Result{Bucket: r.rules[i].Bucket, Matched: true, Index: i}
			break
		}
	}

	if r.observer != nil {
		r.observer.ObserveRoute(input, res)
	}
	return res
}
