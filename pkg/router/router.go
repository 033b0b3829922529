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

// Package router resolves a client version to the bucket serving its release line.
//
// A Table is an ordered list of threshold rules. Route walks the table and returns
// the bucket of the first rule whose threshold line covers the version, where a
// threshold "1.600" covers every version up to and including "1.600.999":
//
//	table := router.Table{
//	    {Threshold: "1.600", Bucket: "stable-1.600"},
//	    {Threshold: "2.000", Bucket: "stable-2.000"},
//	}
//	router.Route("1.580.1", table, "current").Bucket // "stable-1.600"
//	router.Route("3.0", table, "current").Bucket     // "current"
//
// Routing never fails: malformed versions degrade to zero components, and a version
// past every threshold routes to the fallback.
package router

import (
	"fmt"

	"github.com/updatecenter/ucredirect/pkg/defaults"
	"github.com/updatecenter/ucredirect/pkg/version"
)

// Rule maps a release line to the bucket serving it.
type Rule struct {
	// Threshold is the highest release line the bucket accepts, e.g. "1.600".
	Threshold string `json:"threshold" yaml:"threshold"`

	// Bucket identifies the destination, usually a mirror directory name.
	Bucket string `json:"bucket" yaml:"bucket"`
}

// String returns "threshold -> bucket".
func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.Threshold, r.Bucket)
}

// Ceiling returns the highest version the rule captures: the threshold with the
// sentinel component appended.
func (r Rule) Ceiling() version.Vector {
	return version.Parse(r.Threshold + defaults.ThresholdSentinel)
}

// Covers reports whether v falls at or below the rule's ceiling.
func (r Rule) Covers(v version.Vector) bool {
	return v.Compare(r.Ceiling()) <= 0
}

// Table is an ordered sequence of rules. Order is significant: the first rule
// covering a version wins.
type Table []Rule

// Clone returns a copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// Result is the outcome of routing one version.
type Result struct {
	// Bucket is the matched rule's bucket, or the fallback.
	Bucket string `json:"bucket" yaml:"bucket"`

	// Matched is false when no rule covered the version.
	Matched bool `json:"matched" yaml:"matched"`

	// Index is the position of the matched rule in the table, -1 for the fallback.
	Index int `json:"index" yaml:"index"`
}

// Route returns the bucket of the first rule in rules that covers v, or fallback
// when none does.
func Route(v string, rules Table, fallback string) Result {
	parsed := version.Parse(v)
	for i, rule := range rules {
		if rule.Covers(parsed) {
			return Result{Bucket: rule.Bucket, Matched: true, Index: i}
		}
	}
	return Result{Bucket: fallback, Index: -1}
}
