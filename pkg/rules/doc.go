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

// Package rules loads the ordered threshold table a router resolves against.
//
// Two sources are supported:
//
//   - Marker directories: every bucket directory under a root holds a marker file
//     (cap.txt by default) naming the highest release line it serves. Markers are
//     discovered with a glob and ordered by path.
//   - Rules files: a YAML or JSON RuleSet document, or a plain versions list with
//     one threshold per line where each threshold is also its bucket.
//
// Usage:
//
//	loader, err := rules.NewLoader(rules.Config{Dir: "/srv/updates"})
//	if err != nil {
//	    return err
//	}
//	set, err := rules.Load(ctx, loader)
//	if err != nil {
//	    return err
//	}
//	r := router.New(set.Rules, router.WithFallback(set.FallbackOr(defaults.FallbackBucket)))
package rules
