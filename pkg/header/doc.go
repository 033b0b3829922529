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

// Package header provides the common document header for ucredirect files and
// command output.
//
// Rule set files and serialized routing results carry a Kubernetes-style header:
//
//	kind: RuleSet
//	apiVersion: ucredirect.updatecenter.io/v1
//	metadata:
//	  source: marker
//
// Build one with functional options:
//
//	h := header.New(
//	    header.WithKind(header.KindRuleSet),
//	    header.WithAPIVersion(defaults.RulesAPIVersion),
//	    header.WithMetadata("source", "marker"),
//	)
package header
