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

package defaults

import "time"

// Routing defaults.
const (
	// FallbackBucket is the bucket served when no threshold rule matches.
	FallbackBucket = "current"

	// ThresholdSentinel is appended to a rule threshold so the rule captures every
	// point release of its line ("1.600" covers up to "1.600.999").
	ThresholdSentinel = ".999"
)

// Rule discovery defaults.
const (
	// MarkerFileName is the per-directory file naming the release line a bucket serves.
	MarkerFileName = "cap.txt"

	// MarkerPattern is the glob, relative to the rules root, that finds marker files.
	MarkerPattern = "*/" + MarkerFileName

	// MarkerReadConcurrency bounds concurrent marker file reads.
	MarkerReadConcurrency = 8

	// RulesAPIVersion is the schema version written to rule set documents.
	RulesAPIVersion = "ucredirect.updatecenter.io/v1"
)

// Redirect hosts.
const (
	// SecureHost prefixes redirect targets for requests that arrived over TLS.
	SecureHost = "https://updates.jenkins-ci.org/"

	// PlainHost prefixes redirect targets for plain HTTP requests.
	PlainHost = "http://mirrors.jenkins-ci.org/"
)

// Timeouts.
const (
	// RulesLoadTimeout is the maximum duration for loading a rule table.
	RulesLoadTimeout = 30 * time.Second
)
