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

// Package cli implements the ucredirect command-line interface.
//
// # Commands
//
// route - Resolve versions to buckets and redirect locations:
//
//	ucredirect --rules-dir /srv/updates route --secure --path update-center.json 1.580.1
//
// Loads the routing rules, routes each version and prints a Resolutions
// document with the bucket, match flag and Location of every request.
//
// compare - Compare two versions:
//
//	ucredirect compare 1.2-SNAPSHOT 1.2
//
// parse - Print the components a version parses to:
//
//	ucredirect parse --strict 1.580.1
//
// rules - Print the loaded routing rules:
//
//	ucredirect --rules-file rules.yaml rules --format table
//
// # Rules Sources
//
// Rules come from --rules-file (a RuleSet document or a plain versions list)
// or, when no file is given, from marker files matched by --marker under
// --rules-dir. The fallback bucket is --fallback when set, then the document's
// fallback, then "current".
//
// # Environment Variables
//
//	LOG_LEVEL        Logging verbosity (debug, info, warn, error)
//	UCR_RULES_DIR    Default for --rules-dir
//	UCR_MARKER       Default for --marker
//	UCR_RULES_FILE   Default for --rules-file
//	UCR_FALLBACK     Default for --fallback
//	UCR_SECURE_HOST  Default for route --secure-host
//	UCR_PLAIN_HOST   Default for route --plain-host
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, rules loading, strict parse failure)
//	2  Context canceled or timeout
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/updatecenter/ucredirect/pkg/cli.version=1.0.0'"
package cli
