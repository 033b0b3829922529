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

// Package version turns dotted/dashed release strings such as "1.580.1-SNAPSHOT"
// into comparable integer vectors.
//
// # Parsing
//
// A version string is split on every '.' and '-' character. Each token becomes one
// component:
//
//   - "SNAPSHOT" becomes -1, so snapshots sort below the release they precede
//   - anything else is read by its leading numeric prefix ("12abc" is 12)
//   - tokens with no numeric prefix ("x", "") become 0
//
// Parse never fails. ParseStrict applies the same rules but reports tokens that
// would silently degrade to zero:
//
//	v := version.Parse("1.580.1-SNAPSHOT") // [1 580 1 -1]
//	_, err := version.ParseStrict("1.x.3") // errors.Is(err, version.ErrNonNumeric)
//
// # Comparison
//
// Vectors compare element by element up to the longer length, treating missing
// components as 0:
//
//	version.CompareStrings("1.2", "1.2.0")          // 0
//	version.CompareStrings("1.2-SNAPSHOT", "1.2")   // -1
//	version.CompareStrings("1.600.999", "1.601")    // -1
package version
