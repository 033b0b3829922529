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

package version

import (
	"testing"
)

// FuzzParse checks that lenient parsing never panics and that comparison stays
// antisymmetric and reflexive for arbitrary input.
func FuzzParse(f *testing.F) {
	f.Add("1.2.3", "1.2")
	f.Add("1.580.1-SNAPSHOT", "1.580.1")
	f.Add("", "0")
	f.Add(".", "..")
	f.Add("1..2", "1.0.2")
	f.Add("a.b.c", "0")
	f.Add("-1", "1-")
	f.Add("   1.2", "1.2   ")
	f.Add("99999999999999999999", "1")
	f.Add("SNAPSHOT", "-SNAPSHOT")

	f.Fuzz(func(t *testing.T, lhs, rhs string) {
		l := Parse(lhs)
		r := Parse(rhs)

		if got := l.Compare(l); got != 0 {
			t.Errorf("Compare(%q, %q) = %d, want 0", lhs, lhs, got)
		}
		if a, b := l.Compare(r), r.Compare(l); a != -b {
			t.Errorf("Compare not antisymmetric for %q, %q: %d vs %d", lhs, rhs, a, b)
		}

		// String output must parse back to an equal vector.
		if !Parse(l.String()).Equals(l) {
			t.Errorf("round-trip mismatch for %q via %q", lhs, l.String())
		}

		// Strict parsing must agree with lenient parsing whenever it succeeds.
		if sv, err := ParseStrict(lhs); err == nil && !sv.Equals(l) {
			t.Errorf("ParseStrict(%q) = %v, Parse = %v", lhs, sv, l)
		}
	})
}
