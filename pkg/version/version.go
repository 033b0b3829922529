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
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Snapshot is the token that marks a pre-release build of the preceding version.
const Snapshot = "SNAPSHOT"

// SnapshotComponent is the component value a Snapshot token parses to.
const SnapshotComponent = -1

// Error types for strict version parsing failures
var (
	ErrEmptyVersion   = errors.New("version string is empty")
	ErrEmptyComponent = errors.New("version component is empty")
	ErrNonNumeric     = errors.New("version component is not numeric")
	ErrOutOfRange     = errors.New("version component is out of range")
)

// Vector is an immutable ordered sequence of version components.
// The zero value is an empty vector, which compares equal to "0".
type Vector struct {
	parts []int
}

// NewVector creates a Vector from the given components.
// The slice is copied, later changes to it do not affect the Vector.
func NewVector(components ...int) Vector {
	if len(components) == 0 {
		return Vector{}
	}
	parts := make([]int, len(components))
	copy(parts, components)
	return Vector{parts: parts}
}

// Len returns the number of components.
func (v Vector) Len() int {
	return len(v.parts)
}

// At returns the component at index i, or 0 when i is past the end.
// Out of range indexes read as zero to match the padding used by Compare.
func (v Vector) At(i int) int {
	if i < 0 || i >= len(v.parts) {
		return 0
	}
	return v.parts[i]
}

// Components returns a copy of the vector components.
func (v Vector) Components() []int {
	out := make([]int, len(v.parts))
	copy(out, v.parts)
	return out
}

// IsSnapshot reports whether any component is a SNAPSHOT marker.
func (v Vector) IsSnapshot() bool {
	for _, p := range v.parts {
		if p == SnapshotComponent {
			return true
		}
	}
	return false
}

// String renders the vector with '.' separators and SNAPSHOT markers restored.
// For vectors returned by Parse, Parse(v.String()) yields an equal vector.
// Other negative components, only reachable through NewVector, do not survive
// the round trip since '-' is a separator.
func (v Vector) String() string {
	var sb strings.Builder
	for i, p := range v.parts {
		if i > 0 {
			if p == SnapshotComponent {
				sb.WriteByte('-')
			} else {
				sb.WriteByte('.')
			}
		}
		if p == SnapshotComponent {
			sb.WriteString(Snapshot)
			continue
		}
		sb.WriteString(strconv.Itoa(p))
	}
	return sb.String()
}

// Compare returns -1, 0 or 1 depending on whether v sorts before, equal to or
// after other. Missing components on the shorter side count as 0.
func (v Vector) Compare(other Vector) int {
	n := max(len(v.parts), len(other.parts))
	for i := 0; i < n; i++ {
		l, r := v.At(i), other.At(i)
		if l < r {
			return -1
		}
		if l > r {
			return 1
		}
	}
	return 0
}

// Equals reports whether v and other compare equal ("1.2" equals "1.2.0").
func (v Vector) Equals(other Vector) bool {
	return v.Compare(other) == 0
}

// Less reports whether v sorts strictly before other.
func (v Vector) Less(other Vector) bool {
	return v.Compare(other) < 0
}

// Parse converts a version string into a Vector. It never fails: tokens without
// a leading number become 0, and an empty string yields an empty vector.
func Parse(s string) Vector {
	if s == "" {
		return Vector{}
	}
	tokens := split(s)
	parts := make([]int, len(tokens))
	for i, tok := range tokens {
		if tok == Snapshot {
			parts[i] = SnapshotComponent
			continue
		}
		parts[i] = leadingInt(tok)
	}
	return Vector{parts: parts}
}

// ParseStrict converts a version string into a Vector, returning an error for any
// input that Parse would silently degrade. SNAPSHOT tokens are accepted.
func ParseStrict(s string) (Vector, error) {
	if s == "" {
		return Vector{}, ErrEmptyVersion
	}
	tokens := split(s)
	parts := make([]int, len(tokens))
	for i, tok := range tokens {
		if tok == Snapshot {
			parts[i] = SnapshotComponent
			continue
		}
		if tok == "" {
			return Vector{}, fmt.Errorf("%w: position %d in %q", ErrEmptyComponent, i, s)
		}
		for j := 0; j < len(tok); j++ {
			if tok[j] < '0' || tok[j] > '9' {
				return Vector{}, fmt.Errorf("%w: %q", ErrNonNumeric, tok)
			}
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return Vector{}, fmt.Errorf("%w: %q", ErrOutOfRange, tok)
		}
		parts[i] = n
	}
	return Vector{parts: parts}, nil
}

// MustParseStrict parses a version string and panics if strict parsing fails.
// Only use this for hardcoded strings or in tests.
func MustParseStrict(s string) Vector {
	v, err := ParseStrict(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseStrict: %v", err))
	}
	return v
}

// CompareStrings parses both strings leniently and compares the results.
func CompareStrings(lhs, rhs string) int {
	return Parse(lhs).Compare(Parse(rhs))
}

// split cuts s at every '.' and '-', keeping empty tokens between adjacent separators.
func split(s string) []string {
	tokens := make([]string, 0, strings.Count(s, ".")+strings.Count(s, "-")+1)
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '.' || s[i] == '-' {
			tokens = append(tokens, s[start:i])
			start = i + 1
		}
	}
	return append(tokens, s[start:])
}

// leadingInt reads the integer prefix of tok: optional whitespace, an optional
// '+', then digits. Values past the int range saturate. A '-' never reaches here
// because it is a separator.
func leadingInt(tok string) int {
	i := 0
	for i < len(tok) && isSpace(tok[i]) {
		i++
	}
	if i < len(tok) && tok[i] == '+' {
		i++
	}

	n := 0
	for ; i < len(tok) && tok[i] >= '0' && tok[i] <= '9'; i++ {
		d := int(tok[i] - '0')
		if n > (math.MaxInt-d)/10 {
			return math.MaxInt
		}
		n = n*10 + d
	}
	return n
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
