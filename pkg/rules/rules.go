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

package rules

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/updatecenter/ucredirect/pkg/defaults"
	"github.com/updatecenter/ucredirect/pkg/errors"
	"github.com/updatecenter/ucredirect/pkg/header"
	"github.com/updatecenter/ucredirect/pkg/router"
	"github.com/updatecenter/ucredirect/pkg/version"
)

// Source names recorded in RuleSet metadata.
const (
	SourceMarker = "marker"
	SourceFile   = "file"
	SourceList   = "list"
)

// RuleSet is an ordered rule table with its document header.
type RuleSet struct {
	header.Header `json:",inline" yaml:",inline"`

	// Fallback overrides the default bucket when set.
	Fallback string `json:"fallback,omitempty" yaml:"fallback,omitempty"`

	// Rules is the ordered threshold table; the first covering rule wins.
	Rules router.Table `json:"rules" yaml:"rules"`
}

// NewRuleSet creates a RuleSet with the RuleSet kind and current API version.
func NewRuleSet(source string, table router.Table) *RuleSet {
	return &RuleSet{
		Header: *header.New(
			header.WithKind(header.KindRuleSet),
			header.WithAPIVersion(defaults.RulesAPIVersion),
			header.WithMetadata("source", source),
		),
		Rules: table,
	}
}

// FallbackOr returns the set's fallback, or def when the set does not name one.
func (s *RuleSet) FallbackOr(def string) string {
	if s == nil || s.Fallback == "" {
		return def
	}
	return s.Fallback
}

// TableHeader implements serializer.Tabular.
func (s *RuleSet) TableHeader() []string {
	return []string{"#", "THRESHOLD", "CEILING", "BUCKET"}
}

// TableRows implements serializer.Tabular.
func (s *RuleSet) TableRows() [][]string {
	rows := make([][]string, 0, len(s.Rules))
	for i, r := range s.Rules {
		rows = append(rows, []string{fmt.Sprint(i), r.Threshold, r.Ceiling().String(), r.Bucket})
	}
	return rows
}

// Validate checks that the document kind is correct and that every rule names
// both a threshold and a bucket. Thresholds that only parse leniently are
// logged but accepted.
func (s *RuleSet) Validate() error {
	if s.Kind != "" && s.Kind != header.KindRuleSet {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unexpected document kind %q", s.Kind),
			map[string]any{"expected": header.KindRuleSet.String()})
	}

	for i, r := range s.Rules {
		if r.Threshold == "" {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest, "rule has an empty threshold",
				map[string]any{"index": i, "bucket": r.Bucket})
		}
		if r.Bucket == "" {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest, "rule has an empty bucket",
				map[string]any{"index": i, "threshold": r.Threshold})
		}
		if _, err := version.ParseStrict(r.Threshold); err != nil {
			slog.Warn("rule threshold is not a strict version",
				"index", i,
				"threshold", r.Threshold,
				"error", err)
		}
	}
	return nil
}

// Loader produces a RuleSet from some configuration source.
type Loader interface {
	Load(ctx context.Context) (*RuleSet, error)
}

// Config selects a Loader. File takes precedence over Dir.
type Config struct {
	// Dir is the root of the marker directories.
	Dir string

	// Pattern is the marker glob relative to Dir, defaults.MarkerPattern when empty.
	Pattern string

	// File is a RuleSet document or versions list.
	File string
}

// NewLoader returns the Loader described by cfg.
func NewLoader(cfg Config) (Loader, error) {
	switch {
	case cfg.File != "":
		return &FileLoader{Path: cfg.File}, nil
	case cfg.Dir != "":
		return &MarkerLoader{Root: cfg.Dir, Pattern: cfg.Pattern}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			"either a rules file or a rules directory is required")
	}
}

// Load runs l bounded by defaults.RulesLoadTimeout and validates the result.
func Load(ctx context.Context, l Loader) (*RuleSet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.RulesLoadTimeout)
	defer cancel()

	set, err := l.Load(ctx)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "loading rules timed out", err)
		}
		return nil, err
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	slog.Info("rules loaded",
		"source", set.Metadata["source"],
		"rules", len(set.Rules))

	return set, nil
}
