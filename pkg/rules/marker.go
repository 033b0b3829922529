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
	"io/fs"
	"log/slog"
	"os"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/updatecenter/ucredirect/pkg/defaults"
	"github.com/updatecenter/ucredirect/pkg/errors"
	"github.com/updatecenter/ucredirect/pkg/router"
)

// markerCutset is the trailing whitespace stripped from marker contents.
const markerCutset = " \t\n\r\x00\v"

// MarkerLoader builds a table from marker files found under Root. Each match of
// Pattern becomes one rule: the file contents are the threshold and the match's
// directory is the bucket. Rules are ordered by match path.
type MarkerLoader struct {
	Root        string
	Pattern     string
	Concurrency int

	// FS overrides the filesystem rooted at Root, mainly for tests.
	FS fs.FS
}

// Load implements Loader.
func (l *MarkerLoader) Load(ctx context.Context) (*RuleSet, error) {
	pattern := l.Pattern
	if pattern == "" {
		pattern = defaults.MarkerPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "invalid marker pattern",
			map[string]any{"pattern": pattern})
	}

	fsys := l.FS
	if fsys == nil {
		info, err := os.Stat(l.Root)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "rules directory not found", err,
					map[string]any{"root": l.Root})
			}
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to stat rules directory", err)
		}
		if !info.IsDir() {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "rules root is not a directory",
				map[string]any{"root": l.Root})
		}
		fsys = os.DirFS(l.Root)
	}

	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to glob marker files", err,
			map[string]any{"root": l.Root, "pattern": pattern})
	}
	// Like shell globbing, wildcards never match dot entries unless the
	// pattern names one.
	if !isHidden(pattern) {
		matches = slices.DeleteFunc(matches, isHidden)
	}
	sort.Strings(matches)

	slog.Debug("marker files discovered",
		"root", l.Root,
		"pattern", pattern,
		"count", len(matches))

	limit := l.Concurrency
	if limit <= 0 {
		limit = defaults.MarkerReadConcurrency
	}

	table := make(router.Table, len(matches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, match := range matches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			threshold, err := readMarker(fsys, match)
			if err != nil {
				return err
			}
			table[i] = router.Rule{Threshold: threshold, Bucket: path.Dir(match)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := NewRuleSet(SourceMarker, table)
	set.Metadata["root"] = l.Root
	set.Metadata["pattern"] = pattern
	return set, nil
}

// readMarker returns the trimmed contents of one marker file.
func readMarker(fsys fs.FS, name string) (string, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInternal, "failed to read marker file", err,
			map[string]any{"path": name})
	}

	threshold := strings.TrimRight(string(b), markerCutset)
	if threshold == "" {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "marker file is empty",
			map[string]any{"path": name})
	}
	return threshold, nil
}

// isHidden reports whether any segment of p starts with a dot.
func isHidden(p string) bool {
	for seg := range strings.SplitSeq(p, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
