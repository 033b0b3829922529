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
	"bufio"
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/updatecenter/ucredirect/pkg/errors"
	"github.com/updatecenter/ucredirect/pkg/router"
	"github.com/updatecenter/ucredirect/pkg/serializer"
)

// FileLoader reads a rule table from a single file. Files ending in .json, .yaml
// or .yml hold a RuleSet document; anything else is read as a versions list.
type FileLoader struct {
	Path string
}

// Load implements Loader.
func (l *FileLoader) Load(ctx context.Context) (*RuleSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(l.Path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "rules file not found", err,
				map[string]any{"path": l.Path})
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to stat rules file", err)
	}

	if serializer.FormatFromPath(l.Path).IsUnknown() {
		return l.loadList()
	}

	set, err := serializer.FromFile[RuleSet](l.Path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to parse rules file", err,
			map[string]any{"path": l.Path})
	}
	if set.Metadata == nil {
		set.Metadata = make(map[string]string)
	}
	set.Metadata["source"] = SourceFile
	set.Metadata["path"] = l.Path
	return set, nil
}

func (l *FileLoader) loadList() (*RuleSet, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to open versions list", err)
	}
	defer f.Close()

	table, err := ParseVersionList(f)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to read versions list", err,
			map[string]any{"path": l.Path})
	}

	set := NewRuleSet(SourceList, table)
	set.Metadata["path"] = l.Path
	return set, nil
}

// ParseVersionList reads one threshold per line. Blank lines and lines starting
// with '#' are skipped. Each threshold is its own bucket.
func ParseVersionList(r io.Reader) (router.Table, error) {
	table := router.Table{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		table = append(table, router.Rule{Threshold: line, Bucket: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return table, nil
}
