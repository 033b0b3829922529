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

package redirect

import (
	"context"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/updatecenter/ucredirect/pkg/errors"
	"github.com/updatecenter/ucredirect/pkg/header"
	"github.com/updatecenter/ucredirect/pkg/router"
)

func testRouter() *router.Router {
	return router.New(router.Table{
		{Threshold: "1.600", Bucket: "stable-1.600"},
		{Threshold: "2.000", Bucket: "stable-2.000"},
	}, router.WithFallback("1.x"))
}

func TestLocation(t *testing.T) {
	tests := []struct {
		name   string
		host   string
		bucket string
		path   string
		want   string
	}{
		{"plain", "http://mirrors.example/", "1.x", "update-center.json", "http://mirrors.example/1.x/update-center.json"},
		{"host without slash", "https://updates.example", "b", "x", "https://updates.example/b/x"},
		{"path with leading slash", "https://updates.example/", "b", "/x/y", "https://updates.example/b/x/y"},
		{"empty path", "https://updates.example/", "b", "", "https://updates.example/b/"},
		{"query kept", "https://updates.example/", "b", "uc.json?id=default", "https://updates.example/b/uc.json?id=default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Location(tt.host, tt.bucket, tt.path))
		})
	}
}

func TestRequestFromQuery(t *testing.T) {
	values, err := url.ParseQuery("version=1.580.1&path=update-center.json")
	require.NoError(t, err)

	req := RequestFromQuery(values, true)
	assert.Equal(t, Request{Version: "1.580.1", Path: "update-center.json", Secure: true}, req)

	assert.Equal(t, Request{}, RequestFromQuery(url.Values{}, false))
}

func TestHostsFor(t *testing.T) {
	h := DefaultHosts()
	assert.Equal(t, "https://updates.jenkins-ci.org/", h.For(true))
	assert.Equal(t, "http://mirrors.jenkins-ci.org/", h.For(false))
}

func TestResolver_Resolve(t *testing.T) {
	res := NewResolver(testRouter(), Hosts{})

	tests := []struct {
		name    string
		req     Request
		bucket  string
		matched bool
		loc     string
	}{
		{
			name:    "secure matched",
			req:     Request{Version: "1.580.1", Path: "update-center.json", Secure: true},
			bucket:  "stable-1.600",
			matched: true,
			loc:     "https://updates.jenkins-ci.org/stable-1.600/update-center.json",
		},
		{
			name:    "plain second bucket",
			req:     Request{Version: "1.601", Path: "latest/core.war"},
			bucket:  "stable-2.000",
			matched: true,
			loc:     "http://mirrors.jenkins-ci.org/stable-2.000/latest/core.war",
		},
		{
			name:   "fallback",
			req:    Request{Version: "3.0", Path: "update-center.json", Secure: true},
			bucket: "1.x",
			loc:    "https://updates.jenkins-ci.org/1.x/update-center.json",
		},
		{
			name:    "malformed version routes leniently",
			req:     Request{Version: "junk", Path: "a"},
			bucket:  "stable-1.600",
			matched: true,
			loc:     "http://mirrors.jenkins-ci.org/stable-1.600/a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := res.Resolve(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, got.Bucket)
			assert.Equal(t, tt.matched, got.Matched)
			assert.Equal(t, tt.loc, got.Location)
			assert.Equal(t, tt.req.Version, got.Version)
			_, err = uuid.Parse(got.ID)
			assert.NoError(t, err)
		})
	}
}

func TestResolver_Strict(t *testing.T) {
	res := NewResolver(testRouter(), DefaultHosts(), WithStrictVersions(true))

	_, err := res.Resolve(context.Background(), Request{Version: "1.x.3"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRequest))

	got, err := res.Resolve(context.Background(), Request{Version: "1.600-SNAPSHOT"})
	require.NoError(t, err)
	assert.Equal(t, "stable-1.600", got.Bucket)
}

func TestResolver_CustomHosts(t *testing.T) {
	res := NewResolver(testRouter(), Hosts{Secure: "https://mirror.internal"})
	got, err := res.Resolve(context.Background(), Request{Version: "1.0", Path: "x", Secure: true})
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.internal/stable-1.600/x", got.Location)
}

func TestResolutions(t *testing.T) {
	doc := NewResolutions([]Resolution{{Version: "1.0", Bucket: "b", Matched: true, Location: "http://h/b/"}})
	assert.Equal(t, header.KindResolutions, doc.Kind)
	assert.Equal(t, [][]string{{"1.0", "b", "true", "http://h/b/"}}, doc.TableRows())
	assert.Len(t, doc.TableHeader(), 4)
}
