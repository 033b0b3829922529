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

package metrics

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/updatecenter/ucredirect/pkg/router"
)

func TestRecorder_ObserveRoute(t *testing.T) {
	rec := NewRecorder()
	r := router.New(router.Table{
		{Threshold: "1.600", Bucket: "stable-1.600"},
	}, router.WithFallback("latest"), router.WithObserver(rec))

	r.Route("1.500")
	r.Route("1.600.5")
	r.Route("2.0")

	assert.InDelta(t, 2, testutil.ToFloat64(rec.routesTotal.WithLabelValues("stable-1.600", "true")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(rec.routesTotal.WithLabelValues("latest", "false")), 0)
}

func TestRecorder_Concurrent(t *testing.T) {
	rec := NewRecorder()
	r := router.New(router.Table{{Threshold: "1", Bucket: "a"}}, router.WithObserver(rec))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Route("1.2")
		}()
	}
	wg.Wait()

	assert.InDelta(t, 50, testutil.ToFloat64(rec.routesTotal.WithLabelValues("a", "true")), 0)
}

func TestRecorder_RulesLoaded(t *testing.T) {
	rec := NewRecorder()
	rec.SetRulesLoaded(3)
	assert.InDelta(t, 3, testutil.ToFloat64(rec.rulesLoaded), 0)

	rec.ObserveRulesLoad(20 * time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(rec.rulesLoadSeconds))
}

func TestRecorder_PrivateRegistry(t *testing.T) {
	// Two recorders must not collide on registration.
	a, b := NewRecorder(), NewRecorder()
	a.SetRulesLoaded(1)
	b.SetRulesLoaded(2)
	assert.InDelta(t, 1, testutil.ToFloat64(a.rulesLoaded), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(b.rulesLoaded), 0)
}

func TestRecorder_WriteTextfile(t *testing.T) {
	rec := NewRecorder()
	rec.ObserveRoute("1.0", router.Result{Bucket: "b", Matched: true})
	rec.SetRulesLoaded(4)

	path := filepath.Join(t.TempDir(), "ucredirect.prom")
	require.NoError(t, rec.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `ucredirect_routes_total{bucket="b",matched="true"} 1`)
	assert.Contains(t, string(data), "ucredirect_rules_loaded 4")
}

func TestRecorder_WriteTextfileError(t *testing.T) {
	rec := NewRecorder()
	err := rec.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	assert.Error(t, err)
}
