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

// Package redirect turns a routing decision into a redirect target.
//
// A Request carries the client's version, the trailing path it asked for and
// whether it arrived over TLS. The Resolver routes the version, picks the host
// prefix for the transport and joins host, bucket and path:
//
//	res := redirect.NewResolver(r, redirect.DefaultHosts()).Resolve(ctx, redirect.Request{
//	    Version: "1.580.1",
//	    Path:    "update-center.json",
//	    Secure:  true,
//	})
//	res.Location // https://updates.jenkins-ci.org/stable-1.600/update-center.json
//
// Emitting the HTTP response itself is left to the caller.
package redirect
