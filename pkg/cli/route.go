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

package cli

import (
	"context"
	"fmt"
	"net/url"

	"github.com/urfave/cli/v3"

	"github.com/updatecenter/ucredirect/pkg/redirect"
)

func routeCmd() *cli.Command {
	return &cli.Command{
		Name:      "route",
		Usage:     "Resolve versions to buckets and redirect locations",
		ArgsUsage: "VERSION...",
		Description: `Resolve each VERSION against the loaded rules and print the bucket and
redirect location it maps to. Requests can also be given as raw query strings
with --query (e.g. "version=1.580.1&path=update-center.json").

Versions are parsed leniently unless --strict is set, in which case a version
with empty or non-numeric components fails the command.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Trailing path appended to the redirect location",
			},
			&cli.StringSliceFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Request query string carrying version and path parameters (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "secure",
				Usage: "Build locations for a TLS request",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Reject versions that do not parse strictly",
			},
			&cli.StringFlag{
				Name:    "secure-host",
				Value:   redirect.DefaultHosts().Secure,
				Usage:   "Host prefix for TLS requests",
				Sources: cli.EnvVars("UCR_SECURE_HOST"),
			},
			&cli.StringFlag{
				Name:    "plain-host",
				Value:   redirect.DefaultHosts().Plain,
				Usage:   "Host prefix for plain HTTP requests",
				Sources: cli.EnvVars("UCR_PLAIN_HOST"),
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			reqs, err := buildRequests(cmd)
			if err != nil {
				return err
			}

			rec := newRecorder(cmd)
			r, err := loadRouter(ctx, cmd, rec)
			if err != nil {
				return err
			}
			defer flushMetrics(cmd, rec)

			resolver := redirect.NewResolver(r, redirect.Hosts{
				Secure: cmd.String("secure-host"),
				Plain:  cmd.String("plain-host"),
			}, redirect.WithStrictVersions(cmd.Bool("strict")))

			items := make([]redirect.Resolution, 0, len(reqs))
			for _, req := range reqs {
				res, err := resolver.Resolve(ctx, req)
				if err != nil {
					return fmt.Errorf("failed to route %q: %w", req.Version, err)
				}
				items = append(items, res)
			}

			return writeDocument(ctx, cmd, redirect.NewResolutions(items))
		},
	}
}

// buildRequests collects requests from positional versions and --query values.
func buildRequests(cmd *cli.Command) ([]redirect.Request, error) {
	secure := cmd.Bool("secure")
	path := cmd.String("path")

	reqs := make([]redirect.Request, 0, cmd.NArg())
	for _, v := range cmd.Args().Slice() {
		reqs = append(reqs, redirect.Request{Version: v, Path: path, Secure: secure})
	}

	for _, q := range cmd.StringSlice("query") {
		values, err := url.ParseQuery(q)
		if err != nil {
			return nil, fmt.Errorf("invalid query %q: %w", q, err)
		}
		reqs = append(reqs, redirect.RequestFromQuery(values, secure))
	}

	if len(reqs) == 0 {
		return nil, fmt.Errorf("at least one version or --query is required")
	}
	return reqs, nil
}
