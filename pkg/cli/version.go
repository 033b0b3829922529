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

	"github.com/urfave/cli/v3"

	ver "github.com/updatecenter/ucredirect/pkg/version"
)

func compareCmd() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "Compare two versions",
		ArgsUsage: "LHS RHS",
		Description: `Print -1, 0 or 1 depending on whether LHS sorts before, equal to or after
RHS. Missing components count as 0 and SNAPSHOT sorts before the release:

  ucredirect compare 1.2-SNAPSHOT 1.2   # -1
  ucredirect compare 1.2 1.2.0          # 0`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return fmt.Errorf("compare requires exactly 2 arguments, got %d", cmd.NArg())
			}
			_, err := fmt.Fprintln(cmd.Root().Writer, ver.CompareStrings(cmd.Args().Get(0), cmd.Args().Get(1)))
			return err
		},
	}
}

func parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Print the components a version parses to",
		ArgsUsage: "VERSION",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail on empty or non-numeric components",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("parse requires exactly 1 argument, got %d", cmd.NArg())
			}
			input := cmd.Args().First()

			var v ver.Vector
			if cmd.Bool("strict") {
				var err error
				if v, err = ver.ParseStrict(input); err != nil {
					return fmt.Errorf("invalid version %q: %w", input, err)
				}
			} else {
				v = ver.Parse(input)
			}

			_, err := fmt.Fprintln(cmd.Root().Writer, v.Components())
			return err
		},
	}
}
