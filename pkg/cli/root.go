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
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/updatecenter/ucredirect/pkg/defaults"
	"github.com/updatecenter/ucredirect/pkg/logging"
	"github.com/updatecenter/ucredirect/pkg/metrics"
	"github.com/updatecenter/ucredirect/pkg/router"
	"github.com/updatecenter/ucredirect/pkg/rules"
	"github.com/updatecenter/ucredirect/pkg/serializer"
)

const (
	name           = "ucredirect"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

// Execute runs the root command with os.Args and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Route update-center requests to version buckets",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvLogLevel),
			},
			&cli.StringFlag{
				Name:    "rules-dir",
				Usage:   "Directory holding one sub-directory per bucket with a marker file",
				Sources: cli.EnvVars("UCR_RULES_DIR"),
			},
			&cli.StringFlag{
				Name:    "marker",
				Value:   defaults.MarkerPattern,
				Usage:   "Marker file glob relative to --rules-dir (doublestar syntax)",
				Sources: cli.EnvVars("UCR_MARKER"),
			},
			&cli.StringFlag{
				Name:    "rules-file",
				Usage:   "RuleSet document (yaml, json) or plain versions list; takes precedence over --rules-dir",
				Sources: cli.EnvVars("UCR_RULES_FILE"),
			},
			&cli.StringFlag{
				Name:    "fallback",
				Usage:   fmt.Sprintf("Bucket used when no rule matches (default: rules file value or %q)", defaults.FallbackBucket),
				Sources: cli.EnvVars("UCR_FALLBACK"),
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write Prometheus metrics to this file in textfile collector format",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logLevel := cmd.String("log-level")
			logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
				"logLevel", logLevel)
			return ctx, nil
		},
		Commands: []*cli.Command{
			routeCmd(),
			compareCmd(),
			parseCmd(),
			rulesCmd(),
		},
	}
}

// parseOutputFormat reads and validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %v", f, serializer.SupportedFormats())
	}
	return f, nil
}

// loadRuleSet loads the rules selected by the global flags.
func loadRuleSet(ctx context.Context, cmd *cli.Command, rec *metrics.Recorder) (*rules.RuleSet, error) {
	loader, err := rules.NewLoader(rules.Config{
		Dir:     cmd.String("rules-dir"),
		Pattern: cmd.String("marker"),
		File:    cmd.String("rules-file"),
	})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	set, err := rules.Load(ctx, loader)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	if rec != nil {
		rec.ObserveRulesLoad(time.Since(start))
		rec.SetRulesLoaded(len(set.Rules))
	}
	return set, nil
}

// loadRouter loads the rules and builds a Router observed by rec.
func loadRouter(ctx context.Context, cmd *cli.Command, rec *metrics.Recorder) (*router.Router, error) {
	set, err := loadRuleSet(ctx, cmd, rec)
	if err != nil {
		return nil, err
	}

	opts := []router.Option{router.WithFallback(resolveFallback(cmd, set))}
	if rec != nil {
		opts = append(opts, router.WithObserver(rec))
	}
	return router.New(set.Rules, opts...), nil
}

// resolveFallback prefers an explicit --fallback, then the rules document,
// then defaults.FallbackBucket.
func resolveFallback(cmd *cli.Command, set *rules.RuleSet) string {
	if cmd.IsSet("fallback") {
		return cmd.String("fallback")
	}
	return set.FallbackOr(defaults.FallbackBucket)
}

// newRecorder returns a Recorder when --metrics-file is set, nil otherwise.
func newRecorder(cmd *cli.Command) *metrics.Recorder {
	if cmd.String("metrics-file") == "" {
		return nil
	}
	return metrics.NewRecorder()
}

// flushMetrics writes rec to --metrics-file. Failures are logged, not returned,
// so they never mask the command result.
func flushMetrics(cmd *cli.Command, rec *metrics.Recorder) {
	if rec == nil {
		return
	}
	path := cmd.String("metrics-file")
	if err := rec.WriteTextfile(path); err != nil {
		slog.Warn("failed to write metrics", "path", path, "error", err)
		return
	}
	slog.Debug("metrics written", "path", path)
}

// writeDocument serializes doc to --output in the --format format.
func writeDocument(ctx context.Context, cmd *cli.Command, doc any) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return ser.Serialize(ctx, doc)
}
