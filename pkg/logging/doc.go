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

// Package logging configures structured logging for ucredirect using log/slog.
//
// Features:
//   - JSON output to stderr
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Flexible log level parsing
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger:
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("ucredirect", version, "info")
//	    slog.Info("rules loaded", "count", len(table))
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("ucredirect", "v1.0.0", "debug")
//	logger.Debug("routed", "version", "1.580.1", "bucket", "stable-1.600")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity when no explicit
// level is given:
//
//	LOG_LEVEL=debug ucredirect route 1.580.1
//
// If LOG_LEVEL is not set, defaults to INFO level.
package logging
