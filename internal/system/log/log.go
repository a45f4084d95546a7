/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package log provides the process-wide structured logger.
package log

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnvironmentVariable overrides the configured log level when set.
const LogLevelEnvironmentVariable = "IDUI_LOG_LEVEL"

// DefaultLogLevel is used when neither the configuration nor the environment sets a level.
const DefaultLogLevel = "info"

var logger *zap.Logger

// InitLogger initializes the logger with a plain text format at the given level.
func InitLogger(level string) error {

	if envLevel := os.Getenv(LogLevelEnvironmentVariable); envLevel != "" {
		level = envLevel
	}
	if level == "" {
		level = DefaultLogLevel
	}

	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(zapcore.Lock(os.Stdout)),
		zapLevel,
	)

	logger = zap.New(core, zap.AddCaller())
	return nil
}

// SetLogger replaces the process-wide logger. Used by tests to capture output.
func SetLogger(l *zap.Logger) {

	logger = l
}

// GetLogger returns the initialized logger instance. Falls back to a no-op logger
// when InitLogger was never called, so library code stays usable in tests.
func GetLogger() *zap.Logger {

	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// Sync flushes any buffered log entries.
func Sync() {

	if logger != nil {
		_ = logger.Sync()
	}
}

// MaskString masks characters in a string except for the first and last characters.
func MaskString(s string) string {

	if len(s) <= 3 {
		return strings.Repeat("*", len(s))
	}
	return s[:1] + strings.Repeat("*", len(s)-2) + s[len(s)-1:]
}
